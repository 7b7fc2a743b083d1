package domain

import (
	"time"

	"gorm.io/gorm"
)

// Product represents a fragrance in the catalog. The three note fields are
// comma-separated free text ("Bergamot, Pink Pepper").
type Product struct {
	ID          string         `json:"id" gorm:"type:uuid;primaryKey"`
	Name        string         `json:"name" gorm:"not null"`
	Description string         `json:"description"`
	Category    string         `json:"category"`
	Price       float64        `json:"price" gorm:"not null"`
	ImageURL    string         `json:"image_url"`
	TopNotes    string         `json:"top_notes"`
	HeartNotes  string         `json:"heart_notes"`
	BaseNotes   string         `json:"base_notes"`
	CreatedAt   time.Time      `json:"created_at"`
	UpdatedAt   time.Time      `json:"updated_at"`
	DeletedAt   gorm.DeletedAt `json:"-" gorm:"index"`
}

// TableName specifies the table name
func (Product) TableName() string {
	return "products"
}

// Review is a customer review attached to a product
type Review struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	ProductID string    `json:"product_id" gorm:"type:uuid;not null;index"`
	UserID    uint      `json:"user_id" gorm:"not null"`
	Rating    int       `json:"rating" gorm:"not null"`
	Comment   string    `json:"comment"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Review) TableName() string {
	return "reviews"
}

// CatalogStats summarizes the catalog for the admin dashboard
type CatalogStats struct {
	TotalProducts int64            `json:"total_products"`
	ByCategory    map[string]int64 `json:"by_category"`
}

// ProductRepository defines the contract for product data access
type ProductRepository interface {
	Create(product *Product) error
	FindByID(id string) (*Product, error)
	FindAll(limit, offset int) ([]Product, error)
	FindByIDs(ids []string) ([]Product, error)
	Update(product *Product) error
	Delete(id string) error
	Count() (int64, error)
	CountByCategory() (map[string]int64, error)
}

// ReviewRepository defines the contract for review data access
type ReviewRepository interface {
	Create(review *Review) error
	FindByProduct(productID string) ([]Review, error)
}
