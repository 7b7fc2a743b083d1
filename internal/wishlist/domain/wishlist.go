package domain

import (
	"errors"
	"time"
)

// Entry is one wishlist row. The (user, product) pair is unique; inserting
// a duplicate is a conflict the caller downgrades to "already in wishlist".
type Entry struct {
	ID        uint      `json:"id" gorm:"primaryKey"`
	UserID    uint      `json:"user_id" gorm:"not null;uniqueIndex:idx_wishlist_user_product"`
	ProductID string    `json:"product_id" gorm:"type:uuid;not null;uniqueIndex:idx_wishlist_user_product"`
	CreatedAt time.Time `json:"created_at"`
}

// TableName specifies the table name
func (Entry) TableName() string {
	return "wishlist"
}

var (
	// ErrDuplicate reports a unique-constraint conflict on insert
	ErrDuplicate = errors.New("already in wishlist")
	// ErrUnauthenticated reports a wishlist mutation without a signed-in user
	ErrUnauthenticated = errors.New("authentication required")
)

// Repository defines the contract for wishlist data access
type Repository interface {
	Create(entry *Entry) error
	FindByUser(userID uint) ([]Entry, error)
	Delete(userID uint, productID string) error
}
