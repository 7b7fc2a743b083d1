package repository

import (
	"errors"

	"gorm.io/gorm"

	"github.com/essence-store/essence-backend/internal/wishlist/domain"
)

type GormWishlistRepository struct {
	db *gorm.DB
}

func NewGormWishlistRepository(db *gorm.DB) *GormWishlistRepository {
	return &GormWishlistRepository{db: db}
}

func (r *GormWishlistRepository) AutoMigrate() error {
	return r.db.AutoMigrate(&domain.Entry{})
}

// Create inserts a wishlist entry. A unique-constraint violation is mapped
// to domain.ErrDuplicate so callers can tell "already present" apart from
// real failures.
func (r *GormWishlistRepository) Create(entry *domain.Entry) error {
	err := r.db.Create(entry).Error
	if err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return domain.ErrDuplicate
		}
		return err
	}
	return nil
}

func (r *GormWishlistRepository) FindByUser(userID uint) ([]domain.Entry, error) {
	var entries []domain.Entry
	err := r.db.Where("user_id = ?", userID).Order("created_at DESC").Find(&entries).Error
	return entries, err
}

func (r *GormWishlistRepository) Delete(userID uint, productID string) error {
	return r.db.Where("user_id = ? AND product_id = ?", userID, productID).Delete(&domain.Entry{}).Error
}
