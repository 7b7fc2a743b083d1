package command

import (
	"fmt"
	"time"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

// AddReviewCommand represents the command to post a product review
type AddReviewCommand struct {
	ProductID string
	UserID    uint
	Rating    int
	Comment   string
}

// AddReviewHandler handles review creation
type AddReviewHandler struct {
	products domain.ProductRepository
	reviews  domain.ReviewRepository
}

func NewAddReviewHandler(products domain.ProductRepository, reviews domain.ReviewRepository) *AddReviewHandler {
	return &AddReviewHandler{products: products, reviews: reviews}
}

// Handle executes the add review command
func (h *AddReviewHandler) Handle(cmd AddReviewCommand) (*domain.Review, error) {
	if cmd.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	if cmd.UserID == 0 {
		return nil, fmt.Errorf("user id is required")
	}
	if cmd.Rating < 1 || cmd.Rating > 5 {
		return nil, fmt.Errorf("rating must be between 1 and 5")
	}

	if _, err := h.products.FindByID(cmd.ProductID); err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	review := &domain.Review{
		ProductID: cmd.ProductID,
		UserID:    cmd.UserID,
		Rating:    cmd.Rating,
		Comment:   cmd.Comment,
		CreatedAt: time.Now(),
	}

	if err := h.reviews.Create(review); err != nil {
		return nil, fmt.Errorf("failed to create review: %w", err)
	}

	return review, nil
}
