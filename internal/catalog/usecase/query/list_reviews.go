package query

import (
	"fmt"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

// ListReviewsQuery represents the query for a product's reviews
type ListReviewsQuery struct {
	ProductID string
}

// ListReviewsHandler handles the list reviews query
type ListReviewsHandler struct {
	repo domain.ReviewRepository
}

func NewListReviewsHandler(repo domain.ReviewRepository) *ListReviewsHandler {
	return &ListReviewsHandler{repo: repo}
}

// Handle executes the list reviews query
func (h *ListReviewsHandler) Handle(q ListReviewsQuery) ([]domain.Review, error) {
	if q.ProductID == "" {
		return nil, fmt.Errorf("product id is required")
	}

	reviews, err := h.repo.FindByProduct(q.ProductID)
	if err != nil {
		return nil, fmt.Errorf("failed to list reviews: %w", err)
	}

	return reviews, nil
}
