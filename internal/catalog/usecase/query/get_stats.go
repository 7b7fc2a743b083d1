package query

import (
	"fmt"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

// GetStatsQuery represents the query for catalog statistics
type GetStatsQuery struct{}

// GetStatsHandler handles the catalog stats query
type GetStatsHandler struct {
	repo domain.ProductRepository
}

func NewGetStatsHandler(repo domain.ProductRepository) *GetStatsHandler {
	return &GetStatsHandler{repo: repo}
}

// Handle executes the get stats query
func (h *GetStatsHandler) Handle(GetStatsQuery) (*domain.CatalogStats, error) {
	total, err := h.repo.Count()
	if err != nil {
		return nil, fmt.Errorf("failed to count products: %w", err)
	}

	byCategory, err := h.repo.CountByCategory()
	if err != nil {
		return nil, fmt.Errorf("failed to count products by category: %w", err)
	}

	return &domain.CatalogStats{
		TotalProducts: total,
		ByCategory:    byCategory,
	}, nil
}
