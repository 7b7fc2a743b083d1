package query

import (
	"fmt"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

// ListProductsQuery represents the query to list catalog products with the
// storefront filter state applied.
type ListProductsQuery struct {
	Filter domain.FilterState
	Limit  int
	Offset int
}

// ListProductsHandler handles the list products query
type ListProductsHandler struct {
	repo domain.ProductRepository
}

func NewListProductsHandler(repo domain.ProductRepository) *ListProductsHandler {
	return &ListProductsHandler{repo: repo}
}

// ListProductsResult carries the visible set plus the size of the unfiltered
// set ("Showing X of Y products").
type ListProductsResult struct {
	Products []domain.Product `json:"products"`
	Total    int              `json:"total"`
}

// Handle fetches the product set and applies the filter in memory. The
// filter runs after the fetch so it stays a pure function of
// (products, filter state).
func (h *ListProductsHandler) Handle(q ListProductsQuery) (*ListProductsResult, error) {
	if q.Limit <= 0 {
		q.Limit = 500
	}

	products, err := h.repo.FindAll(q.Limit, q.Offset)
	if err != nil {
		return nil, fmt.Errorf("failed to list products: %w", err)
	}

	visible := domain.Filter(products, q.Filter)

	return &ListProductsResult{
		Products: visible,
		Total:    len(products),
	}, nil
}
