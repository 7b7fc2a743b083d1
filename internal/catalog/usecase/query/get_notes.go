package query

import (
	"fmt"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

// GetNotesQuery represents the query for the fragrance note vocabulary
type GetNotesQuery struct{}

// GetNotesHandler derives the note vocabulary from the current product set.
// The product fetch goes through the cached repository, so the vocabulary is
// only recomputed when the product set actually changes.
type GetNotesHandler struct {
	repo domain.ProductRepository
}

func NewGetNotesHandler(repo domain.ProductRepository) *GetNotesHandler {
	return &GetNotesHandler{repo: repo}
}

// Handle executes the get notes query
func (h *GetNotesHandler) Handle(GetNotesQuery) ([]string, error) {
	products, err := h.repo.FindAll(500, 0)
	if err != nil {
		return nil, fmt.Errorf("failed to load products: %w", err)
	}
	return domain.NoteVocabulary(products), nil
}
