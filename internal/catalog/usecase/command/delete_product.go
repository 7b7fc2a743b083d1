package command

import (
	"fmt"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

// DeleteProductCommand represents the command to remove a product
type DeleteProductCommand struct {
	ID string
}

// DeleteProductHandler handles product deletion
type DeleteProductHandler struct {
	repo domain.ProductRepository
}

func NewDeleteProductHandler(repo domain.ProductRepository) *DeleteProductHandler {
	return &DeleteProductHandler{repo: repo}
}

// Handle executes the delete product command
func (h *DeleteProductHandler) Handle(cmd DeleteProductCommand) error {
	if cmd.ID == "" {
		return fmt.Errorf("product id is required")
	}

	if _, err := h.repo.FindByID(cmd.ID); err != nil {
		return fmt.Errorf("product not found: %w", err)
	}

	if err := h.repo.Delete(cmd.ID); err != nil {
		return fmt.Errorf("failed to delete product: %w", err)
	}

	return nil
}
