package command

import (
	"fmt"
	"time"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

// UpdateProductCommand represents the command to update an existing product
type UpdateProductCommand struct {
	ID          string
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
	TopNotes    string
	HeartNotes  string
	BaseNotes   string
}

// UpdateProductHandler handles product updates
type UpdateProductHandler struct {
	repo domain.ProductRepository
}

func NewUpdateProductHandler(repo domain.ProductRepository) *UpdateProductHandler {
	return &UpdateProductHandler{repo: repo}
}

// Handle executes the update product command
func (h *UpdateProductHandler) Handle(cmd UpdateProductCommand) (*domain.Product, error) {
	if cmd.ID == "" {
		return nil, fmt.Errorf("product id is required")
	}
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}

	product, err := h.repo.FindByID(cmd.ID)
	if err != nil {
		return nil, fmt.Errorf("product not found: %w", err)
	}

	product.Name = cmd.Name
	product.Description = cmd.Description
	product.Category = cmd.Category
	product.Price = cmd.Price
	product.ImageURL = cmd.ImageURL
	product.TopNotes = cmd.TopNotes
	product.HeartNotes = cmd.HeartNotes
	product.BaseNotes = cmd.BaseNotes
	product.UpdatedAt = time.Now()

	if err := h.repo.Update(product); err != nil {
		return nil, fmt.Errorf("failed to update product: %w", err)
	}

	return product, nil
}
