package command

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

// CreateProductCommand represents the command to add a product to the catalog
type CreateProductCommand struct {
	Name        string
	Description string
	Category    string
	Price       float64
	ImageURL    string
	TopNotes    string
	HeartNotes  string
	BaseNotes   string
}

// CreateProductHandler handles product creation
type CreateProductHandler struct {
	repo domain.ProductRepository
}

func NewCreateProductHandler(repo domain.ProductRepository) *CreateProductHandler {
	return &CreateProductHandler{repo: repo}
}

// Handle executes the create product command
func (h *CreateProductHandler) Handle(cmd CreateProductCommand) (*domain.Product, error) {
	if cmd.Name == "" {
		return nil, fmt.Errorf("product name is required")
	}
	if cmd.Price < 0 {
		return nil, fmt.Errorf("price cannot be negative")
	}
	if cmd.Category == "" {
		return nil, fmt.Errorf("category is required")
	}

	product := &domain.Product{
		ID:          uuid.NewString(),
		Name:        cmd.Name,
		Description: cmd.Description,
		Category:    cmd.Category,
		Price:       cmd.Price,
		ImageURL:    cmd.ImageURL,
		TopNotes:    cmd.TopNotes,
		HeartNotes:  cmd.HeartNotes,
		BaseNotes:   cmd.BaseNotes,
		CreatedAt:   time.Now(),
		UpdatedAt:   time.Now(),
	}

	if err := h.repo.Create(product); err != nil {
		return nil, fmt.Errorf("failed to create product: %w", err)
	}

	return product, nil
}
