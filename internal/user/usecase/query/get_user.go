package query

import (
	"fmt"

	"github.com/essence-store/essence-backend/internal/user/domain"
)

// GetUserQuery represents the query to fetch a user by id
type GetUserQuery struct {
	UserID uint
}

// GetUserHandler handles user lookups
type GetUserHandler struct {
	repo domain.UserRepository
}

func NewGetUserHandler(repo domain.UserRepository) *GetUserHandler {
	return &GetUserHandler{repo: repo}
}

// Handle executes the get user query
func (h *GetUserHandler) Handle(q GetUserQuery) (*domain.User, error) {
	user, err := h.repo.FindByID(q.UserID)
	if err != nil {
		return nil, fmt.Errorf("user not found: %w", err)
	}
	return user, nil
}
