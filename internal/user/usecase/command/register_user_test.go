package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essence-store/essence-backend/internal/user/domain"
	"github.com/essence-store/essence-backend/pkg/auth"
)

type fakeUserRepo struct {
	users  map[uint]*domain.User
	nextID uint
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{users: map[uint]*domain.User{}, nextID: 1}
}

func (r *fakeUserRepo) Create(u *domain.User) error {
	u.ID = r.nextID
	r.nextID++
	r.users[u.ID] = u
	return nil
}

func (r *fakeUserRepo) FindByID(id uint) (*domain.User, error) {
	u, ok := r.users[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return u, nil
}

func (r *fakeUserRepo) FindByUsername(username string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Username == username {
			return u, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (r *fakeUserRepo) FindByEmail(email string) (*domain.User, error) {
	for _, u := range r.users {
		if u.Email == email {
			return u, nil
		}
	}
	return nil, fmt.Errorf("record not found")
}

func (r *fakeUserRepo) Update(u *domain.User) error {
	r.users[u.ID] = u
	return nil
}

func TestRegisterUser(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	user, err := handler.Handle(RegisterUserCommand{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "secret123",
		FullName: "Amira Hassan",
	})
	require.NoError(t, err)

	assert.Equal(t, domain.RoleUser, user.Role)
	assert.True(t, user.IsActive)
	assert.NotEqual(t, "secret123", user.Password)
	assert.True(t, auth.CheckPassword(user.Password, "secret123"))
}

func TestRegisterUserDuplicateUsername(t *testing.T) {
	repo := newFakeUserRepo()
	handler := NewRegisterUserHandler(repo)

	_, err := handler.Handle(RegisterUserCommand{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "secret123",
		FullName: "Amira Hassan",
	})
	require.NoError(t, err)

	_, err = handler.Handle(RegisterUserCommand{
		Username: "amira",
		Email:    "other@example.com",
		Password: "secret123",
		FullName: "Other Person",
	})
	assert.ErrorContains(t, err, "username already exists")
}

func TestRegisterUserShortPassword(t *testing.T) {
	handler := NewRegisterUserHandler(newFakeUserRepo())

	_, err := handler.Handle(RegisterUserCommand{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "abc",
		FullName: "Amira Hassan",
	})
	assert.ErrorContains(t, err, "at least 6 characters")
}

func TestLoginIssuesTokenWithRole(t *testing.T) {
	t.Setenv("JWT_SECRET", "test-secret")

	repo := newFakeUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "secret123",
		FullName: "Amira Hassan",
	})
	require.NoError(t, err)

	resp, err := NewLoginUserHandler(repo).Handle(LoginUserCommand{
		Username: "amira",
		Password: "secret123",
	})
	require.NoError(t, err)
	require.NotEmpty(t, resp.Token)

	claims, err := auth.ValidateToken(resp.Token)
	require.NoError(t, err)
	assert.Equal(t, resp.User.ID, claims.UserID)
	assert.Equal(t, domain.RoleUser, claims.Role)
}

func TestLoginRejectsBadPassword(t *testing.T) {
	repo := newFakeUserRepo()
	_, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "secret123",
		FullName: "Amira Hassan",
	})
	require.NoError(t, err)

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{
		Username: "amira",
		Password: "wrong",
	})
	assert.ErrorContains(t, err, "invalid credentials")
}

func TestLoginRejectsDeactivatedAccount(t *testing.T) {
	repo := newFakeUserRepo()
	user, err := NewRegisterUserHandler(repo).Handle(RegisterUserCommand{
		Username: "amira",
		Email:    "amira@example.com",
		Password: "secret123",
		FullName: "Amira Hassan",
	})
	require.NoError(t, err)

	user.IsActive = false
	require.NoError(t, repo.Update(user))

	_, err = NewLoginUserHandler(repo).Handle(LoginUserCommand{
		Username: "amira",
		Password: "secret123",
	})
	assert.ErrorContains(t, err, "deactivated")
}
