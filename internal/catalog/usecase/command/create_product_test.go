package command

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essence-store/essence-backend/internal/catalog/domain"
)

type fakeProductRepo struct {
	products map[string]*domain.Product
	failNext bool
}

func newFakeProductRepo() *fakeProductRepo {
	return &fakeProductRepo{products: make(map[string]*domain.Product)}
}

func (f *fakeProductRepo) Create(p *domain.Product) error {
	if f.failNext {
		f.failNext = false
		return fmt.Errorf("connection refused")
	}
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) FindByID(id string) (*domain.Product, error) {
	p, ok := f.products[id]
	if !ok {
		return nil, fmt.Errorf("record not found")
	}
	return p, nil
}

func (f *fakeProductRepo) FindAll(limit, offset int) ([]domain.Product, error) {
	out := make([]domain.Product, 0, len(f.products))
	for _, p := range f.products {
		out = append(out, *p)
	}
	return out, nil
}

func (f *fakeProductRepo) FindByIDs(ids []string) ([]domain.Product, error) {
	var out []domain.Product
	for _, id := range ids {
		if p, ok := f.products[id]; ok {
			out = append(out, *p)
		}
	}
	return out, nil
}

func (f *fakeProductRepo) Update(p *domain.Product) error {
	f.products[p.ID] = p
	return nil
}

func (f *fakeProductRepo) Delete(id string) error {
	delete(f.products, id)
	return nil
}

func (f *fakeProductRepo) Count() (int64, error) {
	return int64(len(f.products)), nil
}

func (f *fakeProductRepo) CountByCategory() (map[string]int64, error) {
	counts := make(map[string]int64)
	for _, p := range f.products {
		counts[p.Category]++
	}
	return counts, nil
}

func TestCreateProduct(t *testing.T) {
	repo := newFakeProductRepo()
	h := NewCreateProductHandler(repo)

	product, err := h.Handle(CreateProductCommand{
		Name:       "Velvet Rose",
		Category:   "Floral",
		Price:      110,
		TopNotes:   "Rose, Pink Pepper",
		HeartNotes: "Peony",
		BaseNotes:  "Musk",
	})
	require.NoError(t, err)
	assert.NotEmpty(t, product.ID)
	assert.Len(t, repo.products, 1)
}

func TestCreateProductValidation(t *testing.T) {
	h := NewCreateProductHandler(newFakeProductRepo())

	_, err := h.Handle(CreateProductCommand{Category: "Floral", Price: 10})
	assert.Error(t, err, "missing name")

	_, err = h.Handle(CreateProductCommand{Name: "X", Category: "Floral", Price: -1})
	assert.Error(t, err, "negative price")

	_, err = h.Handle(CreateProductCommand{Name: "X", Price: 10})
	assert.Error(t, err, "missing category")
}

func TestAddReviewValidatesRating(t *testing.T) {
	products := newFakeProductRepo()
	p := &domain.Product{ID: "p1", Name: "Amber Woods", Category: "Woody", Price: 135}
	require.NoError(t, products.Create(p))

	h := NewAddReviewHandler(products, &fakeReviewRepo{})

	_, err := h.Handle(AddReviewCommand{ProductID: "p1", UserID: 1, Rating: 0})
	assert.Error(t, err)

	_, err = h.Handle(AddReviewCommand{ProductID: "p1", UserID: 1, Rating: 6})
	assert.Error(t, err)

	review, err := h.Handle(AddReviewCommand{ProductID: "p1", UserID: 1, Rating: 5, Comment: "Stunning"})
	require.NoError(t, err)
	assert.Equal(t, "p1", review.ProductID)
}

type fakeReviewRepo struct {
	reviews []domain.Review
}

func (f *fakeReviewRepo) Create(r *domain.Review) error {
	f.reviews = append(f.reviews, *r)
	return nil
}

func (f *fakeReviewRepo) FindByProduct(productID string) ([]domain.Review, error) {
	var out []domain.Review
	for _, r := range f.reviews {
		if r.ProductID == productID {
			out = append(out, r)
		}
	}
	return out, nil
}
