//go:build wireinject
// +build wireinject

package catalog

import (
	"github.com/google/wire"
	"gorm.io/gorm"

	"github.com/essence-store/essence-backend/internal/catalog/delivery/http"
	"github.com/essence-store/essence-backend/internal/catalog/domain"
	"github.com/essence-store/essence-backend/internal/catalog/repository"
	"github.com/essence-store/essence-backend/internal/catalog/usecase/command"
	"github.com/essence-store/essence-backend/internal/catalog/usecase/query"
)

// ProvideProductRepository provides the product repository
func ProvideProductRepository(db *gorm.DB) domain.ProductRepository {
	return repository.NewGormProductRepository(db)
}

// ProvideReviewRepository provides the review repository
func ProvideReviewRepository(db *gorm.DB) domain.ReviewRepository {
	return repository.NewGormReviewRepository(db)
}

// Command handler providers
func ProvideCreateProductHandler(repo domain.ProductRepository) *command.CreateProductHandler {
	return command.NewCreateProductHandler(repo)
}

func ProvideUpdateProductHandler(repo domain.ProductRepository) *command.UpdateProductHandler {
	return command.NewUpdateProductHandler(repo)
}

func ProvideDeleteProductHandler(repo domain.ProductRepository) *command.DeleteProductHandler {
	return command.NewDeleteProductHandler(repo)
}

func ProvideAddReviewHandler(products domain.ProductRepository, reviews domain.ReviewRepository) *command.AddReviewHandler {
	return command.NewAddReviewHandler(products, reviews)
}

// Query handler providers
func ProvideGetProductHandler(repo domain.ProductRepository) *query.GetProductHandler {
	return query.NewGetProductHandler(repo)
}

func ProvideListProductsHandler(repo domain.ProductRepository) *query.ListProductsHandler {
	return query.NewListProductsHandler(repo)
}

func ProvideGetNotesHandler(repo domain.ProductRepository) *query.GetNotesHandler {
	return query.NewGetNotesHandler(repo)
}

func ProvideGetStatsHandler(repo domain.ProductRepository) *query.GetStatsHandler {
	return query.NewGetStatsHandler(repo)
}

func ProvideListReviewsHandler(repo domain.ReviewRepository) *query.ListReviewsHandler {
	return query.NewListReviewsHandler(repo)
}

// Wire sets
var RepositorySet = wire.NewSet(
	ProvideProductRepository,
	ProvideReviewRepository,
)

var CommandHandlerSet = wire.NewSet(
	ProvideCreateProductHandler,
	ProvideUpdateProductHandler,
	ProvideDeleteProductHandler,
	ProvideAddReviewHandler,
)

var QueryHandlerSet = wire.NewSet(
	ProvideGetProductHandler,
	ProvideListProductsHandler,
	ProvideGetNotesHandler,
	ProvideGetStatsHandler,
	ProvideListReviewsHandler,
)

// InitializeCatalogHandler initializes the HTTP handler with all dependencies
func InitializeCatalogHandler(db *gorm.DB) (*http.CatalogHandler, error) {
	wire.Build(
		RepositorySet,
		CommandHandlerSet,
		QueryHandlerSet,
		http.NewCatalogHandlerWithDI,
	)
	return nil, nil
}
