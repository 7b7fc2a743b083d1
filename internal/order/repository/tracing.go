package repository

import (
	"context"

	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"gorm.io/gorm"

	"github.com/essence-store/essence-backend/internal/order/domain"
)

var tracer = otel.Tracer("order-repository")

// GormOrderRepositoryWithTracing wraps GormOrderRepository with tracing.
// The context-carrying methods are overridden so spans parent on the
// request; the rest pass through to the embedded repository.
type GormOrderRepositoryWithTracing struct {
	*GormOrderRepository
}

var _ domain.OrderRepository = (*GormOrderRepositoryWithTracing)(nil)

// NewGormOrderRepositoryWithTracing creates a new repository with tracing
func NewGormOrderRepositoryWithTracing(db *gorm.DB) *GormOrderRepositoryWithTracing {
	return &GormOrderRepositoryWithTracing{
		GormOrderRepository: NewGormOrderRepository(db),
	}
}

// Create with tracing
func (r *GormOrderRepositoryWithTracing) Create(ctx context.Context, order *domain.Order) error {
	ctx, span := tracer.Start(ctx, "repository.Create",
		trace.WithAttributes(
			attribute.String("order.id", order.ID),
			attribute.Int("order.user_id", int(order.UserID)),
			attribute.Float64("order.total", order.TotalAmount),
		),
	)
	defer span.End()

	err := r.GormOrderRepository.Create(ctx, order)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}

	span.SetAttributes(attribute.String("order.reference", order.Reference))
	return nil
}

// CreateItems with tracing
func (r *GormOrderRepositoryWithTracing) CreateItems(ctx context.Context, items []domain.OrderItem) error {
	ctx, span := tracer.Start(ctx, "repository.CreateItems",
		trace.WithAttributes(
			attribute.Int("order.item_count", len(items)),
		),
	)
	defer span.End()

	err := r.GormOrderRepository.CreateItems(ctx, items)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return err
	}
	return nil
}

// FindByID with tracing
func (r *GormOrderRepositoryWithTracing) FindByID(ctx context.Context, id string) (*domain.Order, error) {
	ctx, span := tracer.Start(ctx, "repository.FindByID",
		trace.WithAttributes(
			attribute.String("order.id", id),
		),
	)
	defer span.End()

	order, err := r.GormOrderRepository.FindByID(ctx, id)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	span.SetAttributes(attribute.String("order.status", order.Status))
	return order, nil
}
