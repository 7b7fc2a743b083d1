package repository

import (
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/lib/pq"

	"github.com/essence-store/essence-backend/internal/newsletter/domain"
)

const uniqueViolation = "23505"

// PostgresSubscriberRepository implements SubscriberRepository
type PostgresSubscriberRepository struct {
	db *sql.DB
}

// NewPostgresSubscriberRepository creates a new PostgreSQL subscriber repository
func NewPostgresSubscriberRepository(db *sql.DB) *PostgresSubscriberRepository {
	return &PostgresSubscriberRepository{db: db}
}

// Migrate creates the subscribers table if it does not exist
func (r *PostgresSubscriberRepository) Migrate() error {
	query := `
		CREATE TABLE IF NOT EXISTS newsletter_subscribers (
			id BIGSERIAL PRIMARY KEY,
			email TEXT NOT NULL UNIQUE,
			subscribed_at TIMESTAMPTZ NOT NULL DEFAULT now()
		)
	`
	if _, err := r.db.Exec(query); err != nil {
		return fmt.Errorf("failed to migrate newsletter_subscribers: %w", err)
	}
	return nil
}

// Subscribe inserts a new subscriber. A duplicate email returns
// domain.ErrAlreadySubscribed.
func (r *PostgresSubscriberRepository) Subscribe(email string) (*domain.Subscriber, error) {
	sub := &domain.Subscriber{
		Email:        email,
		SubscribedAt: time.Now(),
	}

	query := `
		INSERT INTO newsletter_subscribers (email, subscribed_at)
		VALUES ($1, $2)
		RETURNING id
	`

	err := r.db.QueryRow(query, sub.Email, sub.SubscribedAt).Scan(&sub.ID)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && string(pqErr.Code) == uniqueViolation {
			return nil, domain.ErrAlreadySubscribed
		}
		return nil, fmt.Errorf("failed to subscribe: %w", err)
	}

	return sub, nil
}

// Count returns the number of subscribers
func (r *PostgresSubscriberRepository) Count() (int64, error) {
	var count int64
	err := r.db.QueryRow(`SELECT count(*) FROM newsletter_subscribers`).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("failed to count subscribers: %w", err)
	}
	return count, nil
}
