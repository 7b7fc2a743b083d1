package domain

import (
	"errors"
	"time"
)

// ErrAlreadySubscribed marks a signup for an email that is already on the
// list. Handlers downgrade it to an informational response.
var ErrAlreadySubscribed = errors.New("email already subscribed")

// Subscriber is one newsletter list entry
type Subscriber struct {
	ID           int64     `json:"id"`
	Email        string    `json:"email"`
	SubscribedAt time.Time `json:"subscribed_at"`
}

// SubscriberRepository defines the contract for newsletter storage
type SubscriberRepository interface {
	Subscribe(email string) (*Subscriber, error)
	Count() (int64, error)
}
