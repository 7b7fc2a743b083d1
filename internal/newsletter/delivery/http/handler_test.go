package http

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essence-store/essence-backend/internal/newsletter/domain"
)

type fakeSubscriberRepo struct {
	subscribers map[string]*domain.Subscriber
	nextID      int64
}

func newFakeSubscriberRepo() *fakeSubscriberRepo {
	return &fakeSubscriberRepo{subscribers: map[string]*domain.Subscriber{}}
}

func (r *fakeSubscriberRepo) Subscribe(email string) (*domain.Subscriber, error) {
	if _, ok := r.subscribers[email]; ok {
		return nil, domain.ErrAlreadySubscribed
	}
	r.nextID++
	sub := &domain.Subscriber{ID: r.nextID, Email: email, SubscribedAt: time.Now()}
	r.subscribers[email] = sub
	return sub, nil
}

func (r *fakeSubscriberRepo) Count() (int64, error) {
	return int64(len(r.subscribers)), nil
}

func subscribe(t *testing.T, router *mux.Router, body string) (*httptest.ResponseRecorder, map[string]string) {
	t.Helper()
	req := httptest.NewRequest("POST", "/newsletter/subscribe", strings.NewReader(body))
	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, req)

	var resp map[string]string
	require.NoError(t, json.NewDecoder(rec.Body).Decode(&resp))
	return rec, resp
}

func TestSubscribe(t *testing.T) {
	repo := newFakeSubscriberRepo()
	handler := NewNewsletterHandler(repo, nil)

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	t.Run("first signup", func(t *testing.T) {
		rec, resp := subscribe(t, router, `{"email":"Nadia@Example.com"}`)

		assert.Equal(t, http.StatusCreated, rec.Code)
		assert.Equal(t, "Thanks for subscribing!", resp["message"])

		// Stored lowercased.
		_, ok := repo.subscribers["nadia@example.com"]
		assert.True(t, ok)
	})

	t.Run("duplicate is not an error", func(t *testing.T) {
		rec, resp := subscribe(t, router, `{"email":"nadia@example.com"}`)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Equal(t, "You're already subscribed", resp["message"])
		assert.NotContains(t, resp, "error")

		count, err := repo.Count()
		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})

	t.Run("invalid email", func(t *testing.T) {
		rec, resp := subscribe(t, router, `{"email":"not-an-address"}`)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
		assert.Equal(t, "Invalid email address", resp["error"])
	})
}
