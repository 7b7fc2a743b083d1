package http

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gorilla/mux"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/essence-store/essence-backend/internal/notifier"
)

type fakeSender struct {
	sent []notifier.Email
}

func (s *fakeSender) Send(_ context.Context, email notifier.Email) (string, error) {
	s.sent = append(s.sent, email)
	return "msg_1", nil
}

func TestNotifierRoutes(t *testing.T) {
	sender := &fakeSender{}
	handler := NewNotifierHandler(notifier.NewService(sender))

	router := mux.NewRouter()
	handler.RegisterRoutes(router)

	t.Run("newsletter welcome", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/notifications/newsletter", strings.NewReader(`{"email":"sara@example.com"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		require.Len(t, sender.sent, 1)
		assert.Equal(t, []string{"sara@example.com"}, sender.sent[0].To)
	})

	t.Run("contact sends customer and admin emails", func(t *testing.T) {
		sender.sent = nil
		body := `{"name":"Leila","email":"leila@example.com","subject":"Hello","message":"Do you ship to Morocco?"}`
		req := httptest.NewRequest("POST", "/notifications/contact", strings.NewReader(body))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusOK, rec.Code)
		assert.Len(t, sender.sent, 2)
	})

	t.Run("missing email rejected", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/notifications/newsletter", strings.NewReader(`{}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusBadRequest, rec.Code)
	})

	t.Run("old email paths are not bound", func(t *testing.T) {
		req := httptest.NewRequest("POST", "/emails/newsletter-welcome", strings.NewReader(`{"email":"x@example.com"}`))
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, req)

		assert.Equal(t, http.StatusNotFound, rec.Code)
	})
}
