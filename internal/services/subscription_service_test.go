package services

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestSubscriptionService_Register(t *testing.T) {
	t.Run("successful registration", func(t *testing.T) {
		var received map[string]string
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			assert.Equal(t, http.MethodPost, r.Method)
			assert.Equal(t, "/subscription/create", r.URL.Path)
			assert.NoError(t, json.NewDecoder(r.Body).Decode(&received))
			w.WriteHeader(http.StatusCreated)
		}))
		defer server.Close()

		service := NewSubscriptionService(server.URL, 5*time.Second)

		err := service.Register(context.Background(), 7, 42, "9", "John Doe")
		assert.NoError(t, err)
		assert.Equal(t, map[string]string{
			"transactionId": "7",
			"serviceId":     "42",
			"userId":        "9",
			"createdBy":     "John Doe",
		}, received)
	})

	t.Run("non-2xx response", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			http.Error(w, "subscription system unavailable", http.StatusInternalServerError)
		}))
		defer server.Close()

		service := NewSubscriptionService(server.URL, 5*time.Second)

		err := service.Register(context.Background(), 7, 42, "9", "John Doe")
		assert.True(t, errors.Is(err, ErrBusinessValidation))
		assert.Contains(t, err.Error(), "Failed to subscription for service")
	})

	t.Run("transport error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		server.Close() // connection refused

		service := NewSubscriptionService(server.URL, 2*time.Second)

		err := service.Register(context.Background(), 7, 42, "9", "John Doe")
		assert.True(t, errors.Is(err, ErrBusinessValidation))
	})

	t.Run("caller deadline is honoured", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(500 * time.Millisecond)
		}))
		defer server.Close()

		service := NewSubscriptionService(server.URL, 5*time.Second)

		ctx, cancel := context.WithTimeout(context.Background(), 50*time.Millisecond)
		defer cancel()

		err := service.Register(ctx, 7, 42, "9", "John Doe")
		assert.True(t, errors.Is(err, ErrBusinessValidation))
	})
}
