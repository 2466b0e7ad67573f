package user

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/fitnessclient/internal/domain"
	"example.com/fitnessclient/internal/session"
	httptransport "example.com/fitnessclient/internal/transport/http"
)

func TestUserRepository(t *testing.T) {
	var registrations atomic.Int32
	mux := http.NewServeMux()
	mux.HandleFunc("GET /users/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "user-1" {
			http.Error(w, "User not found!", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.User{ID: "user-1", Email: "ana@example.com", FirstName: "Ana"})
	})
	mux.HandleFunc("GET /users/{id}/validate", func(w http.ResponseWriter, r *http.Request) {
		_ = json.NewEncoder(w).Encode(r.PathValue("id") == "user-1")
	})
	mux.HandleFunc("POST /users/register", func(w http.ResponseWriter, r *http.Request) {
		registrations.Add(1)
		var reg domain.Registration
		if err := json.NewDecoder(r.Body).Decode(&reg); err != nil {
			http.Error(w, err.Error(), http.StatusBadRequest)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.User{ID: "user-2", Email: reg.Email, FirstName: reg.FirstName})
	})
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	repo := NewRepository(httptransport.NewClient(httptransport.ClientConfig{BaseURL: srv.URL}, session.NewMemoryStore()))
	ctx := context.Background()

	profile, err := repo.Profile(ctx, "user-1")
	require.NoError(t, err)
	require.Equal(t, "ana@example.com", profile.Email)

	_, err = repo.Profile(ctx, "ghost")
	require.ErrorIs(t, err, domain.ErrNotFound)

	ok, err := repo.Validate(ctx, "user-1")
	require.NoError(t, err)
	require.True(t, ok)

	ok, err = repo.Validate(ctx, "ghost")
	require.NoError(t, err)
	require.False(t, ok)

	_, err = repo.Register(ctx, domain.Registration{Email: "bad", Password: "secret1"})
	require.True(t, domain.IsValidation(err))
	require.Zero(t, registrations.Load())

	created, err := repo.Register(ctx, domain.Registration{Email: "bo@example.com", Password: "secret1", FirstName: "Bo"})
	require.NoError(t, err)
	require.Equal(t, "user-2", created.ID)
	require.Equal(t, "Bo", created.FirstName)
	require.EqualValues(t, 1, registrations.Load())
}
