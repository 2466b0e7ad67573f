package recommendation

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"

	"example.com/fitnessclient/internal/domain"
	"example.com/fitnessclient/internal/session"
	httptransport "example.com/fitnessclient/internal/transport/http"
)

func newRepo(t *testing.T, mux *http.ServeMux) *Repository {
	t.Helper()
	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)
	store := session.NewMemoryStore()
	require.NoError(t, store.Set(session.Credential{UserID: "user-1", Token: "tok"}))
	return NewRepository(httptransport.NewClient(httptransport.ClientConfig{BaseURL: srv.URL}, store))
}

func TestForActivity(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /recommendations/activity/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") != "a1" {
			http.Error(w, "No Recommendation Found for this activity", http.StatusNotFound)
			return
		}
		_ = json.NewEncoder(w).Encode(domain.Recommendation{
			ActivityID:     "a1",
			Recommendation: "Great pacing.",
			Improvements:   []string{"Longer cooldown"},
			Suggestions:    []string{"Try intervals", "Add a rest day"},
			Safety:         []string{"Warm up first"},
		})
	})
	repo := newRepo(t, mux)

	rec, err := repo.ForActivity(context.Background(), "a1")
	require.NoError(t, err)
	require.Equal(t, "Great pacing.", rec.Recommendation)
	require.Equal(t, []string{"Try intervals", "Add a rest day"}, rec.Suggestions)

	_, err = repo.ForActivity(context.Background(), "a2")
	require.ErrorIs(t, err, domain.ErrNotFound)
}

func TestForUser(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /recommendations/user/{id}", func(w http.ResponseWriter, r *http.Request) {
		if r.PathValue("id") == "quiet" {
			_, _ = w.Write([]byte("null"))
			return
		}
		_ = json.NewEncoder(w).Encode([]domain.Recommendation{
			{ActivityID: "a1", UserID: r.PathValue("id"), Recommendation: "first"},
			{ActivityID: "a2", UserID: r.PathValue("id"), Recommendation: "second"},
		})
	})
	repo := newRepo(t, mux)

	recs, err := repo.ForUser(context.Background(), "user-1")
	require.NoError(t, err)
	require.Len(t, recs, 2)
	require.Equal(t, "a1", recs[0].ActivityID)
	require.Equal(t, "user-1", recs[1].UserID)

	recs, err = repo.ForUser(context.Background(), "quiet")
	require.NoError(t, err)
	require.NotNil(t, recs)
	require.Empty(t, recs)

	_, err = repo.ForUser(context.Background(), "")
	require.True(t, domain.IsValidation(err))
}
