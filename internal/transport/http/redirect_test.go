package httptransport

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sync"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zaptest"

	"example.com/fitnessclient/internal/domain"
	"example.com/fitnessclient/internal/session"
)

// redirectBackend answers on 127.0.0.1 and redirects /away to the same listener
// addressed as localhost, which the client must treat as another host.
type redirectBackend struct {
	mu          sync.Mutex
	port        string
	landing     http.Header
	landingCode int
	same        http.Header
}

func (b *redirectBackend) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	b.mu.Lock()
	defer b.mu.Unlock()
	switch r.URL.Path {
	case "/away":
		http.Redirect(w, r, "http://localhost:"+b.port+"/landing", http.StatusFound)
	case "/moved":
		http.Redirect(w, r, "/here", http.StatusFound)
	case "/landing":
		b.landing = r.Header.Clone()
		w.WriteHeader(b.landingCode)
		_, _ = w.Write([]byte(`{}`))
	case "/here":
		b.same = r.Header.Clone()
		_, _ = w.Write([]byte(`{}`))
	}
}

func newRedirectClient(t *testing.T, landingCode int) (*Client, *redirectBackend, session.Store) {
	t.Helper()
	backend := &redirectBackend{landingCode: landingCode}
	srv := httptest.NewServer(backend)
	t.Cleanup(srv.Close)
	u, err := url.Parse(srv.URL)
	require.NoError(t, err)
	backend.port = u.Port()

	store := session.NewMemoryStore()
	require.NoError(t, store.Set(session.Credential{UserID: "u1", Token: "secret"}))
	client := NewClient(ClientConfig{BaseURL: srv.URL}, store, WithLogger(zaptest.NewLogger(t)))
	return client, backend, store
}

func TestRedirectToAnotherHostDropsSession(t *testing.T) {
	client, backend, _ := newRedirectClient(t, http.StatusOK)

	var out map[string]any
	require.NoError(t, client.Do(context.Background(), Call{Method: http.MethodGet, Route: "/away", Path: "/away", Out: &out}))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.NotNil(t, backend.landing)
	require.Empty(t, backend.landing.Get(HeaderAuthorization))
	require.Empty(t, backend.landing.Get(HeaderUserID))
}

func TestRedirectWithinBackendKeepsSession(t *testing.T) {
	client, backend, _ := newRedirectClient(t, http.StatusOK)

	var out map[string]any
	require.NoError(t, client.Do(context.Background(), Call{Method: http.MethodGet, Route: "/moved", Path: "/moved", Out: &out}))

	backend.mu.Lock()
	defer backend.mu.Unlock()
	require.Equal(t, "Bearer secret", backend.same.Get(HeaderAuthorization))
	require.Equal(t, "u1", backend.same.Get(HeaderUserID))
}

func TestUnauthorizedFromAnotherHostKeepsSession(t *testing.T) {
	client, _, store := newRedirectClient(t, http.StatusUnauthorized)

	err := client.Do(context.Background(), Call{Method: http.MethodGet, Route: "/away", Path: "/away"})
	require.ErrorIs(t, err, domain.ErrUnauthorized)

	cred, ok := store.Get()
	require.True(t, ok)
	require.Equal(t, "secret", cred.Token)
}
