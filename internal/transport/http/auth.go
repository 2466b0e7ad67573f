package httptransport

import (
	"context"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"go.uber.org/zap"

	"example.com/fitnessclient/internal/session"
)

const (
	// HeaderUserID carries the signed-in user's identifier.
	HeaderUserID = "X-User-ID"
	// HeaderAuthorization carries the bearer token.
	HeaderAuthorization = "Authorization"
)

// Navigator moves the application to its unauthenticated entry point.
type Navigator interface {
	NavigateRoot()
}

// NavigatorFunc adapts a function to Navigator.
type NavigatorFunc func()

// NavigateRoot calls f.
func (f NavigatorFunc) NavigateRoot() { f() }

// NoopNavigator performs no navigation.
type NoopNavigator struct{}

// NavigateRoot performs no action.
func (NoopNavigator) NavigateRoot() {}

type routeKey struct{}

func withRoute(ctx context.Context, route string) context.Context {
	if route == "" {
		return ctx
	}
	return context.WithValue(ctx, routeKey{}, route)
}

func routeFrom(ctx context.Context) string {
	if route, ok := ctx.Value(routeKey{}).(string); ok {
		return route
	}
	return "other"
}

// authTransport decorates outbound requests with the session and resets the
// session when the backend answers 401.
type authTransport struct {
	// host is the backend authority; only requests to it carry the session.
	host      string
	base      http.RoundTripper
	store     session.Store
	navigator Navigator
	logger    *zap.Logger
}

func (t *authTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// RoundTrippers must not modify the caller's request.
	out := req.Clone(req.Context())
	out.Header.Del(HeaderUserID)
	out.Header.Del(HeaderAuthorization)
	backend := t.isBackend(out.URL)
	if cred, ok := t.store.Get(); ok && backend {
		if cred.UserID != "" {
			out.Header.Set(HeaderUserID, cred.UserID)
		}
		if cred.Token != "" {
			out.Header.Set(HeaderAuthorization, "Bearer "+cred.Token)
		}
	}

	route := routeFrom(req.Context())
	start := time.Now()
	resp, err := t.base.RoundTrip(out)
	requestDuration.WithLabelValues(route).Observe(time.Since(start).Seconds())
	if err != nil {
		requestCounter.WithLabelValues(req.Method, route, "error").Inc()
		t.logger.Debug("request failed", zap.String("method", req.Method), zap.String("path", req.URL.Path), zap.Error(err))
		return nil, err
	}
	requestCounter.WithLabelValues(req.Method, route, strconv.Itoa(resp.StatusCode)).Inc()
	t.logger.Debug("request completed",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
		zap.Int("status", resp.StatusCode),
		zap.Duration("elapsed", time.Since(start)),
	)

	if resp.StatusCode == http.StatusUnauthorized && backend {
		t.resetSession(req)
	}
	return resp, nil
}

// isBackend reports whether u addresses the configured backend. Redirects to
// another host are sent without the session.
func (t *authTransport) isBackend(u *url.URL) bool {
	if t.host == "" {
		return true
	}
	return strings.EqualFold(u.Host, t.host)
}

func (t *authTransport) resetSession(req *http.Request) {
	if err := t.store.Clear(); err != nil {
		t.logger.Error("failed to clear session after 401", zap.Error(err))
	}
	sessionClearedCounter.Inc()
	t.logger.Warn("session cleared after unauthorized response",
		zap.String("method", req.Method),
		zap.String("path", req.URL.Path),
	)
	t.navigator.NavigateRoot()
}
