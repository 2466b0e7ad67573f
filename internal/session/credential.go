// Package session holds the signed-in user's credential and the stores that persist it.
package session

import (
	"errors"
	"fmt"
	"sort"
	"strings"
	"time"

	"github.com/golang-jwt/jwt/v5"
)

// ErrMissingToken is returned when a login is attempted without a bearer token.
var ErrMissingToken = errors.New("missing bearer token")

// ErrInvalidToken wraps token decoding failures.
var ErrInvalidToken = errors.New("invalid bearer token")

// Credential identifies the current authenticated caller.
type Credential struct {
	UserID    string    `json:"userId"`
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt,omitempty"`
	Scopes    []string  `json:"scopes,omitempty"`
}

// Empty reports whether the credential carries neither a user id nor a token.
func (c Credential) Empty() bool {
	return c.UserID == "" && c.Token == ""
}

// Expired reports whether the token carried an expiry that has passed.
func (c Credential) Expired(now time.Time) bool {
	return !c.ExpiresAt.IsZero() && !now.Before(c.ExpiresAt)
}

// HasScope reports whether the credential includes the provided scope.
func (c Credential) HasScope(scope string) bool {
	for _, s := range c.Scopes {
		if s == scope {
			return true
		}
	}
	return false
}

// FromToken builds a credential from a bearer token. JWTs are decoded without
// verification (the backend verifies them) to recover the subject, expiry and
// scopes; an explicit userID overrides the subject. Opaque tokens need userID.
func FromToken(token, userID string) (Credential, error) {
	token = strings.TrimSpace(token)
	userID = strings.TrimSpace(userID)
	if token == "" {
		return Credential{}, ErrMissingToken
	}

	cred := Credential{UserID: userID, Token: token}

	claims := jwt.MapClaims{}
	if _, _, err := jwt.NewParser().ParseUnverified(token, claims); err != nil {
		if userID == "" {
			return Credential{}, fmt.Errorf("%w: %v", ErrInvalidToken, err)
		}
		return cred, nil
	}

	if cred.UserID == "" {
		subject, err := claims.GetSubject()
		if err != nil || subject == "" {
			return Credential{}, fmt.Errorf("%w: token has no subject", ErrInvalidToken)
		}
		cred.UserID = subject
	}
	if exp, err := claims.GetExpirationTime(); err == nil && exp != nil {
		cred.ExpiresAt = exp.Time.UTC()
	}
	cred.Scopes = normalizeScopes(claims["scope"], claims["scopes"])
	return cred, nil
}

func normalizeScopes(values ...interface{}) []string {
	set := make(map[string]struct{})
	for _, value := range values {
		switch v := value.(type) {
		case []interface{}:
			for _, item := range v {
				if str, ok := item.(string); ok && str != "" {
					set[str] = struct{}{}
				}
			}
		case []string:
			for _, str := range v {
				if str != "" {
					set[str] = struct{}{}
				}
			}
		case string:
			for _, str := range strings.Split(v, " ") {
				str = strings.TrimSpace(str)
				if str != "" {
					set[str] = struct{}{}
				}
			}
		}
	}
	if len(set) == 0 {
		return nil
	}
	out := make([]string, 0, len(set))
	for s := range set {
		out = append(out, s)
	}
	sort.Strings(out)
	return out
}
