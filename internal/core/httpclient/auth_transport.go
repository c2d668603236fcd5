package httpclient

import (
	"context"
	"io"
	"net/http"
	"time"

	"storefront-gateway/internal/core/logger"

	"go.uber.org/zap"
)

type userContextKey struct{}

// WithUser returns a context carrying the user whose tokens should
// authenticate outgoing backend requests.
func WithUser(ctx context.Context, userID string) context.Context {
	return context.WithValue(ctx, userContextKey{}, userID)
}

// UserFrom extracts the authenticated user ID from the context, if any.
func UserFrom(ctx context.Context) string {
	id, _ := ctx.Value(userContextKey{}).(string)
	return id
}

// TokenSource supplies per-user bearer tokens for backend requests.
type TokenSource interface {
	// AccessToken returns the current access token for the user.
	AccessToken(ctx context.Context, userID string) (string, error)

	// RefreshAccess exchanges the user's refresh token for a new token pair
	// and returns the new access token. stale is the access token that just
	// failed; implementations are expected to coalesce concurrent refreshes
	// for the same user.
	RefreshAccess(ctx context.Context, userID, stale string) (string, error)
}

// AuthTransport injects a bearer token into outgoing requests and performs a
// single refresh-and-retry on 401/403 responses. Requests whose context
// carries no user pass through untouched.
type AuthTransport struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
	// Tokens supplies and refreshes access tokens.
	Tokens TokenSource
}

// RoundTrip executes the request with bearer auth and at most one retry after
// a token refresh.
func (t *AuthTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	userID := UserFrom(req.Context())
	if userID == "" || t.Tokens == nil {
		return t.Proxied.RoundTrip(req)
	}

	token, err := t.Tokens.AccessToken(req.Context(), userID)
	if err != nil {
		return nil, err
	}

	resp, err := t.do(req, token)
	if err != nil {
		return nil, err
	}

	if resp.StatusCode != http.StatusUnauthorized && resp.StatusCode != http.StatusForbidden {
		return resp, nil
	}

	fresh, refreshErr := t.Tokens.RefreshAccess(req.Context(), userID, token)
	if refreshErr != nil {
		// A failed refresh surfaces the original auth response.
		logger.Get().Warn("Token refresh failed",
			zap.String("user_id", userID),
			zap.Error(refreshErr),
		)
		return resp, nil
	}

	io.Copy(io.Discard, resp.Body)
	resp.Body.Close()

	return t.do(req, fresh)
}

// do clones the request, attaches the bearer token and executes it. Cloning
// keeps RoundTrip from mutating the caller's request and lets the retry rewind
// the body via GetBody.
func (t *AuthTransport) do(req *http.Request, token string) (*http.Response, error) {
	clone := req.Clone(req.Context())
	if req.Body != nil && req.GetBody != nil {
		body, err := req.GetBody()
		if err != nil {
			return nil, err
		}
		clone.Body = body
	}
	clone.Header.Set("Authorization", "Bearer "+token)
	return t.Proxied.RoundTrip(clone)
}

// NewAuthedClient returns an http.Client whose requests carry per-user bearer
// tokens on top of the logging middleware.
func NewAuthedClient(timeout time.Duration, tokens TokenSource) *http.Client {
	return &http.Client{
		Transport: &AuthTransport{
			Proxied: &LoggingRoundTripper{Proxied: http.DefaultTransport},
			Tokens:  tokens,
		},
		Timeout: timeout,
	}
}
