package httpclient

import (
	"net/http"
	"time"

	"storefront-gateway/internal/core/logger"

	"go.uber.org/zap"
)

// LoggingRoundTripper captures backend request details for debugging. When
// the request context names an acting storefront user, every log line
// carries it so backend traffic can be tied back to the gateway request.
type LoggingRoundTripper struct {
	// Proxied is the underlying RoundTripper to execute the request.
	Proxied http.RoundTripper
}

// RoundTrip executes the request and logs details.
func (lrt *LoggingRoundTripper) RoundTrip(req *http.Request) (*http.Response, error) {
	start := time.Now()

	fields := []zap.Field{
		zap.String("method", req.Method),
		zap.String("url", req.URL.String()),
	}
	if userID := UserFrom(req.Context()); userID != "" {
		fields = append(fields, zap.String("user_id", userID))
	}

	logger.Get().Debug("Backend Request Started", fields...)

	resp, err := lrt.Proxied.RoundTrip(req)

	duration := time.Since(start)

	if err != nil {
		logger.Get().Error("Backend Request Failed",
			append(fields, zap.Duration("duration", duration), zap.Error(err))...,
		)
		return nil, err
	}

	logger.Get().Debug("Backend Request Completed",
		append(fields, zap.Int("status_code", resp.StatusCode), zap.Duration("duration", duration))...,
	)

	return resp, nil
}

// NewClient returns an http.Client with logging middleware.
func NewClient(timeout time.Duration) *http.Client {
	return &http.Client{
		Transport: &LoggingRoundTripper{
			Proxied: http.DefaultTransport,
		},
		Timeout: timeout,
	}
}
