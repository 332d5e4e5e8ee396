// Package api is the in-process stand-in for the chat backend. It simulates
// network latency and serves canned data; a real implementation would
// replace it with actual network calls without changing the store contracts.
package api

import (
	"context"
	"log/slog"
	"time"

	cache "github.com/patrickmn/go-cache"

	"github.com/raphaelgruber/gemchat/internal/storage"
)

// Simulated round-trip times, matching the original service.
const (
	countriesLatency = 1 * time.Second
	sendOTPLatency   = 2 * time.Second
	verifyOTPLatency = 1500 * time.Millisecond
)

// Service answers the client's mock request/response cycles.
type Service struct {
	repo   storage.Repository
	codes  *cache.Cache
	logger *slog.Logger

	// latency toggles the artificial delays; tests turn it off.
	latency bool
}

// Option configures a Service.
type Option func(*Service)

// WithoutLatency disables the simulated delays.
func WithoutLatency() Option {
	return func(s *Service) { s.latency = false }
}

// New creates the mock service. Issued OTP codes live in an in-memory cache
// with no expiry; nothing enforces a time limit on entering them.
func New(repo storage.Repository, logger *slog.Logger, opts ...Option) *Service {
	s := &Service{
		repo:    repo,
		codes:   cache.New(cache.NoExpiration, 10*time.Minute),
		logger:  logger,
		latency: true,
	}
	for _, opt := range opts {
		opt(s)
	}
	return s
}

// wait blocks for the simulated round trip, honoring cancellation.
func (s *Service) wait(ctx context.Context, d time.Duration) error {
	if !s.latency {
		return ctx.Err()
	}
	t := time.NewTimer(d)
	defer t.Stop()
	select {
	case <-ctx.Done():
		return ctx.Err()
	case <-t.C:
		return nil
	}
}
