package console

import (
	"context"
	"fmt"

	"github.com/iudanet/casinoadmin/pkg/api"
)

// System exposes the health endpoints (domain "system")
type System struct {
	rpc Caller
}

// NewSystem creates System
func NewSystem(rpc Caller) *System {
	return &System{rpc: rpc}
}

// Ping returns the server's pong
func (s *System) Ping(ctx context.Context) (string, error) {
	var resp api.PingResponse
	if err := s.rpc.Invoke(ctx, "ping", nil, &resp); err != nil {
		return "", fmt.Errorf("system.ping request failed: %w", err)
	}
	return resp.Pong, nil
}

// Version returns the server version
func (s *System) Version(ctx context.Context) (string, error) {
	var resp api.VersionResponse
	if err := s.rpc.Invoke(ctx, "version", nil, &resp); err != nil {
		return "", fmt.Errorf("system.version request failed: %w", err)
	}
	return resp.Version, nil
}
