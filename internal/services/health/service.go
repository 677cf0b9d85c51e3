package health

import (
	"context"
	"time"
)

const defaultTimeout = 2 * time.Second

// Service encapsulates health-related checks.
type Service struct {
	ping    func(ctx context.Context) error
	timeout time.Duration
}

// NewService constructs a health service. A nil ping reports the database as disabled.
func NewService(ping func(ctx context.Context) error) *Service {
	return &Service{ping: ping, timeout: defaultTimeout}
}

// Status reports database health. The error is non-nil when the database is unreachable.
func (s *Service) Status(ctx context.Context) (map[string]any, error) {
	if s == nil || s.ping == nil {
		return map[string]any{"ok": true, "database": "disabled"}, nil
	}
	ctx, cancel := context.WithTimeout(ctx, s.timeout)
	defer cancel()
	if err := s.ping(ctx); err != nil {
		return map[string]any{"ok": false, "database": "down"}, err
	}
	return map[string]any{"ok": true, "database": "up"}, nil
}
