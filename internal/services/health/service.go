package health

import "time"

// Service encapsulates health-related checks. It touches nothing in the
// analysis pipeline so it stays fast regardless of load.
type Service struct {
	version     string
	environment string
	startedAt   time.Time

	now func() time.Time
}

// NewService constructs a new health service.
func NewService(version, environment string) *Service {
	return &Service{
		version:     version,
		environment: environment,
		startedAt:   time.Now(),
		now:         time.Now,
	}
}

// Status returns the health payload.
func (s *Service) Status() map[string]any {
	return map[string]any{
		"status":         "healthy",
		"version":        s.version,
		"uptime_seconds": int64(s.now().Sub(s.startedAt).Seconds()),
		"environment":    s.environment,
	}
}
