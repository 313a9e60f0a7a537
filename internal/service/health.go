package service

import (
	"context"
	"time"
)

// Health statuses reported by Health.
const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthReport is the outcome of a single storage connectivity check.
type HealthReport struct {
	Status    string    `json:"status"`
	Message   string    `json:"message"`
	Error     string    `json:"error,omitempty"`
	Timestamp time.Time `json:"timestamp"`
}

// Healthy reports whether the check succeeded.
func (h HealthReport) Healthy() bool {
	return h.Status == StatusHealthy
}

// Health pings the database once. There is no retry; any failure is
// reported with its message.
func (s *Service) Health(ctx context.Context) HealthReport {
	if err := s.db.PingContext(ctx); err != nil {
		s.logger.WithError(err).Warn("Health check failed")
		return HealthReport{
			Status:    StatusUnhealthy,
			Message:   "Database connection failed",
			Error:     err.Error(),
			Timestamp: s.now(),
		}
	}
	return HealthReport{
		Status:    StatusHealthy,
		Message:   "Application is running correctly",
		Timestamp: s.now(),
	}
}
