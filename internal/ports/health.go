package ports

import "context"

// HealthStatus represents the health of one component
type HealthStatus struct {
	Component string                 `json:"component"`
	Status    string                 `json:"status"`
	Error     string                 `json:"error,omitempty"`
	Details   map[string]interface{} `json:"details,omitempty"`
}

// Healthy reports whether the component is usable
func (h HealthStatus) Healthy() bool {
	return h.Status == StatusHealthy
}

const (
	StatusHealthy   = "healthy"
	StatusUnhealthy = "unhealthy"
)

// HealthChecker checks one component
type HealthChecker interface {
	Check(ctx context.Context) HealthStatus
}
