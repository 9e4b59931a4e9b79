package infrastructure

import (
	"context"

	"gorm.io/gorm"
	"weatherview.app/internal/ports"
)

// DatabaseHealthChecker checks the preference database connection
type DatabaseHealthChecker struct {
	db *gorm.DB
}

// NewDatabaseHealthChecker creates a new database health checker
func NewDatabaseHealthChecker(db *gorm.DB) *DatabaseHealthChecker {
	return &DatabaseHealthChecker{db: db}
}

// Check verifies database connectivity
func (d *DatabaseHealthChecker) Check(ctx context.Context) ports.HealthStatus {
	status := ports.HealthStatus{
		Component: "preferences",
		Details:   make(map[string]interface{}),
	}

	if d.db == nil {
		status.Status = ports.StatusUnhealthy
		status.Error = "database instance is nil"
		return status
	}

	status.Details["driver"] = d.db.Dialector.Name()

	sqlDB, err := d.db.DB()
	if err != nil {
		status.Status = ports.StatusUnhealthy
		status.Error = "failed to get underlying database connection"
		return status
	}

	if err := sqlDB.PingContext(ctx); err != nil {
		status.Status = ports.StatusUnhealthy
		status.Error = err.Error()
		return status
	}

	status.Status = ports.StatusHealthy
	status.Details["connected"] = true
	return status
}
