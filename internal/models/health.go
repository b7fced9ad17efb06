package models

type HealthState string

const (
	HealthStatusHealthy   HealthState = "healthy"
	HealthStatusDegraded  HealthState = "degraded"
	HealthStatusUnhealthy HealthState = "unhealthy"
)

type HealthResponse struct {
	Status      HealthState            `json:"status"`
	ApiBasePath string                 `json:"path"`
	Timestamp   string                 `json:"timestamp"`
	Version     string                 `json:"version"`
	Services    map[string]HealthState `json:"services,omitempty"`
}
