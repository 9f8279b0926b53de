package orchestrator

import (
	"context"
	"time"
)

// HealthStatus is the router component health report.
type HealthStatus struct {
	Router     string            `json:"router"`
	Timestamp  int64             `json:"timestamp"`
	Components map[string]string `json:"components"`
}

// HealthCheck reports per-component wiring status. It makes no
// external calls; a component is unhealthy only when it is not wired.
func (o *Orchestrator) HealthCheck(ctx context.Context) HealthStatus {
	status := HealthStatus{
		Router:     "healthy",
		Timestamp:  time.Now().Unix(),
		Components: map[string]string{},
	}

	components := map[string]bool{
		"agent_registry": o.catalog != nil,
		"vector_store":   o.embedder != nil,
		"routing_engine": o.selector != nil,
		"agent_client":   o.invoker != nil,
	}
	for name, ok := range components {
		if ok {
			status.Components[name] = "healthy"
		} else {
			status.Components[name] = "unhealthy"
			status.Router = "unhealthy"
		}
	}
	return status
}
