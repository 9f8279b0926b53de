package catalog

import "agent-gateway/internal/routing"

// registryResponse is the envelope returned by the registry service.
type registryResponse struct {
	Data []routing.AgentDescriptor `json:"data"`
}
