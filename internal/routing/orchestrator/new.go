package orchestrator

import (
	"context"

	"agent-gateway/internal/routing"
	"agent-gateway/internal/routing/agentclient"
	"agent-gateway/internal/routing/engine"
	"agent-gateway/pkg/embeddings"
	pkgLog "agent-gateway/pkg/log"
)

// CardFetcher provides the agent catalog for a caller
type CardFetcher interface {
	FetchAgentCards(ctx context.Context, token string) ([]routing.AgentDescriptor, error)
}

// Orchestrator runs the routing pipeline and streams progress events
type Orchestrator struct {
	catalog  CardFetcher
	embedder embeddings.IEmbedder
	selector engine.Selector
	invoker  agentclient.Invoker
	l        pkgLog.Logger
}

// New creates a new router orchestrator
func New(l pkgLog.Logger, catalog CardFetcher, embedder embeddings.IEmbedder, selector engine.Selector, invoker agentclient.Invoker) *Orchestrator {
	return &Orchestrator{
		catalog:  catalog,
		embedder: embedder,
		selector: selector,
		invoker:  invoker,
		l:        l,
	}
}
