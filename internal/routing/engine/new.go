package engine

import (
	"context"

	"agent-gateway/internal/routing"
	"agent-gateway/pkg/gemini"
	pkgLog "agent-gateway/pkg/log"
)

// Selector picks the final agent from a shortlist
type Selector interface {
	Select(ctx context.Context, query string, cards []routing.TrimmedCard) (routing.RouterOutput, error)
}

// Engine selects an agent for a user request using LLM classification
type Engine struct {
	llm gemini.IGemini
	l   pkgLog.Logger
}

// Ensure Engine implements Selector interface
var _ Selector = (*Engine)(nil)

// New creates a new routing engine
func New(llm gemini.IGemini, l pkgLog.Logger) *Engine {
	return &Engine{
		llm: llm,
		l:   l,
	}
}
