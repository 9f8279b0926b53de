package routing

import "fmt"

// Error taxonomy for the routing pipeline. Each stage wraps its failure
// in one of these; the orchestrator converts any of them into a single
// terminal event and ends the stream.

// CatalogError means the agent registry was unreachable or returned an
// unusable response. An empty catalog is not an error.
type CatalogError struct {
	Err error
}

func (e *CatalogError) Error() string {
	return fmt.Sprintf("agent registry unavailable: %v", e.Err)
}

func (e *CatalogError) Unwrap() error { return e.Err }

// EmbeddingError means the embedding provider call failed while
// building or querying the shortlist index.
type EmbeddingError struct {
	Err error
}

func (e *EmbeddingError) Error() string {
	return fmt.Sprintf("embedding provider unavailable: %v", e.Err)
}

func (e *EmbeddingError) Unwrap() error { return e.Err }

// EngineError wraps any failure in prompt construction, the LLM call,
// or parsing the model's structured output.
type EngineError struct {
	Err error
}

func (e *EngineError) Error() string {
	return fmt.Sprintf("routing engine failed: %v", e.Err)
}

func (e *EngineError) Unwrap() error { return e.Err }

// AgentClientError means the invocation of the chosen agent failed:
// transport error, non-2xx status, or a JSON-RPC error envelope.
type AgentClientError struct {
	Err error
}

func (e *AgentClientError) Error() string {
	return fmt.Sprintf("agent request failed: %v", e.Err)
}

func (e *AgentClientError) Unwrap() error { return e.Err }

// ValidationError means the inbound request was malformed (empty
// session or query, oversized file). Surfaced before streaming begins.
type ValidationError struct {
	Reason string
}

func (e *ValidationError) Error() string { return e.Reason }
