package embeddings

// Defaults for the OpenAI-compatible embeddings API.
const (
	DefaultEndpoint = "https://api.openai.com/v1/embeddings"
	DefaultModel    = "text-embedding-ada-002"
)
