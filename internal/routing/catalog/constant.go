package catalog

// Log prefixes
const (
	LogPrefixFetch = "routing.catalog.FetchAgentCards"
)

// cacheSize bounds the per-token snapshot cache.
const cacheSize = 128
