package index

// Log prefixes
const (
	LogPrefixBuild  = "routing.index.Build"
	LogPrefixSearch = "routing.index.Search"
)
