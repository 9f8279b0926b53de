package http

// Log prefixes
const (
	LogPrefixProcess = "routing.delivery.http.ProcessRequest"
)
