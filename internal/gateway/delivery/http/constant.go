package http

const (
	LogPrefixSync = "gateway.delivery.http.Sync"
)
