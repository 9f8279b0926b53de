package agentclient

import "time"

// Log prefixes
const (
	LogPrefixSend   = "routing.agentclient.SendRequest"
	LogPrefixHealth = "routing.agentclient.HealthCheck"
)

// JSON-RPC constants
const (
	rpcVersion    = "2.0"
	rpcMethodSend = "message/send"

	partKindText = "text"
	partKindFile = "file"
	roleUser     = "user"
)

// Timeouts
const (
	DefaultTimeout     = 60 * time.Second
	healthCheckTimeout = 10 * time.Second
)
