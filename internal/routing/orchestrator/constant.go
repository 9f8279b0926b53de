package orchestrator

// Log prefixes
const (
	LogPrefixProcess = "routing.orchestrator.Process"
)

// shortlistSize bounds how many candidates reach the LLM selection.
const shortlistSize = 2

// Progress messages streamed to the caller. Kept verbatim so existing
// clients that match on them keep working.
const (
	MsgProcessing      = "Processing user's query..."
	MsgFetchingAgents  = "Fetching agent details from the registry..."
	MsgReceivedAgents  = "Received agent details from the registry..."
	MsgDetermining     = "Determining the best agent to serve the user's query..."
	MsgNoAgents        = "No agents available in registry"
	MsgNoAgentURLs     = "No agents with valid URLs found"
	MsgSendingToAgent  = "Sending user's query to agent..."
	MsgSelectedFmt     = "Agent selected to serve user's query: %s"
)
