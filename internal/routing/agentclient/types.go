package agentclient

import "encoding/json"

// JSON-RPC 2.0 envelope sent to agents
type rpcRequest struct {
	JSONRPC string    `json:"jsonrpc"`
	ID      string    `json:"id"`
	Method  string    `json:"method"`
	Params  rpcParams `json:"params"`
}

type rpcParams struct {
	Message       rpcMessage        `json:"message"`
	Configuration rpcConfiguration  `json:"configuration"`
	Metadata      map[string]string `json:"metadata"`
}

type rpcMessage struct {
	Role      string `json:"role"`
	Parts     []part `json:"parts"`
	MessageID string `json:"messageId"`
	ContextID string `json:"contextId"`
}

type rpcConfiguration struct {
	AcceptedOutputModes []string `json:"acceptedOutputModes,omitempty"`
	HistoryLength       *int     `json:"historyLength,omitempty"`
	Blocking            bool     `json:"blocking"`
}

// part is either a text part or a file part, discriminated by Kind.
type part struct {
	Kind string       `json:"kind"`
	Text string       `json:"text,omitempty"`
	File *filePayload `json:"file,omitempty"`
}

type filePayload struct {
	Bytes string `json:"bytes"`
	Name  string `json:"name"`
}

// JSON-RPC reply shapes
type rpcResponse struct {
	Result *rpcResult      `json:"result"`
	Error  json.RawMessage `json:"error"`
}

type rpcResult struct {
	Kind      string      `json:"kind"`
	Artifacts []rpcReply  `json:"artifacts"`
	Message   *rpcReply   `json:"message"`
	Parts     []replyPart `json:"parts"`
}

type rpcReply struct {
	Parts []replyPart `json:"parts"`
}

type replyPart struct {
	Kind string `json:"kind"`
	Text string `json:"text"`
}
