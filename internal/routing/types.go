package routing

// AgentDescriptor is one deployable agent as advertised to the router.
// Materialized fresh on every routing call from the catalog; never mutated.
type AgentDescriptor struct {
	Name         string            `json:"name"`
	Description  string            `json:"description"`
	URL          string            `json:"url"`
	Skills       []AgentSkill      `json:"skills,omitempty"`
	Capabilities AgentCapabilities `json:"capabilities,omitempty"`
}

// AgentSkill describes one advertised capability of an agent.
type AgentSkill struct {
	ID          string   `json:"id"`
	Name        string   `json:"name"`
	Description string   `json:"description"`
	Tags        []string `json:"tags,omitempty"`
}

// AgentCapabilities holds the agent's capability flags.
type AgentCapabilities struct {
	Streaming         bool `json:"streaming,omitempty"`
	PushNotifications bool `json:"pushNotifications,omitempty"`
}

// TrimmedCard is the compact descriptor shape sent to the LLM:
// name, description and skills only, to bound prompt size.
type TrimmedCard struct {
	Name        string       `json:"name"`
	Description string       `json:"description"`
	Skills      []AgentSkill `json:"skills"`
}

// UserRequest is one routing call.
// Route carries a previously resolved agent URL; when set, the
// orchestrator skips shortlist and selection and invokes it directly.
type UserRequest struct {
	SessionID string
	Query     string
	Route     string // empty means "route not yet decided"
}

// File is an uploaded attachment forwarded to the chosen agent.
type File struct {
	Name    string
	Content []byte
}

// RouterOutput is the LLM's structured routing decision.
type RouterOutput struct {
	AgentName string `json:"agent_name"`
}

// Event is one line of the streamed routing response.
//
// IsInternalResponse carries the wire polarity existing callers depend
// on: the agent's substantive answer is flagged true ("internal"),
// while the route-announcing event (the one whose URL the caller must
// remember for sticky routing) is flagged false. Do not "fix" this.
type Event struct {
	Message            string `json:"message"`
	IsInternalResponse bool   `json:"is_int_response"`
	AgentID            string `json:"agent_id"`
	URL                string `json:"url"`
}
