package engine

// Log prefixes
const (
	LogPrefixSelect = "routing.engine.Select"
)

// Engine prompts
const (
	PromptSelectSystem = `You are an agent router. Your job is to route a user's request to the appropriate agent.

INSTRUCTIONS:
1. You will be given a user's request.
2. You will also be given a list of agent names along with their capabilities.
3. You must use this list to determine which agent is appropriate to serve the user's request.
4. You must return agent_name.
5. agent_name is the name of the agent which should be used to serve the request.`

	PromptSelectUser = "List of agents:\n%s\nUser's request: %s."
)

// SelectTemperature pins the selection to deterministic output.
const SelectTemperature = 0.0

// Error messages
const (
	ErrMsgNoCards        = "no agent cards to select from"
	ErrMsgLLMCallFailed  = "LLM call failed"
	ErrMsgEmptyResponse  = "empty LLM response"
	ErrMsgParseFailed    = "failed to parse LLM response"
	ErrMsgEmptyAgentName = "LLM returned an empty agent_name"
)
