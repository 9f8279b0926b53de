package engine

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"

	"agent-gateway/internal/routing"
	"agent-gateway/pkg/gemini"
)

// Select asks the LLM to pick one agent from the shortlisted cards.
// Every failure surfaces as *routing.EngineError; there is no fallback
// pick here, the caller owns recovery.
func (e *Engine) Select(ctx context.Context, query string, cards []routing.TrimmedCard) (routing.RouterOutput, error) {
	if len(cards) == 0 {
		return routing.RouterOutput{}, &routing.EngineError{Err: errors.New(ErrMsgNoCards)}
	}

	cardsJSON, err := json.Marshal(cards)
	if err != nil {
		return routing.RouterOutput{}, &routing.EngineError{Err: fmt.Errorf("failed to encode agent cards: %w", err)}
	}

	prompt := fmt.Sprintf(PromptSelectUser, string(cardsJSON), query)

	resp, err := e.llm.GenerateContent(ctx, gemini.GenerateRequest{
		SystemInstruction: &gemini.Content{
			Parts: []gemini.Part{
				{Text: PromptSelectSystem},
			},
		},
		Contents: []gemini.Content{
			{
				Role: "user",
				Parts: []gemini.Part{
					{Text: prompt},
				},
			},
		},
		GenerationConfig: &gemini.GenerationConfig{
			Temperature:      gemini.Temperature(SelectTemperature),
			ResponseMIMEType: "application/json",
			ResponseSchema: map[string]any{
				"type": "object",
				"properties": map[string]any{
					"agent_name": map[string]any{
						"type":        "string",
						"description": "The name of the agent which should serve the request",
					},
				},
				"required": []string{"agent_name"},
			},
		},
	})
	if err != nil {
		return routing.RouterOutput{}, &routing.EngineError{Err: fmt.Errorf("%s: %w", ErrMsgLLMCallFailed, err)}
	}

	if len(resp.Candidates) == 0 || len(resp.Candidates[0].Content.Parts) == 0 {
		return routing.RouterOutput{}, &routing.EngineError{Err: errors.New(ErrMsgEmptyResponse)}
	}

	responseText := strings.TrimSpace(resp.Candidates[0].Content.Parts[0].Text)

	// Strip markdown code blocks if present (```json ... ```)
	if strings.HasPrefix(responseText, "```json") {
		responseText = strings.TrimPrefix(responseText, "```json")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	} else if strings.HasPrefix(responseText, "```") {
		responseText = strings.TrimPrefix(responseText, "```")
		responseText = strings.TrimSuffix(responseText, "```")
		responseText = strings.TrimSpace(responseText)
	}

	var output routing.RouterOutput
	if err := json.Unmarshal([]byte(responseText), &output); err != nil {
		return routing.RouterOutput{}, &routing.EngineError{Err: fmt.Errorf("%s: %w", ErrMsgParseFailed, err)}
	}
	if output.AgentName == "" {
		return routing.RouterOutput{}, &routing.EngineError{Err: errors.New(ErrMsgEmptyAgentName)}
	}

	e.l.Infof(ctx, "%s: selected agent %q", LogPrefixSelect, output.AgentName)
	return output, nil
}
