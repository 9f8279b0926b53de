package agentclient

import (
	"bytes"
	"context"
	"encoding/base64"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/google/uuid"

	"agent-gateway/internal/routing"
)

// SendRequest posts the user request to the agent as a JSON-RPC 2.0
// message/send call and returns the agent's text reply. The bearer
// token, when present, is forwarded unchanged. The call is never
// retried; retry policy belongs to the caller.
func (c *Client) SendRequest(ctx context.Context, agentURL string, req routing.UserRequest, files []routing.File, token string) (string, error) {
	payload := c.buildPayload(req, files)

	body, err := json.Marshal(payload)
	if err != nil {
		return "", &routing.AgentClientError{Err: fmt.Errorf("failed to encode payload: %w", err)}
	}

	c.l.Infof(ctx, "%s: sending request to agent %s (%d files)", LogPrefixSend, agentURL, len(files))

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, agentURL, bytes.NewReader(body))
	if err != nil {
		return "", &routing.AgentClientError{Err: fmt.Errorf("failed to build agent request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	if token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return "", &routing.AgentClientError{Err: fmt.Errorf("failed to call agent %s: %w", agentURL, err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		raw, _ := io.ReadAll(resp.Body)
		return "", &routing.AgentClientError{Err: fmt.Errorf("agent %s returned %d: %s", agentURL, resp.StatusCode, string(raw))}
	}

	var parsed rpcResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return "", &routing.AgentClientError{Err: fmt.Errorf("failed to decode agent response: %w", err)}
	}
	if len(parsed.Error) > 0 {
		return "", &routing.AgentClientError{Err: fmt.Errorf("agent error: %s", string(parsed.Error))}
	}
	if parsed.Result == nil {
		return "", &routing.AgentClientError{Err: errors.New("invalid response: missing result field")}
	}

	text, err := extractText(parsed.Result)
	if err != nil {
		return "", &routing.AgentClientError{Err: err}
	}

	c.l.Infof(ctx, "%s: received reply from agent %s", LogPrefixSend, agentURL)
	return text, nil
}

// HealthCheck probes the agent's /health endpoint. Failures are
// reported as unhealthy, never as errors.
func (c *Client) HealthCheck(ctx context.Context, agentURL string) bool {
	healthURL := fmt.Sprintf("%s/health", strings.TrimRight(agentURL, "/"))

	ctx, cancel := context.WithTimeout(ctx, healthCheckTimeout)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, healthURL, nil)
	if err != nil {
		return false
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.l.Warnf(ctx, "%s: agent %s unreachable: %v", LogPrefixHealth, agentURL, err)
		return false
	}
	defer resp.Body.Close()

	return resp.StatusCode == http.StatusOK
}

// buildPayload assembles the JSON-RPC envelope. The text part always
// comes first, followed by one base64 file part per attachment.
func (c *Client) buildPayload(req routing.UserRequest, files []routing.File) rpcRequest {
	parts := make([]part, 0, 1+len(files))
	parts = append(parts, part{Kind: partKindText, Text: req.Query})
	for _, f := range files {
		parts = append(parts, part{
			Kind: partKindFile,
			File: &filePayload{
				Bytes: base64.StdEncoding.EncodeToString(f.Content),
				Name:  f.Name,
			},
		})
	}

	metadata := map[string]string{}
	if req.Route != "" {
		metadata["route"] = req.Route
	}

	return rpcRequest{
		JSONRPC: rpcVersion,
		ID:      req.SessionID,
		Method:  rpcMethodSend,
		Params: rpcParams{
			Message: rpcMessage{
				Role:      roleUser,
				Parts:     parts,
				MessageID: uuid.NewString(),
				ContextID: uuid.NewString(),
			},
			Configuration: rpcConfiguration{
				AcceptedOutputModes: c.acceptedOutputModes,
				HistoryLength:       c.historyLength,
				Blocking:            c.blocking,
			},
			Metadata: metadata,
		},
	}
}

// extractText concatenates text parts from the reply, checking
// artifacts first, then the message shape, then bare top-level parts.
func extractText(result *rpcResult) (string, error) {
	var texts []string
	for _, artifact := range result.Artifacts {
		texts = append(texts, textParts(artifact.Parts)...)
	}
	if len(texts) == 0 && result.Message != nil {
		texts = textParts(result.Message.Parts)
	}
	if len(texts) == 0 {
		texts = textParts(result.Parts)
	}
	if len(texts) == 0 {
		return "", errors.New("no text parts found in agent response")
	}
	return strings.Join(texts, "\n"), nil
}

func textParts(parts []replyPart) []string {
	var texts []string
	for _, p := range parts {
		if p.Kind == partKindText {
			texts = append(texts, p.Text)
		}
	}
	return texts
}
