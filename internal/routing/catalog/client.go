package catalog

import (
	"context"
	"crypto/sha256"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"agent-gateway/internal/routing"
)

// FetchAgentCards retrieves the agent descriptors the caller is allowed
// to route to. The bearer token is forwarded so the registry can scope
// results. An empty list is a valid result, not an error; descriptors
// missing name or description are dropped during normalization.
func (c *Client) FetchAgentCards(ctx context.Context, token string) ([]routing.AgentDescriptor, error) {
	cacheKey := tokenKey(token)
	if c.cache != nil {
		if cards, ok := c.cache.Get(cacheKey); ok {
			c.l.Infof(ctx, "%s: using cached agent cards (%d)", LogPrefixFetch, len(cards))
			return cards, nil
		}
	}

	url := fmt.Sprintf("%s/registry/user/agents/info", c.baseURL)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, &routing.CatalogError{Err: fmt.Errorf("failed to build registry request: %w", err)}
	}
	httpReq.Header.Set("Content-Type", "application/json")
	httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, &routing.CatalogError{Err: fmt.Errorf("failed to call registry API: %w", err)}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, &routing.CatalogError{Err: fmt.Errorf("registry API error %d: %s", resp.StatusCode, string(raw))}
	}

	var parsed registryResponse
	if err := json.NewDecoder(resp.Body).Decode(&parsed); err != nil {
		return nil, &routing.CatalogError{Err: fmt.Errorf("failed to decode registry response: %w", err)}
	}

	cards := c.normalize(ctx, parsed.Data)

	if c.cache != nil {
		c.cache.Add(cacheKey, cards)
	}

	c.l.Infof(ctx, "%s: fetched %d agent cards (%d eligible)", LogPrefixFetch, len(parsed.Data), len(cards))
	return cards, nil
}

// normalize drops descriptors that are ineligible for routing.
// A malformed entry never fails the whole fetch.
func (c *Client) normalize(ctx context.Context, raw []routing.AgentDescriptor) []routing.AgentDescriptor {
	cards := make([]routing.AgentDescriptor, 0, len(raw))
	for _, card := range raw {
		if card.Name == "" || card.Description == "" {
			c.l.Warnf(ctx, "%s: dropping agent card missing name or description: %+v", LogPrefixFetch, card)
			continue
		}
		cards = append(cards, card)
	}
	return cards
}

// TrimForRouting strips agent cards down to name, description and
// skills so only the routing-relevant fields reach the LLM prompt.
func TrimForRouting(cards []routing.AgentDescriptor) []routing.TrimmedCard {
	trimmed := make([]routing.TrimmedCard, 0, len(cards))
	for _, card := range cards {
		skills := card.Skills
		if skills == nil {
			skills = []routing.AgentSkill{}
		}
		trimmed = append(trimmed, routing.TrimmedCard{
			Name:        card.Name,
			Description: card.Description,
			Skills:      skills,
		})
	}
	return trimmed
}

// AgentURL returns the URL advertised for the named agent, or "".
func AgentURL(cards []routing.AgentDescriptor, name string) string {
	for _, card := range cards {
		if card.Name == name {
			return card.URL
		}
	}
	return ""
}

// FallbackAgent returns the first agent in catalog order that has a
// URL. Used when the selected name does not resolve.
func FallbackAgent(cards []routing.AgentDescriptor) (name, url string, ok bool) {
	for _, card := range cards {
		if card.Name != "" && card.URL != "" {
			return card.Name, card.URL, true
		}
	}
	return "", "", false
}

// tokenKey hashes the bearer token so raw credentials never sit in the
// cache key space.
func tokenKey(token string) string {
	sum := sha256.Sum256([]byte(token))
	return hex.EncodeToString(sum[:])
}
