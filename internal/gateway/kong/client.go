package kong

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	pkgLog "agent-gateway/pkg/log"
)

// Client is the Kong admin API client.
type Client struct {
	baseURL    string
	httpClient *http.Client
	l          pkgLog.Logger
}

// NewClient creates a new Kong admin client.
func NewClient(l pkgLog.Logger, baseURL string) *Client {
	return &Client{
		baseURL:    baseURL,
		httpClient: &http.Client{Timeout: 10 * time.Second},
		l:          l,
	}
}

// Healthy reports whether the Kong admin API is up.
func (c *Client) Healthy(ctx context.Context) bool {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, fmt.Sprintf("%s/status", c.baseURL), nil)
	if err != nil {
		return false
	}
	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		c.l.Warnf(ctx, "gateway.kong.Healthy: %v", err)
		return false
	}
	defer resp.Body.Close()
	return resp.StatusCode == http.StatusOK
}

// GetService fetches a service by name. found is false on 404.
func (c *Client) GetService(ctx context.Context, name string) (svc *Service, found bool, err error) {
	var out Service
	found, err = c.get(ctx, fmt.Sprintf("/services/%s", name), &out)
	if err != nil || !found {
		return nil, found, err
	}
	return &out, true, nil
}

// CreateService creates a new service.
func (c *Client) CreateService(ctx context.Context, svc Service) error {
	return c.send(ctx, http.MethodPost, "/services", svc)
}

// UpdateService patches an existing service by name.
func (c *Client) UpdateService(ctx context.Context, name string, svc Service) error {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/services/%s", name), svc)
}

// DeleteService removes a service. Routes must be deleted first; Kong
// refuses to drop a service that still has routes.
func (c *Client) DeleteService(ctx context.Context, name string) error {
	return c.delete(ctx, fmt.Sprintf("/services/%s", name))
}

// ListServices returns every service Kong knows about.
func (c *Client) ListServices(ctx context.Context) ([]Service, error) {
	var out serviceListResponse
	found, err := c.get(ctx, "/services", &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return out.Data, nil
}

// GetRoute fetches a route by name. found is false on 404.
func (c *Client) GetRoute(ctx context.Context, name string) (route *Route, found bool, err error) {
	var out Route
	found, err = c.get(ctx, fmt.Sprintf("/routes/%s", name), &out)
	if err != nil || !found {
		return nil, found, err
	}
	return &out, true, nil
}

// CreateRoute creates a route under the named service.
func (c *Client) CreateRoute(ctx context.Context, serviceName string, route Route) error {
	route.Service = &ServiceRef{Name: serviceName}
	return c.send(ctx, http.MethodPost, fmt.Sprintf("/services/%s/routes", serviceName), route)
}

// UpdateRoute patches an existing route by name.
func (c *Client) UpdateRoute(ctx context.Context, name string, route Route) error {
	return c.send(ctx, http.MethodPatch, fmt.Sprintf("/routes/%s", name), route)
}

// DeleteRoute removes a route by id or name.
func (c *Client) DeleteRoute(ctx context.Context, idOrName string) error {
	return c.delete(ctx, fmt.Sprintf("/routes/%s", idOrName))
}

// ListRoutesForService returns the routes attached to a service.
func (c *Client) ListRoutesForService(ctx context.Context, serviceName string) ([]Route, error) {
	var out routeListResponse
	found, err := c.get(ctx, fmt.Sprintf("/services/%s/routes", serviceName), &out)
	if err != nil {
		return nil, err
	}
	if !found {
		return nil, nil
	}
	return out.Data, nil
}

// CreatePlugin attaches a plugin. A 409 means the plugin is already
// attached and is not an error.
func (c *Client) CreatePlugin(ctx context.Context, plugin Plugin) error {
	body, err := json.Marshal(plugin)
	if err != nil {
		return fmt.Errorf("failed to marshal plugin: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodPost, fmt.Sprintf("%s/plugins", c.baseURL), bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call kong admin API: %w", err)
	}
	defer resp.Body.Close()

	switch {
	case resp.StatusCode == http.StatusOK || resp.StatusCode == http.StatusCreated:
		return nil
	case resp.StatusCode == http.StatusConflict:
		// Already attached to the route.
		return nil
	default:
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("kong admin API error %d: %s", resp.StatusCode, string(raw))
	}
}

func (c *Client) get(ctx context.Context, path string, out any) (bool, error) {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+path, nil)
	if err != nil {
		return false, fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return false, fmt.Errorf("failed to call kong admin API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return false, nil
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return false, fmt.Errorf("kong admin API error %d: %s", resp.StatusCode, string(raw))
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return false, fmt.Errorf("failed to decode kong response: %w", err)
	}
	return true, nil
}

func (c *Client) send(ctx context.Context, method, path string, payload any) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return fmt.Errorf("failed to marshal request: %w", err)
	}

	httpReq, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, bytes.NewBuffer(body))
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", "application/json")

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call kong admin API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK && resp.StatusCode != http.StatusCreated {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("kong admin API error %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}

func (c *Client) delete(ctx context.Context, path string) error {
	httpReq, err := http.NewRequestWithContext(ctx, http.MethodDelete, c.baseURL+path, nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("failed to call kong admin API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusNoContent && resp.StatusCode != http.StatusNotFound {
		raw, _ := io.ReadAll(resp.Body)
		return fmt.Errorf("kong admin API error %d: %s", resp.StatusCode, string(raw))
	}
	return nil
}
