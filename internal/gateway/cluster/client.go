package cluster

import (
	"context"
	"crypto/tls"
	"crypto/x509"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"path/filepath"
	"strings"
	"time"

	pkgLog "agent-gateway/pkg/log"
)

// Client discovers agent services through the Kubernetes API.
type Client struct {
	apiServer  string
	tokenPath  string
	namespace  string
	enabled    bool
	httpClient *http.Client
	l          pkgLog.Logger
}

// Config configures cluster discovery.
type Config struct {
	Enabled         bool
	APIServer       string // e.g. https://kubernetes.default.svc
	TokenPath       string // service account token file
	AgentsNamespace string
}

// NewClient creates a new cluster discovery client. The in-cluster CA
// bundle next to the token file is trusted when present.
func NewClient(l pkgLog.Logger, cfg Config) *Client {
	transport := http.DefaultTransport
	if cfg.TokenPath != "" {
		caPath := filepath.Join(filepath.Dir(cfg.TokenPath), "ca.crt")
		if ca, err := os.ReadFile(caPath); err == nil {
			pool := x509.NewCertPool()
			if pool.AppendCertsFromPEM(ca) {
				transport = &http.Transport{TLSClientConfig: &tls.Config{RootCAs: pool}}
			}
		}
	}

	return &Client{
		apiServer: cfg.APIServer,
		tokenPath: cfg.TokenPath,
		namespace: cfg.AgentsNamespace,
		enabled:   cfg.Enabled,
		httpClient: &http.Client{
			Timeout:   15 * time.Second,
			Transport: transport,
		},
		l: l,
	}
}

// ListAgentServices lists services in the agents namespace and keeps
// only the ones that look like routable agent backends. With discovery
// disabled or the namespace missing, the result is empty, not an error.
func (c *Client) ListAgentServices(ctx context.Context) ([]ServiceInfo, error) {
	if !c.enabled {
		return nil, nil
	}

	url := fmt.Sprintf("%s/api/v1/namespaces/%s/services", c.apiServer, c.namespace)

	httpReq, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	if token, err := c.bearerToken(); err == nil && token != "" {
		httpReq.Header.Set("Authorization", fmt.Sprintf("Bearer %s", token))
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("failed to call cluster API: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		c.l.Warnf(ctx, "%s: namespace %q not found", LogPrefixList, c.namespace)
		return nil, nil
	}
	if resp.StatusCode != http.StatusOK {
		raw, _ := io.ReadAll(resp.Body)
		return nil, fmt.Errorf("cluster API error %d: %s", resp.StatusCode, string(raw))
	}

	var list serviceList
	if err := json.NewDecoder(resp.Body).Decode(&list); err != nil {
		return nil, fmt.Errorf("failed to decode service list: %w", err)
	}

	services := make([]ServiceInfo, 0, len(list.Items))
	for _, svc := range list.Items {
		name := svc.Metadata.Name

		if _, system := systemServices[name]; system {
			continue
		}
		if isInfraName(name) {
			continue
		}
		// Headless services belong to StatefulSets, not agent APIs.
		if svc.Spec.ClusterIP == "None" {
			continue
		}

		port, ok := pickPort(svc)
		if !ok {
			c.l.Warnf(ctx, "%s: service %s has no ports defined", LogPrefixList, name)
			continue
		}

		info := ServiceInfo{
			Name:      name,
			Host:      fmt.Sprintf("%s.%s.svc.cluster.local", name, c.namespace),
			Port:      port,
			Path:      fmt.Sprintf("/agents/%s", name),
			Methods:   routeMethods,
			Namespace: c.namespace,
		}
		services = append(services, info)
		c.l.Infof(ctx, "%s: discovered agent service %s at %s:%d", LogPrefixList, name, info.Host, port)
	}

	return services, nil
}

// pickPort prefers HTTP-ish named ports, else the first port.
func pickPort(svc k8sService) (int, bool) {
	if len(svc.Spec.Ports) == 0 {
		return 0, false
	}
	for _, p := range svc.Spec.Ports {
		if _, ok := preferredPortNames[strings.ToLower(p.Name)]; ok {
			return p.Port, true
		}
	}
	return svc.Spec.Ports[0].Port, true
}

func isInfraName(name string) bool {
	lower := strings.ToLower(name)
	for _, pattern := range infraPatterns {
		if strings.Contains(lower, pattern) {
			return true
		}
	}
	return false
}

func (c *Client) bearerToken() (string, error) {
	if c.tokenPath == "" {
		return "", nil
	}
	raw, err := os.ReadFile(c.tokenPath)
	if err != nil {
		return "", err
	}
	return strings.TrimSpace(string(raw)), nil
}
