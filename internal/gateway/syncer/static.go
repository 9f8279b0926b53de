package syncer

import (
	"context"
	"fmt"

	"agent-gateway/internal/gateway/kong"
)

// staticProxy is a fixed platform route registered once at startup.
type staticProxy struct {
	name        string
	host        string
	port        int
	path        string
	methods     []string
	stripPath   bool
	middlewares []string
}

func (s *Syncer) staticProxies() []staticProxy {
	return []staticProxy{
		{
			name:        StaticBackendProxy,
			host:        hostOr(s.cfg.BackendHost, "backend"),
			port:        8000,
			path:        "/api",
			stripPath:   false,
			middlewares: []string{MiddlewareCORS, MiddlewareAuthCheck},
		},
		{
			name:        StaticWebProxy,
			host:        hostOr(s.cfg.WebHost, "web-app"),
			port:        4000,
			path:        "/app",
			stripPath:   true,
			middlewares: []string{MiddlewareCORS},
		},
		{
			name:        StaticAuthProxy,
			host:        hostOr(s.cfg.AuthHost, "auth-service"),
			port:        8001,
			path:        "/auth",
			stripPath:   false,
			middlewares: []string{MiddlewareCORS},
		},
		{
			name:        StaticRouterProxy,
			host:        hostOr(s.cfg.RouterHost, "router"),
			port:        8000,
			path:        "/router",
			stripPath:   false,
			middlewares: []string{MiddlewareCORS, MiddlewareAuthCheck, MiddlewareRequestLogger},
		},
		{
			name: StaticLandingPage,
			// The upstream is never reached; static-landing terminates
			// the request with the landing page body.
			host:        "httpbin.org",
			port:        80,
			path:        "/",
			methods:     []string{"GET"},
			stripPath:   false,
			middlewares: []string{MiddlewareCORS, MiddlewareStaticLanding},
		},
		{
			name:        StaticWorkflow,
			host:        hostOr(s.cfg.WorkflowHost, "workflow"),
			port:        5678,
			path:        "/workflows",
			stripPath:   true,
			middlewares: []string{MiddlewareCORS},
		},
	}
}

// registerStaticProxies converges all static proxies. Returns the
// first error so the cycle retries the full set next time.
func (s *Syncer) registerStaticProxies(ctx context.Context) error {
	for _, proxy := range s.staticProxies() {
		service := kong.Service{
			Name:           proxy.name,
			URL:            fmt.Sprintf("http://%s:%d", proxy.host, proxy.port),
			Protocol:       "http",
			ConnectTimeout: upstreamTimeoutMs,
			WriteTimeout:   upstreamTimeoutMs,
			ReadTimeout:    upstreamTimeoutMs,
			Retries:        upstreamRetries,
		}

		_, exists, err := s.admin.GetService(ctx, proxy.name)
		if err != nil {
			return fmt.Errorf("%s: service lookup: %w", proxy.name, err)
		}
		if exists {
			if err := s.admin.UpdateService(ctx, proxy.name, service); err != nil {
				return fmt.Errorf("%s: service update: %w", proxy.name, err)
			}
		} else {
			if err := s.admin.CreateService(ctx, service); err != nil {
				return fmt.Errorf("%s: service create: %w", proxy.name, err)
			}
		}

		route := kong.Route{
			Name:         routeName(proxy.name),
			Paths:        []string{proxy.path},
			Methods:      proxy.methods,
			StripPath:    proxy.stripPath,
			PreserveHost: false,
		}
		if err := s.upsertRoute(ctx, proxy.name, route); err != nil {
			return fmt.Errorf("%s: %w", proxy.name, err)
		}

		if err := s.applyMiddlewares(ctx, route.Name, proxy.middlewares); err != nil {
			return fmt.Errorf("%s: %w", proxy.name, err)
		}

		s.l.Infof(ctx, "%s: registered static proxy %s -> %s", LogPrefixStatic, proxy.name, service.URL)
	}
	return nil
}

// pluginFor maps a middleware name to its gateway plugin definition.
func (s *Syncer) pluginFor(name string) (kong.Plugin, bool) {
	switch name {
	case MiddlewareCORS:
		return kong.Plugin{
			Name: "cors",
			Config: map[string]any{
				"origins":     []string{"*"},
				"methods":     []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
				"headers":     []string{"Accept", "Authorization", "Content-Type"},
				"credentials": true,
				"max_age":     3600,
			},
		}, true
	case MiddlewareAuthCheck:
		return kong.Plugin{
			Name: "auth-check",
			Config: map[string]any{
				"auth_service_url": s.cfg.AuthServiceURL,
				"timeout":          5000,
			},
		}, true
	case MiddlewareRequestLogger:
		return kong.Plugin{
			Name: "request-logger",
		}, true
	case MiddlewareStaticLanding:
		return kong.Plugin{
			Name: "request-termination",
			Config: map[string]any{
				"status_code":  200,
				"content_type": "text/html",
				"body":         landingPageHTML,
			},
		}, true
	}
	return kong.Plugin{}, false
}

const landingPageHTML = `<!DOCTYPE html>
<html>
<head><title>Agent Gateway</title></head>
<body>
<h1>Agent Gateway</h1>
<p>Routes: <code>/router</code>, <code>/api</code>, <code>/app</code>, <code>/auth</code>, <code>/workflows</code>.</p>
</body>
</html>`

func hostOr(configured, fallback string) string {
	if configured != "" {
		return configured
	}
	return fallback
}
