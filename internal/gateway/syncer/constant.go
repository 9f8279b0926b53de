package syncer

import "time"

// Log prefixes
const (
	LogPrefixRun     = "gateway.syncer.Run"
	LogPrefixCycle   = "gateway.syncer.syncCycle"
	LogPrefixStatic  = "gateway.syncer.registerStaticProxies"
	LogPrefixCleanup = "gateway.syncer.cleanupStale"
)

// DefaultInterval between reconciliation cycles.
const DefaultInterval = 30 * time.Second

// Kong service timeouts (milliseconds).
const (
	upstreamTimeoutMs = 60000
	upstreamRetries   = 3
)

// Middleware names, applied to routes in this order.
const (
	MiddlewareCORS          = "cors"
	MiddlewareAuthCheck     = "auth-check"
	MiddlewareRequestLogger = "request-logger"
	MiddlewareStaticLanding = "static-landing"
)

// agentMiddlewares is the full chain every discovered agent route gets.
var agentMiddlewares = []string{MiddlewareCORS, MiddlewareAuthCheck, MiddlewareRequestLogger}

// gatewayInternalServices are control-plane services that cleanup must
// never touch.
var gatewayInternalServices = map[string]struct{}{
	"kong":     {},
	"postgres": {},
	"konga":    {},
	"registry": {},
}

// Static proxy service names protected from reconciliation.
const (
	StaticBackendProxy = "backend-api-proxy"
	StaticWebProxy     = "web-app-proxy"
	StaticAuthProxy    = "auth-proxy"
	StaticRouterProxy  = "router"
	StaticLandingPage  = "landing-page"
	StaticWorkflow     = "workflow"
)

// StaticProxyServices is the protected set; these survive every
// cleanup regardless of discovery state.
var StaticProxyServices = map[string]struct{}{
	StaticBackendProxy: {},
	StaticWebProxy:     {},
	StaticAuthProxy:    {},
	StaticRouterProxy:  {},
	StaticLandingPage:  {},
	StaticWorkflow:     {},
}
