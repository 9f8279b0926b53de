package syncer

import (
	"context"
	"fmt"
	"sort"
	"time"

	"agent-gateway/internal/gateway/cluster"
	"agent-gateway/internal/gateway/kong"
)

// Run drives the reconciliation loop until the context is cancelled.
// The first cycle starts immediately.
func (s *Syncer) Run(ctx context.Context) {
	s.l.Infof(ctx, "%s: starting, interval %s", LogPrefixRun, s.cfg.Interval)

	ticker := time.NewTicker(s.cfg.Interval)
	defer ticker.Stop()

	s.syncCycle(ctx)
	for {
		select {
		case <-ctx.Done():
			s.l.Infof(ctx, "%s: stopping", LogPrefixRun)
			return
		case <-ticker.C:
			s.syncCycle(ctx)
		}
	}
}

// syncCycle runs one full reconciliation pass. Per-service failures
// are logged and skipped; the next cycle retries them.
func (s *Syncer) syncCycle(ctx context.Context) {
	if !s.admin.Healthy(ctx) {
		s.l.Warnf(ctx, "%s: gateway is not healthy, skipping sync", LogPrefixCycle)
		return
	}

	if !s.staticDone {
		if err := s.registerStaticProxies(ctx); err != nil {
			s.l.Errorf(ctx, "%s: static proxy registration incomplete: %v", LogPrefixCycle, err)
		} else {
			s.staticDone = true
		}
	}

	services, err := s.discovery.ListAgentServices(ctx)
	if err != nil {
		s.l.Errorf(ctx, "%s: discovery failed: %v", LogPrefixCycle, err)
		return
	}

	registered := make(map[string]struct{}, len(services))
	for _, svc := range services {
		if err := s.upsertService(ctx, svc); err != nil {
			s.l.Errorf(ctx, "%s: failed to register %s: %v", LogPrefixCycle, svc.Name, err)
			continue
		}
		if err := s.applyMiddlewares(ctx, routeName(svc.Name), agentMiddlewares); err != nil {
			s.l.Errorf(ctx, "%s: failed to apply middlewares to %s: %v", LogPrefixCycle, svc.Name, err)
		}
		registered[svc.Name] = struct{}{}
	}

	s.cleanupStale(ctx, registered)

	s.storeSnapshot(registered)
	s.l.Infof(ctx, "%s: sync completed, %d active services", LogPrefixCycle, len(registered))
}

// SyncOnce runs a single discovery and registration pass, outside the
// loop cadence. Used by the manual trigger endpoint.
func (s *Syncer) SyncOnce(ctx context.Context) (int, error) {
	services, err := s.discovery.ListAgentServices(ctx)
	if err != nil {
		return 0, fmt.Errorf("discovery failed: %w", err)
	}

	registered := 0
	for _, svc := range services {
		if err := s.upsertService(ctx, svc); err != nil {
			s.l.Errorf(ctx, "%s: failed to register %s: %v", LogPrefixCycle, svc.Name, err)
			continue
		}
		registered++
	}
	return registered, nil
}

// upsertService converges one discovered service and its route:
// check-then-PATCH-or-POST on both resources.
func (s *Syncer) upsertService(ctx context.Context, svc cluster.ServiceInfo) error {
	service := kong.Service{
		Name:           svc.Name,
		URL:            fmt.Sprintf("http://%s:%d", svc.Host, svc.Port),
		Protocol:       "http",
		ConnectTimeout: upstreamTimeoutMs,
		WriteTimeout:   upstreamTimeoutMs,
		ReadTimeout:    upstreamTimeoutMs,
		Retries:        upstreamRetries,
	}

	_, exists, err := s.admin.GetService(ctx, svc.Name)
	if err != nil {
		return fmt.Errorf("service lookup: %w", err)
	}
	if exists {
		if err := s.admin.UpdateService(ctx, svc.Name, service); err != nil {
			return fmt.Errorf("service update: %w", err)
		}
	} else {
		if err := s.admin.CreateService(ctx, service); err != nil {
			return fmt.Errorf("service create: %w", err)
		}
	}

	route := kong.Route{
		Name:         routeName(svc.Name),
		Paths:        []string{svc.Path},
		Methods:      svc.Methods,
		StripPath:    true,
		PreserveHost: false,
	}
	return s.upsertRoute(ctx, svc.Name, route)
}

func (s *Syncer) upsertRoute(ctx context.Context, serviceName string, route kong.Route) error {
	_, exists, err := s.admin.GetRoute(ctx, route.Name)
	if err != nil {
		return fmt.Errorf("route lookup: %w", err)
	}
	if exists {
		if err := s.admin.UpdateRoute(ctx, route.Name, route); err != nil {
			return fmt.Errorf("route update: %w", err)
		}
		return nil
	}
	if err := s.admin.CreateRoute(ctx, serviceName, route); err != nil {
		return fmt.Errorf("route create: %w", err)
	}
	return nil
}

// cleanupStale removes gateway services that are neither discovered
// nor protected. Routes go first; the gateway refuses to delete a
// service that still has routes.
func (s *Syncer) cleanupStale(ctx context.Context, registered map[string]struct{}) {
	services, err := s.admin.ListServices(ctx)
	if err != nil {
		s.l.Errorf(ctx, "%s: failed to list gateway services: %v", LogPrefixCleanup, err)
		return
	}

	for _, svc := range services {
		if _, internal := gatewayInternalServices[svc.Name]; internal {
			continue
		}
		if _, static := StaticProxyServices[svc.Name]; static {
			continue
		}
		if _, active := registered[svc.Name]; active {
			continue
		}

		routes, err := s.admin.ListRoutesForService(ctx, svc.Name)
		if err != nil {
			s.l.Errorf(ctx, "%s: failed to list routes of %s: %v", LogPrefixCleanup, svc.Name, err)
			continue
		}
		failed := false
		for _, route := range routes {
			id := route.ID
			if id == "" {
				id = route.Name
			}
			if err := s.admin.DeleteRoute(ctx, id); err != nil {
				s.l.Errorf(ctx, "%s: failed to delete route %s: %v", LogPrefixCleanup, route.Name, err)
				failed = true
			}
		}
		if failed {
			continue
		}

		if err := s.admin.DeleteService(ctx, svc.Name); err != nil {
			s.l.Errorf(ctx, "%s: failed to delete service %s: %v", LogPrefixCleanup, svc.Name, err)
			continue
		}
		s.l.Infof(ctx, "%s: removed stale service %s", LogPrefixCleanup, svc.Name)
	}
}

// applyMiddlewares attaches the named plugins to a route in order.
// Order matters: the gateway executes plugins in attachment order.
func (s *Syncer) applyMiddlewares(ctx context.Context, routeName string, middlewares []string) error {
	for _, name := range middlewares {
		plugin, ok := s.pluginFor(name)
		if !ok {
			s.l.Warnf(ctx, "%s: unknown middleware %q, skipping", LogPrefixCycle, name)
			continue
		}
		plugin.Route = &kong.RouteRef{Name: routeName}
		if err := s.admin.CreatePlugin(ctx, plugin); err != nil {
			return fmt.Errorf("plugin %s: %w", name, err)
		}
	}
	return nil
}

func (s *Syncer) storeSnapshot(registered map[string]struct{}) {
	names := make([]string, 0, len(registered))
	for name := range registered {
		names = append(names, name)
	}
	sort.Strings(names)
	s.current.Store(&names)

	now := time.Now()
	s.lastSync.Store(&now)
}

// Services returns the service names registered by the last cycle.
func (s *Syncer) Services() []string {
	return *s.current.Load()
}

// LastSync returns when the last successful cycle finished.
func (s *Syncer) LastSync() (time.Time, bool) {
	t := s.lastSync.Load()
	if t == nil {
		return time.Time{}, false
	}
	return *t, true
}

// Healthy reports gateway control-plane reachability.
func (s *Syncer) Healthy(ctx context.Context) bool {
	return s.admin.Healthy(ctx)
}

func routeName(serviceName string) string {
	return serviceName + "-route"
}
