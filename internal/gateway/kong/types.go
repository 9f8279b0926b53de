package kong

// Service is a Kong upstream service definition.
type Service struct {
	ID             string `json:"id,omitempty"`
	Name           string `json:"name"`
	URL            string `json:"url,omitempty"`
	Protocol       string `json:"protocol,omitempty"`
	ConnectTimeout int    `json:"connect_timeout,omitempty"`
	WriteTimeout   int    `json:"write_timeout,omitempty"`
	ReadTimeout    int    `json:"read_timeout,omitempty"`
	Retries        int    `json:"retries,omitempty"`
}

// Route is a Kong route attached to a service.
type Route struct {
	ID           string      `json:"id,omitempty"`
	Name         string      `json:"name"`
	Paths        []string    `json:"paths"`
	Methods      []string    `json:"methods,omitempty"`
	StripPath    bool        `json:"strip_path"`
	PreserveHost bool        `json:"preserve_host"`
	Service      *ServiceRef `json:"service,omitempty"`
}

// ServiceRef associates a route with its service by name.
type ServiceRef struct {
	Name string `json:"name"`
}

// Plugin is a Kong plugin attached to a route.
type Plugin struct {
	Name   string         `json:"name"`
	Config map[string]any `json:"config,omitempty"`
	Route  *RouteRef      `json:"route,omitempty"`
}

// RouteRef associates a plugin with its route by name.
type RouteRef struct {
	Name string `json:"name"`
}

type serviceListResponse struct {
	Data []Service `json:"data"`
}

type routeListResponse struct {
	Data []Route `json:"data"`
}
