package http

// statusResp reports the registry's view of the gateway.
type statusResp struct {
	Status        string `json:"status"`
	ServicesCount int    `json:"services_count"`
	LastSync      string `json:"last_sync,omitempty"`
	KongStatus    string `json:"kong_status"`
}

// servicesResp lists the services registered by the last sync cycle.
type servicesResp struct {
	Services []string `json:"services"`
	Count    int      `json:"count"`
}

// syncResp reports the outcome of a manual sync.
type syncResp struct {
	Registered int `json:"registered"`
}
