package cluster

// ServiceInfo is one discovered backend service, ready to be
// registered on the gateway.
type ServiceInfo struct {
	Name      string
	Host      string
	Port      int
	Path      string
	Methods   []string
	Namespace string
}

// Kubernetes API response shapes (only the fields discovery reads).
type serviceList struct {
	Items []k8sService `json:"items"`
}

type k8sService struct {
	Metadata struct {
		Name string `json:"name"`
	} `json:"metadata"`
	Spec struct {
		ClusterIP string `json:"clusterIP"`
		Ports     []struct {
			Name string `json:"name"`
			Port int    `json:"port"`
		} `json:"ports"`
	} `json:"spec"`
}
