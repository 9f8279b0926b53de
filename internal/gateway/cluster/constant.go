package cluster

// Log prefixes
const (
	LogPrefixList = "gateway.cluster.ListAgentServices"
)

// Exact service names never exposed through the gateway.
var systemServices = map[string]struct{}{
	"kubernetes":     {},
	"kube-dns":       {},
	"kube-proxy":     {},
	"metrics-server": {},
	"coredns":        {},
}

// Name fragments that mark infrastructure services (databases,
// brokers, headless StatefulSet services).
var infraPatterns = []string{
	"headless",
	"postgres",
	"redis",
	"mongodb",
	"mysql",
	"elasticsearch",
	"kafka",
	"zookeeper",
	"cassandra",
	"etcd",
}

// Port names that indicate the HTTP API port.
var preferredPortNames = map[string]struct{}{
	"http": {},
	"api":  {},
	"web":  {},
	"rest": {},
}

// routeMethods is what every discovered agent route accepts.
var routeMethods = []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"}
