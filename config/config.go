package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all service configuration.
type Config struct {
	// Environment
	Environment EnvironmentConfig

	// Server
	HTTPServer HTTPServerConfig
	Logger     LoggerConfig

	// Routing pipeline
	Registry   RegistryConfig
	Embeddings EmbeddingsConfig
	Gemini     GeminiConfig
	Router     RouterConfig

	// Gateway reconciliation
	Gateway GatewayConfig
	Cluster ClusterConfig
}

type EnvironmentConfig struct {
	Name string
}

type HTTPServerConfig struct {
	Port int
	Mode string
}

type LoggerConfig struct {
	Level        string
	Mode         string
	Encoding     string
	ColorEnabled bool
}

// RegistryConfig points at the agent registry serving agent cards.
type RegistryConfig struct {
	URL      string
	CacheTTL time.Duration // 0 disables the agent-card cache
}

type EmbeddingsConfig struct {
	URL    string
	APIKey string
	Model  string
}

type GeminiConfig struct {
	APIKey string
	Model  string
	APIURL string
}

// RouterConfig holds routing-pipeline settings.
type RouterConfig struct {
	RequestTimeout  time.Duration // per external call (catalog, embeddings, LLM, agent)
	MaxFileSize     int64         // bytes, per uploaded file
	RateLimitPerMin int           // per-caller limit on the routing endpoint
	CORSOrigins     []string
}

// GatewayConfig holds gateway control-plane (Kong admin API) settings.
type GatewayConfig struct {
	AdminURL     string
	SyncInterval time.Duration
	AuthURL      string // upstream used by the auth-check plugin
	BackendHost  string
	WebHost      string
	AuthHost     string
	RouterHost   string
	WorkflowHost string
}

// ClusterConfig holds Kubernetes discovery settings.
type ClusterConfig struct {
	Enabled         bool
	APIServer       string // e.g. https://kubernetes.default.svc
	TokenPath       string // service account bearer token file
	AgentsNamespace string
}

// Load loads configuration using Viper.
// Config file name: config.yaml — searched in ./config, ., /etc/app/
func Load() (*Config, error) {
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath("./config")
	viper.AddConfigPath(".")
	viper.AddConfigPath("/etc/app/")

	viper.AutomaticEnv()
	viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	setDefaults()

	if err := viper.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	cfg := &Config{}

	// Environment & Server
	cfg.Environment.Name = viper.GetString("environment.name")
	cfg.HTTPServer.Port = viper.GetInt("http_server.port")
	cfg.HTTPServer.Mode = viper.GetString("http_server.mode")
	cfg.Logger.Level = viper.GetString("logger.level")
	cfg.Logger.Mode = viper.GetString("logger.mode")
	cfg.Logger.Encoding = viper.GetString("logger.encoding")
	cfg.Logger.ColorEnabled = viper.GetBool("logger.color_enabled")

	// Agent registry
	cfg.Registry.URL = viper.GetString("registry.url")
	cfg.Registry.CacheTTL = viper.GetDuration("registry.cache_ttl")
	if registryURL := viper.GetString("registry_url"); registryURL != "" {
		cfg.Registry.URL = registryURL
	}

	// Embedding provider
	cfg.Embeddings.URL = viper.GetString("embeddings.url")
	cfg.Embeddings.APIKey = expandEnvVar(viper.GetString("embeddings.api_key"))
	cfg.Embeddings.Model = viper.GetString("embeddings.model")
	if embKey := viper.GetString("embeddings_api_key"); embKey != "" {
		cfg.Embeddings.APIKey = embKey
	}

	// Gemini LLM
	cfg.Gemini.APIKey = expandEnvVar(viper.GetString("gemini.api_key"))
	cfg.Gemini.Model = viper.GetString("gemini.model")
	cfg.Gemini.APIURL = viper.GetString("gemini.api_url")
	if geminiKey := viper.GetString("gemini_api_key"); geminiKey != "" {
		cfg.Gemini.APIKey = geminiKey
	}

	// Routing pipeline
	cfg.Router.RequestTimeout = viper.GetDuration("router.request_timeout")
	cfg.Router.MaxFileSize = viper.GetInt64("router.max_file_size")
	cfg.Router.RateLimitPerMin = viper.GetInt("router.rate_limit_per_min")

	var origins []string
	if rawOrigins := viper.GetString("router.cors_origins"); rawOrigins != "" {
		for _, origin := range strings.Split(rawOrigins, ",") {
			origin = strings.TrimSpace(origin)
			if origin != "" {
				origins = append(origins, origin)
			}
		}
	}
	cfg.Router.CORSOrigins = origins

	// Gateway control plane
	cfg.Gateway.AdminURL = viper.GetString("gateway.admin_url")
	cfg.Gateway.SyncInterval = viper.GetDuration("gateway.sync_interval")
	cfg.Gateway.AuthURL = viper.GetString("gateway.auth_url")
	cfg.Gateway.BackendHost = viper.GetString("gateway.backend_host")
	cfg.Gateway.WebHost = viper.GetString("gateway.web_host")
	cfg.Gateway.AuthHost = viper.GetString("gateway.auth_host")
	cfg.Gateway.RouterHost = viper.GetString("gateway.router_host")
	cfg.Gateway.WorkflowHost = viper.GetString("gateway.workflow_host")
	if adminURL := viper.GetString("gateway_admin_url"); adminURL != "" {
		cfg.Gateway.AdminURL = adminURL
	}

	// Cluster discovery
	cfg.Cluster.Enabled = viper.GetBool("cluster.enabled")
	cfg.Cluster.APIServer = viper.GetString("cluster.api_server")
	cfg.Cluster.TokenPath = viper.GetString("cluster.token_path")
	cfg.Cluster.AgentsNamespace = viper.GetString("cluster.agents_namespace")

	return cfg, nil
}

func setDefaults() {
	viper.SetDefault("environment.name", "development")
	viper.SetDefault("http_server.port", 8080)
	viper.SetDefault("http_server.mode", "debug")
	viper.SetDefault("logger.level", "debug")
	viper.SetDefault("logger.mode", "debug")
	viper.SetDefault("logger.encoding", "console")
	viper.SetDefault("logger.color_enabled", true)

	viper.SetDefault("registry.cache_ttl", time.Duration(0))

	viper.SetDefault("embeddings.url", "https://api.openai.com/v1/embeddings")
	viper.SetDefault("embeddings.model", "text-embedding-ada-002")

	viper.SetDefault("gemini.model", "gemini-2.5-flash")
	viper.SetDefault("gemini.api_url", "https://generativelanguage.googleapis.com/v1beta")

	viper.SetDefault("router.request_timeout", 60*time.Second)
	viper.SetDefault("router.max_file_size", int64(1073741824)) // 1GB
	viper.SetDefault("router.rate_limit_per_min", 60)

	viper.SetDefault("gateway.admin_url", "http://kong-gateway:8001")
	viper.SetDefault("gateway.sync_interval", 30*time.Second)

	viper.SetDefault("cluster.enabled", true)
	viper.SetDefault("cluster.api_server", "https://kubernetes.default.svc")
	viper.SetDefault("cluster.token_path", "/var/run/secrets/kubernetes.io/serviceaccount/token")
	viper.SetDefault("cluster.agents_namespace", "agents")
}

// expandEnvVar expands environment variables in the format ${VAR_NAME}
func expandEnvVar(value string) string {
	if value == "" {
		return value
	}

	if strings.HasPrefix(value, "${") && strings.HasSuffix(value, "}") {
		envVar := value[2 : len(value)-1]
		if envValue := viper.GetString(envVar); envValue != "" {
			return envValue
		}
		if envValue := viper.GetString(strings.ToLower(envVar)); envValue != "" {
			return envValue
		}
		if envValue := os.Getenv(envVar); envValue != "" {
			return envValue
		}
	}

	return value
}
