// internal/common/config/config.go
package config

import (
	"fmt"
	"time"
)

// Config is the main application configuration struct.
type Config struct {
	App       AppConfig               `mapstructure:"app"`
	Server    ServerConfig            `mapstructure:"server"`
	Camunda   CamundaConfig           `mapstructure:"camunda"`
	Database  DatabaseConfig          `mapstructure:"database"`
	AI        AIConfig                `mapstructure:"ai"`
	Analytics AnalyticsConfig         `mapstructure:"analytics"`
	Alerts    AlertsConfig            `mapstructure:"alerts"`
	Workers   map[string]WorkerConfig `mapstructure:"workers"`
	Logging   LoggingConfig           `mapstructure:"logging"`
	Tracing   TracingConfig           `mapstructure:"tracing"`
}

// --- Core App/Infrastructure Config ---
type AppConfig struct {
	Name        string `mapstructure:"name"`
	Version     string `mapstructure:"version"`
	Environment string `mapstructure:"environment"`
}

type ServerConfig struct {
	Port           int      `mapstructure:"port"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
	RequestTimeout int      `mapstructure:"request_timeout"` // milliseconds
	ReadTimeout    int      `mapstructure:"read_timeout"`    // milliseconds
	WriteTimeout   int      `mapstructure:"write_timeout"`   // milliseconds
}

// Addr returns the listen address for the HTTP server.
func (s ServerConfig) Addr() string {
	return fmt.Sprintf(":%d", s.Port)
}

type CamundaConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	BrokerAddress  string `mapstructure:"broker_address"`
	MaxJobsActive  int    `mapstructure:"max_jobs_active"`
	Timeout        int    `mapstructure:"timeout"`         // milliseconds
	RequestTimeout int    `mapstructure:"request_timeout"` // milliseconds
}

type DatabaseConfig struct {
	Postgres      PostgresConfig      `mapstructure:"postgres"`
	Elasticsearch ElasticsearchConfig `mapstructure:"elasticsearch"`
	Redis         RedisConfig         `mapstructure:"redis"`
}

type PostgresConfig struct {
	Enabled        bool   `mapstructure:"enabled"`
	Host           string `mapstructure:"host"`
	Port           int    `mapstructure:"port"`
	Database       string `mapstructure:"database"`
	User           string `mapstructure:"user"`
	Password       string `mapstructure:"password"`
	MaxConnections int    `mapstructure:"max_connections"`
	MaxIdle        int    `mapstructure:"max_idle"`
	SSLMode        string `mapstructure:"sslmode"`
	QueryTimeout   int    `mapstructure:"query_timeout"` // milliseconds
}

// GetDSN returns the PostgreSQL connection string
func (p PostgresConfig) GetDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		p.Host, p.Port, p.User, p.Password, p.Database, p.SSLMode,
	)
}

type ElasticsearchConfig struct {
	Enabled      bool     `mapstructure:"enabled"`
	Addresses    []string `mapstructure:"addresses"`
	Username     string   `mapstructure:"username"`
	Password     string   `mapstructure:"password"`
	URL          string   `mapstructure:"url"` // Single URL for backwards compatibility
	QueryTimeout int      `mapstructure:"query_timeout"` // milliseconds
}

// GetURL returns the first address or the URL field
func (e ElasticsearchConfig) GetURL() string {
	if e.URL != "" {
		return e.URL
	}
	if len(e.Addresses) > 0 {
		return e.Addresses[0]
	}
	return ""
}

type RedisConfig struct {
	Enabled  bool   `mapstructure:"enabled"`
	Address  string `mapstructure:"address"`
	Password string `mapstructure:"password"`
	DB       int    `mapstructure:"db"`
}

// WorkerConfig holds the core settings applicable to every job worker.
type WorkerConfig struct {
	Enabled       bool `mapstructure:"enabled"`
	MaxJobsActive int  `mapstructure:"max_jobs_active"`
	Timeout       int  `mapstructure:"timeout"`     // milliseconds
	MaxRetries    int  `mapstructure:"max_retries"` // For error handling
}

// --- Generative-language service ---

const (
	ProviderGemini = "gemini"
	ProviderOpenAI = "openai"
	ProviderHTTP   = "http"
	ProviderNone   = "none"
)

// AIConfig configures the optional generative-language service used for
// intent classification and narrative formatting.
type AIConfig struct {
	Provider         string   `mapstructure:"provider"`
	APIKey           string   `mapstructure:"api_key"`
	BaseURL          string   `mapstructure:"base_url"`
	Models           []string `mapstructure:"models"`
	ProbeOnStartup   bool     `mapstructure:"probe_on_startup"`
	ProbeTimeout     int      `mapstructure:"probe_timeout"`    // milliseconds
	ClassifyTimeout  int      `mapstructure:"classify_timeout"` // milliseconds
	FormatTimeout    int      `mapstructure:"format_timeout"`   // milliseconds
	MaxResponseBytes int      `mapstructure:"max_response_bytes"`
	Temperature      float64  `mapstructure:"temperature"`
	TopP             float64  `mapstructure:"top_p"`
	MaxOutputTokens  int      `mapstructure:"max_output_tokens"`
	CacheTTL         int      `mapstructure:"cache_ttl"` // milliseconds, 0 disables the narrative cache
}

// Enabled reports whether a provider is configured at all.
func (a AIConfig) Enabled() bool {
	return a.Provider != "" && a.Provider != ProviderNone
}

// --- Analytics ---

const (
	DatasetKindCSV           = "csv"
	DatasetKindPostgres      = "postgres"
	DatasetKindElasticsearch = "elasticsearch"
)

// DatasetConfig tells the catalog where a named dataset lives.
type DatasetConfig struct {
	Kind    string   `mapstructure:"kind"`
	Path    string   `mapstructure:"path"`
	Table   string   `mapstructure:"table"`
	Index   string   `mapstructure:"index"`
	Columns []string `mapstructure:"columns"`
	Limit   int      `mapstructure:"limit"`
}

type AnalyticsConfig struct {
	ModelsDir string                   `mapstructure:"models_dir"`
	DataDir   string                   `mapstructure:"data_dir"`
	Datasets  map[string]DatasetConfig `mapstructure:"datasets"`
}

// --- Alerts ---

type AlertsConfig struct {
	Enabled      bool   `mapstructure:"enabled"`
	Region       string `mapstructure:"region"`
	TopicARN     string `mapstructure:"topic_arn"`
	MinRiskCount int    `mapstructure:"min_risk_count"`
	Email        struct {
		Enabled bool     `mapstructure:"enabled"`
		From    string   `mapstructure:"from"`
		To      []string `mapstructure:"to"`
	} `mapstructure:"email"`
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `mapstructure:"level"`
	Format string `mapstructure:"format"`
	Output string `mapstructure:"output"`
}

// TracingConfig holds OpenTelemetry tracing settings.
type TracingConfig struct {
	Enabled        bool    `mapstructure:"enabled"`
	ServiceName    string  `mapstructure:"service_name"`
	JaegerEndpoint string  `mapstructure:"jaeger_endpoint"`
	SampleRatio    float64 `mapstructure:"sample_ratio"`
}

// GetDuration converts milliseconds from config to time.Duration
func GetDuration(milliseconds int) time.Duration {
	return time.Duration(milliseconds) * time.Millisecond
}
