// internal/common/config/loader.go
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// DefaultModels is the candidate list probed at start-up when none is configured.
var DefaultModels = []string{
	"gemini-2.0-flash",
	"gemini-2.5-flash",
	"gemini-flash-latest",
	"gemini-2.0-flash-001",
	"gemini-pro-latest",
}

// DefaultDatasets maps the dataset names used by the analytics handlers to
// their CSV files under analytics.data_dir.
var DefaultDatasets = map[string]DatasetConfig{
	"orders_sample":           {Kind: DatasetKindCSV, Path: "orders_sample.csv"},
	"transportations_sample":  {Kind: DatasetKindCSV, Path: "transportations_sample.csv"},
	"customer_reviews_sample": {Kind: DatasetKindCSV, Path: "customer_reviews_sample.csv"},
	"warehouse_ops_sample":    {Kind: DatasetKindCSV, Path: "warehouse_ops_sample.csv"},
}

// Load reads configs/config.yaml, merges config.<APP_ENVIRONMENT>.yaml over it
// and applies environment overrides. A missing base file is not an error.
func Load() (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath("./configs")
	v.AddConfigPath("../../configs")
	v.AddConfigPath(".")

	env := os.Getenv("APP_ENVIRONMENT")
	if env == "" {
		env = "development"
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading base config: %w", err)
		}
	}

	v.SetConfigName(fmt.Sprintf("config.%s", env))
	_ = v.MergeInConfig() // environment overlay is optional

	return finalize(v)
}

// LoadFromFile loads configuration from a specific file path.
func LoadFromFile(path string) (*Config, error) {
	loadEnvFile()

	v := newViper()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")

	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
	}

	return finalize(v)
}

func newViper() *viper.Viper {
	v := viper.New()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	// Booleans that default to true cannot be told apart from an explicit
	// false after unmarshalling, so they are seeded here.
	v.SetDefault("ai.probe_on_startup", true)
	v.SetDefault("ai.provider", ProviderNone)
	return v
}

func finalize(v *viper.Viper) (*Config, error) {
	expandEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	cfg.AI.Provider = strings.ToLower(strings.TrimSpace(cfg.AI.Provider))
	overrideEmptyConfig(&cfg)
	applyDefaults(&cfg)

	if err := validateConfig(&cfg); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &cfg, nil
}

// loadEnvFile loads the first .env found near the working directory or the module root.
func loadEnvFile() {
	possiblePaths := []string{
		".env",
		"../.env",
		"../../.env",
		"../../../.env",
	}

	if rootDir := findProjectRoot(); rootDir != "" {
		possiblePaths = append(possiblePaths, filepath.Join(rootDir, ".env"))
	}

	for _, path := range possiblePaths {
		if _, err := os.Stat(path); err == nil {
			if err := godotenv.Load(path); err == nil {
				return
			}
		}
	}
}

// findProjectRoot walks up from the working directory looking for go.mod.
func findProjectRoot() string {
	dir, err := os.Getwd()
	if err != nil {
		return ""
	}

	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}

		parent := filepath.Dir(dir)
		if parent == dir {
			break
		}
		dir = parent
	}

	return ""
}

// expandEnvVars replaces ${VAR} placeholders in string values.
func expandEnvVars(v *viper.Viper) {
	for _, key := range v.AllKeys() {
		strVal, ok := v.Get(key).(string)
		if !ok {
			continue
		}
		if strings.Contains(strVal, "${") || (strings.HasPrefix(strVal, "$") && len(strVal) > 1) {
			expanded := os.ExpandEnv(strVal)
			if expanded != strVal && expanded != "" {
				v.Set(key, expanded)
			}
		}
	}
}

// overrideEmptyConfig fills secrets that are conventionally supplied through
// well-known environment variables rather than the config tree.
func overrideEmptyConfig(cfg *Config) {
	if cfg.AI.APIKey == "" {
		var keyVars []string
		switch cfg.AI.Provider {
		case ProviderGemini:
			keyVars = []string{"GEMINI_API_KEY", "GOOGLE_API_KEY"}
		case ProviderOpenAI:
			keyVars = []string{"OPENAI_API_KEY"}
		case ProviderHTTP:
			keyVars = []string{"GENAI_API_KEY"}
		}
		for _, name := range keyVars {
			if val := os.Getenv(name); val != "" {
				cfg.AI.APIKey = val
				break
			}
		}
	}

	if cfg.Server.Port == 0 {
		if val := os.Getenv("PORT"); val != "" {
			var port int
			if _, err := fmt.Sscanf(val, "%d", &port); err == nil {
				cfg.Server.Port = port
			}
		}
	}

	if cfg.Database.Postgres.User == "" {
		if val := os.Getenv("DB_USER"); val != "" {
			cfg.Database.Postgres.User = val
		}
	}
	if cfg.Database.Postgres.Password == "" {
		if val := os.Getenv("DB_PASSWORD"); val != "" {
			cfg.Database.Postgres.Password = val
		}
	}
}

// applyDefaults sets default values for optional configuration fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "supplychain-insights"
	}
	if cfg.App.Version == "" {
		cfg.App.Version = "2.0.0"
	}
	if cfg.App.Environment == "" {
		cfg.App.Environment = "development"
	}

	// Server defaults
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 5000
	}
	if len(cfg.Server.AllowedOrigins) == 0 {
		cfg.Server.AllowedOrigins = []string{"*"}
	}
	if cfg.Server.RequestTimeout == 0 {
		cfg.Server.RequestTimeout = 60000
	}
	if cfg.Server.ReadTimeout == 0 {
		cfg.Server.ReadTimeout = 15000
	}
	if cfg.Server.WriteTimeout == 0 {
		cfg.Server.WriteTimeout = 75000
	}

	// Camunda defaults
	if cfg.Camunda.MaxJobsActive == 0 {
		cfg.Camunda.MaxJobsActive = 10
	}
	if cfg.Camunda.Timeout == 0 {
		cfg.Camunda.Timeout = 30000
	}
	if cfg.Camunda.RequestTimeout == 0 {
		cfg.Camunda.RequestTimeout = 30000
	}

	// Database defaults
	if cfg.Database.Postgres.Port == 0 {
		cfg.Database.Postgres.Port = 5432
	}
	if cfg.Database.Postgres.MaxConnections == 0 {
		cfg.Database.Postgres.MaxConnections = 25
	}
	if cfg.Database.Postgres.MaxIdle == 0 {
		cfg.Database.Postgres.MaxIdle = 5
	}
	if cfg.Database.Postgres.SSLMode == "" {
		cfg.Database.Postgres.SSLMode = "disable"
	}
	if cfg.Database.Postgres.QueryTimeout == 0 {
		cfg.Database.Postgres.QueryTimeout = 5000
	}
	if cfg.Database.Elasticsearch.URL == "" && len(cfg.Database.Elasticsearch.Addresses) > 0 {
		cfg.Database.Elasticsearch.URL = cfg.Database.Elasticsearch.Addresses[0]
	}
	if cfg.Database.Elasticsearch.QueryTimeout == 0 {
		cfg.Database.Elasticsearch.QueryTimeout = 5000
	}

	// AI defaults
	if cfg.AI.Provider == "" {
		cfg.AI.Provider = ProviderNone
	}
	if len(cfg.AI.Models) == 0 {
		switch cfg.AI.Provider {
		case ProviderOpenAI:
			cfg.AI.Models = []string{"gpt-4o-mini"}
		case ProviderHTTP:
			cfg.AI.Models = []string{"default"}
		default:
			cfg.AI.Models = append([]string(nil), DefaultModels...)
		}
	}
	if cfg.AI.ProbeTimeout == 0 {
		cfg.AI.ProbeTimeout = 10000
	}
	if cfg.AI.ClassifyTimeout == 0 {
		cfg.AI.ClassifyTimeout = 15000
	}
	if cfg.AI.FormatTimeout == 0 {
		cfg.AI.FormatTimeout = 30000
	}
	if cfg.AI.MaxResponseBytes == 0 {
		cfg.AI.MaxResponseBytes = 64 * 1024
	}
	if cfg.AI.Temperature == 0 {
		cfg.AI.Temperature = 0.7
	}
	if cfg.AI.TopP == 0 {
		cfg.AI.TopP = 0.9
	}
	if cfg.AI.MaxOutputTokens == 0 {
		cfg.AI.MaxOutputTokens = 1024
	}

	// Analytics defaults
	if cfg.Analytics.ModelsDir == "" {
		cfg.Analytics.ModelsDir = "./models"
	}
	if cfg.Analytics.DataDir == "" {
		cfg.Analytics.DataDir = "./data"
	}
	if cfg.Analytics.Datasets == nil {
		cfg.Analytics.Datasets = make(map[string]DatasetConfig, len(DefaultDatasets))
	}
	for name, ds := range DefaultDatasets {
		if _, ok := cfg.Analytics.Datasets[name]; !ok {
			cfg.Analytics.Datasets[name] = ds
		}
	}
	for name, ds := range cfg.Analytics.Datasets {
		if ds.Kind == "" {
			ds.Kind = DatasetKindCSV
		}
		if ds.Kind == DatasetKindCSV && ds.Path == "" {
			ds.Path = name + ".csv"
		}
		cfg.Analytics.Datasets[name] = ds
	}

	// Alerts defaults
	if cfg.Alerts.MinRiskCount == 0 {
		cfg.Alerts.MinRiskCount = 1
	}

	// Logging defaults
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.Logging.Format == "" {
		cfg.Logging.Format = "json"
	}
	if cfg.Logging.Output == "" {
		cfg.Logging.Output = "stdout"
	}

	// Tracing defaults
	if cfg.Tracing.ServiceName == "" {
		cfg.Tracing.ServiceName = cfg.App.Name
	}
	if cfg.Tracing.SampleRatio == 0 {
		cfg.Tracing.SampleRatio = 1
	}

	for key, worker := range cfg.Workers {
		if worker.MaxJobsActive == 0 {
			worker.MaxJobsActive = 5
		}
		if worker.Timeout == 0 {
			worker.Timeout = 30000
		}
		if worker.MaxRetries == 0 {
			worker.MaxRetries = 3
		}
		cfg.Workers[key] = worker
	}
}

// validateConfig only requires settings of backends that are enabled.
func validateConfig(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("server.port must be between 1 and 65535, got %d", cfg.Server.Port)
	}

	switch cfg.AI.Provider {
	case ProviderNone, ProviderGemini, ProviderOpenAI:
	case ProviderHTTP:
		if cfg.AI.BaseURL == "" {
			return fmt.Errorf("ai.base_url is required for provider %q", ProviderHTTP)
		}
	default:
		return fmt.Errorf("ai.provider %q is not supported", cfg.AI.Provider)
	}
	if cfg.AI.TopP < 0 || cfg.AI.TopP > 1 {
		return fmt.Errorf("ai.top_p must be within [0,1]")
	}

	if cfg.Camunda.Enabled && cfg.Camunda.BrokerAddress == "" {
		return fmt.Errorf("camunda.broker_address is required")
	}

	pg := cfg.Database.Postgres
	if pg.Enabled {
		if pg.Host == "" {
			return fmt.Errorf("database.postgres.host is required")
		}
		if pg.Database == "" {
			return fmt.Errorf("database.postgres.database is required")
		}
		if pg.User == "" {
			return fmt.Errorf("database.postgres.user is required")
		}
	}

	es := cfg.Database.Elasticsearch
	if es.Enabled && len(es.Addresses) == 0 && es.URL == "" {
		return fmt.Errorf("database.elasticsearch.addresses or url is required")
	}

	if cfg.Database.Redis.Enabled && cfg.Database.Redis.Address == "" {
		return fmt.Errorf("database.redis.address is required")
	}

	for name, ds := range cfg.Analytics.Datasets {
		switch ds.Kind {
		case DatasetKindCSV:
		case DatasetKindPostgres:
			if !pg.Enabled {
				return fmt.Errorf("analytics.datasets.%s uses postgres but database.postgres is disabled", name)
			}
			if ds.Table == "" {
				return fmt.Errorf("analytics.datasets.%s.table is required", name)
			}
		case DatasetKindElasticsearch:
			if !es.Enabled {
				return fmt.Errorf("analytics.datasets.%s uses elasticsearch but database.elasticsearch is disabled", name)
			}
			if ds.Index == "" {
				return fmt.Errorf("analytics.datasets.%s.index is required", name)
			}
		default:
			return fmt.Errorf("analytics.datasets.%s.kind %q is not supported", name, ds.Kind)
		}
	}

	if cfg.Alerts.Enabled {
		if cfg.Alerts.Region == "" {
			return fmt.Errorf("alerts.region is required")
		}
		if cfg.Alerts.TopicARN == "" && !cfg.Alerts.Email.Enabled {
			return fmt.Errorf("alerts.topic_arn or alerts.email is required")
		}
		if cfg.Alerts.Email.Enabled && (cfg.Alerts.Email.From == "" || len(cfg.Alerts.Email.To) == 0) {
			return fmt.Errorf("alerts.email.from and alerts.email.to are required")
		}
	}

	return nil
}

// GetWorkerConfig retrieves worker-specific configuration with fallback to defaults
func GetWorkerConfig(cfg *Config, workerName string) WorkerConfig {
	if worker, exists := cfg.Workers[workerName]; exists {
		return worker
	}

	return WorkerConfig{
		Enabled:       true,
		MaxJobsActive: cfg.Camunda.MaxJobsActive,
		Timeout:       cfg.Camunda.Timeout,
		MaxRetries:    3,
	}
}
