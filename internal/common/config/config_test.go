package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	require.NoError(t, os.WriteFile(path, []byte(body), 0o600))
	return path
}

func TestLoadFromFile_Defaults(t *testing.T) {
	path := writeConfig(t, "app:\n  name: insights\n")

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, "insights", cfg.App.Name)
	assert.Equal(t, 5000, cfg.Server.Port)
	assert.Equal(t, ProviderNone, cfg.AI.Provider)
	assert.False(t, cfg.AI.Enabled())
	assert.True(t, cfg.AI.ProbeOnStartup)
	assert.Equal(t, DefaultModels, cfg.AI.Models)
	assert.InDelta(t, 0.7, cfg.AI.Temperature, 1e-9)
	assert.InDelta(t, 0.9, cfg.AI.TopP, 1e-9)
	assert.Equal(t, 1024, cfg.AI.MaxOutputTokens)
	assert.Equal(t, 15*time.Second, GetDuration(cfg.AI.ClassifyTimeout))

	require.Contains(t, cfg.Analytics.Datasets, "orders_sample")
	assert.Equal(t, DatasetKindCSV, cfg.Analytics.Datasets["orders_sample"].Kind)
	assert.Equal(t, "orders_sample.csv", cfg.Analytics.Datasets["orders_sample"].Path)
	assert.Equal(t, "info", cfg.Logging.Level)
	assert.Equal(t, "insights", cfg.Tracing.ServiceName)
}

func TestLoadFromFile_EnvironmentExpansionAndKeys(t *testing.T) {
	t.Setenv("INSIGHTS_DATA_DIR", "/srv/data")
	t.Setenv("GEMINI_API_KEY", "test-gemini-key")

	path := writeConfig(t, `
ai:
  provider: Gemini
  models: [gemini-2.5-flash]
  probe_on_startup: false
analytics:
  data_dir: ${INSIGHTS_DATA_DIR}
  datasets:
    customer_reviews_sample:
      path: reviews.csv
`)

	cfg, err := LoadFromFile(path)
	require.NoError(t, err)

	assert.Equal(t, ProviderGemini, cfg.AI.Provider)
	assert.Equal(t, "test-gemini-key", cfg.AI.APIKey)
	assert.False(t, cfg.AI.ProbeOnStartup)
	assert.Equal(t, []string{"gemini-2.5-flash"}, cfg.AI.Models)
	assert.Equal(t, "/srv/data", cfg.Analytics.DataDir)
	assert.Equal(t, "reviews.csv", cfg.Analytics.Datasets["customer_reviews_sample"].Path)
	assert.Equal(t, DatasetKindCSV, cfg.Analytics.Datasets["customer_reviews_sample"].Kind)
}

func TestValidateConfig(t *testing.T) {
	tests := []struct {
		name    string
		body    string
		wantErr string
	}{
		{
			name:    "unknown provider",
			body:    "ai:\n  provider: llama\n",
			wantErr: "ai.provider",
		},
		{
			name:    "http provider needs base url",
			body:    "ai:\n  provider: http\n",
			wantErr: "ai.base_url",
		},
		{
			name:    "enabled redis needs address",
			body:    "database:\n  redis:\n    enabled: true\n",
			wantErr: "database.redis.address",
		},
		{
			name:    "disabled redis needs nothing",
			body:    "database:\n  redis:\n    enabled: false\n",
			wantErr: "",
		},
		{
			name: "postgres dataset requires postgres",
			body: `
analytics:
  datasets:
    orders_sample:
      kind: postgres
      table: orders
`,
			wantErr: "database.postgres is disabled",
		},
		{
			name:    "camunda enabled without broker",
			body:    "camunda:\n  enabled: true\n",
			wantErr: "camunda.broker_address",
		},
		{
			name:    "alerts need a destination",
			body:    "alerts:\n  enabled: true\n  region: ap-south-1\n",
			wantErr: "alerts.topic_arn",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := LoadFromFile(writeConfig(t, tt.body))
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestGetWorkerConfig(t *testing.T) {
	cfg := &Config{
		Camunda: CamundaConfig{MaxJobsActive: 7, Timeout: 1000},
		Workers: map[string]WorkerConfig{"answer-question": {Enabled: false, MaxJobsActive: 2}},
	}

	assert.False(t, GetWorkerConfig(cfg, "answer-question").Enabled)

	def := GetWorkerConfig(cfg, "other")
	assert.True(t, def.Enabled)
	assert.Equal(t, 7, def.MaxJobsActive)
	assert.Equal(t, 1000, def.Timeout)
}
