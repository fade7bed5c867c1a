package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0o600))
	return path
}

func TestLoadConfigFile_Formats(t *testing.T) {
	tests := []struct {
		name    string
		file    string
		content string
	}{
		{
			name: "toml",
			file: "carbon.toml",
			content: `bucket = "emissions-reports"
role_name = "reader"
strategy = "signed"
poll_interval = "500ms"
concurrency = 8

[endpoints]
reporting = "https://reporting.example"
`,
		},
		{
			name: "yaml",
			file: "carbon.yaml",
			content: `bucket: emissions-reports
role_name: reader
strategy: signed
poll_interval: 500ms
concurrency: 8
endpoints:
  reporting: https://reporting.example
`,
		},
		{
			name:    "json",
			file:    "carbon.json",
			content: `{"bucket":"emissions-reports","role_name":"reader","strategy":"signed","poll_interval":"500ms","concurrency":8,"endpoints":{"reporting":"https://reporting.example"}}`,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := NewConfigRepository().LoadConfigFile(writeFile(t, tt.file, tt.content))

			require.NoError(t, err)
			assert.Equal(t, "emissions-reports", cfg.Bucket)
			assert.Equal(t, "reader", cfg.RoleName)
			assert.Equal(t, types.StrategySigned, cfg.Strategy)
			assert.Equal(t, 500*time.Millisecond, cfg.PollInterval)
			assert.Equal(t, 8, cfg.Concurrency)
			assert.Equal(t, "https://reporting.example", cfg.Endpoints.Reporting)
		})
	}
}

func TestLoadConfigFile_MergesOverDefaults(t *testing.T) {
	cfg, err := NewConfigRepository().LoadConfigFile(writeFile(t, "carbon.yml", "bucket: reports\n"))
	require.NoError(t, err)

	merged := types.DefaultConfig().Merge(*cfg)

	assert.Equal(t, "reports", merged.Bucket)
	assert.Equal(t, "ccft-read-role", merged.RoleName)
	assert.Equal(t, 2*time.Second, merged.PollInterval)
}

func TestLoadConfigFile_Errors(t *testing.T) {
	repo := NewConfigRepository()

	_, err := repo.LoadConfigFile(filepath.Join(t.TempDir(), "missing.toml"))
	assert.ErrorContains(t, err, "error accessing config file")

	_, err = repo.LoadConfigFile(writeFile(t, "carbon.ini", "bucket=x"))
	assert.ErrorContains(t, err, "unsupported config file format")

	_, err = repo.LoadConfigFile(t.TempDir())
	assert.ErrorContains(t, err, "is a directory")

	_, err = repo.LoadConfigFile(writeFile(t, "carbon.yaml", "poll_interval: soon\n"))
	assert.ErrorIs(t, err, types.ErrConfiguration)
}
