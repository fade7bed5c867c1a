package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/diillson/aws-carbon-emissions-go/internal/domain/repository"
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/goccy/go-json"
	"github.com/pelletier/go-toml"
	"gopkg.in/yaml.v3"
)

// fileConfig é o formato em disco. Durações são strings ("2s", "500ms") em
// todos os formatos.
type fileConfig struct {
	Bucket            string          `json:"bucket" yaml:"bucket" toml:"bucket"`
	RoleName          string          `json:"role_name" yaml:"role_name" toml:"role_name"`
	Region            string          `json:"region" yaml:"region" toml:"region"`
	Profile           string          `json:"profile" yaml:"profile" toml:"profile"`
	Strategy          string          `json:"strategy" yaml:"strategy" toml:"strategy"`
	Workgroup         string          `json:"workgroup" yaml:"workgroup" toml:"workgroup"`
	Database          string          `json:"database" yaml:"database" toml:"database"`
	EmissionsLocation string          `json:"emissions_location" yaml:"emissions_location" toml:"emissions_location"`
	FunctionName      string          `json:"function_name" yaml:"function_name" toml:"function_name"`
	Concurrency       int             `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	MaxAttempts       int             `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
	RetryBaseDelay    string          `json:"retry_base_delay" yaml:"retry_base_delay" toml:"retry_base_delay"`
	PollInterval      string          `json:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
	RequestsPerSecond float64         `json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second"`
	DryRun            bool            `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Endpoints         types.Endpoints `json:"endpoints" yaml:"endpoints" toml:"endpoints"`
}

func (f fileConfig) toConfig() (*types.Config, error) {
	cfg := &types.Config{
		Bucket:            f.Bucket,
		RoleName:          f.RoleName,
		Region:            f.Region,
		Profile:           f.Profile,
		Strategy:          f.Strategy,
		Workgroup:         f.Workgroup,
		Database:          f.Database,
		EmissionsLocation: f.EmissionsLocation,
		FunctionName:      f.FunctionName,
		Concurrency:       f.Concurrency,
		MaxAttempts:       f.MaxAttempts,
		RequestsPerSecond: f.RequestsPerSecond,
		DryRun:            f.DryRun,
		Endpoints:         f.Endpoints,
	}

	var err error
	if cfg.RetryBaseDelay, err = parseDuration("retry_base_delay", f.RetryBaseDelay); err != nil {
		return nil, err
	}
	if cfg.PollInterval, err = parseDuration("poll_interval", f.PollInterval); err != nil {
		return nil, err
	}
	return cfg, nil
}

func parseDuration(field, value string) (time.Duration, error) {
	if value == "" {
		return 0, nil
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return 0, types.NewConfigurationError(field, fmt.Sprintf("invalid duration %q", value))
	}
	return d, nil
}

// ConfigRepositoryImpl implementa o ConfigRepository.
type ConfigRepositoryImpl struct{}

// NewConfigRepository cria uma nova implementação do ConfigRepository.
func NewConfigRepository() repository.ConfigRepository {
	return &ConfigRepositoryImpl{}
}

// LoadConfigFile carrega um arquivo de configuração TOML, YAML ou JSON.
// Campos ausentes ficam zerados; use types.Config.Merge sobre os defaults.
func (r *ConfigRepositoryImpl) LoadConfigFile(filePath string) (*types.Config, error) {
	fileExtension := strings.ToLower(filepath.Ext(filePath))

	fileInfo, err := os.Stat(filePath)
	if err != nil {
		return nil, fmt.Errorf("error accessing config file: %w", err)
	}
	if fileInfo.IsDir() {
		return nil, fmt.Errorf("%s is a directory, not a file", filePath)
	}

	fileData, err := os.ReadFile(filePath)
	if err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	var raw fileConfig
	switch fileExtension {
	case ".toml":
		if err := toml.Unmarshal(fileData, &raw); err != nil {
			return nil, fmt.Errorf("error parsing TOML file: %w", err)
		}
	case ".yaml", ".yml":
		if err := yaml.Unmarshal(fileData, &raw); err != nil {
			return nil, fmt.Errorf("error parsing YAML file: %w", err)
		}
	case ".json":
		if err := json.Unmarshal(fileData, &raw); err != nil {
			return nil, fmt.Errorf("error parsing JSON file: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported config file format: %s", fileExtension)
	}

	return raw.toConfig()
}
