package handler

import (
	"github.com/diillson/aws-carbon-emissions-go/internal/shared/types"
	"github.com/spf13/viper"
)

// envNames lista as variáveis lidas por chave. Os nomes legados das funções
// já implantadas continuam aceitos depois dos nomes CARBON_*.
var envNames = map[string][]string{
	"bucket":              {"CARBON_BUCKET", "bucketName"},
	"role_name":           {"CARBON_ROLE_NAME", "ccftRole"},
	"region":              {"CARBON_REGION", "AWS_REGION"},
	"strategy":            {"CARBON_STRATEGY"},
	"workgroup":           {"CARBON_WORKGROUP", "workgroupName"},
	"database":            {"CARBON_DATABASE", "glueDatabaseName"},
	"emissions_location":  {"CARBON_EMISSIONS_LOCATION"},
	"emissions_bucket":    {"emissionsBucketName"},
	"max_attempts":        {"CARBON_MAX_ATTEMPTS"},
	"retry_base_delay":    {"CARBON_RETRY_BASE_DELAY"},
	"poll_interval":       {"CARBON_POLL_INTERVAL"},
	"requests_per_second": {"CARBON_REQUESTS_PER_SECOND"},
	"dry_run":             {"CARBON_DRY_RUN"},
}

// ConfigFromEnv reads the function configuration from the environment.
// Unset variables leave the field zero so the result can be merged over
// the defaults.
func ConfigFromEnv() types.Config {
	v := viper.New()
	for key, names := range envNames {
		_ = v.BindEnv(append([]string{key}, names...)...)
	}

	cfg := types.Config{
		Bucket:            v.GetString("bucket"),
		RoleName:          v.GetString("role_name"),
		Region:            v.GetString("region"),
		Strategy:          v.GetString("strategy"),
		Workgroup:         v.GetString("workgroup"),
		Database:          v.GetString("database"),
		EmissionsLocation: v.GetString("emissions_location"),
		MaxAttempts:       v.GetInt("max_attempts"),
		RetryBaseDelay:    v.GetDuration("retry_base_delay"),
		PollInterval:      v.GetDuration("poll_interval"),
		RequestsPerSecond: v.GetFloat64("requests_per_second"),
		DryRun:            v.GetBool("dry_run"),
	}
	if cfg.EmissionsLocation == "" && v.GetString("emissions_bucket") != "" {
		cfg.EmissionsLocation = "s3://" + v.GetString("emissions_bucket") + "/"
	}
	return cfg
}

// Validate checks the configuration the named handler depends on, so a
// missing bucket or database fails at cold start instead of mid-invocation.
func Validate(name string, cfg types.Config) error {
	switch name {
	case CheckFirstInvocation:
		if cfg.Bucket == "" {
			return types.NewConfigurationError("bucket", "must not be empty")
		}
	case ExtractCarbonEmissions:
		return cfg.ValidateExtraction()
	case CreateAlterAthenaView:
		return cfg.ValidateViews()
	}
	return nil
}
