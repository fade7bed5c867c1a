package types

import "time"

// Retrieval strategies accepted in Config.Strategy.
const (
	StrategySigned  = "signed"
	StrategyConsole = "console"
)

// Endpoints groups the base URLs of the reporting surface. They are only
// overridden in tests or when the console moves.
type Endpoints struct {
	Federation string `json:"federation" yaml:"federation" toml:"federation"`
	Console    string `json:"console" yaml:"console" toml:"console"`
	Billing    string `json:"billing" yaml:"billing" toml:"billing"`
	Reporting  string `json:"reporting" yaml:"reporting" toml:"reporting"`
}

// Config represents the application configuration that can be loaded from a file.
type Config struct {
	Bucket            string        `json:"bucket" yaml:"bucket" toml:"bucket"`
	RoleName          string        `json:"role_name" yaml:"role_name" toml:"role_name"`
	Region            string        `json:"region" yaml:"region" toml:"region"`
	Profile           string        `json:"profile" yaml:"profile" toml:"profile"`
	Strategy          string        `json:"strategy" yaml:"strategy" toml:"strategy"`
	Workgroup         string        `json:"workgroup" yaml:"workgroup" toml:"workgroup"`
	Database          string        `json:"database" yaml:"database" toml:"database"`
	EmissionsLocation string        `json:"emissions_location" yaml:"emissions_location" toml:"emissions_location"`
	FunctionName      string        `json:"function_name" yaml:"function_name" toml:"function_name"`
	Concurrency       int           `json:"concurrency" yaml:"concurrency" toml:"concurrency"`
	MaxAttempts       int           `json:"max_attempts" yaml:"max_attempts" toml:"max_attempts"`
	RetryBaseDelay    time.Duration `json:"retry_base_delay" yaml:"retry_base_delay" toml:"retry_base_delay"`
	PollInterval      time.Duration `json:"poll_interval" yaml:"poll_interval" toml:"poll_interval"`
	RequestsPerSecond float64       `json:"requests_per_second" yaml:"requests_per_second" toml:"requests_per_second"`
	DryRun            bool          `json:"dry_run" yaml:"dry_run" toml:"dry_run"`
	Endpoints         Endpoints     `json:"endpoints" yaml:"endpoints" toml:"endpoints"`
}

// DefaultConfig returns the configuration used when nothing else is set.
func DefaultConfig() Config {
	return Config{
		RoleName:          "ccft-read-role",
		Region:            "us-east-1",
		Strategy:          StrategyConsole,
		Workgroup:         "primary",
		Database:          "carbon_emissions",
		Concurrency:       4,
		MaxAttempts:       3,
		RetryBaseDelay:    2 * time.Second,
		PollInterval:      2 * time.Second,
		RequestsPerSecond: 5,
		Endpoints: Endpoints{
			Federation: "https://signin.aws.amazon.com/federation",
			Console:    "https://console.aws.amazon.com",
			Billing:    "https://us-east-1.console.aws.amazon.com",
			Reporting:  "https://us-east-1.prod.sustainability.billingconsole.aws.dev",
		},
	}
}

// Merge overlays the non-zero fields of other on top of c.
func (c Config) Merge(other Config) Config {
	if other.Bucket != "" {
		c.Bucket = other.Bucket
	}
	if other.RoleName != "" {
		c.RoleName = other.RoleName
	}
	if other.Region != "" {
		c.Region = other.Region
	}
	if other.Profile != "" {
		c.Profile = other.Profile
	}
	if other.Strategy != "" {
		c.Strategy = other.Strategy
	}
	if other.Workgroup != "" {
		c.Workgroup = other.Workgroup
	}
	if other.Database != "" {
		c.Database = other.Database
	}
	if other.EmissionsLocation != "" {
		c.EmissionsLocation = other.EmissionsLocation
	}
	if other.FunctionName != "" {
		c.FunctionName = other.FunctionName
	}
	if other.Concurrency > 0 {
		c.Concurrency = other.Concurrency
	}
	if other.MaxAttempts > 0 {
		c.MaxAttempts = other.MaxAttempts
	}
	if other.RetryBaseDelay > 0 {
		c.RetryBaseDelay = other.RetryBaseDelay
	}
	if other.PollInterval > 0 {
		c.PollInterval = other.PollInterval
	}
	if other.RequestsPerSecond > 0 {
		c.RequestsPerSecond = other.RequestsPerSecond
	}
	if other.DryRun {
		c.DryRun = true
	}
	if other.Endpoints.Federation != "" {
		c.Endpoints.Federation = other.Endpoints.Federation
	}
	if other.Endpoints.Console != "" {
		c.Endpoints.Console = other.Endpoints.Console
	}
	if other.Endpoints.Billing != "" {
		c.Endpoints.Billing = other.Endpoints.Billing
	}
	if other.Endpoints.Reporting != "" {
		c.Endpoints.Reporting = other.Endpoints.Reporting
	}
	return c
}

// ResolvedEmissionsLocation returns the location the table DDL points at.
func (c Config) ResolvedEmissionsLocation() string {
	if c.EmissionsLocation != "" {
		return c.EmissionsLocation
	}
	return "s3://" + c.Bucket + "/"
}

// ValidateExtraction checks the fields needed to pull and store reports.
func (c Config) ValidateExtraction() error {
	if c.RoleName == "" {
		return NewConfigurationError("role_name", "must not be empty")
	}
	if c.Bucket == "" && !c.DryRun {
		return NewConfigurationError("bucket", "must not be empty unless dry_run is set")
	}
	switch c.Strategy {
	case StrategySigned, StrategyConsole:
	default:
		return NewConfigurationError("strategy", "must be one of signed, console")
	}
	if c.MaxAttempts < 1 {
		return NewConfigurationError("max_attempts", "must be at least 1")
	}
	return nil
}

// ValidateViews checks the fields needed to (re)build the Athena views.
func (c Config) ValidateViews() error {
	if c.Workgroup == "" {
		return NewConfigurationError("workgroup", "must not be empty")
	}
	if c.Database == "" {
		return NewConfigurationError("database", "must not be empty")
	}
	if c.EmissionsLocation == "" && c.Bucket == "" {
		return NewConfigurationError("emissions_location", "set emissions_location or bucket")
	}
	if c.PollInterval <= 0 {
		return NewConfigurationError("poll_interval", "must be positive")
	}
	return nil
}
