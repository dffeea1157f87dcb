package config

import (
	"time"

	"github.com/aryankumar/batchrun/internal/jobs"
)

// Config represents the batchrun configuration file structure
type Config struct {
	// Seed makes simulated job outcomes reproducible. Zero picks a random seed.
	Seed uint64 `yaml:"seed,omitempty" json:"seed,omitempty"`

	// Defaults contains default settings for runs
	Defaults DefaultsConfig `yaml:"defaults" json:"defaults"`

	// Jobs is the ordered batch to run. Empty means the built-in sample jobs.
	Jobs []JobConfig `yaml:"jobs,omitempty" json:"jobs,omitempty"`
}

// DefaultsConfig contains default configuration values
type DefaultsConfig struct {
	// Policy is collect-all, fail-fast or both
	Policy string `yaml:"policy" json:"policy"`

	// Limit bounds the number of jobs running at once, 0 means unbounded
	Limit int `yaml:"limit" json:"limit"`

	// OutputFormat is the default output format (text, table, json, yaml)
	OutputFormat string `yaml:"outputFormat" json:"outputFormat"`

	// NoColor disables colored output
	NoColor bool `yaml:"noColor,omitempty" json:"noColor,omitempty"`
}

// JobConfig describes one simulated job
type JobConfig struct {
	// Name identifies the job in results
	Name string `yaml:"name" json:"name"`

	// MinDelay and MaxDelay bound the simulated execution time
	MinDelay time.Duration `yaml:"minDelay" json:"minDelay"`
	MaxDelay time.Duration `yaml:"maxDelay" json:"maxDelay"`

	// FailureRate is the probability (0 to 1) that the job fails
	FailureRate float64 `yaml:"failureRate" json:"failureRate"`

	// Value is returned by the job when it succeeds
	Value string `yaml:"value,omitempty" json:"value,omitempty"`
}

// Spec converts the job configuration into a simulated job spec
func (j JobConfig) Spec() jobs.Spec {
	return jobs.Spec{
		Name:        j.Name,
		MinDelay:    j.MinDelay,
		MaxDelay:    j.MaxDelay,
		FailureRate: j.FailureRate,
		Value:       j.Value,
	}
}

// JobSpecs returns the configured jobs as specs, or the built-in samples when
// no jobs are configured
func (c *Config) JobSpecs() []jobs.Spec {
	if len(c.Jobs) == 0 {
		return jobs.Defaults()
	}

	specs := make([]jobs.Spec, len(c.Jobs))
	for i, j := range c.Jobs {
		specs[i] = j.Spec()
	}
	return specs
}

// Default returns the configuration written by `batchrun config init`
func Default() *Config {
	samples := jobs.Defaults()

	cfg := &Config{
		Defaults: DefaultsConfig{
			Policy:       PolicyBoth,
			Limit:        0,
			OutputFormat: "text",
		},
		Jobs: make([]JobConfig, len(samples)),
	}
	for i, s := range samples {
		cfg.Jobs[i] = JobConfigFromSpec(s)
	}
	return cfg
}

// JobConfigFromSpec is the inverse of JobConfig.Spec
func JobConfigFromSpec(s jobs.Spec) JobConfig {
	return JobConfig{
		Name:        s.Name,
		MinDelay:    s.MinDelay,
		MaxDelay:    s.MaxDelay,
		FailureRate: s.FailureRate,
		Value:       s.Value,
	}
}
