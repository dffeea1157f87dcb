package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/aryankumar/batchrun/internal/executor"
	"github.com/aryankumar/batchrun/internal/util"
)

const (
	defaultConfigName = ".batchrun"
	envPrefix         = "BATCHRUN"

	// PolicyBoth runs collect-all and then fail-fast over the same jobs
	PolicyBoth = "both"
)

// OutputFormats lists the accepted output formats
var OutputFormats = []string{"text", "table", "json", "yaml"}

// Manager handles batchrun configuration
type Manager struct {
	configPath string
	config     *Config
	viper      *viper.Viper
}

// NewManager creates a new configuration manager
func NewManager(configPath string) *Manager {
	return &Manager{
		configPath: configPath,
		viper:      viper.New(),
		config:     &Config{},
	}
}

// flagKeys maps CLI flag names to the config keys they override
var flagKeys = map[string]string{
	"policy":   "defaults.policy",
	"limit":    "defaults.limit",
	"output":   "defaults.outputFormat",
	"no-color": "defaults.noColor",
	"seed":     "seed",
}

// BindFlags lets explicitly set flags override the file and environment.
// Flags missing from the set are ignored. Call it before Load.
func (m *Manager) BindFlags(flags *pflag.FlagSet) error {
	for name, key := range flagKeys {
		flag := flags.Lookup(name)
		if flag == nil {
			continue
		}
		if err := m.viper.BindPFlag(key, flag); err != nil {
			return fmt.Errorf("failed to bind flag %q: %w", name, err)
		}
	}
	return nil
}

// Load loads the configuration from file, environment and defaults
func (m *Manager) Load() (*Config, error) {
	if m.configPath != "" {
		m.viper.SetConfigFile(m.configPath)
	} else {
		home, err := os.UserHomeDir()
		if err != nil {
			return nil, fmt.Errorf("failed to get home directory: %w", err)
		}

		// Check ./.batchrun.yaml, then ~/.batchrun.yaml
		m.viper.AddConfigPath(".")
		m.viper.AddConfigPath(home)
		m.viper.SetConfigName(defaultConfigName)
		m.viper.SetConfigType("yaml")
	}

	// BATCHRUN_DEFAULTS_POLICY overrides defaults.policy, and so on
	m.viper.SetEnvPrefix(envPrefix)
	m.viper.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	m.viper.AutomaticEnv()
	m.viper.SetDefault("seed", 0)
	m.viper.SetDefault("defaults.policy", PolicyBoth)
	m.viper.SetDefault("defaults.limit", 0)
	m.viper.SetDefault("defaults.outputFormat", "text")
	m.viper.SetDefault("defaults.noColor", false)

	m.config = &Config{}

	if err := m.viper.ReadInConfig(); err != nil {
		// A missing config file is fine, defaults apply
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok && !os.IsNotExist(err) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	if err := m.viper.Unmarshal(m.config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	m.applyDefaults()

	if err := m.config.Validate(); err != nil {
		return nil, err
	}

	return m.config, nil
}

// Save writes the current configuration as YAML to the manager's path,
// defaulting to ~/.batchrun.yaml
func (m *Manager) Save() error {
	if m.configPath == "" {
		path, err := DefaultPath()
		if err != nil {
			return err
		}
		m.configPath = path
	}

	dir := filepath.Dir(m.configPath)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(m.config)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(m.configPath, data, 0644); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

// GetConfig returns the current configuration
func (m *Manager) GetConfig() *Config {
	return m.config
}

// SetConfig replaces the current configuration
func (m *Manager) SetConfig(cfg *Config) {
	m.config = cfg
}

// DefaultPath returns $HOME/.batchrun.yaml
func DefaultPath() (string, error) {
	home, err := os.UserHomeDir()
	if err != nil {
		return "", fmt.Errorf("failed to get home directory: %w", err)
	}
	return filepath.Join(home, defaultConfigName+".yaml"), nil
}

// ConfigPath returns the file the manager reads from or writes to, if known
func (m *Manager) ConfigPath() string {
	if m.configPath != "" {
		return m.configPath
	}
	return m.viper.ConfigFileUsed()
}

// applyDefaults sets default values for configuration
func (m *Manager) applyDefaults() {
	if m.config == nil {
		return
	}

	if m.config.Defaults.Policy == "" {
		m.config.Defaults.Policy = PolicyBoth
	}

	if m.config.Defaults.OutputFormat == "" {
		m.config.Defaults.OutputFormat = "text"
	}

	for i := range m.config.Jobs {
		if m.config.Jobs[i].Value == "" {
			m.config.Jobs[i].Value = "OK"
		}
	}
}

// Validate checks the configuration and reports every problem found
func (c *Config) Validate() error {
	errs := &util.MultiError{}

	if _, err := ResolvePolicies(c.Defaults.Policy); err != nil {
		errs.Add(util.NewValidationError("defaults.policy", c.Defaults.Policy, err.Error()))
	}

	if c.Defaults.Limit < 0 {
		errs.Add(util.NewValidationError("defaults.limit", c.Defaults.Limit, "must not be negative"))
	}

	if !isOutputFormat(c.Defaults.OutputFormat) {
		errs.Add(util.NewValidationError("defaults.outputFormat", c.Defaults.OutputFormat,
			"must be one of "+strings.Join(OutputFormats, ", ")))
	}

	seen := make(map[string]bool, len(c.Jobs))
	for i, j := range c.Jobs {
		field := fmt.Sprintf("jobs[%d]", i)

		switch {
		case j.Name == "":
			errs.Add(util.NewValidationError(field+".name", nil, "name is required"))
		case seen[j.Name]:
			errs.Add(util.NewValidationError(field+".name", j.Name, "duplicate job name"))
		}
		seen[j.Name] = true

		if j.MinDelay < 0 {
			errs.Add(util.NewValidationError(field+".minDelay", j.MinDelay, "must not be negative"))
		}
		if j.MaxDelay < j.MinDelay {
			errs.Add(util.NewValidationError(field+".maxDelay", j.MaxDelay, "must not be less than minDelay"))
		}
		if j.FailureRate < 0 || j.FailureRate > 1 {
			errs.Add(util.NewValidationError(field+".failureRate", j.FailureRate, "must be between 0 and 1"))
		}
	}

	return errs.ErrorOrNil()
}

// ResolvePolicies expands a policy setting into the executors to run, in order
func ResolvePolicies(policy string) ([]executor.Policy, error) {
	if strings.EqualFold(strings.TrimSpace(policy), PolicyBoth) {
		return executor.Policies(), nil
	}

	p, err := executor.ParsePolicy(policy)
	if err != nil {
		return nil, err
	}
	return []executor.Policy{p}, nil
}

func isOutputFormat(format string) bool {
	for _, f := range OutputFormats {
		if f == format {
			return true
		}
	}
	return false
}
