package aegis

import (
	"fmt"
	"os"
	"strings"

	"github.com/mitchellh/mapstructure"
	"gopkg.in/yaml.v3"
)

// AppConfig is the application's bootstrap configuration, loaded from a YAML
// file and overridable by AEGIS_-prefixed environment variables.
type AppConfig struct {
	Host          string `yaml:"host" mapstructure:"host"`
	Port          int    `yaml:"port" mapstructure:"port"`
	TLSCertFile   string `yaml:"tls_cert_file" mapstructure:"tls_cert_file"`
	TLSKeyFile    string `yaml:"tls_key_file" mapstructure:"tls_key_file"`
	WorkerThreads int    `yaml:"worker_threads" mapstructure:"worker_threads"`
	LogLevel      string `yaml:"log_level" mapstructure:"log_level"`
	LogFormat     string `yaml:"log_format" mapstructure:"log_format"`
	Environment   string `yaml:"environment" mapstructure:"environment"`
}

// DefaultConfig returns the configuration used when no file is supplied.
func DefaultConfig() AppConfig {
	return AppConfig{
		Host:        "0.0.0.0",
		Port:        3000,
		LogLevel:    "info",
		LogFormat:   "console",
		Environment: "development",
	}
}

// Addr returns the host:port pair Listen expects.
func (c AppConfig) Addr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
}

// LoadConfig reads path as YAML into a config starting from DefaultConfig,
// then applies any AEGIS_-prefixed environment variable overrides on top.
func LoadConfig(path string) (AppConfig, error) {
	cfg := DefaultConfig()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("aegis: reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("aegis: parsing config file: %w", err)
		}
	}
	if err := applyEnvOverrides(&cfg); err != nil {
		return cfg, fmt.Errorf("aegis: applying environment overrides: %w", err)
	}
	return cfg, nil
}

// applyEnvOverrides decodes AEGIS_-prefixed environment variables onto cfg
// via mapstructure, matching each field's mapstructure tag against the
// lower-cased suffix of the variable name.
func applyEnvOverrides(cfg *AppConfig) error {
	overrides := make(map[string]interface{})
	const prefix = "AEGIS_"
	for _, kv := range os.Environ() {
		parts := strings.SplitN(kv, "=", 2)
		if len(parts) != 2 || !strings.HasPrefix(parts[0], prefix) {
			continue
		}
		key := strings.ToLower(strings.TrimPrefix(parts[0], prefix))
		overrides[key] = parts[1]
	}
	if len(overrides) == 0 {
		return nil
	}

	decoder, err := mapstructure.NewDecoder(&mapstructure.DecoderConfig{
		Result:           cfg,
		WeaklyTypedInput: true,
	})
	if err != nil {
		return err
	}
	return decoder.Decode(overrides)
}
