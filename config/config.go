// Package config provides the configuration for the vimson CLI.
package config

import (
	"errors"
	"fmt"
	"strings"

	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/Neumenon/vimson/vimson"
)

type Config struct {
	// MaxDepth bounds list/dict nesting; 0 disables the limit.
	MaxDepth       int          `json:"maxDepth" yaml:"maxDepth" mapstructure:"maxDepth"`
	RejectTrailing bool         `json:"rejectTrailing" yaml:"rejectTrailing" mapstructure:"rejectTrailing"`
	Echo           bool         `json:"echo" yaml:"echo" mapstructure:"echo"`
	Debug          bool         `json:"debug" yaml:"debug" mapstructure:"debug"`
	NoColor        bool         `json:"noColor" yaml:"noColor" mapstructure:"noColor"`
	Output         OutputFormat `json:"output" yaml:"output" mapstructure:"output"`
}

// defaultConfig holds the built-in defaults in the same shape as a
// .vimson.yaml file.
var defaultConfig = fmt.Sprintf(`
maxDepth: %d
rejectTrailing: false
echo: true
debug: false
noColor: false
output: vimson
`, vimson.DefaultMaxDepth)

// Default returns the built-in configuration.
func Default() (*Config, error) {
	cfg := &Config{}
	if err := yaml.Unmarshal([]byte(defaultConfig), cfg); err != nil {
		return nil, fmt.Errorf("failed to decode default config: %w", err)
	}
	return cfg, nil
}

// Load fills a Config from, in increasing priority: defaults, the config
// file, VIMSON_* environment variables and any flags already bound to v.
// With path empty, .vimson.yaml is looked up in the working directory and
// a missing file is not an error.
func Load(v *viper.Viper, path string) (*Config, error) {
	def, err := Default()
	if err != nil {
		return nil, err
	}
	v.SetDefault("maxDepth", def.MaxDepth)
	v.SetDefault("rejectTrailing", def.RejectTrailing)
	v.SetDefault("echo", def.Echo)
	v.SetDefault("debug", def.Debug)
	v.SetDefault("noColor", def.NoColor)
	v.SetDefault("output", string(def.Output))

	v.SetEnvPrefix("VIMSON")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()

	v.SetConfigType("yaml")
	if path != "" {
		v.SetConfigFile(path)
	} else {
		v.SetConfigName(".vimson")
		v.AddConfigPath(".")
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if path != "" || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	cfg := &Config{}
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal the config: %w", err)
	}
	if err := cfg.Output.Set(string(cfg.Output)); err != nil {
		return nil, err
	}
	return cfg, nil
}

// ParseOptions returns the parser options the config describes.
func (c *Config) ParseOptions(tracer vimson.Tracer) vimson.ParseOptions {
	depth := c.MaxDepth
	if depth == 0 {
		depth = -1
	}
	return vimson.ParseOptions{
		MaxDepth:       depth,
		RejectTrailing: c.RejectTrailing,
		Tracer:         tracer,
	}
}
