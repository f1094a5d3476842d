package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"
	"github.com/caarlos0/env/v11"
	"github.com/danmuck/rtcctl/internal/proctype"
	"github.com/danmuck/rtcctl/internal/rtc"
)

const (
	FormatText  = "text"
	FormatJSON  = "json"
	FormatHex   = "hex"
	FormatFrame = "frame"
)

// Config drives rtcctl. Environment variables override file values.
type Config struct {
	ScopeMapping    string `env:"RTCCTL_SCOPE_MAPPING"`
	Format          string `env:"RTCCTL_FORMAT"`
	MetricsTextfile string `env:"RTCCTL_METRICS_TEXTFILE"`
	ProcessTypes    map[string]uint8
}

type fileConfig struct {
	ScopeMapping    string           `toml:"scope_mapping"`
	Format          string           `toml:"format"`
	MetricsTextfile string           `toml:"metrics_textfile"`
	ProcessTypes    map[string]uint8 `toml:"process_types"`
}

func Default() Config {
	return Config{
		ScopeMapping: rtc.MappingPIDRefinesBroadcast.String(),
		Format:       FormatText,
		ProcessTypes: map[string]uint8{},
	}
}

// Load resolves defaults, then the file at path (skipped when path is empty),
// then the environment, and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if strings.TrimSpace(path) != "" {
		if err := applyFile(&cfg, path); err != nil {
			return Config{}, err
		}
	}
	if err := ApplyEnv(&cfg); err != nil {
		return Config{}, err
	}
	if err := Validate(cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, path string) error {
	var raw fileConfig
	meta, err := toml.DecodeFile(path, &raw)
	if err != nil {
		return fmt.Errorf("config load failed (%s): %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		return fmt.Errorf("config parse failed (%s): unknown key %q", path, undecoded[0].String())
	}
	if meta.IsDefined("scope_mapping") {
		cfg.ScopeMapping = strings.TrimSpace(raw.ScopeMapping)
	}
	if meta.IsDefined("format") {
		cfg.Format = strings.ToLower(strings.TrimSpace(raw.Format))
	}
	if meta.IsDefined("metrics_textfile") {
		cfg.MetricsTextfile = strings.TrimSpace(raw.MetricsTextfile)
	}
	if meta.IsDefined("process_types") {
		for name, code := range raw.ProcessTypes {
			cfg.ProcessTypes[name] = code
		}
	}
	return nil
}

// ApplyEnv overlays RTCCTL_* variables that are set; unset ones leave cfg alone.
func ApplyEnv(cfg *Config) error {
	if err := env.Parse(cfg); err != nil {
		return fmt.Errorf("parse env: %w", err)
	}
	cfg.Format = strings.ToLower(strings.TrimSpace(cfg.Format))
	return nil
}

func Validate(cfg Config) error {
	if _, err := rtc.ParseScopeMapping(cfg.ScopeMapping); err != nil {
		return fmt.Errorf("config invalid scope_mapping: %w", err)
	}
	switch cfg.Format {
	case FormatText, FormatJSON, FormatHex, FormatFrame:
	default:
		return fmt.Errorf("config invalid format: %q", cfg.Format)
	}
	if _, err := cfg.Registry(); err != nil {
		return fmt.Errorf("config invalid process_types: %w", err)
	}
	return nil
}

// Layout returns the task layout for the configured scope mapping.
func (c Config) Layout() (rtc.Layout, error) {
	mapping, err := rtc.ParseScopeMapping(c.ScopeMapping)
	if err != nil {
		return rtc.Layout{}, err
	}
	return rtc.Layout{Mapping: mapping}, nil
}

// Registry returns the built-in process types with configured overrides applied.
func (c Config) Registry() (*proctype.Registry, error) {
	return proctype.Default().WithOverrides(c.ProcessTypes)
}
