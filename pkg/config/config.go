// Package config loads tend's settings from .tend.yaml, TEND_* environment
// variables and defaults.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/mitchellh/go-homedir"
	"github.com/spf13/viper"

	"tableflip.dev/tend/pkg/history"
	"tableflip.dev/tend/pkg/navigator"
	"tableflip.dev/tend/pkg/page"
	"tableflip.dev/tend/pkg/stage"
	"tableflip.dev/tend/pkg/store"
	"tableflip.dev/tend/pkg/tracker"
)

const (
	keyPath       = "path"
	keyBackend    = "backend"
	keyStage      = "stage"
	keyRetention  = "retention"
	keyDebounce   = "debounce"
	keyThreshold  = "threshold"
	keySettle     = "settle"
	keyDone       = "done"
	keyVisibility = "visibility"
	keyLogLevel   = "log.level"
)

// Config holds resolved settings.
type Config struct {
	Path       string
	Store      store.Backend
	Stage      stage.Stage
	Retention  int
	Debounce   time.Duration
	Threshold  float64
	Settle     time.Duration
	Done       page.ID
	Visibility string
	LogLevel   string
}

// BasePath implements store.Config.
func (c *Config) BasePath() string { return c.Path }

// Backend implements store.Config.
func (c *Config) Backend() store.Backend { return c.Store }

// SetDefaults registers default values on v.
func SetDefaults(v *viper.Viper) {
	v.SetDefault(keyPath, "~/.tend")
	v.SetDefault(keyBackend, string(store.BackendDiskv))
	v.SetDefault(keyStage, stage.Default.String())
	v.SetDefault(keyRetention, history.DefaultRetention)
	v.SetDefault(keyDebounce, tracker.DefaultSaveDelay)
	v.SetDefault(keyThreshold, navigator.DefaultThreshold)
	v.SetDefault(keySettle, 600*time.Millisecond)
	v.SetDefault(keyDone, string(page.Mood))
	v.SetDefault(keyVisibility, "")
	v.SetDefault(keyLogLevel, "info")
}

// Load reads .tend.yaml from $TEND_CONFIG_PATH, the working directory or
// $HOME, layered under TEND_* environment variables.
func Load() (*Config, error) {
	v := viper.New()
	SetDefaults(v)
	v.SetConfigName(".tend") // .yaml is implicit
	v.SetEnvPrefix("TEND")
	v.AutomaticEnv()

	if override := os.Getenv("TEND_CONFIG_PATH"); override != "" {
		v.AddConfigPath(override)
	}
	v.AddConfigPath("./")
	if home, err := homedir.Dir(); err == nil {
		v.AddConfigPath(home)
	}

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("config: read: %w", err)
		}
	}
	return FromViper(v)
}

// FromViper resolves and validates settings from v.
func FromViper(v *viper.Viper) (*Config, error) {
	path, err := homedir.Expand(v.GetString(keyPath))
	if err != nil {
		return nil, fmt.Errorf("config: path: %w", err)
	}
	s, ok := stage.Parse(v.GetString(keyStage))
	if !ok {
		return nil, fmt.Errorf("config: unknown stage %q", v.GetString(keyStage))
	}
	c := &Config{
		Path:       path,
		Store:      store.Backend(v.GetString(keyBackend)),
		Stage:      s,
		Retention:  v.GetInt(keyRetention),
		Debounce:   v.GetDuration(keyDebounce),
		Threshold:  v.GetFloat64(keyThreshold),
		Settle:     v.GetDuration(keySettle),
		Done:       page.ID(v.GetString(keyDone)),
		Visibility: v.GetString(keyVisibility),
		LogLevel:   v.GetString(keyLogLevel),
	}
	if c.Visibility != "" {
		if c.Visibility, err = homedir.Expand(c.Visibility); err != nil {
			return nil, fmt.Errorf("config: visibility: %w", err)
		}
	}
	switch {
	case c.Retention <= 0:
		return nil, fmt.Errorf("config: retention must be positive, got %d", c.Retention)
	case c.Threshold <= 0 || c.Threshold >= 100:
		return nil, fmt.Errorf("config: threshold must be within (0, 100), got %v", c.Threshold)
	case c.Debounce < 0 || c.Settle < 0:
		return nil, fmt.Errorf("config: delays must not be negative")
	}
	return c, nil
}
