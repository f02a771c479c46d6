// Package config loads the defaults of tinynotify-send from TOML files.
package config

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/adrg/xdg"
	"github.com/knadh/koanf/parsers/toml"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"

	"github.com/esiqveland/tinynotify"
)

const (
	appName  = "tinynotify"
	fileName = "config.toml"
)

type Config struct {
	AppName string `koanf:"app_name"`
	AppIcon string `koanf:"app_icon"`

	// Urgency is "low", "normal", "critical" or empty
	Urgency string `koanf:"urgency"`
	// Category hint, e.g. "im.received"
	Category string `koanf:"category"`

	// ExpireTimeout in ms, -1 = server default, 0 = never expire
	ExpireTimeout *int `koanf:"expire_timeout"`
	// CallTimeoutMS bounds every bus call (default: 5000)
	CallTimeoutMS int `koanf:"call_timeout_ms"`
}

// Load reads the config files in order of priority (last wins). Missing
// files are skipped.
func Load() (*Config, error) {
	return LoadFiles(Paths()...)
}

// LoadFiles reads the given files, later files override earlier ones.
func LoadFiles(paths ...string) (*Config, error) {
	k := koanf.New(".")

	for _, path := range paths {
		if _, err := os.Stat(path); err != nil {
			continue
		}
		if err := k.Load(file.Provider(path), toml.Parser()); err != nil {
			return nil, fmt.Errorf("loading %s: %w", path, err)
		}
	}

	cfg := &Config{}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, err
	}
	cfg.Urgency = strings.ToLower(strings.TrimSpace(cfg.Urgency))
	if cfg.Urgency != "" {
		if _, err := ParseUrgency(cfg.Urgency); err != nil {
			return nil, err
		}
	}
	return cfg, nil
}

// Paths returns the config files looked at by Load.
func Paths() []string {
	return []string{
		// 1. $XDG_CONFIG_HOME/tinynotify/config.toml
		filepath.Join(xdg.ConfigHome, appName, fileName),
		// 2. ./tinynotify.toml (pwd, highest priority)
		appName + ".toml",
	}
}

// ParseUrgency maps an urgency name or number to its level.
func ParseUrgency(s string) (tinynotify.Urgency, error) {
	switch strings.ToLower(s) {
	case "low", "0":
		return tinynotify.UrgencyLow, nil
	case "normal", "1":
		return tinynotify.UrgencyNormal, nil
	case "critical", "2":
		return tinynotify.UrgencyCritical, nil
	}
	return 0, fmt.Errorf("invalid urgency %q (want low, normal or critical)", s)
}

// CallTimeout returns the bus call timeout with the default applied.
func (c *Config) CallTimeout() time.Duration {
	if c.CallTimeoutMS <= 0 {
		return tinynotify.CallTimeout
	}
	return time.Duration(c.CallTimeoutMS) * time.Millisecond
}

// SessionOptions turns the session-wide defaults into Session options.
func (c *Config) SessionOptions() []tinynotify.Option {
	return []tinynotify.Option{
		tinynotify.WithAppName(c.AppName),
		tinynotify.WithAppIcon(c.AppIcon),
		tinynotify.WithCallTimeout(c.CallTimeout()),
	}
}

// Apply sets the notification fields the config has values for.
func (c *Config) Apply(n *tinynotify.Notification) {
	if c.Urgency != "" {
		if u, err := ParseUrgency(c.Urgency); err == nil {
			n.SetUrgency(u)
		}
	}
	if c.Category != "" {
		n.SetCategory(c.Category)
	}
	if c.ExpireTimeout != nil {
		n.SetExpireTimeout(time.Duration(*c.ExpireTimeout) * time.Millisecond)
	}
}
