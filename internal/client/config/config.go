// Package config loads runtime configuration for the terminal client.
//
// Sources are applied in order, later ones winning:
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. Environment variables USERAPP_API_URL, USERAPP_STATE_DB,
//     USERAPP_REDIS_URL and USERAPP_TIMEOUT.
//  3. Command-line flags registered by BindFlags.
package config

import (
	"os"
	"time"

	"github.com/spf13/cobra"
)

const (
	EnvAPIURL   = "USERAPP_API_URL"
	EnvStateDB  = "USERAPP_STATE_DB"
	EnvRedisURL = "USERAPP_REDIS_URL"
	EnvTimeout  = "USERAPP_TIMEOUT"
)

// Config holds runtime settings for the client.
//
// StateDB is the sqlite file holding the suppression set. When RedisURL is
// set it takes precedence over StateDB.
type Config struct {
	APIURL   string
	StateDB  string
	RedisURL string
	Timeout  time.Duration
}

// LoadDefaults populates c with defaults.
func (c *Config) LoadDefaults() {
	c.APIURL = "http://localhost:5000/users"
	c.StateDB = "userapp-client.db"
	c.RedisURL = ""
	c.Timeout = 10 * time.Second
}

// LoadFromEnv overlays values found in the environment. Malformed durations
// are ignored.
func (c *Config) LoadFromEnv() {
	if v := os.Getenv(EnvAPIURL); v != "" {
		c.APIURL = v
	}
	if v := os.Getenv(EnvStateDB); v != "" {
		c.StateDB = v
	}
	if v := os.Getenv(EnvRedisURL); v != "" {
		c.RedisURL = v
	}
	if v := os.Getenv(EnvTimeout); v != "" {
		if d, err := time.ParseDuration(v); err == nil && d > 0 {
			c.Timeout = d
		}
	}
}

// BindFlags registers persistent flags on cmd whose defaults are the values
// already loaded into c, so flags override env and defaults.
func (c *Config) BindFlags(cmd *cobra.Command) {
	flags := cmd.PersistentFlags()
	flags.StringVar(&c.APIURL, "api", c.APIURL, "base URL of the users API")
	flags.StringVar(&c.StateDB, "state", c.StateDB, "sqlite file for client state")
	flags.StringVar(&c.RedisURL, "redis", c.RedisURL, "redis URL for client state (overrides --state)")
	flags.DurationVar(&c.Timeout, "timeout", c.Timeout, "HTTP request timeout")
}

// LoadConfig builds a Config from defaults and the environment. Flags are
// applied later, when the command line is parsed.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	cfg.LoadFromEnv()
	return cfg
}
