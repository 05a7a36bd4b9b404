// Package config loads runtime settings for the Vinobook CLI.
package config

// Config holds runtime settings.
//
// Fields:
//   - ServerURL: base URL of the Vinobook REST server.
//   - DatabasePath: sqlite file holding the persisted session.
type Config struct {
	ServerURL    string
	DatabasePath string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerURL = "http://localhost:8000"
	c.DatabasePath = "vinobook.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJSON(cfg)
	parseFlags(cfg)
	return cfg
}
