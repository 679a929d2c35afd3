package config

import "time"

// Config holds runtime settings for the authkeep client.
//
// Fields:
//   - ServerBaseURL: base URL of the backend auth API.
//   - RequestTimeout: upper bound for a single transport round trip.
//   - RefreshCheckInterval: how often the refresh watcher inspects the token.
//   - RefreshExpiryMargin: refresh when the token expires within this window.
//   - DatabasePath: location of the local credentials database.
type Config struct {
	ServerBaseURL        string        `env:"AUTHKEEP_SERVER_URL"`
	RequestTimeout       time.Duration `env:"AUTHKEEP_REQUEST_TIMEOUT"`
	RefreshCheckInterval time.Duration `env:"AUTHKEEP_REFRESH_CHECK_INTERVAL"`
	RefreshExpiryMargin  time.Duration `env:"AUTHKEEP_REFRESH_EXPIRY_MARGIN"`
	DatabasePath         string        `env:"AUTHKEEP_DB_PATH"`
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.ServerBaseURL = "http://localhost:8080"
	c.RequestTimeout = 15 * time.Second
	c.RefreshCheckInterval = 30 * time.Second
	c.RefreshExpiryMargin = time.Minute
	c.DatabasePath = "authkeep.db"
}

// LoadConfig constructs a Config, applies defaults, then overlays values
// from JSON (if a file was given), environment variables, and command-line
// flags. Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
