package config

import (
	"time"

	"github.com/dmitrijs2005/blogclient/internal/client/api"
	"github.com/dmitrijs2005/blogclient/internal/logging"
)

// Config holds runtime settings for the blog CLI.
//
// Fields:
//   - APIBaseURL: root URL of the REST API, without a trailing slash.
//   - DatabasePath: SQLite file holding the session.
//   - RequestTimeout: upper bound for a single API request.
//   - LogLevel / LogBackend: see logging.ParseLevel and logging.New.
type Config struct {
	APIBaseURL     string
	DatabasePath   string
	RequestTimeout time.Duration
	LogLevel       string
	LogBackend     string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = api.DefaultBaseURL
	c.DatabasePath = "blog.db"
	c.RequestTimeout = 30 * time.Second
	c.LogLevel = "info"
	c.LogBackend = logging.BackendSlog
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present) and command-line flags (if present). Later sources take
// precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
