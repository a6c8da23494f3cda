package config

import "time"

// Config holds runtime settings for the ecovate CLI.
//
// Durations are time.Duration values; amounts of login attempts are per
// minute per email address.
type Config struct {
	StoreDriver string
	StoreDSN    string

	LogBackend string
	LogLevel   string
	LogFormat  string

	SessionSecret          string
	SessionTTL             time.Duration
	LoginAttemptsPerMinute int

	FactorsFile string

	AssistantDelay time.Duration
	InvestDelay    time.Duration

	S3Bucket       string
	S3Region       string
	S3BaseEndpoint string
	S3AccessKey    string
	S3SecretKey    string
	BackupPrefix   string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StoreDriver = "sqlite"
	c.StoreDSN = "ecovate.db"
	c.LogBackend = "slog"
	c.LogLevel = "info"
	c.LogFormat = "text"
	c.SessionSecret = "ecovate-local-session-key"
	c.SessionTTL = 720 * time.Hour
	c.LoginAttemptsPerMinute = 5
	c.FactorsFile = ""
	c.AssistantDelay = time.Second
	c.InvestDelay = 2 * time.Second
	c.S3Bucket = "ecovate-backups"
	c.S3Region = "us-east-1"
	c.BackupPrefix = "ecovate"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// JSON (if present), the environment and command-line flags. Later sources
// take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseJson(cfg)
	parseEnv(cfg)
	parseFlags(cfg)
	return cfg
}
