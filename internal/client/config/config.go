package config

import "time"

// Config holds runtime settings for the fmsdesk CLI.
//
// APIBaseURL is the single source for every backend endpoint. When S3Bucket
// is set, downloads go to that bucket instead of DownloadDir.
type Config struct {
	APIBaseURL     string
	RequestTimeout time.Duration
	SessionDBPath  string
	LogFilePath    string
	Verbose        bool
	DownloadDir    string

	S3Bucket    string
	S3Prefix    string
	S3Region    string
	S3Endpoint  string
	S3AccessKey string
	S3SecretKey string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.APIBaseURL = "http://127.0.0.1:8000"
	c.RequestTimeout = 30 * time.Second
	c.SessionDBPath = "fmsdesk.db"
	c.LogFilePath = "fmsdesk.log"
	c.DownloadDir = "downloads"
	c.S3Region = "us-east-1"
}

// LoadConfig constructs a Config, applies defaults, then overlays values from
// the environment, JSON (if present) and command-line flags (if present).
// Later sources take precedence over earlier ones.
func LoadConfig() *Config {
	cfg := &Config{}
	cfg.LoadDefaults()
	parseEnv(cfg)
	parseJson(cfg)
	parseFlags(cfg)
	return cfg
}
