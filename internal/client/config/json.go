package config

import (
	"encoding/json"
	"os"

	"github.com/dmitrijs2005/fmsdesk/internal/flagx"
	"github.com/dmitrijs2005/fmsdesk/internal/timex"
)

// JsonConfig is a DTO used exclusively for JSON unmarshalling. Absent or
// empty fields leave the current value alone.
type JsonConfig struct {
	APIBaseURL     string         `json:"api_base_url"`
	RequestTimeout timex.Duration `json:"request_timeout"`
	SessionDBPath  string         `json:"session_db_path"`
	LogFilePath    string         `json:"log_file_path"`
	Verbose        *bool          `json:"verbose"`
	DownloadDir    string         `json:"download_dir"`
	S3             struct {
		Bucket    string `json:"bucket"`
		Prefix    string `json:"prefix"`
		Region    string `json:"region"`
		Endpoint  string `json:"endpoint"`
		AccessKey string `json:"access_key"`
		SecretKey string `json:"secret_key"`
	} `json:"s3"`
}

// parseJson overlays Config with values loaded from the JSON file named by
// -c / -config. Without that flag it does nothing. Read and unmarshal errors
// panic.
func parseJson(cfg *Config) {
	jsonConfigFile := flagx.ConfigFilePath()
	if jsonConfigFile == "" {
		return
	}

	data, err := os.ReadFile(jsonConfigFile)
	if err != nil {
		panic(err)
	}

	var jc JsonConfig
	if err := json.Unmarshal(data, &jc); err != nil {
		panic(err)
	}

	setString(&cfg.APIBaseURL, jc.APIBaseURL)
	if jc.RequestTimeout.Duration != 0 {
		cfg.RequestTimeout = jc.RequestTimeout.Duration
	}
	setString(&cfg.SessionDBPath, jc.SessionDBPath)
	setString(&cfg.LogFilePath, jc.LogFilePath)
	if jc.Verbose != nil {
		cfg.Verbose = *jc.Verbose
	}
	setString(&cfg.DownloadDir, jc.DownloadDir)

	setString(&cfg.S3Bucket, jc.S3.Bucket)
	setString(&cfg.S3Prefix, jc.S3.Prefix)
	setString(&cfg.S3Region, jc.S3.Region)
	setString(&cfg.S3Endpoint, jc.S3.Endpoint)
	setString(&cfg.S3AccessKey, jc.S3.AccessKey)
	setString(&cfg.S3SecretKey, jc.S3.SecretKey)
}

func setString(dst *string, v string) {
	if v != "" {
		*dst = v
	}
}
