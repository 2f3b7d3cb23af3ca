package config

import (
	"errors"
	"io/fs"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const envFile = ".env"

// parseEnv overlays cfg with FMS_* variables from the process environment and
// the .env file in the working directory.
func parseEnv(cfg *Config) {
	fileVars, err := godotenv.Read(envFile)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		panic(err)
	}

	applyEnv(cfg, func(key string) (string, bool) {
		if v, ok := os.LookupEnv(key); ok {
			return v, true
		}
		v, ok := fileVars[key]
		return v, ok
	})
}

func applyEnv(cfg *Config, lookup func(string) (string, bool)) {
	strs := map[string]*string{
		"FMS_API_BASE_URL":  &cfg.APIBaseURL,
		"FMS_SESSION_DB":    &cfg.SessionDBPath,
		"FMS_LOG_FILE":      &cfg.LogFilePath,
		"FMS_DOWNLOAD_DIR":  &cfg.DownloadDir,
		"FMS_S3_BUCKET":     &cfg.S3Bucket,
		"FMS_S3_PREFIX":     &cfg.S3Prefix,
		"FMS_S3_REGION":     &cfg.S3Region,
		"FMS_S3_ENDPOINT":   &cfg.S3Endpoint,
		"FMS_S3_ACCESS_KEY": &cfg.S3AccessKey,
		"FMS_S3_SECRET_KEY": &cfg.S3SecretKey,
	}
	for key, dst := range strs {
		if v, ok := lookup(key); ok && v != "" {
			*dst = v
		}
	}

	if v, ok := lookup("FMS_REQUEST_TIMEOUT"); ok && v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			panic(err)
		}
		cfg.RequestTimeout = d
	}

	if v, ok := lookup("FMS_VERBOSE"); ok && v != "" {
		b, err := strconv.ParseBool(v)
		if err != nil {
			panic(err)
		}
		cfg.Verbose = b
	}
}
