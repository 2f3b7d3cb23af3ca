// Package config loads runtime configuration for the fmsdesk CLI.
//
// Sources & precedence
//
//  1. Built-in defaults (see (*Config).LoadDefaults).
//  2. A .env file in the working directory and the process environment
//     (FMS_* variables, see parseEnv). The environment wins over the file.
//  3. Optional JSON file (see parseJson) selected via flags: -c or -config.
//  4. Command-line flags (see parseFlags), which override earlier values.
//
// Supported flags
//
//	-a string     backend base URL, e.g. https://fms.example.com
//	-t duration   per-request timeout, e.g. 30s
//	-s string     path of the local session database
//	-l string     path of the log file
//	-v            debug logging
//	-d string     directory for downloaded files
//
// # JSON schema
//
//	{
//	  "api_base_url": "https://fms.example.com",
//	  "request_timeout": "30s",
//	  "session_db_path": "fmsdesk.db",
//	  "log_file_path": "fmsdesk.log",
//	  "verbose": false,
//	  "download_dir": "downloads",
//	  "s3": {"bucket": "docs", "prefix": "fms", "region": "us-east-1",
//	         "endpoint": "http://127.0.0.1:9000", "access_key": "...", "secret_key": "..."}
//	}
//
// Invalid values in any source panic; the caller decides whether to recover.
package config
