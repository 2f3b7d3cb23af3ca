package config

import (
	"flag"
	"io"
	"os"

	"github.com/dmitrijs2005/fmsdesk/internal/flagx"
)

// parseFlags populates selected Config fields from command-line flags.
//
// Only the flags listed below are taken from os.Args (see flagx.FilterArgs),
// so -c/-config and anything else on the command line are ignored here.
func parseFlags(cfg *Config) {
	args := flagx.FilterArgs(os.Args[1:], []string{"-a", "-t", "-s", "-l", "-v", "-d"})

	fs := flag.NewFlagSet("main", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.APIBaseURL, "a", cfg.APIBaseURL, "backend base URL")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "per-request timeout")
	fs.StringVar(&cfg.SessionDBPath, "s", cfg.SessionDBPath, "session database path")
	fs.StringVar(&cfg.LogFilePath, "l", cfg.LogFilePath, "log file path")
	fs.BoolVar(&cfg.Verbose, "v", cfg.Verbose, "debug logging")
	fs.StringVar(&cfg.DownloadDir, "d", cfg.DownloadDir, "download directory")

	if err := fs.Parse(args); err != nil {
		panic(err)
	}
}
