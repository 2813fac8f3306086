package config

import (
	"flag"
	"io"

	"github.com/dmitrijs2005/fittrack/internal/flagx"
)

// parseFlags populates Config fields from command-line flags.
//
//	-a string     backend base URL
//	-d string     path of the local SQLite database
//	-t duration   per-request timeout, e.g. 10s
//	-i duration   online check interval
//	-l string     log level
//
// args is filtered with flagx.FilterArgs first, so flags meant for other
// components do not cause parse errors.
func parseFlags(cfg *Config, args []string) error {
	args = flagx.FilterArgs(args, []string{"-a", "-d", "-t", "-i", "-l"})

	fs := flag.NewFlagSet("fittrack", flag.ContinueOnError)
	fs.SetOutput(io.Discard)

	fs.StringVar(&cfg.ServerURL, "a", cfg.ServerURL, "backend base URL")
	fs.StringVar(&cfg.DatabasePath, "d", cfg.DatabasePath, "local database file")
	fs.DurationVar(&cfg.RequestTimeout, "t", cfg.RequestTimeout, "request timeout")
	fs.DurationVar(&cfg.OnlineCheckInterval, "i", cfg.OnlineCheckInterval, "online check interval")
	fs.StringVar(&cfg.LogLevel, "l", cfg.LogLevel, "log level (debug, info, warn, error)")

	return fs.Parse(args)
}
