package config

import "github.com/caarlos0/env/v11"

// EnvPrefix is prepended to every variable name in Config's env tags.
const EnvPrefix = "FITTRACK_"

// parseEnv overlays cfg with FITTRACK_* variables. Unset variables leave the
// current value alone.
func parseEnv(cfg *Config, environ map[string]string) error {
	opts := env.Options{Prefix: EnvPrefix}
	if environ != nil {
		opts.Environment = environ
	}
	return env.ParseWithOptions(cfg, opts)
}
