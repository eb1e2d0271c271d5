package config

import "flag"

type Config struct {
	Driver           string
	DSN              string
	LogFile          string
	MaxLoginAttempts int
}

// FromFlags parses command-line flags. The trainer runs offline against a
// local store; flags are the whole configuration surface.
func FromFlags(args []string) (Config, error) {
	fs := flag.NewFlagSet("prefquiz", flag.ContinueOnError)
	var cfg Config
	fs.StringVar(&cfg.Driver, "driver", "sqlite", "storage driver: sqlite or postgres")
	fs.StringVar(&cfg.DSN, "dsn", "", "database DSN (driver default when empty)")
	fs.StringVar(&cfg.LogFile, "log-file", "logs/prefquiz.log", "structured log file")
	fs.IntVar(&cfg.MaxLoginAttempts, "max-login-attempts", 3, "interactive attempts before giving up")
	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}
	return cfg, nil
}
