package config

import (
	"errors"
	"flag"
	"os"
	"path/filepath"
	"time"
)

type Config struct {
	APIURL    string
	StatePath string
	ClientID  string
	Throttle  time.Duration
	Debug     bool

	// dev mode only
	ServeAddr   string
	TokenSecret string
}

// ParseFlags reads the command line after the subcommand name. Defaults can
// be overridden through GRADLINK_API_URL and GRADLINK_STATE for scripting.
func ParseFlags(fs *flag.FlagSet, args []string) (cfg Config, err error) {
	fs.StringVar(&cfg.APIURL, "api-url", envOr("GRADLINK_API_URL", "http://localhost:5000/api"), "base URL of the GradLink API")
	fs.StringVar(&cfg.StatePath, "state", envOr("GRADLINK_STATE", defaultStatePath()), "path to the local SQLite state file")
	fs.StringVar(&cfg.ClientID, "client-id", "", "override the persisted client id")
	var throttle uint
	fs.UintVar(&throttle, "throttle", 60, "minutes between survey eligibility checks")
	fs.BoolVar(&cfg.Debug, "debug", false, "log at DEBUG level")
	fs.StringVar(&cfg.ServeAddr, "addr", "localhost:5000", "listen address for the dev API server")
	fs.StringVar(&cfg.TokenSecret, "token-secret", envOr("GRADLINK_TOKEN_SECRET", "dev-secret"), "signing secret for the dev API server")
	if err = fs.Parse(args); err != nil {
		return
	}

	cfg.Throttle = time.Duration(throttle) * time.Minute

	if cfg.APIURL == "" {
		err = errors.New("missing parameter -api-url")
	}

	return
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func defaultStatePath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return "gradlink.sqlite"
	}
	return filepath.Join(home, ".gradlink", "state.sqlite")
}
