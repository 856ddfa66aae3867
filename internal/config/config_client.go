package config

import (
	"flag"
	"fmt"
	"os"
	"time"
)

// ClientAdapter holds network settings used by the signing console transport.
type ClientAdapter struct {
	// ServerURL is the base URL of the letter-seal API.
	ServerURL string
	// RequestTimeout is the default timeout for outbound client requests.
	RequestTimeout time.Duration
}

// ClientConfig is the top-level configuration of the signing console.
type ClientConfig struct {
	// Adapter contains client transport address and timeouts.
	Adapter ClientAdapter
}

type clientEnv struct {
	ServerURL      string        `env:"SIGNCTL_SERVER_URL"`
	RequestTimeout time.Duration `env:"SIGNCTL_REQUEST_TIMEOUT"`
}

// GetClientConfig assembles the signing console configuration from
// environment variables and flags. The console uses its own flag set so it
// never collides with the server flags.
func GetClientConfig() (*ClientConfig, error) {
	envCfg := clientEnv{}
	if err := parseEnv(&envCfg); err != nil {
		return nil, fmt.Errorf("error get client env configs: %w", err)
	}

	flags := flag.NewFlagSet("signctl", flag.ExitOnError)
	serverURL := flags.String("s", "", "Letter-seal API base URL")
	requestTimeout := flags.Duration("request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	if err := flags.Parse(os.Args[1:]); err != nil {
		return nil, fmt.Errorf("error parsing client flags: %w", err)
	}

	clientCfg := &ClientConfig{
		Adapter: ClientAdapter{
			ServerURL:      envCfg.ServerURL,
			RequestTimeout: envCfg.RequestTimeout,
		},
	}
	if *serverURL != "" {
		clientCfg.Adapter.ServerURL = *serverURL
	}
	if *requestTimeout != 0 {
		clientCfg.Adapter.RequestTimeout = *requestTimeout
	}
	if clientCfg.Adapter.ServerURL == "" {
		clientCfg.Adapter.ServerURL = "http://localhost:8080"
	}
	if clientCfg.Adapter.RequestTimeout == 0 {
		clientCfg.Adapter.RequestTimeout = 30 * time.Second
	}

	return clientCfg, nil
}
