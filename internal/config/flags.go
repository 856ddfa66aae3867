package config

import (
	"errors"
	"flag"
	"net"
	"strconv"
	"strings"
	"time"
)

// NetAddress holds structured network address data for host and port.
// It implements the flag.Value interface.
type NetAddress struct {
	Host string
	Port int
}

// ParseFlags parses all configuration flags.
//
// Flags:
//
//	-a server address in format [host]:[port]
//	-d database DSN
//	-rate-limit-db rate limit sqlite file path
//	-c/-config json file path with configs
//	-base-url public verification base URL
//	-token-sign-key token signing key
//	-token-issuer token issuer name
//	-token-duration token duration (e.g., "1h", "30m")
//	-hash-cost bcrypt cost for secret key hashing
//	-request-timeout request timeout (e.g., "30s", "1m")
//	-max-attempts failed attempts before blocking
//	-block-duration how long a rate limit block lasts
//	-janitor-interval purge interval for expired rate limit entries
func ParseFlags() *StructuredConfig {
	var serverAddress NetAddress
	var databaseDSN string
	var rateLimitDBPath string
	var jsonConfigPath string
	var baseURL string
	var tokenSignKey string
	var tokenIssuer string
	var tokenDuration time.Duration
	var hashCost int
	var requestTimeout time.Duration
	var maxAttempts int
	var blockDuration time.Duration
	var janitorInterval time.Duration

	flag.Var(&serverAddress, "a", "Net address host:port")
	flag.StringVar(&databaseDSN, "d", "", "Database DSN")
	flag.StringVar(&rateLimitDBPath, "rate-limit-db", "", "Rate limit sqlite file path")
	flag.StringVar(&jsonConfigPath, "c", "", "JSON config file path")
	flag.StringVar(&jsonConfigPath, "config", "", "JSON config file path (alias)")
	flag.StringVar(&baseURL, "base-url", "", "Public verification base URL")
	flag.StringVar(&tokenSignKey, "token-sign-key", "", "Token signing key")
	flag.StringVar(&tokenIssuer, "token-issuer", "", "Token issuer")
	flag.DurationVar(&tokenDuration, "token-duration", 0, "Token duration (e.g., 1h, 30m)")
	flag.IntVar(&hashCost, "hash-cost", 0, "Bcrypt cost for secret key hashing")
	flag.DurationVar(&requestTimeout, "request-timeout", 0, "Request timeout (e.g., 30s, 1m)")
	flag.IntVar(&maxAttempts, "max-attempts", 0, "Failed secret key attempts before blocking")
	flag.DurationVar(&blockDuration, "block-duration", 0, "Rate limit block duration")
	flag.DurationVar(&janitorInterval, "janitor-interval", 0, "Rate limit janitor interval")

	flag.Parse()

	return &StructuredConfig{
		App: App{
			TokenSignKey:  tokenSignKey,
			TokenIssuer:   tokenIssuer,
			TokenDuration: tokenDuration,
			HashCost:      hashCost,
			BaseURL:       baseURL,
		},
		Storage: Storage{
			DB: DB{
				DSN: databaseDSN,
			},
			RateLimit: RateLimitDB{
				Path: rateLimitDBPath,
			},
		},
		Server: Server{
			HTTPAddress:    serverAddress.String(),
			RequestTimeout: requestTimeout,
		},
		Limits: Limits{
			MaxAttempts:   maxAttempts,
			BlockDuration: blockDuration,
		},
		Workers: Workers{
			JanitorInterval: janitorInterval,
		},
		JSONFilePath: jsonConfigPath,
	}
}

// String returns a canonical host:port string for a NetAddress.
func (a *NetAddress) String() string {
	if a.Host == "" && a.Port == 0 {
		return ""
	}

	return a.Host + ":" + strconv.Itoa(a.Port)
}

// Set parses the input string of form host:port and populates the NetAddress.
// It validates the port range, checks IP correctness unless host is "localhost",
// and returns an error if the format or values are invalid.
func (a *NetAddress) Set(s string) error {
	hostAndPort := strings.Split(s, ":")
	if len(hostAndPort) != 2 {
		return errors.New("need address in a form `host:port`")
	}

	host := hostAndPort[0]
	port, err := strconv.Atoi(hostAndPort[1])
	if err != nil {
		return err
	}

	if port < 1 {
		return errors.New("port number is a positive integer")
	}

	if host != "localhost" && host != "" {
		ip := net.ParseIP(hostAndPort[0])
		if ip == nil {
			return errors.New("incorrect IP-address provided")
		}
	}

	a.Host = host
	a.Port = port
	return nil
}
