package commons

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

type Config struct {
	ServerPort      uint16
	Hostname        string
	Symbols         []string
	Multiconversion bool
	CacheTTL        time.Duration
	RedisAddr       string
	RedisPass       string
	PostgresConn    string
	WarmBases       []string
	WarmInterval    time.Duration
	RateLimitRPS    int
}

const (
	decimalBase = 10
	bitSize     = 16
)

func LoadConfig() (Config, error) {
	var config Config
	var errors []string

	serverPort := os.Getenv("SERVER_PORT")
	if serverPort == "" {
		errors = append(errors, "SERVER_PORT is not set")
	} else {
		parsedServerPort, err := strconv.ParseUint(serverPort, decimalBase, bitSize)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid SERVER_PORT: %s", err))
		} else {
			config.ServerPort = uint16(parsedServerPort)
		}
	}

	config.Hostname = os.Getenv("FRANKFURTER_HOSTNAME")
	if config.Hostname == "" {
		config.Hostname = DefaultFrankfurterHostname
	}
	config.Symbols = splitList(os.Getenv("FRANKFURTER_SYMBOLS"))

	if raw := os.Getenv("FRANKFURTER_MULTICONVERSION"); raw != "" {
		multiconversion, err := strconv.ParseBool(raw)
		if err != nil {
			errors = append(errors, fmt.Sprintf("invalid FRANKFURTER_MULTICONVERSION: %s", err))
		}
		config.Multiconversion = multiconversion
	}

	config.CacheTTL = durationFromEnv("CACHE_TTL", CacheExpiration, true, &errors)

	config.RedisAddr = os.Getenv("REDIS_ADDR")
	config.RedisPass = os.Getenv("REDIS_PASSWORD")
	config.PostgresConn = os.Getenv("POSTGRES_CONN")

	config.WarmBases = splitList(os.Getenv("WARM_BASES"))
	config.WarmInterval = durationFromEnv("WARM_INTERVAL", WarmInterval, false, &errors)

	config.RateLimitRPS = AllowedRPS
	if raw := os.Getenv("RATE_LIMIT_RPS"); raw != "" {
		rps, err := strconv.Atoi(raw)
		if err != nil || rps <= 0 {
			errors = append(errors, fmt.Sprintf("invalid RATE_LIMIT_RPS: %q", raw))
		} else {
			config.RateLimitRPS = rps
		}
	}

	if len(errors) > 0 {
		for _, err := range errors {
			fmt.Println("Configuration Error:", err)
		}
		return Config{}, fmt.Errorf("configuration errors occurred")
	}

	return config, nil
}

// durationFromEnv parses key as a Go duration. Zero is only accepted when
// allowZero is set; a zero CACHE_TTL means entries never expire.
func durationFromEnv(key string, fallback time.Duration, allowZero bool, errors *[]string) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil || d < 0 || (d == 0 && !allowZero) {
		*errors = append(*errors, fmt.Sprintf("invalid %s: %q", key, raw))
		return fallback
	}
	return d
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.ToUpper(strings.TrimSpace(part)); part != "" {
			out = append(out, part)
		}
	}
	return out
}
