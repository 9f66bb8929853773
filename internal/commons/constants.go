package commons

import "time"

const (
	AllowedCurrencyLength      = 5
	MinimumCurrencyLength      = 3
	AllowedRPS                 = 10
	DefaultFrankfurterHostname = "https://api.frankfurter.dev"
	CacheExpiration            = 1 * time.Hour
	WarmInterval               = 30 * time.Minute
	ServerIdleTimeout          = time.Minute
	ServerReadTimeout          = 10 * time.Second
	ServerWriteTimeout         = 30 * time.Second
	ServerShutdownTimeout      = 10 * time.Second
)
