// Package config loads the ledger's environment-variable-driven settings
// into an immutable Settings value, grounded on the teacher's pkg/config
// (which loads a flat .env-backed Config struct with godotenv) generalized
// to the full variable set of spec §6 using viper's automatic-env binding.
// There is no global mutable singleton: Load returns a value the
// caller owns and threads through explicitly (spec §5, "Shared resources").
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

// Rounding names the decimal rounding mode. Only RoundHalfEven is
// implemented (the spec's contract default); the field exists so future
// modes can be named without changing the Settings shape.
type Rounding string

const RoundHalfEven Rounding = "ROUND_HALF_EVEN"

// DBSettings holds the async connection-pool and retry parameters (spec §6).
type DBSettings struct {
	URL               string
	URLAsync          string
	PoolSize          int
	MaxOverflow       int
	PoolTimeout       time.Duration
	PoolRecycle       time.Duration
	ConnectTimeout    time.Duration
	StatementTimeout  time.Duration
	RetryAttempts     int
	RetryBackoff      time.Duration
	RetryMaxBackoff   time.Duration
}

// QuantizationSettings holds scale/rounding configuration for §4.1.
type QuantizationSettings struct {
	MoneyScale int32
	RateScale  int32
	Rounding   Rounding
}

// FXTTLSettings holds the default TTL sweep parameters (spec §6).
type FXTTLSettings struct {
	Mode          string
	RetentionDays int
	BatchSize     int
	DryRun        bool
}

// Settings is the complete, immutable configuration value for one ledger
// instance.
type Settings struct {
	DB         DBSettings
	Quantize   QuantizationSettings
	FXTTL      FXTTLSettings
}

// Load reads configuration from the environment (optionally from a .env
// file first, ignoring its absence) using the PYACC__ prefix mirrored onto
// the unprefixed variable names per spec §6.
func Load() (Settings, error) {
	_ = godotenv.Load()

	v := viper.New()
	// viper joins the prefix and the key with a single "_", so the prefix
	// itself must already carry the trailing underscore to produce the
	// spec §6 "PYACC__" (double-underscore) namespace, e.g. PYACC__DATABASE_URL.
	v.SetEnvPrefix("PYACC_")
	v.AutomaticEnv()
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	get := func(name string) string {
		if val := v.GetString(name); val != "" {
			return val
		}
		return envAny(name)
	}
	getInt := func(name string, def int) int {
		s := get(name)
		if s == "" {
			return def
		}
		var n int
		if _, err := fmt.Sscanf(s, "%d", &n); err != nil {
			return def
		}
		return n
	}
	getBool := func(name string, def bool) bool {
		s := strings.ToLower(get(name))
		switch s {
		case "1", "true", "yes":
			return true
		case "0", "false", "no":
			return false
		default:
			return def
		}
	}

	dbURL := get("DATABASE_URL")
	dbURLAsync := get("DATABASE_URL_ASYNC")
	if dbURLAsync == "" && dbURL != "" {
		normalized, err := SyncToAsyncURL(dbURL)
		if err == nil {
			dbURLAsync = normalized
		}
	}

	s := Settings{
		DB: DBSettings{
			URL:              dbURL,
			URLAsync:         dbURLAsync,
			PoolSize:         getInt("DB_POOL_SIZE", 5),
			MaxOverflow:      getInt("DB_MAX_OVERFLOW", 10),
			PoolTimeout:      time.Duration(getInt("DB_POOL_TIMEOUT", 30)) * time.Second,
			PoolRecycle:      time.Duration(getInt("DB_POOL_RECYCLE_SEC", 1800)) * time.Second,
			ConnectTimeout:   time.Duration(getInt("DB_CONNECT_TIMEOUT_SEC", 10)) * time.Second,
			StatementTimeout: time.Duration(getInt("DB_STATEMENT_TIMEOUT_MS", 0)) * time.Millisecond,
			RetryAttempts:    getInt("DB_RETRY_ATTEMPTS", 3),
			RetryBackoff:     time.Duration(getInt("DB_RETRY_BACKOFF_MS", 50)) * time.Millisecond,
			RetryMaxBackoff:  time.Duration(getInt("DB_RETRY_MAX_BACKOFF_MS", 1000)) * time.Millisecond,
		},
		Quantize: QuantizationSettings{
			MoneyScale: int32(getInt("MONEY_SCALE", 2)),
			RateScale:  int32(getInt("RATE_SCALE", 6)),
			Rounding:   RoundHalfEven,
		},
		FXTTL: FXTTLSettings{
			Mode:          strings.ToLower(defaultString(get("FX_TTL_MODE"), "none")),
			RetentionDays: getInt("FX_TTL_RETENTION_DAYS", 90),
			BatchSize:     getInt("FX_TTL_BATCH_SIZE", 1000),
			DryRun:        getBool("FX_TTL_DRY_RUN", false),
		},
	}
	return s, nil
}

func defaultString(s, def string) string {
	if s == "" {
		return def
	}
	return s
}
