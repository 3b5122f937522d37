package config

import (
	"fmt"
	"os"
	"strings"
)

// envAny reads the bare (unprefixed) environment variable name, the
// fallback when the PYACC__-prefixed form is unset, per spec §6's "namespace
// prefix mirrors the unprefixed name" rule.
func envAny(name string) string {
	return os.Getenv(name)
}

// syncToAsyncSchemes maps a sync URL scheme/driver token to its async
// equivalent, per spec §6's URL normalization table.
var syncToAsyncSchemes = map[string]string{
	"postgresql":         "postgresql+asyncpg",
	"postgresql+psycopg": "postgresql+asyncpg",
	"sqlite":             "sqlite+aiosqlite",
	"sqlite+pysqlite":    "sqlite+aiosqlite",
}

var asyncDriverTokens = []string{"+asyncpg", "+aiosqlite"}

// SyncToAsyncURL converts a sync-driver connection URL into its async
// equivalent. Unknown schemes are returned unchanged.
func SyncToAsyncURL(syncURL string) (string, error) {
	scheme, rest, ok := splitScheme(syncURL)
	if !ok {
		return "", fmt.Errorf("%w: URL has no scheme: %s", errMalformedURL, syncURL)
	}
	if async, ok := syncToAsyncSchemes[scheme]; ok {
		return async + "://" + rest, nil
	}
	return syncURL, nil
}

// ValidateSyncURL rejects any URL carrying an async driver token, per spec
// §6: "The migration engine rejects any URL carrying an async driver token."
func ValidateSyncURL(syncURL string) error {
	for _, tok := range asyncDriverTokens {
		if strings.Contains(syncURL, tok) {
			return fmt.Errorf("%w: sync URL carries async driver token %q: %s", errAsyncDriverRejected, tok, syncURL)
		}
	}
	return nil
}

func splitScheme(url string) (scheme, rest string, ok bool) {
	idx := strings.Index(url, "://")
	if idx < 0 {
		return "", "", false
	}
	return url[:idx], url[idx+3:], true
}

var (
	errMalformedURL        = fmt.Errorf("malformed database URL")
	errAsyncDriverRejected = fmt.Errorf("async driver not allowed for sync engine")
)
