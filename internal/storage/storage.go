package storage

import (
	"net/url"
	"strings"
)

// HasEmbeddedCredentials reports whether a Postgres connection string carries
// a password inline. Inline credentials are refused; passwords come from the
// OS keyring, ROUTINELY_DB_CONNECTION, or .pgpass instead.
func HasEmbeddedCredentials(connStr string) bool {
	if strings.HasPrefix(connStr, "postgres://") || strings.HasPrefix(connStr, "postgresql://") {
		u, err := url.Parse(connStr)
		if err != nil {
			return false
		}
		if u.User != nil {
			if _, set := u.User.Password(); set {
				return true
			}
		}
		return false
	}

	// DSN format: space-separated key=value pairs.
	for _, part := range strings.Fields(connStr) {
		kv := strings.SplitN(part, "=", 2)
		if len(kv) == 2 && strings.EqualFold(kv[0], "password") && kv[1] != "" {
			return true
		}
	}
	return false
}
