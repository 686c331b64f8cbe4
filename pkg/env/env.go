// Package env reads process environment variables that sit outside the
// envconfig-managed configuration, mainly during logger bootstrap.
package env

import (
	"os"
	"strings"
)

// Get returns the value of key, or fallback when the variable is unset or
// blank.
func Get(key, fallback string) string {
	value, ok := os.LookupEnv(key)
	if !ok || strings.TrimSpace(value) == "" {
		return fallback
	}
	return value
}
