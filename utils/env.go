package utils

import (
	"os"
	"strings"
)

// EnvOrDefault returns the value of key or fallback when unset/blank.
func EnvOrDefault(key, def string) string {
	v := strings.TrimSpace(os.Getenv(key))
	if v == "" {
		return def
	}
	return v
}
