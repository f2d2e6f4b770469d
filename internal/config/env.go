// Package config provides configuration helpers for go-pluto commands.
package config

import (
	"fmt"
	"os"
	"strconv"
)

// DefaultPort is the web/control port the daemon listens on.
const DefaultPort = "5000"

// Env returns the value of an environment variable or a default.
func Env(key, def string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return def
}

// EnvBool returns a boolean environment variable or a default.
// Accepts the forms strconv.ParseBool accepts (1, t, true, ...).
func EnvBool(key string, def bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return def
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return def
	}
	return b
}

// DaemonURL returns the base HTTP URL of a running pluto daemon,
// honoring the PLUTO_ADDR env var.
func DaemonURL() string {
	if addr := os.Getenv("PLUTO_ADDR"); addr != "" {
		return addr
	}
	return fmt.Sprintf("http://localhost:%s", Env("PLUTO_PORT", DefaultPort))
}
