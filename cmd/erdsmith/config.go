// ABOUTME: Server configuration loaded from ERDSMITH_* environment variables.
// ABOUTME: Enforces security constraint: non-loopback binds require an explicit opt-in.
package main

import (
	"errors"
	"fmt"
	"net"
	"os"
	"strconv"
	"time"
)

var ErrNonLoopbackBind = errors.New(
	"ERDSMITH_BIND is a non-loopback address but ERDSMITH_ALLOW_REMOTE is not true; set ERDSMITH_ALLOW_REMOTE=true to allow remote access",
)

// ErdsmithConfig holds server configuration loaded from environment variables.
type ErdsmithConfig struct {
	Bind        string        // Socket address (ERDSMITH_BIND, default: 127.0.0.1:8321)
	AllowRemote bool          // Allow non-loopback binds (ERDSMITH_ALLOW_REMOTE, default: false)
	DBPath      string        // SQLite path for saved diagrams (ERDSMITH_DB, optional)
	MaxSessions int           // In-memory session capacity (ERDSMITH_MAX_SESSIONS, default: 100)
	SessionTTL  time.Duration // Idle session lifetime (ERDSMITH_SESSION_TTL, default: 1h)
}

// ConfigFromEnv loads configuration from ERDSMITH_* environment variables with
// sensible defaults.
func ConfigFromEnv() (*ErdsmithConfig, error) {
	bind := envOrDefault("ERDSMITH_BIND", "127.0.0.1:8321")

	allowRemote := false
	if v := os.Getenv("ERDSMITH_ALLOW_REMOTE"); v == "true" || v == "1" || v == "yes" {
		allowRemote = true
	}

	maxSessions := 100
	if v := os.Getenv("ERDSMITH_MAX_SESSIONS"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 1 {
			return nil, fmt.Errorf("invalid ERDSMITH_MAX_SESSIONS %q", v)
		}
		maxSessions = n
	}

	sessionTTL := time.Hour
	if v := os.Getenv("ERDSMITH_SESSION_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil || d <= 0 {
			return nil, fmt.Errorf("invalid ERDSMITH_SESSION_TTL %q", v)
		}
		sessionTTL = d
	}

	// Security: refuse non-loopback binds unless explicitly opting into remote
	// access. Checks both IP literals and hostnames; only 127.0.0.0/8, ::1, and
	// "localhost" are considered safe.
	if !allowRemote {
		if host, _, err := net.SplitHostPort(bind); err == nil && host != "" {
			ip := net.ParseIP(host)
			switch {
			case ip != nil && ip.IsLoopback():
				// Safe: 127.x.x.x or ::1
			case ip != nil:
				return nil, fmt.Errorf("%w: ERDSMITH_BIND=%s", ErrNonLoopbackBind, bind)
			case host == "localhost":
				// Safe: conventional loopback hostname
			default:
				return nil, fmt.Errorf("%w: ERDSMITH_BIND=%s", ErrNonLoopbackBind, bind)
			}
		}
	}

	return &ErdsmithConfig{
		Bind:        bind,
		AllowRemote: allowRemote,
		DBPath:      os.Getenv("ERDSMITH_DB"),
		MaxSessions: maxSessions,
		SessionTTL:  sessionTTL,
	}, nil
}

func envOrDefault(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}
