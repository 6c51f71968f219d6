package config

import (
	"os"
	"strconv"
	"time"
)

// Server captures process level configuration sourced from the environment so
// main stays lean.
type Server struct {
	Addr          string
	JWTSigningKey string

	// AdminEmail/AdminPasswordHash seed the single back-office account used
	// to mint session tokens. The hash is a bcrypt digest.
	AdminEmail        string
	AdminName         string
	AdminPasswordHash string

	// BackupDelay simulates snapshot durability latency. Zero disables the
	// delay (tests run with zero).
	BackupDelay time.Duration

	// RedisURL selects the redis snapshot archive when set; empty keeps the
	// in-memory archive.
	RedisURL string

	// AuditDatabaseURL enables the write-behind postgres audit sink when set.
	AuditDatabaseURL string
}

// FromEnv builds a Server config from environment variables.
func FromEnv() Server {
	addr := os.Getenv("GREENLIGHT_ADDR")
	if addr == "" {
		addr = ":8080"
	}

	jwtSigningKey := os.Getenv("JWT_SIGNING_KEY")
	if jwtSigningKey == "" {
		// Use a default for development - should be overridden in production
		jwtSigningKey = "dev-secret-key-change-in-production"
	}

	adminEmail := os.Getenv("GREENLIGHT_ADMIN_EMAIL")
	if adminEmail == "" {
		adminEmail = "admin@greenlight.local"
	}
	adminName := os.Getenv("GREENLIGHT_ADMIN_NAME")
	if adminName == "" {
		adminName = "Back Office"
	}

	return Server{
		Addr:              addr,
		JWTSigningKey:     jwtSigningKey,
		AdminEmail:        adminEmail,
		AdminName:         adminName,
		AdminPasswordHash: os.Getenv("GREENLIGHT_ADMIN_PASSWORD_HASH"),
		BackupDelay:       durationFromEnv("GREENLIGHT_BACKUP_DELAY_MS", 1500*time.Millisecond),
		RedisURL:          os.Getenv("GREENLIGHT_REDIS_URL"),
		AuditDatabaseURL:  os.Getenv("GREENLIGHT_AUDIT_DATABASE_URL"),
	}
}

func durationFromEnv(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	ms, err := strconv.Atoi(raw)
	if err != nil || ms < 0 {
		return fallback
	}
	return time.Duration(ms) * time.Millisecond
}
