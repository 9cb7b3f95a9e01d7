package utils

import (
	"os"
	"strconv"
	"time"
)

type AuthConfig struct {
	JWTSecret   string
	JWTIssuer   string
	JWTDuration time.Duration
}

func LoadAuthConfig() AuthConfig {
	secret := os.Getenv("LEARNHUB_JWT_SECRET")
	if secret == "" {
		// dev default (change for demo / production)
		secret = "dev-secret-change-me"
	}

	issuer := os.Getenv("LEARNHUB_JWT_ISSUER")
	if issuer == "" {
		issuer = "learnhub"
	}

	ttl := 24 * time.Hour
	if raw := os.Getenv("LEARNHUB_JWT_TTL_HOURS"); raw != "" {
		if hours, err := strconv.Atoi(raw); err == nil && hours > 0 {
			ttl = time.Duration(hours) * time.Hour
		}
	}

	return AuthConfig{
		JWTSecret:   secret,
		JWTIssuer:   issuer,
		JWTDuration: ttl,
	}
}

// RecommendConfig holds the merge-policy knobs. Both are operational
// parameters, not invariants.
type RecommendConfig struct {
	// LocalThreshold: external adapters run only when the catalog returns
	// fewer results than this.
	LocalThreshold int
	// ExternalCap bounds how many ranked external candidates are appended.
	ExternalCap int
	// MirrorURL, when set, switches the free-platform adapter to fetch from
	// a local catalog mirror instead of its built-in table.
	MirrorURL string
}

func LoadRecommendConfig() RecommendConfig {
	cfg := RecommendConfig{
		LocalThreshold: 4,
		ExternalCap:    20,
		MirrorURL:      os.Getenv("LEARNHUB_MIRROR_URL"),
	}
	if raw := os.Getenv("LEARNHUB_LOCAL_THRESHOLD"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			cfg.LocalThreshold = n
		}
	}
	if raw := os.Getenv("LEARNHUB_EXTERNAL_CAP"); raw != "" {
		if n, err := strconv.Atoi(raw); err == nil && n >= 0 {
			cfg.ExternalCap = n
		}
	}
	return cfg
}
