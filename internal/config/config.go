package config

import (
	"os"
	"strings"
	"time"

	"github.com/cocoa-pos/api/internal/enum"
)

type Config struct {
	Port           string
	AllowedOrigins []string
	// MenuPath overrides the embedded menu when set.
	MenuPath string
	// ServePolicy: "flag" keeps served items, "remove" deletes them.
	ServePolicy    string
	AttentionDelay time.Duration
}

func Load() *Config {
	return &Config{
		Port:           getEnv("PORT", "8081"),
		AllowedOrigins: splitCSV(getEnv("ALLOWED_ORIGINS", "http://localhost:5173")),
		MenuPath:       getEnv("MENU_PATH", ""),
		ServePolicy:    getEnv("SERVE_POLICY", enum.ServePolicyFlag),
		AttentionDelay: getDuration("ATTENTION_DELAY", 30*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}

func splitCSV(v string) []string {
	parts := strings.Split(v, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
