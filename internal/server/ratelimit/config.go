package ratelimit

import (
	"os"
	"strconv"
	"strings"
	"time"
)

// EndpointConfig represents rate limiting configuration for a specific endpoint.
type EndpointConfig struct {
	Path   string        // Endpoint path pattern (supports prefix matching)
	Method string        // HTTP method (GET, POST, etc.)
	Limit  int           // Maximum requests per window
	Window time.Duration // Time window
	Burst  int           // Burst capacity (defaults to Limit if 0)
}

// LoadConfig loads rate limiting configuration from environment variables.
func LoadConfig() *Config {
	enabled := getEnvBool("RATE_LIMIT_ENABLED", true)
	if !enabled {
		return &Config{
			Enabled: false,
		}
	}

	return &Config{
		Enabled:         enabled,
		DefaultLimit:    getEnvInt("RATE_LIMIT_DEFAULT_LIMIT", 600),
		DefaultWindow:   getEnvDuration("RATE_LIMIT_DEFAULT_WINDOW", time.Minute),
		CleanupInterval: getEnvDuration("RATE_LIMIT_CLEANUP_INTERVAL", 5*time.Minute),
		IdleTTL:         getEnvDuration("RATE_LIMIT_IDLE_TTL", time.Hour),
		Whitelist:       parseIPList(getEnvString("RATE_LIMIT_WHITELIST", "")),
		Blacklist:       parseIPList(getEnvString("RATE_LIMIT_BLACKLIST", "")),
		EndpointConfigs: DefaultEndpointConfigs(
			getEnvInt("RATE_LIMIT_UPLOADS_PER_HOUR", 30),
			getEnvInt("RATE_LIMIT_LEADS_PER_HOUR", 10),
		),
	}
}

// DefaultEndpointConfigs returns the endpoint tiers. uploadsPerHour bounds
// resume scoring and interview creation, leadsPerHour bounds the lead forms.
func DefaultEndpointConfigs(uploadsPerHour, leadsPerHour int) []EndpointConfig {
	return []EndpointConfig{
		// Tier 1: resume parsing
		{Path: "/resumes/score", Method: "POST", Limit: uploadsPerHour, Window: time.Hour, Burst: 5},
		{Path: "/interviews", Method: "POST", Limit: uploadsPerHour, Window: time.Hour, Burst: 5},

		// Tier 2: lead capture and login
		{Path: "/leads/", Method: "POST", Limit: leadsPerHour, Window: time.Hour, Burst: 3},
		{Path: "/admin/login", Method: "POST", Limit: 10, Window: time.Minute, Burst: 5},

		// Tier 3: conversation
		{Path: "/chat/sessions", Method: "POST", Limit: 30, Window: time.Minute, Burst: 10},
		{Path: "/chat/sessions/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},
		{Path: "/chat/answer", Method: "POST", Limit: 60, Window: time.Minute, Burst: 20},
		{Path: "/interviews/", Method: "POST", Limit: 60, Window: time.Minute, Burst: 10},

		// Reads use the default limit; /health is unlimited (see MatchEndpoint)
	}
}

// getEnvString gets an environment variable as a string with a default value.
func getEnvString(key string, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

// getEnvInt gets an environment variable as an integer with a default value.
func getEnvInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvBool gets an environment variable as a boolean with a default value.
func getEnvBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(value); err == nil {
			return boolValue
		}
	}
	return defaultValue
}

// getEnvDuration gets an environment variable as a duration with a default value.
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}

// parseIPList parses a comma-separated list of IP addresses into a set.
func parseIPList(list string) map[string]bool {
	result := make(map[string]bool)
	for _, ip := range strings.Split(list, ",") {
		if ip = strings.TrimSpace(ip); ip != "" {
			result[ip] = true
		}
	}
	return result
}
