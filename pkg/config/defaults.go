// Package config provides centralized default values for the Bartlett Partners backend
package config

import (
	"log"
	"os"
	"strconv"
	"sync"
	"time"

	"github.com/joho/godotenv"
)

var envLoaded sync.Once

func loadEnvFile() {
	envLoaded.Do(func() {
		if err := godotenv.Load(); err == nil {
			log.Println("Loading configuration overrides from .env file...")
		}
	})
}

func getEnvInt(key string, defaultValue int) int {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.Atoi(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%d (default: %d)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvString(key string, defaultValue string) string {
	if val := os.Getenv(key); val != "" {
		if val != defaultValue {
			log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
		}
		return val
	}
	return defaultValue
}

func getEnvFloat(key string, defaultValue float64) float64 {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := strconv.ParseFloat(valStr, 64); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%g (default: %g)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	if valStr := os.Getenv(key); valStr != "" {
		if val, err := time.ParseDuration(valStr); err == nil {
			if val != defaultValue {
				log.Printf("Config override: %s=%s (default: %s)", key, val, defaultValue)
			}
			return val
		}
	}
	return defaultValue
}

var (
	// Server Configuration
	Port               string
	ServerReadTimeout  time.Duration
	ServerWriteTimeout time.Duration
	ServerIdleTimeout  time.Duration
	SiteBaseURL        string

	// Database Pool
	DBMaxOpenConns           int
	DBMaxIdleConns           int
	DBConnMaxLifetimeMinutes int
	DBConnMaxIdleMinutes     int
	SlowQueryThreshold       time.Duration

	// Query Cache Configuration
	QueryFreshnessWindow time.Duration
	QueryGCWindow        time.Duration
	QueryFetchRetries    int
	CacheCleanupInterval time.Duration

	// Session Configuration
	SessionTTL             time.Duration
	MaxSessions            int
	SessionCleanupInterval time.Duration

	// Engagement Coordinator
	PopupDwellDelay      time.Duration
	ExitIntentEdgePx     float64
	ScrollDepthThreshold float64
	TriggerChannelBuffer int

	// Consent
	ConsentBannerDelay time.Duration

	// Auth
	JWTSecret     string
	AdminPassword string
	TokenLifetime time.Duration

	// Media
	MediaBasePath string
)

func init() {
	loadEnvFile()

	// Server Configuration
	Port = getEnvString("PORT", "8080")
	ServerReadTimeout = getEnvDuration("SERVER_READ_TIMEOUT", 15*time.Second)
	ServerWriteTimeout = getEnvDuration("SERVER_WRITE_TIMEOUT", 15*time.Second)
	ServerIdleTimeout = getEnvDuration("SERVER_IDLE_TIMEOUT", 60*time.Second)
	SiteBaseURL = getEnvString("SITE_BASE_URL", "https://bartlettpartners.com")

	// Database Pool
	DBMaxOpenConns = getEnvInt("DB_MAX_OPEN_CONNS", 10)
	DBMaxIdleConns = getEnvInt("DB_MAX_IDLE_CONNS", 3)
	DBConnMaxLifetimeMinutes = getEnvInt("DB_CONN_MAX_LIFETIME_MINUTES", 30)
	DBConnMaxIdleMinutes = getEnvInt("DB_CONN_MAX_IDLE_MINUTES", 3)
	SlowQueryThreshold = getEnvDuration("SLOW_QUERY_THRESHOLD", 50*time.Millisecond)

	// Query Cache
	QueryFreshnessWindow = time.Duration(getEnvInt("QUERY_FRESHNESS_MINUTES", 5)) * time.Minute
	QueryGCWindow = time.Duration(getEnvInt("QUERY_GC_MINUTES", 30)) * time.Minute
	QueryFetchRetries = getEnvInt("QUERY_FETCH_RETRIES", 2)
	CacheCleanupInterval = time.Duration(getEnvInt("CACHE_CLEANUP_INTERVAL_MINUTES", 5)) * time.Minute

	// Sessions
	SessionTTL = time.Duration(getEnvInt("SESSION_TTL_HOURS", 2)) * time.Hour
	MaxSessions = getEnvInt("MAX_SESSIONS", 5000)
	SessionCleanupInterval = time.Duration(getEnvInt("SESSION_CLEANUP_INTERVAL_MINUTES", 5)) * time.Minute

	// Engagement Coordinator
	PopupDwellDelay = getEnvDuration("POPUP_DWELL_DELAY", 45*time.Second)
	ExitIntentEdgePx = getEnvFloat("EXIT_INTENT_EDGE_PX", 10)
	ScrollDepthThreshold = getEnvFloat("SCROLL_DEPTH_THRESHOLD", 0.6)
	TriggerChannelBuffer = getEnvInt("TRIGGER_CHANNEL_BUFFER", 8)

	// Consent
	ConsentBannerDelay = getEnvDuration("CONSENT_BANNER_DELAY", time.Second)

	// Auth
	JWTSecret = getEnvString("JWT_SECRET", "")
	AdminPassword = getEnvString("ADMIN_PASSWORD", "")
	TokenLifetime = getEnvDuration("TOKEN_LIFETIME", 24*time.Hour)

	// Media
	MediaBasePath = getEnvString("MEDIA_BASE_PATH", "media")
}
