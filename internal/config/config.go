package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const (
	CacheBackendRedis  = "redis"
	CacheBackendMemory = "memory"
)

type Config struct {
	HTTPPort       string
	ObsHTTPAddr    string
	ServiceName    string
	LogLevel       string
	RequestTimeout time.Duration

	CacheBackend   string
	RedisHost      string
	RedisPort      string
	RedisPassword  string
	RedisDB        int
	CacheTTL       time.Duration
	CacheTimeout   time.Duration
	CacheKeyPrefix string

	UpstreamURL       string
	UpstreamTimeout   time.Duration
	UpstreamUserAgent string

	TracingEnabled bool
	JaegerURL      string
}

// Load reads the configuration from the environment, after loading a .env
// file from the working directory if one exists.
func Load() *Config {
	if err := godotenv.Load(); err != nil && !os.IsNotExist(err) {
		log.Printf("config: ignoring .env: %v", err)
	}

	cfg := &Config{
		HTTPPort:       getEnv("HTTP_PORT", "5000"),
		ObsHTTPAddr:    fixPort(getEnv("OBS_HTTP_ADDR", ":8081")),
		ServiceName:    getEnv("SERVICE_NAME", "leetproxy"),
		LogLevel:       getEnv("LOG_LEVEL", "info"),
		RequestTimeout: getEnvDuration("REQUEST_TIMEOUT", 15*time.Second),

		CacheBackend:   strings.ToLower(getEnv("CACHE_BACKEND", CacheBackendRedis)),
		RedisHost:      getEnv("REDIS_HOST", "localhost"),
		RedisPort:      getEnv("REDIS_PORT", "6379"),
		RedisPassword:  getEnv("REDIS_PASSWORD", ""),
		RedisDB:        getEnvInt("REDIS_DB", 0),
		CacheTTL:       getEnvDuration("CACHE_TTL", time.Hour),
		CacheTimeout:   getEnvDuration("CACHE_TIMEOUT", 2*time.Second),
		CacheKeyPrefix: getEnv("CACHE_KEY_PREFIX", "profile:"),

		UpstreamURL:       getEnv("UPSTREAM_URL", "https://leetcode.com/graphql"),
		UpstreamTimeout:   getEnvDuration("UPSTREAM_TIMEOUT", 10*time.Second),
		UpstreamUserAgent: getEnv("UPSTREAM_USER_AGENT", "LeetCode-API/1.0"),

		TracingEnabled: getEnvBool("TRACING_ENABLED", false),
		JaegerURL:      getEnv("JAEGER_URL", "http://localhost:14268/api/traces"),
	}

	if cfg.CacheBackend != CacheBackendRedis && cfg.CacheBackend != CacheBackendMemory {
		log.Fatalf("invalid CACHE_BACKEND %q (want %s or %s)", cfg.CacheBackend, CacheBackendRedis, CacheBackendMemory)
	}
	return cfg
}

// RedisAddr is the host:port of the Redis cache.
func (c *Config) RedisAddr() string {
	return c.RedisHost + ":" + c.RedisPort
}

func fixPort(port string) string {
	if port != "" && !strings.Contains(port, ":") {
		return ":" + port
	}
	return port
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	return v == "true"
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Fatalf("invalid int env %s=%q", key, v)
	}
	return n
}

// getEnvDuration accepts Go durations ("90s") or a bare number of seconds.
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	if secs, err := strconv.Atoi(v); err == nil {
		return time.Duration(secs) * time.Second
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Fatalf("invalid duration env %s=%q", key, v)
	}
	return d
}
