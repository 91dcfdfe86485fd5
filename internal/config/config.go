package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	// Server
	Port             string
	DBPath           string
	CorsAllowOrigins string

	// Agent
	ServerBaseURL string
	AgentPort     string
	QueuePath     string
	SubmitTimeout time.Duration
	ProbeInterval time.Duration

	// Dashboard polling
	StatsPollInterval time.Duration
	MapPollInterval   time.Duration
	MapLimit          int

	// Optional fixed position for agents without a location source
	AgentLatitude  string
	AgentLongitude string
}

func LoadConfig() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Port:             getEnv("PORT", "3000"),
		DBPath:           getEnv("DATABASE_PATH", "netlink.db"),
		CorsAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "http://localhost:3000,http://localhost:3001"),

		ServerBaseURL: getEnv("SERVER_BASE_URL", "http://localhost:3000"),
		AgentPort:     getEnv("AGENT_PORT", "3100"),
		QueuePath:     getEnv("QUEUE_PATH", "netlink-queue.db"),
		SubmitTimeout: getEnvDuration("SUBMIT_TIMEOUT_MS", 5000),
		ProbeInterval: getEnvDuration("PROBE_INTERVAL_MS", 3000),

		StatsPollInterval: getEnvDuration("STATS_POLL_MS", 5000),
		MapPollInterval:   getEnvDuration("MAP_POLL_MS", 10000),
		MapLimit:          getEnvInt("MAP_LIMIT", 100),

		AgentLatitude:  getEnv("AGENT_LAT", ""),
		AgentLongitude: getEnv("AGENT_LONG", ""),
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if strValue == "" {
		return fallback
	}
	val, err := strconv.Atoi(strValue)
	if err != nil {
		return fallback
	}
	return val
}

func getEnvDuration(key string, fallbackMs int) time.Duration {
	return time.Duration(getEnvInt(key, fallbackMs)) * time.Millisecond
}
