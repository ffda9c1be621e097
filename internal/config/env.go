package config

import (
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Env holds the settings that differ between deployments. Everything else
// stays a compile-time constant.
type Env struct {
	ListenAddr  string
	UploadDir   string
	RedisAddr   string
	DatabaseURL string
	AuthToken   string

	IngestEngineCommand string
	IngestEngineScript  string
	QueryEngineCommand  string
	QueryEngineScript   string

	MaxEngineProcesses int
}

func LoadEnv() Env {
	godotenv.Load()

	return Env{
		ListenAddr:  getEnv("LISTEN_ADDR", ServerListenAddr),
		UploadDir:   getEnv("FILE_UPLOAD_DIR", UploadDir),
		RedisAddr:   getEnv("REDIS_ADDR", RedisAddr),
		DatabaseURL: getEnv("DATABASE_URL", ""),
		AuthToken:   getEnv("AUTH_TOKEN", ""),

		IngestEngineCommand: getEnv("INGEST_ENGINE_CMD", IngestEngineCommand),
		IngestEngineScript:  getEnv("INGEST_ENGINE_SCRIPT", IngestEngineScript),
		QueryEngineCommand:  getEnv("QUERY_ENGINE_CMD", QueryEngineCommand),
		QueryEngineScript:   getEnv("QUERY_ENGINE_SCRIPT", QueryEngineScript),

		MaxEngineProcesses: getEnvInt("MAX_ENGINE_PROCESSES", MaxEngineProcesses),
	}
}

func getEnv(key, defaultVal string) string {
	if val := os.Getenv(key); val != "" {
		return val
	}
	return defaultVal
}

func getEnvInt(key string, defaultVal int) int {
	if val := os.Getenv(key); val != "" {
		if i, err := strconv.Atoi(val); err == nil {
			return i
		}
	}
	return defaultVal
}
