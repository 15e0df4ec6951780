package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Sync     SyncConfig
	Store    StoreConfig
}

type AppConfig struct {
	Port               string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	JwtSecret          string
}

type DatabaseConfig struct {
	Connection string
}

type SyncConfig struct {
	Enabled     bool
	AutoSync    bool
	Interval    time.Duration
	CallTimeout time.Duration
	EventTopic  string
}

type StoreConfig struct {
	// Path of the JSON snapshot backing the local note store.
	Path string
	// Path of the persisted sync settings snapshot.
	SettingsPath string
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			JwtSecret:          getEnv("JWT_SECRET", ""),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		Sync: SyncConfig{
			Enabled:     getEnvAsBool("SYNC_ENABLED", true),
			AutoSync:    getEnvAsBool("SYNC_AUTO", false),
			Interval:    time.Duration(getEnvAsInt("SYNC_INTERVAL_MS", 30000)) * time.Millisecond,
			CallTimeout: time.Duration(getEnvAsInt("SYNC_CALL_TIMEOUT_MS", 10000)) * time.Millisecond,
			EventTopic:  getEnv("SYNC_EVENT_TOPIC", "SYNC_EVENTS"),
		},
		Store: StoreConfig{
			Path:         getEnv("LOCAL_STORE_PATH", "notes.json"),
			SettingsPath: getEnv("SYNC_SETTINGS_PATH", "sync_settings.json"),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsBool(key string, fallback bool) bool {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseBool(strValue); err == nil {
		return value
	}
	return fallback
}
