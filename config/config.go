package config

import (
	"os"
)

type Config struct {
	Port          string
	DBPath        string
	UploadDir     string
	PlantDataFile string // optional JSON override for the built-in plant knowledge base
	MaxUploadMB   int
	Archive       ArchiveConfig
}

// ArchiveConfig holds the optional SQL Server settings used to mirror
// analysis records into a reporting database.
type ArchiveConfig struct {
	Server   string
	Port     string
	Database string
	UserID   string
	Password string
	Encrypt  bool
}

func GetConfig() Config {
	return Config{
		Port:          getEnv("PORT", "5000"),
		DBPath:        getEnv("DB_PATH", "./data/badger"),
		UploadDir:     getEnv("UPLOAD_DIR", "./static/uploads"),
		PlantDataFile: getEnv("PLANT_DATA_FILE", ""),
		MaxUploadMB:   16,
		Archive: ArchiveConfig{
			Server:   getEnv("ARCHIVE_SQL_SERVER", ""),
			Port:     getEnv("ARCHIVE_SQL_PORT", "1433"),
			Database: getEnv("ARCHIVE_SQL_DATABASE", ""),
			UserID:   getEnv("ARCHIVE_SQL_USER", ""),
			Password: getEnv("ARCHIVE_SQL_PASSWORD", ""),
			Encrypt:  getEnv("ARCHIVE_SQL_ENCRYPT", "true") == "true",
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
