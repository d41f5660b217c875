package config

import (
	"errors"
	"io/fs"
	"log"
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port             string
	DatabasePath     string
	Production       bool
	ResetDB          bool
	LogLevel         string
	CorsAllowOrigins string
	ShutdownTimeout  time.Duration
}

// LoadConfig lee el archivo .env (si existe) y las variables de entorno
func LoadConfig() Config {
	if err := godotenv.Load(); err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			log.Fatal("Error loading .env file: ", err)
		}
		log.Println(".env file not found, using environment only")
	}

	return FromEnv()
}

// FromEnv construye la configuración sin tocar el archivo .env
func FromEnv() Config {
	return Config{
		Port:             getEnv("PORT", "3000"),
		DatabasePath:     getEnv("DATABASE_PATH", "database.db"),
		Production:       getEnv("PRODUCTION", "false") == "true",
		ResetDB:          getEnv("RESET_DB", "false") == "true",
		LogLevel:         getEnv("LOG_LEVEL", "info"),
		CorsAllowOrigins: getEnv("CORS_ALLOW_ORIGINS", "*"),
		ShutdownTimeout:  getDuration("SHUTDOWN_TIMEOUT", 10*time.Second),
	}
}

// getEnv obtiene una variable de entorno o usa un valor por defecto
func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getDuration(key string, defaultValue time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		log.Printf("Invalid %s %q, using %s", key, value, defaultValue)
		return defaultValue
	}
	return d
}
