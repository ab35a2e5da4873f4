// Package config carga la configuración del proceso desde el entorno (y un .env opcional).
package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr string

	// Document store. Vacío => repos in-memory (modo dev).
	MongoURI      string
	MongoDatabase string

	// Backend de sesiones: REDIS_URL tiene prioridad sobre SESSION_DSN (Postgres).
	// Ninguno => in-memory.
	RedisURL   string
	SessionDSN string

	// SessionSecret firma la cookie de sesión. Vacío => se genera uno por proceso
	// y las sesiones no sobreviven un restart.
	SessionSecret string
	SessionTTL    time.Duration

	UploadDir string

	LoginRatePerMinute int

	ReadTimeout  time.Duration
	WriteTimeout time.Duration
}

// Load lee .env (si existe) y después el entorno. Las variables ya definidas
// en el entorno ganan sobre las del archivo.
func Load() Config {
	_ = godotenv.Load()

	addr := getenv("ADDR", "")
	if addr == "" {
		addr = ":" + getenv("PORT", "8080")
	}

	return Config{
		Addr:               addr,
		MongoURI:           getenv("MONGO_URI", ""),
		MongoDatabase:      getenv("MONGO_DATABASE", "pet_adoption"),
		RedisURL:           getenv("REDIS_URL", ""),
		SessionDSN:         getenv("SESSION_DSN", ""),
		SessionSecret:      getenv("SESSION_SECRET", ""),
		SessionTTL:         time.Duration(getenvInt("SESSION_TTL_SECONDS", 86400)) * time.Second,
		UploadDir:          getenv("UPLOAD_DIR", "./public/images"),
		LoginRatePerMinute: getenvInt("LOGIN_RATE_PER_MINUTE", 10),
		ReadTimeout:        time.Duration(getenvInt("HTTP_READ_TIMEOUT_SECONDS", 5)) * time.Second,
		WriteTimeout:       time.Duration(getenvInt("HTTP_WRITE_TIMEOUT_SECONDS", 10)) * time.Second,
	}
}

func getenv(key, fallback string) string {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	return value
}

func getenvInt(key string, fallback int) int {
	value := strings.TrimSpace(os.Getenv(key))
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil || parsed <= 0 {
		return fallback
	}
	return parsed
}
