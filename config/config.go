package config

import (
	"log"
	"os"

	"github.com/joho/godotenv"
)

type AppConfig struct {
	Port         string
	Timezone     string
	DBPath       string
	JWTSecret    string
	RedisAddr    string // empty → in-memory OTP store
	AuthDisabled bool
	CropTableCSV string // optional override for the built-in crop table
	CropTableXLS string
}

func Load() AppConfig {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("[cfg] No .env file found or error loading: %v", err)
	}

	get := func(k, def string) string {
		if v := os.Getenv(k); v != "" {
			return v
		}
		return def
	}
	cfg := AppConfig{
		Port:         get("PORT", "8080"),
		Timezone:     get("TZ", "Asia/Kolkata"),
		DBPath:       get("DB_PATH", "agrisahayak.db"),
		JWTSecret:    get("JWT_SECRET", "change-me-in-production"),
		RedisAddr:    get("REDIS_ADDR", ""),
		AuthDisabled: get("AUTH_DISABLED", "false") == "true",
		CropTableCSV: get("CROP_TABLE_CSV", ""),
		CropTableXLS: get("CROP_TABLE_XLSX", ""),
	}
	log.Printf("[cfg] port=%s db=%s redis=%q auth_disabled=%v", cfg.Port, cfg.DBPath, cfg.RedisAddr, cfg.AuthDisabled)
	return cfg
}
