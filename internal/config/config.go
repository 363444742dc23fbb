package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ListenAddr          string
	DBPath              string
	SessionSecret       string
	SessionCookie       string
	SessionCookieSecure bool
	CORSOrigins         []string
	AssetBackend        string
	AssetPath           string
	PublicBaseURL       string
	CloudinaryCloud     string
	CloudinaryPreset    string
	CloudinaryBaseURL   string
	AdminUsername       string
	AdminPassword       string
	MaxUploadMB         int
	LogLevel            string
	LogFormat           string
	LogFile             string
}

// Load reads configuration from the environment. A .env file in the working
// directory is loaded first if present; variables already set take precedence.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		ListenAddr:          getEnv("LISTEN_ADDR", ":8080"),
		DBPath:              getEnv("DB_PATH", "/data/vitrine.db"),
		SessionSecret:       getEnv("SESSION_SECRET", ""),
		SessionCookie:       getEnv("SESSION_COOKIE", "auth_token"),
		SessionCookieSecure: getBool("SESSION_COOKIE_SECURE", false),
		CORSOrigins:         splitList(getEnv("CORS_ORIGINS", "")),
		AssetBackend:        getEnv("ASSET_BACKEND", "local"),
		AssetPath:           getEnv("ASSET_LOCAL_PATH", "/data/assets"),
		PublicBaseURL:       strings.TrimRight(getEnv("PUBLIC_BASE_URL", "http://localhost:8080"), "/"),
		CloudinaryCloud:     getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryPreset:    getEnv("CLOUDINARY_UPLOAD_PRESET", ""),
		CloudinaryBaseURL:   getEnv("CLOUDINARY_BASE_URL", "https://api.cloudinary.com"),
		AdminUsername:       getEnv("ADMIN_USERNAME", ""),
		AdminPassword:       getEnv("ADMIN_PASSWORD", ""),
		MaxUploadMB:         getInt("MAX_UPLOAD_MB", 20),
		LogLevel:            getEnv("LOG_LEVEL", "info"),
		LogFormat:           getEnv("LOG_FORMAT", "json"),
		LogFile:             getEnv("LOG_FILE", ""),
	}
}

func getEnv(key, defaultVal string) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	return defaultVal
}

func getBool(key string, defaultVal bool) bool {
	b, err := strconv.ParseBool(getEnv(key, ""))
	if err != nil {
		return defaultVal
	}
	return b
}

func getInt(key string, defaultVal int) int {
	n, err := strconv.Atoi(getEnv(key, ""))
	if err != nil || n <= 0 {
		return defaultVal
	}
	return n
}

// splitList turns "a, b,,c/" into ["a", "b", "c"]. Trailing slashes are
// dropped so origins compare equal to what browsers send.
func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		if v := strings.TrimRight(strings.TrimSpace(p), "/"); v != "" {
			out = append(out, v)
		}
	}
	return out
}
