package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Env  string
	Port string

	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBMaxConns int
	DBMinConns int

	GeminiAPIKey    string
	GeminiURL       string
	GeminiModel     string
	GeminiTimeout   int // seconds; model calls get the longest budget
	FactCheckAPIKey string
	FactCheckURL    string
	ZenRowsAPIKey   string
	ZenRowsURL      string
	NewsAPIKey      string
	NewsAPIURL      string
	APITimeout      int // seconds, search and fact-check calls

	MaxToolTurns    int
	DomainCacheSize int
	DomainCacheTTL  int // minutes

	FreeTierRate  float64 // requests per second
	FreeTierBurst int
}

// Load reads configuration from the environment, after loading a .env file if
// one is present.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		Env:  getEnv("ENV", "development"),
		Port: getEnv("PORT", "5000"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBUser:     getEnv("DB_USER", "user"),
		DBPassword: getSecret("DB_PASSWORD", "DB_PASSWORD_FILE", "password"),
		DBName:     getEnv("DB_NAME", "news_analysis_db"),
		DBMaxConns: getEnvInt("DB_POOL_MAX_CONN", 5),
		DBMinConns: getEnvInt("DB_POOL_MIN_CONN", 1),

		GeminiAPIKey:    getSecret("GOOGLE_API_KEY", "GOOGLE_API_KEY_FILE", ""),
		GeminiURL:       getEnv("GEMINI_API_URL", "https://generativelanguage.googleapis.com/v1beta"),
		GeminiModel:     getEnv("GEMINI_MODEL", "gemini-2.0-flash"),
		GeminiTimeout:   getEnvInt("GEMINI_TIMEOUT_SECONDS", 60),
		FactCheckAPIKey: getSecret("GOOGLE_FACT_CHECK_API_KEY", "GOOGLE_FACT_CHECK_API_KEY_FILE", ""),
		FactCheckURL:    getEnv("FACT_CHECK_API_URL", "https://factchecktools.googleapis.com/v1alpha1/claims:search"),
		ZenRowsAPIKey:   getSecret("ZENROWS_API_KEY", "ZENROWS_API_KEY_FILE", ""),
		ZenRowsURL:      getEnv("ZENROWS_BASE_URL", "https://serp.api.zenrows.com/v1/targets/google/search/"),
		NewsAPIKey:      getSecret("NEWS_API_KEY", "NEWS_API_KEY_FILE", ""),
		NewsAPIURL:      getEnv("NEWS_API_URL", "https://newsapi.org/v2/top-headlines"),
		APITimeout:      getEnvInt("API_TIMEOUT_SECONDS", 15),

		MaxToolTurns:    getEnvInt("MAX_TOOL_TURNS", 8),
		DomainCacheSize: getEnvInt("DOMAIN_CACHE_SIZE", 2048),
		DomainCacheTTL:  getEnvInt("DOMAIN_CACHE_TTL_MINUTES", 30),

		FreeTierRate:  getEnvFloat("FREE_TIER_RATE", 0.2),
		FreeTierBurst: getEnvInt("FREE_TIER_BURST", 3),
	}
}

// MissingSettings lists the credentials that must be present for the analysis
// pipeline to work at all. Checked eagerly at startup so a misconfigured
// deployment fails loudly instead of on the first request.
func (c *Config) MissingSettings() []string {
	required := map[string]string{
		"GOOGLE_API_KEY":            c.GeminiAPIKey,
		"GOOGLE_FACT_CHECK_API_KEY": c.FactCheckAPIKey,
		"ZENROWS_API_KEY":           c.ZenRowsAPIKey,
	}
	var missing []string
	for name, value := range required {
		if value == "" || strings.HasPrefix(value, "YOUR_") {
			missing = append(missing, name)
		}
	}
	return missing
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getSecret(envKey, fileEnvKey, fallback string) string {
	if value, ok := os.LookupEnv(envKey); ok {
		return value
	}
	if filePath, ok := os.LookupEnv(fileEnvKey); ok {
		content, err := os.ReadFile(filePath)
		if err == nil {
			return strings.TrimSpace(string(content))
		}
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.Atoi(value); err == nil {
			return parsed
		}
	}
	return fallback
}

func getEnvFloat(key string, fallback float64) float64 {
	if value, ok := os.LookupEnv(key); ok {
		if parsed, err := strconv.ParseFloat(value, 64); err == nil {
			return parsed
		}
	}
	return fallback
}
