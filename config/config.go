package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

// Config holds application configuration
type Config struct {
	Port   string
	DBName string
	JWTKey string

	UploadDir     string // local document storage root
	UploadBaseURL string // public prefix documents are served under

	DocStoreURL string // remote document store endpoint; empty = local disk
	DocStoreKey string

	ReportEmail string // operator address for import summaries; empty = disabled
	EmailSender string
	Password    string // SMTP Password

	SearchCacheTTL int // seconds; 0 disables the search result cache
	SearchPageCap  int // hard ceiling on search page size
}

// AppConfig is a global variable to access configuration
var AppConfig *Config

// LoadConfig initializes configuration from environment variables or defaults
func LoadConfig() {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Println("Warning: .env file not found. Using system environment variables.")
	}

	AppConfig = &Config{
		Port:   getEnv("PORT", "3000"),
		DBName: getEnv("DB_NAME", "certhub"),
		JWTKey: getEnv("JWT_SECRET_KEY", "defaultSecret"),

		UploadDir:     getEnv("UPLOAD_DIR", "./uploads"),
		UploadBaseURL: getEnv("UPLOAD_BASE_URL", "/uploads"),

		DocStoreURL: getEnv("DOC_STORE_URL", ""),
		DocStoreKey: getEnv("DOC_STORE_KEY", ""),

		ReportEmail: getEnv("REPORT_EMAIL", ""),
		EmailSender: getEnv("EMAIL_SENDER", ""),
		Password:    getEnv("PASSWORD", ""),

		SearchCacheTTL: getEnvInt("SEARCH_CACHE_TTL", 60),
		SearchPageCap:  getEnvInt("SEARCH_PAGE_CAP", 50),
	}

	// Validate critical configuration
	if AppConfig.JWTKey == "defaultSecret" {
		log.Println("Warning: Using default JWT_SECRET_KEY. Update it in your environment.")
	}
}

// getEnv retrieves an environment variable or returns a default value
func getEnv(key, defaultValue string) string {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	return value
}

// getEnvInt retrieves an environment variable as an integer or returns the default integer value
func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	intValue, err := strconv.Atoi(value)
	if err != nil {
		log.Printf("Error converting environment variable %s to int: %v", key, err)
		return defaultValue
	}
	return intValue
}
