package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	ServerPort  string
	Environment string
	DataBackend string

	FirebaseProject            string
	FirebaseServiceAccountJSON string
	FirebaseServiceAccountPath string

	StorageBackend      string
	StorageBucket       string
	CloudinaryCloudName string
	CloudinaryAPIKey    string
	CloudinaryAPISecret string

	PaystackSecretKey string
	PaystackBaseURL   string
	ClientBaseURL     string

	RedisURL string

	JWTSecret string
	JWTExpiry int64

	AdminUIDs             []string
	CORSOrigins           []string
	ListingOverrideEmails []string

	SitemapCron   string
	NormalizeCron string
}

func Load() (*Config, error) {
	godotenv.Load()

	config := &Config{
		ServerPort:  getEnv("SERVER_PORT", "8080"),
		Environment: getEnv("ENVIRONMENT", "development"),
		DataBackend: getEnv("DATA_BACKEND", "firestore"),

		FirebaseProject:            getEnv("FIREBASE_PROJECT_ID", ""),
		FirebaseServiceAccountJSON: getEnv("FIREBASE_SERVICE_ACCOUNT_JSON", ""),
		FirebaseServiceAccountPath: getEnv("FIREBASE_SERVICE_ACCOUNT_PATH", "./serviceAccountKey.json"),

		StorageBackend:      getEnv("STORAGE_BACKEND", "cloudinary"),
		StorageBucket:       getEnv("STORAGE_BUCKET", ""),
		CloudinaryCloudName: getEnv("CLOUDINARY_CLOUD_NAME", ""),
		CloudinaryAPIKey:    getEnv("CLOUDINARY_API_KEY", ""),
		CloudinaryAPISecret: getEnv("CLOUDINARY_API_SECRET", ""),

		PaystackSecretKey: getEnv("PAYSTACK_SECRET_KEY", ""),
		PaystackBaseURL:   getEnv("PAYSTACK_BASE_URL", "https://api.paystack.co"),
		ClientBaseURL:     strings.TrimRight(getEnv("CLIENT_BASE_URL", "http://localhost:3000"), "/"),

		RedisURL: getEnv("REDIS_URL", ""),

		JWTSecret: getEnv("JWT_SECRET", "your-secret-key"),
		JWTExpiry: getEnvAsInt64("JWT_EXPIRY", 30*60), // 30 minutes

		AdminUIDs:             getEnvAsSlice("ADMIN_UIDS", nil),
		CORSOrigins:           getEnvAsSlice("CORS_ORIGINS", []string{"*"}),
		ListingOverrideEmails: getEnvAsSlice("LISTING_OVERRIDE_EMAILS", []string{"githinjilucy03@gmail.com"}),

		SitemapCron:   getEnv("SITEMAP_CRON", "@hourly"),
		NormalizeCron: getEnv("NORMALIZE_CRON", "0 3 * * *"),
	}

	return config, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, defaultValue string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value, exists := os.LookupEnv(key); exists {
		intValue, err := strconv.ParseInt(value, 10, 64)
		if err == nil {
			return intValue
		}
	}
	return defaultValue
}

// getEnvAsSlice splits a comma list, dropping blanks. An explicitly empty
// variable yields an empty slice, not the default.
func getEnvAsSlice(key string, defaultValue []string) []string {
	value, exists := os.LookupEnv(key)
	if !exists {
		return defaultValue
	}
	var out []string
	for _, part := range strings.Split(value, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
