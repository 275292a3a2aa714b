package config

import (
	"log"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// Backend selection.
	DataBackend    string `mapstructure:"DATA_BACKEND"`    // firestore | mongo | memory
	AuthMode       string `mapstructure:"AUTH_MODE"`       // firebase | local
	StorageBackend string `mapstructure:"STORAGE_BACKEND"` // firebase | cloudinary | none

	// MongoDB configuration.
	DatabaseURL   string `mapstructure:"DATABASE_URL"`
	MongoDatabase string `mapstructure:"MONGO_DATABASE"`

	// Redis configuration.
	RedisAddr      string `mapstructure:"REDIS_ADDR"`
	RedisPassword  string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB   int    `mapstructure:"REDIS_CACHE_DB"`
	RedisAuthDB    int    `mapstructure:"REDIS_AUTH_DB"`
	RedisSessionDB int    `mapstructure:"REDIS_SESSION_DB"`
	RedisQueueDB   int    `mapstructure:"REDIS_QUEUE_DB"`

	// Firebase configuration.
	FirebaseCredentialsFile string `mapstructure:"FIREBASE_CREDENTIALS_FILE"`
	FirebaseProjectID       string `mapstructure:"FIREBASE_PROJECT_ID"`
	FirebaseAPIKey          string `mapstructure:"FIREBASE_API_KEY"`
	FirebaseBucket          string `mapstructure:"FIREBASE_BUCKET"`

	// Cloudinary configuration.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	// Local auth.
	JWTSecret   string        `mapstructure:"JWT_SECRET"`
	JWTLifetime time.Duration `mapstructure:"JWT_LIFETIME"`

	// Booking dialogue.
	DialogueReplyDelay time.Duration `mapstructure:"DIALOGUE_REPLY_DELAY"`
	DialogueSessionTTL time.Duration `mapstructure:"DIALOGUE_SESSION_TTL"`

	RecommendationCacheTTL time.Duration `mapstructure:"RECOMMENDATION_CACHE_TTL"`
	ReminderLeadTime       time.Duration `mapstructure:"REMINDER_LEAD_TIME"`
}

var AppConfig Config

func LoadConfig() {
	// Look for a config file named "config.yaml" in the current and "config" directory.
	viper.SetConfigName("config")
	viper.SetConfigType("yaml")
	viper.AddConfigPath(".")
	viper.AddConfigPath("./config")
	// Automatically use environment variables where available.
	viper.AutomaticEnv()

	// Set default values.
	viper.SetDefault("APP_PORT", "8080")
	viper.SetDefault("ENV", "development")
	viper.SetDefault("LOG_LEVEL", "info")
	viper.SetDefault("MAX_REQUESTS_PER_MIN", 100)
	viper.SetDefault("DATA_BACKEND", "firestore")
	viper.SetDefault("AUTH_MODE", "firebase")
	viper.SetDefault("STORAGE_BACKEND", "firebase")
	viper.SetDefault("DATABASE_URL", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DATABASE", "locali")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_AUTH_DB", 1)
	viper.SetDefault("REDIS_SESSION_DB", 2)
	viper.SetDefault("REDIS_QUEUE_DB", 3)
	viper.SetDefault("FIREBASE_CREDENTIALS_FILE", "serviceAccountKey.json")
	viper.SetDefault("FIREBASE_PROJECT_ID", "")
	viper.SetDefault("FIREBASE_API_KEY", "")
	viper.SetDefault("FIREBASE_BUCKET", "")
	viper.SetDefault("CLOUDINARY_FOLDER", "locali")
	viper.SetDefault("JWT_SECRET", "")
	viper.SetDefault("JWT_LIFETIME", "24h")
	viper.SetDefault("DIALOGUE_REPLY_DELAY", "800ms")
	viper.SetDefault("DIALOGUE_SESSION_TTL", "2h")
	viper.SetDefault("RECOMMENDATION_CACHE_TTL", "5m")
	viper.SetDefault("REMINDER_LEAD_TIME", "24h")

	if err := viper.ReadInConfig(); err != nil {
		log.Println("No config file found, using environment variables only")
	}

	if err := viper.Unmarshal(&AppConfig); err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}
}

func GetEnv() string {
	return AppConfig.Env
}

func IsProduction() bool {
	return GetEnv() == "production"
}
