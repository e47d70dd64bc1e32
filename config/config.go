package config

import (
	"log"

	"github.com/spf13/viper"
)

// Config holds all configuration values.
type Config struct {
	AppPort           string `mapstructure:"APP_PORT"`
	Env               string `mapstructure:"ENV"`
	LogLevel          string `mapstructure:"LOG_LEVEL"`
	MaxRequestsPerMin int    `mapstructure:"MAX_REQUESTS_PER_MIN"`

	// MongoDB configuration.
	MongoURI string `mapstructure:"MONGO_URI"`
	MongoDB  string `mapstructure:"MONGO_DB"`

	// JWT configuration.
	JWTSecret        string `mapstructure:"JWT_SECRET"`
	JWTExpireHours   int    `mapstructure:"JWT_EXPIRE_HOURS"`
	CookieExpireDays int    `mapstructure:"COOKIE_EXPIRE_DAYS"`

	// Redis configuration (geocode cache and task broker).
	RedisAddr     string `mapstructure:"REDIS_ADDR"`
	RedisPassword string `mapstructure:"REDIS_PASSWORD"`
	RedisCacheDB  int    `mapstructure:"REDIS_CACHE_DB"`
	RedisTaskDB   int    `mapstructure:"REDIS_TASK_DB"`

	// Geocoder configuration.
	GeocoderURL    string `mapstructure:"GEOCODER_URL"`
	GeocoderAPIKey string `mapstructure:"GEOCODER_API_KEY"`

	// SMTP configuration for outbound mail.
	SMTPHost  string `mapstructure:"SMTP_HOST"`
	SMTPPort  string `mapstructure:"SMTP_PORT"`
	SMTPUser  string `mapstructure:"SMTP_USER"`
	SMTPPass  string `mapstructure:"SMTP_PASS"`
	FromEmail string `mapstructure:"FROM_EMAIL"`
	FromName  string `mapstructure:"FROM_NAME"`

	// Cloudinary configuration for photo storage.
	CloudinaryCloudName string `mapstructure:"CLOUDINARY_CLOUD_NAME"`
	CloudinaryAPIKey    string `mapstructure:"CLOUDINARY_API_KEY"`
	CloudinaryAPISecret string `mapstructure:"CLOUDINARY_API_SECRET"`
	CloudinaryFolder    string `mapstructure:"CLOUDINARY_FOLDER"`

	// Maximum accepted photo upload size in bytes.
	MaxFileUpload int64 `mapstructure:"MAX_FILE_UPLOAD"`
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
	viper.SetDefault("MONGO_URI", "mongodb://localhost:27017")
	viper.SetDefault("MONGO_DB", "campfinder")
	viper.SetDefault("JWT_EXPIRE_HOURS", 720)
	viper.SetDefault("COOKIE_EXPIRE_DAYS", 30)
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_CACHE_DB", 0)
	viper.SetDefault("REDIS_TASK_DB", 1)
	viper.SetDefault("GEOCODER_URL", "https://www.mapquestapi.com/geocoding/v1/address")
	viper.SetDefault("GEOCODER_API_KEY", "")
	viper.SetDefault("CLOUDINARY_FOLDER", "bootcamps")
	viper.SetDefault("MAX_FILE_UPLOAD", 1<<20)

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
