package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

// Config is loaded once at process start and passed by value; no component
// mutates it afterwards.
type Config struct {
	ServerPort   string
	AllowOrigins string
	DatabaseDSN  string

	JWTSecret  string
	TokenTTL   time.Duration
	BcryptCost int

	BlobBackend   string // "s3" (default) or "cloudinary"
	AWSRegion     string
	AWSAccessKey  string
	AWSSecretKey  string
	S3Bucket      string
	S3Endpoint    string
	CloudinaryURL string

	KafkaBroker   string
	KafkaTopic    string
	KafkaUsername string
	KafkaPassword string

	// RemoteTimeout bounds every single blob-store and persistence call made by
	// the upload coordinator.
	RemoteTimeout time.Duration
}

func LoadConfig() Config {
	if os.Getenv("ENV") != "prod" {
		if err := godotenv.Overload(); err != nil {
			log.Println("env file not found or could not be loaded:", err)
		}
	}

	return Config{
		ServerPort:   getEnv("SERVER_PORT", ":3000"),
		AllowOrigins: getEnv("ALLOW_ORIGINS", "*"),
		DatabaseDSN:  os.Getenv("DATABASE_DSN"),

		JWTSecret:  os.Getenv("JWT_SECRET"),
		TokenTTL:   getDuration("TOKEN_TTL", 720*time.Hour), // 30 days
		BcryptCost: getInt("BCRYPT_COST", 10),

		BlobBackend:   getEnv("BLOB_BACKEND", "s3"),
		AWSRegion:     os.Getenv("AWS_REGION"),
		AWSAccessKey:  os.Getenv("AWS_ACCESS_KEY"),
		AWSSecretKey:  os.Getenv("AWS_SECRET_ACCESS_KEY"),
		S3Bucket:      getEnv("S3_BUCKET", "forevertrendin-bucket"),
		S3Endpoint:    os.Getenv("S3_ENDPOINT"),
		CloudinaryURL: os.Getenv("CLOUDINARY_URL"),

		KafkaBroker:   os.Getenv("KAFKA_BROKER"),
		KafkaTopic:    os.Getenv("KAFKA_TOPIC"),
		KafkaUsername: os.Getenv("KAFKA_USERNAME"),
		KafkaPassword: os.Getenv("KAFKA_PASSWORD"),

		RemoteTimeout: getDuration("REMOTE_TIMEOUT", 20*time.Second),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default", key, v)
		return fallback
	}
	return n
}

func getDuration(key string, fallback time.Duration) time.Duration {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil {
		log.Printf("invalid %s=%q, using default", key, v)
		return fallback
	}
	return d
}
