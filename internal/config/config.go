// internal/config/config.go
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Environment string
	Server      ServerConfig
	Database    DatabaseConfig
	Media       MediaConfig
	Jobs        JobsConfig
	CORS        CORSConfig
}

type ServerConfig struct {
	Port         string
	Host         string
	ReadTimeout  int
	WriteTimeout int
	IdleTimeout  int
}

type DatabaseConfig struct {
	Host         string
	Port         string
	User         string
	Password     string
	Database     string
	SSLMode      string
	MaxOpenConns int
	MaxIdleConns int
	MaxLifetime  int
	LogLevel     string
}

// MediaConfig selects and configures the remote media store.
// Provider is one of "imagekit", "s3", "minio".
type MediaConfig struct {
	Provider    string
	Folder      string
	MaxFileSize int64 // bytes
	ImageKit    ImageKitConfig
	S3          S3Config
	MinIO       MinIOConfig
}

type ImageKitConfig struct {
	PrivateKey  string
	PublicKey   string
	URLEndpoint string
	UploadURL   string
	APIBaseURL  string
}

type S3Config struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	CloudFrontURL   string
}

type MinIOConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
	PublicURL string
}

type JobsConfig struct {
	OrphanSweepEnabled  bool
	OrphanSweepInterval int // minutes
	OrphanMaxAttempts   int
}

type CORSConfig struct {
	AllowedOrigins []string
}

func Load() (*Config, error) {
	// Load .env file if it exists
	godotenv.Load()

	config := &Config{
		Environment: getEnv("ENVIRONMENT", "development"),
		Server: ServerConfig{
			Port:         getEnv("SERVER_PORT", "8080"),
			Host:         getEnv("SERVER_HOST", "localhost"),
			ReadTimeout:  getEnvAsInt("SERVER_READ_TIMEOUT", 15),
			WriteTimeout: getEnvAsInt("SERVER_WRITE_TIMEOUT", 15),
			IdleTimeout:  getEnvAsInt("SERVER_IDLE_TIMEOUT", 60),
		},
		Database: DatabaseConfig{
			Host:         getEnv("DB_HOST", "localhost"),
			Port:         getEnv("DB_PORT", "5432"),
			User:         getEnv("DB_USER", "postgres"),
			Password:     getEnv("DB_PASSWORD", ""),
			Database:     getEnv("DB_NAME", "forma3d_catalog"),
			SSLMode:      getEnv("DB_SSL_MODE", "disable"),
			MaxOpenConns: getEnvAsInt("DB_MAX_OPEN_CONNS", 25),
			MaxIdleConns: getEnvAsInt("DB_MAX_IDLE_CONNS", 25),
			MaxLifetime:  getEnvAsInt("DB_MAX_LIFETIME", 300),
			LogLevel:     getEnv("DB_LOG_LEVEL", "warn"),
		},
		Media: MediaConfig{
			Provider:    getEnv("MEDIA_PROVIDER", "imagekit"),
			Folder:      getEnv("MEDIA_FOLDER", "catalog-products"),
			MaxFileSize: int64(getEnvAsInt("MEDIA_MAX_FILE_SIZE_MB", 10)) * 1024 * 1024,
			ImageKit: ImageKitConfig{
				PrivateKey:  getEnv("IMAGEKIT_PRIVATE_KEY", ""),
				PublicKey:   getEnv("IMAGEKIT_PUBLIC_KEY", ""),
				URLEndpoint: getEnv("IMAGEKIT_URL_ENDPOINT", ""),
				UploadURL:   getEnv("IMAGEKIT_UPLOAD_URL", "https://upload.imagekit.io/api/v1/files/upload"),
				APIBaseURL:  getEnv("IMAGEKIT_API_BASE_URL", "https://api.imagekit.io/v1"),
			},
			S3: S3Config{
				Region:          getEnv("AWS_REGION", "us-east-1"),
				AccessKeyID:     getEnv("AWS_ACCESS_KEY_ID", ""),
				SecretAccessKey: getEnv("AWS_SECRET_ACCESS_KEY", ""),
				Bucket:          getEnv("AWS_S3_BUCKET", "forma3d-catalog-assets"),
				CloudFrontURL:   getEnv("AWS_CLOUDFRONT_URL", ""),
			},
			MinIO: MinIOConfig{
				Endpoint:  getEnv("MINIO_ENDPOINT", "localhost:9000"),
				AccessKey: getEnv("MINIO_ACCESS_KEY", ""),
				SecretKey: getEnv("MINIO_SECRET_KEY", ""),
				Bucket:    getEnv("MINIO_BUCKET", "forma3d-catalog-assets"),
				UseSSL:    getEnvAsBool("MINIO_USE_SSL", false),
				PublicURL: getEnv("MINIO_PUBLIC_URL", ""),
			},
		},
		Jobs: JobsConfig{
			OrphanSweepEnabled:  getEnvAsBool("ORPHAN_SWEEP_ENABLED", true),
			OrphanSweepInterval: getEnvAsInt("ORPHAN_SWEEP_INTERVAL_MINUTES", 15),
			OrphanMaxAttempts:   getEnvAsInt("ORPHAN_MAX_ATTEMPTS", 10),
		},
		CORS: CORSConfig{
			AllowedOrigins: strings.Split(getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:3000"), ","),
		},
	}

	return config, config.Validate()
}

func (c *Config) Validate() error {
	if c.Database.Password == "" && c.Environment == "production" {
		return fmt.Errorf("database password is required in production")
	}

	if c.Media.Provider == "imagekit" && c.Environment == "production" {
		if c.Media.ImageKit.PrivateKey == "" || c.Media.ImageKit.URLEndpoint == "" {
			return fmt.Errorf("imagekit credentials are required in production")
		}
	}

	switch c.Media.Provider {
	case "imagekit", "s3", "minio":
	default:
		return fmt.Errorf("unknown media provider %q", c.Media.Provider)
	}

	return nil
}

// Helper functions
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(value); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolValue, err := strconv.ParseBool(strings.ToLower(value)); err == nil {
			return boolValue
		}
	}
	return defaultValue
}
