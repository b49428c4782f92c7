package utils

import (
	"errors"
	"io/fs"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	Session  SessionConfig
	Blob     BlobConfig
	Registry RegistryConfig
	CORS     CORSConfig
	Seed     SeedConfig
}

type AppConfig struct {
	Name    string
	Port    string
	Debug   bool
	LogPath string
}

type DatabaseConfig struct {
	Driver   string // postgres | memory
	Host     string
	Port     string
	Name     string
	User     string
	Password string
	SSLMode  string
	MaxConns int32
	Migrate  bool
}

type SessionConfig struct {
	CookieName   string
	CookieSecure bool
	TTLHours     int
}

type BlobConfig struct {
	Driver        string // fs | s3 | memory
	FSRoot        string
	S3Bucket      string
	S3Region      string
	S3Endpoint    string
	S3PathStyle   bool
	S3AccessKey   string
	S3SecretKey   string
	MaxUploadSize int64
}

type RegistryConfig struct {
	OffspringLimit int
	COIGenerations int
}

type CORSConfig struct {
	AllowedOrigins []string
}

type SeedConfig struct {
	AdminEmail    string
	AdminPassword string
	AdminName     string
}

// LoadConfig reads the optional .env file and lets process environment
// variables override it.
func LoadConfig() (*Config, error) {
	v := viper.New()
	v.SetConfigFile(".env")
	v.SetConfigType("env")

	v.SetDefault("APP_NAME", "kennel-registry")
	v.SetDefault("PORT", "8080")
	v.SetDefault("DEBUG", false)
	v.SetDefault("LOG_PATH", "logs/")
	v.SetDefault("DB_DRIVER", "postgres")
	v.SetDefault("DB_HOST", "localhost")
	v.SetDefault("DB_PORT", "5432")
	v.SetDefault("DB_SSLMODE", "disable")
	v.SetDefault("DB_MAX_CONNS", 10)
	v.SetDefault("DB_MIGRATE", true)
	v.SetDefault("SESSION_COOKIE_NAME", "registry_session")
	v.SetDefault("SESSION_COOKIE_SECURE", false)
	v.SetDefault("SESSION_TTL_HOURS", 24*7)
	v.SetDefault("BLOB_DRIVER", "fs")
	v.SetDefault("BLOB_FS_ROOT", "blobdata")
	v.SetDefault("BLOB_S3_REGION", "us-east-1")
	v.SetDefault("MAX_UPLOAD_MB", 10)
	v.SetDefault("OFFSPRING_LIMIT", 50)
	v.SetDefault("COI_GENERATIONS", 6)
	v.SetDefault("SEED_ADMIN_NAME", "Registry Administrator")

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.Is(err, fs.ErrNotExist) && !errors.As(err, &notFound) {
			return nil, err
		}
	}

	v.AutomaticEnv()

	config := &Config{
		App: AppConfig{
			Name:    v.GetString("APP_NAME"),
			Port:    v.GetString("PORT"),
			Debug:   v.GetBool("DEBUG"),
			LogPath: v.GetString("LOG_PATH"),
		},
		Database: DatabaseConfig{
			Driver:   strings.ToLower(v.GetString("DB_DRIVER")),
			Host:     v.GetString("DB_HOST"),
			Port:     v.GetString("DB_PORT"),
			Name:     v.GetString("DB_NAME"),
			User:     v.GetString("DB_USER"),
			Password: v.GetString("DB_PASS"),
			SSLMode:  v.GetString("DB_SSLMODE"),
			MaxConns: v.GetInt32("DB_MAX_CONNS"),
			Migrate:  v.GetBool("DB_MIGRATE"),
		},
		Session: SessionConfig{
			CookieName:   v.GetString("SESSION_COOKIE_NAME"),
			CookieSecure: v.GetBool("SESSION_COOKIE_SECURE"),
			TTLHours:     v.GetInt("SESSION_TTL_HOURS"),
		},
		Blob: BlobConfig{
			Driver:        strings.ToLower(v.GetString("BLOB_DRIVER")),
			FSRoot:        v.GetString("BLOB_FS_ROOT"),
			S3Bucket:      v.GetString("BLOB_S3_BUCKET"),
			S3Region:      v.GetString("BLOB_S3_REGION"),
			S3Endpoint:    v.GetString("BLOB_S3_ENDPOINT"),
			S3PathStyle:   v.GetBool("BLOB_S3_PATH_STYLE"),
			S3AccessKey:   v.GetString("BLOB_S3_ACCESS_KEY"),
			S3SecretKey:   v.GetString("BLOB_S3_SECRET_KEY"),
			MaxUploadSize: v.GetInt64("MAX_UPLOAD_MB") << 20,
		},
		Registry: RegistryConfig{
			OffspringLimit: v.GetInt("OFFSPRING_LIMIT"),
			COIGenerations: v.GetInt("COI_GENERATIONS"),
		},
		CORS: CORSConfig{
			AllowedOrigins: splitList(v.GetString("CORS_ALLOWED_ORIGINS")),
		},
		Seed: SeedConfig{
			AdminEmail:    v.GetString("SEED_ADMIN_EMAIL"),
			AdminPassword: v.GetString("SEED_ADMIN_PASSWORD"),
			AdminName:     v.GetString("SEED_ADMIN_NAME"),
		},
	}

	return config, nil
}

func splitList(raw string) []string {
	var out []string
	for _, part := range strings.Split(raw, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}
