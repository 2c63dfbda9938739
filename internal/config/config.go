package config

import (
	"errors"
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	AWS      AWSConfig
	DynamoDB DynamoDBConfig
	S3       S3Config
	Notify   NotifyConfig
	App      AppConfig
	Tracing  TracingConfig
}

type ServerConfig struct {
	Host             string
	Port             string
	CORSAllowOrigins []string
}

// AWSConfig holds the shared credentials and region. Empty keys fall back to the
// SDK default credential chain.
type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Endpoint        string
}

type DynamoDBConfig struct {
	BookingsTable string
}

type S3Config struct {
	BucketName   string
	ImagePrefix  string
	PublicRead   bool
	UsePathStyle bool
}

type NotifyConfig struct {
	EmailFrom string
	// EmailOverrideTo routes every confirmation to one mailbox instead of the guest.
	EmailOverrideTo string
	Timeout         time.Duration
}

type AppConfig struct {
	Env                string
	LogLevel           string
	StaticDir          string
	MaxMultipartMemory int64
}

type TracingConfig struct {
	Endpoint    string
	ServiceName string
}

// Load reads configuration from the environment, after applying an optional .env file.
func Load() (*Config, error) {
	v := viper.New()
	v.SetDefault("ENV_FILE", ".env")
	v.AutomaticEnv()

	if err := godotenv.Load(v.GetString("ENV_FILE")); err != nil && !errors.Is(err, fs.ErrNotExist) {
		return nil, fmt.Errorf("failed to load env file: %w", err)
	}

	v.SetDefault("SERVER_HOST", "")
	v.SetDefault("SERVER_PORT", "3000")
	v.SetDefault("CORS_ALLOW_ORIGINS", "*")
	v.SetDefault("AWS_REGION", "us-east-1")
	v.SetDefault("AWS_ACCESS_KEY_ID", "")
	v.SetDefault("AWS_SECRET_ACCESS_KEY", "")
	v.SetDefault("AWS_ENDPOINT_URL", "")
	v.SetDefault("DYNAMODB_BOOKINGS_TABLE", "Bookings")
	v.SetDefault("S3_BUCKET_NAME", "boutiquehotelroomimages")
	v.SetDefault("S3_IMAGE_PREFIX", "rooms/")
	v.SetDefault("S3_PUBLIC_READ", true)
	v.SetDefault("S3_USE_PATH_STYLE", false)
	v.SetDefault("EMAIL_FROM", "bookings@boutiquehotel.example")
	v.SetDefault("EMAIL_OVERRIDE_TO", "")
	v.SetDefault("NOTIFY_TIMEOUT", 30*time.Second)
	v.SetDefault("ENV", "dev")
	v.SetDefault("LOG_LEVEL", "info")
	v.SetDefault("APP_STATIC_DIR", "./web")
	v.SetDefault("APP_MAX_MULTIPART_MEMORY", 32<<20) // 32MB
	v.SetDefault("OTEL_EXPORTER_OTLP_ENDPOINT", "")
	v.SetDefault("OTEL_SERVICE_NAME", "hotel-booking")

	cfg := &Config{
		Server: ServerConfig{
			Host:             v.GetString("SERVER_HOST"),
			Port:             v.GetString("SERVER_PORT"),
			CORSAllowOrigins: splitList(v.GetString("CORS_ALLOW_ORIGINS")),
		},
		AWS: AWSConfig{
			Region:          v.GetString("AWS_REGION"),
			AccessKeyID:     v.GetString("AWS_ACCESS_KEY_ID"),
			SecretAccessKey: v.GetString("AWS_SECRET_ACCESS_KEY"),
			Endpoint:        v.GetString("AWS_ENDPOINT_URL"),
		},
		DynamoDB: DynamoDBConfig{
			BookingsTable: v.GetString("DYNAMODB_BOOKINGS_TABLE"),
		},
		S3: S3Config{
			BucketName:   v.GetString("S3_BUCKET_NAME"),
			ImagePrefix:  v.GetString("S3_IMAGE_PREFIX"),
			PublicRead:   v.GetBool("S3_PUBLIC_READ"),
			UsePathStyle: v.GetBool("S3_USE_PATH_STYLE"),
		},
		Notify: NotifyConfig{
			EmailFrom:       v.GetString("EMAIL_FROM"),
			EmailOverrideTo: v.GetString("EMAIL_OVERRIDE_TO"),
			Timeout:         v.GetDuration("NOTIFY_TIMEOUT"),
		},
		App: AppConfig{
			Env:                v.GetString("ENV"),
			LogLevel:           v.GetString("LOG_LEVEL"),
			StaticDir:          v.GetString("APP_STATIC_DIR"),
			MaxMultipartMemory: v.GetInt64("APP_MAX_MULTIPART_MEMORY"),
		},
		Tracing: TracingConfig{
			Endpoint:    v.GetString("OTEL_EXPORTER_OTLP_ENDPOINT"),
			ServiceName: v.GetString("OTEL_SERVICE_NAME"),
		},
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.Server.Port == "" {
		return errors.New("SERVER_PORT must not be empty")
	}
	if c.DynamoDB.BookingsTable == "" {
		return errors.New("DYNAMODB_BOOKINGS_TABLE must not be empty")
	}
	if c.S3.BucketName == "" {
		return errors.New("S3_BUCKET_NAME must not be empty")
	}
	if c.Notify.Timeout <= 0 {
		return fmt.Errorf("NOTIFY_TIMEOUT must be positive, got %s", c.Notify.Timeout)
	}
	return nil
}

func (c *Config) Addr() string {
	return c.Server.Host + ":" + c.Server.Port
}

func splitList(s string) []string {
	var out []string
	for _, p := range strings.Split(s, ",") {
		p = strings.TrimSpace(p)
		if p != "" {
			out = append(out, p)
		}
	}
	return out
}
