package config

import (
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Storage  StorageConfig
	JWT      JWTConfig
	App      AppConfig
}

type ServerConfig struct {
	Host         string
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

type DatabaseConfig struct {
	URI      string
	Host     string
	Port     string
	User     string
	Password string
	DBName   string
	SSLMode  string
}

type RedisConfig struct {
	Addr         string
	Password     string
	DB           int
	MaxRetries   int
	DialTimeout  time.Duration
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	PoolSize     int
	MinIdleConns int
}

type StorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
	UseSSL    bool
}

type JWTConfig struct {
	Secret         string
	ExpirationTime time.Duration
}

type AppConfig struct {
	// BaseURL is the public web origin used when building invite links.
	BaseURL string
}

func LoadConfig() (*Config, error) {
	viper.SetDefault("CIRCLEUP_HOST", "")
	viper.SetDefault("CIRCLEUP_PORT", "8080")
	viper.SetDefault("CIRCLEUP_READ_TIMEOUT", 30*time.Second)
	viper.SetDefault("CIRCLEUP_WRITE_TIMEOUT", 30*time.Second)
	viper.SetDefault("CIRCLEUP_IDLE_TIMEOUT", 60*time.Second)
	viper.SetDefault("CIRCLEUP_JWT_SECRET", "secret")
	viper.SetDefault("CIRCLEUP_JWT_EXPIRE", "168h")
	viper.SetDefault("CIRCLEUP_BASE_URL", "http://localhost:3000")
	viper.SetDefault("POSTGRES_USER", "postgres")
	viper.SetDefault("POSTGRES_PASSWORD", "password")
	viper.SetDefault("POSTGRES_HOST", "localhost")
	viper.SetDefault("POSTGRES_PORT", "5432")
	viper.SetDefault("POSTGRES_DB", "circleup")
	viper.SetDefault("POSTGRES_SSLMODE", "disable")
	viper.SetDefault("REDIS_ADDR", "localhost:6379")
	viper.SetDefault("REDIS_PASSWORD", "")
	viper.SetDefault("REDIS_DB", 0)
	viper.SetDefault("REDIS_MAX_RETRIES", 3)
	viper.SetDefault("REDIS_DIAL_TIMEOUT", 5*time.Second)
	viper.SetDefault("REDIS_READ_TIMEOUT", 3*time.Second)
	viper.SetDefault("REDIS_WRITE_TIMEOUT", 3*time.Second)
	viper.SetDefault("REDIS_POOL_SIZE", 100)
	viper.SetDefault("REDIS_MIN_IDLE_CONNS", 10)
	viper.SetDefault("MINIO_ENDPOINT", "localhost:9000")
	viper.SetDefault("MINIO_ACCESS_KEY", "minioadmin")
	viper.SetDefault("MINIO_SECRET_KEY", "minioadmin")
	viper.SetDefault("MINIO_BUCKET", "avatars")
	viper.SetDefault("MINIO_USE_SSL", false)
	viper.AutomaticEnv()

	return &Config{
		Server: ServerConfig{
			Host:         viper.GetString("CIRCLEUP_HOST"),
			Port:         viper.GetString("CIRCLEUP_PORT"),
			ReadTimeout:  viper.GetDuration("CIRCLEUP_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("CIRCLEUP_WRITE_TIMEOUT"),
			IdleTimeout:  viper.GetDuration("CIRCLEUP_IDLE_TIMEOUT"),
		},
		Database: DatabaseConfig{
			URI:      viper.GetString("DATABASE_URL"),
			Host:     viper.GetString("POSTGRES_HOST"),
			Port:     viper.GetString("POSTGRES_PORT"),
			User:     viper.GetString("POSTGRES_USER"),
			Password: viper.GetString("POSTGRES_PASSWORD"),
			DBName:   viper.GetString("POSTGRES_DB"),
			SSLMode:  viper.GetString("POSTGRES_SSLMODE"),
		},
		Redis: RedisConfig{
			Addr:         viper.GetString("REDIS_ADDR"),
			Password:     viper.GetString("REDIS_PASSWORD"),
			DB:           viper.GetInt("REDIS_DB"),
			MaxRetries:   viper.GetInt("REDIS_MAX_RETRIES"),
			DialTimeout:  viper.GetDuration("REDIS_DIAL_TIMEOUT"),
			ReadTimeout:  viper.GetDuration("REDIS_READ_TIMEOUT"),
			WriteTimeout: viper.GetDuration("REDIS_WRITE_TIMEOUT"),
			PoolSize:     viper.GetInt("REDIS_POOL_SIZE"),
			MinIdleConns: viper.GetInt("REDIS_MIN_IDLE_CONNS"),
		},
		Storage: StorageConfig{
			Endpoint:  viper.GetString("MINIO_ENDPOINT"),
			AccessKey: viper.GetString("MINIO_ACCESS_KEY"),
			SecretKey: viper.GetString("MINIO_SECRET_KEY"),
			Bucket:    viper.GetString("MINIO_BUCKET"),
			UseSSL:    viper.GetBool("MINIO_USE_SSL"),
		},
		JWT: JWTConfig{
			Secret:         viper.GetString("CIRCLEUP_JWT_SECRET"),
			ExpirationTime: viper.GetDuration("CIRCLEUP_JWT_EXPIRE"),
		},
		App: AppConfig{
			BaseURL: viper.GetString("CIRCLEUP_BASE_URL"),
		},
	}, nil
}
