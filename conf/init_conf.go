package conf

import (
	"fmt"

	"github.com/spf13/viper"
)

// Config application configuration structure
type Config struct {
	Env  string
	Port string

	// Database configuration
	Database DatabaseConfig

	// Redis configuration
	Redis RedisConfig

	// Storage configuration
	Storage StorageConfig

	// Auth configuration
	Auth AuthConfig

	// Upload configuration
	Upload UploadConfig
}

// DatabaseConfig database configuration
type DatabaseConfig struct {
	Dsn          string // MySQL DSN
	MaxOpenConns int    // MySQL max open connections
	MaxIdleConns int    // MySQL max idle connections
}

// RedisConfig redis configuration
type RedisConfig struct {
	Enabled  bool   // Enable Redis
	Host     string // Redis host
	Port     int    // Redis port
	Password string // Redis password (optional)
	DB       int    // Redis database number
}

// StorageConfig storage configuration
type StorageConfig struct {
	Type  string
	Local LocalStorageConfig
	OSS   OSSStorageConfig
	S3    S3StorageConfig
	MinIO MinIOStorageConfig
}

// LocalStorageConfig local storage configuration
type LocalStorageConfig struct {
	BasePath string
}

// OSSStorageConfig OSS storage configuration
type OSSStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// S3StorageConfig AWS S3 storage configuration
type S3StorageConfig struct {
	Region    string
	AccessKey string
	SecretKey string
	Bucket    string
	Endpoint  string // Optional custom endpoint
}

// MinIOStorageConfig MinIO storage configuration (served by the S3 backend)
type MinIOStorageConfig struct {
	Endpoint  string
	AccessKey string
	SecretKey string
	Bucket    string
}

// AuthConfig authentication configuration
type AuthConfig struct {
	JwtSecret        string // HMAC secret for access tokens
	TokenTTLHours    int    // Access token lifetime
	ResetCodeTTLMins int    // Password reset code lifetime
	BcryptCost       int    // bcrypt cost factor
}

// UploadConfig upload configuration
type UploadConfig struct {
	MaxFileSize       int64 // Max single upload size in bytes
	SessionTTLHours   int   // Chunked upload session validity window
	SweepIntervalMins int   // Expired session sweep interval
	SweepBatchSize    int   // Sessions cleaned per sweep pass
}

// Environment enumeration
type Environment int

const (
	LocalEnvironmentEnum Environment = iota
	ProductionEnvironmentEnum
	ExampleEnvironmentEnum
)

// SystemEnvironmentEnum current environment, set by the entrypoint before InitConfig
var SystemEnvironmentEnum = LocalEnvironmentEnum

// GetYaml returns the configuration file path for the current environment
func GetYaml() string {
	switch SystemEnvironmentEnum {
	case ProductionEnvironmentEnum:
		return "./conf/config.yaml"
	case ExampleEnvironmentEnum:
		return "./conf/config.example.yaml"
	default:
		return "./conf/config.local.yaml"
	}
}

// Cfg global configuration instance
var Cfg *Config

// InitConfig initialize configuration
func InitConfig() error {
	viper.SetConfigFile(GetYaml())
	if err := viper.ReadInConfig(); err != nil {
		return fmt.Errorf("fatal error config file: %w", err)
	}

	Cfg = &Config{
		Env:  viper.GetString("env"),
		Port: viper.GetString("port"),

		Database: DatabaseConfig{
			Dsn:          viper.GetString("database.dsn"),
			MaxOpenConns: viper.GetInt("database.max_open_conns"),
			MaxIdleConns: viper.GetInt("database.max_idle_conns"),
		},

		Redis: RedisConfig{
			Enabled:  viper.GetBool("redis.enabled"),
			Host:     viper.GetString("redis.host"),
			Port:     viper.GetInt("redis.port"),
			Password: viper.GetString("redis.password"),
			DB:       viper.GetInt("redis.db"),
		},

		Storage: StorageConfig{
			Type: viper.GetString("storage.type"),
			Local: LocalStorageConfig{
				BasePath: viper.GetString("storage.local.base_path"),
			},
			OSS: OSSStorageConfig{
				Endpoint:  viper.GetString("storage.oss.endpoint"),
				AccessKey: viper.GetString("storage.oss.access_key"),
				SecretKey: viper.GetString("storage.oss.secret_key"),
				Bucket:    viper.GetString("storage.oss.bucket"),
			},
			S3: S3StorageConfig{
				Region:    viper.GetString("storage.s3.region"),
				AccessKey: viper.GetString("storage.s3.access_key"),
				SecretKey: viper.GetString("storage.s3.secret_key"),
				Bucket:    viper.GetString("storage.s3.bucket"),
				Endpoint:  viper.GetString("storage.s3.endpoint"),
			},
			MinIO: MinIOStorageConfig{
				Endpoint:  viper.GetString("storage.minio.endpoint"),
				AccessKey: viper.GetString("storage.minio.access_key"),
				SecretKey: viper.GetString("storage.minio.secret_key"),
				Bucket:    viper.GetString("storage.minio.bucket"),
			},
		},

		Auth: AuthConfig{
			JwtSecret:        viper.GetString("auth.jwt_secret"),
			TokenTTLHours:    viper.GetInt("auth.token_ttl_hours"),
			ResetCodeTTLMins: viper.GetInt("auth.reset_code_ttl_mins"),
			BcryptCost:       viper.GetInt("auth.bcrypt_cost"),
		},

		Upload: UploadConfig{
			MaxFileSize:       viper.GetInt64("upload.max_file_size") * 1024 * 1024, // MB to bytes
			SessionTTLHours:   viper.GetInt("upload.session_ttl_hours"),
			SweepIntervalMins: viper.GetInt("upload.sweep_interval_mins"),
			SweepBatchSize:    viper.GetInt("upload.sweep_batch_size"),
		},
	}

	// Set default values
	if Cfg.Port == "" {
		Cfg.Port = "8080"
	}
	if Cfg.Storage.Type == "" {
		Cfg.Storage.Type = "local"
	}
	if Cfg.Storage.Local.BasePath == "" {
		Cfg.Storage.Local.BasePath = "./data/files"
	}
	if Cfg.Database.MaxOpenConns == 0 {
		Cfg.Database.MaxOpenConns = 100
	}
	if Cfg.Database.MaxIdleConns == 0 {
		Cfg.Database.MaxIdleConns = 10
	}
	if Cfg.Auth.TokenTTLHours == 0 {
		Cfg.Auth.TokenTTLHours = 24
	}
	if Cfg.Auth.ResetCodeTTLMins == 0 {
		Cfg.Auth.ResetCodeTTLMins = 10
	}
	if Cfg.Upload.MaxFileSize == 0 {
		Cfg.Upload.MaxFileSize = 100 * 1024 * 1024
	}
	if Cfg.Upload.SessionTTLHours == 0 {
		Cfg.Upload.SessionTTLHours = 24
	}
	if Cfg.Upload.SweepIntervalMins == 0 {
		Cfg.Upload.SweepIntervalMins = 10
	}
	if Cfg.Upload.SweepBatchSize == 0 {
		Cfg.Upload.SweepBatchSize = 100
	}

	return nil
}
