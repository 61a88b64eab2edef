package config

import (
	"fmt"
	"os"
	"strconv"
	"time"
)

const (
	envEnvironment          = "APP_ENV"
	envLogLevel             = "LOG_LEVEL"
	envPort                 = "PORT"
	envServerReadTimeout    = "SERVER_READ_TIMEOUT"
	envServerWriteTimeout   = "SERVER_WRITE_TIMEOUT"
	envServerShutdown       = "SERVER_SHUTDOWN_TIMEOUT"
	envDBHost               = "DB_HOST"
	envDBPort               = "DB_PORT"
	envDBName               = "DB_NAME"
	envDBUser               = "DB_USER"
	envDBPassword           = "DB_PASSWORD"
	envDBSSLMode            = "DB_SSL_MODE"
	envDBMaxConns           = "DB_MAX_CONNS"
	envDBMinConns           = "DB_MIN_CONNS"
	envAWSRegion            = "AWS_REGION"
	envAWSAccessKeyID       = "AWS_ACCESS_KEY_ID"
	envAWSSecretAccessKey   = "AWS_SECRET_ACCESS_KEY"
	envS3Bucket             = "S3_BUCKET"
	envS3PublicBaseURL      = "S3_PUBLIC_BASE_URL"
	envJWTSecret            = "JWT_SECRET"
	envStudioTokenTTL       = "STUDIO_TOKEN_TTL"
	envAdminTokenTTL        = "ADMIN_TOKEN_TTL"
	envTrialGracePeriod     = "TRIAL_GRACE_PERIOD"
	envMaxImageUploadSize   = "MAX_IMAGE_UPLOAD_SIZE"
	envMailProviderAPIKey   = "MAIL_PROVIDER_API_KEY"
	envMailFromAddress      = "MAIL_FROM_ADDRESS"
	environmentProduction   = "production"
)

const (
	defaultServerPort         = "8080"
	defaultServerReadTimeout  = 10 * time.Second
	defaultServerWriteTimeout = 10 * time.Second
	defaultServerShutdown     = 10 * time.Second
	defaultDBHost             = "localhost"
	defaultDBPort             = 5432
	defaultDBName             = "weshow"
	defaultDBUser             = "weshow_app"
	defaultDBSSLMode          = "disable"
	defaultDBMaxConns         = 25
	defaultDBMinConns         = 5
	defaultStudioTokenTTL     = 7 * 24 * time.Hour
	defaultAdminTokenTTL      = 24 * time.Hour
	defaultTrialGracePeriod   = 5 * time.Minute
	defaultMaxImageUpload     = int64(5 * 1024 * 1024)
	defaultMailFrom           = "hello@weshow.app"
	minJWTSecretLength        = 32
	minUniqueCharsInSecret    = 16
	minRepeatedCharThreshold  = 4
	maxRepeatedChars          = 2

	errPortRequiredFmt         = "PORT must be set"
	errDBPasswordRequiredFmt   = "DB_PASSWORD must be set"
	errRegionRequiredFmt       = "AWS_REGION must be set"
	errAWSAccessKeyRequiredFmt = "AWS_ACCESS_KEY_ID must be set"
	errAWSSecretKeyRequiredFmt = "AWS_SECRET_ACCESS_KEY must be set"
	errS3BucketRequiredFmt     = "S3_BUCKET must be set"
	errJWTSecretRequiredFmt    = "JWT_SECRET must be set"
	errJWTSecretMinLengthFmt   = "JWT_SECRET must be at least %d characters"
	errJWTSecretLowEntropyFmt  = "JWT_SECRET has insufficient entropy (appears non-random). Use a cryptographically secure random string."
	errInvalidConfigurationFmt = "invalid configuration: %w"
)

type Config struct {
	Environment string
	LogLevel    string
	Server      ServerConfig
	Database    DatabaseConfig
	AWS         AWSConfig
	JWT         JWTConfig
	Trial       TrialConfig
	Upload      UploadConfig
	Mail        MailConfig
}

type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
}

type DatabaseConfig struct {
	Host     string
	Port     int
	Database string
	User     string
	Password string
	SSLMode  string
	MaxConns int
	MinConns int
}

type AWSConfig struct {
	Region          string
	AccessKeyID     string
	SecretAccessKey string
	Bucket          string
	PublicBaseURL   string
}

type JWTConfig struct {
	Secret         string
	StudioTokenTTL time.Duration
	AdminTokenTTL  time.Duration
}

type TrialConfig struct {
	GracePeriod time.Duration
}

type UploadConfig struct {
	MaxImageSize int64
}

type MailConfig struct {
	ProviderAPIKey string
	FromAddress    string
}

func Load() (*Config, error) {
	cfg := &Config{
		Environment: getEnv(envEnvironment, ""),
		LogLevel:    getEnv(envLogLevel, "info"),
		Server: ServerConfig{
			Port:            getEnv(envPort, defaultServerPort),
			ReadTimeout:     getDurationEnv(envServerReadTimeout, defaultServerReadTimeout),
			WriteTimeout:    getDurationEnv(envServerWriteTimeout, defaultServerWriteTimeout),
			ShutdownTimeout: getDurationEnv(envServerShutdown, defaultServerShutdown),
		},
		Database: DatabaseConfig{
			Host:     getEnv(envDBHost, defaultDBHost),
			Port:     getIntEnv(envDBPort, defaultDBPort),
			Database: getEnv(envDBName, defaultDBName),
			User:     getEnv(envDBUser, defaultDBUser),
			Password: os.Getenv(envDBPassword),
			SSLMode:  getEnv(envDBSSLMode, defaultDBSSLMode),
			MaxConns: getIntEnv(envDBMaxConns, defaultDBMaxConns),
			MinConns: getIntEnv(envDBMinConns, defaultDBMinConns),
		},
		AWS: AWSConfig{
			Region:          os.Getenv(envAWSRegion),
			AccessKeyID:     os.Getenv(envAWSAccessKeyID),
			SecretAccessKey: os.Getenv(envAWSSecretAccessKey),
			Bucket:          os.Getenv(envS3Bucket),
			PublicBaseURL:   os.Getenv(envS3PublicBaseURL),
		},
		JWT: JWTConfig{
			Secret:         os.Getenv(envJWTSecret),
			StudioTokenTTL: getDurationEnv(envStudioTokenTTL, defaultStudioTokenTTL),
			AdminTokenTTL:  getDurationEnv(envAdminTokenTTL, defaultAdminTokenTTL),
		},
		Trial: TrialConfig{
			GracePeriod: getDurationEnv(envTrialGracePeriod, defaultTrialGracePeriod),
		},
		Upload: UploadConfig{
			MaxImageSize: getInt64Env(envMaxImageUploadSize, defaultMaxImageUpload),
		},
		Mail: MailConfig{
			ProviderAPIKey: os.Getenv(envMailProviderAPIKey),
			FromAddress:    getEnv(envMailFromAddress, defaultMailFrom),
		},
	}

	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf(errInvalidConfigurationFmt, err)
	}

	return cfg, nil
}

func (c *Config) IsProduction() bool {
	return c.Environment == environmentProduction
}

func (c *Config) Validate() error {
	if c.Server.Port == "" {
		return fmt.Errorf(errPortRequiredFmt)
	}

	if c.Database.Password == "" {
		return fmt.Errorf(errDBPasswordRequiredFmt)
	}

	if c.AWS.Region == "" {
		return fmt.Errorf(errRegionRequiredFmt)
	}

	if c.AWS.AccessKeyID == "" {
		return fmt.Errorf(errAWSAccessKeyRequiredFmt)
	}

	if c.AWS.SecretAccessKey == "" {
		return fmt.Errorf(errAWSSecretKeyRequiredFmt)
	}

	if c.AWS.Bucket == "" {
		return fmt.Errorf(errS3BucketRequiredFmt)
	}

	if c.JWT.Secret == "" {
		return fmt.Errorf(errJWTSecretRequiredFmt)
	}

	if len(c.JWT.Secret) < minJWTSecretLength {
		return fmt.Errorf(errJWTSecretMinLengthFmt, minJWTSecretLength)
	}

	if !hasMinimumEntropy(c.JWT.Secret) {
		return fmt.Errorf(errJWTSecretLowEntropyFmt)
	}

	return nil
}

func hasMinimumEntropy(secret string) bool {
	if len(secret) < minJWTSecretLength {
		return false
	}

	charCounts := make(map[rune]int)
	for _, char := range secret {
		charCounts[char]++
	}

	uniqueChars := len(charCounts)
	if uniqueChars < minUniqueCharsInSecret {
		return false
	}

	repeatedChars := 0
	for _, count := range charCounts {
		if count > len(secret)/minRepeatedCharThreshold {
			repeatedChars++
		}
	}

	return repeatedChars <= maxRepeatedChars
}

func (c *DatabaseConfig) DSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Host, c.Port, c.User, c.Password, c.Database, c.SSLMode,
	)
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getIntEnv(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getInt64Env(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
		if minutes, err := strconv.Atoi(value); err == nil {
			return time.Duration(minutes) * time.Minute
		}
	}
	return defaultValue
}
