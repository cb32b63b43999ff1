package config

import (
	"fmt"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Server   ServerConfig
	Database DatabaseConfig
	Redis    RedisConfig
	Central  CentralConfig
	GPS      GPSConfig
	Sync     SyncConfig
	Log      LogConfig
	Worker   WorkerConfig
}

type ServerConfig struct {
	Host string
	Port int
	Env  string
}

type DatabaseConfig struct {
	Host            string
	Port            int
	User            string
	Password        string
	DBName          string
	SSLMode         string
	MaxConns        int
	MaxIdleConns    int
	ConnMaxLifetime time.Duration
	ConnMaxIdleTime time.Duration
}

type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// CentralConfig points the agent at the central authority's API.
type CentralConfig struct {
	BaseURL        string
	AuthToken      string
	OperatorID     string
	RequestTimeout time.Duration
	UploadTimeout  time.Duration
}

// GPSConfig bounds position acquisition. After AcquireTimeout the capture
// flow proceeds with the unknown-location sentinel instead of hanging.
type GPSConfig struct {
	SourceAddr     string
	AcquireTimeout time.Duration
}

type SyncConfig struct {
	Interval  time.Duration
	BatchSize int
}

type LogConfig struct {
	Level string
}

type WorkerConfig struct {
	Enabled           bool
	ConsumerGroup     string
	StreamReadTimeout time.Duration
}

func Load() (*Config, error) {
	viper.SetConfigFile(".env")
	viper.AutomaticEnv()

	if err := viper.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	cfg := &Config{
		Server: ServerConfig{
			Host: viper.GetString("API_HOST"),
			Port: viper.GetInt("API_PORT"),
			Env:  viper.GetString("API_ENV"),
		},
		Database: DatabaseConfig{
			Host:            viper.GetString("DB_HOST"),
			Port:            viper.GetInt("DB_PORT"),
			User:            viper.GetString("DB_USER"),
			Password:        viper.GetString("DB_PASSWORD"),
			DBName:          viper.GetString("DB_NAME"),
			SSLMode:         viper.GetString("DB_SSLMODE"),
			MaxConns:        viper.GetInt("DB_MAX_CONNS"),
			MaxIdleConns:    viper.GetInt("DB_MAX_IDLE_CONNS"),
			ConnMaxLifetime: time.Duration(viper.GetInt("DB_CONN_MAX_LIFETIME")) * time.Second,
			ConnMaxIdleTime: time.Duration(viper.GetInt("DB_CONN_MAX_IDLE_TIME")) * time.Second,
		},
		Redis: RedisConfig{
			Host:     viper.GetString("REDIS_HOST"),
			Port:     viper.GetInt("REDIS_PORT"),
			Password: viper.GetString("REDIS_PASSWORD"),
			DB:       viper.GetInt("REDIS_DB"),
		},
		Central: CentralConfig{
			BaseURL:        viper.GetString("CENTRAL_BASE_URL"),
			AuthToken:      viper.GetString("CENTRAL_AUTH_TOKEN"),
			OperatorID:     viper.GetString("CENTRAL_OPERATOR_ID"),
			RequestTimeout: time.Duration(viper.GetInt("CENTRAL_REQUEST_TIMEOUT")) * time.Second,
			UploadTimeout:  time.Duration(viper.GetInt("CENTRAL_UPLOAD_TIMEOUT")) * time.Second,
		},
		GPS: GPSConfig{
			SourceAddr:     viper.GetString("GPS_SOURCE_ADDR"),
			AcquireTimeout: time.Duration(viper.GetInt("GPS_ACQUIRE_TIMEOUT_MS")) * time.Millisecond,
		},
		Sync: SyncConfig{
			Interval:  time.Duration(viper.GetInt("SYNC_INTERVAL")) * time.Second,
			BatchSize: viper.GetInt("SYNC_BATCH_SIZE"),
		},
		Log: LogConfig{
			Level: viper.GetString("LOG_LEVEL"),
		},
		Worker: WorkerConfig{
			Enabled:           viper.GetBool("WORKER_ENABLED"),
			ConsumerGroup:     viper.GetString("WORKER_CONSUMER_GROUP"),
			StreamReadTimeout: time.Duration(viper.GetInt("WORKER_STREAM_READ_TIMEOUT")) * time.Millisecond,
		},
	}

	// Set default values if not provided
	if cfg.Central.RequestTimeout == 0 {
		cfg.Central.RequestTimeout = 15 * time.Second
	}
	if cfg.Central.UploadTimeout == 0 {
		cfg.Central.UploadTimeout = 60 * time.Second
	}
	if cfg.GPS.AcquireTimeout == 0 {
		cfg.GPS.AcquireTimeout = 5 * time.Second
	}
	if cfg.Sync.Interval == 0 {
		cfg.Sync.Interval = 5 * time.Minute
	}
	if cfg.Sync.BatchSize == 0 {
		cfg.Sync.BatchSize = 20
	}
	if cfg.Worker.ConsumerGroup == "" {
		cfg.Worker.ConsumerGroup = "fieldsync-workers"
	}
	if cfg.Worker.StreamReadTimeout == 0 {
		cfg.Worker.StreamReadTimeout = 5000 * time.Millisecond
	}

	return cfg, nil
}

func (c *Config) GetServerAddr() string {
	return fmt.Sprintf("%s:%d", c.Server.Host, c.Server.Port)
}

func (c *Config) GetDatabaseDSN() string {
	return fmt.Sprintf(
		"host=%s port=%d user=%s password=%s dbname=%s sslmode=%s",
		c.Database.Host,
		c.Database.Port,
		c.Database.User,
		c.Database.Password,
		c.Database.DBName,
		c.Database.SSLMode,
	)
}

func (c *Config) GetRedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Redis.Host, c.Redis.Port)
}
