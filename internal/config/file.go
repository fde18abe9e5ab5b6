package config

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/dmitrijs2005/gamingclub/internal/timex"
)

// FileConfig is the on-disk DTO. It relies on timex.Duration so files can
// specify intervals as "2s" or integer nanoseconds; values are copied into
// the runtime Config afterwards.
type FileConfig struct {
	StorageBackend string `json:"storage_backend" yaml:"storage_backend"`
	SQLitePath     string `json:"sqlite_path" yaml:"sqlite_path"`
	PostgresDSN    string `json:"postgres_dsn" yaml:"postgres_dsn"`
	RedisAddr      string `json:"redis_addr" yaml:"redis_addr"`
	RedisPassword  string `json:"redis_password" yaml:"redis_password"`
	RedisDB        int    `json:"redis_db" yaml:"redis_db"`

	PollInterval       timex.Duration `json:"poll_interval" yaml:"poll_interval"`
	PaymentDelay       timex.Duration `json:"payment_delay" yaml:"payment_delay"`
	PaymentSuccessRate float64        `json:"payment_success_rate" yaml:"payment_success_rate"`
	TokenSecret        string         `json:"token_secret" yaml:"token_secret"`
	NotificationTTL    timex.Duration `json:"notification_ttl" yaml:"notification_ttl"`

	ImageStore  string `json:"image_store" yaml:"image_store"`
	S3Endpoint  string `json:"s3_endpoint" yaml:"s3_endpoint"`
	S3Region    string `json:"s3_region" yaml:"s3_region"`
	S3Bucket    string `json:"s3_bucket" yaml:"s3_bucket"`
	S3AccessKey string `json:"s3_access_key" yaml:"s3_access_key"`
	S3SecretKey string `json:"s3_secret_key" yaml:"s3_secret_key"`

	LogLevel  string `json:"log_level" yaml:"log_level"`
	LogFormat string `json:"log_format" yaml:"log_format"`
}

func toFile(c *Config) FileConfig {
	return FileConfig{
		StorageBackend:     c.StorageBackend,
		SQLitePath:         c.SQLitePath,
		PostgresDSN:        c.PostgresDSN,
		RedisAddr:          c.RedisAddr,
		RedisPassword:      c.RedisPassword,
		RedisDB:            c.RedisDB,
		PollInterval:       timex.Duration{Duration: c.PollInterval},
		PaymentDelay:       timex.Duration{Duration: c.PaymentDelay},
		PaymentSuccessRate: c.PaymentSuccessRate,
		TokenSecret:        c.TokenSecret,
		NotificationTTL:    timex.Duration{Duration: c.NotificationTTL},
		ImageStore:         c.ImageStore,
		S3Endpoint:         c.S3Endpoint,
		S3Region:           c.S3Region,
		S3Bucket:           c.S3Bucket,
		S3AccessKey:        c.S3AccessKey,
		S3SecretKey:        c.S3SecretKey,
		LogLevel:           c.LogLevel,
		LogFormat:          c.LogFormat,
	}
}

func (fc FileConfig) apply(c *Config) {
	c.StorageBackend = fc.StorageBackend
	c.SQLitePath = fc.SQLitePath
	c.PostgresDSN = fc.PostgresDSN
	c.RedisAddr = fc.RedisAddr
	c.RedisPassword = fc.RedisPassword
	c.RedisDB = fc.RedisDB
	c.PollInterval = fc.PollInterval.Duration
	c.PaymentDelay = fc.PaymentDelay.Duration
	c.PaymentSuccessRate = fc.PaymentSuccessRate
	c.TokenSecret = fc.TokenSecret
	c.NotificationTTL = fc.NotificationTTL.Duration
	c.ImageStore = fc.ImageStore
	c.S3Endpoint = fc.S3Endpoint
	c.S3Region = fc.S3Region
	c.S3Bucket = fc.S3Bucket
	c.S3AccessKey = fc.S3AccessKey
	c.S3SecretKey = fc.S3SecretKey
	c.LogLevel = fc.LogLevel
	c.LogFormat = fc.LogFormat
}

// LoadFile overlays cfg with the values present in the file at path.
func LoadFile(cfg *Config, path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read config %s: %w", path, err)
	}

	fc := toFile(cfg)
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		err = yaml.Unmarshal(data, &fc)
	default:
		err = json.Unmarshal(data, &fc)
	}
	if err != nil {
		return fmt.Errorf("parse config %s: %w", path, err)
	}

	fc.apply(cfg)
	return nil
}
