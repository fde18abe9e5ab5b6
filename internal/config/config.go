package config

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/gamingclub/internal/kv"
)

// Image stores accepted in ImageStore.
const (
	ImageStoreData = "data"
	ImageStoreS3   = "s3"
)

// Config holds runtime settings for the GamingClub CLI.
type Config struct {
	StorageBackend string
	SQLitePath     string
	PostgresDSN    string
	RedisAddr      string
	RedisPassword  string
	RedisDB        int

	// PollInterval is how often the catalog watcher re-reads storage to
	// notice writes from other processes.
	PollInterval time.Duration

	PaymentDelay       time.Duration
	PaymentSuccessRate float64

	// TokenSecret signs session tokens. Empty means a random secret is
	// generated once and persisted in storage.
	TokenSecret string

	NotificationTTL time.Duration

	ImageStore  string
	S3Endpoint  string
	S3Region    string
	S3Bucket    string
	S3AccessKey string
	S3SecretKey string

	LogLevel  string
	LogFormat string
}

// LoadDefaults populates c with sensible defaults.
func (c *Config) LoadDefaults() {
	c.StorageBackend = kv.BackendSQLite
	c.SQLitePath = "data/gamingclub.db"
	c.PostgresDSN = ""
	c.RedisAddr = "127.0.0.1:6379"
	c.RedisPassword = ""
	c.RedisDB = 0
	c.PollInterval = 2 * time.Second
	c.PaymentDelay = 3 * time.Second
	c.PaymentSuccessRate = 0.9
	c.TokenSecret = ""
	c.NotificationTTL = 5 * time.Second
	c.ImageStore = ImageStoreData
	c.S3Endpoint = "http://127.0.0.1:9000"
	c.S3Region = "us-east-1"
	c.S3Bucket = "gamingclub"
	c.S3AccessKey = ""
	c.S3SecretKey = ""
	c.LogLevel = "warn"
	c.LogFormat = "text"
}

// Default returns a Config with defaults applied.
func Default() *Config {
	c := &Config{}
	c.LoadDefaults()
	return c
}

// KV returns the storage options for kv.Open.
func (c *Config) KV() kv.Options {
	return kv.Options{
		Backend:       c.StorageBackend,
		SQLitePath:    c.SQLitePath,
		PostgresDSN:   c.PostgresDSN,
		RedisAddr:     c.RedisAddr,
		RedisPassword: c.RedisPassword,
		RedisDB:       c.RedisDB,
	}
}

// Validate reports the first setting that cannot work.
func (c *Config) Validate() error {
	switch c.StorageBackend {
	case kv.BackendMemory, kv.BackendSQLite, kv.BackendRedis:
	case kv.BackendPostgres:
		if c.PostgresDSN == "" {
			return fmt.Errorf("postgres_dsn is required for the postgres backend")
		}
	default:
		return fmt.Errorf("unknown storage_backend %q", c.StorageBackend)
	}

	if c.StorageBackend == kv.BackendSQLite && c.SQLitePath == "" {
		return fmt.Errorf("sqlite_path is required for the sqlite backend")
	}
	if c.PaymentSuccessRate < 0 || c.PaymentSuccessRate > 1 {
		return fmt.Errorf("payment_success_rate must be within [0, 1], got %v", c.PaymentSuccessRate)
	}
	if c.PollInterval < 0 || c.PaymentDelay < 0 || c.NotificationTTL < 0 {
		return fmt.Errorf("durations must not be negative")
	}

	switch c.ImageStore {
	case ImageStoreData:
	case ImageStoreS3:
		if c.S3Bucket == "" {
			return fmt.Errorf("s3_bucket is required for the s3 image store")
		}
	default:
		return fmt.Errorf("unknown image_store %q", c.ImageStore)
	}
	return nil
}

// Load builds a Config from defaults, the optional config file and the
// flags registered by Bind, in that order.
func Load(f *Flags) (*Config, error) {
	cfg := Default()
	if f != nil && f.ConfigFile != "" {
		if err := LoadFile(cfg, f.ConfigFile); err != nil {
			return nil, err
		}
	}
	if f != nil {
		f.Apply(cfg)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}
