package config

import (
	"github.com/spf13/pflag"
)

// Flags holds the values of the configuration flags registered on a flag
// set. Apply copies only the flags the user actually set.
type Flags struct {
	ConfigFile string

	fs  *pflag.FlagSet
	raw Config
}

// Bind registers the configuration flags on fs. Defaults shown in help come
// from (*Config).LoadDefaults.
func Bind(fs *pflag.FlagSet) *Flags {
	f := &Flags{fs: fs}
	d := Default()

	fs.StringVarP(&f.ConfigFile, "config", "c", "", "path to a JSON or YAML config file")

	fs.StringVar(&f.raw.StorageBackend, "storage", d.StorageBackend, "storage backend: memory, sqlite, postgres or redis")
	fs.StringVar(&f.raw.SQLitePath, "sqlite-path", d.SQLitePath, "SQLite database file")
	fs.StringVar(&f.raw.PostgresDSN, "postgres-dsn", d.PostgresDSN, "PostgreSQL connection string")
	fs.StringVar(&f.raw.RedisAddr, "redis-addr", d.RedisAddr, "Redis address (host:port)")
	fs.StringVar(&f.raw.RedisPassword, "redis-password", d.RedisPassword, "Redis password")
	fs.IntVar(&f.raw.RedisDB, "redis-db", d.RedisDB, "Redis database number")

	fs.DurationVar(&f.raw.PollInterval, "poll-interval", d.PollInterval, "how often to check storage for changes made elsewhere")
	fs.DurationVar(&f.raw.PaymentDelay, "payment-delay", d.PaymentDelay, "simulated payment processing time")
	fs.Float64Var(&f.raw.PaymentSuccessRate, "payment-success-rate", d.PaymentSuccessRate, "probability that a simulated payment is approved")
	fs.StringVar(&f.raw.TokenSecret, "token-secret", d.TokenSecret, "session token signing secret (generated when empty)")
	fs.DurationVar(&f.raw.NotificationTTL, "notification-ttl", d.NotificationTTL, "how long notifications stay visible")

	fs.StringVar(&f.raw.ImageStore, "image-store", d.ImageStore, "where product images go: data or s3")
	fs.StringVar(&f.raw.S3Endpoint, "s3-endpoint", d.S3Endpoint, "S3 compatible endpoint")
	fs.StringVar(&f.raw.S3Region, "s3-region", d.S3Region, "S3 region")
	fs.StringVar(&f.raw.S3Bucket, "s3-bucket", d.S3Bucket, "S3 bucket for product images")
	fs.StringVar(&f.raw.S3AccessKey, "s3-access-key", d.S3AccessKey, "S3 access key")
	fs.StringVar(&f.raw.S3SecretKey, "s3-secret-key", d.S3SecretKey, "S3 secret key")

	fs.StringVar(&f.raw.LogLevel, "log-level", d.LogLevel, "log level: debug, info, warn or error")
	fs.StringVar(&f.raw.LogFormat, "log-format", d.LogFormat, "log format: text or json")

	return f
}

// Apply overlays cfg with every flag that was set on the command line.
func (f *Flags) Apply(cfg *Config) {
	set := func(name string, apply func()) {
		if f.fs.Changed(name) {
			apply()
		}
	}

	set("storage", func() { cfg.StorageBackend = f.raw.StorageBackend })
	set("sqlite-path", func() { cfg.SQLitePath = f.raw.SQLitePath })
	set("postgres-dsn", func() { cfg.PostgresDSN = f.raw.PostgresDSN })
	set("redis-addr", func() { cfg.RedisAddr = f.raw.RedisAddr })
	set("redis-password", func() { cfg.RedisPassword = f.raw.RedisPassword })
	set("redis-db", func() { cfg.RedisDB = f.raw.RedisDB })
	set("poll-interval", func() { cfg.PollInterval = f.raw.PollInterval })
	set("payment-delay", func() { cfg.PaymentDelay = f.raw.PaymentDelay })
	set("payment-success-rate", func() { cfg.PaymentSuccessRate = f.raw.PaymentSuccessRate })
	set("token-secret", func() { cfg.TokenSecret = f.raw.TokenSecret })
	set("notification-ttl", func() { cfg.NotificationTTL = f.raw.NotificationTTL })
	set("image-store", func() { cfg.ImageStore = f.raw.ImageStore })
	set("s3-endpoint", func() { cfg.S3Endpoint = f.raw.S3Endpoint })
	set("s3-region", func() { cfg.S3Region = f.raw.S3Region })
	set("s3-bucket", func() { cfg.S3Bucket = f.raw.S3Bucket })
	set("s3-access-key", func() { cfg.S3AccessKey = f.raw.S3AccessKey })
	set("s3-secret-key", func() { cfg.S3SecretKey = f.raw.S3SecretKey })
	set("log-level", func() { cfg.LogLevel = f.raw.LogLevel })
	set("log-format", func() { cfg.LogFormat = f.raw.LogFormat })
}
