package cmd

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"time"

	"github.com/spf13/pflag"
)

type Config struct {
	HTTPPort   string
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBSslMode  string
	DBMaxConns int32

	// RedisAddr is optional. Without it the expiry sweep runs unlocked, which is only
	// safe with a single replica.
	RedisAddr string

	FirebaseProjectID       string
	FirebaseCredentialsFile string

	DeliveryFee       string
	PlatformFee       string
	UnknownItemPolicy string

	OrderExpiryAfter    time.Duration
	OrderExpiryInterval time.Duration

	DispatchWorkers   int
	DispatchQueueSize int

	LogLevel slog.Level
}

// DSN returns a pgx keyword/value connection string.
func (c Config) DSN() string {
	return fmt.Sprintf("host=%s port=%s user=%s password=%s dbname=%s sslmode=%s",
		c.DBHost, c.DBPort, c.DBUser, c.DBPassword, c.DBName, c.DBSslMode)
}

// LoadConfig reads the environment and then lets command-line flags override it.
// A .env file, if any, must already be loaded into the environment.
func LoadConfig(args []string) (Config, error) {
	return loadConfig(os.LookupEnv, args)
}

func loadConfig(lookup func(string) (string, bool), args []string) (Config, error) {
	env := func(key, fallback string) string {
		if v, ok := lookup(key); ok && v != "" {
			return v
		}
		return fallback
	}

	var (
		cfg                   Config
		maxConns              int
		expiryAfter, interval string
		logLevel              string
		workers, queueSize    string
	)

	fs := pflag.NewFlagSet("orderflow", pflag.ContinueOnError)
	fs.StringVar(&cfg.HTTPPort, "http-port", env("HTTP_PORT", "8080"), "port to listen on")
	fs.StringVar(&cfg.DBHost, "db-host", env("DB_HOST", "localhost"), "postgres host")
	fs.StringVar(&cfg.DBPort, "db-port", env("DB_PORT", "5432"), "postgres port")
	fs.StringVar(&cfg.DBUser, "db-user", env("DB_USER", "postgres"), "postgres user")
	fs.StringVar(&cfg.DBPassword, "db-password", env("DB_PASSWORD", ""), "postgres password")
	fs.StringVar(&cfg.DBName, "db-name", env("DB_NAME", "orderflow"), "postgres database")
	fs.StringVar(&cfg.DBSslMode, "db-sslmode", env("DB_SSLMODE", "disable"), "postgres sslmode")
	fs.StringVar(&cfg.RedisAddr, "redis-addr", env("REDIS_ADDR", ""), "redis address for the sweep lock")
	fs.StringVar(&cfg.FirebaseProjectID, "firebase-project-id", env("FIREBASE_PROJECT_ID", ""), "firebase project")
	fs.StringVar(&cfg.FirebaseCredentialsFile, "firebase-credentials-file",
		env("FIREBASE_CREDENTIALS_FILE", ""), "service account json")
	fs.StringVar(&cfg.DeliveryFee, "delivery-fee", env("DELIVERY_FEE", "30"), "fee for delivery orders")
	fs.StringVar(&cfg.PlatformFee, "platform-fee", env("PLATFORM_FEE", "10"), "fee for every order")
	fs.StringVar(&cfg.UnknownItemPolicy, "unknown-item-policy", env("UNKNOWN_ITEM_POLICY", "skip"),
		"skip or reject lines with unknown items")
	fs.StringVar(&expiryAfter, "order-expiry-after", env("ORDER_EXPIRY_AFTER", "10m"),
		"cancel placed orders older than this")
	fs.StringVar(&interval, "order-expiry-interval", env("ORDER_EXPIRY_INTERVAL", "60s"), "sweep interval")
	fs.StringVar(&workers, "dispatch-workers", env("DISPATCH_WORKERS", "4"), "push dispatch workers")
	fs.StringVar(&queueSize, "dispatch-queue-size", env("DISPATCH_QUEUE_SIZE", "256"), "push dispatch queue")
	fs.StringVar(&logLevel, "log-level", env("LOG_LEVEL", "info"), "debug, info, warn or error")
	fs.IntVar(&maxConns, "db-max-conns", 10, "postgres pool size")

	if err := fs.Parse(args); err != nil {
		return Config{}, err
	}

	var err error
	if cfg.OrderExpiryAfter, err = positiveDuration("order expiry after", expiryAfter); err != nil {
		return Config{}, err
	}
	if cfg.OrderExpiryInterval, err = positiveDuration("order expiry interval", interval); err != nil {
		return Config{}, err
	}
	if cfg.DispatchWorkers, err = positiveInt("dispatch workers", workers); err != nil {
		return Config{}, err
	}
	if cfg.DispatchQueueSize, err = positiveInt("dispatch queue size", queueSize); err != nil {
		return Config{}, err
	}
	if err = cfg.LogLevel.UnmarshalText([]byte(logLevel)); err != nil {
		return Config{}, fmt.Errorf("invalid log level %q: %w", logLevel, err)
	}

	port, err := strconv.Atoi(cfg.HTTPPort)
	if err != nil || port <= 0 || port > 65535 {
		return Config{}, fmt.Errorf("invalid port: %s", cfg.HTTPPort)
	}
	if maxConns <= 0 {
		return Config{}, fmt.Errorf("invalid db max conns: %d", maxConns)
	}
	cfg.DBMaxConns = int32(maxConns) //nolint:gosec // small positive flag value

	return cfg, nil
}

func positiveDuration(name, raw string) (time.Duration, error) {
	d, err := time.ParseDuration(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if d <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %s", name, d)
	}
	return d, nil
}

func positiveInt(name, raw string) (int, error) {
	n, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("invalid %s %q: %w", name, raw, err)
	}
	if n <= 0 {
		return 0, fmt.Errorf("invalid %s: must be positive, got %d", name, n)
	}
	return n, nil
}
