package app

import (
	"flag"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

const (
	StoragePostgres = "postgres"
	StorageMongo    = "mongo"
	StorageMemory   = "memory"
)

type Config struct {
	Port             int
	Env              string
	Storage          string
	OtelCollectorUrl string
	DB               DBConfig
	Mongo            MongoConfig
	Redis            RedisConfig
	Limiter          LimiterConfig
}

type DBConfig struct {
	DSN          string
	MaxOpenConns int
	MaxIdleTime  time.Duration
}

type MongoConfig struct {
	URI         string
	Database    string
	MaxPoolSize int
	Timeout     time.Duration
}

type RedisConfig struct {
	URL          string
	MaxOpenConns int
	MaxIdleConns int
	MaxIdleTime  time.Duration
	CacheTTL     time.Duration
}

type LimiterConfig struct {
	Enabled bool
	RPS     float64
	Burst   int
}

// parseConfig reads the command line. Every flag defaults to its environment
// variable, which may come from a .env file in the working directory.
func parseConfig(fs *flag.FlagSet, args []string) (Config, bool, error) {
	_ = godotenv.Load()

	var cfg Config

	fs.IntVar(&cfg.Port, "port", envInt("PORT", 3500), "server port")
	fs.StringVar(&cfg.Env, "env", envString("APP_ENV", "dev"), "Environment (dev|staging|prod)")
	fs.StringVar(&cfg.Storage, "storage", envString("STORAGE", StorageMongo), "Storage engine (mongo|postgres|memory)")
	fs.StringVar(&cfg.OtelCollectorUrl, "otel-collector-url", envString("OTEL_COLLECTOR_URL", ""), "OpenTelemetry collector gRPC endpoint")

	fs.StringVar(&cfg.DB.DSN, "db-dsn", envString("DB_DSN", ""), "PostgreSQL DSN")
	fs.IntVar(&cfg.DB.MaxOpenConns, "db-max-open-conns", envInt("DB_MAX_OPEN_CONNS", 25), "PostgreSQL max open connections")
	fs.DurationVar(&cfg.DB.MaxIdleTime, "db-max-idle-time", envDuration("DB_MAX_IDLE_TIME", 15*time.Minute), "PostgreSQL max idle time for connections")

	fs.StringVar(&cfg.Mongo.URI, "mongo-uri", envString("MONGO_URI", "mongodb://localhost:27017"), "MongoDB connection URI")
	fs.StringVar(&cfg.Mongo.Database, "mongo-db", envString("MONGO_DB", "movies"), "MongoDB database name")
	fs.IntVar(&cfg.Mongo.MaxPoolSize, "mongo-max-pool-size", envInt("MONGO_MAX_POOL_SIZE", 25), "MongoDB max pool size")
	fs.DurationVar(&cfg.Mongo.Timeout, "mongo-timeout", envDuration("MONGO_TIMEOUT", 10*time.Second), "MongoDB operation timeout")

	fs.StringVar(&cfg.Redis.URL, "redis-url", envString("REDIS_URL", ""), "Redis address, enables the movie cache")
	fs.IntVar(&cfg.Redis.MaxOpenConns, "redis-max-open-conns", envInt("REDIS_MAX_OPEN_CONNS", 25), "Redis max open connections")
	fs.IntVar(&cfg.Redis.MaxIdleConns, "redis-max-idle-conns", envInt("REDIS_MAX_IDLE_CONNS", 10), "Redis max idle connections")
	fs.DurationVar(&cfg.Redis.MaxIdleTime, "redis-max-idle-time", envDuration("REDIS_MAX_IDLE_TIME", 2*time.Minute), "Redis max idle time for connections")
	fs.DurationVar(&cfg.Redis.CacheTTL, "cache-ttl", envDuration("CACHE_TTL", 5*time.Minute), "Movie cache entry lifetime")

	fs.BoolVar(&cfg.Limiter.Enabled, "limiter-enabled", envBool("LIMITER_ENABLED", true), "Enable rate limiter")
	fs.Float64Var(&cfg.Limiter.RPS, "limiter-rps", envFloat("LIMITER_RPS", 10), "Rate limiter maximum requests per second per client")
	fs.IntVar(&cfg.Limiter.Burst, "limiter-burst", envInt("LIMITER_BURST", 20), "Rate limiter maximum burst per client")

	displayVersion := fs.Bool("version", false, "Display version and exit")

	if err := fs.Parse(args); err != nil {
		return Config{}, false, err
	}

	return cfg, *displayVersion, nil
}

func envString(key, def string) string {
	if v, ok := os.LookupEnv(key); ok && v != "" {
		return v
	}
	return def
}

func envInt(key string, def int) int {
	if v, err := strconv.Atoi(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envFloat(key string, def float64) float64 {
	if v, err := strconv.ParseFloat(os.Getenv(key), 64); err == nil {
		return v
	}
	return def
}

func envBool(key string, def bool) bool {
	if v, err := strconv.ParseBool(os.Getenv(key)); err == nil {
		return v
	}
	return def
}

func envDuration(key string, def time.Duration) time.Duration {
	if v, err := time.ParseDuration(os.Getenv(key)); err == nil {
		return v
	}
	return def
}
