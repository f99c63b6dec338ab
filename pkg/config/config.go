package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App      AppConfig
	DB       DBConfig
	Redis    RedisConfig
	JWT      JWTConfig
	Password PasswordConfig
	Booking  BookingConfig
	Seed     SeedConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"WANDERSTAY_APP_ENV" required:"true"`
	Port         string `envconfig:"WANDERSTAY_APP_PORT" default:"8080"`
	LogLevel     string `envconfig:"WANDERSTAY_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"WANDERSTAY_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"WANDERSTAY_DB_DSN"`
	Driver string `envconfig:"WANDERSTAY_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"WANDERSTAY_DB_HOST"`
	LegacyPort     int    `envconfig:"WANDERSTAY_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"WANDERSTAY_DB_USER"`
	LegacyPassword string `envconfig:"WANDERSTAY_DB_PASSWORD"`
	LegacyName     string `envconfig:"WANDERSTAY_DB_NAME"`
	LegacySSLMode  string `envconfig:"WANDERSTAY_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"WANDERSTAY_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"WANDERSTAY_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"WANDERSTAY_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"WANDERSTAY_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate   bool   `envconfig:"WANDERSTAY_DB_AUTO_MIGRATE" default:"false"`
	MigrationsDir string `envconfig:"WANDERSTAY_DB_MIGRATIONS_DIR" default:"pkg/migrate/migrations"`
}

// ensureDSN builds the postgres DSN from the legacy host/user parts when a
// full DSN is not supplied.
func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either WANDERSTAY_DB_DSN or WANDERSTAY_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.LegacyUser),
		url.QueryEscape(d.LegacyPassword),
		d.LegacyHost,
		d.LegacyPort,
		url.PathEscape(d.LegacyName),
		url.QueryEscape(d.LegacySSLMode),
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"WANDERSTAY_REDIS_URL"`
	Address      string        `envconfig:"WANDERSTAY_REDIS_ADDR"`
	Password     string        `envconfig:"WANDERSTAY_REDIS_PASSWORD"`
	DB           int           `envconfig:"WANDERSTAY_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"WANDERSTAY_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"WANDERSTAY_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"WANDERSTAY_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"WANDERSTAY_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"WANDERSTAY_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"WANDERSTAY_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"WANDERSTAY_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"WANDERSTAY_JWT_EXPIRATION_MINUTES" default:"60"`
}

// AccessTokenTTL returns the configured access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"WANDERSTAY_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"WANDERSTAY_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"WANDERSTAY_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"WANDERSTAY_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"WANDERSTAY_ARGON_KEY_LEN" default:"32"`
}

type BookingConfig struct {
	// AutoConfirm creates bookings directly in the confirmed state instead of
	// pending.
	AutoConfirm    bool          `envconfig:"WANDERSTAY_BOOKING_AUTO_CONFIRM" default:"false"`
	IdempotencyTTL time.Duration `envconfig:"WANDERSTAY_BOOKING_IDEMPOTENCY_TTL" default:"24h"`
}

type SeedConfig struct {
	Hotels        int `envconfig:"WANDERSTAY_SEED_HOTELS" default:"5"`
	LocationsPer  int `envconfig:"WANDERSTAY_SEED_LOCATIONS_PER_HOTEL" default:"2"`
	RoomTypesPer  int `envconfig:"WANDERSTAY_SEED_ROOM_TYPES_PER_LOCATION" default:"3"`
	Guests        int `envconfig:"WANDERSTAY_SEED_GUESTS" default:"20"`
	InventoryDays int `envconfig:"WANDERSTAY_SEED_INVENTORY_DAYS" default:"90"`
}
