package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App           AppConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	Inventory     InventoryConfig
	FeatureFlags  FeatureFlagsConfig
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
	Env          string `envconfig:"GARAGE_APP_ENV" required:"true"`
	Port         string `envconfig:"GARAGE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"GARAGE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GARAGE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"GARAGE_DB_DSN"`
	Driver string `envconfig:"GARAGE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GARAGE_DB_HOST"`
	LegacyPort     int    `envconfig:"GARAGE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GARAGE_DB_USER"`
	LegacyPassword string `envconfig:"GARAGE_DB_PASSWORD"`
	LegacyName     string `envconfig:"GARAGE_DB_NAME"`
	LegacySSLMode  string `envconfig:"GARAGE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GARAGE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GARAGE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GARAGE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GARAGE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GARAGE_REDIS_URL" required:"true"`
	Password     string        `envconfig:"GARAGE_REDIS_PASSWORD"`
	DB           int           `envconfig:"GARAGE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GARAGE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GARAGE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GARAGE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GARAGE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GARAGE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GARAGE_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GARAGE_JWT_ISSUER" required:"true"`
	ExpirationMinutes      int    `envconfig:"GARAGE_JWT_EXPIRATION_MINUTES" required:"true"`
	RefreshTokenTTLMinutes int    `envconfig:"GARAGE_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GARAGE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GARAGE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GARAGE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GARAGE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GARAGE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"GARAGE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"GARAGE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"GARAGE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type InventoryConfig struct {
	// DefaultMinStockLevel seeds parts created without an explicit reorder floor.
	DefaultMinStockLevel int `envconfig:"GARAGE_INVENTORY_DEFAULT_MIN_STOCK" default:"0"`
	MovementPageSize     int `envconfig:"GARAGE_INVENTORY_MOVEMENT_PAGE_SIZE" default:"50"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GARAGE_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GARAGE_AUTO_MIGRATE" default:"false"`
	SeedOnBoot  bool `envconfig:"GARAGE_SEED_ON_BOOT" default:"false"`
}

func (db *DBConfig) ensureDSN() error {
	if db.DSN != "" {
		return nil
	}

	missing := []string{}
	legacyValues := map[string]string{
		EnvDBHost: db.LegacyHost,
		EnvDBUser: db.LegacyUser,
		EnvDBName: db.LegacyName,
	}
	for _, env := range legacyDBEnvVars {
		if legacyValues[env] == "" {
			missing = append(missing, env)
		}
	}

	if len(missing) > 0 {
		return fmt.Errorf("either %s or %s are required", EnvDBDSN, strings.Join(missing, ", "))
	}

	userInfo := url.User(db.LegacyUser)
	if db.LegacyPassword != "" {
		userInfo = url.UserPassword(db.LegacyUser, db.LegacyPassword)
	}

	u := &url.URL{
		Scheme: "postgres",
		User:   userInfo,
		Host:   fmt.Sprintf("%s:%d", db.LegacyHost, db.LegacyPort),
		Path:   db.LegacyName,
	}

	if db.LegacySSLMode != "" {
		q := u.Query()
		q.Set("sslmode", db.LegacySSLMode)
		u.RawQuery = q.Encode()
	}

	db.DSN = u.String()
	return nil
}
