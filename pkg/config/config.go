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
	Service       ServiceConfig
	DB            DBConfig
	Redis         RedisConfig
	JWT           JWTConfig
	Password      PasswordConfig
	AuthRateLimit AuthRateLimitConfig
	FeatureFlags  FeatureFlagsConfig
	HTTP          HTTPConfig
	Audit         AuditConfig
	Cron          CronConfig
	Bootstrap     BootstrapConfig
}

func Load() (*Config, error) {
	var cfg Config
	if err := envconfig.Process(EnvPrefix, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}
	if err := cfg.DB.ensureDSN(); err != nil {
		return nil, err
	}
	if _, err := cfg.App.Location(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

type AppConfig struct {
	Env          string `envconfig:"GELATO_APP_ENV" required:"true"`
	Port         string `envconfig:"GELATO_APP_PORT" required:"true"`
	TimeZone     string `envconfig:"GELATO_APP_TIMEZONE" default:"Europe/Rome"`
	LogLevel     string `envconfig:"GELATO_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"GELATO_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

// Location resolves the business time zone used for day boundaries.
func (a AppConfig) Location() (*time.Location, error) {
	name := strings.TrimSpace(a.TimeZone)
	if name == "" {
		return time.UTC, nil
	}
	loc, err := time.LoadLocation(name)
	if err != nil {
		return nil, fmt.Errorf("invalid %s %q: %w", EnvTimeZone, name, err)
	}
	return loc, nil
}

type ServiceConfig struct {
	Kind string `envconfig:"GELATO_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"GELATO_DB_DSN"`
	Driver string `envconfig:"GELATO_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"GELATO_DB_HOST"`
	LegacyPort     int    `envconfig:"GELATO_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"GELATO_DB_USER"`
	LegacyPassword string `envconfig:"GELATO_DB_PASSWORD"`
	LegacyName     string `envconfig:"GELATO_DB_NAME"`
	LegacySSLMode  string `envconfig:"GELATO_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"GELATO_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"GELATO_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"GELATO_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"GELATO_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"GELATO_REDIS_URL"`
	Address      string        `envconfig:"GELATO_REDIS_ADDR"`
	Password     string        `envconfig:"GELATO_REDIS_PASSWORD"`
	DB           int           `envconfig:"GELATO_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"GELATO_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"GELATO_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"GELATO_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"GELATO_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"GELATO_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret                 string `envconfig:"GELATO_JWT_SECRET" required:"true"`
	Issuer                 string `envconfig:"GELATO_JWT_ISSUER" default:"gelato-ops"`
	ExpirationMinutes      int    `envconfig:"GELATO_JWT_EXPIRATION_MINUTES" default:"60"`
	RefreshTokenTTLMinutes int    `envconfig:"GELATO_REFRESH_TOKEN_TTL_MINUTES" default:"43200"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

// RefreshTokenTTL returns the refresh token TTL configured in minutes.
func (j JWTConfig) RefreshTokenTTL() time.Duration {
	if j.RefreshTokenTTLMinutes <= 0 {
		return 0
	}
	return time.Duration(j.RefreshTokenTTLMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"GELATO_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"GELATO_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"GELATO_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"GELATO_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"GELATO_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow     time.Duration `envconfig:"GELATO_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit int           `envconfig:"GELATO_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit    int           `envconfig:"GELATO_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	UseSQLite   bool `envconfig:"GELATO_USE_SQLITE" default:"false"`
	AutoMigrate bool `envconfig:"GELATO_AUTO_MIGRATE" default:"false"`
}

type HTTPConfig struct {
	CookieSecure   bool          `envconfig:"GELATO_COOKIE_SECURE" default:"true"`
	AllowedOrigins []string      `envconfig:"GELATO_CORS_ALLOWED_ORIGINS" default:"http://localhost:3000"`
	ReadTimeout    time.Duration `envconfig:"GELATO_HTTP_READ_TIMEOUT" default:"15s"`
	WriteTimeout   time.Duration `envconfig:"GELATO_HTTP_WRITE_TIMEOUT" default:"30s"`
}

type AuditConfig struct {
	RetentionDays int `envconfig:"GELATO_AUDIT_RETENTION_DAYS" default:"180"`
}

type CronConfig struct {
	Interval             time.Duration `envconfig:"GELATO_CRON_INTERVAL" default:"1h"`
	ProductionDigestDays int           `envconfig:"GELATO_PRODUCTION_DIGEST_DAYS" default:"7"`
	JobTimeout           time.Duration `envconfig:"GELATO_CRON_JOB_TIMEOUT" default:"10m"`
	LockTTL              time.Duration `envconfig:"GELATO_CRON_LOCK_TTL" default:"55m"`
}

// BootstrapConfig seeds the first administrator on an empty database.
type BootstrapConfig struct {
	AdminEmail    string `envconfig:"GELATO_BOOTSTRAP_ADMIN_EMAIL"`
	AdminPassword string `envconfig:"GELATO_BOOTSTRAP_ADMIN_PASSWORD"`
}

// Enabled reports whether both bootstrap credentials are present.
func (b BootstrapConfig) Enabled() bool {
	return strings.TrimSpace(b.AdminEmail) != "" && b.AdminPassword != ""
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
