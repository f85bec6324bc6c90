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
	SMTP          SMTPConfig
	Enrollment    EnrollmentConfig
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
	Env          string `envconfig:"INLINE_APP_ENV" required:"true"`
	Port         string `envconfig:"INLINE_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"INLINE_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"INLINE_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"INLINE_DB_DSN"`
	Driver string `envconfig:"INLINE_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"INLINE_DB_HOST"`
	LegacyPort     int    `envconfig:"INLINE_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"INLINE_DB_USER"`
	LegacyPassword string `envconfig:"INLINE_DB_PASSWORD"`
	LegacyName     string `envconfig:"INLINE_DB_NAME"`
	LegacySSLMode  string `envconfig:"INLINE_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"INLINE_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"INLINE_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"INLINE_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"INLINE_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"INLINE_REDIS_URL" required:"true"`
	Address      string        `envconfig:"INLINE_REDIS_ADDR"`
	Password     string        `envconfig:"INLINE_REDIS_PASSWORD"`
	DB           int           `envconfig:"INLINE_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"INLINE_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"INLINE_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"INLINE_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"INLINE_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"INLINE_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"INLINE_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"INLINE_JWT_ISSUER" required:"true"`
	ExpirationMinutes int    `envconfig:"INLINE_JWT_EXPIRATION_MINUTES" required:"true"`
}

type PasswordConfig struct {
	ArgonMemoryKB    int `envconfig:"INLINE_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int `envconfig:"INLINE_ARGON_TIME" default:"3"`
	ArgonParallelism int `envconfig:"INLINE_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int `envconfig:"INLINE_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int `envconfig:"INLINE_ARGON_KEY_LEN" default:"32"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"INLINE_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"INLINE_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"INLINE_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"INLINE_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"INLINE_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"INLINE_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
}

type SMTPConfig struct {
	Host        string        `envconfig:"INLINE_SMTP_HOST" required:"true"`
	Port        int           `envconfig:"INLINE_SMTP_PORT" default:"587"`
	Username    string        `envconfig:"INLINE_SMTP_USERNAME"`
	Password    string        `envconfig:"INLINE_SMTP_PASSWORD"`
	FromAddress string        `envconfig:"INLINE_SMTP_FROM" required:"true"`
	FromName    string        `envconfig:"INLINE_SMTP_FROM_NAME" default:"Happy InLine"`
	Timeout     time.Duration `envconfig:"INLINE_SMTP_TIMEOUT" default:"15s"`
	DisableTLS  bool          `envconfig:"INLINE_SMTP_DISABLE_TLS" default:"false"`
}

// Addr returns host:port for dialing the relay.
func (s SMTPConfig) Addr() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

type EnrollmentConfig struct {
	// HardCap runs the license-count check and staff insert inside a
	// transaction holding the owner profile row lock. Off by default to
	// match the original soft-cap behavior.
	HardCap        bool `envconfig:"INLINE_ENROLLMENT_HARD_CAP" default:"false"`
	TempPasswordLn int  `envconfig:"INLINE_ENROLLMENT_TEMP_PASSWORD_LEN" default:"16"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"INLINE_AUTO_MIGRATE" default:"false"`
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
