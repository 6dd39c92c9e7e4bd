package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App          AppConfig
	DB           DBConfig
	Redis        RedisConfig
	JWT          JWTConfig
	OTP          OTPConfig
	SMS          SMSConfig
	GoogleMaps   GoogleMapsConfig
	Postal       PostalConfig
	AuthRate     AuthRateLimitConfig
	FeatureFlags FeatureFlagsConfig
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
	Env          string   `envconfig:"FIELDCRM_APP_ENV" required:"true"`
	Port         string   `envconfig:"FIELDCRM_APP_PORT" default:"8080"`
	LogLevel     string   `envconfig:"FIELDCRM_LOG_LEVEL" default:"info"`
	LogWarnStack bool     `envconfig:"FIELDCRM_LOG_WARN_STACK" default:"false"`
	CORSOrigins  []string `envconfig:"FIELDCRM_CORS_ORIGINS"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"FIELDCRM_DB_DSN"`
	Driver string `envconfig:"FIELDCRM_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FIELDCRM_DB_HOST"`
	LegacyPort     int    `envconfig:"FIELDCRM_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FIELDCRM_DB_USER"`
	LegacyPassword string `envconfig:"FIELDCRM_DB_PASSWORD"`
	LegacyName     string `envconfig:"FIELDCRM_DB_NAME"`
	LegacySSLMode  string `envconfig:"FIELDCRM_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FIELDCRM_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FIELDCRM_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FIELDCRM_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FIELDCRM_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

func (d *DBConfig) ensureDSN() error {
	if d.DSN != "" {
		return nil
	}
	if d.LegacyHost == "" || d.LegacyUser == "" || d.LegacyName == "" {
		return fmt.Errorf("either FIELDCRM_DB_DSN or FIELDCRM_DB_HOST/USER/NAME must be set")
	}
	d.DSN = fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		url.QueryEscape(d.LegacyUser),
		url.QueryEscape(d.LegacyPassword),
		d.LegacyHost,
		d.LegacyPort,
		d.LegacyName,
		d.LegacySSLMode,
	)
	return nil
}

type RedisConfig struct {
	URL          string        `envconfig:"FIELDCRM_REDIS_URL"`
	Address      string        `envconfig:"FIELDCRM_REDIS_ADDR"`
	Password     string        `envconfig:"FIELDCRM_REDIS_PASSWORD"`
	DB           int           `envconfig:"FIELDCRM_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FIELDCRM_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FIELDCRM_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FIELDCRM_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FIELDCRM_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FIELDCRM_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type JWTConfig struct {
	Secret            string `envconfig:"FIELDCRM_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"FIELDCRM_JWT_ISSUER" default:"fieldcrm"`
	ExpirationMinutes int    `envconfig:"FIELDCRM_JWT_EXPIRATION_MINUTES" default:"10080"`
}

// AccessTokenTTL returns the access token lifetime.
func (j JWTConfig) AccessTokenTTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type OTPConfig struct {
	TTL          time.Duration `envconfig:"FIELDCRM_OTP_TTL" default:"5m"`
	ResendAfter  time.Duration `envconfig:"FIELDCRM_OTP_RESEND_AFTER" default:"1m"`
	VerifiedTTL  time.Duration `envconfig:"FIELDCRM_OTP_VERIFIED_TTL" default:"15m"`
	ArgonMemory  int           `envconfig:"FIELDCRM_OTP_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime    int           `envconfig:"FIELDCRM_OTP_ARGON_TIME" default:"3"`
	ArgonThreads int           `envconfig:"FIELDCRM_OTP_ARGON_PARALLELISM" default:"2"`
}

type SMSConfig struct {
	UseMock     bool   `envconfig:"FIELDCRM_SMS_USE_MOCK" default:"true"`
	AccountSID  string `envconfig:"FIELDCRM_TWILIO_ACCOUNT_SID"`
	AuthToken   string `envconfig:"FIELDCRM_TWILIO_AUTH_TOKEN"`
	FromNumber  string `envconfig:"FIELDCRM_TWILIO_FROM_NUMBER"`
	CountryCode string `envconfig:"FIELDCRM_SMS_COUNTRY_CODE" default:"+91"`
}

type GoogleMapsConfig struct {
	APIKey       string        `envconfig:"FIELDCRM_GOOGLE_MAPS_API_KEY"`
	SearchRadius int           `envconfig:"FIELDCRM_PLACES_SEARCH_RADIUS" default:"5000"`
	CallInterval time.Duration `envconfig:"FIELDCRM_PLACES_CALL_INTERVAL" default:"200ms"`
}

type PostalConfig struct {
	BaseURL string        `envconfig:"FIELDCRM_POSTAL_BASE_URL" default:"https://api.postalpincode.in"`
	Timeout time.Duration `envconfig:"FIELDCRM_POSTAL_TIMEOUT" default:"5s"`
}

type AuthRateLimitConfig struct {
	OTPWindow     time.Duration `envconfig:"FIELDCRM_AUTH_RATE_LIMIT_OTP_WINDOW" default:"1m"`
	OTPPhoneLimit int           `envconfig:"FIELDCRM_AUTH_RATE_LIMIT_OTP_PHONE_LIMIT" default:"3"`
	OTPIPLimit    int           `envconfig:"FIELDCRM_AUTH_RATE_LIMIT_OTP_IP_LIMIT" default:"20"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"FIELDCRM_AUTO_MIGRATE" default:"false"`
}
