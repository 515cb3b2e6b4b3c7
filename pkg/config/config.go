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
	FeatureFlags  FeatureFlagsConfig
	CORS          CORSConfig
	Frontend      FrontendConfig
	Stripe        StripeConfig
	Sendgrid      SendgridConfig
	GCP           GCPConfig
	PubSub        PubSubConfig
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
	Env          string `envconfig:"BOREALIS_APP_ENV" required:"true"`
	Port         string `envconfig:"BOREALIS_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"BOREALIS_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"BOREALIS_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN string `envconfig:"BOREALIS_DB_DSN"`

	LegacyHost     string `envconfig:"BOREALIS_DB_HOST"`
	LegacyPort     int    `envconfig:"BOREALIS_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"BOREALIS_DB_USER"`
	LegacyPassword string `envconfig:"BOREALIS_DB_PASSWORD"`
	LegacyName     string `envconfig:"BOREALIS_DB_NAME"`
	LegacySSLMode  string `envconfig:"BOREALIS_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"BOREALIS_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"BOREALIS_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"BOREALIS_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"BOREALIS_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

type RedisConfig struct {
	URL          string        `envconfig:"BOREALIS_REDIS_URL"`
	Address      string        `envconfig:"BOREALIS_REDIS_ADDR"`
	Password     string        `envconfig:"BOREALIS_REDIS_PASSWORD"`
	DB           int           `envconfig:"BOREALIS_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"BOREALIS_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"BOREALIS_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"BOREALIS_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"BOREALIS_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"BOREALIS_REDIS_WRITE_TIMEOUT" default:"5s"`
}

// Enabled reports whether a Redis endpoint was configured.
func (r RedisConfig) Enabled() bool {
	return strings.TrimSpace(r.URL) != "" || strings.TrimSpace(r.Address) != ""
}

type JWTConfig struct {
	Secret            string `envconfig:"BOREALIS_JWT_SECRET" required:"true"`
	Issuer            string `envconfig:"BOREALIS_JWT_ISSUER" default:"borealis"`
	ExpirationMinutes int    `envconfig:"BOREALIS_JWT_EXPIRATION_MINUTES" default:"43200"`
}

// TTL returns the access token lifetime.
func (j JWTConfig) TTL() time.Duration {
	if j.ExpirationMinutes <= 0 {
		return 0
	}
	return time.Duration(j.ExpirationMinutes) * time.Minute
}

type PasswordConfig struct {
	ArgonMemoryKB    int           `envconfig:"BOREALIS_ARGON_MEMORY_KB" default:"65536"`
	ArgonTime        int           `envconfig:"BOREALIS_ARGON_TIME" default:"3"`
	ArgonParallelism int           `envconfig:"BOREALIS_ARGON_PARALLELISM" default:"2"`
	ArgonSaltLen     int           `envconfig:"BOREALIS_ARGON_SALT_LEN" default:"16"`
	ArgonKeyLen      int           `envconfig:"BOREALIS_ARGON_KEY_LEN" default:"32"`
	ResetTokenTTL    time.Duration `envconfig:"BOREALIS_PASSWORD_RESET_TTL" default:"1h"`
}

type AuthRateLimitConfig struct {
	LoginWindow        time.Duration `envconfig:"BOREALIS_AUTH_RATE_LIMIT_LOGIN_WINDOW" default:"1m"`
	LoginEmailLimit    int           `envconfig:"BOREALIS_AUTH_RATE_LIMIT_LOGIN_EMAIL_LIMIT" default:"5"`
	LoginIPLimit       int           `envconfig:"BOREALIS_AUTH_RATE_LIMIT_LOGIN_IP_LIMIT" default:"20"`
	RegisterWindow     time.Duration `envconfig:"BOREALIS_AUTH_RATE_LIMIT_REGISTER_WINDOW" default:"5m"`
	RegisterEmailLimit int           `envconfig:"BOREALIS_AUTH_RATE_LIMIT_REGISTER_EMAIL_LIMIT" default:"3"`
	RegisterIPLimit    int           `envconfig:"BOREALIS_AUTH_RATE_LIMIT_REGISTER_IP_LIMIT" default:"20"`
	ForgotWindow       time.Duration `envconfig:"BOREALIS_AUTH_RATE_LIMIT_FORGOT_WINDOW" default:"15m"`
	ForgotEmailLimit   int           `envconfig:"BOREALIS_AUTH_RATE_LIMIT_FORGOT_EMAIL_LIMIT" default:"3"`
	ForgotIPLimit      int           `envconfig:"BOREALIS_AUTH_RATE_LIMIT_FORGOT_IP_LIMIT" default:"10"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"BOREALIS_AUTO_MIGRATE" default:"false"`
}

type CORSConfig struct {
	AllowedOrigins []string `envconfig:"BOREALIS_CORS_ALLOWED_ORIGINS" default:"*"`
}

type FrontendConfig struct {
	BaseURL           string `envconfig:"BOREALIS_FRONTEND_BASE_URL" default:"http://127.0.0.1:5500"`
	ResetPasswordPath string `envconfig:"BOREALIS_FRONTEND_RESET_PATH" default:"/reset-password.html"`
}

// ResetPasswordURL builds the link mailed to users requesting a reset.
func (f FrontendConfig) ResetPasswordURL(token string) string {
	base := strings.TrimRight(strings.TrimSpace(f.BaseURL), "/")
	path := "/" + strings.TrimLeft(strings.TrimSpace(f.ResetPasswordPath), "/")
	return base + path + "?token=" + url.QueryEscape(token)
}

type StripeConfig struct {
	APIKey   string `envconfig:"BOREALIS_STRIPE_SECRET_KEY"`
	Env      string `envconfig:"BOREALIS_STRIPE_ENV" default:"test"`
	Currency string `envconfig:"BOREALIS_STRIPE_CURRENCY" default:"usd"`
}

// Environment returns the normalized Stripe environment (test/live).
func (s StripeConfig) Environment() string {
	env := strings.TrimSpace(strings.ToLower(s.Env))
	if env == "" {
		return "test"
	}
	return env
}

type SendgridConfig struct {
	APIKey      string `envconfig:"BOREALIS_SENDGRID_API_KEY"`
	DefaultFrom string `envconfig:"BOREALIS_SENDGRID_FROM_EMAIL" default:"info@gourideche.com"`
	FromName    string `envconfig:"BOREALIS_SENDGRID_FROM_NAME" default:"Borealis"`
}

type GCPConfig struct {
	ProjectID string `envconfig:"BOREALIS_GCP_PROJECT_ID"`
}

type PubSubConfig struct {
	OrdersTopic string `envconfig:"BOREALIS_PUBSUB_ORDERS_TOPIC"`
}

// Enabled reports whether order events should be published.
func (p PubSubConfig) Enabled() bool {
	return strings.TrimSpace(p.OrdersTopic) != ""
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
