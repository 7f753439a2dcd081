package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

const (
	// EnvPrefix namespaces every environment variable the app reads.
	EnvPrefix = "hospinv"

	AppEnvDev  = "dev"
	AppEnvProd = "prod"

	EnvDBDSN  = "HOSPINV_DB_DSN"
	EnvDBHost = "HOSPINV_DB_HOST"
	EnvDBUser = "HOSPINV_DB_USER"
	EnvDBName = "HOSPINV_DB_NAME"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}

type Config struct {
	App          AppConfig
	DB           DBConfig
	ImgBB        ImgBBConfig
	Uploads      UploadsConfig
	CORS         CORSConfig
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
	Env          string `envconfig:"HOSPINV_APP_ENV" required:"true"`
	Port         string `envconfig:"HOSPINV_APP_PORT" default:"3000"`
	LogLevel     string `envconfig:"HOSPINV_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"HOSPINV_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type DBConfig struct {
	DSN    string `envconfig:"HOSPINV_DB_DSN"`
	Driver string `envconfig:"HOSPINV_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"HOSPINV_DB_HOST"`
	LegacyPort     int    `envconfig:"HOSPINV_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"HOSPINV_DB_USER"`
	LegacyPassword string `envconfig:"HOSPINV_DB_PASSWORD"`
	LegacyName     string `envconfig:"HOSPINV_DB_NAME"`
	LegacySSLMode  string `envconfig:"HOSPINV_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"HOSPINV_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"HOSPINV_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"HOSPINV_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"HOSPINV_DB_CONN_MAX_IDLE_TIME" default:"10m"`
}

// ImgBBConfig configures the external image host. When the key is empty the
// app stores uploads on local disk instead.
type ImgBBConfig struct {
	APIKey  string        `envconfig:"HOSPINV_IMGBB_API_KEY"`
	BaseURL string        `envconfig:"HOSPINV_IMGBB_BASE_URL" default:"https://api.imgbb.com/1/upload"`
	Timeout time.Duration `envconfig:"HOSPINV_IMGBB_TIMEOUT" default:"15s"`
}

type UploadsConfig struct {
	Dir         string `envconfig:"HOSPINV_UPLOADS_DIR" default:"uploads"`
	MaxUploadMB int    `envconfig:"HOSPINV_MAX_UPLOAD_MB" default:"5"`
}

// MaxUploadBytes returns the configured upload cap in bytes.
func (u UploadsConfig) MaxUploadBytes() int64 {
	return int64(u.MaxUploadMB) << 20
}

// CORSConfig lists the origins allowed to call the API. The tracker serves a
// single-page frontend from another host, so the default stays open.
type CORSConfig struct {
	AllowedOrigins []string `envconfig:"HOSPINV_CORS_ORIGINS" default:"*"`
}

type FeatureFlagsConfig struct {
	AutoMigrate bool `envconfig:"HOSPINV_AUTO_MIGRATE" default:"false"`
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
