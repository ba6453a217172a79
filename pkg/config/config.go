package config

import (
	"fmt"
	"net/url"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	App     AppConfig
	Service ServiceConfig
	DB      DBConfig
	Redis   RedisConfig
	GCP     GCPConfig
	GCS     GCSConfig
	Media   MediaConfig
	PubSub  PubSubConfig
	HTTP    HTTPConfig
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
	Env          string `envconfig:"FLIXCATALOG_APP_ENV" required:"true"`
	Port         string `envconfig:"FLIXCATALOG_APP_PORT" required:"true"`
	LogLevel     string `envconfig:"FLIXCATALOG_LOG_LEVEL" default:"info"`
	LogWarnStack bool   `envconfig:"FLIXCATALOG_LOG_WARN_STACK" default:"false"`
}

func (a AppConfig) IsDev() bool {
	return strings.EqualFold(a.Env, AppEnvDev)
}

func (a AppConfig) IsProd() bool {
	return strings.EqualFold(a.Env, AppEnvProd)
}

type ServiceConfig struct {
	Kind string `envconfig:"FLIXCATALOG_SERVICE_KIND" default:"api"`
}

type DBConfig struct {
	DSN    string `envconfig:"FLIXCATALOG_DB_DSN"`
	Driver string `envconfig:"FLIXCATALOG_DB_DRIVER" default:"postgres"`

	LegacyHost     string `envconfig:"FLIXCATALOG_DB_HOST"`
	LegacyPort     int    `envconfig:"FLIXCATALOG_DB_PORT" default:"5432"`
	LegacyUser     string `envconfig:"FLIXCATALOG_DB_USER"`
	LegacyPassword string `envconfig:"FLIXCATALOG_DB_PASSWORD"`
	LegacyName     string `envconfig:"FLIXCATALOG_DB_NAME"`
	LegacySSLMode  string `envconfig:"FLIXCATALOG_DB_SSLMODE" default:"disable"`

	MaxOpenConns    int           `envconfig:"FLIXCATALOG_DB_MAX_OPEN_CONNS" default:"20"`
	MaxIdleConns    int           `envconfig:"FLIXCATALOG_DB_MAX_IDLE_CONNS" default:"10"`
	ConnMaxLifetime time.Duration `envconfig:"FLIXCATALOG_DB_CONN_MAX_LIFETIME" default:"1h"`
	ConnMaxIdleTime time.Duration `envconfig:"FLIXCATALOG_DB_CONN_MAX_IDLE_TIME" default:"10m"`

	AutoMigrate bool `envconfig:"FLIXCATALOG_AUTO_MIGRATE" default:"false"`
}

type RedisConfig struct {
	URL          string        `envconfig:"FLIXCATALOG_REDIS_URL" required:"true"`
	Address      string        `envconfig:"FLIXCATALOG_REDIS_ADDR"`
	Password     string        `envconfig:"FLIXCATALOG_REDIS_PASSWORD"`
	DB           int           `envconfig:"FLIXCATALOG_REDIS_DB" default:"0"`
	PoolSize     int           `envconfig:"FLIXCATALOG_REDIS_POOL_SIZE" default:"10"`
	MinIdleConns int           `envconfig:"FLIXCATALOG_REDIS_MIN_IDLE_CONNS" default:"2"`
	DialTimeout  time.Duration `envconfig:"FLIXCATALOG_REDIS_DIAL_TIMEOUT" default:"5s"`
	ReadTimeout  time.Duration `envconfig:"FLIXCATALOG_REDIS_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"FLIXCATALOG_REDIS_WRITE_TIMEOUT" default:"5s"`
}

type GCPConfig struct {
	ProjectID              string `envconfig:"FLIXCATALOG_GCP_PROJECT_ID" required:"true"`
	CredentialsJSON        string `envconfig:"FLIXCATALOG_GCP_CREDENTIALS_JSON"`
	ApplicationCredentials string `envconfig:"FLIXCATALOG_GOOGLE_APPLICATION_CREDENTIALS"`
}

type GCSConfig struct {
	BucketName        string        `envconfig:"FLIXCATALOG_GCS_BUCKET_NAME" required:"true"`
	UploadURLExpiry   time.Duration `envconfig:"FLIXCATALOG_GCS_UPLOAD_URL_EXPIRY" default:"15m"`
	DownloadURLExpiry time.Duration `envconfig:"FLIXCATALOG_GCS_DOWNLOAD_URL_EXPIRY" default:"24h"`
}

type MediaConfig struct {
	MaxImageUploadMB int `envconfig:"FLIXCATALOG_MEDIA_MAX_IMAGE_UPLOAD_MB" default:"10"`
	MaxVideoUploadMB int `envconfig:"FLIXCATALOG_MEDIA_MAX_VIDEO_UPLOAD_MB" default:"51200"`
}

type HTTPConfig struct {
	ExtraCORSOrigins []string `envconfig:"FLIXCATALOG_HTTP_EXTRA_CORS_ORIGINS"`
}

type PubSubConfig struct {
	MediaEventsTopic    string `envconfig:"FLIXCATALOG_PUBSUB_MEDIA_EVENTS_TOPIC" required:"true"`
	EncodedSubscription string `envconfig:"FLIXCATALOG_PUBSUB_ENCODED_SUBSCRIPTION" required:"true"`
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
