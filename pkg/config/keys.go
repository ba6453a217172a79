package config

// EnvPrefix namespaces every environment variable the service reads.
const EnvPrefix = "FLIXCATALOG"

const (
	AppEnvDev  = "dev"
	AppEnvProd = "production"
)

const (
	EnvAppEnv   = "FLIXCATALOG_APP_ENV"
	EnvPort     = "FLIXCATALOG_APP_PORT"
	EnvLogLevel = "FLIXCATALOG_LOG_LEVEL"

	EnvDBDSN  = "FLIXCATALOG_DB_DSN"
	EnvDBHost = "FLIXCATALOG_DB_HOST"
	EnvDBUser = "FLIXCATALOG_DB_USER"
	EnvDBName = "FLIXCATALOG_DB_NAME"

	EnvRedisURL = "FLIXCATALOG_REDIS_URL"

	EnvGCPProjectID    = "FLIXCATALOG_GCP_PROJECT_ID"
	EnvGCSBucket       = "FLIXCATALOG_GCS_BUCKET_NAME"
	EnvGCSUploadExpiry = "FLIXCATALOG_GCS_UPLOAD_URL_EXPIRY"

	EnvPubSubMediaEventsTopic    = "FLIXCATALOG_PUBSUB_MEDIA_EVENTS_TOPIC"
	EnvPubSubEncodedSubscription = "FLIXCATALOG_PUBSUB_ENCODED_SUBSCRIPTION"
)

var legacyDBEnvVars = []string{EnvDBHost, EnvDBUser, EnvDBName}
