package config

const EnvPrefix = "ORDERDESK"

const (
	AppEnvDev  = "development"
	AppEnvProd = "production"
)

const (
	EnvAppEnv          = "ORDERDESK_APP_ENV"
	EnvPort            = "ORDERDESK_APP_PORT"
	EnvCommerceBaseURL = "ORDERDESK_COMMERCE_BASE_URL"
	EnvCommerceToken   = "ORDERDESK_COMMERCE_API_TOKEN"
	EnvCommerceTimeout = "ORDERDESK_COMMERCE_TIMEOUT"
	EnvCommissionRate  = "ORDERDESK_PAYOUTS_COMMISSION_RATE"
	EnvRedisURL        = "ORDERDESK_REDIS_URL"
)
