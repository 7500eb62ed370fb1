package config

import "errors"

var (
	ErrRedisAddrMissing = errors.New("REDIS_ADDR is required")
	ErrInvalidRedisDB   = errors.New("REDIS_DB must be a valid integer")

	ErrAlarmConfigMissing     = errors.New("alarm configuration is required")
	ErrInvalidTimezone        = errors.New("ALARM_TIMEZONE is not a known location")
	ErrInvalidAutoRepeat      = errors.New("ALARM_AUTO_REPEAT_INTERVAL must be positive")
	ErrInvalidSnoozeMinutes   = errors.New("ALARM_DEFAULT_SNOOZE_MINUTES must be between 1 and 1440")
	ErrInvalidDeliveryTimeout = errors.New("ALARM_DELIVERY_TIMEOUT must be positive")

	ErrUnknownPresenter       = errors.New("ALERT_PRESENTER must be one of log, gateway, telegram")
	ErrAlertGatewayURLMissing = errors.New("ALERT_GATEWAY_URL is required for the gateway presenter")
	ErrTelegramConfigMissing  = errors.New("ALERT_TELEGRAM_TOKEN and ALERT_TELEGRAM_CHAT_ID are required for the telegram presenter")

	ErrUnknownAdherenceBackend = errors.New("ADHERENCE_BACKEND must be one of sqlite, influxdb, bigquery, none")
	ErrSQLitePathMissing       = errors.New("ADHERENCE_SQLITE_PATH is required for the sqlite backend")
)
