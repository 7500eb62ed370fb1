package config

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"

	"github.com/knadh/koanf/parsers/yaml"
	"github.com/knadh/koanf/providers/confmap"
	"github.com/knadh/koanf/providers/env"
	"github.com/knadh/koanf/providers/file"
	"github.com/knadh/koanf/v2"
)

const configFileEnv = "CONFIG_FILE"

type Config struct {
	Port      string           `koanf:"port"`
	LogLevel  slog.Level       `koanf:"-"`
	RawLevel  string           `koanf:"log_level"`
	TaskQueue TaskQueueConfig  `koanf:"task_queue"`
	Redis     *RedisConfig     `koanf:"redis"`
	Alarm     *AlarmConfig     `koanf:"alarm"`
	Alert     *AlertConfig     `koanf:"alert"`
	Adherence *AdherenceConfig `koanf:"adherence"`
}

type TaskQueueConfig struct {
	PrimindTasksURL string `koanf:"primind_tasks_url"`
	QueueName       string `koanf:"queue_name"`

	GCloudProjectID  string `koanf:"gcloud_project_id"`
	GCloudLocationID string `koanf:"gcloud_location_id"`
	GCloudQueueID    string `koanf:"gcloud_queue_id"`
	GCloudTargetURL  string `koanf:"gcloud_target_url"`

	MaxRetries int `koanf:"max_retries"`
}

// envKeys maps accepted environment variables onto koanf paths.
var envKeys = map[string]string{
	"PORT":      "port",
	"LOG_LEVEL": "log_level",

	"PRIMIND_TASKS_URL":      "task_queue.primind_tasks_url",
	"TASK_QUEUE_NAME":        "task_queue.queue_name",
	"TASK_QUEUE_MAX_RETRIES": "task_queue.max_retries",
	"GCLOUD_PROJECT_ID":      "task_queue.gcloud_project_id",
	"GCLOUD_LOCATION_ID":     "task_queue.gcloud_location_id",
	"GCLOUD_QUEUE_ID":        "task_queue.gcloud_queue_id",
	"GCLOUD_TARGET_URL":      "task_queue.gcloud_target_url",

	redisAddrEnv:     "redis.addr",
	redisPasswordEnv: "redis.password",
	redisDBEnv:       "redis.db",
	redisTLSEnv:      "redis.tls",

	"ALARM_TIMEZONE":               "alarm.timezone",
	"ALARM_AUTO_REPEAT_INTERVAL":   "alarm.auto_repeat_interval",
	"ALARM_DEFAULT_SNOOZE_MINUTES": "alarm.default_snooze_minutes",
	"ALARM_DELIVERY_TIMEOUT":       "alarm.delivery_timeout",
	"ALARM_SETTLE_DELAY":           "alarm.settle_delay",

	"ALERT_PRESENTER":        "alert.presenter",
	"ALERT_GATEWAY_URL":      "alert.gateway_url",
	"ALERT_TELEGRAM_TOKEN":   "alert.telegram_token",
	"ALERT_TELEGRAM_CHAT_ID": "alert.telegram_chat_id",

	"ADHERENCE_BACKEND":     "adherence.backend",
	"ADHERENCE_SQLITE_PATH": "adherence.sqlite_path",
	"INFLUXDB_URL":          "adherence.influxdb_url",
	"INFLUXDB_TOKEN":        "adherence.influxdb_token",
	"INFLUXDB_ORG":          "adherence.influxdb_org",
	"INFLUXDB_BUCKET":       "adherence.influxdb_bucket",
	"BIGQUERY_PROJECT_ID":   "adherence.bigquery_project_id",
	"BIGQUERY_DATASET":      "adherence.bigquery_dataset",
	"BIGQUERY_TABLE":        "adherence.bigquery_table",
}

func defaults() map[string]any {
	return map[string]any{
		"port":      "8080",
		"log_level": "info",

		"task_queue.queue_name":  "default",
		"task_queue.max_retries": 3,

		"redis.addr": defaultRedisAddr,
		"redis.db":   defaultRedisDB,

		"alarm.timezone":               "Local",
		"alarm.auto_repeat_interval":   defaultAutoRepeatInterval,
		"alarm.default_snooze_minutes": defaultSnoozeMinutes,
		"alarm.delivery_timeout":       defaultDeliveryTimeout,
		"alarm.settle_delay":           defaultSettleDelay,

		"alert.presenter": string(PresenterLog),

		"adherence.backend":          string(AdherenceSQLite),
		"adherence.sqlite_path":      "adherence.db",
		"adherence.influxdb_url":     "http://localhost:8086",
		"adherence.influxdb_bucket":  "adherence",
		"adherence.bigquery_dataset": "medication",
		"adherence.bigquery_table":   "adherence_log",
	}
}

// Load layers built-in defaults, the optional YAML file named by
// CONFIG_FILE and the process environment, in that order.
func Load() (*Config, error) {
	return load(os.Getenv(configFileEnv))
}

// LoadFrom is Load with an explicit config file. An empty path falls back
// to CONFIG_FILE.
func LoadFrom(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(configFileEnv)
	}
	return load(path)
}

func load(path string) (*Config, error) {
	k := koanf.New(".")

	if err := k.Load(confmap.Provider(defaults(), "."), nil); err != nil {
		return nil, fmt.Errorf("failed to load defaults: %w", err)
	}

	if path != "" {
		if err := k.Load(file.Provider(path), yaml.Parser()); err != nil {
			return nil, fmt.Errorf("failed to load config file %s: %w", path, err)
		}
	}

	if err := k.Load(env.Provider("", ".", func(s string) string {
		return envKeys[s]
	}), nil); err != nil {
		return nil, fmt.Errorf("failed to load environment: %w", err)
	}

	if raw := k.String("redis.db"); raw != "" {
		if _, err := strconv.Atoi(raw); err != nil {
			return nil, ErrInvalidRedisDB
		}
	}

	cfg := &Config{
		Redis:     &RedisConfig{},
		Alarm:     &AlarmConfig{},
		Alert:     &AlertConfig{},
		Adherence: &AdherenceConfig{},
	}
	if err := k.Unmarshal("", cfg); err != nil {
		return nil, fmt.Errorf("failed to decode configuration: %w", err)
	}

	cfg.LogLevel = parseLogLevel(cfg.RawLevel)
	if cfg.TaskQueue.MaxRetries <= 0 {
		cfg.TaskQueue.MaxRetries = 3
	}
	if cfg.TaskQueue.QueueName == "" {
		cfg.TaskQueue.QueueName = "default"
	}

	return cfg, nil
}

func (c *Config) Validate() error {
	if err := c.Redis.Validate(); err != nil {
		return err
	}
	if err := c.Alarm.Validate(); err != nil {
		return err
	}
	if err := c.Alert.Validate(); err != nil {
		return err
	}
	return c.Adherence.Validate()
}

func parseLogLevel(level string) slog.Level {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug
	case "info":
		return slog.LevelInfo
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}
