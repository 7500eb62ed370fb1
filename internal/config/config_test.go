package config

import (
	"errors"
	"log/slog"
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("expected port 8080, got %q", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelInfo {
		t.Errorf("expected info level, got %v", cfg.LogLevel)
	}
	if cfg.Redis.Addr != defaultRedisAddr {
		t.Errorf("expected redis addr %q, got %q", defaultRedisAddr, cfg.Redis.Addr)
	}
	if cfg.Alarm.AutoRepeatInterval != time.Minute {
		t.Errorf("expected auto repeat 1m, got %v", cfg.Alarm.AutoRepeatInterval)
	}
	if cfg.Alarm.DefaultSnoozeMinutes != 5 {
		t.Errorf("expected default snooze 5, got %d", cfg.Alarm.DefaultSnoozeMinutes)
	}
	if cfg.Alarm.DeliveryTimeout != 15*time.Second {
		t.Errorf("expected delivery timeout 15s, got %v", cfg.Alarm.DeliveryTimeout)
	}
	if cfg.Alarm.SettleDelay != 500*time.Millisecond {
		t.Errorf("expected settle delay 500ms, got %v", cfg.Alarm.SettleDelay)
	}
	if cfg.Alert.Presenter != PresenterLog {
		t.Errorf("expected log presenter, got %q", cfg.Alert.Presenter)
	}
	if cfg.Adherence.Backend != AdherenceSQLite {
		t.Errorf("expected sqlite backend, got %q", cfg.Adherence.Backend)
	}
	if cfg.TaskQueue.QueueName != "default" || cfg.TaskQueue.MaxRetries != 3 {
		t.Errorf("unexpected task queue defaults: %+v", cfg.TaskQueue)
	}

	if err := cfg.Validate(); err != nil {
		t.Errorf("defaults should validate, got %v", err)
	}
}

func TestLoadEnvironmentOverrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("LOG_LEVEL", "debug")
	t.Setenv("REDIS_ADDR", "redis:6380")
	t.Setenv("REDIS_DB", "2")
	t.Setenv("REDIS_TLS", "true")
	t.Setenv("ALARM_TIMEZONE", "Asia/Tokyo")
	t.Setenv("ALARM_DEFAULT_SNOOZE_MINUTES", "10")
	t.Setenv("ALARM_DELIVERY_TIMEOUT", "30s")
	t.Setenv("ALERT_PRESENTER", "telegram")
	t.Setenv("ALERT_TELEGRAM_TOKEN", "token")
	t.Setenv("ALERT_TELEGRAM_CHAT_ID", "42")

	cfg, err := load("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("expected port 9090, got %q", cfg.Port)
	}
	if cfg.LogLevel != slog.LevelDebug {
		t.Errorf("expected debug level, got %v", cfg.LogLevel)
	}
	if cfg.Redis.Addr != "redis:6380" || cfg.Redis.DB != 2 || !cfg.Redis.TLS {
		t.Errorf("unexpected redis config: %+v", cfg.Redis)
	}
	if cfg.Alarm.DefaultSnoozeMinutes != 10 {
		t.Errorf("expected snooze 10, got %d", cfg.Alarm.DefaultSnoozeMinutes)
	}
	if cfg.Alarm.DeliveryTimeout != 30*time.Second {
		t.Errorf("expected delivery timeout 30s, got %v", cfg.Alarm.DeliveryTimeout)
	}
	if cfg.Alert.TelegramChatID != 42 {
		t.Errorf("expected chat id 42, got %d", cfg.Alert.TelegramChatID)
	}

	loc, err := cfg.Alarm.Location()
	if err != nil {
		t.Fatalf("unexpected location error: %v", err)
	}
	if loc.String() != "Asia/Tokyo" {
		t.Errorf("expected Asia/Tokyo, got %s", loc)
	}
}

func TestLoadFileThenEnvironment(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := []byte(`port: "7070"
alarm:
  default_snooze_minutes: 7
adherence:
  backend: none
`)
	if err := os.WriteFile(path, content, 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("PORT", "6060")

	cfg, err := load(path)
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}

	if cfg.Port != "6060" {
		t.Errorf("environment should win over file, got port %q", cfg.Port)
	}
	if cfg.Alarm.DefaultSnoozeMinutes != 7 {
		t.Errorf("expected snooze 7 from file, got %d", cfg.Alarm.DefaultSnoozeMinutes)
	}
	if cfg.Adherence.Backend != AdherenceNone {
		t.Errorf("expected none backend from file, got %q", cfg.Adherence.Backend)
	}
}

func TestLoadFromFallsBackToConfigFileEnv(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte("port: \"9191\"\n"), 0o600); err != nil {
		t.Fatalf("failed to write config file: %v", err)
	}
	t.Setenv("CONFIG_FILE", path)

	cfg, err := LoadFrom("")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9191" {
		t.Errorf("expected port from CONFIG_FILE, got %q", cfg.Port)
	}

	if _, err := LoadFrom(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing explicit file")
	}
}

func TestLoadInvalidRedisDB(t *testing.T) {
	t.Setenv("REDIS_DB", "primary")

	_, err := load("")
	if !errors.Is(err, ErrInvalidRedisDB) {
		t.Errorf("expected ErrInvalidRedisDB, got %v", err)
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(cfg *Config)
		wantErr error
	}{
		{
			name:    "missing redis addr",
			mutate:  func(cfg *Config) { cfg.Redis.Addr = "" },
			wantErr: ErrRedisAddrMissing,
		},
		{
			name:    "unknown timezone",
			mutate:  func(cfg *Config) { cfg.Alarm.Timezone = "Mars/Olympus" },
			wantErr: ErrInvalidTimezone,
		},
		{
			name:    "zero snooze",
			mutate:  func(cfg *Config) { cfg.Alarm.DefaultSnoozeMinutes = 0 },
			wantErr: ErrInvalidSnoozeMinutes,
		},
		{
			name:    "snooze longer than a day",
			mutate:  func(cfg *Config) { cfg.Alarm.DefaultSnoozeMinutes = 1441 },
			wantErr: ErrInvalidSnoozeMinutes,
		},
		{
			name:    "gateway without url",
			mutate:  func(cfg *Config) { cfg.Alert.Presenter = PresenterGateway },
			wantErr: ErrAlertGatewayURLMissing,
		},
		{
			name:    "telegram without token",
			mutate:  func(cfg *Config) { cfg.Alert.Presenter = PresenterTelegram },
			wantErr: ErrTelegramConfigMissing,
		},
		{
			name:    "unknown presenter",
			mutate:  func(cfg *Config) { cfg.Alert.Presenter = "pager" },
			wantErr: ErrUnknownPresenter,
		},
		{
			name:    "unknown adherence backend",
			mutate:  func(cfg *Config) { cfg.Adherence.Backend = "csv" },
			wantErr: ErrUnknownAdherenceBackend,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg, err := load("")
			if err != nil {
				t.Fatalf("unexpected load error: %v", err)
			}
			tt.mutate(cfg)

			if err := cfg.Validate(); !errors.Is(err, tt.wantErr) {
				t.Errorf("expected %v, got %v", tt.wantErr, err)
			}
		})
	}
}
