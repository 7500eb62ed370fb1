package domain

import "context"

//go:generate mockgen -source=settings_repository.go -destination=settings_repository_mock.go -package=domain

type SettingsRepository interface {
	// GetSnoozeMinutes returns ErrSettingNotFound when no value was stored.
	GetSnoozeMinutes(ctx context.Context) (int, error)
	SetSnoozeMinutes(ctx context.Context, minutes int) error
}
