package domain

import "context"

//go:generate mockgen -source=acknowledgement_repository.go -destination=acknowledgement_repository_mock.go -package=domain

type AcknowledgementRepository interface {
	IsAcknowledged(ctx context.Context, reminderID int) (bool, error)
	SetAcknowledged(ctx context.Context, reminderID int) error
	ClearAcknowledged(ctx context.Context, reminderID int) error
}
