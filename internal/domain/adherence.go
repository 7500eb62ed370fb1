package domain

import (
	"context"
	"time"
)

//go:generate mockgen -source=adherence.go -destination=adherence_mock.go -package=domain

const (
	adherenceDateLayout = "2006-01-02"
	adherenceTimeLayout = "2006-01-02T15:04:05.000"
)

type AdherenceAction string

const (
	AdherenceTaken  AdherenceAction = "taken"
	AdherenceNotNow AdherenceAction = "not_now"
)

type AdherenceRecord struct {
	ReminderID   int
	MedicineName string
	Action       AdherenceAction
	At           time.Time
}

func (r AdherenceRecord) ActionDate() string {
	return r.At.Format(adherenceDateLayout)
}

func (r AdherenceRecord) ActionTime() string {
	return r.At.Format(adherenceTimeLayout)
}

type AdherenceRecorder interface {
	Record(ctx context.Context, record AdherenceRecord) error
	Close() error
}
