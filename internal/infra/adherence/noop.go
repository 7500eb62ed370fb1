package adherence

import (
	"context"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

type noopRecorder struct{}

func NewNoopRecorder() domain.AdherenceRecorder {
	return &noopRecorder{}
}

func (r *noopRecorder) Record(_ context.Context, _ domain.AdherenceRecord) error {
	return nil
}

func (r *noopRecorder) Close() error {
	return nil
}
