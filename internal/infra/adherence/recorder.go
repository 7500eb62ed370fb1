package adherence

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

// NewRecorder opens the configured adherence sink. Remote sinks that are
// not configured, or not built into this binary, degrade to a no-op.
func NewRecorder(ctx context.Context, cfg *Config) (domain.AdherenceRecorder, error) {
	switch cfg.Backend {
	case BackendNone:
		slog.InfoContext(ctx, "adherence recording disabled")
		return NewNoopRecorder(), nil
	case BackendSQLite:
		return NewSQLiteRecorder(ctx, cfg.SQLitePath)
	case BackendInfluxDB, BackendBigQuery:
		return newRemoteRecorder(ctx, cfg)
	}
	return nil, fmt.Errorf("unknown adherence backend %q", cfg.Backend)
}
