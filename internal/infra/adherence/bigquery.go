//go:build gcloud

package adherence

import (
	"context"
	"log/slog"
	"time"

	"cloud.google.com/go/bigquery"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

type bigQueryRecord struct {
	RecordedAt   time.Time `bigquery:"recorded_at"`
	ReminderID   int64     `bigquery:"reminder_id"`
	MedicineName string    `bigquery:"medicine_name"`
	Action       string    `bigquery:"action"`
	ActionDate   string    `bigquery:"action_date"`
	ActionTime   string    `bigquery:"action_time"`
}

type bigQueryRecorder struct {
	client   *bigquery.Client
	inserter *bigquery.Inserter
}

func newRemoteRecorder(ctx context.Context, cfg *Config) (domain.AdherenceRecorder, error) {
	if cfg.Backend != BackendBigQuery {
		slog.WarnContext(ctx, "adherence backend not available in this build, recording disabled",
			slog.String("backend", string(cfg.Backend)),
		)
		return NewNoopRecorder(), nil
	}

	if cfg.BigQueryProjectID == "" {
		slog.WarnContext(ctx, "BigQuery project ID not configured, adherence recording disabled")
		return NewNoopRecorder(), nil
	}

	client, err := bigquery.NewClient(ctx, cfg.BigQueryProjectID)
	if err != nil {
		slog.ErrorContext(ctx, "failed to create BigQuery client, adherence recording disabled",
			slog.String("error", err.Error()),
			slog.String("project_id", cfg.BigQueryProjectID),
		)
		return NewNoopRecorder(), nil
	}

	inserter := client.Dataset(cfg.BigQueryDataset).Table(cfg.BigQueryTable).Inserter()

	slog.InfoContext(ctx, "adherence recorder initialized",
		slog.String("type", "bigquery"),
		slog.String("project_id", cfg.BigQueryProjectID),
		slog.String("dataset", cfg.BigQueryDataset),
		slog.String("table", cfg.BigQueryTable),
	)

	return &bigQueryRecorder{
		client:   client,
		inserter: inserter,
	}, nil
}

func (r *bigQueryRecorder) Record(ctx context.Context, record domain.AdherenceRecord) error {
	row := &bigQueryRecord{
		RecordedAt:   time.Now(),
		ReminderID:   int64(record.ReminderID),
		MedicineName: record.MedicineName,
		Action:       string(record.Action),
		ActionDate:   record.ActionDate(),
		ActionTime:   record.ActionTime(),
	}

	if err := r.inserter.Put(ctx, row); err != nil {
		slog.WarnContext(ctx, "failed to insert adherence record to BigQuery",
			slog.String("error", err.Error()),
			slog.Int("reminder_id", record.ReminderID),
		)
		return err
	}
	return nil
}

func (r *bigQueryRecorder) Close() error {
	if r.client != nil {
		return r.client.Close()
	}
	return nil
}
