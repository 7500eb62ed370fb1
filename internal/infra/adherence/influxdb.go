//go:build !gcloud

package adherence

import (
	"context"
	"log/slog"
	"strconv"

	influxdb2 "github.com/influxdata/influxdb-client-go/v2"
	"github.com/influxdata/influxdb-client-go/v2/api"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
)

type influxDBRecorder struct {
	client   influxdb2.Client
	writeAPI api.WriteAPIBlocking
}

func newRemoteRecorder(ctx context.Context, cfg *Config) (domain.AdherenceRecorder, error) {
	if cfg.Backend != BackendInfluxDB {
		slog.WarnContext(ctx, "adherence backend not available in this build, recording disabled",
			slog.String("backend", string(cfg.Backend)),
		)
		return NewNoopRecorder(), nil
	}

	if cfg.InfluxDBToken == "" || cfg.InfluxDBOrg == "" {
		slog.WarnContext(ctx, "InfluxDB token or org not configured, adherence recording disabled",
			slog.String("url", cfg.InfluxDBURL),
		)
		return NewNoopRecorder(), nil
	}

	client := influxdb2.NewClient(cfg.InfluxDBURL, cfg.InfluxDBToken)
	writeAPI := client.WriteAPIBlocking(cfg.InfluxDBOrg, cfg.InfluxDBBucket)

	slog.InfoContext(ctx, "adherence recorder initialized",
		slog.String("type", "influxdb"),
		slog.String("url", cfg.InfluxDBURL),
		slog.String("bucket", cfg.InfluxDBBucket),
	)

	return &influxDBRecorder{
		client:   client,
		writeAPI: writeAPI,
	}, nil
}

func (r *influxDBRecorder) Record(ctx context.Context, record domain.AdherenceRecord) error {
	point := influxdb2.NewPoint(
		"medication_adherence",
		map[string]string{
			"reminder_id":   strconv.Itoa(record.ReminderID),
			"medicine_name": record.MedicineName,
			"action":        string(record.Action),
		},
		map[string]any{
			"action_date": record.ActionDate(),
			"action_time": record.ActionTime(),
			"count":       1,
		},
		record.At,
	)

	if err := r.writeAPI.WritePoint(ctx, point); err != nil {
		slog.WarnContext(ctx, "failed to write adherence record to InfluxDB",
			slog.String("error", err.Error()),
			slog.Int("reminder_id", record.ReminderID),
		)
		return err
	}
	return nil
}

func (r *influxDBRecorder) Close() error {
	if r.client != nil {
		r.client.Close()
	}
	return nil
}
