//go:build !gcloud

package config

import "log/slog"

func (c *TaskQueueConfig) Validate() error {
	if c.PrimindTasksURL == "" {
		slog.Warn("PRIMIND_TASKS_URL not set, timers will only be armed in memory")
	}
	return nil
}
