package main

import (
	"fmt"
	"strconv"
	"time"

	"github.com/jmhodges/clock"
	"github.com/spf13/cobra"

	"github.com/KasumiMercury/primind-medication-alarm/internal/domain"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/adherence"
	"github.com/KasumiMercury/primind-medication-alarm/internal/infra/repository"
	"github.com/KasumiMercury/primind-medication-alarm/internal/service/alarm"
)

var snoozeCmd = &cobra.Command{
	Use:   "snooze",
	Short: "Inspect or change the Remind Later delay.",
}

// settingsScheduler builds a scheduler that is only used for its settings
// operations, so it carries no timer.
func settingsScheduler(cmd *cobra.Command) (*alarm.Scheduler, func() error, error) {
	cfg, err := loadConfig()
	if err != nil {
		return nil, nil, err
	}

	client := newRedisClient(cfg.Redis)
	if err := client.Ping(cmd.Context()).Err(); err != nil {
		client.Close()
		return nil, nil, fmt.Errorf("failed to connect redis: %w", err)
	}

	scheduler := alarm.NewScheduler(
		nil,
		repository.NewAcknowledgementRepository(client),
		repository.NewSettingsRepository(client),
		clock.New(),
		alarm.Config{DefaultSnoozeMinutes: cfg.Alarm.DefaultSnoozeMinutes},
		nil,
	)
	return scheduler, client.Close, nil
}

var snoozeGetCmd = &cobra.Command{
	Use:   "get",
	Short: "Print the snooze delay in minutes.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		scheduler, closeFn, err := settingsScheduler(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		cmd.Println(scheduler.GetSnoozeDuration(cmd.Context()))
		return nil
	},
}

var snoozeSetCmd = &cobra.Command{
	Use:   "set <minutes>",
	Short: "Store a new snooze delay.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		minutes, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid minutes %q: %w", args[0], err)
		}

		scheduler, closeFn, err := settingsScheduler(cmd)
		if err != nil {
			return err
		}
		defer closeFn()

		return scheduler.SetSnoozeDuration(cmd.Context(), minutes)
	},
}

var (
	triggerHour   int
	triggerMinute int
	triggerZone   string
)

var nextTriggerCmd = &cobra.Command{
	Use:   "next-trigger",
	Short: "Print when a reminder set for the given time fires next.",
	Args:  cobra.NoArgs,
	RunE: func(cmd *cobra.Command, _ []string) error {
		loc := time.Local
		if triggerZone != "" {
			l, err := time.LoadLocation(triggerZone)
			if err != nil {
				return fmt.Errorf("invalid timezone %q: %w", triggerZone, err)
			}
			loc = l
		}

		now := time.Now().In(loc)
		r := domain.ReminderAlarm{Hour: triggerHour, Minute: triggerMinute}.Normalize()
		next := alarm.NextTrigger(now, r.Hour, r.Minute)

		cmd.Printf("%s (in %s)\n", next.Format(time.RFC3339), next.Sub(now).Round(time.Second))
		return nil
	},
}

var historyCmd = &cobra.Command{
	Use:   "history <reminder-id>",
	Short: "Print the locally recorded adherence log for a reminder.",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		id, err := strconv.Atoi(args[0])
		if err != nil {
			return fmt.Errorf("invalid reminder id %q: %w", args[0], err)
		}

		cfg, err := loadConfig()
		if err != nil {
			return err
		}

		recorder, err := adherence.NewSQLiteRecorder(cmd.Context(), cfg.Adherence.SQLitePath)
		if err != nil {
			return err
		}
		defer recorder.Close()

		rows, err := recorder.Records(cmd.Context(), id)
		if err != nil {
			return err
		}
		for _, row := range rows {
			cmd.Printf("%s %s  %-12s %s\n", row.ActionDate, row.ActionTime, row.Action, row.MedicineName)
		}
		return nil
	},
}

func init() {
	snoozeCmd.AddCommand(snoozeGetCmd, snoozeSetCmd)

	nextTriggerCmd.Flags().IntVar(&triggerHour, "hour", 0, "hour of day (0-23)")
	nextTriggerCmd.Flags().IntVar(&triggerMinute, "minute", 0, "minute of hour (0-59)")
	nextTriggerCmd.Flags().StringVar(&triggerZone, "timezone", "", "IANA timezone (defaults to local)")
	_ = nextTriggerCmd.MarkFlagRequired("hour")
	_ = nextTriggerCmd.MarkFlagRequired("minute")
}
