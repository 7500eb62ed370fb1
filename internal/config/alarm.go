package config

import (
	"fmt"
	"time"
)

const (
	defaultAutoRepeatInterval = time.Minute
	defaultDeliveryTimeout    = 15 * time.Second
	defaultSettleDelay        = 500 * time.Millisecond
	defaultSnoozeMinutes      = 5
	maxSnoozeMinutes          = 24 * 60
)

type AlarmConfig struct {
	Timezone             string        `koanf:"timezone"`
	AutoRepeatInterval   time.Duration `koanf:"auto_repeat_interval"`
	DefaultSnoozeMinutes int           `koanf:"default_snooze_minutes"`
	DeliveryTimeout      time.Duration `koanf:"delivery_timeout"`
	SettleDelay          time.Duration `koanf:"settle_delay"`
}

// Location resolves the timezone reminders are scheduled in.
func (c *AlarmConfig) Location() (*time.Location, error) {
	if c.Timezone == "" || c.Timezone == "Local" {
		return time.Local, nil
	}
	loc, err := time.LoadLocation(c.Timezone)
	if err != nil {
		return nil, fmt.Errorf("%w: %s", ErrInvalidTimezone, c.Timezone)
	}
	return loc, nil
}

func (c *AlarmConfig) Validate() error {
	if c == nil {
		return ErrAlarmConfigMissing
	}
	if _, err := c.Location(); err != nil {
		return err
	}
	if c.AutoRepeatInterval <= 0 {
		return ErrInvalidAutoRepeat
	}
	if c.DefaultSnoozeMinutes <= 0 || c.DefaultSnoozeMinutes > maxSnoozeMinutes {
		return ErrInvalidSnoozeMinutes
	}
	if c.DeliveryTimeout <= 0 {
		return ErrInvalidDeliveryTimeout
	}
	return nil
}
