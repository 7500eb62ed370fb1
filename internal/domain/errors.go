package domain

import "errors"

var (
	ErrInvalidReminder        = errors.New("invalid reminder")
	ErrInvalidSnoozeDuration  = errors.New("snooze duration must be between 1 and 1440 minutes")
	ErrExactTimerDenied       = errors.New("exact timer registration denied")
	ErrSettingNotFound        = errors.New("setting not found")
	ErrRegistrationNotFound   = errors.New("timer registration not found")
	ErrStaleTimerRegistration = errors.New("timer registration superseded")
	ErrUnknownAction          = errors.New("unknown alert action")
)
