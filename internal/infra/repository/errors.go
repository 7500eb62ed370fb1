package repository

import "errors"

var (
	ErrInvalidRegistrationData = errors.New("invalid timer registration data")
	ErrInvalidSettingData      = errors.New("invalid setting data")
)
