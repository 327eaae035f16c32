package domain

import "errors"

var (
	ErrInvalidTimeFormat    = errors.New("invalid time format, expected HH:MM")
	ErrInvalidDateRange     = errors.New("invalid date range")
	ErrBlockRequestNotFound = errors.New("block request not found")
	ErrDoctorNotFound       = errors.New("doctor not found")
)
