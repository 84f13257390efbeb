package domain

import "errors"

var (
	// ErrInvalidTime indicates a time token that is not a valid hour:minute.
	ErrInvalidTime = errors.New("invalid time of day")

	// ErrMissingClock indicates a record without clock-in or clock-out.
	ErrMissingClock = errors.New("missing clock-in or clock-out")

	// ErrNegativeDuration indicates the computed duration was below zero
	// and was clamped.
	ErrNegativeDuration = errors.New("negative worked duration")

	// ErrUnparseableDate indicates a record date that is not a valid
	// day/month/year calendar date.
	ErrUnparseableDate = errors.New("unparseable record date")
)
