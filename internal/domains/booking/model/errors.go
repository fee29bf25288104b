package model

import "errors"

var (
	ErrNotFound           = errors.New("booking not found")
	ErrDuplicateBooking   = errors.New("already booked on this event")
	ErrAmbiguousState     = errors.New("more than one booking matched an update expected to be unique")
	ErrLockTimeout        = errors.New("event is busy, try again")
	ErrPersistence        = errors.New("booking store failure")
	ErrInvalidTransition  = errors.New("booking status transition not allowed")
	ErrEventFull          = errors.New("event is full")
	ErrInvalidReservation = errors.New("invalid reservation")
)
