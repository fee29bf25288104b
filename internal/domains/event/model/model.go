package model

import (
	"errors"
	"time"

	"github.com/isaaccomputerscience/isaac-api-sub002/shared/model"
)

const (
	TableName  = "events"
	EntityName = "event"

	FieldID        = "id"
	FieldTitle     = "title"
	FieldCapacity  = "capacity"
	FieldStartDate = "start_date"
	FieldEndDate   = "end_date"
)

var ErrEventNotFound = errors.New("event not found")

// Event is the booking-relevant slice of event metadata. It is owned by the
// content system and only read here.
type Event struct {
	ID        string     `db:"id"`
	Title     string     `db:"title"`
	Capacity  int        `db:"capacity"`
	StartDate time.Time  `db:"start_date"`
	EndDate   *time.Time `db:"end_date"`
	model.Metadata
}

// Dates is the event's schedule; End is nil for events without a recorded end.
type Dates struct {
	Start time.Time  `json:"start"`
	End   *time.Time `json:"end,omitempty"`
}

// LastDay is the end date, or the start date when no end is recorded.
func (d Dates) LastDay() time.Time {
	if d.End != nil {
		return *d.End
	}

	return d.Start
}
