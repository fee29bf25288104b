package model

import (
	"database/sql/driver"
	"encoding/json"
	"fmt"
	"time"

	"github.com/isaaccomputerscience/isaac-api-sub002/shared/model"
)

const (
	TableName  = "bookings"
	EntityName = "booking"

	FieldID                    = "id"
	FieldEventID               = "event_id"
	FieldUserID                = "user_id"
	FieldReservedByID          = "reserved_by_id"
	FieldStatus                = "status"
	FieldAdditionalInformation = "additional_information"
	FieldReservationExpiresAt  = "reservation_expires_at"
)

type Status string

const (
	StatusConfirmed   Status = "CONFIRMED"
	StatusWaitingList Status = "WAITING_LIST"
	StatusCancelled   Status = "CANCELLED"
)

func (s Status) Valid() bool {
	switch s {
	case StatusConfirmed, StatusWaitingList, StatusCancelled:
		return true
	default:
		return false
	}
}

// StatusCounts is the number of bookings per status for one event.
type StatusCounts map[Status]int

func (c StatusCounts) Confirmed() int {
	return c[StatusConfirmed]
}

// AdditionalInformation holds free-form attendee fields. It is stored as JSONB
// and may be redacted to NULL.
type AdditionalInformation map[string]string

func (a AdditionalInformation) Value() (driver.Value, error) {
	if a == nil {
		return nil, nil
	}

	b, err := json.Marshal(map[string]string(a))
	if err != nil {
		return nil, fmt.Errorf("failed to marshal additional information: %w", err)
	}

	return b, nil
}

func (a *AdditionalInformation) Scan(src any) error {
	var raw []byte

	switch v := src.(type) {
	case nil:
		*a = nil

		return nil
	case []byte:
		raw = v
	case string:
		raw = []byte(v)
	default:
		return fmt.Errorf("unsupported additional information type %T", src)
	}

	// some drivers report NULL as empty bytes
	if len(raw) == 0 {
		*a = nil

		return nil
	}

	info := map[string]string{}
	if err := json.Unmarshal(raw, &info); err != nil {
		return fmt.Errorf("failed to unmarshal additional information: %w", err)
	}

	*a = info

	return nil
}

type Booking struct {
	ID                    int64                 `db:"id"                     insert:"false"`
	EventID               string                `db:"event_id"`
	UserID                string                `db:"user_id"`
	ReservedByID          *string               `db:"reserved_by_id"`
	Status                Status                `db:"status"`
	AdditionalInformation AdditionalInformation `db:"additional_information"`
	ReservationExpiresAt  *time.Time            `db:"reservation_expires_at"`
	model.Metadata
}

// IsPendingReservation reports whether the booking was made on the attendee's
// behalf and is still waiting for the attendee to confirm it.
func (b Booking) IsPendingReservation() bool {
	return b.ReservedByID != nil && b.ReservationExpiresAt != nil && b.Status != StatusCancelled
}

func (b Booking) IsCancelled() bool {
	return b.Status == StatusCancelled
}
