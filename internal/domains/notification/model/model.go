package model

import "time"

// Email template ids understood by the mailer that consumes booking notifications.
const (
	TemplateBookingConfirmed     = "event_booking_confirmed"
	TemplateWaitingListAddition  = "event_waiting_list_addition"
	TemplateReservationCreated   = "event_reservation_created"
	TemplateReservationConfirmed = "event_reservation_confirmed"
	TemplateBookingCancelled     = "event_booking_cancelled"
	TemplateWaitingListPromotion = "event_waiting_list_promotion"
	TemplateReservationExpired   = "event_reservation_expired"
)

// Context keys shared by booking templates.
const (
	ContextEventID      = "eventId"
	ContextBookingID    = "bookingId"
	ContextStatus       = "status"
	ContextReservedByID = "reservedById"
	ContextExpiresAt    = "reservationExpiresAt"
)

type Recipient struct {
	UserID string `json:"user_id"`
	Email  string `json:"email"`
	Name   string `json:"name"`
}

// Message is the payload published for the mailer.
type Message struct {
	ID         string         `json:"id"`
	TemplateID string         `json:"template_id"`
	Recipient  Recipient      `json:"recipient"`
	Context    map[string]any `json:"context"`
	CreatedAt  time.Time      `json:"created_at"`
}
