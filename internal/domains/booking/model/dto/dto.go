package dto

import (
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	gDto "github.com/isaaccomputerscience/isaac-api-sub002/shared/dto"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/timezone"
)

type CreateBookingRequest struct {
	AdditionalInformation map[string]string `json:"additional_information" validate:"omitempty,max=32,dive,keys,max=64,endkeys,max=4096"`
}

type CreateReservationsRequest struct {
	UserIDs               []string          `json:"user_ids"               validate:"required,min=1,max=100,unique,dive,notblank"`
	AdditionalInformation map[string]string `json:"additional_information" validate:"omitempty,max=32,dive,keys,max=64,endkeys,max=4096"`
}

type ConfirmReservationRequest struct {
	AdditionalInformation map[string]string `json:"additional_information" validate:"omitempty,max=32,dive,keys,max=64,endkeys,max=4096"`
}

type UpdateBookingStatusRequest struct {
	Status string `json:"status" validate:"required,oneof=CONFIRMED WAITING_LIST CANCELLED"`
}

type BookingResponse struct {
	ID                    int64             `json:"id"`
	EventID               string            `json:"event_id"`
	UserID                string            `json:"user_id"`
	ReservedByID          *string           `json:"reserved_by_id,omitempty"`
	Status                string            `json:"status"`
	AdditionalInformation map[string]string `json:"additional_information,omitempty"`
	ReservationExpiresAt  *string           `json:"reservation_expires_at,omitempty"`
	gDto.Metadata
}

func (r *BookingResponse) FromModel(m model.Booking) {
	r.ID = m.ID
	r.EventID = m.EventID
	r.UserID = m.UserID
	r.ReservedByID = m.ReservedByID
	r.Status = string(m.Status)
	r.AdditionalInformation = m.AdditionalInformation

	if m.ReservationExpiresAt != nil {
		expiresAt := timezone.Format(*m.ReservationExpiresAt, constant.DateFormat)
		r.ReservationExpiresAt = &expiresAt
	}

	r.Metadata.FromModel(m.Metadata)
}

type GetBookingsResponse struct {
	Bookings  []BookingResponse `json:"bookings"`
	TotalData int               `json:"total_data"`
}

func (r *GetBookingsResponse) FromModels(models []model.Booking) {
	r.TotalData = len(models)

	r.Bookings = make([]BookingResponse, len(models))
	for i, mod := range models {
		r.Bookings[i].FromModel(mod)
	}
}

type StatusCountsResponse struct {
	EventID     string `json:"event_id"`
	Confirmed   int    `json:"confirmed"`
	WaitingList int    `json:"waiting_list"`
	Cancelled   int    `json:"cancelled"`
}

func (r *StatusCountsResponse) FromModel(eventID string, counts model.StatusCounts) {
	r.EventID = eventID
	r.Confirmed = counts[model.StatusConfirmed]
	r.WaitingList = counts[model.StatusWaitingList]
	r.Cancelled = counts[model.StatusCancelled]
}

type CountResponse struct {
	Total int `json:"total"`
}

type EraseUserInformationResponse struct {
	UserID   string `json:"user_id"`
	Redacted int64  `json:"redacted"`
}
