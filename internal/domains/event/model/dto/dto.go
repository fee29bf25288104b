package dto

import (
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	gDto "github.com/isaaccomputerscience/isaac-api-sub002/shared/dto"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/timezone"
)

type EventResponse struct {
	ID        string  `json:"id"`
	Title     string  `json:"title"`
	Capacity  int     `json:"capacity"`
	StartDate string  `json:"start_date"`
	EndDate   *string `json:"end_date,omitempty"`
	gDto.Metadata
}

func (r *EventResponse) FromModel(m model.Event) {
	r.ID = m.ID
	r.Title = m.Title
	r.Capacity = m.Capacity
	r.StartDate = timezone.Format(m.StartDate, constant.DateFormat)

	if m.EndDate != nil {
		endDate := timezone.Format(*m.EndDate, constant.DateFormat)
		r.EndDate = &endDate
	}

	r.Metadata.FromModel(m.Metadata)
}
