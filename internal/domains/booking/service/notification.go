package service

import (
	"context"
	"errors"

	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	notificationModel "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/notification/model"
	notificationService "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/notification/service"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/timezone"
)

// notification is queued inside a critical section and sent after the lock
// is released.
type notification struct {
	userID     string
	templateID string
	data       map[string]any
}

func newNotification(booking model.Booking, templateID string) notification {
	data := map[string]any{
		notificationModel.ContextEventID:   booking.EventID,
		notificationModel.ContextBookingID: booking.ID,
		notificationModel.ContextStatus:    string(booking.Status),
	}

	if booking.ReservedByID != nil {
		data[notificationModel.ContextReservedByID] = *booking.ReservedByID
	}

	if booking.ReservationExpiresAt != nil {
		data[notificationModel.ContextExpiresAt] = timezone.Format(*booking.ReservationExpiresAt, constant.DateFormat)
	}

	return notification{
		userID:     booking.UserID,
		templateID: templateID,
		data:       data,
	}
}

// notify sends notes in the background. The state change they describe is
// already committed, so failures are only logged.
func (s *serviceImpl) notify(ctx context.Context, notes []notification) {
	if len(notes) == 0 {
		return
	}

	go func() {
		c := context.WithoutCancel(ctx)

		for _, n := range notes {
			err := s.notifier.Send(c, n.userID, n.templateID, n.data)

			switch {
			case err == nil:
			case errors.Is(err, notificationService.ErrRecipientDeleted):
				log.Debug().Str("userID", n.userID).Str("templateID", n.templateID).Msg("skipped notification to deleted user")
			default:
				log.Error().Err(err).Str("userID", n.userID).Str("templateID", n.templateID).Msg("failed to send booking notification")
			}
		}
	}()
}
