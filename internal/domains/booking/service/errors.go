package service

import (
	"errors"
	"net/http"

	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	eventModel "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/failure"
)

// fail logs err and converts it to the caller-facing failure.
func (s *serviceImpl) fail(action string, err error) error {
	f := toFailure(err)

	if failure.GetCode(f) >= http.StatusInternalServerError {
		log.Error().Err(err).Msgf("failed to %s", action)
	} else {
		log.Warn().Err(err).Msgf("could not %s", action)
	}

	return f
}

func toFailure(err error) error {
	switch {
	case errors.Is(err, model.ErrNotFound), errors.Is(err, eventModel.ErrEventNotFound):
		return failure.NotFound(err) // nolint:wrapcheck
	case errors.Is(err, model.ErrDuplicateBooking),
		errors.Is(err, model.ErrInvalidTransition),
		errors.Is(err, model.ErrEventFull):
		return failure.Conflict(err) // nolint:wrapcheck
	case errors.Is(err, model.ErrInvalidReservation):
		return failure.BadRequest(err) // nolint:wrapcheck
	case errors.Is(err, model.ErrLockTimeout):
		return failure.ServiceUnavailable(err) // nolint:wrapcheck
	default:
		return failure.InternalError(err) // nolint:wrapcheck
	}
}
