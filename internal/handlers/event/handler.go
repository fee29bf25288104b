package event

import (
	"errors"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/service"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/failure"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http/response"
)

type Handler struct {
	service service.Event
	otel    otel.Otel
}

func New(service service.Event, otel otel.Otel) Handler {
	return Handler{
		service: service,
		otel:    otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	router.Get("/events/{"+constant.RequestParamEventID+"}", handler.GetEvent)
}

// GetEvent returns the metadata booking decisions are made against.
// @Summary Get an event
// @Tags Event
// @Produce json
// @Param eventId path string true "Event ID"
// @Success 200 {object} response.Data[dto.EventResponse]
// @Failure 404 {object} response.Error
// @Failure 500 {object} response.Error
// @Router /v1/events/{eventId} [get]
func (handler *Handler) GetEvent(w http.ResponseWriter, r *http.Request) {
	ctx, scope := handler.otel.NewScope(r.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetEvent")
	defer scope.End()

	eventID := chi.URLParam(r, constant.RequestParamEventID)

	event, err := handler.service.Get(ctx, eventID)
	if err != nil {
		scope.TraceError(err)
		log.Error().Err(err).Str("eventID", eventID).Msg("failed to get event")

		if errors.Is(err, model.ErrEventNotFound) {
			err = failure.NotFound(err)
		}

		response.WithError(w, err)

		return
	}

	response.WithJSON(w, http.StatusOK, event)
}
