package booking

import (
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/rs/zerolog/log"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model/dto"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/service"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/failure"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/validator"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http/middleware"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http/response"
)

const (
	pathEventID = "{" + constant.RequestParamEventID + "}"
	pathUserID  = "{" + constant.RequestParamUserID + "}"
)

type Handler struct {
	service  service.Booking
	identity middleware.Identity
	otel     otel.Otel
}

func New(service service.Booking, identity middleware.Identity, otel otel.Otel) Handler {
	return Handler{
		service:  service,
		identity: identity,
		otel:     otel,
	}
}

func (handler *Handler) Router(router chi.Router) {
	staff := handler.identity.RequireRole(constant.RoleAdmin, constant.RoleTeacher)
	admin := handler.identity.RequireRole(constant.RoleAdmin)

	router.Route("/events/"+pathEventID+"/bookings", func(routerGroup chi.Router) {
		routerGroup.Post("/", handler.CreateBooking)
		routerGroup.With(staff).Get("/", handler.ListEventBookings)
		routerGroup.With(staff).Get("/counts", handler.GetStatusCounts)
		routerGroup.With(staff).Post("/reservations", handler.CreateReservations)
		routerGroup.Get("/"+pathUserID, handler.GetBooking)
		routerGroup.Post("/"+pathUserID+"/confirm", handler.ConfirmReservation)
		routerGroup.Post("/"+pathUserID+"/cancel", handler.CancelBooking)
		routerGroup.With(admin).Patch("/"+pathUserID, handler.UpdateBookingStatus)
		routerGroup.With(admin).Delete("/"+pathUserID, handler.DeleteBooking)
	})

	router.Route("/users/"+pathUserID, func(routerGroup chi.Router) {
		routerGroup.Get("/bookings", handler.ListUserBookings)
		routerGroup.Get("/reservations", handler.ListUserReservations)
		routerGroup.With(admin).Delete("/bookings/additional-information", handler.EraseUserInformation)
	})

	router.With(admin).Get("/bookings/count", handler.CountBookings)
}

func (handler *Handler) fail(writer http.ResponseWriter, scope otel.Scope, err error, msg string) {
	scope.TraceError(err)

	if failure.GetCode(err) >= http.StatusInternalServerError {
		log.Error().Err(err).Msg(msg)
	}

	response.WithError(writer, err)
}

// authorizedUser reads the {userId} path parameter and checks the caller may
// act on that user's bookings.
func authorizedUser(request *http.Request) (string, error) {
	userID := chi.URLParam(request, constant.RequestParamUserID)

	if !middleware.CanActFor(request.Context(), userID) {
		return userID, failure.Forbidden(constant.ResponseErrorForbidden) //nolint:wrapcheck
	}

	return userID, nil
}

// CreateBooking books the caller onto an event.
// @Summary Book the caller onto an event
// @Description Confirms the booking while seats remain, otherwise adds the caller to the waiting list.
// @Tags Booking
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param request body dto.CreateBookingRequest false "Additional information"
// @Success 201 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Already booked"
// @Failure 503 {object} response.Error "Event busy, try again"
// @Router /v1/events/{eventId}/bookings [post]
func (handler *Handler) CreateBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateBooking")
	defer scope.End()

	req := dto.CreateBookingRequest{}

	if err := validator.ValidateOptional(request.Body, &req); err != nil {
		handler.fail(writer, scope, err, "failed to validate request body")

		return
	}

	booking, err := handler.service.CreateBooking(ctx, chi.URLParam(request, constant.RequestParamEventID), middleware.UserID(ctx), req.AdditionalInformation)
	if err != nil {
		handler.fail(writer, scope, err, "failed to create booking")

		return
	}

	res := dto.BookingResponse{}
	res.FromModel(booking)

	response.WithJSON(writer, http.StatusCreated, res)
}

// CreateReservations reserves seats for a group of users on their behalf.
// @Summary Reserve seats for users
// @Description All reservations are created or none are. Each expires unless its attendee confirms it.
// @Tags Booking
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param request body dto.CreateReservationsRequest true "Users to reserve for"
// @Success 201 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Failure 409 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/events/{eventId}/bookings/reservations [post]
func (handler *Handler) CreateReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CreateReservations")
	defer scope.End()

	req := dto.CreateReservationsRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		handler.fail(writer, scope, err, "failed to validate request body")

		return
	}

	bookings, err := handler.service.CreateReservations(ctx, chi.URLParam(request, constant.RequestParamEventID), middleware.UserID(ctx), req.UserIDs, req.AdditionalInformation)
	if err != nil {
		handler.fail(writer, scope, err, "failed to create reservations")

		return
	}

	res := dto.GetBookingsResponse{}
	res.FromModels(bookings)

	response.WithJSON(writer, http.StatusCreated, res)
}

// ConfirmReservation is the attendee accepting a reservation made for them.
// @Summary Confirm a reservation
// @Tags Booking
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param userId path string true "Attendee user ID"
// @Param request body dto.ConfirmReservationRequest false "Additional information"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Not a pending reservation"
// @Router /v1/events/{eventId}/bookings/{userId}/confirm [post]
func (handler *Handler) ConfirmReservation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ConfirmReservation")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)
	if userID != middleware.UserID(ctx) {
		handler.fail(writer, scope, failure.Forbidden(constant.ResponseErrorForbidden), "")

		return
	}

	req := dto.ConfirmReservationRequest{}

	if err := validator.ValidateOptional(request.Body, &req); err != nil {
		handler.fail(writer, scope, err, "failed to validate request body")

		return
	}

	booking, err := handler.service.ConfirmReservation(ctx, chi.URLParam(request, constant.RequestParamEventID), userID, req.AdditionalInformation)
	if err != nil {
		handler.fail(writer, scope, err, "failed to confirm reservation")

		return
	}

	res := dto.BookingResponse{}
	res.FromModel(booking)

	response.WithJSON(writer, http.StatusOK, res)
}

// CancelBooking cancels a booking, freeing its seat for the waiting list.
// @Summary Cancel a booking
// @Tags Booking
// @Produce json
// @Param eventId path string true "Event ID"
// @Param userId path string true "User ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 503 {object} response.Error
// @Router /v1/events/{eventId}/bookings/{userId}/cancel [post]
func (handler *Handler) CancelBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CancelBooking")
	defer scope.End()

	userID, err := authorizedUser(request)
	if err != nil {
		handler.fail(writer, scope, err, "")

		return
	}

	booking, err := handler.service.CancelBooking(ctx, chi.URLParam(request, constant.RequestParamEventID), userID)
	if err != nil {
		handler.fail(writer, scope, err, "failed to cancel booking")

		return
	}

	res := dto.BookingResponse{}
	res.FromModel(booking)

	response.WithJSON(writer, http.StatusOK, res)
}

// UpdateBookingStatus moves a booking between statuses.
// @Summary Change a booking's status
// @Tags Booking
// @Accept json
// @Produce json
// @Param eventId path string true "Event ID"
// @Param userId path string true "User ID"
// @Param request body dto.UpdateBookingStatusRequest true "New status"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 400 {object} response.Error
// @Failure 404 {object} response.Error
// @Failure 409 {object} response.Error "Transition not allowed or event full"
// @Router /v1/events/{eventId}/bookings/{userId} [patch]
func (handler *Handler) UpdateBookingStatus(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".UpdateBookingStatus")
	defer scope.End()

	req := dto.UpdateBookingStatusRequest{}

	if err := validator.Validate(request.Body, &req); err != nil {
		handler.fail(writer, scope, err, "failed to validate request body")

		return
	}

	booking, err := handler.service.UpdateBookingStatus(ctx,
		chi.URLParam(request, constant.RequestParamEventID),
		chi.URLParam(request, constant.RequestParamUserID),
		model.Status(req.Status))
	if err != nil {
		handler.fail(writer, scope, err, "failed to update booking status")

		return
	}

	res := dto.BookingResponse{}
	res.FromModel(booking)

	response.WithJSON(writer, http.StatusOK, res)
}

// DeleteBooking permanently removes a user's bookings for an event.
// @Summary Delete a booking
// @Tags Booking
// @Produce json
// @Param eventId path string true "Event ID"
// @Param userId path string true "User ID"
// @Success 200 {object} response.Message
// @Failure 404 {object} response.Error
// @Router /v1/events/{eventId}/bookings/{userId} [delete]
func (handler *Handler) DeleteBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".DeleteBooking")
	defer scope.End()

	err := handler.service.DeleteBooking(ctx, chi.URLParam(request, constant.RequestParamEventID), chi.URLParam(request, constant.RequestParamUserID))
	if err != nil {
		handler.fail(writer, scope, err, "failed to delete booking")

		return
	}

	response.WithMessage(writer, http.StatusOK, "Booking deleted successfully")
}

// GetBooking returns the user's current booking for an event.
// @Summary Get a booking
// @Tags Booking
// @Produce json
// @Param eventId path string true "Event ID"
// @Param userId path string true "User ID"
// @Success 200 {object} response.Data[dto.BookingResponse]
// @Failure 403 {object} response.Error
// @Failure 404 {object} response.Error
// @Router /v1/events/{eventId}/bookings/{userId} [get]
func (handler *Handler) GetBooking(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetBooking")
	defer scope.End()

	userID, err := authorizedUser(request)
	if err != nil {
		handler.fail(writer, scope, err, "")

		return
	}

	booking, err := handler.service.GetBooking(ctx, chi.URLParam(request, constant.RequestParamEventID), userID)
	if err != nil {
		handler.fail(writer, scope, err, "failed to get booking")

		return
	}

	res := dto.BookingResponse{}
	res.FromModel(booking)

	response.WithJSON(writer, http.StatusOK, res)
}

// ListEventBookings lists an event's bookings, optionally by status.
// @Summary List an event's bookings
// @Tags Booking
// @Produce json
// @Param eventId path string true "Event ID"
// @Param status query string false "CONFIRMED, WAITING_LIST or CANCELLED"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 400 {object} response.Error
// @Router /v1/events/{eventId}/bookings [get]
func (handler *Handler) ListEventBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListEventBookings")
	defer scope.End()

	var status *model.Status

	if raw := request.URL.Query().Get(constant.RequestParamStatus); raw != "" {
		s := model.Status(raw)
		if !s.Valid() {
			handler.fail(writer, scope, failure.BadRequestFromString("status must be one of CONFIRMED WAITING_LIST CANCELLED"), "")

			return
		}

		status = &s
	}

	bookings, err := handler.service.ListEventBookings(ctx, chi.URLParam(request, constant.RequestParamEventID), status)
	if err != nil {
		handler.fail(writer, scope, err, "failed to list event bookings")

		return
	}

	res := dto.GetBookingsResponse{}
	res.FromModels(bookings)

	response.WithJSON(writer, http.StatusOK, res)
}

// GetStatusCounts returns how many bookings an event has per status.
// @Summary Count an event's bookings by status
// @Tags Booking
// @Produce json
// @Param eventId path string true "Event ID"
// @Param include_deleted_users query bool false "Count bookings of deleted accounts"
// @Success 200 {object} response.Data[dto.StatusCountsResponse]
// @Router /v1/events/{eventId}/bookings/counts [get]
func (handler *Handler) GetStatusCounts(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".GetStatusCounts")
	defer scope.End()

	includeDeleted := false

	if raw := request.URL.Query().Get(constant.RequestParamIncludeDeletedUsers); raw != "" {
		parsed, err := strconv.ParseBool(raw)
		if err != nil {
			handler.fail(writer, scope, failure.BadRequest(err), "")

			return
		}

		includeDeleted = parsed
	}

	eventID := chi.URLParam(request, constant.RequestParamEventID)

	counts, err := handler.service.StatusCounts(ctx, eventID, includeDeleted)
	if err != nil {
		handler.fail(writer, scope, err, "failed to count event bookings")

		return
	}

	res := dto.StatusCountsResponse{}
	res.FromModel(eventID, counts)

	response.WithJSON(writer, http.StatusOK, res)
}

// ListUserBookings lists every booking a user holds.
// @Summary List a user's bookings
// @Tags Booking
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 403 {object} response.Error
// @Router /v1/users/{userId}/bookings [get]
func (handler *Handler) ListUserBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListUserBookings")
	defer scope.End()

	userID, err := authorizedUser(request)
	if err != nil {
		handler.fail(writer, scope, err, "")

		return
	}

	bookings, err := handler.service.ListUserBookings(ctx, userID)
	if err != nil {
		handler.fail(writer, scope, err, "failed to list user bookings")

		return
	}

	res := dto.GetBookingsResponse{}
	res.FromModels(bookings)

	response.WithJSON(writer, http.StatusOK, res)
}

// ListUserReservations lists the reservations a user made for others.
// @Summary List reservations made by a user
// @Tags Booking
// @Produce json
// @Param userId path string true "Reserving user ID"
// @Success 200 {object} response.Data[dto.GetBookingsResponse]
// @Failure 403 {object} response.Error
// @Router /v1/users/{userId}/reservations [get]
func (handler *Handler) ListUserReservations(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".ListUserReservations")
	defer scope.End()

	userID, err := authorizedUser(request)
	if err != nil {
		handler.fail(writer, scope, err, "")

		return
	}

	bookings, err := handler.service.ListUserReservations(ctx, userID)
	if err != nil {
		handler.fail(writer, scope, err, "failed to list user reservations")

		return
	}

	res := dto.GetBookingsResponse{}
	res.FromModels(bookings)

	response.WithJSON(writer, http.StatusOK, res)
}

// EraseUserInformation redacts the additional information on all of a user's bookings.
// @Summary Erase a user's booking information
// @Tags Booking
// @Produce json
// @Param userId path string true "User ID"
// @Success 200 {object} response.Data[dto.EraseUserInformationResponse]
// @Router /v1/users/{userId}/bookings/additional-information [delete]
func (handler *Handler) EraseUserInformation(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".EraseUserInformation")
	defer scope.End()

	userID := chi.URLParam(request, constant.RequestParamUserID)

	redacted, err := handler.service.EraseUserInformation(ctx, userID)
	if err != nil {
		handler.fail(writer, scope, err, "failed to erase user information")

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.EraseUserInformationResponse{UserID: userID, Redacted: redacted})
}

// CountBookings returns the number of bookings across all events.
// @Summary Count all bookings
// @Tags Booking
// @Produce json
// @Success 200 {object} response.Data[dto.CountResponse]
// @Router /v1/bookings/count [get]
func (handler *Handler) CountBookings(writer http.ResponseWriter, request *http.Request) {
	ctx, scope := handler.otel.NewScope(request.Context(), constant.OtelHandlerScopeName, constant.OtelHandlerScopeName+".CountBookings")
	defer scope.End()

	total, err := handler.service.CountAll(ctx)
	if err != nil {
		handler.fail(writer, scope, err, "failed to count bookings")

		return
	}

	response.WithJSON(writer, http.StatusOK, dto.CountResponse{Total: total})
}
