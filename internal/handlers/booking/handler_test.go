package booking_test

import (
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/mock/gomock"

	otelMocks "github.com/isaaccomputerscience/isaac-api-sub002/infras/otel/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model/dto"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/service/mocks"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/handlers/booking"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/failure"
	"github.com/isaaccomputerscience/isaac-api-sub002/transport/http/middleware"
)

const eventID = "ev1"

type envelope[T any] struct {
	Data    *T      `json:"data"`
	Error   *string `json:"error"`
	Message *string `json:"message"`
}

func newRouter(t *testing.T) (*mocks.MockBooking, http.Handler) {
	t.Helper()

	svc := mocks.NewMockBooking(gomock.NewController(t))
	ot := otelMocks.NewOtel()
	identity := middleware.NewIdentityMiddleware(ot)
	handler := booking.New(svc, identity, ot)

	router := chi.NewRouter()
	router.Use(identity.Identify)
	handler.Router(router)

	return svc, router
}

func do(router http.Handler, method, path, userID, role, body string) *httptest.ResponseRecorder {
	request := httptest.NewRequest(method, path, strings.NewReader(body))
	if userID != "" {
		request.Header.Set(constant.RequestHeaderUserID, userID)
	}

	if role != "" {
		request.Header.Set(constant.RequestHeaderUserRole, role)
	}

	recorder := httptest.NewRecorder()
	router.ServeHTTP(recorder, request)

	return recorder
}

func decode[T any](t *testing.T, recorder *httptest.ResponseRecorder) envelope[T] {
	t.Helper()

	var res envelope[T]
	require.NoError(t, json.Unmarshal(recorder.Body.Bytes(), &res))

	return res
}

func sample(userID string, status model.Status) model.Booking {
	b := model.Booking{ID: 1, EventID: eventID, UserID: userID, Status: status}
	b.CreatedAt = time.Date(2026, 6, 1, 9, 0, 0, 0, time.UTC)
	b.UpdatedAt = b.CreatedAt

	return b
}

func TestCreateBooking(t *testing.T) {
	svc, router := newRouter(t)

	info := model.AdditionalInformation{"dietary": "none"}
	svc.EXPECT().CreateBooking(gomock.Any(), eventID, "u1", info).Return(sample("u1", model.StatusWaitingList), nil)

	recorder := do(router, http.MethodPost, "/events/ev1/bookings", "u1", "", `{"additional_information":{"dietary":"none"}}`)
	require.Equal(t, http.StatusCreated, recorder.Code)

	res := decode[dto.BookingResponse](t, recorder)
	require.NotNil(t, res.Data)
	assert.Equal(t, "WAITING_LIST", res.Data.Status)
	assert.Equal(t, "u1", res.Data.UserID)
}

func TestCreateBooking_EmptyBody(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().CreateBooking(gomock.Any(), eventID, "u1", model.AdditionalInformation(nil)).Return(sample("u1", model.StatusConfirmed), nil)

	recorder := do(router, http.MethodPost, "/events/ev1/bookings", "u1", "", "")
	assert.Equal(t, http.StatusCreated, recorder.Code)
}

func TestCreateBooking_Errors(t *testing.T) {
	tests := []struct {
		name     string
		err      error
		wantCode int
		wantMsg  string
	}{
		{
			name:     "already booked",
			err:      failure.Conflict(fmt.Errorf("%w: u1 on ev1", model.ErrDuplicateBooking)),
			wantCode: http.StatusConflict,
			wantMsg:  "already booked",
		},
		{
			name:     "event busy",
			err:      failure.ServiceUnavailable(model.ErrLockTimeout),
			wantCode: http.StatusServiceUnavailable,
			wantMsg:  "try again",
		},
		{
			name:     "store failure hides detail",
			err:      failure.InternalError(fmt.Errorf("%w: connection reset by 10.0.0.3", model.ErrPersistence)),
			wantCode: http.StatusInternalServerError,
			wantMsg:  http.StatusText(http.StatusInternalServerError),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)

			svc.EXPECT().CreateBooking(gomock.Any(), eventID, "u1", gomock.Any()).Return(model.Booking{}, tt.err)

			recorder := do(router, http.MethodPost, "/events/ev1/bookings", "u1", "", "{}")
			require.Equal(t, tt.wantCode, recorder.Code)

			res := decode[dto.BookingResponse](t, recorder)
			require.NotNil(t, res.Error)
			assert.Contains(t, *res.Error, tt.wantMsg)
		})
	}
}

func TestMissingIdentity(t *testing.T) {
	_, router := newRouter(t)

	recorder := do(router, http.MethodPost, "/events/ev1/bookings", "", "", "{}")
	assert.Equal(t, http.StatusUnauthorized, recorder.Code)
}

func TestMalformedBody(t *testing.T) {
	_, router := newRouter(t)

	recorder := do(router, http.MethodPost, "/events/ev1/bookings", "u1", "", `{"additional_information":`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestCreateReservations(t *testing.T) {
	t.Run("staff reserve for others", func(t *testing.T) {
		svc, router := newRouter(t)

		svc.EXPECT().CreateReservations(gomock.Any(), eventID, "teacher1", []string{"s1", "s2"}, model.AdditionalInformation(nil)).
			Return([]model.Booking{sample("s1", model.StatusConfirmed), sample("s2", model.StatusConfirmed)}, nil)

		recorder := do(router, http.MethodPost, "/events/ev1/bookings/reservations", "teacher1", constant.RoleTeacher, `{"user_ids":["s1","s2"]}`)
		require.Equal(t, http.StatusCreated, recorder.Code)

		res := decode[dto.GetBookingsResponse](t, recorder)
		require.NotNil(t, res.Data)
		assert.Equal(t, 2, res.Data.TotalData)
	})

	t.Run("students may not reserve", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := do(router, http.MethodPost, "/events/ev1/bookings/reservations", "s1", constant.RoleStudent, `{"user_ids":["s2"]}`)
		assert.Equal(t, http.StatusForbidden, recorder.Code)
	})

	t.Run("duplicate users rejected before the service", func(t *testing.T) {
		_, router := newRouter(t)

		recorder := do(router, http.MethodPost, "/events/ev1/bookings/reservations", "teacher1", constant.RoleTeacher, `{"user_ids":["s1","s1"]}`)
		assert.Equal(t, http.StatusBadRequest, recorder.Code)
	})
}

func TestConfirmReservation_OnlyTheAttendee(t *testing.T) {
	svc, router := newRouter(t)

	recorder := do(router, http.MethodPost, "/events/ev1/bookings/s1/confirm", "teacher1", constant.RoleAdmin, "")
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	svc.EXPECT().ConfirmReservation(gomock.Any(), eventID, "s1", model.AdditionalInformation(nil)).Return(sample("s1", model.StatusConfirmed), nil)

	recorder = do(router, http.MethodPost, "/events/ev1/bookings/s1/confirm", "s1", "", "")
	assert.Equal(t, http.StatusOK, recorder.Code)
}

func TestCancelBooking(t *testing.T) {
	tests := []struct {
		name     string
		caller   string
		role     string
		wantCall bool
		wantCode int
	}{
		{name: "own booking", caller: "u1", wantCall: true, wantCode: http.StatusOK},
		{name: "someone else's", caller: "u2", role: constant.RoleStudent, wantCode: http.StatusForbidden},
		{name: "admin on behalf", caller: "admin1", role: constant.RoleAdmin, wantCall: true, wantCode: http.StatusOK},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			svc, router := newRouter(t)

			if tt.wantCall {
				svc.EXPECT().CancelBooking(gomock.Any(), eventID, "u1").Return(sample("u1", model.StatusCancelled), nil)
			}

			recorder := do(router, http.MethodPost, "/events/ev1/bookings/u1/cancel", tt.caller, tt.role, "")
			assert.Equal(t, tt.wantCode, recorder.Code)
		})
	}
}

func TestUpdateBookingStatus(t *testing.T) {
	svc, router := newRouter(t)

	recorder := do(router, http.MethodPatch, "/events/ev1/bookings/u1", "teacher1", constant.RoleTeacher, `{"status":"CONFIRMED"}`)
	assert.Equal(t, http.StatusForbidden, recorder.Code)

	recorder = do(router, http.MethodPatch, "/events/ev1/bookings/u1", "admin1", constant.RoleAdmin, `{"status":"PENDING"}`)
	assert.Equal(t, http.StatusBadRequest, recorder.Code)

	svc.EXPECT().UpdateBookingStatus(gomock.Any(), eventID, "u1", model.StatusConfirmed).
		Return(model.Booking{}, failure.Conflict(model.ErrEventFull))

	recorder = do(router, http.MethodPatch, "/events/ev1/bookings/u1", "admin1", constant.RoleAdmin, `{"status":"CONFIRMED"}`)
	assert.Equal(t, http.StatusConflict, recorder.Code)
}

func TestDeleteBooking(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().DeleteBooking(gomock.Any(), eventID, "u1").Return(nil)

	recorder := do(router, http.MethodDelete, "/events/ev1/bookings/u1", "admin1", constant.RoleAdmin, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	res := decode[struct{}](t, recorder)
	require.NotNil(t, res.Message)
}

func TestGetBooking_NotFound(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().GetBooking(gomock.Any(), eventID, "u1").Return(model.Booking{}, failure.NotFound(model.ErrNotFound))

	recorder := do(router, http.MethodGet, "/events/ev1/bookings/u1", "u1", "", "")
	assert.Equal(t, http.StatusNotFound, recorder.Code)
}

func TestListEventBookings(t *testing.T) {
	svc, router := newRouter(t)

	waiting := model.StatusWaitingList
	svc.EXPECT().ListEventBookings(gomock.Any(), eventID, &waiting).Return([]model.Booking{sample("u3", model.StatusWaitingList)}, nil)

	recorder := do(router, http.MethodGet, "/events/ev1/bookings?status=WAITING_LIST", "teacher1", constant.RoleTeacher, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	res := decode[dto.GetBookingsResponse](t, recorder)
	require.NotNil(t, res.Data)
	assert.Equal(t, 1, res.Data.TotalData)

	recorder = do(router, http.MethodGet, "/events/ev1/bookings?status=nope", "teacher1", constant.RoleTeacher, "")
	assert.Equal(t, http.StatusBadRequest, recorder.Code)
}

func TestGetStatusCounts(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().StatusCounts(gomock.Any(), eventID, true).
		Return(model.StatusCounts{model.StatusConfirmed: 10, model.StatusWaitingList: 3}, nil)

	recorder := do(router, http.MethodGet, "/events/ev1/bookings/counts?include_deleted_users=true", "admin1", constant.RoleAdmin, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	res := decode[dto.StatusCountsResponse](t, recorder)
	require.NotNil(t, res.Data)
	assert.Equal(t, dto.StatusCountsResponse{EventID: eventID, Confirmed: 10, WaitingList: 3}, *res.Data)
}

func TestUserListings(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().ListUserBookings(gomock.Any(), "u1").Return([]model.Booking{}, nil)
	svc.EXPECT().ListUserReservations(gomock.Any(), "u1").Return([]model.Booking{}, nil)

	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/users/u1/bookings", "u1", "", "").Code)
	assert.Equal(t, http.StatusOK, do(router, http.MethodGet, "/users/u1/reservations", "u1", "", "").Code)
	assert.Equal(t, http.StatusForbidden, do(router, http.MethodGet, "/users/u1/bookings", "u2", "", "").Code)
}

func TestEraseUserInformation(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().EraseUserInformation(gomock.Any(), "u1").Return(int64(4), nil)

	recorder := do(router, http.MethodDelete, "/users/u1/bookings/additional-information", "admin1", constant.RoleAdmin, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	res := decode[dto.EraseUserInformationResponse](t, recorder)
	require.NotNil(t, res.Data)
	assert.Equal(t, int64(4), res.Data.Redacted)
}

func TestCountBookings(t *testing.T) {
	svc, router := newRouter(t)

	svc.EXPECT().CountAll(gomock.Any()).Return(42, nil)

	recorder := do(router, http.MethodGet, "/bookings/count", "admin1", constant.RoleAdmin, "")
	require.Equal(t, http.StatusOK, recorder.Code)

	res := decode[dto.CountResponse](t, recorder)
	require.NotNil(t, res.Data)
	assert.Equal(t, 42, res.Data.Total)
}
