package repository

//go:generate go run go.uber.org/mock/mockgen -source=./repository.go -destination=../mocks/repository_mock.go -package=mocks

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/jmoiron/sqlx"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/otel"
	"github.com/isaaccomputerscience/isaac-api-sub002/infras/postgres"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/constant"
	gDto "github.com/isaaccomputerscience/isaac-api-sub002/shared/dto"
	gRepo "github.com/isaaccomputerscience/isaac-api-sub002/shared/repository"
	"github.com/isaaccomputerscience/isaac-api-sub002/shared/timezone"
)

const (
	bookingColumns = `id, event_id, user_id, reserved_by_id, status, additional_information,
		reservation_expires_at, created_at, updated_at`

	queryFindByEventAndUser = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE event_id = $1 AND user_id = $2
		ORDER BY (status = 'CANCELLED'), created_at DESC, id DESC
		LIMIT 1`

	queryFindAllByEvent = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE event_id = $1
		ORDER BY created_at, id`

	queryFindAllByEventAndStatus = `SELECT ` + bookingColumns + ` FROM bookings
		WHERE event_id = $1 AND status = $2
		ORDER BY created_at, id`

	queryStatusCounts = `SELECT status, COUNT(*) AS count FROM bookings
		WHERE event_id = $1
		GROUP BY status`

	queryStatusCountsActiveUsers = `SELECT b.status, COUNT(*) AS count FROM bookings b
		LEFT JOIN users u ON u.id = b.user_id
		WHERE b.event_id = $1 AND NOT COALESCE(u.deleted, FALSE)
		GROUP BY b.status`

	queryEventIDsWithInformation = `SELECT DISTINCT event_id FROM bookings
		WHERE additional_information IS NOT NULL
		ORDER BY event_id`
)

// Booking is the durable store of booking rows. It performs atomic row-level
// operations only; capacity and uniqueness rules are applied by callers
// holding the event lock.
type Booking interface {
	Create(ctx context.Context, booking model.Booking) (model.Booking, error)
	CreateBatch(ctx context.Context, bookings []model.Booking) ([]model.Booking, error)
	UpdateStatus(ctx context.Context, eventID, userID string, reservedByID *string, status model.Status, info model.AdditionalInformation) error
	ConfirmReservation(ctx context.Context, eventID, userID string, info model.AdditionalInformation) error
	Delete(ctx context.Context, eventID, userID string) error
	RedactAdditionalInformation(ctx context.Context, userID string) (int64, error)
	RedactAdditionalInformationByEvent(ctx context.Context, eventID string) (int64, error)

	FindByEventAndUser(ctx context.Context, eventID, userID string) (model.Booking, error)
	FindAllByEvent(ctx context.Context, eventID string, status *model.Status) ([]model.Booking, error)
	FindAllByUser(ctx context.Context, userID string) ([]model.Booking, error)
	FindReservationsByUser(ctx context.Context, reservedByID string) ([]model.Booking, error)
	FindWaitingList(ctx context.Context, eventID string) ([]model.Booking, error)
	FindExpiredReservations(ctx context.Context, now time.Time, eventID *string) ([]model.Booking, error)
	FindEventIDsWithAdditionalInformation(ctx context.Context) ([]string, error)
	CountAll(ctx context.Context) (int, error)
	StatusCountsByEvent(ctx context.Context, eventID string, includeDeletedUsers bool) (model.StatusCounts, error)
}

// Reads that feed decisions made under the event lock go to the primary.
type repositoryImpl struct {
	repo    gRepo.Repository[model.Booking]
	primary gRepo.Repository[model.Booking]
	db      *postgres.Connection
	otel    otel.Otel
	clock   timezone.Clock
}

func New(db *postgres.Connection, otel otel.Otel) Booking {
	repo := gRepo.NewRepository[model.Booking](model.EntityName, model.TableName, model.FieldID, db, otel)

	return &repositoryImpl{
		repo:    repo,
		primary: repo.OnPrimary(),
		db:      db,
		otel:    otel,
		clock:   timezone.Now,
	}
}

func persistenceError(action string, err error) error {
	return fmt.Errorf("failed to %s: %w: %w", action, model.ErrPersistence, err)
}

// checkSingleRow enforces that a mutation expected to hit one row did so.
func checkSingleRow(affected int64) error {
	switch {
	case affected == 0:
		return model.ErrNotFound
	case affected > 1:
		return fmt.Errorf("%w: %d rows matched", model.ErrAmbiguousState, affected)
	default:
		return nil
	}
}

func (r *repositoryImpl) scope(ctx context.Context, name string) (context.Context, otel.Scope) {
	return r.otel.NewScope(ctx, constant.OtelRepositoryScopeName,
		fmt.Sprintf("%s.%s.%s", constant.OtelRepositoryScopeName, model.EntityName, name))
}

func activeBookingFilter(eventID, userID string) gDto.FilterGroup {
	return gDto.And(
		gDto.Eq(model.TableName, model.FieldEventID, eventID),
		gDto.Eq(model.TableName, model.FieldUserID, userID),
		gDto.Filter{
			ArgName:  "current_status",
			Field:    model.FieldStatus,
			Value:    string(model.StatusCancelled),
			Operator: gDto.FilterOperatorNotEq,
			Table:    model.TableName,
		},
	)
}

func (r *repositoryImpl) Create(ctx context.Context, booking model.Booking) (_ model.Booking, err error) {
	ctx, scope := r.scope(ctx, "Create")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := r.clock()
	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = now
	}

	booking.UpdatedAt = booking.CreatedAt

	created, err := r.repo.InsertReturning(ctx, booking)
	if err != nil {
		if postgres.IsUniqueViolation(err) {
			return model.Booking{}, fmt.Errorf("%w: event %s user %s", model.ErrDuplicateBooking, booking.EventID, booking.UserID)
		}

		return model.Booking{}, persistenceError("create booking", err)
	}

	return created, nil
}

// CreateBatch inserts all bookings in one transaction; none are kept if any
// insert fails.
func (r *repositoryImpl) CreateBatch(ctx context.Context, bookings []model.Booking) (_ []model.Booking, err error) {
	ctx, scope := r.scope(ctx, "CreateBatch")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	now := r.clock()
	created := make([]model.Booking, 0, len(bookings))

	err = r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error {
		for _, booking := range bookings {
			if booking.CreatedAt.IsZero() {
				booking.CreatedAt = now
			}

			booking.UpdatedAt = booking.CreatedAt

			row, err := r.repo.InsertReturningTx(ctx, tx, booking)
			if err != nil {
				if postgres.IsUniqueViolation(err) {
					return fmt.Errorf("%w: event %s user %s", model.ErrDuplicateBooking, booking.EventID, booking.UserID)
				}

				return persistenceError("create booking", err)
			}

			created = append(created, row)
		}

		return nil
	})
	if err != nil {
		return nil, err //nolint:wrapcheck
	}

	return created, nil
}

// UpdateStatus changes the status of the single non-cancelled booking for the
// pair. reservedByID and info are only written when non-nil.
func (r *repositoryImpl) UpdateStatus(ctx context.Context, eventID, userID string, reservedByID *string, status model.Status, info model.AdditionalInformation) (err error) {
	ctx, scope := r.scope(ctx, "UpdateStatus")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	mod := map[string]any{
		model.FieldStatus:        string(status),
		constant.FieldUpdatedAt: r.clock(),
	}

	if reservedByID != nil {
		mod[model.FieldReservedByID] = *reservedByID
	}

	if info != nil {
		mod[model.FieldAdditionalInformation] = info
	}

	return r.updateSingle(ctx, "update booking status", mod, activeBookingFilter(eventID, userID))
}

// ConfirmReservation clears the expiry of the pending reservation for the pair.
func (r *repositoryImpl) ConfirmReservation(ctx context.Context, eventID, userID string, info model.AdditionalInformation) (err error) {
	ctx, scope := r.scope(ctx, "ConfirmReservation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	mod := map[string]any{
		model.FieldReservationExpiresAt: nil,
		constant.FieldUpdatedAt:         r.clock(),
	}

	if info != nil {
		mod[model.FieldAdditionalInformation] = info
	}

	filter := activeBookingFilter(eventID, userID)
	filter.Filters = append(filter.Filters, gDto.Filter{
		Field:    model.FieldReservationExpiresAt,
		Operator: gDto.FilterIsNotNull,
		Table:    model.TableName,
	})

	return r.updateSingle(ctx, "confirm reservation", mod, filter)
}

// updateSingle runs the update in a transaction that is rolled back unless
// exactly one row changed.
func (r *repositoryImpl) updateSingle(ctx context.Context, action string, mod map[string]any, filter gDto.FilterGroup) error {
	return r.db.WithTransaction(ctx, func(tx *sqlx.Tx) error { //nolint:wrapcheck
		affected, err := r.repo.UpdateTx(ctx, tx, mod, filter)
		if err != nil {
			return persistenceError(action, err)
		}

		return checkSingleRow(affected)
	})
}

func (r *repositoryImpl) Delete(ctx context.Context, eventID, userID string) (err error) {
	ctx, scope := r.scope(ctx, "Delete")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	affected, err := r.repo.Delete(ctx, gDto.And(
		gDto.Eq(model.TableName, model.FieldEventID, eventID),
		gDto.Eq(model.TableName, model.FieldUserID, userID),
	))
	if err != nil {
		return persistenceError("delete booking", err)
	}

	if affected == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (r *repositoryImpl) RedactAdditionalInformation(ctx context.Context, userID string) (_ int64, err error) {
	ctx, scope := r.scope(ctx, "RedactAdditionalInformation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return r.redact(ctx, gDto.Eq(model.TableName, model.FieldUserID, userID))
}

func (r *repositoryImpl) RedactAdditionalInformationByEvent(ctx context.Context, eventID string) (_ int64, err error) {
	ctx, scope := r.scope(ctx, "RedactAdditionalInformationByEvent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return r.redact(ctx, gDto.Eq(model.TableName, model.FieldEventID, eventID))
}

// redact nulls additional information on matching rows that still carry it,
// so repeated runs touch nothing.
func (r *repositoryImpl) redact(ctx context.Context, filter gDto.Filter) (int64, error) {
	affected, err := r.repo.Update(ctx,
		map[string]any{
			model.FieldAdditionalInformation: nil,
			constant.FieldUpdatedAt:          r.clock(),
		},
		gDto.And(filter, gDto.Filter{
			Field:    model.FieldAdditionalInformation,
			Operator: gDto.FilterIsNotNull,
			Table:    model.TableName,
		}),
	)
	if err != nil {
		return 0, persistenceError("redact additional information", err)
	}

	return affected, nil
}

// FindByEventAndUser returns the pair's non-cancelled booking, or the most
// recent cancelled one when no active booking exists.
func (r *repositoryImpl) FindByEventAndUser(ctx context.Context, eventID, userID string) (_ model.Booking, err error) {
	ctx, scope := r.scope(ctx, "FindByEventAndUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	var booking model.Booking

	err = r.db.Write.GetContext(ctx, &booking, queryFindByEventAndUser, eventID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return booking, model.ErrNotFound
	}

	if err != nil {
		return booking, persistenceError("find booking", err)
	}

	return booking, nil
}

func (r *repositoryImpl) FindAllByEvent(ctx context.Context, eventID string, status *model.Status) (_ []model.Booking, err error) {
	ctx, scope := r.scope(ctx, "FindAllByEvent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	bookings := []model.Booking{}

	if status == nil {
		err = r.db.Write.SelectContext(ctx, &bookings, queryFindAllByEvent, eventID)
	} else {
		err = r.db.Write.SelectContext(ctx, &bookings, queryFindAllByEventAndStatus, eventID, string(*status))
	}

	if err != nil {
		return nil, persistenceError("find event bookings", err)
	}

	return bookings, nil
}

// FindWaitingList returns the event's waiting list in promotion order.
func (r *repositoryImpl) FindWaitingList(ctx context.Context, eventID string) ([]model.Booking, error) {
	status := model.StatusWaitingList

	return r.FindAllByEvent(ctx, eventID, &status)
}

func (r *repositoryImpl) FindAllByUser(ctx context.Context, userID string) (_ []model.Booking, err error) {
	ctx, scope := r.scope(ctx, "FindAllByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return r.findAll(ctx, r.repo, "find user bookings", gDto.And(gDto.Eq(model.TableName, model.FieldUserID, userID)))
}

func (r *repositoryImpl) FindReservationsByUser(ctx context.Context, reservedByID string) (_ []model.Booking, err error) {
	ctx, scope := r.scope(ctx, "FindReservationsByUser")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	return r.findAll(ctx, r.repo, "find user reservations", gDto.And(gDto.Eq(model.TableName, model.FieldReservedByID, reservedByID)))
}

// FindExpiredReservations returns pending reservations whose deadline is
// before now, optionally limited to one event.
func (r *repositoryImpl) FindExpiredReservations(ctx context.Context, now time.Time, eventID *string) (_ []model.Booking, err error) {
	ctx, scope := r.scope(ctx, "FindExpiredReservations")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	filter := gDto.And(
		gDto.Filter{Field: model.FieldReservedByID, Operator: gDto.FilterIsNotNull, Table: model.TableName},
		gDto.Filter{Field: model.FieldReservationExpiresAt, Value: now, Operator: gDto.FilterOperatorLess, Table: model.TableName},
		gDto.Filter{Field: model.FieldStatus, Value: string(model.StatusCancelled), Operator: gDto.FilterOperatorNotEq, Table: model.TableName},
	)

	if eventID != nil {
		filter.Filters = append(filter.Filters, gDto.Eq(model.TableName, model.FieldEventID, *eventID))
	}

	return r.findAll(ctx, r.primary, "find expired reservations", filter)
}

func (r *repositoryImpl) findAll(ctx context.Context, repo gRepo.Repository[model.Booking], action string, filter gDto.FilterGroup) ([]model.Booking, error) {
	bookings, err := repo.GetAll(ctx, gDto.QueryParams{SortBy: constant.FieldCreatedAt, SortDir: gDto.SortDirAsc}, filter)
	if err != nil {
		return nil, persistenceError(action, err)
	}

	if bookings == nil {
		bookings = []model.Booking{}
	}

	return bookings, nil
}

func (r *repositoryImpl) FindEventIDsWithAdditionalInformation(ctx context.Context) (_ []string, err error) {
	ctx, scope := r.scope(ctx, "FindEventIDsWithAdditionalInformation")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	eventIDs := []string{}
	if err = r.db.Read.SelectContext(ctx, &eventIDs, queryEventIDsWithInformation); err != nil {
		return nil, persistenceError("find events with additional information", err)
	}

	return eventIDs, nil
}

func (r *repositoryImpl) CountAll(ctx context.Context) (_ int, err error) {
	ctx, scope := r.scope(ctx, "CountAll")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	count, err := r.repo.Count(ctx, gDto.FilterGroup{})
	if err != nil {
		return 0, persistenceError("count bookings", err)
	}

	return count, nil
}

type statusCount struct {
	Status model.Status `db:"status"`
	Count  int          `db:"count"`
}

// StatusCountsByEvent counts the event's bookings per status in one query.
// Bookings of deleted users are left out unless includeDeletedUsers is set.
func (r *repositoryImpl) StatusCountsByEvent(ctx context.Context, eventID string, includeDeletedUsers bool) (_ model.StatusCounts, err error) {
	ctx, scope := r.scope(ctx, "StatusCountsByEvent")
	defer scope.End()
	defer func() { scope.TraceIfError(err) }()

	query := queryStatusCountsActiveUsers
	if includeDeletedUsers {
		query = queryStatusCounts
	}

	rows := []statusCount{}
	if err = r.db.Write.SelectContext(ctx, &rows, query, eventID); err != nil {
		return nil, persistenceError("count event bookings by status", err)
	}

	counts := model.StatusCounts{}
	for _, row := range rows {
		counts[row.Status] = row.Count
	}

	return counts, nil
}
