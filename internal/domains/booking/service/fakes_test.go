package service_test

import (
	"cmp"
	"context"
	"fmt"
	"slices"
	"sync"
	"sync/atomic"
	"time"

	"github.com/isaaccomputerscience/isaac-api-sub002/infras/lock"
	"github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/booking/model"
	eventModel "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model"
	eventDto "github.com/isaaccomputerscience/isaac-api-sub002/internal/domains/event/model/dto"
)

type testClock struct {
	mu  sync.Mutex
	now time.Time
}

func newTestClock() *testClock {
	return &testClock{now: time.Date(2026, 5, 4, 10, 0, 0, 0, time.UTC)}
}

func (c *testClock) Now() time.Time {
	c.mu.Lock()
	defer c.mu.Unlock()

	return c.now
}

func (c *testClock) Advance(d time.Duration) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.now = c.now.Add(d)
}

// memLocker serializes holders per key inside one process.
type memLocker struct {
	mu      sync.Mutex
	slots   map[string]chan struct{}
	timeout time.Duration
}

func newMemLocker(timeout time.Duration) *memLocker {
	return &memLocker{slots: map[string]chan struct{}{}, timeout: timeout}
}

func (l *memLocker) slot(key string) chan struct{} {
	l.mu.Lock()
	defer l.mu.Unlock()

	ch, ok := l.slots[key]
	if !ok {
		ch = make(chan struct{}, 1)
		l.slots[key] = ch
	}

	return ch
}

func (l *memLocker) held(key string) bool {
	return len(l.slot(key)) == 1
}

func (l *memLocker) AcquireLock(ctx context.Context, resourceID string) (lock.Lock, error) {
	timer := time.NewTimer(l.timeout)
	defer timer.Stop()

	select {
	case l.slot(resourceID) <- struct{}{}:
		return &memLock{key: resourceID, slot: l.slot(resourceID)}, nil
	case <-timer.C:
		return nil, fmt.Errorf("%w: %s", lock.ErrTimeout, resourceID)
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

type memLock struct {
	key      string
	slot     chan struct{}
	released atomic.Bool
}

func (l *memLock) Key() string {
	return l.key
}

func (l *memLock) Release(_ context.Context) error {
	if !l.released.CompareAndSwap(false, true) {
		return lock.ErrNotHeld
	}

	<-l.slot

	return nil
}

// memStore keeps bookings in memory with the same row semantics as the
// postgres store. Writes made without the event lock are counted.
type memStore struct {
	mu       sync.Mutex
	rows     []model.Booking
	nextID   int64
	clock    *testClock
	locker   *memLocker
	unlocked atomic.Int32
	deleted  map[string]bool
}

func newMemStore(clock *testClock, locker *memLocker) *memStore {
	return &memStore{clock: clock, locker: locker, deleted: map[string]bool{}}
}

func (s *memStore) checkLocked(eventID string) {
	if !s.locker.held(lock.Key(lock.NamespaceEventBookings, eventID)) {
		s.unlocked.Add(1)
	}
}

func (s *memStore) activeIndexes(eventID, userID string) []int {
	var idx []int

	for i, row := range s.rows {
		if row.EventID == eventID && row.UserID == userID && !row.IsCancelled() {
			idx = append(idx, i)
		}
	}

	return idx
}

func (s *memStore) insert(booking model.Booking) (model.Booking, error) {
	if len(s.activeIndexes(booking.EventID, booking.UserID)) > 0 {
		return model.Booking{}, fmt.Errorf("%w: event %s user %s", model.ErrDuplicateBooking, booking.EventID, booking.UserID)
	}

	s.nextID++
	booking.ID = s.nextID

	if booking.CreatedAt.IsZero() {
		booking.CreatedAt = s.clock.Now()
	}

	booking.UpdatedAt = booking.CreatedAt
	s.rows = append(s.rows, booking)

	return booking, nil
}

func (s *memStore) Create(_ context.Context, booking model.Booking) (model.Booking, error) {
	s.checkLocked(booking.EventID)

	s.mu.Lock()
	defer s.mu.Unlock()

	return s.insert(booking)
}

func (s *memStore) CreateBatch(_ context.Context, bookings []model.Booking) ([]model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	snapshot := slices.Clone(s.rows)
	nextID := s.nextID
	created := make([]model.Booking, 0, len(bookings))

	for _, booking := range bookings {
		s.checkLocked(booking.EventID)

		row, err := s.insert(booking)
		if err != nil {
			s.rows, s.nextID = snapshot, nextID

			return nil, err
		}

		created = append(created, row)
	}

	return created, nil
}

func (s *memStore) updateSingle(eventID, userID string, match func(model.Booking) bool, apply func(*model.Booking)) error {
	s.checkLocked(eventID)

	s.mu.Lock()
	defer s.mu.Unlock()

	var idx []int

	for _, i := range s.activeIndexes(eventID, userID) {
		if match(s.rows[i]) {
			idx = append(idx, i)
		}
	}

	switch {
	case len(idx) == 0:
		return model.ErrNotFound
	case len(idx) > 1:
		return model.ErrAmbiguousState
	}

	apply(&s.rows[idx[0]])
	s.rows[idx[0]].UpdatedAt = s.clock.Now()

	return nil
}

func (s *memStore) UpdateStatus(_ context.Context, eventID, userID string, reservedByID *string, status model.Status, info model.AdditionalInformation) error {
	return s.updateSingle(eventID, userID,
		func(model.Booking) bool { return true },
		func(b *model.Booking) {
			b.Status = status

			if reservedByID != nil {
				b.ReservedByID = reservedByID
			}

			if info != nil {
				b.AdditionalInformation = info
			}
		})
}

func (s *memStore) ConfirmReservation(_ context.Context, eventID, userID string, info model.AdditionalInformation) error {
	return s.updateSingle(eventID, userID,
		func(b model.Booking) bool { return b.ReservationExpiresAt != nil },
		func(b *model.Booking) {
			b.ReservationExpiresAt = nil

			if info != nil {
				b.AdditionalInformation = info
			}
		})
}

func (s *memStore) Delete(_ context.Context, eventID, userID string) error {
	s.checkLocked(eventID)

	s.mu.Lock()
	defer s.mu.Unlock()

	kept := s.rows[:0]
	for _, row := range s.rows {
		if row.EventID != eventID || row.UserID != userID {
			kept = append(kept, row)
		}
	}

	removed := len(s.rows) - len(kept)
	s.rows = kept

	if removed == 0 {
		return model.ErrNotFound
	}

	return nil
}

func (s *memStore) redact(match func(model.Booking) bool) int64 {
	s.mu.Lock()
	defer s.mu.Unlock()

	var affected int64

	for i := range s.rows {
		if match(s.rows[i]) && s.rows[i].AdditionalInformation != nil {
			s.rows[i].AdditionalInformation = nil
			affected++
		}
	}

	return affected
}

func (s *memStore) RedactAdditionalInformation(_ context.Context, userID string) (int64, error) {
	return s.redact(func(b model.Booking) bool { return b.UserID == userID }), nil
}

func (s *memStore) RedactAdditionalInformationByEvent(_ context.Context, eventID string) (int64, error) {
	return s.redact(func(b model.Booking) bool { return b.EventID == eventID }), nil
}

func (s *memStore) FindByEventAndUser(_ context.Context, eventID, userID string) (model.Booking, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var found *model.Booking

	for i := len(s.rows) - 1; i >= 0; i-- {
		row := s.rows[i]
		if row.EventID != eventID || row.UserID != userID {
			continue
		}

		if !row.IsCancelled() {
			return row, nil
		}

		if found == nil {
			found = &row
		}
	}

	if found == nil {
		return model.Booking{}, model.ErrNotFound
	}

	return *found, nil
}

func (s *memStore) filter(match func(model.Booking) bool) []model.Booking {
	s.mu.Lock()
	defer s.mu.Unlock()

	res := []model.Booking{}

	for _, row := range s.rows {
		if match(row) {
			res = append(res, row)
		}
	}

	slices.SortFunc(res, func(a, b model.Booking) int {
		if c := a.CreatedAt.Compare(b.CreatedAt); c != 0 {
			return c
		}

		return cmp.Compare(a.ID, b.ID)
	})

	return res
}

func (s *memStore) FindAllByEvent(_ context.Context, eventID string, status *model.Status) ([]model.Booking, error) {
	return s.filter(func(b model.Booking) bool {
		return b.EventID == eventID && (status == nil || b.Status == *status)
	}), nil
}

func (s *memStore) FindAllByUser(_ context.Context, userID string) ([]model.Booking, error) {
	return s.filter(func(b model.Booking) bool { return b.UserID == userID }), nil
}

func (s *memStore) FindReservationsByUser(_ context.Context, reservedByID string) ([]model.Booking, error) {
	return s.filter(func(b model.Booking) bool {
		return b.ReservedByID != nil && *b.ReservedByID == reservedByID
	}), nil
}

func (s *memStore) FindWaitingList(ctx context.Context, eventID string) ([]model.Booking, error) {
	status := model.StatusWaitingList

	return s.FindAllByEvent(ctx, eventID, &status)
}

func (s *memStore) FindExpiredReservations(_ context.Context, now time.Time, eventID *string) ([]model.Booking, error) {
	return s.filter(func(b model.Booking) bool {
		return b.ReservedByID != nil && b.ReservationExpiresAt != nil && b.ReservationExpiresAt.Before(now) &&
			!b.IsCancelled() && (eventID == nil || b.EventID == *eventID)
	}), nil
}

func (s *memStore) FindEventIDsWithAdditionalInformation(_ context.Context) ([]string, error) {
	ids := []string{}

	for _, b := range s.filter(func(b model.Booking) bool { return b.AdditionalInformation != nil }) {
		if !slices.Contains(ids, b.EventID) {
			ids = append(ids, b.EventID)
		}
	}

	slices.Sort(ids)

	return ids, nil
}

func (s *memStore) CountAll(_ context.Context) (int, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	return len(s.rows), nil
}

func (s *memStore) StatusCountsByEvent(_ context.Context, eventID string, includeDeletedUsers bool) (model.StatusCounts, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	counts := model.StatusCounts{}

	for _, row := range s.rows {
		if row.EventID != eventID || (!includeDeletedUsers && s.deleted[row.UserID]) {
			continue
		}

		counts[row.Status]++
	}

	return counts, nil
}

func (s *memStore) statuses(eventID string) map[string]model.Status {
	res := map[string]model.Status{}

	for _, row := range s.filter(func(b model.Booking) bool { return b.EventID == eventID && !b.IsCancelled() }) {
		res[row.UserID] = row.Status
	}

	return res
}

type memEvents struct {
	capacity map[string]int
}

func (e *memEvents) GetEventCapacity(_ context.Context, eventID string) (int, error) {
	capacity, ok := e.capacity[eventID]
	if !ok {
		return 0, fmt.Errorf("%w: %s", eventModel.ErrEventNotFound, eventID)
	}

	return capacity, nil
}

func (e *memEvents) GetEventDates(_ context.Context, eventID string) (eventModel.Dates, error) {
	return eventModel.Dates{}, fmt.Errorf("%w: %s", eventModel.ErrEventNotFound, eventID)
}

func (e *memEvents) Get(_ context.Context, eventID string) (eventDto.EventResponse, error) {
	return eventDto.EventResponse{}, fmt.Errorf("%w: %s", eventModel.ErrEventNotFound, eventID)
}

type sentNotification struct {
	userID     string
	templateID string
	data       map[string]any
}

type memNotifier struct {
	mu   sync.Mutex
	sent []sentNotification
	err  error
}

func (n *memNotifier) Send(_ context.Context, userID, templateID string, data map[string]any) error {
	n.mu.Lock()
	defer n.mu.Unlock()

	n.sent = append(n.sent, sentNotification{userID: userID, templateID: templateID, data: data})

	return n.err
}

func (n *memNotifier) templates(userID string) []string {
	n.mu.Lock()
	defer n.mu.Unlock()

	var res []string

	for _, s := range n.sent {
		if s.userID == userID {
			res = append(res, s.templateID)
		}
	}

	return res
}
