//go:build unit

package commands_test

import (
	"context"
	"errors"
	"time"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/infra"
	"geo-tours/internal/infra/db"
	"geo-tours/internal/notify"
	"geo-tours/internal/pkg/clock"
	"geo-tours/internal/usecase/commands"
	"geo-tours/internal/usecase/shared"

	"github.com/google/uuid"
)

// In-memory unit of work. Write commands are exercised against it the
// same way the postgres implementation is driven, minus locking.
type fakeState struct {
	bookings map[uuid.UUID]*booking.Booking
	requests map[uuid.UUID]*booking.ChangeRequest
	tours    map[uuid.UUID]shared.TourSnapshot
	hotels   map[uuid.UUID]shared.HotelSnapshot
	users    map[uuid.UUID]shared.UserSnapshot

	tourReplacements  int
	hotelReplacements int
}

func newFakeState() *fakeState {
	return &fakeState{
		bookings: map[uuid.UUID]*booking.Booking{},
		requests: map[uuid.UUID]*booking.ChangeRequest{},
		tours:    map[uuid.UUID]shared.TourSnapshot{},
		hotels:   map[uuid.UUID]shared.HotelSnapshot{},
		users:    map[uuid.UUID]shared.UserSnapshot{},
	}
}

func notFoundErr(what string) error {
	return infra.WrapRepoErr(what+" not found", errors.New("no rows in result set"), infra.KindNotFound)
}

func cloneBooking(b *booking.Booking) *booking.Booking {
	clone := *b
	clone.Tours = append([]booking.TourItem(nil), b.Tours...)
	if b.Hotel != nil {
		h := *b.Hotel
		h.Rooms = append([]booking.HotelRoom(nil), b.Hotel.Rooms...)
		clone.Hotel = &h
	}
	return &clone
}

func cloneRequest(r *booking.ChangeRequest) *booking.ChangeRequest {
	clone := *r
	return &clone
}

type fakeUoW struct {
	s *fakeState
}

func (u *fakeUoW) Within(ctx context.Context, fn func(ctx context.Context, tx shared.Tx) error) error {
	return fn(ctx, &fakeTx{s: u.s})
}

func (u *fakeUoW) WithinReadOnly(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) WithDB(ctx context.Context, fn func(ctx context.Context, dbtx db.DBTX) error) error {
	return fn(ctx, nil)
}

func (u *fakeUoW) CommandReads() shared.CommandReads {
	return &fakeReads{s: u.s}
}

type fakeTx struct {
	s *fakeState
}

func (t *fakeTx) Bookings() shared.BookingRepository             { return &fakeBookingRepo{s: t.s} }
func (t *fakeTx) ChangeRequests() shared.ChangeRequestRepository { return &fakeChangeRequestRepo{s: t.s} }
func (t *fakeTx) Notifications() shared.NotificationRepository   { return fakeNotificationRepo{} }
func (t *fakeTx) Reads() shared.CommandReads                     { return &fakeReads{s: t.s} }
func (t *fakeTx) DB() db.DBTX                                    { return nil }

type fakeReads struct {
	s *fakeState
}

func (r *fakeReads) BookingByID(_ context.Context, id uuid.UUID) (*booking.Booking, error) {
	b, ok := r.s.bookings[id]
	if !ok {
		return nil, notFoundErr("booking")
	}
	return cloneBooking(b), nil
}

func (r *fakeReads) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.BookingByID(ctx, id)
}

func (r *fakeReads) ChangeRequestByID(_ context.Context, id uuid.UUID) (*booking.ChangeRequest, error) {
	req, ok := r.s.requests[id]
	if !ok {
		return nil, notFoundErr("change request")
	}
	return cloneRequest(req), nil
}

func (r *fakeReads) HasPendingChangeRequest(_ context.Context, bookingID uuid.UUID) (bool, error) {
	for _, req := range r.s.requests {
		if req.BookingID == bookingID && req.Status == booking.StatusPending {
			return true, nil
		}
	}
	return false, nil
}

func (r *fakeReads) TourByID(_ context.Context, id uuid.UUID) (*shared.TourSnapshot, error) {
	t, ok := r.s.tours[id]
	if !ok {
		return nil, notFoundErr("tour")
	}
	return &t, nil
}

func (r *fakeReads) HotelByID(_ context.Context, id uuid.UUID) (*shared.HotelSnapshot, error) {
	h, ok := r.s.hotels[id]
	if !ok {
		return nil, notFoundErr("hotel")
	}
	return &h, nil
}

func (r *fakeReads) UserByID(_ context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	u, ok := r.s.users[id]
	if !ok {
		return nil, notFoundErr("user")
	}
	return &u, nil
}

type fakeBookingRepo struct {
	s *fakeState
}

func (r *fakeBookingRepo) Create(_ context.Context, _ db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	clone := cloneBooking(b)
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.s.bookings[clone.ID] = clone
	return clone.ID, nil
}

func (r *fakeBookingRepo) Update(_ context.Context, _ db.DBTX, b *booking.Booking) error {
	if _, ok := r.s.bookings[b.ID]; !ok {
		return notFoundErr("booking")
	}
	r.s.bookings[b.ID] = cloneBooking(b)
	return nil
}

func (r *fakeBookingRepo) ReplaceTourItems(_ context.Context, _ db.DBTX, bookingID uuid.UUID, items []booking.TourItem) error {
	b, ok := r.s.bookings[bookingID]
	if !ok {
		return notFoundErr("booking")
	}
	r.s.tourReplacements++
	b.Tours = append([]booking.TourItem(nil), items...)
	return nil
}

func (r *fakeBookingRepo) ReplaceHotelService(_ context.Context, _ db.DBTX, bookingID uuid.UUID, svc *booking.HotelService) error {
	b, ok := r.s.bookings[bookingID]
	if !ok {
		return notFoundErr("booking")
	}
	r.s.hotelReplacements++
	if svc == nil {
		b.Hotel = nil
		return nil
	}
	h := *svc
	h.Rooms = append([]booking.HotelRoom(nil), svc.Rooms...)
	b.Hotel = &h
	return nil
}

func (r *fakeBookingRepo) Purge(_ context.Context, _ db.DBTX, id uuid.UUID) error {
	if _, ok := r.s.bookings[id]; !ok {
		return notFoundErr("booking")
	}
	delete(r.s.bookings, id)
	return nil
}

type fakeChangeRequestRepo struct {
	s *fakeState
}

func (r *fakeChangeRequestRepo) Create(_ context.Context, _ db.DBTX, req *booking.ChangeRequest) (uuid.UUID, error) {
	clone := cloneRequest(req)
	if clone.ID == uuid.Nil {
		clone.ID = uuid.New()
	}
	r.s.requests[clone.ID] = clone
	return clone.ID, nil
}

func (r *fakeChangeRequestRepo) Update(_ context.Context, _ db.DBTX, req *booking.ChangeRequest) error {
	if _, ok := r.s.requests[req.ID]; !ok {
		return notFoundErr("change request")
	}
	r.s.requests[req.ID] = cloneRequest(req)
	return nil
}

type fakeNotificationRepo struct{}

func (fakeNotificationRepo) Create(context.Context, db.DBTX, uuid.UUID, string, string, string, []byte) error {
	return nil
}

type fakeDispatcher struct {
	events []notify.Event
}

func (d *fakeDispatcher) Dispatch(_ context.Context, events []notify.Event) {
	d.events = append(d.events, events...)
}

// fixture bundles the fake wiring behind the two command interfaces.
type fixture struct {
	state      *fakeState
	dispatcher *fakeDispatcher
	clock      *clock.MockClock
	bookings   commands.BookingCommands
	requests   commands.ChangeRequestCommands
}

var fixedNow = time.Date(2026, 3, 2, 12, 0, 0, 0, time.UTC)

func newFixture() *fixture {
	state := newFakeState()
	dispatcher := &fakeDispatcher{}
	clk := clock.NewMockClock(fixedNow)
	uow := &fakeUoW{s: state}
	return &fixture{
		state:      state,
		dispatcher: dispatcher,
		clock:      clk,
		bookings:   commands.NewBookingUseCase(uow, dispatcher, clk),
		requests:   commands.NewChangeRequestUseCase(uow, dispatcher, clk),
	}
}

func (f *fixture) seedTour(active bool) uuid.UUID {
	id := uuid.New()
	f.state.tours[id] = shared.TourSnapshot{ID: id, Title: "Kazbegi day trip", IsActive: active}
	return id
}

func (f *fixture) seedUser() uuid.UUID {
	id := uuid.New()
	f.state.users[id] = shared.UserSnapshot{ID: id, Name: "Nino B.", Email: "nino@example.com"}
	return id
}

func (f *fixture) seedHotel(email string) uuid.UUID {
	id := uuid.New()
	f.state.hotels[id] = shared.HotelSnapshot{ID: id, Name: "Rooms Kazbegi", Email: email}
	return id
}

// seedBooking stores the aggregate and registers snapshots for every
// reference it carries so referential checks pass.
func (f *fixture) seedBooking(b *booking.Booking) uuid.UUID {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}
	if b.UserID != nil {
		if _, ok := f.state.users[*b.UserID]; !ok {
			f.state.users[*b.UserID] = shared.UserSnapshot{ID: *b.UserID, Name: "Nino B.", Email: "nino@example.com"}
		}
	}
	for _, item := range b.Tours {
		if _, ok := f.state.tours[item.TourID]; !ok {
			f.state.tours[item.TourID] = shared.TourSnapshot{ID: item.TourID, Title: "Kazbegi day trip", IsActive: true}
		}
	}
	if b.Hotel != nil {
		if _, ok := f.state.hotels[b.Hotel.HotelID]; !ok {
			f.state.hotels[b.Hotel.HotelID] = shared.HotelSnapshot{ID: b.Hotel.HotelID, Name: "Rooms Kazbegi"}
		}
	}
	f.state.bookings[b.ID] = cloneBooking(b)
	return b.ID
}

func (f *fixture) stored(id uuid.UUID) *booking.Booking {
	return f.state.bookings[id]
}
