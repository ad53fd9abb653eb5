package readstore

import (
	"context"
	"time"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/infra"
	"geo-tours/internal/infra/db"
	"geo-tours/internal/pkg/pgconv"
	"geo-tours/internal/usecase/queries"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

type BookingReadStore struct {
	dbtx db.DBTX
}

func NewBookingReadStore(dbtx db.DBTX) *BookingReadStore {
	return &BookingReadStore{dbtx: dbtx}
}

var bookingViewColumns = []string{
	"b.id", "b.user_id", "u.name", "u.email", "u.phone",
	"b.guest_name", "b.guest_email", "b.guest_phone",
	"b.status", "b.service_status",
	"b.approved_at", "b.rejected_at", "b.cancelled_at",
	"b.is_deleted", "b.deleted_at",
	"b.total_price", "b.amount_paid", "b.currency", "b.amount_paid_mode", "b.amount_paid_percent",
	"b.tour_id", "t.title", "b.desired_date", "b.adults", "b.children", "b.car_type",
	"b.hotel_name", "b.hotel_check_in", "b.hotel_check_out", "b.hotel_room_type", "b.hotel_guests", "b.hotel_notes",
	"b.note", "b.admin_note", "b.created_at", "b.updated_at",
}

func (r *BookingReadStore) baseSelect() squirrel.SelectBuilder {
	return psql.Select(bookingViewColumns...).
		From("bookings b").
		LeftJoin("users u ON b.user_id = u.id").
		LeftJoin("tours t ON b.tour_id = t.id")
}

func (r *BookingReadStore) FindByID(ctx context.Context, id uuid.UUID) (*queries.BookingView, error) {
	query, args, err := r.baseSelect().Where(squirrel.Eq{"b.id": id}).ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking view query", err)
	}

	view, err := r.scanView(r.dbtx.QueryRow(ctx, query, args...))
	if err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking view by ID", err)
	}

	if err := r.attachNested(ctx, []*queries.BookingView{view}); err != nil {
		return nil, err
	}
	return view, nil
}

func (r *BookingReadStore) Find(ctx context.Context, filter queries.BookingFilter) ([]*queries.BookingView, error) {
	q := r.baseSelect().Where(squirrel.Eq{"b.is_deleted": filter.Deleted})
	if filter.UserID != nil {
		q = q.Where(squirrel.Eq{"b.user_id": *filter.UserID})
	}
	if filter.Status != nil {
		q = q.Where(squirrel.Eq{"b.status": *filter.Status})
	}
	if filter.DesiredFrom != nil {
		q = q.Where(squirrel.GtOrEq{"b.desired_date": *filter.DesiredFrom})
	}
	if filter.DesiredTo != nil {
		q = q.Where(squirrel.Lt{"b.desired_date": *filter.DesiredTo})
	}
	query, args, err := q.OrderBy("b.created_at DESC").ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking list query", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to list bookings", err)
	}
	defer rows.Close()

	var views []*queries.BookingView
	for rows.Next() {
		view, err := r.scanView(rows)
		if err != nil {
			return nil, infra.WrapRepoErr("failed to scan booking view", err)
		}
		views = append(views, view)
	}
	if err := rows.Err(); err != nil {
		return nil, infra.WrapRepoErr("failed to iterate bookings", err)
	}

	if err := r.attachNested(ctx, views); err != nil {
		return nil, err
	}
	return views, nil
}

// RevenueRows returns the financial tuples of non-deleted bookings
// created inside [from, to); nil bounds are open.
func (r *BookingReadStore) RevenueRows(ctx context.Context, from, to *time.Time) ([]queries.RevenueRow, error) {
	q := psql.Select("created_at", "total_price", "amount_paid").
		From("bookings").
		Where(squirrel.Eq{"is_deleted": false})
	if from != nil {
		q = q.Where(squirrel.GtOrEq{"created_at": *from})
	}
	if to != nil {
		q = q.Where(squirrel.Lt{"created_at": *to})
	}
	query, args, err := q.OrderBy("created_at").ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build revenue rows query", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load revenue rows", err)
	}
	defer rows.Close()

	var result []queries.RevenueRow
	for rows.Next() {
		var row queries.RevenueRow
		if err := rows.Scan(&row.CreatedAt, &row.TotalPrice, &row.AmountPaid); err != nil {
			return nil, infra.WrapRepoErr("failed to scan revenue row", err)
		}
		result = append(result, row)
	}
	return result, rows.Err()
}

type rowScanner interface {
	Scan(dest ...any) error
}

func (r *BookingReadStore) scanView(row rowScanner) (*queries.BookingView, error) {
	var v queries.BookingView
	if err := row.Scan(
		&v.ID, &v.UserID, &v.UserName, &v.UserEmail, &v.UserPhone,
		&v.GuestName, &v.GuestEmail, &v.GuestPhone,
		&v.Status, &v.ServiceStatus,
		&v.ApprovedAt, &v.RejectedAt, &v.CancelledAt,
		&v.IsDeleted, &v.DeletedAt,
		&v.TotalPrice, &v.AmountPaid, &v.Currency, &v.AmountPaidMode, &v.AmountPaidPercent,
		&v.TourID, &v.TourTitle, &v.DesiredDate, &v.Adults, &v.Children, &v.CarType,
		&v.HotelName, &v.HotelCheckIn, &v.HotelCheckOut, &v.HotelRoomType, &v.HotelGuests, &v.HotelNotes,
		&v.Note, &v.AdminNote, &v.CreatedAt, &v.UpdatedAt,
	); err != nil {
		return nil, err
	}
	v.BalanceDue = booking.Round2(v.TotalPrice - v.AmountPaid)
	if v.Tours == nil {
		v.Tours = []queries.TourItemView{}
	}
	return &v, nil
}

// attachNested batches the tour items and hotel services of the given
// views in two round trips.
func (r *BookingReadStore) attachNested(ctx context.Context, views []*queries.BookingView) error {
	if len(views) == 0 {
		return nil
	}

	ids := make([]uuid.UUID, len(views))
	byID := make(map[uuid.UUID]*queries.BookingView, len(views))
	for i, v := range views {
		ids[i] = v.ID
		byID[v.ID] = v
	}

	query, args, err := psql.Select("bt.booking_id", "bt.id", "bt.tour_id", "t.title", "bt.desired_date", "bt.adults", "bt.children", "bt.car_type").
		From("booking_tours bt").
		Join("tours t ON bt.tour_id = t.id").
		Where(squirrel.Eq{"bt.booking_id": ids}).
		OrderBy("bt.booking_id", "bt.position").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build tour items view query", err)
	}
	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to load tour item views", err)
	}
	for rows.Next() {
		var bookingID uuid.UUID
		var item queries.TourItemView
		if err := rows.Scan(&bookingID, &item.ID, &item.TourID, &item.TourTitle, &item.DesiredDate, &item.Adults, &item.Children, &item.CarType); err != nil {
			rows.Close()
			return infra.WrapRepoErr("failed to scan tour item view", err)
		}
		if v, ok := byID[bookingID]; ok {
			v.Tours = append(v.Tours, item)
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate tour item views", err)
	}

	query, args, err = psql.Select("bh.booking_id", "bh.id", "bh.hotel_id", "h.name", "bh.check_in", "bh.check_out", "bh.notes", "bh.send_request_to_hotel").
		From("booking_hotels bh").
		Join("hotels h ON bh.hotel_id = h.id").
		Where(squirrel.Eq{"bh.booking_id": ids}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build hotel service view query", err)
	}
	rows, err = r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to load hotel service views", err)
	}
	serviceIDs := make(map[uuid.UUID]uuid.UUID) // service ID -> booking ID
	for rows.Next() {
		var bookingID, serviceID uuid.UUID
		var hotelID uuid.UUID
		var svc queries.HotelServiceView
		if err := rows.Scan(&bookingID, &serviceID, &hotelID, &svc.HotelName, &svc.CheckIn, &svc.CheckOut, &svc.Notes, &svc.SendRequestToHotel); err != nil {
			rows.Close()
			return infra.WrapRepoErr("failed to scan hotel service view", err)
		}
		svc.HotelID = &hotelID
		svc.Rooms = []queries.HotelRoomView{}
		if v, ok := byID[bookingID]; ok {
			v.Hotel = &svc
			serviceIDs[serviceID] = bookingID
		}
	}
	rows.Close()
	if err := rows.Err(); err != nil {
		return infra.WrapRepoErr("failed to iterate hotel service views", err)
	}

	if len(serviceIDs) == 0 {
		return nil
	}
	svcIDList := make([]uuid.UUID, 0, len(serviceIDs))
	for id := range serviceIDs {
		svcIDList = append(svcIDList, id)
	}
	query, args, err = psql.Select("booking_hotel_id", "room_type", "guest_count").
		From("booking_hotel_rooms").
		Where(squirrel.Eq{"booking_hotel_id": svcIDList}).
		OrderBy("booking_hotel_id", "position").
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build hotel rooms view query", err)
	}
	rows, err = r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to load hotel room views", err)
	}
	defer rows.Close()
	for rows.Next() {
		var serviceID uuid.UUID
		var room queries.HotelRoomView
		if err := rows.Scan(&serviceID, &room.RoomType, &room.GuestCount); err != nil {
			return infra.WrapRepoErr("failed to scan hotel room view", err)
		}
		if bookingID, ok := serviceIDs[serviceID]; ok {
			if v, ok := byID[bookingID]; ok && v.Hotel != nil {
				v.Hotel.Rooms = append(v.Hotel.Rooms, room)
			}
		}
	}
	return rows.Err()
}
