package readstore

import (
	"context"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/infra"
	"geo-tours/internal/infra/db"
	"geo-tours/internal/pkg/pgconv"
	"geo-tours/internal/usecase/shared"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

// CommandReads loads full aggregates for mutation and minimal snapshots
// for referential checks.
type CommandReads struct {
	dbtx db.DBTX
}

func NewCommandReads(dbtx db.DBTX) *CommandReads {
	return &CommandReads{dbtx: dbtx}
}

var bookingColumns = []string{
	"id", "user_id", "guest_name", "guest_email", "guest_phone",
	"status", "service_status",
	"approved_at", "rejected_at", "cancelled_at",
	"is_deleted", "deleted_at",
	"total_price", "amount_paid", "currency", "amount_paid_mode", "amount_paid_percent",
	"tour_id", "desired_date", "adults", "children", "car_type",
	"hotel_name", "hotel_check_in", "hotel_check_out", "hotel_room_type", "hotel_guests", "hotel_notes",
	"note", "admin_note", "created_at", "updated_at",
}

func (r *CommandReads) BookingByID(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.loadBooking(ctx, id, false)
}

func (r *CommandReads) BookingByIDForUpdate(ctx context.Context, id uuid.UUID) (*booking.Booking, error) {
	return r.loadBooking(ctx, id, true)
}

func (r *CommandReads) loadBooking(ctx context.Context, id uuid.UUID, forUpdate bool) (*booking.Booking, error) {
	q := psql.Select(bookingColumns...).
		From("bookings").
		Where(squirrel.Eq{"id": id})
	if forUpdate {
		q = q.Suffix("FOR UPDATE")
	}
	query, args, err := q.ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build booking query", err)
	}

	var b booking.Booking
	row := r.dbtx.QueryRow(ctx, query, args...)
	if err := row.Scan(
		&b.ID, &b.UserID, &b.GuestName, &b.GuestEmail, &b.GuestPhone,
		&b.Status, &b.ServiceStatus,
		&b.ApprovedAt, &b.RejectedAt, &b.CancelledAt,
		&b.IsDeleted, &b.DeletedAt,
		&b.TotalPrice, &b.AmountPaid, &b.Currency, &b.AmountPaidMode, &b.AmountPaidPercent,
		&b.TourID, &b.DesiredDate, &b.Adults, &b.Children, &b.CarType,
		&b.HotelName, &b.HotelCheckIn, &b.HotelCheckOut, &b.HotelRoomType, &b.HotelGuests, &b.HotelNotes,
		&b.Note, &b.AdminNote, &b.CreatedAt, &b.UpdatedAt,
	); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("booking not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find booking by ID", err)
	}

	if b.Tours, err = r.loadTourItems(ctx, id); err != nil {
		return nil, err
	}
	if b.Hotel, err = r.loadHotelService(ctx, id); err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *CommandReads) loadTourItems(ctx context.Context, bookingID uuid.UUID) ([]booking.TourItem, error) {
	query, args, err := psql.Select("id", "tour_id", "desired_date", "adults", "children", "car_type").
		From("booking_tours").
		Where(squirrel.Eq{"booking_id": bookingID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build tour items query", err)
	}

	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load tour items", err)
	}
	defer rows.Close()

	var items []booking.TourItem
	for rows.Next() {
		var item booking.TourItem
		if err := rows.Scan(&item.ID, &item.TourID, &item.DesiredDate, &item.Adults, &item.Children, &item.CarType); err != nil {
			return nil, infra.WrapRepoErr("failed to scan tour item", err)
		}
		items = append(items, item)
	}
	return items, rows.Err()
}

func (r *CommandReads) loadHotelService(ctx context.Context, bookingID uuid.UUID) (*booking.HotelService, error) {
	query, args, err := psql.Select("id", "hotel_id", "check_in", "check_out", "notes", "send_request_to_hotel").
		From("booking_hotels").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hotel service query", err)
	}

	var svc booking.HotelService
	row := r.dbtx.QueryRow(ctx, query, args...)
	if err := row.Scan(&svc.ID, &svc.HotelID, &svc.CheckIn, &svc.CheckOut, &svc.Notes, &svc.SendRequestToHotel); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, nil
		}
		return nil, infra.WrapRepoErr("failed to load hotel service", err)
	}

	query, args, err = psql.Select("room_type", "guest_count").
		From("booking_hotel_rooms").
		Where(squirrel.Eq{"booking_hotel_id": svc.ID}).
		OrderBy("position").
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hotel rooms query", err)
	}
	rows, err := r.dbtx.Query(ctx, query, args...)
	if err != nil {
		return nil, infra.WrapRepoErr("failed to load hotel rooms", err)
	}
	defer rows.Close()

	for rows.Next() {
		var room booking.HotelRoom
		if err := rows.Scan(&room.RoomType, &room.GuestCount); err != nil {
			return nil, infra.WrapRepoErr("failed to scan hotel room", err)
		}
		svc.Rooms = append(svc.Rooms, room)
	}
	return &svc, rows.Err()
}

func (r *CommandReads) ChangeRequestByID(ctx context.Context, id uuid.UUID) (*booking.ChangeRequest, error) {
	query, args, err := psql.Select("id", "booking_id", "requested_date", "reason", "status", "admin_note", "resolved_at", "created_at").
		From("booking_change_requests").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build change request query", err)
	}

	var req booking.ChangeRequest
	row := r.dbtx.QueryRow(ctx, query, args...)
	if err := row.Scan(&req.ID, &req.BookingID, &req.RequestedDate, &req.Reason, &req.Status, &req.AdminNote, &req.ResolvedAt, &req.CreatedAt); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("change request not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find change request by ID", err)
	}
	return &req, nil
}

func (r *CommandReads) HasPendingChangeRequest(ctx context.Context, bookingID uuid.UUID) (bool, error) {
	sub := psql.Select("1").
		From("booking_change_requests").
		Where(squirrel.Eq{"booking_id": bookingID, "status": booking.StatusPending})
	sql, args, err := sub.ToSql()
	if err != nil {
		return false, infra.WrapRepoErr("failed to build pending change request query", err)
	}

	var exists bool
	if err := r.dbtx.QueryRow(ctx, "SELECT EXISTS ("+sql+")", args...).Scan(&exists); err != nil {
		return false, infra.WrapRepoErr("failed to check pending change request", err)
	}
	return exists, nil
}

func (r *CommandReads) TourByID(ctx context.Context, id uuid.UUID) (*shared.TourSnapshot, error) {
	query, args, err := psql.Select("id", "title", "is_active").
		From("tours").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build tour query", err)
	}

	var snap shared.TourSnapshot
	if err := r.dbtx.QueryRow(ctx, query, args...).Scan(&snap.ID, &snap.Title, &snap.IsActive); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("tour not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find tour by ID", err)
	}
	return &snap, nil
}

func (r *CommandReads) HotelByID(ctx context.Context, id uuid.UUID) (*shared.HotelSnapshot, error) {
	query, args, err := psql.Select("id", "name", "email").
		From("hotels").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build hotel query", err)
	}

	var snap shared.HotelSnapshot
	if err := r.dbtx.QueryRow(ctx, query, args...).Scan(&snap.ID, &snap.Name, &snap.Email); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("hotel not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find hotel by ID", err)
	}
	return &snap, nil
}

func (r *CommandReads) UserByID(ctx context.Context, id uuid.UUID) (*shared.UserSnapshot, error) {
	query, args, err := psql.Select("id", "name", "email", "phone").
		From("users").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return nil, infra.WrapRepoErr("failed to build user query", err)
	}

	var snap shared.UserSnapshot
	if err := r.dbtx.QueryRow(ctx, query, args...).Scan(&snap.ID, &snap.Name, &snap.Email, &snap.Phone); err != nil {
		if pgconv.IsNoRows(err) {
			return nil, infra.WrapRepoErr("user not found", err, infra.KindNotFound)
		}
		return nil, infra.WrapRepoErr("failed to find user by ID", err)
	}
	return &snap, nil
}
