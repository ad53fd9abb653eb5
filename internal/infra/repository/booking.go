package repository

import (
	"context"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/infra"
	"geo-tours/internal/infra/db"

	"github.com/Masterminds/squirrel"
	"github.com/google/uuid"
)

var psql = squirrel.StatementBuilder.PlaceholderFormat(squirrel.Dollar)

type BookingRepository struct{}

func NewBookingRepository() *BookingRepository {
	return &BookingRepository{}
}

func (r *BookingRepository) Create(ctx context.Context, dbtx db.DBTX, b *booking.Booking) (uuid.UUID, error) {
	if b.ID == uuid.Nil {
		b.ID = uuid.New()
	}

	query, args, err := psql.Insert("bookings").
		Columns(
			"id", "user_id", "guest_name", "guest_email", "guest_phone",
			"status", "service_status",
			"approved_at", "rejected_at", "cancelled_at",
			"is_deleted", "deleted_at",
			"total_price", "amount_paid", "currency", "amount_paid_mode", "amount_paid_percent",
			"tour_id", "desired_date", "adults", "children", "car_type",
			"hotel_name", "hotel_check_in", "hotel_check_out", "hotel_room_type", "hotel_guests", "hotel_notes",
			"note", "admin_note",
		).
		Values(
			b.ID, b.UserID, b.GuestName, b.GuestEmail, b.GuestPhone,
			b.Status, b.ServiceStatus,
			b.ApprovedAt, b.RejectedAt, b.CancelledAt,
			b.IsDeleted, b.DeletedAt,
			b.TotalPrice, b.AmountPaid, b.Currency, b.AmountPaidMode, b.AmountPaidPercent,
			b.TourID, b.DesiredDate, b.Adults, b.Children, b.CarType,
			b.HotelName, b.HotelCheckIn, b.HotelCheckOut, b.HotelRoomType, b.HotelGuests, b.HotelNotes,
			b.Note, b.AdminNote,
		).
		Suffix("RETURNING created_at, updated_at").
		ToSql()
	if err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to build insert booking query", err)
	}

	if err := dbtx.QueryRow(ctx, query, args...).Scan(&b.CreatedAt, &b.UpdatedAt); err != nil {
		return uuid.Nil, infra.WrapRepoErr("failed to insert booking", err)
	}

	if err := r.ReplaceTourItems(ctx, dbtx, b.ID, b.Tours); err != nil {
		return uuid.Nil, err
	}
	if b.Hotel != nil {
		if err := r.ReplaceHotelService(ctx, dbtx, b.ID, b.Hotel); err != nil {
			return uuid.Nil, err
		}
	}

	return b.ID, nil
}

func (r *BookingRepository) Update(ctx context.Context, dbtx db.DBTX, b *booking.Booking) error {
	query, args, err := psql.Update("bookings").
		Set("user_id", b.UserID).
		Set("guest_name", b.GuestName).
		Set("guest_email", b.GuestEmail).
		Set("guest_phone", b.GuestPhone).
		Set("status", b.Status).
		Set("service_status", b.ServiceStatus).
		Set("approved_at", b.ApprovedAt).
		Set("rejected_at", b.RejectedAt).
		Set("cancelled_at", b.CancelledAt).
		Set("is_deleted", b.IsDeleted).
		Set("deleted_at", b.DeletedAt).
		Set("total_price", b.TotalPrice).
		Set("amount_paid", b.AmountPaid).
		Set("currency", b.Currency).
		Set("amount_paid_mode", b.AmountPaidMode).
		Set("amount_paid_percent", b.AmountPaidPercent).
		Set("tour_id", b.TourID).
		Set("desired_date", b.DesiredDate).
		Set("adults", b.Adults).
		Set("children", b.Children).
		Set("car_type", b.CarType).
		Set("hotel_name", b.HotelName).
		Set("hotel_check_in", b.HotelCheckIn).
		Set("hotel_check_out", b.HotelCheckOut).
		Set("hotel_room_type", b.HotelRoomType).
		Set("hotel_guests", b.HotelGuests).
		Set("hotel_notes", b.HotelNotes).
		Set("note", b.Note).
		Set("admin_note", b.AdminNote).
		Set("updated_at", squirrel.Expr("now()")).
		Where(squirrel.Eq{"id": b.ID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build update booking query", err)
	}

	ct, err := dbtx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to update booking", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}

// ReplaceTourItems is delete-then-recreate; callers run it inside the
// aggregate's transaction.
func (r *BookingRepository) ReplaceTourItems(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID, items []booking.TourItem) error {
	query, args, err := psql.Delete("booking_tours").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build delete tour items query", err)
	}
	if _, err := dbtx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to delete tour items", err)
	}

	if len(items) == 0 {
		return nil
	}

	insert := psql.Insert("booking_tours").
		Columns("id", "booking_id", "tour_id", "desired_date", "adults", "children", "car_type", "position")
	for i := range items {
		if items[i].ID == uuid.Nil {
			items[i].ID = uuid.New()
		}
		insert = insert.Values(
			items[i].ID, bookingID, items[i].TourID, items[i].DesiredDate,
			items[i].Adults, items[i].Children, items[i].CarType, i,
		)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build insert tour items query", err)
	}
	if _, err := dbtx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert tour items", err)
	}
	return nil
}

func (r *BookingRepository) ReplaceHotelService(ctx context.Context, dbtx db.DBTX, bookingID uuid.UUID, svc *booking.HotelService) error {
	query, args, err := psql.Delete("booking_hotels").
		Where(squirrel.Eq{"booking_id": bookingID}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build delete hotel service query", err)
	}
	if _, err := dbtx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to delete hotel service", err)
	}

	if svc == nil {
		return nil
	}
	if svc.ID == uuid.Nil {
		svc.ID = uuid.New()
	}

	query, args, err = psql.Insert("booking_hotels").
		Columns("id", "booking_id", "hotel_id", "check_in", "check_out", "notes", "send_request_to_hotel").
		Values(svc.ID, bookingID, svc.HotelID, svc.CheckIn, svc.CheckOut, svc.Notes, svc.SendRequestToHotel).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build insert hotel service query", err)
	}
	if _, err := dbtx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert hotel service", err)
	}

	if len(svc.Rooms) == 0 {
		return nil
	}
	insert := psql.Insert("booking_hotel_rooms").
		Columns("booking_hotel_id", "room_type", "guest_count", "position")
	for i, room := range svc.Rooms {
		insert = insert.Values(svc.ID, room.RoomType, room.GuestCount, i)
	}
	query, args, err = insert.ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build insert hotel rooms query", err)
	}
	if _, err := dbtx.Exec(ctx, query, args...); err != nil {
		return infra.WrapRepoErr("failed to insert hotel rooms", err)
	}
	return nil
}

func (r *BookingRepository) Purge(ctx context.Context, dbtx db.DBTX, id uuid.UUID) error {
	query, args, err := psql.Delete("bookings").
		Where(squirrel.Eq{"id": id}).
		ToSql()
	if err != nil {
		return infra.WrapRepoErr("failed to build purge booking query", err)
	}

	ct, err := dbtx.Exec(ctx, query, args...)
	if err != nil {
		return infra.WrapRepoErr("failed to purge booking", err)
	}
	if ct.RowsAffected() == 0 {
		return infra.WrapRepoErr("booking not found", nil, infra.KindNotFound)
	}
	return nil
}
