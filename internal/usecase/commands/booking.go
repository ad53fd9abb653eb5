package commands

import (
	"context"
	"errors"
	"log/slog"
	"strings"
	"time"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/infra"
	"geo-tours/internal/notify"
	"geo-tours/internal/pkg/clock"
	"geo-tours/internal/pkg/errs"
	"geo-tours/internal/pkg/patch"
	"geo-tours/internal/usecase/shared"

	"github.com/google/uuid"
)

type bookingUseCaseImpl struct {
	uow        shared.UnitOfWork
	dispatcher EventDispatcher
	clock      clock.Clock
}

func NewBookingUseCase(uow shared.UnitOfWork, dispatcher EventDispatcher, clk clock.Clock) BookingCommands {
	return &bookingUseCaseImpl{
		uow:        uow,
		dispatcher: dispatcher,
		clock:      clk,
	}
}

func (u *bookingUseCaseImpl) CreateBooking(ctx context.Context, in CreateBookingInput) (uuid.UUID, error) {
	reads := u.uow.CommandReads()

	tour, err := reads.TourByID(ctx, in.TourID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, errs.ErrTourNotFound)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}
	if !tour.IsActive {
		return uuid.Nil, errs.ErrTourInactive
	}

	user, err := reads.UserByID(ctx, in.UserID)
	if err != nil {
		if infra.IsKind(err, infra.KindNotFound) {
			return uuid.Nil, errs.Mark(err, errs.ErrUserNotFound)
		}
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	items, err := booking.NormalizeTours(nil, booking.LegacyTourInput{
		TourID:      &in.TourID,
		DesiredDate: &in.DesiredDate,
		Adults:      in.Adults,
		Children:    in.Children,
		CarType:     in.CarType,
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}
	if len(items) == 0 {
		return uuid.Nil, errs.Mark(booking.ErrInvalidDate, errs.ErrValidation)
	}

	userID := in.UserID
	b := &booking.Booking{
		UserID:         &userID,
		Status:         booking.StatusPending,
		ServiceStatus:  booking.ServicePending,
		Currency:       booking.CurrencyGEL,
		AmountPaidMode: booking.PayFlat,
		Tours:          items,
		Note:           trimPtr(in.Note),
	}
	b.SyncLegacySummary("")

	var id uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Bookings().Create(ctx, tx.DB(), b)
		return err
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	u.dispatcher.Dispatch(ctx, []notify.Event{{
		Notification: &notify.Notification{
			UserID: in.UserID,
			Kind:   "booking_created",
			Title:  "Booking received",
			Body:   "Your booking " + id.String() + " is awaiting review.",
			Metadata: map[string]any{
				"bookingId": id.String(),
				"tourTitle": tour.Title,
			},
		},
		Email: &notify.Email{
			Template:  notify.TemplateBookingReceived,
			Recipient: user.Email,
			Payload: map[string]any{
				"customerName": user.Name,
				"bookingId":    id.String(),
			},
		},
	}})
	return id, nil
}

func (u *bookingUseCaseImpl) CreateAdminBooking(ctx context.Context, in CreateAdminBookingInput) (uuid.UUID, error) {
	reads := u.uow.CommandReads()

	items, err := booking.NormalizeTours(in.Tours, in.LegacyTour)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}
	svc, stay, err := booking.NormalizeHotel(in.Hotel, in.LegacyHotel)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	payment, err := booking.ResolvePayment(booking.PaymentInput{
		TotalPrice: in.TotalPrice,
		AmountPaid: in.AmountPaid,
		Mode:       in.AmountPaidMode,
		Percent:    in.AmountPaidPercent,
	}, nil)
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	// Staff bookings are pre-approved unless told otherwise.
	status := booking.StatusApproved
	if in.Status != nil {
		if !in.Status.IsValid() {
			return uuid.Nil, errs.Mark(booking.ErrInvalidStatus, errs.ErrValidation)
		}
		status = *in.Status
	}
	currency := booking.CurrencyGEL
	if in.Currency != nil {
		if !in.Currency.IsValid() {
			return uuid.Nil, errs.Mark(errs.New("invalid currency"), errs.ErrValidation)
		}
		currency = *in.Currency
	}
	serviceStatus := booking.ServicePending
	if in.ServiceStatus != nil {
		serviceStatus = *in.ServiceStatus
	}

	b := &booking.Booking{
		UserID:        in.UserID,
		GuestName:     strings.TrimSpace(in.GuestName),
		GuestEmail:    strings.TrimSpace(in.GuestEmail),
		GuestPhone:    strings.TrimSpace(in.GuestPhone),
		Status:        status,
		ServiceStatus: serviceStatus,
		Currency:      currency,
		Tours:         items,
		Hotel:         svc,
		Note:          trimPtr(in.Note),
		AdminNote:     trimPtr(in.AdminNote),
	}
	b.ApplyPayment(payment)
	if stay != nil {
		b.ApplyLegacyStay(stay)
	}

	if err := b.ValidateIdentity(); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}
	if err := b.ValidateServices(); err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrValidation)
	}

	if b.UserID != nil {
		if _, err := reads.UserByID(ctx, *b.UserID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, errs.Mark(err, errs.ErrUserNotFound)
			}
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}
	for _, item := range items {
		if _, err := reads.TourByID(ctx, item.TourID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, errs.Mark(err, errs.ErrTourNotFound)
			}
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
	}

	var hotel *shared.HotelSnapshot
	if svc != nil {
		hotel, err = reads.HotelByID(ctx, svc.HotelID)
		if err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return uuid.Nil, errs.Mark(err, errs.ErrHotelNotFound)
			}
			return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
		}
		b.SyncLegacySummary(hotel.Name)
	} else {
		b.SyncLegacySummary("")
	}

	now := u.clock.Now()
	switch status {
	case booking.StatusApproved:
		b.ApprovedAt = &now
	case booking.StatusRejected:
		b.RejectedAt = &now
	case booking.StatusCancelled:
		b.CancelledAt = &now
	}

	var id uuid.UUID
	err = u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		id, err = tx.Bookings().Create(ctx, tx.DB(), b)
		return err
	})
	if err != nil {
		return uuid.Nil, errs.Mark(err, errs.ErrDatabaseOperationFailed)
	}

	var events []notify.Event
	if b.UserID != nil {
		events = append(events, notify.Event{
			Notification: &notify.Notification{
				UserID:   *b.UserID,
				Kind:     "booking_created",
				Title:    "Booking registered",
				Body:     "A booking was registered on your behalf.",
				Metadata: map[string]any{"bookingId": id.String()},
			},
		})
	}
	if svc != nil && svc.SendRequestToHotel && hotel.Email != "" {
		events = append(events, notify.Event{
			Email: &notify.Email{
				Template:  notify.TemplateHotelRequest,
				Recipient: hotel.Email,
				Payload:   hotelRequestPayload(hotel.Name, svc),
			},
		})
	}
	u.dispatcher.Dispatch(ctx, events)
	return id, nil
}

func (u *bookingUseCaseImpl) UpdateAdminBooking(ctx context.Context, id uuid.UUID, in UpdateAdminBookingInput) error {
	err := u.uow.Within(ctx, func(ctx context.Context, tx shared.Tx) error {
		b, err := tx.Reads().BookingByIDForUpdate(ctx, id)
		if err != nil {
			return err
		}
		if b.IsDeleted {
			return errs.ErrBookingDeleted
		}

		applyIdentityPatch(b, &in)
		if err := b.ValidateIdentity(); err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		if b.UserID != nil && in.UserID.HasValue() {
			if _, err := tx.Reads().UserByID(ctx, *b.UserID); err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, errs.ErrUserNotFound)
				}
				return err
			}
		}

		if in.toursTouched() {
			if err := u.replaceTours(ctx, tx, b, &in); err != nil {
				return err
			}
		}
		if in.hotelTouched() {
			if err := u.replaceHotel(ctx, tx, b, &in); err != nil {
				return err
			}
		}
		if err := b.ValidateServices(); err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}

		prev := booking.Payment{
			TotalPrice: b.TotalPrice,
			AmountPaid: b.AmountPaid,
			Mode:       b.AmountPaidMode,
			Percent:    b.AmountPaidPercent,
		}
		payment, err := booking.ResolvePayment(booking.PaymentInput{
			TotalPrice: in.TotalPrice.Ptr(),
			AmountPaid: in.AmountPaid.Ptr(),
			Mode:       in.AmountPaidMode.Ptr(),
			Percent:    in.AmountPaidPercent.Ptr(),
		}, &prev)
		if err != nil {
			return errs.Mark(err, errs.ErrValidation)
		}
		b.ApplyPayment(payment)

		if in.ServiceStatus.HasValue() {
			b.ServiceStatus = in.ServiceStatus.MustGet()
		}
		if in.Currency.IsSet() {
			currency := booking.CurrencyGEL
			if in.Currency.HasValue() {
				currency = in.Currency.MustGet()
				if !currency.IsValid() {
					return errs.Mark(errs.New("invalid currency"), errs.ErrValidation)
				}
			}
			b.Currency = currency
		}
		if in.Note.IsSet() {
			b.Note = trimPtr(in.Note.Ptr())
		}
		if in.AdminNote.IsSet() {
			b.AdminNote = trimPtr(in.AdminNote.Ptr())
		}

		hotelName := ""
		if b.Hotel != nil {
			hotel, err := tx.Reads().HotelByID(ctx, b.Hotel.HotelID)
			if err != nil {
				if infra.IsKind(err, infra.KindNotFound) {
					return errs.Mark(err, errs.ErrHotelNotFound)
				}
				return err
			}
			hotelName = hotel.Name
		}
		b.SyncLegacySummary(hotelName)

		return tx.Bookings().Update(ctx, tx.DB(), b)
	})
	return mapBookingWriteErr(err)
}

func (u *bookingUseCaseImpl) replaceTours(ctx context.Context, tx shared.Tx, b *booking.Booking, in *UpdateAdminBookingInput) error {
	var explicit *[]booking.TourItemInput
	switch {
	case in.Tours.HasValue():
		v := in.Tours.MustGet()
		explicit = &v
	case in.Tours.IsNull():
		// key present with null clears the whole set
		empty := []booking.TourItemInput{}
		explicit = &empty
	}

	legacy := mergedLegacyTour(b, in)
	items, err := booking.NormalizeTours(explicit, legacy)
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	for _, item := range items {
		if _, err := tx.Reads().TourByID(ctx, item.TourID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrTourNotFound)
			}
			return err
		}
	}

	b.Tours = items
	return tx.Bookings().ReplaceTourItems(ctx, tx.DB(), b.ID, items)
}

func (u *bookingUseCaseImpl) replaceHotel(ctx context.Context, tx shared.Tx, b *booking.Booking, in *UpdateAdminBookingInput) error {
	var explicit *booking.HotelServiceInput
	if in.Hotel.HasValue() {
		v := in.Hotel.MustGet()
		explicit = &v
	}

	var legacy booking.LegacyHotelInput
	if !in.Hotel.IsNull() {
		legacy = mergedLegacyHotel(b, in)
	}

	svc, stay, err := booking.NormalizeHotel(explicit, legacy)
	if err != nil {
		return errs.Mark(err, errs.ErrValidation)
	}
	if svc != nil {
		if _, err := tx.Reads().HotelByID(ctx, svc.HotelID); err != nil {
			if infra.IsKind(err, infra.KindNotFound) {
				return errs.Mark(err, errs.ErrHotelNotFound)
			}
			return err
		}
		b.Hotel = svc
	} else {
		b.ApplyLegacyStay(stay)
	}
	return tx.Bookings().ReplaceHotelService(ctx, tx.DB(), b.ID, svc)
}

// applyIdentityPatch overlays the identity fields of the patch onto the
// persisted holder.
func applyIdentityPatch(b *booking.Booking, in *UpdateAdminBookingInput) {
	if in.UserID.IsSet() {
		b.UserID = in.UserID.Ptr()
	}
	if in.GuestName.IsSet() {
		b.GuestName = strings.TrimSpace(patchString(in.GuestName))
	}
	if in.GuestEmail.IsSet() {
		b.GuestEmail = strings.TrimSpace(patchString(in.GuestEmail))
	}
	if in.GuestPhone.IsSet() {
		b.GuestPhone = strings.TrimSpace(patchString(in.GuestPhone))
	}
}

// mergedLegacyTour overlays the patch's legacy tour fields on the
// persisted summary so that a patch touching one field keeps the rest.
func mergedLegacyTour(b *booking.Booking, in *UpdateAdminBookingInput) booking.LegacyTourInput {
	legacy := booking.LegacyTourInput{
		TourID:   b.TourID,
		Adults:   b.Adults,
		Children: b.Children,
		CarType:  b.CarType,
	}
	if b.DesiredDate != nil {
		s := b.DesiredDate.Format("2006-01-02")
		legacy.DesiredDate = &s
	}
	if in.LegacyTourID.IsSet() {
		legacy.TourID = in.LegacyTourID.Ptr()
	}
	if in.LegacyDesiredDate.IsSet() {
		legacy.DesiredDate = in.LegacyDesiredDate.Ptr()
	}
	if in.LegacyAdults.IsSet() {
		legacy.Adults = in.LegacyAdults.Ptr()
	}
	if in.LegacyChildren.IsSet() {
		legacy.Children = in.LegacyChildren.Ptr()
	}
	if in.LegacyCarType.IsSet() {
		legacy.CarType = in.LegacyCarType.Ptr()
	}
	return legacy
}

func mergedLegacyHotel(b *booking.Booking, in *UpdateAdminBookingInput) booking.LegacyHotelInput {
	legacy := booking.LegacyHotelInput{
		HotelName: b.HotelName,
		RoomType:  b.HotelRoomType,
		Guests:    b.HotelGuests,
		Notes:     b.HotelNotes,
	}
	if b.HotelCheckIn != nil {
		s := b.HotelCheckIn.Format("2006-01-02")
		legacy.CheckIn = &s
	}
	if b.HotelCheckOut != nil {
		s := b.HotelCheckOut.Format("2006-01-02")
		legacy.CheckOut = &s
	}
	if in.LegacyHotelName.IsSet() {
		legacy.HotelName = in.LegacyHotelName.Ptr()
	}
	if in.LegacyCheckIn.IsSet() {
		legacy.CheckIn = in.LegacyCheckIn.Ptr()
	}
	if in.LegacyCheckOut.IsSet() {
		legacy.CheckOut = in.LegacyCheckOut.Ptr()
	}
	if in.LegacyRoomType.IsSet() {
		legacy.RoomType = in.LegacyRoomType.Ptr()
	}
	if in.LegacyHotelGuests.IsSet() {
		legacy.Guests = in.LegacyHotelGuests.Ptr()
	}
	if in.LegacyHotelNotes.IsSet() {
		legacy.Notes = in.LegacyHotelNotes.Ptr()
	}
	return legacy
}

func hotelRequestPayload(hotelName string, svc *booking.HotelService) map[string]any {
	payload := map[string]any{"hotelName": hotelName}
	if svc.CheckIn != nil {
		payload["checkIn"] = svc.CheckIn.Format("2006-01-02")
	}
	if svc.CheckOut != nil {
		payload["checkOut"] = svc.CheckOut.Format("2006-01-02")
	}
	if svc.Notes != nil {
		payload["notes"] = *svc.Notes
	}
	return payload
}

var passThroughSentinels = []error{
	errs.ErrBookingNotFound,
	errs.ErrTourNotFound,
	errs.ErrHotelNotFound,
	errs.ErrUserNotFound,
	errs.ErrChangeRequestNotFound,
	errs.ErrInvalidBookingState,
	errs.ErrBookingDeleted,
	errs.ErrBookingClosed,
	errs.ErrBookingNotOwned,
	errs.ErrChangeRequestNotPending,
	errs.ErrDuplicateChangeRequest,
	errs.ErrValidation,
}

// mapBookingWriteErr translates repository kinds that escape a write
// transaction; errors already marked with a domain sentinel pass through.
func mapBookingWriteErr(err error) error {
	if err == nil {
		return nil
	}
	for _, sentinel := range passThroughSentinels {
		if errors.Is(err, sentinel) {
			return err
		}
	}
	if infra.IsKind(err, infra.KindNotFound) {
		return errs.Mark(err, errs.ErrBookingNotFound)
	}
	return errs.Mark(err, errs.ErrDatabaseOperationFailed)
}

// resolveContact picks the outbound name/email: registered user first,
// then guest fields. Lookup failures degrade to the guest identity.
func resolveContact(ctx context.Context, reads shared.CommandReads, b *booking.Booking) (name, email string) {
	if b.UserID != nil {
		if user, err := reads.UserByID(ctx, *b.UserID); err == nil {
			return user.Name, b.ContactEmail(user.Email)
		}
		slog.Warn("failed to resolve booking owner for contact", "booking_id", b.ID.String())
	}
	return b.GuestName, b.ContactEmail("")
}

func trimPtr(s *string) *string {
	if s == nil {
		return nil
	}
	t := strings.TrimSpace(*s)
	if t == "" {
		return nil
	}
	return &t
}

func patchString(f patch.Field[string]) string {
	if p := f.Ptr(); p != nil {
		return *p
	}
	return ""
}

func formatDay(t time.Time) string {
	return t.UTC().Format("2006-01-02")
}
