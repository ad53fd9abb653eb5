package queries

import (
	"context"
	"strings"
	"time"

	"geo-tours/internal/pkg/errs"

	"github.com/google/uuid"
	"github.com/jinzhu/copier"
)

// InvoiceView is the billing snapshot of one booking. Every combination
// of tour/hotel presence renders; absent services are null, never errors.
type InvoiceView struct {
	BookingID uuid.UUID `json:"bookingId"`
	Status    string    `json:"status"`
	CreatedAt time.Time `json:"createdAt"`

	CustomerName  string `json:"customerName"`
	CustomerEmail string `json:"customerEmail,omitempty"`
	CustomerPhone string `json:"customerPhone,omitempty"`

	Tours      []TourItemView      `json:"tours"`
	LegacyTour *InvoiceTourSummary `json:"legacyTour,omitempty"`
	Hotel      *HotelServiceView   `json:"hotel,omitempty"`

	TotalPrice        float64  `json:"totalPrice"`
	AmountPaid        float64  `json:"amountPaid"`
	BalanceDue        float64  `json:"balanceDue"`
	Currency          string   `json:"currency"`
	AmountPaidMode    string   `json:"amountPaidMode"`
	AmountPaidPercent *float64 `json:"amountPaidPercent,omitempty"`

	Note      *string `json:"note,omitempty"`
	AdminNote *string `json:"adminNote,omitempty"`
}

// InvoiceTourSummary is the legacy single-tour line kept for backward
// display next to the itemized list.
type InvoiceTourSummary struct {
	TourTitle   string     `json:"tourTitle,omitempty"`
	DesiredDate *time.Time `json:"desiredDate,omitempty"`
	Adults      *int       `json:"adults,omitempty"`
	Children    *int       `json:"children,omitempty"`
	CarType     *string    `json:"carType,omitempty"`
}

type InvoiceQueries interface {
	GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceView, error)
}

type invoiceQueriesImpl struct {
	store BookingReadStore
}

func NewInvoiceQueries(store BookingReadStore) InvoiceQueries {
	return &invoiceQueriesImpl{store: store}
}

func (q *invoiceQueriesImpl) GetInvoice(ctx context.Context, id uuid.UUID) (*InvoiceView, error) {
	view, err := q.store.FindByID(ctx, id)
	if err != nil {
		return nil, mapReadErr(err)
	}

	invoice := &InvoiceView{BookingID: view.ID}
	if err := copier.Copy(invoice, view); err != nil {
		return nil, errs.Wrap(err, "failed to assemble invoice snapshot")
	}
	invoice.BookingID = view.ID

	invoice.CustomerName, invoice.CustomerEmail, invoice.CustomerPhone = resolveCustomer(view)
	invoice.LegacyTour = legacyTourSummary(view)
	invoice.Hotel = invoiceHotel(view)
	if invoice.Tours == nil {
		invoice.Tours = []TourItemView{}
	}
	return invoice, nil
}

// resolveCustomer prefers the registered user identity, then the guest
// fields, then a placeholder.
func resolveCustomer(view *BookingView) (name, email, phone string) {
	if view.UserID != nil {
		if view.UserName != nil {
			name = *view.UserName
		}
		if view.UserEmail != nil {
			email = *view.UserEmail
		}
		if view.UserPhone != nil {
			phone = *view.UserPhone
		}
	} else {
		name, email, phone = view.GuestName, view.GuestEmail, view.GuestPhone
	}
	if strings.TrimSpace(name) == "" {
		name = "Guest customer"
	}
	return name, email, phone
}

func legacyTourSummary(view *BookingView) *InvoiceTourSummary {
	if view.TourID == nil {
		return nil
	}
	summary := &InvoiceTourSummary{
		DesiredDate: view.DesiredDate,
		Adults:      view.Adults,
		Children:    view.Children,
		CarType:     view.CarType,
	}
	if view.TourTitle != nil {
		summary.TourTitle = *view.TourTitle
	}
	return summary
}

// invoiceHotel renders the structured hotel service when present, else a
// fallback assembled from the legacy name-only fields.
func invoiceHotel(view *BookingView) *HotelServiceView {
	if view.Hotel != nil {
		return view.Hotel
	}
	if view.HotelName == nil || strings.TrimSpace(*view.HotelName) == "" {
		return nil
	}
	fallback := &HotelServiceView{
		HotelName: strings.TrimSpace(*view.HotelName),
		CheckIn:   view.HotelCheckIn,
		CheckOut:  view.HotelCheckOut,
		Notes:     view.HotelNotes,
		Rooms:     []HotelRoomView{},
	}
	if view.HotelRoomType != nil {
		guests := 1
		if view.HotelGuests != nil {
			guests = *view.HotelGuests
		}
		fallback.Rooms = []HotelRoomView{{RoomType: *view.HotelRoomType, GuestCount: guests}}
	}
	return fallback
}
