package booking

import (
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
)

var (
	ErrHotelNameRequired     = errors.New("legacy hotel fields require a hotel name")
	ErrCheckOutBeforeCheckIn = errors.New("hotel check-out must not precede check-in")
	ErrRoomGuestCount        = errors.New("room guest count must be at least 1")
)

// TourItemInput is one entry of the new tours[] payload shape.
type TourItemInput struct {
	TourID      uuid.UUID
	DesiredDate string
	Adults      *int
	Children    *int
	CarType     *CarType
}

type HotelRoomInput struct {
	RoomType   string
	GuestCount *int
}

// HotelServiceInput is the new structured hotel payload shape.
type HotelServiceInput struct {
	HotelID            uuid.UUID
	CheckIn            *string
	CheckOut           *string
	Notes              *string
	SendRequestToHotel *bool
	Rooms              []HotelRoomInput
}

// LegacyTourInput carries the flat single-tour fields of older clients.
type LegacyTourInput struct {
	TourID      *uuid.UUID
	DesiredDate *string
	Adults      *int
	Children    *int
	CarType     *CarType
}

// LegacyHotelInput carries the flat hotel fields of older clients.
type LegacyHotelInput struct {
	HotelName *string
	CheckIn   *string
	CheckOut  *string
	RoomType  *string
	Guests    *int
	Notes     *string
}

// LegacyHotelStay is the name-only fallback built from legacy hotel
// fields: a free-text hotel, never linked to a Hotel record.
type LegacyHotelStay struct {
	Name     string
	CheckIn  *time.Time
	CheckOut *time.Time
	RoomType *string
	Guests   *int
	Notes    *string
}

// NormalizeTours reconciles the two tour input shapes into canonical tour
// items. An explicit tours array wins outright, even when empty;
// otherwise legacy tourId+desiredDate synthesize a single item.
func NormalizeTours(explicit *[]TourItemInput, legacy LegacyTourInput) ([]TourItem, error) {
	if explicit != nil {
		items := make([]TourItem, 0, len(*explicit))
		for _, in := range *explicit {
			item, err := buildTourItem(in)
			if err != nil {
				return nil, err
			}
			items = append(items, item)
		}
		return items, nil
	}

	if legacy.TourID == nil || *legacy.TourID == uuid.Nil {
		return nil, nil
	}
	if legacy.DesiredDate == nil || strings.TrimSpace(*legacy.DesiredDate) == "" {
		return nil, nil
	}

	item, err := buildTourItem(TourItemInput{
		TourID:      *legacy.TourID,
		DesiredDate: *legacy.DesiredDate,
		Adults:      legacy.Adults,
		Children:    legacy.Children,
		CarType:     legacy.CarType,
	})
	if err != nil {
		return nil, err
	}
	return []TourItem{item}, nil
}

func buildTourItem(in TourItemInput) (TourItem, error) {
	date, err := ParseFlexDate(in.DesiredDate)
	if err != nil {
		return TourItem{}, err
	}

	adults := 1
	if in.Adults != nil && *in.Adults > 0 {
		adults = *in.Adults
	}
	children := 0
	if in.Children != nil && *in.Children > 0 {
		children = *in.Children
	}
	carType := CarSedan
	if in.CarType != nil && *in.CarType != "" {
		if !in.CarType.IsValid() {
			return TourItem{}, errors.New("invalid car type")
		}
		carType = *in.CarType
	}

	return TourItem{
		TourID:      in.TourID,
		DesiredDate: date,
		Adults:      adults,
		Children:    children,
		CarType:     carType,
	}, nil
}

// NormalizeHotel reconciles the two hotel input shapes. A structured
// hotel object wins; otherwise any non-empty legacy hotel field builds a
// name-only fallback stay, failing when the name itself is missing.
// Exactly one of the two results is non-nil when a hotel is present.
func NormalizeHotel(explicit *HotelServiceInput, legacy LegacyHotelInput) (*HotelService, *LegacyHotelStay, error) {
	if explicit != nil {
		svc, err := buildHotelService(*explicit)
		if err != nil {
			return nil, nil, err
		}
		return svc, nil, nil
	}

	if !legacyHotelPresent(legacy) {
		return nil, nil, nil
	}
	if legacy.HotelName == nil || strings.TrimSpace(*legacy.HotelName) == "" {
		return nil, nil, ErrHotelNameRequired
	}

	stay := &LegacyHotelStay{
		Name:     strings.TrimSpace(*legacy.HotelName),
		RoomType: trimPtr(legacy.RoomType),
		Guests:   legacy.Guests,
		Notes:    trimPtr(legacy.Notes),
	}
	var err error
	if stay.CheckIn, stay.CheckOut, err = parseStayDates(legacy.CheckIn, legacy.CheckOut); err != nil {
		return nil, nil, err
	}
	return nil, stay, nil
}

func buildHotelService(in HotelServiceInput) (*HotelService, error) {
	checkIn, checkOut, err := parseStayDates(in.CheckIn, in.CheckOut)
	if err != nil {
		return nil, err
	}

	rooms := make([]HotelRoom, 0, len(in.Rooms))
	for _, r := range in.Rooms {
		roomType := strings.TrimSpace(r.RoomType)
		if roomType == "" {
			continue
		}
		guests := 1
		if r.GuestCount != nil {
			if *r.GuestCount < 1 {
				return nil, ErrRoomGuestCount
			}
			guests = *r.GuestCount
		}
		rooms = append(rooms, HotelRoom{RoomType: roomType, GuestCount: guests})
	}
	if len(rooms) == 0 {
		rooms = []HotelRoom{{RoomType: "Standard", GuestCount: 1}}
	}

	send := false
	if in.SendRequestToHotel != nil {
		send = *in.SendRequestToHotel
	}

	return &HotelService{
		HotelID:            in.HotelID,
		CheckIn:            checkIn,
		CheckOut:           checkOut,
		Notes:              trimPtr(in.Notes),
		SendRequestToHotel: send,
		Rooms:              rooms,
	}, nil
}

func parseStayDates(checkIn, checkOut *string) (*time.Time, *time.Time, error) {
	var in, out *time.Time
	if checkIn != nil && strings.TrimSpace(*checkIn) != "" {
		t, err := ParseFlexDate(*checkIn)
		if err != nil {
			return nil, nil, err
		}
		in = &t
	}
	if checkOut != nil && strings.TrimSpace(*checkOut) != "" {
		t, err := ParseFlexDate(*checkOut)
		if err != nil {
			return nil, nil, err
		}
		out = &t
	}
	if in != nil && out != nil && out.Before(*in) {
		return nil, nil, ErrCheckOutBeforeCheckIn
	}
	return in, out, nil
}

func legacyHotelPresent(in LegacyHotelInput) bool {
	for _, s := range []*string{in.HotelName, in.CheckIn, in.CheckOut, in.RoomType, in.Notes} {
		if s != nil && strings.TrimSpace(*s) != "" {
			return true
		}
	}
	return in.Guests != nil
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

// ApplyLegacyStay writes a name-only fallback stay onto the booking's
// legacy hotel fields, clearing any structured hotel service.
func (b *Booking) ApplyLegacyStay(stay *LegacyHotelStay) {
	b.Hotel = nil
	if stay == nil {
		b.HotelName = nil
		b.HotelCheckIn = nil
		b.HotelCheckOut = nil
		b.HotelRoomType = nil
		b.HotelGuests = nil
		b.HotelNotes = nil
		return
	}
	name := stay.Name
	b.HotelName = &name
	b.HotelCheckIn = stay.CheckIn
	b.HotelCheckOut = stay.CheckOut
	b.HotelRoomType = stay.RoomType
	b.HotelGuests = stay.Guests
	b.HotelNotes = stay.Notes
}
