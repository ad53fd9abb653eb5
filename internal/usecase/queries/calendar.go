package queries

import (
	"context"
	"time"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/pkg/errs"
)

// CalendarDay is one UTC day of the requested month. Bookings lists the
// APPROVED non-deleted bookings whose desired date falls on the day;
// zero-booking days still appear with an empty list.
type CalendarDay struct {
	Date         string         `json:"date"`
	BookingCount int            `json:"bookingCount"`
	Bookings     []*BookingView `json:"bookings"`
}

// CalendarSummary counts all non-deleted bookings of the month by
// status, regardless of approval.
type CalendarSummary struct {
	Total    int            `json:"total"`
	ByStatus map[string]int `json:"byStatus"`
}

type CalendarView struct {
	Month   string          `json:"month"`
	Days    []CalendarDay   `json:"days"`
	Summary CalendarSummary `json:"summary"`
}

type CalendarQueries interface {
	GetCalendar(ctx context.Context, month string) (*CalendarView, error)
}

type calendarQueriesImpl struct {
	store BookingReadStore
}

func NewCalendarQueries(store BookingReadStore) CalendarQueries {
	return &calendarQueriesImpl{store: store}
}

func (q *calendarQueriesImpl) GetCalendar(ctx context.Context, month string) (*CalendarView, error) {
	from, err := time.Parse("2006-01", month)
	if err != nil {
		return nil, errs.Mark(err, errs.ErrValidation)
	}
	from = from.UTC()
	to := from.AddDate(0, 1, 0)

	views, err := q.store.Find(ctx, BookingFilter{DesiredFrom: &from, DesiredTo: &to})
	if err != nil {
		return nil, mapReadErr(err)
	}

	byDay := make(map[string][]*BookingView)
	summary := CalendarSummary{ByStatus: make(map[string]int)}
	for _, v := range views {
		if v.DesiredDate == nil {
			continue
		}
		summary.Total++
		summary.ByStatus[v.Status]++
		if v.Status != booking.StatusApproved.String() {
			continue
		}
		key := v.DesiredDate.UTC().Format("2006-01-02")
		byDay[key] = append(byDay[key], v)
	}

	days := make([]CalendarDay, 0, 31)
	for day := from; day.Before(to); day = day.AddDate(0, 0, 1) {
		key := day.Format("2006-01-02")
		listed := byDay[key]
		if listed == nil {
			listed = []*BookingView{}
		}
		days = append(days, CalendarDay{
			Date:         key,
			BookingCount: len(listed),
			Bookings:     listed,
		})
	}

	return &CalendarView{Month: month, Days: days, Summary: summary}, nil
}
