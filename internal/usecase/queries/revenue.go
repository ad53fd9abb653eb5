package queries

import (
	"context"
	"sort"
	"time"

	"geo-tours/internal/domain/booking"
	"geo-tours/internal/pkg/errs"
)

// RevenueBucket is one UTC year-month of booking creation.
type RevenueBucket struct {
	Month   string  `json:"month"`
	Revenue float64 `json:"revenue"`
	Paid    float64 `json:"paid"`
	Balance float64 `json:"balance"`
}

type RevenueSummaryView struct {
	Buckets      []RevenueBucket `json:"buckets"`
	TotalRevenue float64         `json:"totalRevenue"`
	TotalPaid    float64         `json:"totalPaid"`
	TotalBalance float64         `json:"totalBalance"`
}

type RevenueQueries interface {
	GetRevenueSummary(ctx context.Context, fromMonth, toMonth *string) (*RevenueSummaryView, error)
}

type revenueQueriesImpl struct {
	store BookingReadStore
}

func NewRevenueQueries(store BookingReadStore) RevenueQueries {
	return &revenueQueriesImpl{store: store}
}

// GetRevenueSummary buckets non-deleted bookings by the UTC year-month
// of creation. Nil bounds are open; a toMonth before fromMonth fails.
func (q *revenueQueriesImpl) GetRevenueSummary(ctx context.Context, fromMonth, toMonth *string) (*RevenueSummaryView, error) {
	var from, to *time.Time
	if fromMonth != nil {
		t, err := time.Parse("2006-01", *fromMonth)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		t = t.UTC()
		from = &t
	}
	if toMonth != nil {
		t, err := time.Parse("2006-01", *toMonth)
		if err != nil {
			return nil, errs.Mark(err, errs.ErrValidation)
		}
		// inclusive month bound
		t = t.UTC().AddDate(0, 1, 0)
		to = &t
	}
	if from != nil && to != nil && !to.After(*from) {
		return nil, errs.Mark(errs.New("toMonth precedes fromMonth"), errs.ErrValidation)
	}

	rows, err := q.store.RevenueRows(ctx, from, to)
	if err != nil {
		return nil, mapReadErr(err)
	}

	byMonth := make(map[string]*RevenueBucket)
	out := &RevenueSummaryView{Buckets: []RevenueBucket{}}
	for _, row := range rows {
		key := row.CreatedAt.UTC().Format("2006-01")
		bucket, ok := byMonth[key]
		if !ok {
			bucket = &RevenueBucket{Month: key}
			byMonth[key] = bucket
		}
		bucket.Revenue += row.TotalPrice
		bucket.Paid += row.AmountPaid
		out.TotalRevenue += row.TotalPrice
		out.TotalPaid += row.AmountPaid
	}

	months := make([]string, 0, len(byMonth))
	for m := range byMonth {
		months = append(months, m)
	}
	sort.Strings(months)
	for _, m := range months {
		bucket := byMonth[m]
		bucket.Revenue = booking.Round2(bucket.Revenue)
		bucket.Paid = booking.Round2(bucket.Paid)
		bucket.Balance = booking.Round2(bucket.Revenue - bucket.Paid)
		out.Buckets = append(out.Buckets, *bucket)
	}
	out.TotalRevenue = booking.Round2(out.TotalRevenue)
	out.TotalPaid = booking.Round2(out.TotalPaid)
	out.TotalBalance = booking.Round2(out.TotalRevenue - out.TotalPaid)
	return out, nil
}
