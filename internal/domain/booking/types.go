package booking

import (
	"errors"
	"strings"
	"time"
)

type Status string

const (
	StatusPending   Status = "PENDING"
	StatusApproved  Status = "APPROVED"
	StatusRejected  Status = "REJECTED"
	StatusCancelled Status = "CANCELLED"
)

func (s Status) String() string {
	return string(s)
}

func (s Status) IsValid() bool {
	switch s {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	default:
		return false
	}
}

// IsTerminal reports whether no further approval transitions are allowed.
func (s Status) IsTerminal() bool {
	return s == StatusRejected || s == StatusCancelled
}

// ServiceStatus tracks fulfilment progress independently of approval.
// It is free-form by design; these are the values the back-office uses.
type ServiceStatus string

const (
	ServicePending   ServiceStatus = "PENDING"
	ServiceCompleted ServiceStatus = "COMPLETED"
)

type Currency string

const (
	CurrencyGEL Currency = "GEL"
	CurrencyUSD Currency = "USD"
	CurrencyEUR Currency = "EUR"
)

func (c Currency) IsValid() bool {
	switch c {
	case CurrencyGEL, CurrencyUSD, CurrencyEUR:
		return true
	default:
		return false
	}
}

type CarType string

const (
	CarSedan   CarType = "SEDAN"
	CarMinivan CarType = "MINIVAN"
	CarSUV     CarType = "SUV"
	CarBus     CarType = "BUS"
)

func (c CarType) IsValid() bool {
	switch c {
	case CarSedan, CarMinivan, CarSUV, CarBus:
		return true
	default:
		return false
	}
}

type PayMode string

const (
	PayFlat    PayMode = "FLAT"
	PayPercent PayMode = "PERCENT"
)

func (m PayMode) IsValid() bool {
	switch m {
	case PayFlat, PayPercent:
		return true
	default:
		return false
	}
}

var ErrInvalidDate = errors.New("invalid date value")

// ParseFlexDate accepts YYYY-MM-DD or full ISO-8601 and returns the UTC
// calendar day.
func ParseFlexDate(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" {
		return time.Time{}, ErrInvalidDate
	}
	if t, err := time.Parse("2006-01-02", s); err == nil {
		return t.UTC(), nil
	}
	for _, layout := range []string{time.RFC3339, time.RFC3339Nano, "2006-01-02T15:04:05"} {
		if t, err := time.Parse(layout, s); err == nil {
			return DayOf(t), nil
		}
	}
	return time.Time{}, ErrInvalidDate
}

// DayOf truncates a timestamp to its UTC day boundary.
func DayOf(t time.Time) time.Time {
	u := t.UTC()
	return time.Date(u.Year(), u.Month(), u.Day(), 0, 0, 0, 0, time.UTC)
}
