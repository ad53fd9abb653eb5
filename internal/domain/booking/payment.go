package booking

import (
	"errors"
	"math"
)

var (
	ErrNegativeTotal      = errors.New("total price cannot be negative")
	ErrNegativeAmountPaid = errors.New("amount paid cannot be negative")
	ErrPercentOutOfRange  = errors.New("amount paid percent must be between 0 and 100")
	ErrInvalidPayMode     = errors.New("invalid amount paid mode")
)

// Payment is the resolved (totalPrice, amountPaid, mode, percent) tuple.
// Percent is retained across mode switches so the back-office form can
// restore the last entered value.
type Payment struct {
	TotalPrice float64
	AmountPaid float64
	Mode       PayMode
	Percent    *float64
}

// PaymentInput carries the raw payment fields of a create/update payload.
// Nil means the caller did not supply the field.
type PaymentInput struct {
	TotalPrice *float64
	AmountPaid *float64
	Mode       *PayMode
	Percent    *float64
}

// Round2 is the single canonical money rounding rule. Every derived
// amount goes through it exactly once at resolution time; reads never
// re-round.
func Round2(v float64) float64 {
	return math.Round(v*100) / 100
}

// ResolvePayment computes the persisted payment tuple from the input and
// the previously persisted state (nil on create).
func ResolvePayment(in PaymentInput, prev *Payment) (Payment, error) {
	var out Payment

	out.TotalPrice = pick(in.TotalPrice, prevTotal(prev), 0)
	if out.TotalPrice < 0 {
		return Payment{}, ErrNegativeTotal
	}
	out.TotalPrice = Round2(out.TotalPrice)

	mode := PayFlat
	if prev != nil && prev.Mode != "" {
		mode = prev.Mode
	}
	if in.Mode != nil {
		mode = *in.Mode
	}
	if !mode.IsValid() {
		return Payment{}, ErrInvalidPayMode
	}
	out.Mode = mode

	percent := in.Percent
	if percent == nil && prev != nil {
		percent = prev.Percent
	}
	if percent != nil {
		if *percent < 0 || *percent > 100 {
			return Payment{}, ErrPercentOutOfRange
		}
		p := *percent
		out.Percent = &p
	}

	switch mode {
	case PayPercent:
		if out.Percent == nil {
			return Payment{}, ErrPercentOutOfRange
		}
		out.AmountPaid = Round2(out.TotalPrice * *out.Percent / 100)
	default:
		paid := 0.0
		if prev != nil {
			paid = prev.AmountPaid
		}
		if in.AmountPaid != nil {
			paid = *in.AmountPaid
		}
		if paid < 0 {
			return Payment{}, ErrNegativeAmountPaid
		}
		out.AmountPaid = Round2(paid)
	}

	return out, nil
}

func pick(in *float64, fallback *float64, def float64) float64 {
	if in != nil {
		return *in
	}
	if fallback != nil {
		return *fallback
	}
	return def
}

func prevTotal(prev *Payment) *float64 {
	if prev == nil {
		return nil
	}
	t := prev.TotalPrice
	return &t
}
