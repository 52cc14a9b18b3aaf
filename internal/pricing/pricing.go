// Package pricing holds the discount computation that the original system
// buried in a stored procedure. It is pure: promo lookup and redemption stay
// with the caller.
package pricing

import (
	"time"

	"github.com/shopspring/decimal"
	models "github.com/tripwell/tripwell/internal"
)

var (
	studentRate = decimal.New(10, -2) // 0.10
	hundred     = decimal.New(100, 0)
)

// Quote is the outcome of a single pricing computation. PromoApplied tells
// the caller whether the promo code contributed, so it knows a redemption
// needs to be recorded.
type Quote struct {
	FinalPrice   decimal.Decimal
	Discount     decimal.Decimal
	PromoApplied bool
}

// ValidPromo reports whether a promo code snapshot can grant a discount on
// the given day: the code must be active, the day must fall inside
// [ValidFrom, ValidUntil] by calendar date inclusive, and the use cap, when
// set, must not be exhausted. A nil promo is simply not valid.
func ValidPromo(p *models.PromoCode, today time.Time) bool {
	if p == nil || !p.Active {
		return false
	}
	day := truncateToDate(today)
	if day.Before(truncateToDate(p.ValidFrom)) || day.After(truncateToDate(p.ValidUntil)) {
		return false
	}
	if p.MaxUses != nil && p.CurrentUses >= *p.MaxUses {
		return false
	}
	return true
}

// Compute applies the student discount first and the promo discount second.
// A percentage promo is taken off the post-student-discount amount; a fixed
// promo is a flat amount regardless of price. Promos below the code's
// minimum booking amount, like invalid or missing codes, contribute zero.
// The final price never goes below zero even when the discount exceeds it.
func Compute(price decimal.Decimal, isStudent bool, promo *models.PromoCode, today time.Time) Quote {
	student := decimal.Zero
	if isStudent {
		student = price.Mul(studentRate)
	}

	promoDiscount := decimal.Zero
	promoApplied := false
	if ValidPromo(promo, today) && price.GreaterThanOrEqual(promo.MinBookingAmount) {
		switch promo.Kind {
		case models.DiscountPercentage:
			promoDiscount = price.Sub(student).Mul(promo.Value).Div(hundred)
		case models.DiscountFixed:
			promoDiscount = promo.Value
		}
		promoApplied = !promoDiscount.IsZero()
	}

	total := student.Add(promoDiscount)
	final := price.Sub(total)
	if final.IsNegative() {
		final = decimal.Zero
	}

	return Quote{
		FinalPrice:   final.Round(2),
		Discount:     total.Round(2),
		PromoApplied: promoApplied,
	}
}

func truncateToDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
