package repository

import (
	"context"
	"errors"
	"time"

	"github.com/jackc/pgx/v5"
	models "github.com/tripwell/tripwell/internal"
)

type PromoRepository struct {
	db DBConn
}

func NewPromoRepository(db DBConn) *PromoRepository {
	return &PromoRepository{db: db}
}

// FindPromoCode returns (nil, nil) when the code does not exist. A missing
// code is the same as an unusable one to the pricing layer.
func (r *PromoRepository) FindPromoCode(ctx context.Context, code string) (*models.PromoCode, error) {
	query := `
        SELECT id, code, kind, value, min_booking_amount, max_uses, current_uses, valid_from, valid_until, active
        FROM promo_codes WHERE code = $1
    `
	var p models.PromoCode
	err := r.db.QueryRow(ctx, query, code).Scan(
		&p.ID, &p.Code, &p.Kind, &p.Value, &p.MinBookingAmount,
		&p.MaxUses, &p.CurrentUses, &p.ValidFrom, &p.ValidUntil, &p.Active)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	return &p, nil
}

func (r *PromoRepository) CreatePromoCode(ctx context.Context, promo *models.PromoCode) error {
	query := `
        INSERT INTO promo_codes (id, code, kind, value, min_booking_amount, max_uses, current_uses, valid_from, valid_until, active)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.db.Exec(ctx, query,
		promo.ID, promo.Code, promo.Kind, promo.Value, promo.MinBookingAmount,
		promo.MaxUses, promo.CurrentUses, promo.ValidFrom, promo.ValidUntil, promo.Active)
	if isUniqueViolation(err) {
		return models.ErrDuplicatePromoCode
	}
	return err
}

// RedeemPromoCode increments the use counter with the cap, window and active
// checks folded into the same UPDATE. Concurrent redeemers race on the row
// lock instead of on a stale read, so the cap holds: with max_uses = 1 only
// one of two simultaneous calls reports true.
func (r *PromoRepository) RedeemPromoCode(ctx context.Context, code string, now time.Time) (bool, error) {
	query := `
        UPDATE promo_codes
        SET current_uses = current_uses + 1
        WHERE code = $1
          AND active
          AND $2::date BETWEEN valid_from AND valid_until
          AND (max_uses IS NULL OR current_uses < max_uses)
    `
	tag, err := r.db.Exec(ctx, query, code, now)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}
