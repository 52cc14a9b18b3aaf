package repository

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/shopspring/decimal"
	models "github.com/tripwell/tripwell/internal"
)

type BookingRepository struct {
	db DBConn
}

func NewBookingRepository(db DBConn) *BookingRepository {
	return &BookingRepository{db: db}
}

const bookingColumns = "id, user_id, type, item_name, price, discount, details, travel_date, status, created_at"

func (r *BookingRepository) CreateBooking(ctx context.Context, booking *models.Booking) error {
	query := `
        INSERT INTO bookings (id, user_id, type, item_name, price, discount, details, travel_date, status, created_at)
        VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
    `
	_, err := r.db.Exec(ctx, query,
		booking.ID, booking.UserID, booking.Type, booking.ItemName,
		booking.Price, booking.Discount, booking.Details,
		booking.TravelDate, booking.Status, booking.CreatedAt)
	return err
}

func (r *BookingRepository) GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE id = $1", bookingColumns)

	var b models.Booking
	err := r.db.QueryRow(ctx, query, id).Scan(
		&b.ID, &b.UserID, &b.Type, &b.ItemName, &b.Price, &b.Discount,
		&b.Details, &b.TravelDate, &b.Status, &b.CreatedAt)
	if errors.Is(err, pgx.ErrNoRows) {
		return nil, models.ErrNotFound
	}
	if err != nil {
		return nil, err
	}
	return &b, nil
}

func (r *BookingRepository) ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings WHERE user_id = $1 ORDER BY created_at DESC", bookingColumns)
	rows, err := r.db.Query(ctx, query, userID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// ListBookings returns system-wide bookings newest first; limit <= 0 means
// no limit.
func (r *BookingRepository) ListBookings(ctx context.Context, limit int) ([]models.Booking, error) {
	query := fmt.Sprintf("SELECT %s FROM bookings ORDER BY created_at DESC", bookingColumns)
	var args []interface{}
	if limit > 0 {
		query += " LIMIT $1"
		args = append(args, limit)
	}

	rows, err := r.db.Query(ctx, query, args...)
	if err != nil {
		return nil, err
	}
	defer rows.Close()
	return scanBookings(rows)
}

// CancelBooking only moves confirmed or pending rows; the affected-row count
// lets the caller distinguish a real transition from a no-op.
func (r *BookingRepository) CancelBooking(ctx context.Context, id uuid.UUID) (bool, error) {
	query := `
        UPDATE bookings SET status = $1
        WHERE id = $2 AND status IN ($3, $4)
    `
	tag, err := r.db.Exec(ctx, query, models.StatusCancelled, id, models.StatusConfirmed, models.StatusPending)
	if err != nil {
		return false, err
	}
	return tag.RowsAffected() > 0, nil
}

func (r *BookingRepository) CreateReview(ctx context.Context, review *models.Review) error {
	query := `
        INSERT INTO reviews (id, user_id, booking_id, rating, comment, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query,
		review.ID, review.UserID, review.BookingID, review.Rating, review.Comment, review.CreatedAt)
	return err
}

func (r *BookingRepository) CreateFavorite(ctx context.Context, favorite *models.Favorite) error {
	query := `
        INSERT INTO favorites (id, user_id, item_type, item_name, item_details, created_at)
        VALUES ($1, $2, $3, $4, $5, $6)
    `
	_, err := r.db.Exec(ctx, query,
		favorite.ID, favorite.UserID, favorite.ItemType, favorite.ItemName,
		favorite.ItemDetails, favorite.CreatedAt)
	if isUniqueViolation(err) {
		return models.ErrDuplicateFavorite
	}
	return err
}

func (r *BookingRepository) CountBookings(ctx context.Context) (int64, error) {
	var count int64
	err := r.db.QueryRow(ctx, "SELECT COUNT(*) FROM bookings").Scan(&count)
	return count, err
}

// ConfirmedRevenue sums the charged price of confirmed bookings only;
// cancelled and pending rows never count as revenue.
func (r *BookingRepository) ConfirmedRevenue(ctx context.Context) (decimal.Decimal, error) {
	var revenue decimal.Decimal
	err := r.db.QueryRow(ctx,
		"SELECT COALESCE(SUM(price), 0) FROM bookings WHERE status = $1",
		models.StatusConfirmed).Scan(&revenue)
	return revenue, err
}

func scanBookings(rows pgx.Rows) ([]models.Booking, error) {
	var bookings []models.Booking
	for rows.Next() {
		var b models.Booking
		err := rows.Scan(&b.ID, &b.UserID, &b.Type, &b.ItemName, &b.Price,
			&b.Discount, &b.Details, &b.TravelDate, &b.Status, &b.CreatedAt)
		if err != nil {
			return nil, err
		}
		bookings = append(bookings, b)
	}
	return bookings, rows.Err()
}
