package ports

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	models "github.com/tripwell/tripwell/internal"
)

type UserRepository interface {
	CreateUser(ctx context.Context, user *models.User) error
	GetUserByEmail(ctx context.Context, email string) (*models.User, error)
	GetUserByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	UpdateUserRoles(ctx context.Context, id uuid.UUID, roles *models.UserRolesRequest) error
	DeleteUser(ctx context.Context, id uuid.UUID) error
	CountUsers(ctx context.Context) (int64, error)
}

type BookingRepository interface {
	CreateBooking(ctx context.Context, booking *models.Booking) error
	GetBookingByID(ctx context.Context, id uuid.UUID) (*models.Booking, error)
	ListBookingsByUser(ctx context.Context, userID uuid.UUID) ([]models.Booking, error)
	ListBookings(ctx context.Context, limit int) ([]models.Booking, error)
	// CancelBooking flips confirmed or pending bookings to cancelled and
	// reports whether a row actually changed.
	CancelBooking(ctx context.Context, id uuid.UUID) (bool, error)
	CreateReview(ctx context.Context, review *models.Review) error
	CreateFavorite(ctx context.Context, favorite *models.Favorite) error
	CountBookings(ctx context.Context) (int64, error)
	ConfirmedRevenue(ctx context.Context) (decimal.Decimal, error)
}

type PromoRepository interface {
	// FindPromoCode returns (nil, nil) for an unknown code; an absent promo
	// is not an error, it just contributes no discount.
	FindPromoCode(ctx context.Context, code string) (*models.PromoCode, error)
	CreatePromoCode(ctx context.Context, promo *models.PromoCode) error
	// RedeemPromoCode checks the cap and increments the use counter in a
	// single statement; false means the code was exhausted, inactive or out
	// of its validity window at redemption time.
	RedeemPromoCode(ctx context.Context, code string, now time.Time) (bool, error)
}

type SessionStore interface {
	Create(ctx context.Context, sess *models.Session) error
	Get(ctx context.Context, token string) (*models.Session, error)
	Delete(ctx context.Context, token string) error
}

type AuthService interface {
	Register(ctx context.Context, req *models.RegisterRequest) (*models.User, error)
	Login(ctx context.Context, identifier, password string) (*models.User, error)
}

type BookingService interface {
	CreateBooking(ctx context.Context, actor *models.Session, req *models.BookingRequest) (*models.Booking, error)
	Quote(ctx context.Context, actor *models.Session, req *models.QuoteRequest) (*models.QuoteResponse, error)
	ListBookings(ctx context.Context, actor *models.Session) ([]models.Booking, error)
	CancelBooking(ctx context.Context, actor *models.Session, id uuid.UUID) error
	CreateReview(ctx context.Context, actor *models.Session, req *models.ReviewRequest) (*models.Review, error)
	CreateFavorite(ctx context.Context, actor *models.Session, req *models.FavoriteRequest) (*models.Favorite, error)
}

type AdminService interface {
	Stats(ctx context.Context) (*models.AdminStats, error)
	ListUsers(ctx context.Context) ([]models.User, error)
	ListBookings(ctx context.Context) ([]models.Booking, error)
	UpdateUserRoles(ctx context.Context, id uuid.UUID, roles *models.UserRolesRequest) error
	DeleteUser(ctx context.Context, actor *models.Session, id uuid.UUID) error
	CreatePromoCode(ctx context.Context, req *models.PromoCodeRequest) (*models.PromoCode, error)
}
