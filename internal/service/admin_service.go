package service

import (
	"context"
	"fmt"

	"github.com/google/uuid"
	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/ports"
	"github.com/tripwell/tripwell/internal/validator"
)

const recentBookingsLimit = 5

type adminService struct {
	users    ports.UserRepository
	bookings ports.BookingRepository
	promos   ports.PromoRepository
}

func NewAdminService(users ports.UserRepository, bookings ports.BookingRepository, promos ports.PromoRepository) *adminService {
	return &adminService{
		users:    users,
		bookings: bookings,
		promos:   promos,
	}
}

// Stats computes each rollup fresh; the four queries see read-committed
// state and are not atomic with one another.
func (s *adminService) Stats(ctx context.Context) (*models.AdminStats, error) {
	totalUsers, err := s.users.CountUsers(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting users: %w", err)
	}

	totalBookings, err := s.bookings.CountBookings(ctx)
	if err != nil {
		return nil, fmt.Errorf("error counting bookings: %w", err)
	}

	revenue, err := s.bookings.ConfirmedRevenue(ctx)
	if err != nil {
		return nil, fmt.Errorf("error summing revenue: %w", err)
	}

	recent, err := s.bookings.ListBookings(ctx, recentBookingsLimit)
	if err != nil {
		return nil, fmt.Errorf("error fetching recent bookings: %w", err)
	}

	return &models.AdminStats{
		TotalUsers:     totalUsers,
		TotalBookings:  totalBookings,
		TotalRevenue:   revenue,
		RecentBookings: recent,
	}, nil
}

func (s *adminService) ListUsers(ctx context.Context) ([]models.User, error) {
	return s.users.ListUsers(ctx)
}

func (s *adminService) ListBookings(ctx context.Context) ([]models.Booking, error) {
	return s.bookings.ListBookings(ctx, 0)
}

func (s *adminService) UpdateUserRoles(ctx context.Context, id uuid.UUID, roles *models.UserRolesRequest) error {
	return s.users.UpdateUserRoles(ctx, id, roles)
}

func (s *adminService) DeleteUser(ctx context.Context, actor *models.Session, id uuid.UUID) error {
	if actor.UserID == id {
		return models.ErrSelfDelete
	}
	return s.users.DeleteUser(ctx, id)
}

func (s *adminService) CreatePromoCode(ctx context.Context, req *models.PromoCodeRequest) (*models.PromoCode, error) {
	from, err := validator.ParseDate(req.ValidFrom)
	if err != nil {
		return nil, fmt.Errorf("invalid validFrom: %w", err)
	}
	until, err := validator.ParseDate(req.ValidUntil)
	if err != nil {
		return nil, fmt.Errorf("invalid validUntil: %w", err)
	}
	if until.Before(from) {
		return nil, fmt.Errorf("validUntil precedes validFrom")
	}

	promo := &models.PromoCode{
		ID:               uuid.New(),
		Code:             req.Code,
		Kind:             req.Kind,
		Value:            req.Value,
		MinBookingAmount: req.MinBookingAmount,
		MaxUses:          req.MaxUses,
		ValidFrom:        from,
		ValidUntil:       until,
		Active:           req.Active,
	}
	if err := s.promos.CreatePromoCode(ctx, promo); err != nil {
		return nil, err
	}
	return promo, nil
}
