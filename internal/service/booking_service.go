package service

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/ports"
	"github.com/tripwell/tripwell/internal/pricing"
	"github.com/tripwell/tripwell/internal/validator"
)

type bookingService struct {
	bookings ports.BookingRepository
	promos   ports.PromoRepository
}

func NewBookingService(bookings ports.BookingRepository, promos ports.PromoRepository) *bookingService {
	return &bookingService{
		bookings: bookings,
		promos:   promos,
	}
}

func (s *bookingService) CreateBooking(ctx context.Context, actor *models.Session, req *models.BookingRequest) (*models.Booking, error) {
	now := time.Now().UTC()

	var travelDate *time.Time
	if req.TravelDate != "" {
		td, err := validator.ParseDate(req.TravelDate)
		if err != nil {
			return nil, fmt.Errorf("invalid travel date: %w", err)
		}
		travelDate = &td
	}

	quote, err := s.priceWithPromo(ctx, actor, req.Price, req.PromoCode, now)
	if err != nil {
		return nil, err
	}

	booking := &models.Booking{
		ID:         uuid.New(),
		UserID:     actor.UserID,
		Type:       req.Type,
		ItemName:   req.ItemName,
		Price:      quote.FinalPrice,
		Discount:   quote.Discount,
		Details:    req.Details,
		TravelDate: travelDate,
		Status:     models.StatusConfirmed,
		CreatedAt:  now,
	}

	if err := s.bookings.CreateBooking(ctx, booking); err != nil {
		return nil, fmt.Errorf("error creating booking: %w", err)
	}
	return booking, nil
}

// priceWithPromo runs the pure computation, then claims a redemption slot
// when the promo contributed. Losing the redemption race just drops the
// promo from the quote; the booking itself still goes through.
func (s *bookingService) priceWithPromo(ctx context.Context, actor *models.Session, price decimal.Decimal, code string, now time.Time) (pricing.Quote, error) {
	var promo *models.PromoCode
	if code != "" {
		var err error
		promo, err = s.promos.FindPromoCode(ctx, code)
		if err != nil {
			return pricing.Quote{}, fmt.Errorf("error looking up promo code: %w", err)
		}
	}

	quote := pricing.Compute(price, actor.IsStudent, promo, now)
	if !quote.PromoApplied {
		return quote, nil
	}

	redeemed, err := s.promos.RedeemPromoCode(ctx, code, now)
	if err != nil {
		return pricing.Quote{}, fmt.Errorf("error redeeming promo code: %w", err)
	}
	if !redeemed {
		return pricing.Compute(price, actor.IsStudent, nil, now), nil
	}
	return quote, nil
}

func (s *bookingService) Quote(ctx context.Context, actor *models.Session, req *models.QuoteRequest) (*models.QuoteResponse, error) {
	var promo *models.PromoCode
	if req.PromoCode != "" {
		var err error
		promo, err = s.promos.FindPromoCode(ctx, req.PromoCode)
		if err != nil {
			return nil, fmt.Errorf("error looking up promo code: %w", err)
		}
	}

	quote := pricing.Compute(req.Price, actor.IsStudent, promo, time.Now().UTC())
	return &models.QuoteResponse{
		FinalPrice: quote.FinalPrice,
		Discount:   quote.Discount,
	}, nil
}

func (s *bookingService) ListBookings(ctx context.Context, actor *models.Session) ([]models.Booking, error) {
	bookings, err := s.bookings.ListBookingsByUser(ctx, actor.UserID)
	if err != nil {
		return nil, fmt.Errorf("error fetching bookings: %w", err)
	}
	return bookings, nil
}

// CancelBooking hides foreign bookings behind NotFound rather than
// Forbidden so callers cannot probe for other users' booking ids.
func (s *bookingService) CancelBooking(ctx context.Context, actor *models.Session, id uuid.UUID) error {
	booking, err := s.bookings.GetBookingByID(ctx, id)
	if err != nil {
		return err
	}
	if booking.UserID != actor.UserID && !actor.IsAdmin {
		return models.ErrNotFound
	}

	switch booking.Status {
	case models.StatusCancelled:
		// repeated cancel is deliberately a success
		return nil
	case models.StatusCompleted:
		return models.ErrNotCancellable
	}

	if _, err := s.bookings.CancelBooking(ctx, id); err != nil {
		return fmt.Errorf("error cancelling booking: %w", err)
	}
	// zero rows means someone cancelled it first, which is the outcome the
	// caller asked for anyway
	return nil
}

func (s *bookingService) CreateReview(ctx context.Context, actor *models.Session, req *models.ReviewRequest) (*models.Review, error) {
	if req.Rating < 1 || req.Rating > 5 {
		return nil, models.ErrInvalidRating
	}

	booking, err := s.bookings.GetBookingByID(ctx, req.BookingID)
	if err != nil {
		return nil, err
	}
	if booking.UserID != actor.UserID {
		return nil, models.ErrForbidden
	}

	review := &models.Review{
		ID:        uuid.New(),
		UserID:    actor.UserID,
		BookingID: req.BookingID,
		Rating:    req.Rating,
		Comment:   req.Comment,
		CreatedAt: time.Now().UTC(),
	}
	if err := s.bookings.CreateReview(ctx, review); err != nil {
		return nil, fmt.Errorf("error creating review: %w", err)
	}
	return review, nil
}

func (s *bookingService) CreateFavorite(ctx context.Context, actor *models.Session, req *models.FavoriteRequest) (*models.Favorite, error) {
	favorite := &models.Favorite{
		ID:          uuid.New(),
		UserID:      actor.UserID,
		ItemType:    req.ItemType,
		ItemName:    req.ItemName,
		ItemDetails: req.ItemDetails,
		CreatedAt:   time.Now().UTC(),
	}
	if err := s.bookings.CreateFavorite(ctx, favorite); err != nil {
		return nil, err
	}
	return favorite, nil
}
