package service_test

import (
	"context"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/mocks"
	"github.com/tripwell/tripwell/internal/service"
)

func studentActor() *models.Session {
	return &models.Session{
		Token:     "tok",
		UserID:    uuid.New(),
		Name:      "Ada Mwangi",
		Email:     "ada@example.com",
		IsStudent: true,
	}
}

func openPromo(code string, kind models.DiscountKind, value string) *models.PromoCode {
	now := time.Now().UTC()
	return &models.PromoCode{
		ID:               uuid.New(),
		Code:             code,
		Kind:             kind,
		Value:            decimal.RequireFromString(value),
		MinBookingAmount: decimal.Zero,
		ValidFrom:        now.AddDate(0, -1, 0),
		ValidUntil:       now.AddDate(0, 1, 0),
		Active:           true,
	}
}

func TestCreateBooking(t *testing.T) {
	actor := studentActor()

	request := &models.BookingRequest{
		Type:     models.BookingFlight,
		ItemName: "NBO-LHR return",
		Price:    decimal.RequireFromString("100.00"),
	}

	t.Run("booking without promo", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockPromos := new(mocks.MockPromoRepository)
		svc := service.NewBookingService(mockBookings, mockPromos)
		ctx := context.Background()

		mockBookings.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

		booking, err := svc.CreateBooking(ctx, actor, request)

		require.NoError(t, err)
		assert.Equal(t, actor.UserID, booking.UserID)
		assert.Equal(t, models.StatusConfirmed, booking.Status)
		// student discount only: 100 - 10
		assert.Equal(t, "90", booking.Price.String())
		assert.Equal(t, "10", booking.Discount.String())
		mockPromos.AssertNotCalled(t, "FindPromoCode", mock.Anything, mock.Anything)
		mockBookings.AssertExpectations(t)
	})

	t.Run("promo applied and redeemed", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockPromos := new(mocks.MockPromoRepository)
		svc := service.NewBookingService(mockBookings, mockPromos)
		ctx := context.Background()

		req := *request
		req.PromoCode = "SUMMER20"

		mockPromos.On("FindPromoCode", ctx, "SUMMER20").
			Return(openPromo("SUMMER20", models.DiscountPercentage, "20"), nil)
		mockPromos.On("RedeemPromoCode", ctx, "SUMMER20", mock.AnythingOfType("time.Time")).
			Return(true, nil)
		mockBookings.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

		booking, err := svc.CreateBooking(ctx, actor, &req)

		require.NoError(t, err)
		// 10 student + 18 promo (20% of 90)
		assert.Equal(t, "28", booking.Discount.String())
		assert.Equal(t, "72", booking.Price.String())
		mockPromos.AssertExpectations(t)
	})

	t.Run("losing the redemption race drops the promo", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockPromos := new(mocks.MockPromoRepository)
		svc := service.NewBookingService(mockBookings, mockPromos)
		ctx := context.Background()

		req := *request
		req.PromoCode = "ONCE"

		one := 1
		promo := openPromo("ONCE", models.DiscountFixed, "30")
		promo.MaxUses = &one

		mockPromos.On("FindPromoCode", ctx, "ONCE").Return(promo, nil)
		mockPromos.On("RedeemPromoCode", ctx, "ONCE", mock.AnythingOfType("time.Time")).
			Return(false, nil)
		mockBookings.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

		booking, err := svc.CreateBooking(ctx, actor, &req)

		require.NoError(t, err)
		// only the student discount survives
		assert.Equal(t, "10", booking.Discount.String())
		assert.Equal(t, "90", booking.Price.String())
	})

	t.Run("unknown promo contributes nothing", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockPromos := new(mocks.MockPromoRepository)
		svc := service.NewBookingService(mockBookings, mockPromos)
		ctx := context.Background()

		req := *request
		req.PromoCode = "NOPE"

		mockPromos.On("FindPromoCode", ctx, "NOPE").Return(nil, nil)
		mockBookings.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

		booking, err := svc.CreateBooking(ctx, actor, &req)

		require.NoError(t, err)
		assert.Equal(t, "10", booking.Discount.String())
		mockPromos.AssertNotCalled(t, "RedeemPromoCode", mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("travel date is parsed", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockPromos := new(mocks.MockPromoRepository)
		svc := service.NewBookingService(mockBookings, mockPromos)
		ctx := context.Background()

		req := *request
		req.TravelDate = "2027-01-15"

		mockBookings.On("CreateBooking", ctx, mock.AnythingOfType("*models.Booking")).Return(nil)

		booking, err := svc.CreateBooking(ctx, actor, &req)

		require.NoError(t, err)
		require.NotNil(t, booking.TravelDate)
		assert.Equal(t, 2027, booking.TravelDate.Year())
	})
}

func TestCancelBooking(t *testing.T) {
	actor := studentActor()
	bookingID := uuid.New()

	ownedBooking := func(status models.BookingStatus) *models.Booking {
		return &models.Booking{ID: bookingID, UserID: actor.UserID, Status: status}
	}

	t.Run("owner cancels confirmed booking", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(ownedBooking(models.StatusConfirmed), nil)
		mockBookings.On("CancelBooking", ctx, bookingID).Return(true, nil)

		require.NoError(t, svc.CancelBooking(ctx, actor, bookingID))
		mockBookings.AssertExpectations(t)
	})

	t.Run("second cancel is idempotent", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(ownedBooking(models.StatusCancelled), nil)

		require.NoError(t, svc.CancelBooking(ctx, actor, bookingID))
		mockBookings.AssertNotCalled(t, "CancelBooking", mock.Anything, mock.Anything)
	})

	t.Run("completed booking cannot be cancelled", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(ownedBooking(models.StatusCompleted), nil)

		assert.ErrorIs(t, svc.CancelBooking(ctx, actor, bookingID), models.ErrNotCancellable)
	})

	t.Run("foreign booking reads as missing", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		foreign := &models.Booking{ID: bookingID, UserID: uuid.New(), Status: models.StatusConfirmed}
		mockBookings.On("GetBookingByID", ctx, bookingID).Return(foreign, nil)

		assert.ErrorIs(t, svc.CancelBooking(ctx, actor, bookingID), models.ErrNotFound)
	})

	t.Run("admin overrides ownership", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		admin := &models.Session{UserID: uuid.New(), IsAdmin: true}
		foreign := &models.Booking{ID: bookingID, UserID: uuid.New(), Status: models.StatusConfirmed}

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(foreign, nil)
		mockBookings.On("CancelBooking", ctx, bookingID).Return(true, nil)

		require.NoError(t, svc.CancelBooking(ctx, admin, bookingID))
	})

	t.Run("unknown booking", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(nil, models.ErrNotFound)

		assert.ErrorIs(t, svc.CancelBooking(ctx, actor, bookingID), models.ErrNotFound)
	})
}

func TestCreateReview(t *testing.T) {
	actor := studentActor()
	bookingID := uuid.New()

	request := &models.ReviewRequest{
		BookingID: bookingID,
		Rating:    4,
		Comment:   "smooth trip",
	}

	t.Run("review own booking", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		owned := &models.Booking{ID: bookingID, UserID: actor.UserID, Status: models.StatusCompleted}
		mockBookings.On("GetBookingByID", ctx, bookingID).Return(owned, nil)
		mockBookings.On("CreateReview", ctx, mock.AnythingOfType("*models.Review")).Return(nil)

		review, err := svc.CreateReview(ctx, actor, request)

		require.NoError(t, err)
		assert.Equal(t, actor.UserID, review.UserID)
		assert.Equal(t, 4, review.Rating)
	})

	t.Run("reviewing a foreign booking is forbidden", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		foreign := &models.Booking{ID: bookingID, UserID: uuid.New()}
		mockBookings.On("GetBookingByID", ctx, bookingID).Return(foreign, nil)

		review, err := svc.CreateReview(ctx, actor, request)

		assert.Nil(t, review)
		assert.ErrorIs(t, err, models.ErrForbidden)
		mockBookings.AssertNotCalled(t, "CreateReview", mock.Anything, mock.Anything)
	})

	t.Run("rating out of range", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))

		for _, rating := range []int{0, 6, -1} {
			req := *request
			req.Rating = rating
			_, err := svc.CreateReview(context.Background(), actor, &req)
			assert.ErrorIs(t, err, models.ErrInvalidRating, "rating %d", rating)
		}
		mockBookings.AssertNotCalled(t, "GetBookingByID", mock.Anything, mock.Anything)
	})

	t.Run("unknown booking", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		mockBookings.On("GetBookingByID", ctx, bookingID).Return(nil, models.ErrNotFound)

		_, err := svc.CreateReview(ctx, actor, request)
		assert.ErrorIs(t, err, models.ErrNotFound)
	})
}

func TestCreateFavorite(t *testing.T) {
	actor := studentActor()
	request := &models.FavoriteRequest{
		ItemType: models.BookingHotel,
		ItemName: "Hotel Nyali Beach",
	}

	t.Run("success", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		mockBookings.On("CreateFavorite", ctx, mock.AnythingOfType("*models.Favorite")).Return(nil)

		favorite, err := svc.CreateFavorite(ctx, actor, request)

		require.NoError(t, err)
		assert.Equal(t, actor.UserID, favorite.UserID)
	})

	t.Run("duplicate favorite conflicts", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
		ctx := context.Background()

		mockBookings.On("CreateFavorite", ctx, mock.AnythingOfType("*models.Favorite")).
			Return(models.ErrDuplicateFavorite)

		favorite, err := svc.CreateFavorite(ctx, actor, request)

		assert.Nil(t, favorite)
		assert.ErrorIs(t, err, models.ErrDuplicateFavorite)
	})
}

func TestQuote(t *testing.T) {
	actor := studentActor()

	t.Run("quote with promo does not redeem", func(t *testing.T) {
		mockBookings := new(mocks.MockBookingRepository)
		mockPromos := new(mocks.MockPromoRepository)
		svc := service.NewBookingService(mockBookings, mockPromos)
		ctx := context.Background()

		mockPromos.On("FindPromoCode", ctx, "SUMMER20").
			Return(openPromo("SUMMER20", models.DiscountPercentage, "20"), nil)

		quote, err := svc.Quote(ctx, actor, &models.QuoteRequest{
			Price:     decimal.RequireFromString("100.00"),
			PromoCode: "SUMMER20",
		})

		require.NoError(t, err)
		assert.Equal(t, "28", quote.Discount.String())
		assert.Equal(t, "72", quote.FinalPrice.String())
		mockPromos.AssertNotCalled(t, "RedeemPromoCode", mock.Anything, mock.Anything, mock.Anything)
	})
}

func TestListBookings(t *testing.T) {
	actor := studentActor()
	mockBookings := new(mocks.MockBookingRepository)
	svc := service.NewBookingService(mockBookings, new(mocks.MockPromoRepository))
	ctx := context.Background()

	owned := []models.Booking{{ID: uuid.New(), UserID: actor.UserID}}
	mockBookings.On("ListBookingsByUser", ctx, actor.UserID).Return(owned, nil)

	bookings, err := svc.ListBookings(ctx, actor)

	require.NoError(t, err)
	assert.Len(t, bookings, 1)
}
