package api

import (
	"net/http"

	"github.com/google/uuid"
	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/ports"
	"github.com/tripwell/tripwell/internal/utils"
	"github.com/tripwell/tripwell/internal/validator"
)

func CreateBookingHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.BookingRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		booking, err := service.CreateBooking(r.Context(), SessionFromContext(r.Context()), &req)
		if err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusCreated, models.CreateBookingResponse{
			Success:   true,
			BookingID: booking.ID,
		})
	}
}

// QuoteHandler prices a prospective booking without creating anything or
// consuming a promo use.
func QuoteHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.QuoteRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		quote, err := service.Quote(r.Context(), SessionFromContext(r.Context()), &req)
		if err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusOK, quote)
	}
}

func ListBookingsHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := service.ListBookings(r.Context(), SessionFromContext(r.Context()))
		if err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusOK, bookings)
	}
}

func CancelBookingHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			ae := utils.NewBadRequest("invalid booking id")
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		if err := service.CancelBooking(r.Context(), SessionFromContext(r.Context()), id); err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
	}
}

func ReviewHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.ReviewRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		if _, err := service.CreateReview(r.Context(), SessionFromContext(r.Context()), &req); err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusCreated, models.SuccessResponse{Success: true})
	}
}

func FavoriteHandler(service ports.BookingService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.FavoriteRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		v := validator.NewCustomValidator()
		if err := v.Validate(req); err != nil {
			ae := utils.NewBadRequest(err.Error())
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		if _, err := service.CreateFavorite(r.Context(), SessionFromContext(r.Context()), &req); err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusCreated, models.SuccessResponse{Success: true})
	}
}
