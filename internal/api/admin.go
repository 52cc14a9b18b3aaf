package api

import (
	"net/http"

	"github.com/google/uuid"
	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/ports"
	"github.com/tripwell/tripwell/internal/utils"
	"github.com/tripwell/tripwell/internal/validator"
)

func AdminStatsHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		stats, err := service.Stats(r.Context())
		if err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusOK, stats)
	}
}

func AdminUsersHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		users, err := service.ListUsers(r.Context())
		if err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusOK, users)
	}
}

func AdminBookingsHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		bookings, err := service.ListBookings(r.Context())
		if err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusOK, bookings)
	}
}

func UpdateUserRolesHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			ae := utils.NewBadRequest("invalid user id")
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		var req models.UserRolesRequest
		if err := utils.JsonDecodeBody(r, &req); err != nil {
			ae := utils.NewBadRequest("error json decoding body")
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		if err := service.UpdateUserRoles(r.Context(), id, &req); err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
	}
}

func DeleteUserHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := uuid.Parse(r.PathValue("id"))
		if err != nil {
			ae := utils.NewBadRequest("invalid user id")
			utils.RenderJSON(w, ae.StatusCode, ae)
			return
		}

		if err := service.DeleteUser(r.Context(), SessionFromContext(r.Context()), id); err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
	}
}

func CreatePromoCodeHandler(service ports.AdminService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.PromoCodeRequest
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

		promo, err := service.CreatePromoCode(r.Context(), &req)
		if err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusCreated, promo)
	}
}
