package api

import (
	"errors"
	"net/http"

	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/utils"
)

// getApiError maps service sentinels onto wire errors. Anything unrecognised
// becomes a 500 with a generic message so internals never leak to the client.
func getApiError(err error) utils.ApiError {
	ae := utils.ApiError{Msg: err.Error()}
	switch {
	case errors.Is(err, models.ErrUnauthenticated),
		errors.Is(err, models.ErrInvalidCredentials):
		ae.StatusCode = http.StatusUnauthorized
	case errors.Is(err, models.ErrForbidden),
		errors.Is(err, models.ErrSelfDelete):
		ae.StatusCode = http.StatusForbidden
	case errors.Is(err, models.ErrNotFound):
		ae.StatusCode = http.StatusNotFound
	case errors.Is(err, models.ErrDuplicateEmail),
		errors.Is(err, models.ErrDuplicateFavorite),
		errors.Is(err, models.ErrDuplicatePromoCode):
		ae.StatusCode = http.StatusConflict
	case errors.Is(err, models.ErrUnderage),
		errors.Is(err, models.ErrInvalidRating),
		errors.Is(err, models.ErrNotCancellable):
		ae.StatusCode = http.StatusBadRequest
	default:
		ae.StatusCode = http.StatusInternalServerError
		ae.Msg = "internal server error"
	}
	return ae
}

func renderApiError(w http.ResponseWriter, err error) {
	ae := getApiError(err)
	utils.RenderJSON(w, ae.StatusCode, ae)
}
