package api

import (
	"net/http"

	models "github.com/tripwell/tripwell/internal"
	"github.com/tripwell/tripwell/internal/ports"
	"github.com/tripwell/tripwell/internal/utils"
	"github.com/tripwell/tripwell/internal/validator"
	"github.com/tripwell/tripwell/pkg/config"
)

func RegisterHandler(service ports.AuthService) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.RegisterRequest
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

		if _, err := service.Register(r.Context(), &req); err != nil {
			renderApiError(w, err)
			return
		}
		utils.RenderJSON(w, http.StatusCreated, models.RegisterResponse{
			Success: true,
			Message: "registration successful",
		})
	}
}

func LoginHandler(service ports.AuthService, sessions ports.SessionStore, cfg config.SessionConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		var req models.LoginRequest
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

		user, err := service.Login(r.Context(), req.Identifier, req.Password)
		if err != nil {
			renderApiError(w, err)
			return
		}

		su := models.SessionUserFrom(user)
		sess := &models.Session{
			UserID:    su.ID,
			Name:      su.Name,
			Email:     su.Email,
			IsStudent: su.IsStudent,
			IsAdmin:   su.IsAdmin,
		}
		if err := sessions.Create(r.Context(), sess); err != nil {
			renderApiError(w, err)
			return
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    sess.Token,
			Path:     "/",
			MaxAge:   int(cfg.TTL.Seconds()),
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		utils.RenderJSON(w, http.StatusOK, models.LoginResponse{Success: true, User: su})
	}
}

// LogoutHandler drops the server-side session and expires the cookie. A
// request without a live session still gets a success response.
func LogoutHandler(sessions ports.SessionStore, cfg config.SessionConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if cookie, err := r.Cookie(cfg.CookieName); err == nil {
			if err := sessions.Delete(r.Context(), cookie.Value); err != nil {
				renderApiError(w, err)
				return
			}
		}

		http.SetCookie(w, &http.Cookie{
			Name:     cfg.CookieName,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   cfg.Secure,
			SameSite: http.SameSiteLaxMode,
		})
		utils.RenderJSON(w, http.StatusOK, models.SuccessResponse{Success: true})
	}
}

// SessionHandler reports who the cookie belongs to. Unlike the guarded
// routes it never returns 401; an anonymous caller just sees loggedIn=false.
func SessionHandler(sessions ports.SessionStore, cfg config.SessionConfig) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		cookie, err := r.Cookie(cfg.CookieName)
		if err != nil {
			utils.RenderJSON(w, http.StatusOK, models.SessionResponse{LoggedIn: false})
			return
		}

		sess, err := sessions.Get(r.Context(), cookie.Value)
		if err != nil {
			renderApiError(w, err)
			return
		}
		if sess == nil {
			utils.RenderJSON(w, http.StatusOK, models.SessionResponse{LoggedIn: false})
			return
		}

		utils.RenderJSON(w, http.StatusOK, models.SessionResponse{
			LoggedIn: true,
			User: &models.SessionUser{
				ID:        sess.UserID,
				Name:      sess.Name,
				Email:     sess.Email,
				IsStudent: sess.IsStudent,
				IsAdmin:   sess.IsAdmin,
			},
		})
	}
}
