package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"net/http"
)

type ApiError struct {
	StatusCode int    `json:"-"`
	Msg        string `json:"error,omitempty"`
}

func (o *ApiError) Error() string {
	return fmt.Sprintf("%d: %s", o.StatusCode, o.Msg)
}

func NewBadRequest(msg string) ApiError {
	return ApiError{http.StatusBadRequest, msg}
}

func NewUnauthorized(msg string) ApiError {
	return ApiError{http.StatusUnauthorized, msg}
}

func NewForbidden(msg string) ApiError {
	return ApiError{http.StatusForbidden, msg}
}

func NewNotFound(msg string) ApiError {
	return ApiError{http.StatusNotFound, msg}
}

func NewConflict(msg string) ApiError {
	return ApiError{http.StatusConflict, msg}
}

func NewInternalServerError(msg string) ApiError {
	return ApiError{http.StatusInternalServerError, msg}
}

func JsonDecodeBody(r *http.Request, dst interface{}) error {
	body, err := io.ReadAll(r.Body)
	if err != nil {
		return err
	}
	return json.Unmarshal(body, dst)
}

// RenderJSON writes res as the JSON response body. Marshalling failures are
// downgraded to a 500 with a JSON error body so the client always gets JSON.
func RenderJSON(w http.ResponseWriter, statusCode int, res interface{}) {
	w.Header().Set("Content-Type", "application/json")
	var body []byte
	if res != nil {
		var err error
		body, err = json.Marshal(res)
		if err != nil {
			ae := NewInternalServerError(err.Error())
			statusCode = ae.StatusCode
			body, err = json.Marshal(&ae)
			if err != nil {
				body = []byte(`{"error": "internal server error"}`)
			}
		}
	}
	w.WriteHeader(statusCode)
	if len(body) > 0 {
		w.Write(body)
	}
}

func AllowedContentTypes(next http.HandlerFunc, mediaTypes ...string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		if existsInSlice(mediaTypes, r.Header.Get("content-type")) {
			next(w, r)
		} else {
			RenderJSON(w, http.StatusUnsupportedMediaType, nil)
		}
	}
}

func existsInSlice(list []string, needle string) bool {
	for i := range list {
		if list[i] == needle {
			return true
		}
	}
	return false
}
