package config

import (
	"encoding/json"
	"errors"
	"net/http"

	"github.com/saulo-duarte/quizmaster/internal/apperror"
)

func JSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if v == nil {
		return
	}
	if err := json.NewEncoder(w).Encode(v); err != nil {
		Log.WithError(err).Error("failed to encode response")
	}
}

func Message(w http.ResponseWriter, status int, msg string) {
	JSON(w, status, map[string]string{"message": msg})
}

// WriteError maps err onto the status of its apperror kind. Anything that is not
// an *apperror.Error is logged and hidden behind a generic 500.
func WriteError(w http.ResponseWriter, r *http.Request, err error) {
	var appErr *apperror.Error
	if !errors.As(err, &appErr) {
		WithContext(r.Context()).WithError(err).Error("request failed")
		Message(w, http.StatusInternalServerError, "internal server error")
		return
	}

	if appErr.Kind == apperror.KindInternal {
		WithContext(r.Context()).WithError(err).Error("request failed")
		if appErr.Message == "" {
			Message(w, http.StatusInternalServerError, "internal server error")
			return
		}
	}

	Message(w, appErr.Kind.Status(), appErr.Message)
}
