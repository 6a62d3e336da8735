package carbon

import (
	"encoding/json"
	"errors"
	"net/http"

	model "github.com/glkeru/carbon/internal/models"
)

type errorResponse struct {
	Error string `json:"error"`
}

// StatusCode - HTTP код для ошибки сервиса
func StatusCode(err error) int {
	switch {
	case errors.Is(err, model.ErrUnauthorized):
		return http.StatusUnauthorized
	case errors.Is(err, model.ErrForbidden):
		return http.StatusForbidden
	case errors.Is(err, model.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, model.ErrValidation), errors.Is(err, model.ErrInsufficientBalance):
		return http.StatusBadRequest
	case errors.Is(err, model.ErrDuplicate):
		return http.StatusConflict
	}
	return http.StatusInternalServerError
}

// текст внутренних ошибок отдаем только в development
func writeError(w http.ResponseWriter, err error, dev bool) {
	code := StatusCode(err)
	msg := err.Error()
	if code == http.StatusInternalServerError && !dev {
		msg = "internal error"
	}
	writeJSON(w, code, errorResponse{msg})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	j, err := json.Marshal(v)
	if err != nil {
		http.Error(w, err.Error(), http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	w.Write(j)
}
