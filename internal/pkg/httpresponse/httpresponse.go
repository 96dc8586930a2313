package httpresponse

import (
	"encoding/json"
	"net/http"
	"strings"
)

// ErrorBody тело любого ответа с ошибкой.
type ErrorBody struct {
	Message string `json:"message"`
}

func JSON(w http.ResponseWriter, status int, body any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	return json.NewEncoder(w).Encode(body)
}

// Error пишет {"message": ...}. Ошибка записи теряется: заголовок уже отправлен.
func Error(w http.ResponseWriter, status int, message string) {
	_ = JSON(w, status, ErrorBody{Message: message})
}

// InternalError не раскрывает клиенту детали.
func InternalError(w http.ResponseWriter) {
	Error(w, http.StatusInternalServerError, "internal server error")
}

// Reason человекочитаемая причина: текст ошибки начиная с sentinel, без
// внутренних префиксов обертки.
func Reason(err, sentinel error) string {
	msg := err.Error()
	if i := strings.Index(msg, sentinel.Error()); i >= 0 {
		return msg[i:]
	}
	return sentinel.Error()
}
