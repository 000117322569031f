// Package handlers содержит общие помощники HTTP ответов.
package handlers

import (
	"encoding/json"
	"net/http"
)

const msgInternalError = "внутренняя ошибка сервера"

// ErrorResponse модель ответа с ошибкой
type ErrorResponse struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
}

// RespondJSON отправляет JSON ответ
func RespondJSON(w http.ResponseWriter, status int, payload interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if payload != nil {
		_ = json.NewEncoder(w).Encode(payload)
	}
}

// RespondError отправляет ответ с ошибкой
func RespondError(w http.ResponseWriter, status int, message string) {
	RespondJSON(w, status, ErrorResponse{Code: status, Message: message})
}

// RespondBadRequest отправляет 400
func RespondBadRequest(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusBadRequest, message)
}

// RespondNotFound отправляет 404
func RespondNotFound(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusNotFound, message)
}

// RespondUnprocessableEntity отправляет 422
func RespondUnprocessableEntity(w http.ResponseWriter, message string) {
	RespondError(w, http.StatusUnprocessableEntity, message)
}

// RespondInternalError отправляет 500 без деталей ошибки
func RespondInternalError(w http.ResponseWriter) {
	RespondError(w, http.StatusInternalServerError, msgInternalError)
}
