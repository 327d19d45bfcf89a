// Package respond writes HTTP responses for the directory API.
// Domain errors are answered as plain text with their user-facing message;
// anything else is logged with secrets masked and answered with a generic 500.
package respond

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"stac-index/internal/domain/entity"
)

const internalErrorMessage = "internal server error"

// JSON writes v as a JSON response with the given status code.
func JSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if v != nil {
		if err := json.NewEncoder(w).Encode(v); err != nil {
			// Log the error but cannot send error response as headers already sent
			slog.Default().Error("failed to encode JSON response",
				slog.Int("status_code", code),
				slog.Any("error", err))
		}
	}
}

// RawJSON writes an already encoded JSON document.
func RawJSON(w http.ResponseWriter, code int, body []byte) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	_, _ = w.Write(body)
}

// Text writes a plain-text response.
func Text(w http.ResponseWriter, code int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(code)
	_, _ = w.Write([]byte(msg))
}

// Fail answers err. Domain errors become 400 with their message.
// Storage failures behind a PersistenceError are logged before answering.
// Any other error is logged and answered with 500.
func Fail(w http.ResponseWriter, err error) {
	if err == nil {
		return
	}

	if msg, ok := entity.UserMessage(err); ok {
		var persistenceErr *entity.PersistenceError
		if errors.As(err, &persistenceErr) && persistenceErr.Err != nil {
			slog.Default().Error("persistence failure",
				slog.String("user_message", msg),
				slog.String("error", SanitizeError(persistenceErr.Err)))
		}
		Text(w, http.StatusBadRequest, msg)
		return
	}

	// 機密情報をマスクしてログ出力
	slog.Default().Error(internalErrorMessage,
		slog.Int("code", http.StatusInternalServerError),
		slog.String("error", SanitizeError(err)))
	Text(w, http.StatusInternalServerError, internalErrorMessage)
}

// InternalError answers 500 without logging; callers that log themselves use it.
func InternalError(w http.ResponseWriter) {
	Text(w, http.StatusInternalServerError, internalErrorMessage)
}
