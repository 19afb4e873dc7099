package middleware

import (
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
)

// Recover converts a handler panic into a 500 response with the panic's
// message when one is derivable.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				slog.ErrorContext(r.Context(), "handler panic",
					"panic", rec, "method", r.Method, "path", r.URL.Path)
				message := "unknown error"
				switch v := rec.(type) {
				case error:
					message = v.Error()
				case string:
					message = v
				}
				w.Header().Set("Content-Type", "application/json")
				w.WriteHeader(http.StatusInternalServerError)
				_ = json.NewEncoder(w).Encode(map[string]string{
					"error": fmt.Sprintf("Internal server error: %s", message),
				})
			}
		}()
		next.ServeHTTP(w, r)
	})
}
