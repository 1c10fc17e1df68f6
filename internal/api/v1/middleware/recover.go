package middleware

import (
	"net/http"

	"github.com/paddockai/paddock/pkg/httpext"
	"github.com/paddockai/paddock/pkg/logger"
)

// Recover converts a panic raised before any response has been written
// into a structured 500. Handlers that stream guard their own write loop
// so a mid-stream panic never reaches here with an open body.
func Recover(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		defer func() {
			if rec := recover(); rec != nil {
				logger.Error(logger.MIDDLEWARE, "Recovered from panic: %v", rec)
				httpext.JsonError(w, "Internal server error", http.StatusInternalServerError)
			}
		}()

		next.ServeHTTP(w, r)
	})
}
