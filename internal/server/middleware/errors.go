package middleware

import (
	"encoding/json"
	"net/http"

	"github.com/iudanet/portalsync/pkg/api"
)

// writeError отвечает в том же JSON формате, что и handlers
func writeError(w http.ResponseWriter, message string, statusCode int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(statusCode)
	_ = json.NewEncoder(w).Encode(api.ErrorResponse{
		Error:   statusText(statusCode),
		Message: message,
	})
}

func statusText(code int) string {
	if code == StatusSessionExpired {
		return "Session Expired"
	}
	return http.StatusText(code)
}
