package middleware

import (
	"errors"
	"log/slog"
	"net/http"
	"slices"
	"strings"

	"github.com/iudanet/portalsync/internal/models"
	"github.com/iudanet/portalsync/internal/server/handlers"
)

// StatusSessionExpired отдается для просроченного токена, чтобы клиент
// отличал истекшую сессию от отсутствующей
const StatusSessionExpired = 419

// AuthMiddleware создает middleware для проверки JWT токена
func AuthMiddleware(logger *slog.Logger, jwtConfig handlers.JWTConfig) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			authHeader := r.Header.Get("Authorization")
			if authHeader == "" {
				logger.Warn("Missing Authorization header", "path", r.URL.Path)
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			// Ожидаем формат: "Bearer <token>"
			scheme, tokenString, found := strings.Cut(authHeader, " ")
			if !found || !strings.EqualFold(scheme, "Bearer") || tokenString == "" {
				logger.Warn("Invalid Authorization header format")
				writeError(w, "invalid token format", http.StatusUnauthorized)
				return
			}

			claims, err := handlers.ValidateAccessToken(jwtConfig, tokenString)
			if err != nil {
				if errors.Is(err, handlers.ErrTokenExpired) {
					logger.Info("Access token expired", "path", r.URL.Path)
					writeError(w, "session expired", StatusSessionExpired)
					return
				}
				logger.Warn("Invalid access token", "error", err)
				writeError(w, "invalid token", http.StatusUnauthorized)
				return
			}

			logger.Debug("User authenticated", "user_id", claims.UserID, "role", claims.Role)

			next.ServeHTTP(w, r.WithContext(handlers.WithClaims(r.Context(), claims)))
		})
	}
}

// RequireRole пропускает только пользователей с одной из ролей. Ставится после AuthMiddleware.
func RequireRole(logger *slog.Logger, roles ...models.Role) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.GetClaims(r.Context())
			if !ok {
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			if !slices.Contains(roles, claims.Role) {
				logger.Warn("Role not allowed", "user_id", claims.UserID, "role", claims.Role, "path", r.URL.Path)
				writeError(w, "role is not allowed for this resource", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}

// RequirePathRole сверяет сегмент {role} пути с ролью токена.
// Admin допускается только к профилю фирмы.
func RequirePathRole(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			claims, ok := handlers.GetClaims(r.Context())
			if !ok {
				writeError(w, "missing token", http.StatusUnauthorized)
				return
			}

			pathRole := models.Role(r.PathValue("role"))
			allowed := claims.Role == pathRole ||
				(claims.Role == models.RoleAdmin && pathRole == models.RoleFirm)
			if !allowed {
				logger.Warn("Profile role mismatch", "user_id", claims.UserID, "role", claims.Role, "path_role", pathRole)
				writeError(w, "role does not match profile", http.StatusForbidden)
				return
			}

			next.ServeHTTP(w, r)
		})
	}
}
