package handlers

import (
	"errors"
	"net/http"

	"github.com/iudanet/portalsync/internal/models"
)

var (
	errNoClaims      = errors.New("unauthorized")
	errFirmRequired  = errors.New("firmId query parameter is required")
	errForeignFirm   = errors.New("access to another firm is forbidden")
	errNoFirm        = errors.New("user is not attached to a firm")
	errRoleForbidden = errors.New("role is not allowed for this resource")
)

// tenantStatus связывает ошибку определения владельца с HTTP статусом
func tenantStatus(err error) int {
	switch {
	case errors.Is(err, errNoClaims):
		return http.StatusUnauthorized
	case errors.Is(err, errFirmRequired):
		return http.StatusBadRequest
	default:
		return http.StatusForbidden
	}
}

// resolveFirm определяет фирму запроса. Admin обязан передать ?firmId=,
// пользователь фирмы работает только со своей фирмой.
func resolveFirm(r *http.Request) (string, error) {
	claims, ok := GetClaims(r.Context())
	if !ok {
		return "", errNoClaims
	}

	requested := r.URL.Query().Get("firmId")

	switch claims.Role {
	case models.RoleAdmin:
		if requested == "" {
			return "", errFirmRequired
		}
		return requested, nil
	case models.RoleFirm:
		if claims.FirmID == "" {
			return "", errNoFirm
		}
		if requested != "" && requested != claims.FirmID {
			return "", errForeignFirm
		}
		return claims.FirmID, nil
	default:
		return "", errRoleForbidden
	}
}

// resolveProfileOwner возвращает владельца профиля роли: фирму для firm,
// самого пользователя для associate и vendor.
func resolveProfileOwner(r *http.Request, role models.Role) (string, error) {
	if role == models.RoleFirm {
		return resolveFirm(r)
	}

	claims, ok := GetClaims(r.Context())
	if !ok {
		return "", errNoClaims
	}
	if claims.Role != role {
		return "", errRoleForbidden
	}
	return claims.UserID, nil
}
