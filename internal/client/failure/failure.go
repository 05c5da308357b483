// Package failure сводит ошибки удаленных вызовов к небольшому набору категорий,
// по которым синхронизаторы выбирают ветку поведения.
package failure

import (
	"context"
	"errors"
	"net"
	"net/http"
	"net/url"

	"github.com/iudanet/portalsync/internal/client/api"
)

// Kind категория ошибки
type Kind int

const (
	None            Kind = iota // ошибки нет
	Other                       // прочие ошибки, возвращаются вызывающему
	Connectivity                // ответ от сервера не получен
	Authorization               // 401, 403, 419
	NotFound                    // 404
	RequestRejected             // 400
)

// StatusSessionExpired нестандартный код "session expired"
const StatusSessionExpired = 419

func (k Kind) String() string {
	switch k {
	case None:
		return "none"
	case Connectivity:
		return "connectivity"
	case Authorization:
		return "authorization"
	case NotFound:
		return "not_found"
	case RequestRejected:
		return "request_rejected"
	default:
		return "other"
	}
}

// Classify определяет категорию ошибки удаленного вызова
func Classify(err error) Kind {
	if err == nil {
		return None
	}

	// Ответ сервера важнее любых сетевых признаков в цепочке
	var statusErr *api.StatusError
	if errors.As(err, &statusErr) {
		return fromStatus(statusErr.Status)
	}

	// Отмена вызывающим не должна включать offline режим
	if errors.Is(err, context.Canceled) {
		return Other
	}

	if errors.Is(err, api.ErrNoResponse) || errors.Is(err, context.DeadlineExceeded) {
		return Connectivity
	}

	var netErr net.Error
	if errors.As(err, &netErr) {
		return Connectivity
	}

	var urlErr *url.Error
	if errors.As(err, &urlErr) {
		return Connectivity
	}

	return Other
}

// IsAuthorization сокращение для Classify(err) == Authorization
func IsAuthorization(err error) bool {
	return Classify(err) == Authorization
}

func fromStatus(status int) Kind {
	switch status {
	case http.StatusUnauthorized, http.StatusForbidden, StatusSessionExpired:
		return Authorization
	case http.StatusNotFound:
		return NotFound
	case http.StatusBadRequest:
		return RequestRejected
	default:
		return Other
	}
}
