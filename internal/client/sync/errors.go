package sync

import (
	"errors"

	"github.com/iudanet/portalsync/internal/client/data"
)

// ErrAuthRequired сервер отклонил запрос из-за отсутствующей или истекшей сессии.
// Исходная ошибка сервера доступна через errors.As.
var ErrAuthRequired = errors.New("sign in to sync")

// ErrStudioNotFound студия не найдена ни на сервере, ни в локальной коллекции
var ErrStudioNotFound = data.ErrStudioNotFound
