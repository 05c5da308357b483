package auth

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/iudanet/portalsync/internal/client/storage"
)

// SessionStore читает сохраненную сессию для API клиента и синхронизаторов.
// Реализует api.TokenSource и sync.OwnerResolver.
type SessionStore struct {
	storage storage.SessionStorage
	now     func() time.Time
}

// NewSessionStore создает SessionStore поверх хранилища сессии
func NewSessionStore(st storage.SessionStorage) *SessionStore {
	return &SessionStore{
		storage: st,
		now:     time.Now,
	}
}

// Current возвращает сохраненную сессию или nil, если вход не выполнен
func (s *SessionStore) Current(ctx context.Context) (*storage.Session, error) {
	session, err := s.storage.GetSession(ctx)
	if errors.Is(err, storage.ErrSessionNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load session: %w", err)
	}
	return session, nil
}

// Token возвращает access token. Истекший токен не отправляется:
// сервер ответит 401 и синхронизатор отметит authRequired.
func (s *SessionStore) Token(ctx context.Context) (string, error) {
	session, err := s.Current(ctx)
	if err != nil || session == nil {
		return "", err
	}
	if session.Expired(s.now()) {
		return "", nil
	}
	return session.AccessToken, nil
}

// OwnerFirmID возвращает фирму пользователя сессии (в том числе истекшей)
func (s *SessionStore) OwnerFirmID(ctx context.Context) (string, error) {
	session, err := s.Current(ctx)
	if err != nil || session == nil {
		return "", err
	}
	return session.FirmID, nil
}
