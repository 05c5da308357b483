package models

import "time"

// User представляет пользователя портала на сервере
type User struct {
	CreatedAt    time.Time  `json:"created_at"`
	LastLogin    *time.Time `json:"last_login,omitempty"`
	ID           string     `json:"id"`       // UUID пользователя
	Username     string     `json:"username"` // уникальный username
	PasswordHash string     `json:"-"`        // bcrypt хеш пароля
	Role         Role       `json:"role"`     // роль в портале
	FirmID       string     `json:"firm_id"`  // фирма пользователя (пусто для vendor/associate без фирмы)
}
