package models

import (
	"time"

	"github.com/google/uuid"
)

// User описывает пользователя платформы. Аккаунт гибридный:
// один и тот же пользователь может выступать и заказчиком, и специалистом.
type User struct {
	ID           uuid.UUID `db:"id" json:"id"`
	Email        string    `db:"email" json:"email"`
	Handle       string    `db:"handle" json:"handle"`
	FullName     string    `db:"full_name" json:"full_name"`
	PasswordHash string    `db:"password_hash" json:"-"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
	UpdatedAt    time.Time `db:"updated_at" json:"updated_at"`
}

// SpecialistProfile — анкета специалиста, один к одному с пользователем.
// Создаётся неактивной вместе с пользователем; в поиске видны только
// активные анкеты.
type SpecialistProfile struct {
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	Specialization string    `db:"specialization" json:"specialization"`
	Skills         []string  `db:"skills" json:"skills"`
	Experience     string    `db:"experience" json:"experience"`
	PortfolioURL   string    `db:"portfolio_url" json:"portfolio_url"`
	Contact        string    `db:"contact" json:"contact"`
	IsActive       bool      `db:"is_active" json:"is_active"`
	UpdatedAt      time.Time `db:"updated_at" json:"updated_at"`
}

// SpecialistCard — карточка специалиста для выдачи наружу:
// анкета плюс агрегированный рейтинг исполнителя.
type SpecialistCard struct {
	Profile     SpecialistProfile `json:"profile"`
	FullName    string            `json:"full_name"`
	Handle      string            `json:"handle"`
	AvgRating   float64           `json:"avg_rating"`
	RatingCount int               `json:"rating_count"`
}

// ClientCard — карточка заказчика: имя, контакт и рейтинг заказчика.
type ClientCard struct {
	UserID      uuid.UUID `json:"user_id"`
	FullName    string    `json:"full_name"`
	Handle      string    `json:"handle"`
	AvgRating   float64   `json:"avg_rating"`
	RatingCount int       `json:"rating_count"`
}

// SpecialistSearchResult — строка результата поиска.
type SpecialistSearchResult struct {
	UserID         uuid.UUID `db:"user_id" json:"user_id"`
	FullName       string    `db:"full_name" json:"full_name"`
	Specialization string    `db:"specialization" json:"specialization"`
	Skills         []string  `db:"-" json:"skills"`
	AvgRating      float64   `db:"avg_rating" json:"avg_rating"`
	RatingCount    int       `db:"rating_count" json:"rating_count"`
}

// Session представляет сохранённую сессию пользователя.
type Session struct {
	ID           uuid.UUID `db:"id" json:"id"`
	UserID       uuid.UUID `db:"user_id" json:"user_id"`
	RefreshToken string    `db:"refresh_token" json:"refresh_token"`
	UserAgent    *string   `db:"user_agent" json:"user_agent,omitempty"`
	IPAddress    *string   `db:"ip_address" json:"ip_address,omitempty"`
	ExpiresAt    time.Time `db:"expires_at" json:"expires_at"`
	CreatedAt    time.Time `db:"created_at" json:"created_at"`
}
