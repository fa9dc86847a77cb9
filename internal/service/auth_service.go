package service

import (
	"context"
	"strings"
	"time"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"

	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/validation"
)

// AuthUserRepository — хранилище пользователей и сессий, нужное авторизации.
type AuthUserRepository interface {
	Create(ctx context.Context, user *models.User) error
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	GetByEmail(ctx context.Context, email string) (*models.User, error)
	CreateSession(ctx context.Context, session *models.Session) error
	GetSessionByToken(ctx context.Context, token string) (*models.Session, error)
	DeleteSession(ctx context.Context, token string) error
}

// AuthService — регистрация, вход и обновление токенов.
type AuthService struct {
	users  AuthUserRepository
	tokens *TokenManager
}

func NewAuthService(users AuthUserRepository, tokens *TokenManager) *AuthService {
	return &AuthService{users: users, tokens: tokens}
}

// TokenPair — пара токенов, выдаваемая клиенту.
type TokenPair struct {
	AccessToken  string `json:"access_token"`
	RefreshToken string `json:"refresh_token"`
}

// Register создаёт пользователя с захэшированным паролем. Анкета
// специалиста создаётся сразу, но неактивной: в поиске пользователь
// появится только после заполнения анкеты.
func (s *AuthService) Register(ctx context.Context, email, handle, fullName, password string) (*models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))
	handle = strings.TrimSpace(handle)
	fullName = strings.TrimSpace(fullName)

	if err := validation.ValidateEmail(email); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateHandle(handle); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateFullName(fullName); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if len(password) < 8 {
		return nil, apperror.New(apperror.ErrCodeValidation, "пароль должен быть не менее 8 символов")
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось захэшировать пароль")
	}

	user := &models.User{
		ID:           uuid.New(),
		Email:        email,
		Handle:       handle,
		FullName:     fullName,
		PasswordHash: string(hash),
	}

	if err := s.users.Create(ctx, user); err != nil {
		return nil, err
	}

	return user, nil
}

// Login проверяет учётные данные и выдаёт пару токенов.
func (s *AuthService) Login(ctx context.Context, email, password string, userAgent, ipAddress *string) (*TokenPair, *models.User, error) {
	email = strings.ToLower(strings.TrimSpace(email))

	user, err := s.users.GetByEmail(ctx, email)
	if err != nil {
		if apperror.IsNotFound(err) {
			return nil, nil, apperror.ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.PasswordHash), []byte(password)); err != nil {
		return nil, nil, apperror.ErrInvalidCredentials
	}

	pair, err := s.issueTokens(ctx, user.ID, userAgent, ipAddress)
	if err != nil {
		return nil, nil, err
	}

	return pair, user, nil
}

// Refresh обменивает живой refresh токен на новую пару. Старая сессия
// удаляется: каждый refresh токен одноразовый.
func (s *AuthService) Refresh(ctx context.Context, refreshToken string, userAgent, ipAddress *string) (*TokenPair, error) {
	session, err := s.users.GetSessionByToken(ctx, refreshToken)
	if err != nil {
		return nil, err
	}

	if err := s.users.DeleteSession(ctx, refreshToken); err != nil {
		return nil, err
	}

	return s.issueTokens(ctx, session.UserID, userAgent, ipAddress)
}

// Logout отзывает refresh сессию.
func (s *AuthService) Logout(ctx context.Context, refreshToken string) error {
	return s.users.DeleteSession(ctx, refreshToken)
}

// GetCurrentUser возвращает пользователя по идентификатору из токена.
func (s *AuthService) GetCurrentUser(ctx context.Context, userID uuid.UUID) (*models.User, error) {
	return s.users.GetByID(ctx, userID)
}

func (s *AuthService) issueTokens(ctx context.Context, userID uuid.UUID, userAgent, ipAddress *string) (*TokenPair, error) {
	access, err := s.tokens.NewAccessToken(userID)
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить access токен")
	}

	refresh, err := s.tokens.NewRefreshToken()
	if err != nil {
		return nil, apperror.Wrap(err, apperror.ErrCodeInternal, "не удалось выпустить refresh токен")
	}

	session := &models.Session{
		ID:           uuid.New(),
		UserID:       userID,
		RefreshToken: refresh,
		UserAgent:    userAgent,
		IPAddress:    ipAddress,
		ExpiresAt:    time.Now().Add(s.tokens.RefreshTTL()),
	}

	if err := s.users.CreateSession(ctx, session); err != nil {
		return nil, err
	}

	return &TokenPair{AccessToken: access, RefreshToken: refresh}, nil
}
