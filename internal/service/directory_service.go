package service

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/skills"
	"github.com/ignatzorin/specialist-hub/internal/validation"
)

// DirectoryUserRepository — операции над пользователями, нужные каталогу.
type DirectoryUserRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*models.User, error)
	UpdateFullName(ctx context.Context, id uuid.UUID, fullName string) error
	GetClientCard(ctx context.Context, id uuid.UUID) (*models.ClientCard, error)
}

// DirectorySpecialistRepository — операции над анкетами, нужные каталогу.
type DirectorySpecialistRepository interface {
	GetByUserID(ctx context.Context, userID uuid.UUID) (*models.SpecialistProfile, error)
	Update(ctx context.Context, profile *models.SpecialistProfile) error
	GetCard(ctx context.Context, userID uuid.UUID) (*models.SpecialistCard, error)
}

// DirectoryService — каталог специалистов и заказчиков: анкеты и карточки.
type DirectoryService struct {
	users       DirectoryUserRepository
	specialists DirectorySpecialistRepository
}

func NewDirectoryService(users DirectoryUserRepository, specialists DirectorySpecialistRepository) *DirectoryService {
	return &DirectoryService{users: users, specialists: specialists}
}

// ProfileUpdate — входные данные обновления анкеты специалиста.
// SkillsText — свободный ввод через запятую, нормализуется по словарю.
type ProfileUpdate struct {
	Specialization string
	SkillsText     string
	Experience     string
	PortfolioURL   string
	Contact        string
	Activate       bool
}

// UpdateProfile валидирует и перезаписывает анкету. Нераспознанные
// навыки — ошибка валидации целиком: анкета с мусорными навыками не
// должна попадать в поиск.
func (s *DirectoryService) UpdateProfile(ctx context.Context, userID uuid.UUID, update ProfileUpdate) (*models.SpecialistProfile, error) {
	update.Specialization = strings.TrimSpace(update.Specialization)
	if !models.IsValidSpecialization(update.Specialization) {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("недопустимая специализация, варианты: %s", strings.Join(models.Specializations, ", ")))
	}
	if !models.IsValidExperience(strings.TrimSpace(update.Experience)) {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("недопустимый опыт, варианты: %s", strings.Join(models.ExperienceBuckets, ", ")))
	}

	normalized, invalid := skills.Normalize(update.SkillsText)
	if len(invalid) > 0 {
		return nil, apperror.New(apperror.ErrCodeValidation,
			fmt.Sprintf("нераспознанные навыки: %s", strings.Join(invalid, ", ")))
	}
	if len(normalized) == 0 {
		return nil, apperror.New(apperror.ErrCodeValidation, "укажите хотя бы один навык")
	}

	if err := validation.ValidatePortfolioURL(update.PortfolioURL); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	if err := validation.ValidateContact(update.Contact); err != nil {
		return nil, apperror.New(apperror.ErrCodeValidation, err.Error())
	}

	profile := &models.SpecialistProfile{
		UserID:         userID,
		Specialization: update.Specialization,
		Skills:         normalized,
		Experience:     strings.TrimSpace(update.Experience),
		PortfolioURL:   strings.TrimSpace(update.PortfolioURL),
		Contact:        strings.TrimSpace(update.Contact),
		IsActive:       update.Activate,
	}

	if err := s.specialists.Update(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}

// GetOwnProfile возвращает анкету её владельцу, включая неактивную.
func (s *DirectoryService) GetOwnProfile(ctx context.Context, userID uuid.UUID) (*models.SpecialistProfile, error) {
	return s.specialists.GetByUserID(ctx, userID)
}

// GetSpecialistCard возвращает карточку специалиста. Неактивная анкета
// видна только её владельцу.
func (s *DirectoryService) GetSpecialistCard(ctx context.Context, userID, viewerID uuid.UUID) (*models.SpecialistCard, error) {
	card, err := s.specialists.GetCard(ctx, userID)
	if err != nil {
		return nil, err
	}

	if !card.Profile.IsActive && userID != viewerID {
		return nil, apperror.ErrProfileNotFound
	}

	return card, nil
}

// GetClientCard возвращает карточку заказчика.
func (s *DirectoryService) GetClientCard(ctx context.Context, userID uuid.UUID) (*models.ClientCard, error) {
	return s.users.GetClientCard(ctx, userID)
}

// UpdateName меняет отображаемое имя пользователя.
func (s *DirectoryService) UpdateName(ctx context.Context, userID uuid.UUID, fullName string) error {
	fullName = strings.TrimSpace(fullName)
	if err := validation.ValidateFullName(fullName); err != nil {
		return apperror.New(apperror.ErrCodeValidation, err.Error())
	}
	return s.users.UpdateFullName(ctx, userID, fullName)
}
