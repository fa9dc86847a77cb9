package service

import (
	"context"
	"strings"

	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/skills"
)

// MatcherRepository — поиск по анкетам специалистов.
type MatcherRepository interface {
	SearchBySkill(ctx context.Context, skill string) ([]models.SpecialistSearchResult, error)
	SearchBySkillsAny(ctx context.Context, skillNames []string) ([]models.SpecialistSearchResult, error)
	SearchBySpecialization(ctx context.Context, specialization string) ([]models.SpecialistSearchResult, error)
}

// MatcherService — подбор специалистов по навыкам и специализации.
type MatcherService struct {
	repo MatcherRepository
}

func NewMatcherService(repo MatcherRepository) *MatcherService {
	return &MatcherService{repo: repo}
}

// NormalizeSkills нормализует свободный ввод навыков по словарю.
func (s *MatcherService) NormalizeSkills(input string) (normalized, invalid []string) {
	return skills.Normalize(input)
}

// CatalogSkills возвращает канонический список навыков словаря.
func (s *MatcherService) CatalogSkills() []string {
	return skills.Canonical()
}

// SearchBySkill ищет по одному навыку как подстроке без учёта регистра.
func (s *MatcherService) SearchBySkill(ctx context.Context, skill string) ([]models.SpecialistSearchResult, error) {
	skill = strings.TrimSpace(skill)
	if skill == "" {
		return nil, apperror.New(apperror.ErrCodeValidation, "навык для поиска обязателен")
	}
	return s.repo.SearchBySkill(ctx, skill)
}

// SearchBySkillsText нормализует текст запроса и ищет специалистов,
// владеющих хотя бы одним из распознанных навыков. Нераспознанные
// токены молча отбрасываются: пустой поисковый запрос после
// нормализации даёт пустую выдачу, а не ошибку.
func (s *MatcherService) SearchBySkillsText(ctx context.Context, query string) ([]models.SpecialistSearchResult, error) {
	normalized, _ := skills.Normalize(query)
	if len(normalized) == 0 {
		return []models.SpecialistSearchResult{}, nil
	}
	return s.repo.SearchBySkillsAny(ctx, normalized)
}

// SearchBySpecialization ищет по точному совпадению специализации.
func (s *MatcherService) SearchBySpecialization(ctx context.Context, specialization string) ([]models.SpecialistSearchResult, error) {
	specialization = strings.TrimSpace(specialization)
	if !models.IsValidSpecialization(specialization) {
		return nil, apperror.New(apperror.ErrCodeValidation, "недопустимая специализация")
	}
	return s.repo.SearchBySpecialization(ctx, specialization)
}
