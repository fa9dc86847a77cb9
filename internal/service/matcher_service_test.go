package service

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

func TestMatcherService_SearchBySkillsText_DropsUnknownTokens(t *testing.T) {
	specialists := new(mockMatcherRepo)

	expected := []models.SpecialistSearchResult{{UserID: uuid.New(), FullName: "Анна"}}
	specialists.On("SearchBySkillsAny", mock.Anything, []string{"Go", "Python"}).
		Return(expected, nil)

	svc := NewMatcherService(specialists)
	results, err := svc.SearchBySkillsText(context.Background(), "py, golang, ерунда")

	require.NoError(t, err)
	assert.Equal(t, expected, results)
	specialists.AssertExpectations(t)
}

func TestMatcherService_SearchBySkillsText_AllUnknownIsEmptyResult(t *testing.T) {
	specialists := new(mockMatcherRepo)
	svc := NewMatcherService(specialists)

	results, err := svc.SearchBySkillsText(context.Background(), "ерунда, чепуха")

	require.NoError(t, err)
	assert.Empty(t, results)
	specialists.AssertNotCalled(t, "SearchBySkillsAny", mock.Anything, mock.Anything)
}

func TestMatcherService_SearchBySkill_RequiresQuery(t *testing.T) {
	svc := NewMatcherService(new(mockMatcherRepo))

	_, err := svc.SearchBySkill(context.Background(), "   ")

	assert.True(t, apperror.IsValidation(err))
}

func TestMatcherService_SearchBySpecialization_ValidatesValue(t *testing.T) {
	svc := NewMatcherService(new(mockMatcherRepo))

	_, err := svc.SearchBySpecialization(context.Background(), "Астролог")

	assert.True(t, apperror.IsValidation(err))
}

func TestMatcherService_NormalizeSkills(t *testing.T) {
	svc := NewMatcherService(new(mockMatcherRepo))

	normalized, invalid := svc.NormalizeSkills("Python, py, Docker")

	assert.Equal(t, []string{"Docker", "Python"}, normalized)
	assert.Empty(t, invalid)
}

type mockMatcherRepo struct {
	mock.Mock
}

func (m *mockMatcherRepo) SearchBySkill(ctx context.Context, skill string) ([]models.SpecialistSearchResult, error) {
	args := m.Called(ctx, skill)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpecialistSearchResult), args.Error(1)
}

func (m *mockMatcherRepo) SearchBySkillsAny(ctx context.Context, skillNames []string) ([]models.SpecialistSearchResult, error) {
	args := m.Called(ctx, skillNames)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpecialistSearchResult), args.Error(1)
}

func (m *mockMatcherRepo) SearchBySpecialization(ctx context.Context, specialization string) ([]models.SpecialistSearchResult, error) {
	args := m.Called(ctx, specialization)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]models.SpecialistSearchResult), args.Error(1)
}
