package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/http/handlers/common"
	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/service"
)

// SearchHandler — поиск специалистов и справочник навыков.
type SearchHandler struct {
	matcher *service.MatcherService
}

func NewSearchHandler(matcher *service.MatcherService) *SearchHandler {
	return &SearchHandler{matcher: matcher}
}

// BySkill — GET /api/search/skill?q=...
func (h *SearchHandler) BySkill(c *gin.Context) {
	results, err := h.matcher.SearchBySkill(c.Request.Context(), c.Query("q"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, results)
}

// BySkillsText — GET /api/search/skills?q=python,docker
func (h *SearchHandler) BySkillsText(c *gin.Context) {
	results, err := h.matcher.SearchBySkillsText(c.Request.Context(), c.Query("q"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, results)
}

// BySpecialization — GET /api/search/specialization?q=Backend
func (h *SearchHandler) BySpecialization(c *gin.Context) {
	results, err := h.matcher.SearchBySpecialization(c.Request.Context(), c.Query("q"))
	if err != nil {
		common.RespondError(c, err)
		return
	}
	common.RespondJSON(c, http.StatusOK, results)
}

// Skills — GET /api/skills: справочники для формы анкеты.
func (h *SearchHandler) Skills(c *gin.Context) {
	common.RespondJSON(c, http.StatusOK, gin.H{
		"skills":          h.matcher.CatalogSkills(),
		"specializations": models.Specializations,
		"experience":      models.ExperienceBuckets,
	})
}

// NormalizeSkills — POST /api/skills/normalize: предпросмотр нормализации
// свободного ввода перед сохранением анкеты.
func (h *SearchHandler) NormalizeSkills(c *gin.Context) {
	var req struct {
		Skills string `json:"skills" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	normalized, invalid := h.matcher.NormalizeSkills(req.Skills)
	common.RespondJSON(c, http.StatusOK, dto.SkillsNormalizeResponse{
		Normalized: normalized,
		Invalid:    invalid,
	})
}
