package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/http/handlers/common"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/service"
)

// ProfileHandler — анкеты специалистов и карточки пользователей.
type ProfileHandler struct {
	directory *service.DirectoryService
}

func NewProfileHandler(directory *service.DirectoryService) *ProfileHandler {
	return &ProfileHandler{directory: directory}
}

// UpdateProfile — PUT /api/profile
func (h *ProfileHandler) UpdateProfile(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateProfileRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	profile, err := h.directory.UpdateProfile(c.Request.Context(), userID, service.ProfileUpdate{
		Specialization: req.Specialization,
		SkillsText:     req.Skills,
		Experience:     req.Experience,
		PortfolioURL:   req.PortfolioURL,
		Contact:        req.Contact,
		Activate:       req.Activate,
	})
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, profile)
}

// GetOwnProfile — GET /api/profile
func (h *ProfileHandler) GetOwnProfile(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	profile, err := h.directory.GetOwnProfile(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, profile)
}

// UpdateName — PATCH /api/profile/name
func (h *ProfileHandler) UpdateName(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	var req dto.UpdateNameRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	if err := h.directory.UpdateName(c.Request.Context(), userID, req.FullName); err != nil {
		common.RespondError(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// GetSpecialistCard — GET /api/specialists/:id
func (h *ProfileHandler) GetSpecialistCard(c *gin.Context) {
	viewerID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}
	targetID, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	card, err := h.directory.GetSpecialistCard(c.Request.Context(), targetID, viewerID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, card)
}

// GetClientCard — GET /api/clients/:id
func (h *ProfileHandler) GetClientCard(c *gin.Context) {
	if _, ok := common.MustCurrentUserID(c); !ok {
		return
	}
	targetID, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	card, err := h.directory.GetClientCard(c.Request.Context(), targetID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, card)
}
