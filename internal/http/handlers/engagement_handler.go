package handlers

import (
	"context"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/http/handlers/common"
	"github.com/ignatzorin/specialist-hub/internal/models"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/service"
)

// EngagementHandler — жизненный цикл заказов.
type EngagementHandler struct {
	engagements *service.EngagementService
}

func NewEngagementHandler(engagements *service.EngagementService) *EngagementHandler {
	return &EngagementHandler{engagements: engagements}
}

// Create — POST /api/engagements: заказчик приглашает специалиста.
func (h *EngagementHandler) Create(c *gin.Context) {
	clientID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	var req dto.CreateEngagementRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	specialistID, err := uuid.Parse(req.SpecialistID)
	if err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректный идентификатор специалиста"))
		return
	}

	engagement, err := h.engagements.Request(c.Request.Context(), clientID, specialistID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, engagement)
}

// Accept — POST /api/engagements/:id/accept
func (h *EngagementHandler) Accept(c *gin.Context) {
	h.transition(c, h.engagements.Accept)
}

// Decline — POST /api/engagements/:id/decline
func (h *EngagementHandler) Decline(c *gin.Context) {
	h.transition(c, h.engagements.Decline)
}

// RequestFinish — POST /api/engagements/:id/finish
func (h *EngagementHandler) RequestFinish(c *gin.Context) {
	h.transition(c, h.engagements.RequestFinish)
}

// ConfirmFinish — POST /api/engagements/:id/confirm
func (h *EngagementHandler) ConfirmFinish(c *gin.Context) {
	h.transition(c, h.engagements.ConfirmFinish)
}

// GetOpen — GET /api/engagements/open: текущий открытый заказ пользователя.
func (h *EngagementHandler) GetOpen(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	engagement, err := h.engagements.GetOpenForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, engagement)
}

// List — GET /api/engagements: история заказов пользователя.
func (h *EngagementHandler) List(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	engagements, err := h.engagements.ListForUser(c.Request.Context(), userID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, engagements)
}

// GetByID — GET /api/engagements/:id
func (h *EngagementHandler) GetByID(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}
	engagementID, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	engagement, err := h.engagements.GetByID(c.Request.Context(), userID, engagementID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, engagement)
}

// GetLastCompletedWith — GET /api/engagements/last-completed/:id:
// последний завершённый заказ с указанным пользователем.
func (h *EngagementHandler) GetLastCompletedWith(c *gin.Context) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}
	otherID, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	engagement, err := h.engagements.LastCompletedWith(c.Request.Context(), userID, otherID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, engagement)
}

type transitionFunc func(ctx context.Context, userID, engagementID uuid.UUID) (*models.Engagement, error)

func (h *EngagementHandler) transition(c *gin.Context, fn transitionFunc) {
	userID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}
	engagementID, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	engagement, err := fn(c.Request.Context(), userID, engagementID)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, engagement)
}
