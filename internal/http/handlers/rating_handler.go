package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/http/handlers/common"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/service"
)

// RatingHandler — выставление и чтение оценок.
type RatingHandler struct {
	ratings *service.RatingService
}

func NewRatingHandler(ratings *service.RatingService) *RatingHandler {
	return &RatingHandler{ratings: ratings}
}

// Submit — POST /api/ratings
func (h *RatingHandler) Submit(c *gin.Context) {
	raterID, ok := common.MustCurrentUserID(c)
	if !ok {
		return
	}

	var req dto.SubmitRatingRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректное тело запроса"))
		return
	}

	engagementID, err := uuid.Parse(req.EngagementID)
	if err != nil {
		common.RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректный идентификатор заказа"))
		return
	}

	rating, err := h.ratings.Submit(c.Request.Context(), raterID, engagementID, req.Score)
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusCreated, rating)
}

// GetAggregate — GET /api/users/:id/rating?role=specialist
func (h *RatingHandler) GetAggregate(c *gin.Context) {
	if _, ok := common.MustCurrentUserID(c); !ok {
		return
	}
	targetID, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	aggregate, err := h.ratings.GetAggregate(c.Request.Context(), targetID, c.Query("role"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, aggregate)
}

// List — GET /api/users/:id/ratings?role=specialist
func (h *RatingHandler) List(c *gin.Context) {
	if _, ok := common.MustCurrentUserID(c); !ok {
		return
	}
	targetID, ok := common.ParseUUIDParam(c, "id")
	if !ok {
		return
	}

	ratings, err := h.ratings.ListForTarget(c.Request.Context(), targetID, c.Query("role"))
	if err != nil {
		common.RespondError(c, err)
		return
	}

	common.RespondJSON(c, http.StatusOK, ratings)
}
