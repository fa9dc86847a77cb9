package common

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"

	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/logger"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

// ContextUserIDKey — ключ контекста gin с uuid авторизованного пользователя.
const ContextUserIDKey = "user_id"

// CurrentUserID достаёт идентификатор пользователя, положенный auth
// middleware.
func CurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	value, exists := c.Get(ContextUserIDKey)
	if !exists {
		return uuid.Nil, false
	}
	userID, ok := value.(uuid.UUID)
	return userID, ok
}

// MustCurrentUserID достаёт идентификатор пользователя или отвечает 401.
func MustCurrentUserID(c *gin.Context) (uuid.UUID, bool) {
	userID, ok := CurrentUserID(c)
	if !ok {
		RespondError(c, apperror.ErrUnauthorized)
		return uuid.Nil, false
	}
	return userID, true
}

// RespondJSON — успешный ответ.
func RespondJSON(c *gin.Context, status int, payload interface{}) {
	c.JSON(status, payload)
}

// RespondError отвечает ошибкой в едином формате. Неизвестные ошибки
// логируются и отдаются как 500 без деталей.
func RespondError(c *gin.Context, err error) {
	var appErr *apperror.AppError
	if errors.As(err, &appErr) {
		c.JSON(appErr.HTTPStatus, dto.ErrorResponse{
			Code:    string(appErr.Code),
			Message: appErr.Message,
		})
		return
	}

	logger.WithComponent("http").
		WithField("path", c.FullPath()).
		WithError(err).Error("необработанная ошибка")

	c.JSON(http.StatusInternalServerError, dto.ErrorResponse{
		Code:    string(apperror.ErrCodeInternal),
		Message: "внутренняя ошибка сервера",
	})
}

// ParseUUIDParam парсит uuid из path параметра.
func ParseUUIDParam(c *gin.Context, name string) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param(name))
	if err != nil {
		RespondError(c, apperror.New(apperror.ErrCodeValidation, "некорректный идентификатор"))
		return uuid.Nil, false
	}
	return id, true
}

// GetPagination читает limit/offset из query с дефолтами.
func GetPagination(c *gin.Context) (limit, offset int) {
	limit = parseIntQuery(c, "limit", 20)
	offset = parseIntQuery(c, "offset", 0)
	return limit, offset
}

func parseIntQuery(c *gin.Context, name string, fallback int) int {
	raw := c.Query(name)
	if raw == "" {
		return fallback
	}
	value, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return value
}
