package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/logger"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

// Recovery перехватывает паники хэндлеров и отвечает 500 в едином формате.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			if r := recover(); r != nil {
				logger.WithComponent("http").
					WithField("path", c.FullPath()).
					WithField("panic", r).
					Error("паника в обработчике")

				c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
					Code:    string(apperror.ErrCodeInternal),
					Message: "внутренняя ошибка сервера",
				})
			}
		}()

		c.Next()
	}
}
