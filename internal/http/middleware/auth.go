package middleware

import (
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/ignatzorin/specialist-hub/internal/http/handlers/common"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
	"github.com/ignatzorin/specialist-hub/internal/service"
)

// Auth проверяет Bearer токен и кладёт идентификатор пользователя
// в контекст запроса.
func Auth(tokens *service.TokenManager) gin.HandlerFunc {
	return func(c *gin.Context) {
		header := c.GetHeader("Authorization")
		if header == "" {
			// Для websocket хэндшейка браузер не может выставить
			// заголовок, токен передаётся в query.
			if token := c.Query("token"); token != "" {
				header = "Bearer " + token
			}
		}

		parts := strings.SplitN(header, " ", 2)
		if len(parts) != 2 || !strings.EqualFold(parts[0], "Bearer") || parts[1] == "" {
			common.RespondError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		userID, err := tokens.ParseAccessToken(parts[1])
		if err != nil {
			common.RespondError(c, apperror.ErrUnauthorized)
			c.Abort()
			return
		}

		c.Set(common.ContextUserIDKey, userID)
		c.Next()
	}
}
