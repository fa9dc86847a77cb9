package middleware

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/ulule/limiter/v3"
	mgin "github.com/ulule/limiter/v3/drivers/middleware/gin"
	"github.com/ulule/limiter/v3/drivers/store/memory"

	"github.com/ignatzorin/specialist-hub/internal/config"
	"github.com/ignatzorin/specialist-hub/internal/dto"
	"github.com/ignatzorin/specialist-hub/internal/pkg/apperror"
)

// RateLimit ограничивает частоту запросов по IP. Используется для
// чувствительных ручек: регистрация, вход, обновление токенов.
func RateLimit(cfg *config.Config) gin.HandlerFunc {
	rate := limiter.Rate{
		Period: cfg.RateLimitPeriod,
		Limit:  cfg.RateLimitLimit,
	}

	store := memory.NewStore()
	instance := limiter.New(store, rate)

	return mgin.NewMiddleware(instance, mgin.WithErrorHandler(func(c *gin.Context, err error) {
		c.AbortWithStatusJSON(http.StatusInternalServerError, dto.ErrorResponse{
			Code:    string(apperror.ErrCodeInternal),
			Message: "внутренняя ошибка сервера",
		})
	}), mgin.WithLimitReachedHandler(func(c *gin.Context) {
		c.AbortWithStatusJSON(http.StatusTooManyRequests, dto.ErrorResponse{
			Code:    "RATE_LIMITED",
			Message: "слишком много запросов, попробуйте позже",
		})
	}))
}
