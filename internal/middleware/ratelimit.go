package middleware

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"

	"github.com/examgen/examgen-backend/internal/ratelimit"
	"github.com/examgen/examgen-backend/internal/response"
)

// DailyAILimit charges one AI generation to the signed-in user and rejects the
// request with 429 once the day's quota is spent. It must run after RequireAuth.
func DailyAILimit(limiter *ratelimit.Limiter, log zerolog.Logger) gin.HandlerFunc {
	log = log.With().Str("component", "ai_limit").Logger()
	exceeded := fmt.Sprintf("Daily AI generation limit reached (%d/day). Please try again tomorrow.", limiter.Limit())

	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		err := limiter.CheckAndIncrement(c.Request.Context(), claims.UserID)
		switch {
		case errors.Is(err, ratelimit.ErrDailyLimitExceeded):
			log.Info().Int("user_id", claims.UserID).Msg("Daily AI limit reached")
			response.AbortFailWithMessage(c, http.StatusTooManyRequests, response.ErrDailyLimitExceeded, exceeded)
			return
		case err != nil:
			log.Error().Err(err).Int("user_id", claims.UserID).Msg("AI usage counter unavailable")
			response.AbortFail(c, http.StatusInternalServerError, response.ErrInternal)
			return
		}

		c.Next()
	}
}
