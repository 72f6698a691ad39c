package middleware

import (
	"leavedesk/internal/shared/contextutil"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"go.uber.org/zap"
)

// ContextLogger attaches a request-scoped logger carrying request_id and
// employee_id, and propagates both into the standard context so service
// and repository layers can pick them up without knowing about gin.
func ContextLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		rid := c.GetHeader("X-Request-ID")
		if rid == "" {
			rid = uuid.New().String()
		}
		c.Header("X-Request-ID", rid)

		employeeID := c.GetString("employee_id")

		reqLogger := logger.With(
			zap.String("request_id", rid),
			zap.String("employee_id", employeeID),
		)

		ctx := c.Request.Context()
		ctx = contextutil.WithRequestID(ctx, rid)
		ctx = contextutil.WithEmployeeID(ctx, employeeID)
		ctx = contextutil.WithLogger(ctx, reqLogger)

		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
