package report

import (
	"net/http"
	"strconv"

	"leavedesk/internal/authz"
	"leavedesk/internal/shared/apperror"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("report.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("report.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) LeaveUsage(c *gin.Context) {
	year, _ := strconv.Atoi(c.Query("year"))

	resp, err := h.service.LeaveUsage(
		c.Request.Context(),
		c.GetString("employee_id"),
		authz.Role(c.GetString("role")),
		year,
	)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		h.logger.Warn("leave usage report failed",
			zap.Int("status", httpErr.Status),
			zap.String("code", httpErr.Code),
		)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
