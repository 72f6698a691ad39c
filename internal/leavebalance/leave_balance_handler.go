package leavebalance

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
	l := zap.L().Named("leavebalance.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavebalance.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave balance request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func yearQuery(c *gin.Context) int {
	year, _ := strconv.Atoi(c.Query("year"))
	return year
}

func (h *Handler) GetMine(c *gin.Context) {
	resp, err := h.service.GetMine(c.Request.Context(), c.GetString("employee_id"), yearQuery(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetForEmployee(c *gin.Context) {
	viewerID := c.GetString("employee_id")
	viewerRole := authz.Role(c.GetString("role"))

	resp, err := h.service.GetForEmployee(c.Request.Context(), viewerID, viewerRole, c.Param("employeeId"), yearQuery(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Adjust(c *gin.Context) {
	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Adjust(c.Request.Context(), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
