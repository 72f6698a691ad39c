package leave

import (
	"context"
	"io"
	"net/http"

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
	l := zap.L().Named("leave.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.handler")
	}
	return &Handler{service: service, logger: l}
}

// actorFrom builds the acting identity from the authenticated context,
// never from the request body.
func actorFrom(c *gin.Context) Actor {
	return Actor{
		EmployeeID: c.GetString("employee_id"),
		Role:       authz.Role(c.GetString("role")),
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("leave request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Create(c *gin.Context) {
	var req CreateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Create(c.Request.Context(), actorFrom(c), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) GetAll(c *gin.Context) {
	resp, err := h.service.GetAll(c.Request.Context(), actorFrom(c))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetByID(c *gin.Context) {
	resp, err := h.service.GetByID(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Update(c *gin.Context) {
	var req UpdateLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Update(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Approve(c *gin.Context) {
	h.reviewRequest(c, h.service.Approve)
}

func (h *Handler) Reject(c *gin.Context) {
	h.reviewRequest(c, h.service.Reject)
}

func (h *Handler) reviewRequest(c *gin.Context, review func(ctx context.Context, actor Actor, id string, comment *string) (LeaveResponse, error)) {
	var req ReviewLeaveRequest
	if err := c.ShouldBindJSON(&req); err != nil && err != io.EOF {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := review(c.Request.Context(), actorFrom(c), c.Param("id"), req.Comment)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Cancel(c *gin.Context) {
	resp, err := h.service.Cancel(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("id")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
