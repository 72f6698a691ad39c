package document

import (
	"net/http"

	"leavedesk/internal/authz"
	"leavedesk/internal/leave"
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
	l := zap.L().Named("document.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("document.handler")
	}
	return &Handler{service: service, logger: l}
}

func actorFrom(c *gin.Context) leave.Actor {
	return leave.Actor{
		EmployeeID: c.GetString("employee_id"),
		Role:       authz.Role(c.GetString("role")),
	}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("document request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) Attach(c *gin.Context) {
	var req AttachDocumentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Attach(c.Request.Context(), actorFrom(c), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) ListForLeave(c *gin.Context) {
	resp, err := h.service.ListForLeave(c.Request.Context(), actorFrom(c), c.Param("id"))
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) Delete(c *gin.Context) {
	if err := h.service.Delete(c.Request.Context(), actorFrom(c), c.Param("id"), c.Param("documentId")); err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, gin.H{"deleted": true}, nil)
}
