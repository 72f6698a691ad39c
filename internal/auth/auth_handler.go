package auth

import (
	"net/http"
	"os"

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
	l := zap.L().Named("auth.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("auth.handler")
	}
	return &Handler{service: service, logger: l}
}

func setAuthCookies(c *gin.Context, accessToken, refreshToken string) {
	isProd := os.Getenv("APP_ENV") == "production"

	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "access_token",
		Value:    accessToken,
		Path:     "/",
		MaxAge:   int(accessTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	})
	http.SetCookie(c.Writer, &http.Cookie{
		Name:     "refresh_token",
		Value:    refreshToken,
		Path:     "/",
		MaxAge:   int(refreshTokenTTL.Seconds()),
		HttpOnly: true,
		Secure:   isProd,
		SameSite: http.SameSiteLaxMode,
	})
}

func clearAuthCookies(c *gin.Context) {
	isProd := os.Getenv("APP_ENV") == "production"

	for _, name := range []string{"access_token", "refresh_token"} {
		http.SetCookie(c.Writer, &http.Cookie{
			Name:     name,
			Value:    "",
			Path:     "/",
			MaxAge:   -1,
			HttpOnly: true,
			Secure:   isProd,
			SameSite: http.SameSiteLaxMode,
		})
	}
}

func (h *Handler) Login(c *gin.Context) {
	var req LoginRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	accessToken, refreshToken, userResp, err := h.service.Login(c.Request.Context(), req.Email, req.Password)
	if err != nil {
		// Deliberately uniform so the response does not reveal whether the
		// email exists.
		response.Error(c, http.StatusUnauthorized, "AUTH_FAILED", "Invalid email or password", nil)
		return
	}

	setAuthCookies(c, accessToken, refreshToken)

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  accessToken,
		"refresh_token": refreshToken,
	}, nil)
}

func (h *Handler) Me(c *gin.Context) {
	userID, ok := c.Get("user_id")
	if !ok {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Unauthorized", nil)
		return
	}

	userResp, err := h.service.GetMe(c.Request.Context(), userID.(string))
	if err != nil {
		response.Error(c, http.StatusUnauthorized, apperror.CodeUnauthorized, "Unauthorized", nil)
		return
	}

	response.Success(c, http.StatusOK, userResp, nil)
}

func (h *Handler) Logout(c *gin.Context) {
	clearAuthCookies(c)
	response.Success(c, http.StatusOK, gin.H{"logged_out": true}, nil)
}

func (h *Handler) Register(c *gin.Context) {
	var req RegisterRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpErr := apperror.ToHTTP(apperror.MapValidationError(err))
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	resp, err := h.service.Register(c.Request.Context(), req)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
		return
	}

	response.Success(c, http.StatusCreated, resp, nil)
}

func (h *Handler) RefreshToken(c *gin.Context) {
	refreshToken, err := c.Cookie("refresh_token")
	if err != nil || refreshToken == "" {
		var req struct {
			RefreshToken string `json:"refresh_token" binding:"required"`
		}
		if err := c.ShouldBindJSON(&req); err != nil {
			response.Error(c, http.StatusUnauthorized, "NO_REFRESH_TOKEN", "Missing refresh token", nil)
			return
		}
		refreshToken = req.RefreshToken
	}

	newAccess, newRefresh, userResp, err := h.service.RefreshToken(c.Request.Context(), refreshToken)
	if err != nil {
		httpErr := apperror.ToHTTP(err)
		response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, nil)
		return
	}

	setAuthCookies(c, newAccess, newRefresh)

	response.Success(c, http.StatusOK, gin.H{
		"user":          userResp,
		"access_token":  newAccess,
		"refresh_token": newRefresh,
	}, nil)
}
