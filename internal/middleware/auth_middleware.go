package middleware

import (
	"fmt"
	"net/http"
	"os"
	"strings"

	autherrors "leavedesk/internal/auth/errors"
	"leavedesk/internal/authz"
	"leavedesk/internal/shared/contextutil"
	"leavedesk/internal/shared/response"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
)

// AuthMiddleware validates the bearer token (header or cookie) and puts
// the canonical identity on the gin context: user_id, employee_id, role.
// The employee id in the claims was resolved once at login; downstream
// code never re-resolves it.
func AuthMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		var tokenString string

		authHeader := c.GetHeader("Authorization")
		tokenString, found := strings.CutPrefix(authHeader, "Bearer ")
		if !found {
			tokenString = ""
		}

		if tokenString == "" {
			if cookie, err := c.Cookie("access_token"); err == nil {
				tokenString = cookie
			}
		}

		if tokenString == "" {
			response.Error(c, http.StatusUnauthorized, "UNAUTHORIZED", "Token not found", nil)
			c.Abort()
			return
		}

		token, err := jwt.Parse(tokenString, func(token *jwt.Token) (interface{}, error) {
			if _, ok := token.Method.(*jwt.SigningMethodHMAC); !ok {
				return nil, fmt.Errorf("unexpected signing method")
			}
			return []byte(os.Getenv("JWT_SECRET")), nil
		})

		if err != nil || !token.Valid {
			errObj := autherrors.ErrInvalidToken
			if err != nil && strings.Contains(err.Error(), "expired") {
				errObj = autherrors.ErrTokenExpired
			}
			response.Error(c, errObj.HTTPStatus, errObj.Code, errObj.Message, nil)
			c.Abort()
			return
		}

		claims, ok := token.Claims.(jwt.MapClaims)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Invalid token claims", nil)
			c.Abort()
			return
		}

		userID, ok := claims["user_id"].(string)
		if !ok || userID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "User ID not found in token", nil)
			c.Abort()
			return
		}

		employeeID, ok := claims["employee_id"].(string)
		if !ok || employeeID == "" {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Employee ID not found in token", nil)
			c.Abort()
			return
		}

		roleClaim, _ := claims["role"].(string)
		role, ok := authz.ParseRole(roleClaim)
		if !ok {
			response.Error(c, http.StatusUnauthorized, "INVALID_TOKEN", "Unknown role in token", nil)
			c.Abort()
			return
		}

		c.Set("user_id", userID)
		c.Set("employee_id", employeeID)
		c.Set("role", string(role))

		ctx := contextutil.WithEmployeeID(c.Request.Context(), employeeID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}
