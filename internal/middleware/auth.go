package middleware

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/lanexam/lanexam-backend/internal/model"
	"github.com/lanexam/lanexam-backend/internal/response"
	"github.com/lanexam/lanexam-backend/internal/service"
)

const (
	claimsKey = "auth_claims"
	tokenKey  = "auth_token"
)

// RequireAuth validates the bearer token against the live session store and
// stashes the claims in the request context. The token is also accepted as
// a ?token= query parameter for WebSocket clients that cannot set headers.
func RequireAuth(auth *service.AuthService) gin.HandlerFunc {
	return func(c *gin.Context) {
		token := extractToken(c)
		if token == "" {
			response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenRequired)
			return
		}

		claims, err := auth.ValidateSession(c.Request.Context(), token)
		if err != nil {
			switch {
			case errors.Is(err, service.ErrSessionNotFound):
				response.AbortFail(c, http.StatusUnauthorized, response.ErrSessionExpired)
			case errors.Is(err, jwt.ErrTokenExpired):
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenExpired)
			default:
				response.AbortFail(c, http.StatusUnauthorized, response.ErrTokenInvalid)
			}
			return
		}

		c.Set(claimsKey, claims)
		c.Set(tokenKey, token)
		c.Next()
	}
}

// RequireTeacher gates a route to teacher accounts. Must run after RequireAuth.
func RequireTeacher() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Role != model.RoleTeacher {
			response.AbortFail(c, http.StatusForbidden, response.ErrTeacherAccessOnly)
			return
		}
		c.Next()
	}
}

// RequireStudent gates a route to student accounts. Must run after RequireAuth.
func RequireStudent() gin.HandlerFunc {
	return func(c *gin.Context) {
		claims := GetClaims(c)
		if claims == nil || claims.Role != model.RoleStudent {
			response.AbortFail(c, http.StatusForbidden, response.ErrStudentAccessOnly)
			return
		}
		c.Next()
	}
}

// GetClaims returns the authenticated claims, or nil outside RequireAuth.
func GetClaims(c *gin.Context) *service.Claims {
	v, exists := c.Get(claimsKey)
	if !exists {
		return nil
	}
	claims, ok := v.(*service.Claims)
	if !ok {
		return nil
	}
	return claims
}

// GetToken returns the raw bearer token stored by RequireAuth.
func GetToken(c *gin.Context) string {
	v, exists := c.Get(tokenKey)
	if !exists {
		return ""
	}
	token, _ := v.(string)
	return token
}

func extractToken(c *gin.Context) string {
	header := c.GetHeader("Authorization")
	if strings.HasPrefix(header, "Bearer ") {
		return strings.TrimPrefix(header, "Bearer ")
	}
	return c.Query("token")
}
