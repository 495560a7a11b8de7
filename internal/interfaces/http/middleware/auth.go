package middleware

import (
	"context"
	"errors"
	"strings"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
	"partner-onboarding.backend/internal/domain/entities"
	domainerrors "partner-onboarding.backend/internal/domain/errors"
	"partner-onboarding.backend/internal/interfaces/http/response"
	"partner-onboarding.backend/pkg/jwt"
	"partner-onboarding.backend/pkg/logger"
)

const (
	// AuthorizationHeader is the header key for authorization
	AuthorizationHeader = "Authorization"
	// BearerPrefix is the prefix for bearer tokens
	BearerPrefix = "Bearer "
	// UserIDKey is the context key for the caller uid
	UserIDKey = "userId"
	// UserEmailKey is the context key for user email
	UserEmailKey = "userEmail"
	// UserRoleKey is the context key for user role
	UserRoleKey = "userRole"
)

// TokenValidator validates bearer tokens. *jwt.JWTService satisfies it.
type TokenValidator interface {
	ValidateToken(tokenString string) (*jwt.Claims, error)
}

// AuthMiddleware creates a new authentication middleware
func AuthMiddleware(validator TokenValidator) gin.HandlerFunc {
	return func(c *gin.Context) {
		authHeader := c.GetHeader(AuthorizationHeader)
		if authHeader == "" {
			logger.Warn(c.Request.Context(), "Authorization header is missing", zap.String("path", c.Request.URL.Path))
			response.AbortWithError(c, domainerrors.Unauthenticated("authorization header is required"))
			return
		}

		if !strings.HasPrefix(authHeader, BearerPrefix) {
			logger.Warn(c.Request.Context(), "Invalid authorization format", zap.String("path", c.Request.URL.Path))
			response.AbortWithError(c, domainerrors.Unauthenticated("invalid authorization format, use: Bearer <token>"))
			return
		}

		tokenString := strings.TrimPrefix(authHeader, BearerPrefix)
		claims, err := validator.ValidateToken(tokenString)
		if err != nil {
			logger.Warn(c.Request.Context(), "Token rejected", zap.String("path", c.Request.URL.Path), zap.Error(err))
			if errors.Is(err, jwt.ErrExpiredToken) {
				response.AbortWithError(c, domainerrors.Unauthenticated("token has expired"))
				return
			}
			response.AbortWithError(c, domainerrors.Unauthenticated("invalid token"))
			return
		}

		// Set user info in context
		c.Set(UserIDKey, claims.UID)
		c.Set(UserEmailKey, claims.Email)
		c.Set(UserRoleKey, claims.Role)

		ctx := context.WithValue(c.Request.Context(), logger.CallerUIDKey, claims.UID)
		c.Request = c.Request.WithContext(ctx)

		c.Next()
	}
}

// GetUserID gets the caller uid from context
func GetUserID(c *gin.Context) (string, bool) {
	return c.GetString(UserIDKey), c.GetString(UserIDKey) != ""
}

// GetUserRole gets the user role from context
func GetUserRole(c *gin.Context) (string, bool) {
	role, exists := c.Get(UserRoleKey)
	if !exists {
		return "", false
	}
	s, ok := role.(string)
	return s, ok
}

// GetCaller returns the authenticated caller, or nil on public routes
func GetCaller(c *gin.Context) *entities.Caller {
	uid, ok := GetUserID(c)
	if !ok {
		return nil
	}
	role, _ := GetUserRole(c)
	return &entities.Caller{
		UID:   uid,
		Email: c.GetString(UserEmailKey),
		Role:  entities.IdentityRole(role),
	}
}

// RequireRole creates a middleware that requires a specific role
func RequireRole(roles ...entities.IdentityRole) gin.HandlerFunc {
	return func(c *gin.Context) {
		userRole, exists := GetUserRole(c)
		if !exists {
			response.AbortWithError(c, domainerrors.Unauthenticated("user role not found"))
			return
		}

		for _, role := range roles {
			if userRole == string(role) {
				c.Next()
				return
			}
		}

		response.AbortWithError(c, domainerrors.PermissionDenied("insufficient permissions"))
	}
}

// RequireAdmin creates a middleware that requires admin role
func RequireAdmin() gin.HandlerFunc {
	return RequireRole(entities.IdentityRoleAdmin)
}
