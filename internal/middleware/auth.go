// Package middleware provides HTTP middleware components for the application.
// It includes authentication and authorization middleware for the fiber
// web framework.
package middleware

import (
	"context"
	"strings"

	"propmarket/internal/logger"
	"propmarket/internal/models"
	"propmarket/internal/utils"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// ProfileSyncer mirrors the token's identity into the local profiles table.
type ProfileSyncer interface {
	SyncFromClaims(ctx context.Context, claims *models.UserClaims) error
}

// AuthMiddleware handles JWT token validation and user authentication.
// It extracts the JWT token from the Authorization header, validates it,
// and adds the user claims to the request context.
type AuthMiddleware struct {
	secret   string
	profiles ProfileSyncer
	logger   *zap.Logger
}

// NewAuthMiddleware builds the middleware. profiles may be nil.
func NewAuthMiddleware(secret string, profiles ProfileSyncer, l *zap.Logger) *AuthMiddleware {
	if secret == "" {
		panic("JWT secret is required")
	}
	return &AuthMiddleware{
		secret:   secret,
		profiles: profiles,
		logger:   logger.OrNop(l).Named("auth"),
	}
}

// Handler validates JWT tokens and adds claims to the request context.
// It checks for:
// - Presence of Authorization header with Bearer token
// - Valid HS256 signature and expiry
// - A user id in the claims
func (m *AuthMiddleware) Handler(c *fiber.Ctx) error {
	authHeader := c.Get(fiber.HeaderAuthorization)
	if authHeader == "" {
		return utils.Unauthorized(c, "missing authorization header")
	}
	if !strings.HasPrefix(authHeader, "Bearer ") {
		return utils.Unauthorized(c, "invalid authorization format")
	}

	_, claims, err := utils.ParseToken(strings.TrimPrefix(authHeader, "Bearer "), m.secret)
	if err != nil {
		m.logger.Debug("token rejected", zap.Error(err), zap.String("path", c.Path()))
		return utils.Unauthorized(c, "invalid token")
	}
	if claims.Role == "" {
		claims.Role = models.RoleUser
	}
	if len(claims.Permissions) == 0 {
		claims.Permissions = models.GetDefaultPermissions(claims.Role)
	}

	if m.profiles != nil {
		if err := m.profiles.SyncFromClaims(c.UserContext(), claims); err != nil {
			// Profiles only feed display joins; the request can proceed.
			m.logger.Warn("profile sync failed", zap.String("user_id", claims.UserID), zap.Error(err))
		}
	}

	c.Locals(utils.ClaimsKey, claims)
	c.Locals("userID", claims.UserID)
	return c.Next()
}

// AdminAuthMiddleware verifies that the request has valid admin claims.
func AdminAuthMiddleware(c *fiber.Ctx) error {
	claims, err := utils.GetUserClaims(c)
	if err != nil {
		return utils.Unauthorized(c, "invalid claims")
	}
	if !claims.IsAdmin() {
		return utils.Forbidden(c, "insufficient permissions")
	}
	return c.Next()
}

// HasPermission returns a middleware that checks for a specific permission.
func HasPermission(permission string) fiber.Handler {
	return func(c *fiber.Ctx) error {
		claims, err := utils.GetUserClaims(c)
		if err != nil {
			return utils.Unauthorized(c, "unauthorized")
		}

		// If user is admin, allow all permissions
		if claims.IsAdmin() || claims.HasPermission(permission) {
			return c.Next()
		}
		return utils.Forbidden(c, "insufficient permissions")
	}
}
