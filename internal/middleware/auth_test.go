package middleware

import (
	"context"
	"errors"
	"net/http/httptest"
	"testing"
	"time"

	"propmarket/internal/models"
	"propmarket/internal/utils"

	"github.com/gofiber/fiber/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

const testSecret = "test-secret"

type MockProfileSyncer struct {
	mock.Mock
}

func (m *MockProfileSyncer) SyncFromClaims(ctx context.Context, claims *models.UserClaims) error {
	return m.Called(ctx, claims).Error(0)
}

func token(t *testing.T, claims models.UserClaims) string {
	t.Helper()
	tok, err := utils.GenerateToken(&claims, testSecret, time.Hour)
	require.NoError(t, err)
	return "Bearer " + tok
}

func newApp(syncer ProfileSyncer) *fiber.App {
	app := fiber.New()
	auth := NewAuthMiddleware(testSecret, syncer, nil)
	app.Get("/me", auth.Handler, func(c *fiber.Ctx) error {
		claims, _ := utils.GetUserClaims(c)
		return c.SendString(claims.UserID)
	})
	app.Get("/admin", auth.Handler, AdminAuthMiddleware, func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	app.Get("/approve", auth.Handler, HasPermission(models.PermissionApproveWithdrawal), func(c *fiber.Ctx) error { return c.SendStatus(fiber.StatusNoContent) })
	return app
}

func TestAuthMiddleware_Handler(t *testing.T) {
	syncer := new(MockProfileSyncer)
	syncer.On("SyncFromClaims", mock.Anything, mock.MatchedBy(func(c *models.UserClaims) bool { return c.UserID == "u-1" })).Return(nil)
	syncer.On("SyncFromClaims", mock.Anything, mock.MatchedBy(func(c *models.UserClaims) bool { return c.UserID == "u-2" })).Return(errors.New("db down"))
	app := newApp(syncer)

	tests := []struct {
		name       string
		path       string
		header     string
		wantStatus int
	}{
		{name: "missing header", path: "/me", wantStatus: 401},
		{name: "not bearer", path: "/me", header: "Basic abc", wantStatus: 401},
		{name: "garbage token", path: "/me", header: "Bearer abc.def.ghi", wantStatus: 401},
		{name: "valid", path: "/me", header: token(t, models.UserClaims{UserID: "u-1", Email: "a@example.com"}), wantStatus: 200},
		{name: "profile sync failure does not block", path: "/me", header: token(t, models.UserClaims{UserID: "u-2"}), wantStatus: 200},
		{name: "user on admin route", path: "/admin", header: token(t, models.UserClaims{UserID: "u-1", Role: models.RoleUser}), wantStatus: 403},
		{name: "admin on admin route", path: "/admin", header: token(t, models.UserClaims{UserID: "u-1", Role: models.RoleAdmin}), wantStatus: 204},
		{name: "default user permissions", path: "/approve", header: token(t, models.UserClaims{UserID: "u-1"}), wantStatus: 403},
		{name: "explicit permission", path: "/approve", header: token(t, models.UserClaims{UserID: "u-1", Permissions: []string{models.PermissionApproveWithdrawal}}), wantStatus: 204},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			req := httptest.NewRequest("GET", tt.path, nil)
			if tt.header != "" {
				req.Header.Set("Authorization", tt.header)
			}
			resp, err := app.Test(req)
			require.NoError(t, err)
			assert.Equal(t, tt.wantStatus, resp.StatusCode)
		})
	}
}

func TestAuthMiddleware_WrongSecret(t *testing.T) {
	app := newApp(nil)
	forged, err := utils.GenerateToken(&models.UserClaims{UserID: "u-1", Role: models.RoleAdmin}, "attacker", time.Hour)
	require.NoError(t, err)

	req := httptest.NewRequest("GET", "/admin", nil)
	req.Header.Set("Authorization", "Bearer "+forged)
	resp, err := app.Test(req)
	require.NoError(t, err)
	assert.Equal(t, 401, resp.StatusCode)
}
