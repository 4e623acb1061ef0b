package middleware

import (
	"github.com/gofiber/fiber/v3"
	"github.com/gofiber/fiber/v3/middleware/session"

	"mapdex/internal/config"
	"mapdex/internal/db"
	"mapdex/internal/models"
)

// AuthMiddleware handles user authentication via sessions.
type AuthMiddleware struct {
	db  *db.DB
	cfg *config.Config
}

// NewAuthMiddleware creates a new auth middleware instance.
func NewAuthMiddleware(database *db.DB, cfg *config.Config) *AuthMiddleware {
	return &AuthMiddleware{db: database, cfg: cfg}
}

// RequireAuth ensures the user is authenticated, redirecting to /login if not.
func (m *AuthMiddleware) RequireAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Redirect().To("/login")
	}

	userSub, _ := sess.Get("user_sub").(string)
	if userSub == "" {
		return c.Redirect().To("/login")
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub)
	if err != nil {
		sess.Destroy()
		return c.Redirect().To("/login")
	}

	c.Locals("user", user)
	return c.Next()
}

// RequireEditor gates the submission routes. Without REQUIRE_LOGIN_TO_EDIT
// anyone may create and edit entries; with it, an authenticated session is
// required.
func (m *AuthMiddleware) RequireEditor(c fiber.Ctx) error {
	if !m.cfg.RequireLoginToEdit {
		return m.OptionalAuth(c)
	}
	return m.RequireAuth(c)
}

// RequireModerator ensures the user is a moderator or admin.
func (m *AuthMiddleware) RequireModerator(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return fiber.NewError(fiber.StatusForbidden, "moderator access required")
	}

	userSub, _ := sess.Get("user_sub").(string)
	if userSub == "" {
		return fiber.NewError(fiber.StatusForbidden, "moderator access required")
	}

	user, err := m.db.GetUserBySub(c.Context(), userSub)
	if err != nil || !user.IsModerator() {
		return fiber.NewError(fiber.StatusForbidden, "moderator access required")
	}

	c.Locals("user", user)
	return c.Next()
}

// OptionalAuth loads the user if authenticated, but doesn't require authentication.
func (m *AuthMiddleware) OptionalAuth(c fiber.Ctx) error {
	sess := session.FromContext(c)
	if sess == nil {
		return c.Next()
	}

	userSub, _ := sess.Get("user_sub").(string)
	if userSub == "" {
		return c.Next()
	}

	if user, err := m.db.GetUserBySub(c.Context(), userSub); err == nil {
		c.Locals("user", user)
	}

	return c.Next()
}

// CurrentUser returns the authenticated user from the request, if any.
func CurrentUser(c fiber.Ctx) *models.User {
	user, _ := c.Locals("user").(*models.User)
	return user
}
