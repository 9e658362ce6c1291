package usercontext

import "github.com/gofiber/fiber/v2"

// Shared Locals keys used across controllers and middlewares
const (
	ContextKey = "USER_CONTEXT"
	KeyUserID  = "user_id"
)

// UserContext represents the authenticated caller for a request
type UserContext struct {
	UserID     uint   `json:"user_id"`
	Name       string `json:"name"`
	Email      string `json:"email"`
	IsLoggedIn bool   `json:"is_logged_in"`
	Plan       string `json:"plan"`
}

// GetUserContext retrieves the user context from fiber context
// Returns a default anonymous context if none is set
func GetUserContext(c *fiber.Ctx) UserContext {
	if ctx := c.Locals(ContextKey); ctx != nil {
		return ctx.(UserContext)
	}
	return UserContext{IsLoggedIn: false}
}

// SetUserContext stores the user context on the fiber context
func SetUserContext(c *fiber.Ctx, ctx UserContext) {
	c.Locals(ContextKey, ctx)
	c.Locals(KeyUserID, ctx.UserID)
}

// IsLoggedIn checks if the current request is authenticated
func IsLoggedIn(c *fiber.Ctx) bool {
	return GetUserContext(c).IsLoggedIn
}

// GetUserID returns the current user's ID, or 0 if not authenticated
func GetUserID(c *fiber.Ctx) uint {
	return GetUserContext(c).UserID
}

// GetPlan returns the current user's plan tier, or "free" if unknown
func GetPlan(c *fiber.Ctx) string {
	if plan := GetUserContext(c).Plan; plan != "" {
		return plan
	}
	return "free"
}
