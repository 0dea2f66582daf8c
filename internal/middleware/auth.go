package middleware // middleware provides shared request processing for handlers

import (
	"net/http"
	"strings"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-blog/internal/utils"
)

// JWTAuth returns the auth gate applied to protected routes. It reads a
// Bearer token from the Authorization header, verifies it with the
// shared secret and stores the decoded identity in the request context
// under "user_id" and "username".
//
// A missing token means the caller is not logged in at all and yields
// 401; a token that is present but fails verification yields 403. The
// two cases are deliberately distinct so clients can tell "log in
// first" apart from "your credential is broken".
//
// Public read routes are registered without this middleware; their
// handlers must not assume an identity exists in the context.
func JWTAuth(secret string) echo.MiddlewareFunc {
	return func(next echo.HandlerFunc) echo.HandlerFunc {
		return func(c echo.Context) error {
			auth := c.Request().Header.Get("Authorization")
			if !strings.HasPrefix(auth, "Bearer ") {
				return c.JSON(http.StatusUnauthorized, echo.Map{"error": "user not logged in"})
			}
			raw := strings.TrimPrefix(auth, "Bearer ")

			id, err := utils.ParseAccessToken(secret, raw)
			if err != nil {
				return c.JSON(http.StatusForbidden, echo.Map{"error": "invalid token"})
			}

			c.Set("user_id", id.ID)
			c.Set("username", id.Username)
			return next(c)
		}
	}
}
