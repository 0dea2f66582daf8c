package handler

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strings"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/iliyamo/social-blog/internal/config"
	"github.com/iliyamo/social-blog/internal/model"
	"github.com/iliyamo/social-blog/internal/repository"
	"github.com/iliyamo/social-blog/internal/utils"
)

// UserStore is the credential persistence contract consumed by
// AuthHandler. *repository.UserRepo satisfies it; tests substitute a
// map-backed mock.
type UserStore interface {
	Create(ctx context.Context, username, password string, cost int) (uint64, error)
	GetByUsername(ctx context.Context, username string) (model.User, error)
	GetByID(ctx context.Context, id uint64) (model.User, error)
	UpdatePassword(ctx context.Context, username, newPassword string, cost int) error
}

// AuthHandler bundles dependencies for registration, login and
// credential management endpoints.
type AuthHandler struct {
	Cfg   config.Config
	Users UserStore
}

func NewAuthHandler(cfg config.Config, users UserStore) *AuthHandler {
	return &AuthHandler{Cfg: cfg, Users: users}
}

// ----- DTOs -----

type credentialsReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

type changePasswordReq struct {
	OldPassword string `json:"oldPassword"`
	NewPassword string `json:"newPassword"`
}

type loginResp struct {
	Token    string `json:"token"`
	Username string `json:"username"`
	ID       uint64 `json:"id"`
}

// Register creates a credential. No token is issued here; the caller
// logs in separately.
func (h *AuthHandler) Register(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	if _, err := h.Users.Create(ctx, req.Username, req.Password, h.Cfg.BcryptCost); err != nil {
		if errors.Is(err, repository.ErrUsernameExists) {
			return c.JSON(http.StatusBadRequest, echo.Map{"error": "username already exists"})
		}
		log.Printf("register: create user failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "signup failed"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "SUCCESS"})
}

// Login verifies the credential and returns a signed token together
// with the identity's public fields. An unknown username is 404 while a
// wrong password is 400, matching the behavior clients already depend on.
func (h *AuthHandler) Login(c echo.Context) error {
	var req credentialsReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	req.Username = strings.TrimSpace(req.Username)
	if req.Username == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "username and password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, req.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user doesn't exist"})
		}
		log.Printf("login: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.Password) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wrong username and password combination"})
	}

	token, err := utils.NewAccessToken(h.Cfg.JWTSecret,
		model.Identity{ID: u.ID, Username: u.Username}, h.Cfg.AccessTTLMin)
	if err != nil {
		log.Printf("login: issue token failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "login failed"})
	}
	return c.JSON(http.StatusOK, loginResp{Token: token, Username: u.Username, ID: u.ID})
}

// Me returns the identity decoded from the presented token. Protected.
func (h *AuthHandler) Me(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	return c.JSON(http.StatusOK, id)
}

// BasicInfo returns the public profile of any user. Unauthenticated;
// the password hash never appears in the response type.
func (h *AuthHandler) BasicInfo(c echo.Context) error {
	id, ok := pathID(c, "id")
	if !ok {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid user id"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		log.Printf("basicinfo: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "lookup failed"})
	}
	return c.JSON(http.StatusOK, model.PublicProfile{ID: u.ID, Username: u.Username})
}

// ChangePassword re-verifies the old password before storing a new
// hash. Protected. A failed verification leaves the stored hash
// untouched, and tokens issued earlier remain valid — there is no
// session store to revoke them from.
func (h *AuthHandler) ChangePassword(c echo.Context) error {
	id, err := identityFrom(c)
	if err != nil {
		return c.JSON(http.StatusUnauthorized, echo.Map{"error": "unauthorized"})
	}
	var req changePasswordReq
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "invalid body"})
	}
	if req.OldPassword == "" || req.NewPassword == "" {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "old and new password required"})
	}

	ctx, cancel := context.WithTimeout(c.Request().Context(), 5*time.Second)
	defer cancel()

	u, err := h.Users.GetByUsername(ctx, id.Username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return c.JSON(http.StatusNotFound, echo.Map{"error": "user not found"})
		}
		log.Printf("changepassword: query failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}
	if !utils.VerifyPassword(u.PasswordHash, req.OldPassword) {
		return c.JSON(http.StatusBadRequest, echo.Map{"error": "wrong password entered"})
	}
	if err := h.Users.UpdatePassword(ctx, id.Username, req.NewPassword, h.Cfg.BcryptCost); err != nil {
		log.Printf("changepassword: update failed: %v", err)
		return c.JSON(http.StatusInternalServerError, echo.Map{"error": "failed to change password"})
	}
	return c.JSON(http.StatusOK, echo.Map{"message": "password changed successfully"})
}
