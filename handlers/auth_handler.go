package handlers

import (
	"fmt"
	"net/http"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/labstack/echo/v4"

	"github.com/kajalsharma987/my-leave-app/services"
)

type AuthHandler struct {
	Service   *services.Service
	JWTSecret string
}

func NewAuthHandler(svc *services.Service, secret string) *AuthHandler {
	return &AuthHandler{Service: svc, JWTSecret: secret}
}

func (h *AuthHandler) signJWT(username, role string, ttl time.Duration) (string, error) {
	claims := jwt.MapClaims{
		"sub":  username,
		"role": role,
		"exp":  time.Now().Add(ttl).Unix(),
		"iat":  time.Now().Unix(),
	}
	tk := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return tk.SignedString([]byte(h.JWTSecret))
}

type RegisterReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
	Role     string `json:"role"`
}

type LoginReq struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// POST /auth/register
func (h *AuthHandler) Register(c echo.Context) error {
	var req RegisterReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	user, err := h.Service.Register(req.Username, req.Password, req.Role)
	if err != nil {
		return httpError("Registration Error", err)
	}

	resp := notice("Success",
		fmt.Sprintf("User %q registered as a %s. You can now log in.", user.Username, user.Role))
	resp["user"] = map[string]any{"username": user.Username, "role": user.Role}
	return c.JSON(http.StatusCreated, resp)
}

// POST /auth/login
func (h *AuthHandler) Login(c echo.Context) error {
	var req LoginReq
	if err := c.Bind(&req); err != nil {
		return echo.NewHTTPError(http.StatusBadRequest, map[string]any{"error": "INVALID_PAYLOAD"})
	}

	user, err := h.Service.Login(req.Username, req.Password)
	if err != nil {
		return httpError("Login Error", err)
	}

	token, err := h.signJWT(user.Username, user.Role, 7*24*time.Hour)
	if err != nil {
		return echo.NewHTTPError(http.StatusInternalServerError, map[string]any{"error": "TOKEN_GEN_FAILED"})
	}

	resp := notice("Success",
		fmt.Sprintf("Logged in as %s (%s).", user.Username, user.Role))
	resp["token"] = token
	resp["user"] = map[string]any{"username": user.Username, "role": user.Role}
	return c.JSON(http.StatusOK, resp)
}

// POST /auth/logout
func (h *AuthHandler) Logout(c echo.Context) error {
	h.Service.Logout()
	return c.JSON(http.StatusOK,
		notice("Logged Out", "You have been successfully logged out."))
}
