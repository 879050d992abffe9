package controllers

import (
	"errors"
	"log/slog"
	"net/http"
	"strings"

	"filetags/internal/delivery/http/helpers"
	"filetags/internal/delivery/http/middleware"
	"filetags/internal/domain"
)

// LoginRequest is the request body for POST /auth/login.
type LoginRequest struct {
	Username string `json:"username"`
	Password string `json:"password"`
}

// Validate implements Validator. Surrounding spaces in the username are
// ignored.
func (l LoginRequest) Validate() []string {
	var problems []string
	if strings.TrimSpace(l.Username) == "" {
		problems = append(problems, "username is required")
	}
	if l.Password == "" {
		problems = append(problems, "password is required")
	}
	return problems
}

// LoginResponse carries the operator's access token.
type LoginResponse struct {
	Token     string `json:"token"`
	TokenType string `json:"token_type"`
}

// AuthController serves operator login.
type AuthController struct {
	Logger  *slog.Logger
	Service domain.AuthService
}

func NewAuthController(logger *slog.Logger, svc domain.AuthService) *AuthController {
	return &AuthController{Logger: logger, Service: svc}
}

// Login godoc
// @Summary Log in
// @Description Authenticate the operator account. Returns a JWT for the Authorization header of mutating routes.
// @Tags auth
// @Accept json
// @Produce json
// @Param body body LoginRequest true "Login credentials"
// @Success 200 {object} helpers.APIResponse "data contains token and token_type"
// @Failure 400 {object} helpers.APIResponse "error.code: bad_request"
// @Failure 401 {object} helpers.APIResponse "error.code: unauthorized"
// @Failure 500 {object} helpers.APIResponse "error.code: internal_error"
// @Router /auth/login [post]
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var req LoginRequest
	if !helpers.DecodeAndValidate(w, r, &req) {
		return
	}
	username := strings.TrimSpace(req.Username)
	reqID := middleware.RequestIDFromContext(r.Context())

	token, err := c.Service.Login(r.Context(), username, req.Password)
	switch {
	case errors.Is(err, domain.ErrInvalidCredentials):
		c.Logger.WarnContext(r.Context(), "login rejected", "username", username, "request_id", reqID)
		helpers.WriteJSONError(w, http.StatusUnauthorized, helpers.ErrCodeUnauthorized, "invalid credentials")
	case err != nil:
		writeManagerError(w, r, c.Logger, err)
	default:
		c.Logger.InfoContext(r.Context(), "operator logged in", "username", username, "request_id", reqID)
		helpers.WriteJSONSuccess(w, http.StatusOK, LoginResponse{Token: token, TokenType: "Bearer"})
	}
}
