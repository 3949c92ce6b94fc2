package http

import (
	"errors"
	"net/http"
	"strings"

	"golang-stock-screener/internal/screener/dto"
	"golang-stock-screener/internal/screener/service"
	"golang-stock-screener/pkg/logger"

	"github.com/labstack/echo/v4"
)

// AuthHandler handles HTTP requests for user credentials.
type AuthHandler struct {
	authService service.AuthService
	logger      *logger.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService service.AuthService, logger *logger.Logger) *AuthHandler {
	return &AuthHandler{authService: authService, logger: logger}
}

// RegisterRoutes registers the auth routes to the Echo group.
func (h *AuthHandler) RegisterRoutes(g *echo.Group) {
	g.POST("/register", h.Register)
	g.POST("/login", h.Login)
}

// Register godoc
// @Summary Register a user
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request  body    dto.RegisterRequest   true    "User to register"
// @Success 201 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 409 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/register [post]
func (h *AuthHandler) Register(c echo.Context) error {
	var req dto.RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}
	if strings.TrimSpace(req.Username) == "" || req.Password == "" {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Username and password are required"})
	}

	user, err := h.authService.Register(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrUserExists) {
			return c.JSON(http.StatusConflict, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.ErrorContext(c.Request().Context(), "Failed to register user", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An internal error occurred.", Details: err.Error()})
	}
	return c.JSON(http.StatusCreated, user)
}

// Login godoc
// @Summary Verify user credentials
// @Tags auth
// @Accept  json
// @Produce  json
// @Param   request  body    dto.LoginRequest   true    "Credentials"
// @Success 200 {object} dto.UserResponse
// @Failure 400 {object} dto.ErrorResponse
// @Failure 401 {object} dto.ErrorResponse
// @Failure 500 {object} dto.ErrorResponse
// @Router /auth/login [post]
func (h *AuthHandler) Login(c echo.Context) error {
	var req dto.LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, dto.ErrorResponse{Error: "Invalid request payload"})
	}

	user, err := h.authService.Login(c.Request().Context(), &req)
	if err != nil {
		if errors.Is(err, service.ErrInvalidCredentials) {
			return c.JSON(http.StatusUnauthorized, dto.ErrorResponse{Error: err.Error()})
		}
		h.logger.ErrorContext(c.Request().Context(), "Failed to login user", logger.ErrorField(err))
		return c.JSON(http.StatusInternalServerError, dto.ErrorResponse{Error: "An internal error occurred.", Details: err.Error()})
	}
	return c.JSON(http.StatusOK, user)
}
