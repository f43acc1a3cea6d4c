package handlers

import (
	"strings"

	"coursehub/internal/errs"
	"coursehub/internal/i18n"
	"coursehub/internal/middleware"
	"coursehub/internal/models"
	"coursehub/internal/services"

	"github.com/gofiber/fiber/v2"
	"go.uber.org/zap"
)

// AuthHandler handles HTTP requests of the mock auth server.
type AuthHandler struct {
	authService *services.AuthService
	log         *zap.Logger
}

// NewAuthHandler creates a new AuthHandler.
func NewAuthHandler(authService *services.AuthService, log *zap.Logger) *AuthHandler {
	if log == nil {
		log = zap.NewNop()
	}
	return &AuthHandler{
		authService: authService,
		log:         log,
	}
}

// RegisterRoutes registers the authentication routes with the Fiber app.
func (h *AuthHandler) RegisterRoutes(router fiber.Router) {
	authRoutes := router.Group("/auth")
	authRoutes.Post("/register", h.HandleRegister)
	authRoutes.Post("/login", h.HandleLogin)
	authRoutes.Get("/me", middleware.AuthRequired(h.authService, h.log), h.HandleMe)
}

// RegisterRequest is the register body. Backend style bodies are accepted
// too: nickname stands in for name and username for email.
type RegisterRequest struct {
	Name     string `json:"name"`
	Nickname string `json:"nickname"`
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

// LoginRequest is the login body; username is accepted for email.
type LoginRequest struct {
	Email    string `json:"email"`
	Username string `json:"username"`
	Password string `json:"password"`
}

func firstNonBlank(values ...string) string {
	for _, v := range values {
		if strings.TrimSpace(v) != "" {
			return v
		}
	}
	return ""
}

func message(c *fiber.Ctx, status int, text string) error {
	return c.Status(status).JSON(models.AuthResponse{Message: text})
}

// HandleRegister handles new user registration.
func (h *AuthHandler) HandleRegister(c *fiber.Ctx) error {
	var req RegisterRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Debug("invalid register body", zap.Error(err))
		return message(c, fiber.StatusBadRequest, i18n.MsgMissingFields)
	}

	err := h.authService.Register(c.UserContext(),
		firstNonBlank(req.Name, req.Nickname),
		firstNonBlank(req.Email, req.Username),
		req.Password)
	switch {
	case err == nil:
		return message(c, fiber.StatusOK, i18n.MsgRegisterOK)
	case errs.IsValidation(err):
		return message(c, fiber.StatusBadRequest, i18n.MsgMissingFields)
	case errs.IsConflict(err):
		return message(c, fiber.StatusConflict, i18n.MsgEmailTaken)
	default:
		h.log.Error("registration failed", zap.Error(err))
		return message(c, fiber.StatusInternalServerError, err.Error())
	}
}

// HandleLogin checks credentials and issues a JWT token.
func (h *AuthHandler) HandleLogin(c *fiber.Ctx) error {
	var req LoginRequest
	if err := c.BodyParser(&req); err != nil {
		h.log.Debug("invalid login body", zap.Error(err))
		return message(c, fiber.StatusBadRequest, i18n.MsgMissingFields)
	}

	name, token, err := h.authService.Login(c.UserContext(), firstNonBlank(req.Email, req.Username), req.Password)
	switch {
	case err == nil:
		return c.JSON(models.AuthResponse{Message: i18n.MsgLoginOK, Name: name, Token: token})
	case errs.IsValidation(err):
		return message(c, fiber.StatusBadRequest, i18n.MsgMissingFields)
	case errs.IsAuth(err):
		return message(c, fiber.StatusUnauthorized, i18n.MsgBadCredentials)
	default:
		h.log.Error("login failed", zap.Error(err))
		return message(c, fiber.StatusInternalServerError, err.Error())
	}
}

// HandleMe returns the identity carried by the bearer token.
func (h *AuthHandler) HandleMe(c *fiber.Ctx) error {
	email, _ := c.Locals(middleware.LocalEmail).(string)
	name, _ := c.Locals(middleware.LocalName).(string)
	return c.JSON(models.Me{Username: email, Email: &email, Nickname: &name})
}
