package controllers

import (
	"errors"
	"net/http"

	"github.com/putrawardana/warungsaji/app/models"
	"github.com/putrawardana/warungsaji/app/services"
	"github.com/putrawardana/warungsaji/pkg/bind"
	"github.com/putrawardana/warungsaji/pkg/middleware"
	"github.com/putrawardana/warungsaji/pkg/response"
)

// Authenticator is what the controller needs from the auth service.
type Authenticator interface {
	Login(email, password string) (string, models.User, error)
	Me(userID string) (models.User, error)
}

// AuthController handles admin login, logout, and identity.
type AuthController struct {
	auth Authenticator
}

func NewAuthController(auth Authenticator) *AuthController {
	return &AuthController{auth: auth}
}

type loginInput struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=8"`
}

// Login handles POST /api/admin/login.
func (c *AuthController) Login(w http.ResponseWriter, r *http.Request) {
	var in loginInput
	if errs, err := bind.JSON(r, &in); err != nil {
		response.BadRequest(w, err.Error())
		return
	} else if errs != nil {
		response.ValidationError(w, errs)
		return
	}

	token, user, err := c.auth.Login(in.Email, in.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			response.Error(w, http.StatusUnauthorized, "Invalid email or password")
			return
		}
		response.Error(w, http.StatusInternalServerError, "Login failed")
		return
	}

	response.Success(w, map[string]interface{}{
		"token": token,
		"user":  user,
	})
}

// Logout handles POST /api/admin/logout. Tokens are stateless, so the
// client discards it; the endpoint exists for the UI flow and audit
// logging.
func (c *AuthController) Logout(w http.ResponseWriter, r *http.Request) {
	response.Message(w, "Logged out")
}

// Me handles GET /api/admin/me.
func (c *AuthController) Me(w http.ResponseWriter, r *http.Request) {
	user, err := c.auth.Me(middleware.UserIDFromCtx(r.Context()))
	if err != nil {
		response.Unauthorized(w)
		return
	}
	response.Success(w, user)
}
