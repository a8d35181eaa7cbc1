package http

import (
	"errors"
	"net/http"
	"time"

	"github.com/labstack/echo/v4"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/service"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/util"
)

type AuthHandler struct {
	auth *service.AuthService
}

func RegisterAuth(e *echo.Echo, auth *service.AuthService) {
	handler := &AuthHandler{auth: auth}

	users := e.Group("/api/v1/users")
	users.POST("/register", handler.register)
	users.POST("/login", handler.login)
	users.GET("/logout", handler.logout)
	users.GET("/loggedin", handler.loginStatus)
	users.POST("/forgotpassword", handler.forgotPassword)
	users.PUT("/resetpassword/:resetToken", handler.resetPassword)

	authed := e.Group("/api/v1/users", RequireAuth(auth))
	authed.GET("/me", handler.me)
	authed.PATCH("/me", handler.updateProfile)
	authed.PATCH("/password", handler.changePassword)
}

func (h *AuthHandler) register(c echo.Context) error {
	var req RegisterRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Register(c.Request().Context(), req.Name, req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}

	setSessionCookie(c, result.Token, result.ExpiresAt)
	return c.JSON(http.StatusCreated, AuthTokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		User:      buildAuthUser(result.User),
	})
}

func (h *AuthHandler) login(c echo.Context) error {
	var req LoginRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	result, err := h.auth.Login(c.Request().Context(), req.Email, req.Password)
	if err != nil {
		return writeAuthError(c, err)
	}

	setSessionCookie(c, result.Token, result.ExpiresAt)
	return c.JSON(http.StatusOK, AuthTokenResponse{
		Token:     result.Token,
		ExpiresAt: result.ExpiresAt.Format(time.RFC3339),
		User:      buildAuthUser(result.User),
	})
}

// logout clears the session cookie. Tokens are stateless, so nothing is
// revoked server-side; the cookie is simply expired at the epoch.
func (h *AuthHandler) logout(c echo.Context) error {
	clearSessionCookie(c)
	return c.JSON(http.StatusOK, SuccessResponse{Message: "successfully logged out"})
}

// loginStatus reports whether the request carries a currently valid session
// token. It never errors; the answer is a bare boolean.
func (h *AuthHandler) loginStatus(c echo.Context) error {
	return c.JSON(http.StatusOK, h.auth.VerifyToken(tokenFromRequest(c)))
}

func (h *AuthHandler) me(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}
	return c.JSON(http.StatusOK, AuthUserResponse{User: buildAuthUser(user)})
}

func (h *AuthHandler) updateProfile(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req UpdateProfileRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	updated, err := h.auth.UpdateProfile(c.Request().Context(), user.ID, req.Name, req.Phone, req.Photo, req.Bio)
	if err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, AuthUserResponse{User: buildAuthUser(updated)})
}

func (h *AuthHandler) changePassword(c echo.Context) error {
	user, ok := CurrentUser(c)
	if !ok || user == nil {
		return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
	}

	var req ChangePasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ChangePassword(c.Request().Context(), user.ID, req.OldPassword, req.Password); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "password change successful"})
}

func (h *AuthHandler) forgotPassword(c echo.Context) error {
	var req ForgotPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.RequestPasswordReset(c.Request().Context(), req.Email); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "reset email sent"})
}

func (h *AuthHandler) resetPassword(c echo.Context) error {
	var req ResetPasswordRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
	}

	if err := h.auth.ConfirmPasswordReset(c.Request().Context(), c.Param("resetToken"), req.Password); err != nil {
		return writeAuthError(c, err)
	}
	return c.JSON(http.StatusOK, SuccessResponse{Message: "password reset successful, please login"})
}

func setSessionCookie(c echo.Context, token string, expiresAt time.Time) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    token,
		Path:     "/",
		Expires:  expiresAt,
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func clearSessionCookie(c echo.Context) {
	c.SetCookie(&http.Cookie{
		Name:     sessionCookieName,
		Value:    "",
		Path:     "/",
		Expires:  time.Unix(0, 0),
		HttpOnly: true,
		Secure:   true,
		SameSite: http.SameSiteNoneMode,
	})
}

func writeAuthError(c echo.Context, err error) error {
	switch {
	case errors.Is(err, service.ErrValidation),
		errors.Is(err, service.ErrEmailAlreadyUsed),
		errors.Is(err, service.ErrInvalidCredentials):
		return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
	case errors.Is(err, service.ErrInvalidToken):
		return c.JSON(http.StatusUnauthorized, util.Error(err.Error()))
	case errors.Is(err, service.ErrResetTokenInvalid),
		errors.Is(err, service.ErrUserNotFound):
		return c.JSON(http.StatusNotFound, util.Error(err.Error()))
	case errors.Is(err, service.ErrEmailDelivery):
		return c.JSON(http.StatusInternalServerError, util.Error(service.ErrEmailDelivery.Error()))
	default:
		c.Logger().Errorf("auth request failed: %v", err)
		return c.JSON(http.StatusInternalServerError, util.Error("something went wrong"))
	}
}
