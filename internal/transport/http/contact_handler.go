package http

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/service"
	"github.com/psmahesh/Pinvent_APP_BackEnd/internal/util"
)

// ContactRequest carries a contact-form submission.
type ContactRequest struct {
	Subject string `json:"subject" example:"Billing question"`
	Message string `json:"message" example:"I was charged twice for my plan."`
}

func RegisterContact(e *echo.Echo, auth *service.AuthService, contact *service.ContactService) {
	e.POST("/api/v1/contact", func(c echo.Context) error {
		user, ok := CurrentUser(c)
		if !ok || user == nil {
			return c.JSON(http.StatusUnauthorized, util.Error("authentication required"))
		}

		var req ContactRequest
		if err := c.Bind(&req); err != nil {
			return c.JSON(http.StatusBadRequest, util.Error("invalid request body"))
		}

		err := contact.Relay(c.Request().Context(), user.ID, req.Subject, req.Message)
		switch {
		case err == nil:
			return c.JSON(http.StatusOK, SuccessResponse{Message: "thank you for contacting us"})
		case errors.Is(err, service.ErrValidation):
			return c.JSON(http.StatusBadRequest, util.Error(err.Error()))
		case errors.Is(err, service.ErrUserNotFound):
			return c.JSON(http.StatusNotFound, util.Error(err.Error()))
		case errors.Is(err, service.ErrEmailDelivery):
			return c.JSON(http.StatusInternalServerError, util.Error(service.ErrEmailDelivery.Error()))
		default:
			c.Logger().Errorf("contact request failed: %v", err)
			return c.JSON(http.StatusInternalServerError, util.Error("something went wrong"))
		}
	}, RequireAuth(auth))
}
