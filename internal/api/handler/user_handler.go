package handler

import (
	"errors"
	"net/http"

	"github.com/labstack/echo/v4"

	"github.com/sharedcustody/custody-calendar/internal/api/metrics"
	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

const (
	actionRegister = "register"
	actionLogin    = "login"
)

type UserHandler struct {
	authService ports.AuthService
}

func NewUserHandler(authService ports.AuthService) *UserHandler {
	return &UserHandler{authService: authService}
}

// usersRequest is decoded loosely so non-string values can be told apart
// from missing ones.
type usersRequest struct {
	Action   any `json:"action"`
	Username any `json:"username"`
	Pin      any `json:"pin"`
}

type usersCommand struct {
	Action   string
	Username string `validate:"max=64"`
	Pin      string
}

type userPayload struct {
	Username string `json:"username"`
}

type usersResponse struct {
	Success bool        `json:"success"`
	User    userPayload `json:"user"`
	Token   string      `json:"token,omitempty"`
}

// Users registers a new account or logs in to an existing one.
//
// @Summary      Register or login
// @Tags         users
// @Accept       json
// @Produce      json
// @Param        body  body      usersRequest  true  "action (register|login), username and 4-digit pin"
// @Success      200   {object}  usersResponse
// @Success      201   {object}  usersResponse
// @Failure      400   {object}  map[string]string
// @Failure      401   {object}  map[string]string
// @Failure      409   {object}  map[string]string
// @Failure      429   {object}  map[string]string
// @Failure      500   {object}  map[string]string
// @Router       /api/users [post]
func (h *UserHandler) Users(c echo.Context) error {
	var req usersRequest
	if err := c.Bind(&req); err != nil {
		return c.JSON(http.StatusBadRequest, map[string]string{"error": "invalid payload"})
	}

	if blank(req.Action) || blank(req.Username) || blank(req.Pin) {
		return domain.Invalid("Action, username, and PIN are required.")
	}
	action, ok1 := req.Action.(string)
	username, ok2 := req.Username.(string)
	pin, ok3 := req.Pin.(string)
	if !ok1 || !ok2 || !ok3 {
		return domain.Invalid("Invalid input types.")
	}

	cmd := usersCommand{Action: action, Username: username, Pin: pin}
	if err := c.Validate(&cmd); err != nil {
		return err
	}

	ctx := c.Request().Context()
	switch cmd.Action {
	case actionRegister:
		res, err := h.authService.Register(ctx, cmd.Username, cmd.Pin)
		metrics.AuthAttemptsTotal.WithLabelValues(actionRegister, authResult(err)).Inc()
		if err != nil {
			return err
		}
		return c.JSON(http.StatusCreated, usersResponse{
			Success: true,
			User:    userPayload{Username: res.Username},
			Token:   res.Token,
		})
	case actionLogin:
		res, err := h.authService.Login(ctx, cmd.Username, cmd.Pin)
		metrics.AuthAttemptsTotal.WithLabelValues(actionLogin, authResult(err)).Inc()
		if err != nil {
			return err
		}
		return c.JSON(http.StatusOK, usersResponse{
			Success: true,
			User:    userPayload{Username: res.Username},
			Token:   res.Token,
		})
	default:
		return domain.Invalid("Invalid action specified.")
	}
}

// blank reports whether a decoded JSON value is absent or falsy.
func blank(v any) bool {
	switch t := v.(type) {
	case nil:
		return true
	case string:
		return t == ""
	case bool:
		return !t
	case float64:
		return t == 0
	default:
		return false
	}
}

func authResult(err error) string {
	switch {
	case err == nil:
		return "ok"
	case errors.Is(err, domain.ErrInvalidInput):
		return "invalid"
	case errors.Is(err, domain.ErrConflict):
		return "conflict"
	case errors.Is(err, domain.ErrUnauthorized):
		return "unauthorized"
	case errors.Is(err, domain.ErrTooManyAttempts):
		return "throttled"
	default:
		return "error"
	}
}
