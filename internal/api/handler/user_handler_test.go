package handler

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/labstack/echo/v4"

	"github.com/sharedcustody/custody-calendar/internal/core/domain"
	"github.com/sharedcustody/custody-calendar/internal/core/ports"
)

// ---- Stubs ----

type stubAuthService struct {
	registerFn func(ctx context.Context, username, pin string) (ports.AuthResult, error)
	loginFn    func(ctx context.Context, username, pin string) (ports.AuthResult, error)
}

func (s *stubAuthService) Register(ctx context.Context, username, pin string) (ports.AuthResult, error) {
	return s.registerFn(ctx, username, pin)
}

func (s *stubAuthService) Login(ctx context.Context, username, pin string) (ports.AuthResult, error) {
	return s.loginFn(ctx, username, pin)
}

func noAuthCalls(t *testing.T) *stubAuthService {
	fail := func(context.Context, string, string) (ports.AuthResult, error) {
		t.Fatalf("should not be called")
		return ports.AuthResult{}, nil
	}
	return &stubAuthService{registerFn: fail, loginFn: fail}
}

func newEcho() *echo.Echo {
	e := echo.New()
	e.Validator = NewValidator()
	return e
}

func postUsers(e *echo.Echo, body string) (echo.Context, *httptest.ResponseRecorder) {
	req := httptest.NewRequest(http.MethodPost, "/api/users", strings.NewReader(body))
	req.Header.Set(echo.HeaderContentType, echo.MIMEApplicationJSON)
	rec := httptest.NewRecorder()
	return e.NewContext(req, rec), rec
}

func validationMessage(t *testing.T, err error) string {
	t.Helper()
	var ve *domain.ValidationError
	if !errors.As(err, &ve) {
		t.Fatalf("expected validation error, got %v", err)
	}
	return ve.Msg
}

// ---- Tests ----

func TestUserHandler_Register_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		registerFn: func(ctx context.Context, username, pin string) (ports.AuthResult, error) {
			if username != "Alice" || pin != "1234" {
				t.Fatalf("unexpected args: %s %s", username, pin)
			}
			return ports.AuthResult{Username: "alice", Token: "token123"}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := postUsers(e, `{"action":"register","username":"Alice","pin":"1234"}`)
	if err := handler.Users(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}

	if rec.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", rec.Code)
	}

	var resp map[string]any
	if err := json.Unmarshal(rec.Body.Bytes(), &resp); err != nil {
		t.Fatalf("invalid json: %v", err)
	}
	if resp["success"] != true || resp["token"] != "token123" {
		t.Fatalf("unexpected payload: %+v", resp)
	}
	user, ok := resp["user"].(map[string]any)
	if !ok || user["username"] != "alice" {
		t.Fatalf("unexpected user payload: %+v", resp["user"])
	}
}

func TestUserHandler_Login_Success(t *testing.T) {
	e := newEcho()
	stub := &stubAuthService{
		loginFn: func(ctx context.Context, username, pin string) (ports.AuthResult, error) {
			return ports.AuthResult{Username: "bob", Token: "t"}, nil
		},
	}
	handler := NewUserHandler(stub)

	c, rec := postUsers(e, `{"action":"login","username":"bob","pin":"0000"}`)
	if err := handler.Users(c); err != nil {
		t.Fatalf("handler error: %v", err)
	}
	if rec.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", rec.Code)
	}
}

func TestUserHandler_PropagatesServiceErrors(t *testing.T) {
	cases := map[string]error{
		"register": domain.ErrConflict,
		"login":    domain.ErrUnauthorized,
	}
	for action, want := range cases {
		t.Run(action, func(t *testing.T) {
			e := newEcho()
			fail := func(context.Context, string, string) (ports.AuthResult, error) {
				return ports.AuthResult{}, want
			}
			handler := NewUserHandler(&stubAuthService{registerFn: fail, loginFn: fail})

			c, _ := postUsers(e, `{"action":"`+action+`","username":"bob","pin":"1234"}`)
			if err := handler.Users(c); !errors.Is(err, want) {
				t.Fatalf("expected %v, got %v", want, err)
			}
		})
	}
}

func TestUserHandler_RejectsBadRequests(t *testing.T) {
	cases := []struct {
		name string
		body string
		want string
	}{
		{"missing action", `{"username":"bob","pin":"1234"}`, "Action, username, and PIN are required."},
		{"empty pin", `{"action":"login","username":"bob","pin":""}`, "Action, username, and PIN are required."},
		{"zero pin", `{"action":"login","username":"bob","pin":0}`, "Action, username, and PIN are required."},
		{"numeric pin", `{"action":"login","username":"bob","pin":1234}`, "Invalid input types."},
		{"object username", `{"action":"login","username":{"a":1},"pin":"1234"}`, "Invalid input types."},
		{"unknown action", `{"action":"delete","username":"bob","pin":"1234"}`, "Invalid action specified."},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			e := newEcho()
			handler := NewUserHandler(noAuthCalls(t))

			c, _ := postUsers(e, tc.body)
			err := handler.Users(c)
			if got := validationMessage(t, err); got != tc.want {
				t.Fatalf("expected %q, got %q", tc.want, got)
			}
		})
	}
}

func TestUserHandler_LongUsername(t *testing.T) {
	e := newEcho()
	handler := NewUserHandler(noAuthCalls(t))

	c, _ := postUsers(e, `{"action":"register","username":"`+strings.Repeat("x", 65)+`","pin":"1234"}`)
	if got := validationMessage(t, handler.Users(c)); got != "username must be at most 64" {
		t.Fatalf("unexpected message %q", got)
	}
}

func TestUserHandler_InvalidPayload(t *testing.T) {
	e := newEcho()
	handler := NewUserHandler(noAuthCalls(t))

	c, rec := postUsers(e, "not-json")
	_ = handler.Users(c)

	if rec.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", rec.Code)
	}
}
