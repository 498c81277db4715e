package ports

import "context"

// AuthResult is returned by a successful register or login.
type AuthResult struct {
	Username string `json:"username"`
	Token    string `json:"token,omitempty"`
}

type AuthService interface {
	Register(ctx context.Context, username, pin string) (AuthResult, error)
	Login(ctx context.Context, username, pin string) (AuthResult, error)
}
