package ports

import "context"

// LoginResult is returned on a successful login.
// ExpiresIn is the token lifetime in milliseconds.
type LoginResult struct {
	Token     string
	Username  string
	Role      string
	ExpiresIn int64
}

type AuthService interface {
	Login(ctx context.Context, username, password string) (*LoginResult, error)
}
