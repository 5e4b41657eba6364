package auth

import "context"

// TokenPair carries the issued tokens; the refresh half travels in an
// HTTP-only cookie, never in the response body.
type TokenPair struct {
	AccessToken      string
	AccessExpiresAt  int64
	RefreshToken     string
	RefreshExpiresAt int64
}

type Service interface {
	Login(ctx context.Context, req LoginRequest) (LoginResponse, TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (LoginResponse, TokenPair, error)
	Logout(refreshToken string)
	ChangePassword(ctx context.Context, actorID int64, req ChangePasswordRequest) error
	Me(ctx context.Context, actorID int64) (UserPayload, error)
}
