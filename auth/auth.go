package auth

import (
	"context"
	"net/http"
	"time"

	"encore.dev/beta/auth"
	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

// UserData is what the identity provider tells us about the caller.
type UserData struct {
	Email    string `json:"email"`
	Username string `json:"username"`
}

type Verifier interface {
	Verify(ctx context.Context, token string) (auth.UID, *UserData, error)
}

//encore:service
type Service struct {
	verifier Verifier
}

func initService() (*Service, error) {
	rlog.Info("Initializing identity verifier", "identity_url", cfg.IdentityURL())
	client := &http.Client{Timeout: time.Duration(cfg.VerifyTimeout()) * time.Second}

	return &Service{
		verifier: newUserInfoVerifier(cfg.IdentityURL(), client),
	}, nil
}

// AuthHandler accepts a bearer token issued by the identity provider.
//
//encore:authhandler
func (s *Service) AuthHandler(ctx context.Context, token string) (auth.UID, *UserData, error) {
	if token == "" {
		return "", nil, &errs.Error{Code: errs.Unauthenticated, Message: "missing bearer token"}
	}

	uid, user, err := s.verifier.Verify(ctx, token)
	if err != nil {
		rlog.Warn("token verification failed", "error", err)
		return "", nil, err
	}
	return uid, user, nil
}
