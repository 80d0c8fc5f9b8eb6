package auth

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	"encore.dev/beta/auth"
	"encore.dev/beta/errs"
	"encore.dev/rlog"
)

type userInfo struct {
	Subject  string `json:"sub"`
	Email    string `json:"email"`
	Username string `json:"username"`
}

// userInfoVerifier asks the identity provider who a token belongs to.
type userInfoVerifier struct {
	url    string
	client *http.Client
}

func newUserInfoVerifier(url string, client *http.Client) *userInfoVerifier {
	return &userInfoVerifier{
		url:    url,
		client: client,
	}
}

func (v *userInfoVerifier) Verify(ctx context.Context, token string) (auth.UID, *UserData, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, v.url, nil)
	if err != nil {
		return "", nil, &errs.Error{Code: errs.Internal, Message: "failed to build userinfo request"}
	}
	req.Header.Set("Authorization", "Bearer "+token)
	req.Header.Set("Accept", "application/json")

	resp, err := v.client.Do(req)
	if err != nil {
		rlog.Error("identity provider unreachable", "error", err)
		return "", nil, &errs.Error{Code: errs.Unavailable, Message: "identity provider unavailable"}
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		io.Copy(io.Discard, resp.Body)
		return "", nil, &errs.Error{
			Code:    errs.Unauthenticated,
			Message: fmt.Sprintf("token rejected by identity provider (status %d)", resp.StatusCode),
		}
	}

	var info userInfo
	if err := json.NewDecoder(resp.Body).Decode(&info); err != nil {
		return "", nil, &errs.Error{Code: errs.Unauthenticated, Message: "unreadable userinfo response"}
	}
	if info.Subject == "" {
		return "", nil, &errs.Error{Code: errs.Unauthenticated, Message: "userinfo response has no subject"}
	}

	return auth.UID(info.Subject), &UserData{
		Email:    info.Email,
		Username: info.Username,
	}, nil
}
