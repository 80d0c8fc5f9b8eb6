package auth

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"encore.dev/beta/auth"
	"encore.dev/beta/errs"
)

func TestUserInfoVerifier_Verify(t *testing.T) {
	testCases := []struct {
		name              string
		status            int
		body              string
		expectedUID       auth.UID
		expectedUser      *UserData
		expectedErrorCode errs.ErrCode
	}{
		{
			name:         "valid_token",
			status:       http.StatusOK,
			body:         `{"sub":"user-1","email":"sookie@merlotte.example","username":"sookie"}`,
			expectedUID:  "user-1",
			expectedUser: &UserData{Email: "sookie@merlotte.example", Username: "sookie"},
		},
		{
			name:              "rejected_token",
			status:            http.StatusUnauthorized,
			body:              `{"error":"invalid_token"}`,
			expectedErrorCode: errs.Unauthenticated,
		},
		{
			name:              "provider_error_is_not_trusted",
			status:            http.StatusInternalServerError,
			expectedErrorCode: errs.Unauthenticated,
		},
		{
			name:              "missing_subject",
			status:            http.StatusOK,
			body:              `{"email":"sookie@merlotte.example"}`,
			expectedErrorCode: errs.Unauthenticated,
		},
		{
			name:              "malformed_body",
			status:            http.StatusOK,
			body:              `{`,
			expectedErrorCode: errs.Unauthenticated,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
				assert.Equal(t, http.MethodGet, r.Method)
				assert.Equal(t, "Bearer token-123", r.Header.Get("Authorization"))
				w.WriteHeader(tc.status)
				w.Write([]byte(tc.body))
			}))
			defer server.Close()

			verifier := newUserInfoVerifier(server.URL, server.Client())
			uid, user, err := verifier.Verify(context.Background(), "token-123")

			if tc.expectedErrorCode != errs.OK {
				require.Error(t, err)
				assert.Equal(t, tc.expectedErrorCode, errs.Code(err))
				assert.Empty(t, uid)
				assert.Nil(t, user)
				return
			}

			require.NoError(t, err)
			assert.Equal(t, tc.expectedUID, uid)
			assert.Equal(t, tc.expectedUser, user)
		})
	}
}

func TestUserInfoVerifier_Unreachable(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	url := server.URL
	server.Close()

	verifier := newUserInfoVerifier(url, http.DefaultClient)
	_, _, err := verifier.Verify(context.Background(), "token-123")

	assert.Equal(t, errs.Unavailable, errs.Code(err))
}

type stubVerifier struct {
	calls int
}

func (v *stubVerifier) Verify(ctx context.Context, token string) (auth.UID, *UserData, error) {
	v.calls++
	return "user-1", &UserData{Username: "sookie"}, nil
}

func TestAuthHandler(t *testing.T) {
	verifier := &stubVerifier{}
	service := &Service{verifier: verifier}

	_, _, err := service.AuthHandler(context.Background(), "")
	assert.Equal(t, errs.Unauthenticated, errs.Code(err))
	assert.Equal(t, 0, verifier.calls)

	uid, user, err := service.AuthHandler(context.Background(), "token-123")
	require.NoError(t, err)
	assert.Equal(t, auth.UID("user-1"), uid)
	assert.Equal(t, "sookie", user.Username)
	assert.Equal(t, 1, verifier.calls)
}
