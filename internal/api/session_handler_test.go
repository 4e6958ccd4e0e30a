package api

import (
	"encoding/json"
	"net/http"
	"testing"
	"time"

	"github.com/phrazzld/userhub/internal/mocks"
	"github.com/phrazzld/userhub/internal/service"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSessionHandler_Login(t *testing.T) {
	t.Run("valid credentials", func(t *testing.T) {
		acc := sampleAccount()
		expires := time.Date(2030, 1, 2, 3, 4, 5, 0, time.UTC)
		sessions := &mocks.MockSessionService{
			Session: &service.Session{Account: acc, Token: "tok", ExpiresAt: expires},
		}

		rr := doRequest(t, newTestRouter(nil, sessions), http.MethodPost, "/sessions",
			map[string]string{"email": acc.Email, "password": "secret1"})

		require.Equal(t, http.StatusOK, rr.Code)
		var resp SessionResponse
		require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
		assert.Equal(t, "tok", resp.Token)
		assert.Equal(t, "2030-01-02T03:04:05Z", resp.ExpiresAt)
		assert.Equal(t, acc.ID, resp.User.ID)
		assert.NotContains(t, rr.Body.String(), acc.PasswordHash)
	})

	t.Run("invalid credentials", func(t *testing.T) {
		sessions := &mocks.MockSessionService{Err: service.ErrInvalidCredentials}
		rr := doRequest(t, newTestRouter(nil, sessions), http.MethodPost, "/sessions",
			map[string]string{"email": "a@x.com", "password": "wrong"})

		require.Equal(t, http.StatusUnauthorized, rr.Code)
		assert.Equal(t, "Invalid email or password", decodeError(t, rr).Error)
	})

	t.Run("missing password", func(t *testing.T) {
		rr := doRequest(t, newTestRouter(nil, &mocks.MockSessionService{}), http.MethodPost, "/sessions",
			map[string]string{"email": "a@x.com"})
		assert.Equal(t, http.StatusBadRequest, rr.Code)
	})
}
