package api

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/userhub/internal/api/shared"
	"github.com/phrazzld/userhub/internal/mocks"
	"github.com/stretchr/testify/require"
)

// newTestRouter mounts the handlers on the same paths the server uses,
// without the Access Gate.
func newTestRouter(accounts *mocks.MockAccountService, sessions *mocks.MockSessionService) http.Handler {
	ah := NewAccountHandler(accounts)
	sh := NewSessionHandler(sessions)

	r := chi.NewRouter()
	r.Post("/users", ah.Store)
	r.Post("/redefinirSenha", ah.ForgotPassword)
	r.Post("/reset-password/{token}", ah.ResetPassword)
	r.Post("/sessions", sh.Login)
	r.Get("/listarUsers", ah.Index)
	r.Put("/update/{id}", ah.Update)
	r.Delete("/user/{id}", ah.Delete)
	return r
}

func doRequest(t *testing.T, h http.Handler, method, path string, body interface{}) *httptest.ResponseRecorder {
	t.Helper()

	var buf bytes.Buffer
	if body != nil {
		switch b := body.(type) {
		case string:
			buf.WriteString(b)
		default:
			require.NoError(t, json.NewEncoder(&buf).Encode(b))
		}
	}

	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rr := httptest.NewRecorder()
	h.ServeHTTP(rr, req)
	return rr
}

func decodeError(t *testing.T, rr *httptest.ResponseRecorder) shared.ErrorResponse {
	t.Helper()
	var resp shared.ErrorResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp
}

func decodeMessage(t *testing.T, rr *httptest.ResponseRecorder) string {
	t.Helper()
	var resp shared.MessageResponse
	require.NoError(t, json.Unmarshal(rr.Body.Bytes(), &resp))
	return resp.Message
}
