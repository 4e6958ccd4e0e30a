package api

import (
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/phrazzld/userhub/internal/api/shared"
	"github.com/phrazzld/userhub/internal/service"
	"github.com/phrazzld/userhub/internal/store"
)

// Success messages returned by acknowledgment-only endpoints.
const (
	msgResetEmailSent  = "Password reset email sent"
	msgPasswordUpdated = "Password updated successfully"
	msgAccountDeleted  = "Account deleted successfully"
)

// AccountHandler handles account management and password reset requests.
type AccountHandler struct {
	accountService service.AccountService
}

// NewAccountHandler creates a new AccountHandler.
func NewAccountHandler(accountService service.AccountService) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// Store handles POST /users.
func (h *AccountHandler) Store(w http.ResponseWriter, r *http.Request) {
	var req CreateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountService.Create(r.Context(), service.CreateAccountInput{
		Name:     req.Name,
		Email:    req.Email,
		Password: req.Password,
	})
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithJSON(w, r, http.StatusCreated, CreatedAccountResponse{
		ID:    account.ID,
		Name:  account.Name,
		Email: account.Email,
	})
}

// Index handles GET /listarUsers.
func (h *AccountHandler) Index(w http.ResponseWriter, r *http.Request) {
	accounts, err := h.accountService.List(r.Context())
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}
	shared.RespondWithJSON(w, r, http.StatusOK, accountsToResponse(accounts))
}

// Update handles PUT /update/{id}. An unknown id is reported as 400.
func (h *AccountHandler) Update(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, err)
		return
	}

	var req UpdateAccountRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	account, err := h.accountService.Update(r.Context(), id, service.UpdateAccountInput{
		Name:  req.Name,
		Email: req.Email,
	})
	if err != nil {
		HandleAPIError(w, r, err, WithNotFoundStatus(http.StatusBadRequest))
		return
	}

	shared.RespondWithJSON(w, r, http.StatusOK, accountToResponse(account))
}

// Delete handles DELETE /user/{id}. An id that is not a UUID cannot name
// an account, so it is reported as 404.
func (h *AccountHandler) Delete(w http.ResponseWriter, r *http.Request) {
	id, err := getPathUUID(r, "id")
	if err != nil {
		HandleAPIError(w, r, store.ErrAccountNotFound)
		return
	}

	if err := h.accountService.Delete(r.Context(), id); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, msgAccountDeleted)
}

// ForgotPassword handles POST /redefinirSenha and /forgot-password.
// An unregistered email is reported as 400.
func (h *AccountHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req ForgotPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.accountService.ForgotPassword(r.Context(), req.Email); err != nil {
		HandleAPIError(w, r, err, WithNotFoundStatus(http.StatusBadRequest))
		return
	}

	shared.RespondWithMessage(w, r, msgResetEmailSent)
}

// ResetPassword handles POST /reset-password/{token}.
func (h *AccountHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	token := chi.URLParam(r, "token")

	var req ResetPasswordRequest
	if !decodeAndValidate(w, r, &req) {
		return
	}

	if err := h.accountService.ResetPassword(r.Context(), token, req.NewPassword); err != nil {
		HandleAPIError(w, r, err)
		return
	}

	shared.RespondWithMessage(w, r, msgPasswordUpdated)
}
