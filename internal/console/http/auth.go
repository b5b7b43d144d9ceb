package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/dukaworks/console/internal/console/session"
	"github.com/dukaworks/console/pkg/apiclient"
	"github.com/dukaworks/console/pkg/httpx"
)

var validate = validator.New(validator.WithRequiredStructEnabled())

// AuthHandler proxies credential exchange to the marketplace backend and
// feeds the result into the session manager.
type AuthHandler struct {
	Manager *session.Manager
	API     *apiclient.Client
	Logger  *slog.Logger
}

type loginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required"`
	OTPCode  string `json:"otp_code" validate:"omitempty,numeric,len=6"`
}

// HandleLogin godoc
//
//	@Summary		Operator Login
//	@Description	Exchanges credentials with the marketplace backend and establishes
//	@Description	the local session. Accounts with a second factor enabled answer 409
//	@Description	until the request is repeated with otp_code.
//	@Tags			Auth
//	@Accept			json
//	@Produce		json
//	@Param			request	body		loginRequest	true	"credentials"
//	@Success		200		{object}	sessionResponse
//	@Failure		400		{object}	apiclient.APIError	"malformed or invalid request"
//	@Failure		401		{object}	apiclient.APIError	"invalid credentials"
//	@Failure		409		{object}	apiclient.OTPRequiredError
//	@Router			/v1/auth/login [post].
func (h *AuthHandler) HandleLogin(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		apiclient.NewAPIError(http.StatusBadRequest, apiclient.ErrorCodeInvalidRequest, "malformed request body").WriteError(w)
		return
	}
	if err := validate.Struct(req); err != nil {
		apiclient.NewAPIError(http.StatusBadRequest, apiclient.ErrorCodeInvalidRequest, validationMessage(err)).WriteError(w)
		return
	}

	resp, err := h.API.Login(r.Context(), apiclient.LoginRequest{
		Email:    req.Email,
		Password: req.Password,
		OTPCode:  req.OTPCode,
	})
	if err != nil {
		writeBackendError(w, err)
		return
	}

	if err := h.Manager.Login(r.Context(), session.LoginPayload{
		Token:        resp.Token,
		RefreshToken: resp.RefreshToken,
		Roles:        resp.Roles,
		Permissions:  resp.Permissions,
		User:         resp.User,
	}); err != nil {
		h.Logger.Error("failed to establish session", slog.Any("err", err))
		apiclient.ErrServerError.WriteError(w)
		return
	}

	httpx.WriteJSON(w, http.StatusOK, sessionView(h.Manager))
}

// HandleLogout godoc
//
//	@Summary		Operator Logout
//	@Description	Revokes the backend session on a best-effort basis and clears the
//	@Description	local session unconditionally. Always succeeds.
//	@Tags			Auth
//	@Success		204
//	@Router			/v1/auth/logout [post].
func (h *AuthHandler) HandleLogout(w http.ResponseWriter, r *http.Request) {
	h.Manager.Logout(r.Context())
	w.WriteHeader(http.StatusNoContent)
}

// writeBackendError translates a backend failure into the console's own
// response, preserving the error envelope.
func writeBackendError(w http.ResponseWriter, err error) {
	var otpErr *apiclient.OTPRequiredError
	if errors.As(err, &otpErr) {
		otpErr.WriteError(w)
		return
	}
	var apiErr *apiclient.APIError
	if errors.As(err, &apiErr) {
		apiErr.WriteError(w)
		return
	}
	apiclient.NewAPIError(
		http.StatusBadGateway,
		apiclient.ErrorCodeServerError,
		"marketplace backend unreachable",
	).WriteError(w)
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) && len(verrs) > 0 {
		first := verrs[0]
		return "invalid field: " + first.Field()
	}
	return "invalid request"
}
