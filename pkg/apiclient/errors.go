package apiclient

import (
	"encoding/json"
	"fmt"
	"net/http"

	"github.com/dukaworks/console/pkg/httpx"
)

// Backend error codes the console reacts to by name.
const (
	ErrorCodeInvalidRequest     = "invalid_request"
	ErrorCodeInvalidCredentials = "invalid_credentials"
	ErrorCodeInvalidToken       = "invalid_token"
	ErrorCodeOTPRequired        = "otp_required"
	ErrorCodeAccessDenied       = "access_denied"
	ErrorCodeServerError        = "server_error"
)

// APIError is the backend's JSON error envelope. It implements error and
// is shared by the client (representing failures) and the mock backend
// (writing responses).
type APIError struct {
	// StatusCode is the HTTP status code for this error.
	StatusCode int `json:"-"`

	// Code is the machine-readable error code.
	Code string `json:"error"`

	// Description is a human-readable description.
	Description string `json:"error_description"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("%s: %s", e.Code, e.Description)
}

// WriteError writes the error as a JSON HTTP response.
func (e *APIError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, e.StatusCode, map[string]string{
		"error":             e.Code,
		"error_description": e.Description,
	})
}

var (
	// ErrInvalidCredentials is returned for a bad email/password pair.
	ErrInvalidCredentials = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidCredentials,
		Description: "invalid credentials",
	}

	// ErrInvalidToken is returned when the bearer credential is missing,
	// expired or revoked.
	ErrInvalidToken = &APIError{
		StatusCode:  http.StatusUnauthorized,
		Code:        ErrorCodeInvalidToken,
		Description: "the access token is missing, invalid, expired or revoked",
	}

	// ErrAccessDenied is returned when the bearer lacks the permission an
	// endpoint demands.
	ErrAccessDenied = &APIError{
		StatusCode:  http.StatusForbidden,
		Code:        ErrorCodeAccessDenied,
		Description: "access denied",
	}

	// ErrServerError is the generic backend failure.
	ErrServerError = &APIError{
		StatusCode:  http.StatusInternalServerError,
		Code:        ErrorCodeServerError,
		Description: "internal server error",
	}
)

// NewAPIError builds a custom APIError.
func NewAPIError(statusCode int, code, description string) *APIError {
	return &APIError{StatusCode: statusCode, Code: code, Description: description}
}

// OTPRequiredError signals that the account has TOTP enabled and the
// login must be repeated with a code. Returned with 409 Conflict: the
// credentials were valid but the account state demands a second factor.
type OTPRequiredError struct {
	Methods []string `json:"otp_methods"`
}

func (e *OTPRequiredError) Error() string {
	return fmt.Sprintf("one-time code required: available methods=%v", e.Methods)
}

// WriteError writes the OTP challenge as a 409 Conflict.
func (e *OTPRequiredError) WriteError(w http.ResponseWriter) {
	httpx.WriteJSON(w, http.StatusConflict, map[string]any{
		"error":             ErrorCodeOTPRequired,
		"error_description": "a one-time code is required to complete this login",
		"otp_methods":       e.Methods,
	})
}

// parseErrorResponse turns a non-2xx response body into a typed error.
func parseErrorResponse(resp *http.Response, body []byte) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}

	if resp.StatusCode == http.StatusConflict {
		var otpResp struct {
			Error   string   `json:"error"`
			Methods []string `json:"otp_methods"`
		}
		if err := json.Unmarshal(body, &otpResp); err == nil && otpResp.Error == ErrorCodeOTPRequired {
			return &OTPRequiredError{Methods: otpResp.Methods}
		}
	}

	var errResp struct {
		Error            string `json:"error"`
		ErrorDescription string `json:"error_description"`
	}
	if err := json.Unmarshal(body, &errResp); err == nil && errResp.Error != "" {
		return &APIError{
			StatusCode:  resp.StatusCode,
			Code:        errResp.Error,
			Description: errResp.ErrorDescription,
		}
	}

	return &APIError{
		StatusCode:  resp.StatusCode,
		Code:        ErrorCodeServerError,
		Description: fmt.Sprintf("HTTP %d: %s", resp.StatusCode, http.StatusText(resp.StatusCode)),
	}
}
