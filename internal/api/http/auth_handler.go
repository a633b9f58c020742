package http

import (
	"net/http"

	"harambee-backend/internal/service"
)

type AuthHandler struct {
	auth      service.AuthService
	otp       service.OTPService
	echoCodes bool
}

// NewAuthHandler wires registration, login and phone verification. When
// echoCodes is set, issued OTP codes are returned in the response body so
// development setups work without a messaging provider.
func NewAuthHandler(auth service.AuthService, otp service.OTPService, echoCodes bool) *AuthHandler {
	return &AuthHandler{auth: auth, otp: otp, echoCodes: echoCodes}
}

type requestOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
}

// POST /auth/otp/request
func (h *AuthHandler) RequestOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req requestOTPRequest
	if err := decodeJSON(r, &req); err != nil || req.PhoneNumber == "" {
		respondError(w, http.StatusBadRequest, "phone_number is required")
		return
	}

	otp, code, err := h.otp.Issue(r.Context(), req.PhoneNumber)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	resp := map[string]interface{}{
		"expires_on": otp.ExpiresOn,
	}
	if h.echoCodes {
		resp["code"] = code
	}
	respondJSON(w, http.StatusOK, resp)
}

type verifyOTPRequest struct {
	PhoneNumber string `json:"phone_number"`
	Code        string `json:"code"`
}

// POST /auth/otp/verify
func (h *AuthHandler) VerifyOTPHandler(w http.ResponseWriter, r *http.Request) {
	var req verifyOTPRequest
	if err := decodeJSON(r, &req); err != nil || req.PhoneNumber == "" || req.Code == "" {
		respondError(w, http.StatusBadRequest, "phone_number and code are required")
		return
	}

	ok, err := h.otp.Verify(r.Context(), req.PhoneNumber, req.Code)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	if !ok {
		respondError(w, http.StatusUnauthorized, "invalid or expired code")
		return
	}
	respondJSON(w, http.StatusOK, map[string]bool{"verified": true})
}

type registerRequest struct {
	PhoneNumber string `json:"phone_number"`
	Name        string `json:"name"`
	Email       string `json:"email"`
	Password    string `json:"password"`
}

// POST /auth/register
func (h *AuthHandler) RegisterHandler(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	user, access, refresh, err := h.auth.Register(r.Context(), req.PhoneNumber, req.Name, req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusCreated, map[string]interface{}{
		"user":          user,
		"access_token":  access,
		"refresh_token": refresh,
	})
}

type loginRequest struct {
	PhoneNumber string `json:"phone_number"`
	Password    string `json:"password"`
}

// POST /auth/login
func (h *AuthHandler) LoginHandler(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := decodeJSON(r, &req); err != nil {
		respondError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	access, refresh, err := h.auth.Login(r.Context(), req.PhoneNumber, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	})
}

type refreshRequest struct {
	RefreshToken string `json:"refresh_token"`
}

// POST /auth/refresh
func (h *AuthHandler) RefreshHandler(w http.ResponseWriter, r *http.Request) {
	var req refreshRequest
	if err := decodeJSON(r, &req); err != nil || req.RefreshToken == "" {
		respondError(w, http.StatusBadRequest, "refresh_token is required")
		return
	}

	access, refresh, err := h.auth.Refresh(r.Context(), req.RefreshToken)
	if err != nil {
		respondServiceError(w, err)
		return
	}
	respondJSON(w, http.StatusOK, map[string]string{
		"access_token":  access,
		"refresh_token": refresh,
	})
}
