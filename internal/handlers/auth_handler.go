package handlers

import (
	"net/http"

	"aicademy/internal/security"
	"aicademy/internal/service"

	"golang.org/x/oauth2"
)

// AuthHandler handles authentication-related HTTP requests
type AuthHandler struct {
	authService          *service.AuthService
	emailService         *service.EmailService
	googleOAuth          *oauth2.Config
	oauthRedirectBaseURL string
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(authService *service.AuthService, emailService *service.EmailService, googleOAuth *oauth2.Config, oauthRedirectBaseURL string) *AuthHandler {
	return &AuthHandler{
		authService:          authService,
		emailService:         emailService,
		googleOAuth:          googleOAuth,
		oauthRedirectBaseURL: oauthRedirectBaseURL,
	}
}

type registerRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
	Name     string `json:"name"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

// Register creates a new parent account and logs it in
func (h *AuthHandler) Register(w http.ResponseWriter, r *http.Request) {
	var req registerRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	parent, err := h.authService.Register(req.Email, req.Password, req.Name)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	// Auto-login after registration
	session, _, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		// Account exists but login failed, let the client retry explicitly
		respondJSON(w, http.StatusCreated, newParentView(parent))
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusCreated, newParentView(parent))
}

// Login authenticates a parent and sets the session cookie
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	session, parent, err := h.authService.Login(req.Email, req.Password)
	if err != nil {
		respondServiceError(w, err)
		return
	}

	http.SetCookie(w, security.CreateSessionCookie(r, "session_id", session.ID, session.ExpiresAt))
	respondJSON(w, http.StatusOK, newParentView(parent))
}

// Logout ends the current session
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	if cookie, err := r.Cookie("session_id"); err == nil {
		_ = h.authService.Logout(cookie.Value)
	}

	http.SetCookie(w, security.CreateDeleteCookie(r, "session_id"))
	respondJSON(w, http.StatusOK, map[string]string{"status": "logged out"})
}

// Me returns the authenticated parent's account
func (h *AuthHandler) Me(w http.ResponseWriter, r *http.Request) {
	parent := ParentFromContext(r.Context())
	if parent == nil {
		respondWithError(w, http.StatusUnauthorized, "Authentication required", "", nil)
		return
	}
	respondJSON(w, http.StatusOK, newParentView(parent))
}

type forgotPasswordRequest struct {
	Email string `json:"email"`
}

// ForgotPassword starts a password reset. The response is identical
// whether or not the email exists.
func (h *AuthHandler) ForgotPassword(w http.ResponseWriter, r *http.Request) {
	var req forgotPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	if err := h.authService.RequestPasswordReset(r.Context(), h.emailService, req.Email); err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to process reset request", "password reset request failed", err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{
		"status": "If an account exists for that email, a reset link has been sent",
	})
}

type resetPasswordRequest struct {
	Token       string `json:"token"`
	NewPassword string `json:"new_password"`
}

// ResetPassword consumes a reset token and sets a new password
func (h *AuthHandler) ResetPassword(w http.ResponseWriter, r *http.Request) {
	var req resetPasswordRequest
	if !decodeJSON(w, r, &req) {
		return
	}

	valid, err := h.authService.ValidatePasswordResetToken(req.Token)
	if err != nil {
		respondWithError(w, http.StatusInternalServerError, "Failed to validate reset token", "reset token validation failed", err)
		return
	}
	if !valid {
		respondWithError(w, http.StatusBadRequest, "Reset token is invalid or expired", "", nil)
		return
	}

	if err := h.authService.ResetPassword(req.Token, req.NewPassword); err != nil {
		respondServiceError(w, err)
		return
	}

	respondJSON(w, http.StatusOK, map[string]string{"status": "password updated"})
}
