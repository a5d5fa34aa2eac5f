package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/jmorel/goflick/internal/auth"
	"github.com/sirupsen/logrus"
)

// SessionTokenHeader carries the session token on authenticated requests
const SessionTokenHeader = "X-Session-Token"

// AuthHandler handles signup, login and logout requests
type AuthHandler struct {
	verifier *auth.Verifier
	sessions *auth.SessionManager
	logger   *logrus.Logger
}

// NewAuthHandler creates a new auth handler
func NewAuthHandler(verifier *auth.Verifier, sessions *auth.SessionManager, logger *logrus.Logger) *AuthHandler {
	return &AuthHandler{
		verifier: verifier,
		sessions: sessions,
		logger:   logger,
	}
}

type signupRequest struct {
	Email           string `json:"email"`
	Name            string `json:"name"`
	Password        string `json:"password"`
	ConfirmPassword string `json:"confirm_password"`
}

type loginRequest struct {
	Email    string `json:"email"`
	Password string `json:"password"`
}

type authResponse struct {
	OK       bool           `json:"ok"`
	Message  string         `json:"message,omitempty"`
	Identity *auth.Identity `json:"identity,omitempty"`
	Token    string         `json:"token,omitempty"`
}

// Signup handles account creation
func (h *AuthHandler) Signup(w http.ResponseWriter, r *http.Request) {
	var req signupRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.verifier.VerifySignup(req.Email, req.Name, req.Password, req.ConfirmPassword)
	status := http.StatusOK
	if !result.OK {
		status = http.StatusBadRequest
	}

	writeJSON(w, status, authResponse{
		OK:       result.OK,
		Message:  result.Message,
		Identity: result.Identity,
	})
}

// Login handles login and issues a session on success
func (h *AuthHandler) Login(w http.ResponseWriter, r *http.Request) {
	var req loginRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		http.Error(w, "Invalid request body", http.StatusBadRequest)
		return
	}

	result := h.verifier.VerifyLogin(req.Email, req.Password)
	if !result.OK {
		writeJSON(w, http.StatusUnauthorized, authResponse{Message: result.Message})
		return
	}

	session, err := h.sessions.Create(*result.Identity)
	if err != nil {
		h.logger.WithError(err).Error("Failed to create session")
		http.Error(w, "Internal server error", http.StatusInternalServerError)
		return
	}

	h.logger.WithField("email", result.Identity.Email).Info("User logged in")

	writeJSON(w, http.StatusOK, authResponse{
		OK:       true,
		Identity: result.Identity,
		Token:    session.Token,
	})
}

// Logout clears the session for the supplied token
func (h *AuthHandler) Logout(w http.ResponseWriter, r *http.Request) {
	token := r.Header.Get(SessionTokenHeader)
	if token != "" {
		h.sessions.Delete(token)
	}
	writeJSON(w, http.StatusOK, authResponse{OK: true})
}

// writeJSON writes a JSON response with the given status code
func writeJSON(w http.ResponseWriter, status int, body interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(body)
}
