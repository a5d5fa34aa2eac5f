package auth

import (
	"crypto/rand"
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"regexp"
	"strings"

	"github.com/jmorel/goflick/internal/models"
	"github.com/sirupsen/logrus"
)

var emailRe = regexp.MustCompile(`^[^@\s]+@[^@\s]+\.[^@\s]+$`)

// Identity is the verified identity returned on a successful signup or login
type Identity struct {
	ID    uint   `json:"id"`
	Email string `json:"email"`
	Name  string `json:"name"`
}

// Result is the outcome of a signup or login attempt. Validation failures are
// expected outcomes carried in Message, not errors.
type Result struct {
	OK       bool
	Message  string
	Identity *Identity
}

// Verifier enforces signup and login rules on top of the account store
type Verifier struct {
	store  *models.Store
	logger *logrus.Logger
}

// NewVerifier creates a new credential verifier
func NewVerifier(store *models.Store, logger *logrus.Logger) *Verifier {
	return &Verifier{
		store:  store,
		logger: logger,
	}
}

// IsValidEmail reports whether the string looks like an email address
func IsValidEmail(email string) bool {
	return emailRe.MatchString(email)
}

// makeSalt generates a fresh random salt, hex encoded
func makeSalt() (string, error) {
	buf := make([]byte, 16)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate salt: %w", err)
	}
	return hex.EncodeToString(buf), nil
}

// hashPassword computes the salted password hash, hex encoded.
// Single-pass salted SHA-256; a production credential store would use a
// deliberately slow KDF instead.
func hashPassword(password, salt string) string {
	sum := sha256.Sum256([]byte(salt + password))
	return hex.EncodeToString(sum[:])
}

// VerifySignup validates the signup request and persists the account
func (v *Verifier) VerifySignup(email, name, password, confirmPassword string) Result {
	if !IsValidEmail(email) {
		return Result{Message: "Please enter a valid email."}
	}

	if strings.TrimSpace(name) == "" {
		return Result{Message: "Name cannot be empty."}
	}

	if len(password) < 6 {
		return Result{Message: "Password must be at least 6 characters."}
	}

	if password != confirmPassword {
		return Result{Message: "Passwords do not match."}
	}

	existing, err := v.store.GetAccountByEmail(email)
	if err != nil {
		v.logger.WithError(err).Error("Failed to check for existing account")
		return Result{Message: fmt.Sprintf("Signup failed: %v", err)}
	}
	if existing != nil {
		return Result{Message: "An account with this email already exists."}
	}

	salt, err := makeSalt()
	if err != nil {
		v.logger.WithError(err).Error("Failed to generate salt")
		return Result{Message: fmt.Sprintf("Signup failed: %v", err)}
	}

	if err := v.store.CreateAccount(email, name, salt, hashPassword(password, salt)); err != nil {
		v.logger.WithError(err).Error("Failed to create account")
		return Result{Message: fmt.Sprintf("Signup failed: %v", err)}
	}

	v.logger.WithField("email", email).Info("Account created")

	// The stored id is not needed at signup; the identity echoes the input
	return Result{
		OK:       true,
		Message:  "Account created successfully. You can now log in.",
		Identity: &Identity{Email: email, Name: name},
	}
}

// VerifyLogin validates the login request against the stored credentials
func (v *Verifier) VerifyLogin(email, password string) Result {
	account, err := v.store.GetAccountByEmail(email)
	if err != nil {
		v.logger.WithError(err).Error("Failed to look up account")
		return Result{Message: fmt.Sprintf("Login failed: %v", err)}
	}
	if account == nil {
		return Result{Message: "No account found with that email."}
	}

	if hashPassword(password, account.Salt) != account.PasswordHash {
		return Result{Message: "Incorrect password."}
	}

	return Result{
		OK: true,
		Identity: &Identity{
			ID:    account.ID,
			Email: account.Email,
			Name:  account.Name,
		},
	}
}
