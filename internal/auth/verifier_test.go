package auth

import (
	"path/filepath"
	"testing"

	"github.com/jmorel/goflick/internal/models"
	"github.com/jmorel/goflick/internal/utils"
)

func newTestVerifier(t *testing.T) *Verifier {
	t.Helper()
	store := models.NewStore(filepath.Join(t.TempDir(), "test.db"))
	if err := store.Init(); err != nil {
		t.Fatalf("Failed to initialize store: %v", err)
	}
	return NewVerifier(store, utils.NewLogger("error"))
}

func TestIsValidEmail(t *testing.T) {
	valid := []string{
		"a@b.com",
		"user.name@example.co.uk",
		"x+y@sub.domain.org",
	}
	for _, email := range valid {
		if !IsValidEmail(email) {
			t.Errorf("Expected '%s' to be valid", email)
		}
	}

	invalid := []string{
		"",
		"plainaddress",
		"no-at-sign.com",
		"missing@dot",
		"spaces in@mail.com",
		"@example.com",
		"user@",
	}
	for _, email := range invalid {
		if IsValidEmail(email) {
			t.Errorf("Expected '%s' to be invalid", email)
		}
	}
}

func TestSignupValidationOrder(t *testing.T) {
	v := newTestVerifier(t)

	tests := []struct {
		name     string
		email    string
		userName string
		password string
		confirm  string
		message  string
	}{
		{"invalid email", "not-an-email", "Alice", "secret1", "secret1", "Please enter a valid email."},
		{"empty name", "a@b.com", "   ", "secret1", "secret1", "Name cannot be empty."},
		{"weak password", "a@b.com", "Alice", "12345", "12345", "Password must be at least 6 characters."},
		{"password mismatch", "a@b.com", "Alice", "secret1", "secret2", "Passwords do not match."},
	}

	for _, tt := range tests {
		result := v.VerifySignup(tt.email, tt.userName, tt.password, tt.confirm)
		if result.OK {
			t.Errorf("%s: expected failure", tt.name)
		}
		if result.Message != tt.message {
			t.Errorf("%s: expected message '%s', got '%s'", tt.name, tt.message, result.Message)
		}
	}
}

func TestSignupPasswordBoundary(t *testing.T) {
	v := newTestVerifier(t)

	// Length 5 fails
	result := v.VerifySignup("short@example.com", "Shorty", "12345", "12345")
	if result.OK {
		t.Error("Expected 5-character password to be rejected")
	}

	// Length 6 succeeds
	result = v.VerifySignup("short@example.com", "Shorty", "123456", "123456")
	if !result.OK {
		t.Errorf("Expected 6-character password to be accepted, got '%s'", result.Message)
	}
	if result.Identity == nil || result.Identity.Email != "short@example.com" {
		t.Error("Expected identity echoing the supplied email")
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	v := newTestVerifier(t)

	result := v.VerifySignup("A@B.com", "Alice", "secret1", "secret1")
	if !result.OK {
		t.Fatalf("First signup failed: %s", result.Message)
	}

	// Case and whitespace variants hit the same account
	result = v.VerifySignup("a@b.com ", "Alice Again", "secret2", "secret2")
	if result.OK {
		t.Error("Expected duplicate signup to fail")
	}
	if result.Message != "An account with this email already exists." {
		t.Errorf("Unexpected message: '%s'", result.Message)
	}
}

func TestLogin(t *testing.T) {
	v := newTestVerifier(t)

	result := v.VerifySignup("carol@example.com", "Carol", "hunter2x", "hunter2x")
	if !result.OK {
		t.Fatalf("Signup failed: %s", result.Message)
	}

	// Correct password
	result = v.VerifyLogin("carol@example.com", "hunter2x")
	if !result.OK {
		t.Fatalf("Login failed: %s", result.Message)
	}
	if result.Identity == nil {
		t.Fatal("Expected identity on successful login")
	}
	if result.Identity.ID == 0 {
		t.Error("Expected stored id on login")
	}
	if result.Identity.Email != "carol@example.com" || result.Identity.Name != "Carol" {
		t.Errorf("Identity mismatch: %+v", result.Identity)
	}

	// Wrong password
	result = v.VerifyLogin("carol@example.com", "wrongpass")
	if result.OK {
		t.Error("Expected wrong password to fail")
	}
	if result.Message != "Incorrect password." {
		t.Errorf("Unexpected message: '%s'", result.Message)
	}

	// Unknown account
	result = v.VerifyLogin("nobody@example.com", "whatever")
	if result.OK {
		t.Error("Expected login for unknown email to fail")
	}
	if result.Message != "No account found with that email." {
		t.Errorf("Unexpected message: '%s'", result.Message)
	}
}

func TestDistinctSaltsForSamePassword(t *testing.T) {
	v := newTestVerifier(t)

	if result := v.VerifySignup("one@example.com", "One", "samepass", "samepass"); !result.OK {
		t.Fatalf("Signup failed: %s", result.Message)
	}
	if result := v.VerifySignup("two@example.com", "Two", "samepass", "samepass"); !result.OK {
		t.Fatalf("Signup failed: %s", result.Message)
	}

	store := v.store
	first, err := store.GetAccountByEmail("one@example.com")
	if err != nil || first == nil {
		t.Fatalf("Lookup failed: %v", err)
	}
	second, err := store.GetAccountByEmail("two@example.com")
	if err != nil || second == nil {
		t.Fatalf("Lookup failed: %v", err)
	}

	if first.Salt == second.Salt {
		t.Error("Expected distinct salts per account")
	}
	if first.PasswordHash == second.PasswordHash {
		t.Error("Expected distinct hashes for identical passwords")
	}
}

func TestHashPasswordDeterministic(t *testing.T) {
	if hashPassword("password", "salt") != hashPassword("password", "salt") {
		t.Error("Expected identical input to hash identically")
	}
	if hashPassword("password", "salt1") == hashPassword("password", "salt2") {
		t.Error("Expected different salts to change the hash")
	}
	if len(hashPassword("password", "salt")) != 64 {
		t.Error("Expected hex-encoded SHA-256 digest")
	}
}
