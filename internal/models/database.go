package models

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// ErrDuplicateEmail is returned when an insert collides with an existing email
var ErrDuplicateEmail = errors.New("an account with this email already exists")

// Store provides access to the account database.
// Every operation opens a fresh connection, operates and closes it, so calls
// are self-contained and carry no shared state between them.
type Store struct {
	path string
}

// NewStore creates a new account store backed by the SQLite file at path
func NewStore(path string) *Store {
	return &Store{path: path}
}

// open opens a connection to the database file
func (s *Store) open() (*gorm.DB, error) {
	db, err := gorm.Open(sqlite.Open(s.path), &gorm.Config{
		TranslateError: true,
		Logger:         logger.Discard,
	})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}
	return db, nil
}

// close closes the underlying connection of an open handle
func (s *Store) close(db *gorm.DB) {
	if sqlDB, err := db.DB(); err == nil {
		sqlDB.Close()
	}
}

// Init ensures the users table exists. Safe to call repeatedly.
func (s *Store) Init() error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer s.close(db)

	if err := db.AutoMigrate(&Account{}); err != nil {
		return fmt.Errorf("failed to migrate users table: %w", err)
	}
	return nil
}

// CreateAccount inserts a new account. The email is stored lowercased and
// trimmed, the name trimmed, and the creation timestamp set to current UTC.
// Returns ErrDuplicateEmail if the email is already registered.
func (s *Store) CreateAccount(email, name, salt, passwordHash string) error {
	db, err := s.open()
	if err != nil {
		return err
	}
	defer s.close(db)

	account := Account{
		Email:        normalizeEmail(email),
		Name:         strings.TrimSpace(name),
		Salt:         salt,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now().UTC(),
	}

	if err := db.Create(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrDuplicateEmail
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetAccountByEmail looks up an account by its normalized email.
// Absence is not an error: the account is nil when no row matches.
func (s *Store) GetAccountByEmail(email string) (*Account, error) {
	db, err := s.open()
	if err != nil {
		return nil, err
	}
	defer s.close(db)

	var account Account
	err = db.Where("email = ?", normalizeEmail(email)).First(&account).Error
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("failed to look up account: %w", err)
	}
	return &account, nil
}

// normalizeEmail lowercases and trims an email for storage and comparison
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}
