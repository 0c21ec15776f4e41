package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/google/uuid"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var (
	// ErrUserNotFound is returned when no account matches the lookup
	ErrUserNotFound = errors.New("user not found")

	// ErrEmailTaken is returned when signing up with an existing email
	ErrEmailTaken = errors.New("email already registered")

	// ErrTokenInvalid is returned for unknown or expired session tokens
	ErrTokenInvalid = errors.New("invalid or expired token")
)

// Store interface defines account and session-token persistence
type Store interface {
	CreateUser(ctx context.Context, email, passwordHash string) (*User, error)
	GetUserByEmail(ctx context.Context, email string) (*User, error)
	ConfirmUser(ctx context.Context, confirmToken string) (*User, error)

	CreateToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*Token, error)
	GetUserByToken(ctx context.Context, token uuid.UUID) (*User, error)
	DeleteToken(ctx context.Context, token uuid.UUID) error
	DeleteExpiredTokens(ctx context.Context) (int64, error)
}

// MySqlStore handles account persistence using GORM
type MySqlStore struct {
	db *gorm.DB
}

// NewMySqlStore creates a new user store with GORM connection
func NewMySqlStore(databaseURL string) (*MySqlStore, error) {
	// TranslateError surfaces duplicate-email inserts as gorm.ErrDuplicatedKey
	db, err := gorm.Open(mysql.Open(databaseURL), &gorm.Config{TranslateError: true})
	if err != nil {
		return nil, fmt.Errorf("failed to open database: %w", err)
	}

	// Auto-migrate tables
	if err := db.AutoMigrate(&User{}, &Token{}); err != nil {
		return nil, fmt.Errorf("failed to migrate tables: %w", err)
	}

	return &MySqlStore{db: db}, nil
}

// CreateUser registers a new unconfirmed account
func (s *MySqlStore) CreateUser(ctx context.Context, email, passwordHash string) (*User, error) {
	email = normalizeEmail(email)

	user := &User{
		ID:           uuid.New(),
		Email:        email,
		PasswordHash: passwordHash,
		ConfirmToken: uuid.NewString(),
	}

	result := s.db.WithContext(ctx).Create(user)
	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrDuplicatedKey) {
			return nil, ErrEmailTaken
		}
		return nil, fmt.Errorf("failed to create user: %w", result.Error)
	}

	return user, nil
}

// GetUserByEmail retrieves an account by email
func (s *MySqlStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var user User
	result := s.db.WithContext(ctx).First(&user, "email = ?", normalizeEmail(email))

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to get user: %w", result.Error)
	}

	return &user, nil
}

// ConfirmUser marks the account holding the confirmation token as
// confirmed. Confirming twice is a no-op
func (s *MySqlStore) ConfirmUser(ctx context.Context, confirmToken string) (*User, error) {
	var user User
	result := s.db.WithContext(ctx).First(&user, "confirm_token = ?", confirmToken)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, fmt.Errorf("failed to find confirmation token: %w", result.Error)
	}

	if user.ConfirmedAt == nil {
		now := time.Now().UTC()
		if err := s.db.WithContext(ctx).Model(&user).Update("confirmed_at", now).Error; err != nil {
			return nil, fmt.Errorf("failed to confirm user: %w", err)
		}
		user.ConfirmedAt = &now
	}

	return &user, nil
}

// CreateToken issues a new session token for the user
func (s *MySqlStore) CreateToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*Token, error) {
	token := &Token{
		ID:        uuid.New(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}

	result := s.db.WithContext(ctx).Create(token)
	if result.Error != nil {
		return nil, fmt.Errorf("failed to create token: %w", result.Error)
	}

	return token, nil
}

// GetUserByToken resolves a live session token to its account
func (s *MySqlStore) GetUserByToken(ctx context.Context, token uuid.UUID) (*User, error) {
	var t Token
	result := s.db.WithContext(ctx).First(&t, "id = ?", token)

	if result.Error != nil {
		if errors.Is(result.Error, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to get token: %w", result.Error)
	}

	if t.Expired() {
		return nil, ErrTokenInvalid
	}

	var user User
	if err := s.db.WithContext(ctx).First(&user, "id = ?", t.UserID).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTokenInvalid
		}
		return nil, fmt.Errorf("failed to get token user: %w", err)
	}

	return &user, nil
}

// DeleteToken revokes a session token. Revoking an unknown token is
// not an error
func (s *MySqlStore) DeleteToken(ctx context.Context, token uuid.UUID) error {
	if err := s.db.WithContext(ctx).Where("id = ?", token).Delete(&Token{}).Error; err != nil {
		return fmt.Errorf("failed to delete token: %w", err)
	}
	return nil
}

// DeleteExpiredTokens removes all tokens past their expiry and
// returns how many were deleted
func (s *MySqlStore) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	result := s.db.WithContext(ctx).Where("expires_at < ?", time.Now().UTC()).Delete(&Token{})
	if result.Error != nil {
		return 0, fmt.Errorf("failed to delete expired tokens: %w", result.Error)
	}
	return result.RowsAffected, nil
}

// Close closes the database connection
func (s *MySqlStore) Close() error {
	sqlDB, err := s.db.DB()
	if err != nil {
		return fmt.Errorf("failed to get sql.DB from gorm.DB: %w", err)
	}
	return sqlDB.Close()
}

// normalizeEmail lowercases and trims an email address
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// InMemoryStore is an in-memory account store (for tests and local
// runs without a database)
type InMemoryStore struct {
	users  map[uuid.UUID]*User
	emails map[string]uuid.UUID
	tokens map[uuid.UUID]*Token
	mu     sync.RWMutex
}

// NewInMemoryStore creates a new in-memory account store
func NewInMemoryStore() *InMemoryStore {
	return &InMemoryStore{
		users:  make(map[uuid.UUID]*User),
		emails: make(map[string]uuid.UUID),
		tokens: make(map[uuid.UUID]*Token),
	}
}

// CreateUser registers a new unconfirmed account
func (s *InMemoryStore) CreateUser(ctx context.Context, email, passwordHash string) (*User, error) {
	email = normalizeEmail(email)

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.emails[email]; exists {
		return nil, ErrEmailTaken
	}

	user := &User{
		ID:           uuid.New(),
		CreatedAt:    time.Now().UTC(),
		Email:        email,
		PasswordHash: passwordHash,
		ConfirmToken: uuid.NewString(),
	}

	s.users[user.ID] = user
	s.emails[email] = user.ID

	copied := *user
	return &copied, nil
}

// GetUserByEmail retrieves an account by email
func (s *InMemoryStore) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	id, exists := s.emails[normalizeEmail(email)]
	if !exists {
		return nil, ErrUserNotFound
	}

	copied := *s.users[id]
	return &copied, nil
}

// ConfirmUser marks the account holding the confirmation token as confirmed
func (s *InMemoryStore) ConfirmUser(ctx context.Context, confirmToken string) (*User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	for _, u := range s.users {
		if u.ConfirmToken == confirmToken {
			if u.ConfirmedAt == nil {
				now := time.Now().UTC()
				u.ConfirmedAt = &now
			}
			copied := *u
			return &copied, nil
		}
	}

	return nil, ErrUserNotFound
}

// CreateToken issues a new session token for the user
func (s *InMemoryStore) CreateToken(ctx context.Context, userID uuid.UUID, ttl time.Duration) (*Token, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.users[userID]; !exists {
		return nil, ErrUserNotFound
	}

	token := &Token{
		ID:        uuid.New(),
		CreatedAt: time.Now().UTC(),
		UserID:    userID,
		ExpiresAt: time.Now().UTC().Add(ttl),
	}
	s.tokens[token.ID] = token

	copied := *token
	return &copied, nil
}

// GetUserByToken resolves a live session token to its account
func (s *InMemoryStore) GetUserByToken(ctx context.Context, token uuid.UUID) (*User, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	t, exists := s.tokens[token]
	if !exists || t.Expired() {
		return nil, ErrTokenInvalid
	}

	u, exists := s.users[t.UserID]
	if !exists {
		return nil, ErrTokenInvalid
	}

	copied := *u
	return &copied, nil
}

// DeleteToken revokes a session token
func (s *InMemoryStore) DeleteToken(ctx context.Context, token uuid.UUID) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	delete(s.tokens, token)
	return nil
}

// DeleteExpiredTokens removes all tokens past their expiry
func (s *InMemoryStore) DeleteExpiredTokens(ctx context.Context) (int64, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	var removed int64
	for id, t := range s.tokens {
		if t.Expired() {
			delete(s.tokens, id)
			removed++
		}
	}

	return removed, nil
}
