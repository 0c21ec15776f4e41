package auth_module

import (
	"context"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/go-sql-driver/mysql"
	"github.com/google/uuid"
	"github.com/notesnap/notesnap/internal/stores/user"
	"github.com/notesnap/notesnap/pkg/utils"
	"github.com/robfig/cron/v3"
	"golang.org/x/crypto/bcrypt"
)

// MIN_PASSWORD_LENGTH must match the `min=6` binding on the sign-up request
const MIN_PASSWORD_LENGTH = 6

var (
	// ErrInvalidCredentials covers unknown emails and wrong passwords
	// without revealing which one it was
	ErrInvalidCredentials = errors.New("invalid login credentials")

	// ErrNotConfirmed means the account exists but the email was never confirmed
	ErrNotConfirmed = errors.New("email not confirmed")
)

// AuthService handles accounts and bearer sessions
type AuthService struct {
	store    user.Store
	tokenTTL time.Duration
	sweeper  *cron.Cron
}

var authService *AuthService

// Init creates the auth service, choosing MySQL or in-memory storage
// based on configuration, and starts the expired-token sweeper
func Init(cfg *utils.Config) error {
	store, err := newUserStore(cfg)
	if err != nil {
		return err
	}

	ttlHours := cfg.GetIntWithDefault("AUTH_TOKEN_TTL_HOURS", 168)

	service := &AuthService{
		store:    store,
		tokenTTL: time.Duration(ttlHours) * time.Hour,
		sweeper:  cron.New(),
	}

	// Sweep expired tokens hourly
	if _, err := service.sweeper.AddFunc("@hourly", service.sweepExpiredTokens); err != nil {
		return fmt.Errorf("failed to schedule token sweeper: %w", err)
	}
	service.sweeper.Start()

	authService = service
	return nil
}

// newUserStore builds the configured user store
func newUserStore(cfg *utils.Config) (user.Store, error) {
	dbConfig := mysql.Config{
		User:      cfg.Get("MYSQL_USER"),
		Passwd:    cfg.Get("MYSQL_PASSWORD"),
		Net:       "tcp",
		Addr:      fmt.Sprintf("%s:%s", cfg.Get("MYSQL_HOST"), cfg.GetWithDefault("MYSQL_PORT", "3306")),
		DBName:    cfg.Get("MYSQL_DATABASE"),
		ParseTime: true,
	}

	if dbConfig.DBName != "" {
		return user.NewMySqlStore(dbConfig.FormatDSN())
	}

	log.Println("[AUTH]: Warning, MYSQL_DATABASE not set, using in-memory store (accounts will not persist across restarts)")
	return user.NewInMemoryStore(), nil
}

/** ---- OPERATIONS ---- **/

// SignUp registers a new unconfirmed account. The confirmation token
// is logged server-side in place of a mailed link
func (s *AuthService) SignUp(ctx context.Context, email, password string) (*user.User, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	u, err := s.store.CreateUser(ctx, email, string(hash))
	if err != nil {
		return nil, err
	}

	log.Printf("[AUTH]: confirmation token for %s: %s", u.Email, u.ConfirmToken)
	return u, nil
}

// Confirm redeems an email confirmation token
func (s *AuthService) Confirm(ctx context.Context, token string) (*user.User, error) {
	return s.store.ConfirmUser(ctx, token)
}

// SignIn verifies credentials and issues a session token
func (s *AuthService) SignIn(ctx context.Context, email, password string) (*user.User, *user.Token, error) {
	u, err := s.store.GetUserByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, user.ErrUserNotFound) {
			return nil, nil, ErrInvalidCredentials
		}
		return nil, nil, err
	}

	if bcrypt.CompareHashAndPassword([]byte(u.PasswordHash), []byte(password)) != nil {
		return nil, nil, ErrInvalidCredentials
	}

	if !u.Confirmed() {
		return nil, nil, ErrNotConfirmed
	}

	token, err := s.store.CreateToken(ctx, u.ID, s.tokenTTL)
	if err != nil {
		return nil, nil, err
	}

	return u, token, nil
}

// SignOut revokes a session token
func (s *AuthService) SignOut(ctx context.Context, token uuid.UUID) error {
	return s.store.DeleteToken(ctx, token)
}

// CurrentUser resolves a session token to its account
func (s *AuthService) CurrentUser(ctx context.Context, token uuid.UUID) (*user.User, error) {
	return s.store.GetUserByToken(ctx, token)
}

// sweepExpiredTokens is the hourly cron job removing dead sessions
func (s *AuthService) sweepExpiredTokens() {
	removed, err := s.store.DeleteExpiredTokens(context.Background())
	if err != nil {
		log.Printf("[AUTH]: token sweep failed: %v", err)
		return
	}
	if removed > 0 {
		log.Printf("[AUTH]: swept %d expired tokens", removed)
	}
}

// GetService returns the active auth service (used by other modules'
// middleware)
func GetService() *AuthService {
	return authService
}
