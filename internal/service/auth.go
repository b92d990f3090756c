package service

import (
	"context"
	"errors"
	"html"
	"log/slog"
	"strings"

	"github.com/forgo/voyage/api/internal/database"
	"github.com/forgo/voyage/api/internal/model"
	"golang.org/x/crypto/bcrypt"
)

const (
	// bcrypt cost factor (10-14 recommended for production)
	bcryptCost = 12

	// Password constraints
	minPasswordLength = 8
	maxPasswordLength = 128
)

// UserRepository defines the interface for user storage
type UserRepository interface {
	Create(ctx context.Context, user *model.User) error
	GetByID(ctx context.Context, id string) (*model.User, error)
	GetByEmail(ctx context.Context, email string) (*model.User, error)
}

// TokenSigner issues signed access tokens for authenticated users.
type TokenSigner interface {
	Sign(userID, email string, name *string) (string, error)
}

// AuthService handles registration and login
type AuthService struct {
	userRepo UserRepository
	signer   TokenSigner
	notifier Notifier
}

// AuthServiceConfig holds configuration for the auth service
type AuthServiceConfig struct {
	UserRepo UserRepository
	Signer   TokenSigner
	Notifier Notifier
}

// NewAuthService creates a new auth service
func NewAuthService(cfg AuthServiceConfig) *AuthService {
	return &AuthService{
		userRepo: cfg.UserRepo,
		signer:   cfg.Signer,
		notifier: cfg.Notifier,
	}
}

// RegisterRequest represents a registration request
type RegisterRequest struct {
	Email    string
	Password string
	Name     string
}

// AuthResult represents a successful registration or login
type AuthResult struct {
	User  *model.User
	Token string
}

// Register creates a new user account with email/password
func (s *AuthService) Register(ctx context.Context, req RegisterRequest) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))
	if !isValidEmail(email) {
		return nil, ErrInvalidEmail
	}

	if err := validatePassword(req.Password); err != nil {
		return nil, err
	}

	existing, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, ErrEmailAlreadyExists
	}

	hash, err := hashPassword(req.Password)
	if err != nil {
		return nil, err
	}

	user := &model.User{
		Email: email,
		Hash:  &hash,
		Name:  stringPtr(strings.TrimSpace(req.Name)),
	}

	if err := s.userRepo.Create(ctx, user); err != nil {
		// A concurrent registration can slip past the pre-check; the store's
		// unique index is the authority.
		if errors.Is(err, database.ErrDuplicate) {
			return nil, ErrEmailAlreadyExists
		}
		return nil, err
	}

	token, err := s.signer.Sign(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	s.sendWelcomeEmail(user)

	return &AuthResult{User: user, Token: token}, nil
}

// LoginRequest represents a login request
type LoginRequest struct {
	Email    string
	Password string
}

// Login authenticates a user with email/password
func (s *AuthService) Login(ctx context.Context, req LoginRequest) (*AuthResult, error) {
	email := strings.TrimSpace(strings.ToLower(req.Email))

	user, err := s.userRepo.GetByEmail(ctx, email)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrInvalidCredentials
	}

	if user.Hash == nil || *user.Hash == "" {
		return nil, ErrInvalidCredentials
	}

	if !checkPassword(req.Password, *user.Hash) {
		return nil, ErrInvalidCredentials
	}

	token, err := s.signer.Sign(user.ID, user.Email, user.Name)
	if err != nil {
		return nil, err
	}

	return &AuthResult{User: user, Token: token}, nil
}

// GetUserByID retrieves a user by ID
func (s *AuthService) GetUserByID(ctx context.Context, userID string) (*model.User, error) {
	user, err := s.userRepo.GetByID(ctx, userID)
	if err != nil {
		return nil, err
	}
	if user == nil {
		return nil, ErrUserNotFound
	}
	return user, nil
}

// sendWelcomeEmail dispatches the welcome email without joining the request.
// Failures are logged and never surface to the caller.
func (s *AuthService) sendWelcomeEmail(user *model.User) {
	if s.notifier == nil {
		return
	}

	name := user.Email
	if user.Name != nil && *user.Name != "" {
		name = *user.Name
	}

	to := user.Email
	body := "<h1>Welcome to Voyage, " + html.EscapeString(name) + "!</h1>" +
		"<p>Your account is ready. Start planning your first trip.</p>"

	go func() {
		if err := s.notifier.Send(context.Background(), to, "Welcome to Voyage", body); err != nil {
			slog.Warn("failed to send welcome email", slog.String("error", err.Error()))
		}
	}()
}

// Helper functions

func hashPassword(password string) (string, error) {
	hash, err := bcrypt.GenerateFromPassword([]byte(password), bcryptCost)
	if err != nil {
		return "", err
	}
	return string(hash), nil
}

func checkPassword(password, hash string) bool {
	err := bcrypt.CompareHashAndPassword([]byte(hash), []byte(password))
	return err == nil
}

func validatePassword(password string) error {
	if password == "" {
		return ErrPasswordRequired
	}
	if len(password) < minPasswordLength {
		return ErrPasswordTooShort
	}
	if len(password) > maxPasswordLength {
		return ErrPasswordTooLong
	}
	return nil
}

func isValidEmail(email string) bool {
	// Basic email validation
	if email == "" {
		return false
	}
	if len(email) > 254 {
		return false
	}
	atIndex := strings.Index(email, "@")
	if atIndex < 1 {
		return false
	}
	dotIndex := strings.LastIndex(email, ".")
	if dotIndex < atIndex+2 {
		return false
	}
	if dotIndex >= len(email)-1 {
		return false
	}
	return true
}

func stringPtr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}
