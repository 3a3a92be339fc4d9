package service

import (
	"context"
	"crypto/subtle"
	"errors"
	"fmt"
	"time"

	"github.com/golang-jwt/jwt/v4"
	"github.com/sirupsen/logrus"
	"golang.org/x/crypto/bcrypt"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
)

// AuthService handles registration and login. Administrator accounts
// self-register behind a shared secret, mirroring the deployment's
// provisioning flow.
type AuthService struct {
	users       repository.UserRepository
	jwtSecret   []byte
	jwtExpiry   time.Duration
	adminSecret string
}

func NewAuthService(users repository.UserRepository, jwtSecretKey string, jwtExpiryHours int, adminSecret string) (*AuthService, error) {
	if users == nil {
		panic("UserRepository cannot be nil for AuthService")
	}
	if jwtSecretKey == "" {
		return nil, fmt.Errorf("JWT secret key cannot be empty")
	}
	if jwtExpiryHours <= 0 {
		jwtExpiryHours = 24
	}
	return &AuthService{
		users:       users,
		jwtSecret:   []byte(jwtSecretKey),
		jwtExpiry:   time.Duration(jwtExpiryHours) * time.Hour,
		adminSecret: adminSecret,
	}, nil
}

// Register creates a regular account.
func (s *AuthService) Register(ctx context.Context, username, password string) (*domain.User, error) {
	return s.register(ctx, username, password, false)
}

// RegisterAdmin creates an administrator account when the supplied
// secret matches the configured one.
func (s *AuthService) RegisterAdmin(ctx context.Context, username, password, secret string) (*domain.User, error) {
	if s.adminSecret == "" || subtle.ConstantTimeCompare([]byte(secret), []byte(s.adminSecret)) != 1 {
		logrus.WithField("username", username).Warn("Admin registration refused: invalid admin secret")
		return nil, ErrForbidden
	}
	return s.register(ctx, username, password, true)
}

func (s *AuthService) register(ctx context.Context, username, password string, isAdmin bool) (*domain.User, error) {
	logCtx := logrus.WithFields(logrus.Fields{"username": username, "is_admin": isAdmin})

	if username == "" || password == "" {
		return nil, fmt.Errorf("%w: username and password are required", ErrRegistrationFailed)
	}

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	if err != nil {
		logCtx.WithError(err).Error("Failed to hash password during registration")
		return nil, ErrInternalServer
	}

	user := &domain.User{
		Username: username,
		Password: string(hashed),
		IsAdmin:  isAdmin,
	}
	if err := s.users.Save(ctx, user); err != nil {
		if errors.Is(err, repository.ErrDuplicateEntry) {
			logCtx.Warn("Registration failed: username already exists")
			return nil, ErrRegistrationFailed
		}
		logCtx.WithError(err).Error("Database error during user creation")
		return nil, ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User registered")
	user.Password = ""
	return user, nil
}

// Login verifies credentials and returns a signed JWT.
func (s *AuthService) Login(ctx context.Context, username, password string) (string, error) {
	logCtx := logrus.WithField("username", username)

	user, err := s.users.FindByUsername(ctx, username)
	if err != nil {
		if !errors.Is(err, repository.ErrUserNotFound) {
			logCtx.WithError(err).Warn("Login failed: error finding user")
		}
		return "", ErrAuthenticationFailed
	}
	if user == nil {
		return "", ErrAuthenticationFailed
	}

	if bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(password)) != nil {
		logCtx.Warn("Login failed: invalid password")
		return "", ErrAuthenticationFailed
	}

	token, err := s.generateJWT(user)
	if err != nil {
		logCtx.WithError(err).Error("Failed to sign JWT")
		return "", ErrInternalServer
	}

	logCtx.WithField("user_id", user.ID).Info("User logged in")
	return token, nil
}

func (s *AuthService) generateJWT(user *domain.User) (string, error) {
	now := time.Now()
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.MapClaims{
		"user_id":  user.ID,
		"username": user.Username,
		"exp":      now.Add(s.jwtExpiry).Unix(),
		"iat":      now.Unix(),
	})
	signed, err := token.SignedString(s.jwtSecret)
	if err != nil {
		return "", fmt.Errorf("failed to sign token: %w", err)
	}
	return signed, nil
}
