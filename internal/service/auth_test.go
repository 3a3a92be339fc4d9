package service_test

import (
	"context"
	"testing"

	"github.com/golang-jwt/jwt/v4"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/aadeeee/booking-backend/internal/domain"
	"github.com/aadeeee/booking-backend/internal/repository"
	"github.com/aadeeee/booking-backend/internal/repository/mocks"
	"github.com/aadeeee/booking-backend/internal/service"
)

const testJWTSecret = "test-secret-key"

func newAuthService(t *testing.T, users repository.UserRepository, adminSecret string) *service.AuthService {
	t.Helper()
	svc, err := service.NewAuthService(users, testJWTSecret, 24, adminSecret)
	require.NoError(t, err)
	return svc
}

func TestNewAuthService_RequiresJWTSecret(t *testing.T) {
	_, err := service.NewAuthService(new(mocks.UserRepository), "", 24, "")
	assert.Error(t, err)
}

func TestRegister_Success(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := newAuthService(t, users, "")

	users.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
		Run(func(args mock.Arguments) {
			u := args.Get(1).(*domain.User)
			u.ID = 42
			assert.False(t, u.IsAdmin)
			// The stored password must be a hash, never the plaintext.
			assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(u.Password), []byte("rahasia")))
		}).
		Return(nil).Once()

	user, err := svc.Register(context.Background(), "budi", "rahasia")
	require.NoError(t, err)
	assert.Equal(t, uint(42), user.ID)
	assert.Empty(t, user.Password)
	users.AssertExpectations(t)
}

func TestRegister_RejectsEmptyCredentials(t *testing.T) {
	svc := newAuthService(t, new(mocks.UserRepository), "")

	_, err := svc.Register(context.Background(), "", "rahasia")
	assert.ErrorIs(t, err, service.ErrRegistrationFailed)

	_, err = svc.Register(context.Background(), "budi", "")
	assert.ErrorIs(t, err, service.ErrRegistrationFailed)
}

func TestRegister_DuplicateUsername(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := newAuthService(t, users, "")

	users.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
		Return(repository.ErrDuplicateEntry).Once()

	_, err := svc.Register(context.Background(), "budi", "rahasia")
	assert.ErrorIs(t, err, service.ErrRegistrationFailed)
	users.AssertExpectations(t)
}

func TestRegisterAdmin_SecretGate(t *testing.T) {
	t.Run("wrong secret refused", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := newAuthService(t, users, "kunci-admin")

		_, err := svc.RegisterAdmin(context.Background(), "budi", "rahasia", "salah")
		assert.ErrorIs(t, err, service.ErrForbidden)
		users.AssertNotCalled(t, "Save", mock.Anything, mock.Anything)
	})

	t.Run("no secret configured refuses everyone", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := newAuthService(t, users, "")

		_, err := svc.RegisterAdmin(context.Background(), "budi", "rahasia", "")
		assert.ErrorIs(t, err, service.ErrForbidden)
	})

	t.Run("matching secret creates admin", func(t *testing.T) {
		users := new(mocks.UserRepository)
		svc := newAuthService(t, users, "kunci-admin")

		users.On("Save", mock.Anything, mock.AnythingOfType("*domain.User")).
			Run(func(args mock.Arguments) {
				u := args.Get(1).(*domain.User)
				u.ID = 1
				assert.True(t, u.IsAdmin)
			}).
			Return(nil).Once()

		user, err := svc.RegisterAdmin(context.Background(), "budi", "rahasia", "kunci-admin")
		require.NoError(t, err)
		assert.True(t, user.IsAdmin)
		users.AssertExpectations(t)
	})
}

func TestLogin_Success(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := newAuthService(t, users, "")

	hashed, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByUsername", mock.Anything, "budi").
		Return(&domain.User{ID: 7, Username: "budi", Password: string(hashed)}, nil).Once()

	token, err := svc.Login(context.Background(), "budi", "rahasia")
	require.NoError(t, err)
	require.NotEmpty(t, token)

	parsed, err := jwt.Parse(token, func(*jwt.Token) (interface{}, error) {
		return []byte(testJWTSecret), nil
	})
	require.NoError(t, err)
	claims, ok := parsed.Claims.(jwt.MapClaims)
	require.True(t, ok)
	assert.Equal(t, float64(7), claims["user_id"])
	assert.Equal(t, "budi", claims["username"])
	users.AssertExpectations(t)
}

func TestLogin_WrongPassword(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := newAuthService(t, users, "")

	hashed, err := bcrypt.GenerateFromPassword([]byte("rahasia"), bcrypt.MinCost)
	require.NoError(t, err)
	users.On("FindByUsername", mock.Anything, "budi").
		Return(&domain.User{ID: 7, Username: "budi", Password: string(hashed)}, nil).Once()

	_, err = svc.Login(context.Background(), "budi", "salah")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}

func TestLogin_UnknownUser(t *testing.T) {
	users := new(mocks.UserRepository)
	svc := newAuthService(t, users, "")

	users.On("FindByUsername", mock.Anything, "ghost").
		Return(nil, repository.ErrUserNotFound).Once()

	_, err := svc.Login(context.Background(), "ghost", "rahasia")
	assert.ErrorIs(t, err, service.ErrAuthenticationFailed)
}
