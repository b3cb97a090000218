package usecase

import (
	"context"
	"io"
	"testing"
	"time"

	"careconnect-api/config"
	"careconnect-api/internal/delivery/dto"
	"careconnect-api/internal/domain/entity"
	"careconnect-api/pkg/jwt"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
	"github.com/sirupsen/logrus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

func newAuthFixture(t *testing.T) (*fakeStore, AuthUsecase) {
	t.Helper()

	store := newFakeStore()

	log := logrus.New()
	log.SetOutput(io.Discard)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})

	redisClient := redis.NewClient(&redis.Options{
		Addr:        "127.0.0.1:1",
		DialTimeout: 10 * time.Millisecond,
		MaxRetries:  -1,
	})

	uc := NewAuthUsecase(log, &fakeUserRepo{store: store}, jwtService, redisClient)
	return store, uc
}

func seedUser(t *testing.T, store *fakeStore, email, password string, status entity.UserStatus) *entity.User {
	t.Helper()

	hashed, err := bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
	require.NoError(t, err)

	user := &entity.User{
		ID:         uuid.New(),
		RoleID:     entity.RoleIDUser,
		Email:      email,
		Password:   string(hashed),
		FullName:   "Seeded User",
		IsVerified: true,
		Status:     status,
	}
	require.NoError(t, (&fakeUserRepo{store: store}).Update(context.Background(), user))
	return user
}

func TestLogin_UnknownEmail(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "nobody@example.com",
		Password: "whatever",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_WrongPassword(t *testing.T) {
	store, uc := newAuthFixture(t)
	seedUser(t, store, "pat@example.com", "secret123", entity.UserStatusActive)

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "wrong",
	})
	assert.ErrorIs(t, err, ErrInvalidCredentials)
}

func TestLogin_BlockedAccount(t *testing.T) {
	store, uc := newAuthFixture(t)
	seedUser(t, store, "pat@example.com", "secret123", entity.UserStatusBlocked)

	_, err := uc.Login(context.Background(), &dto.LoginRequest{
		Email:    "pat@example.com",
		Password: "secret123",
	})
	assert.ErrorIs(t, err, ErrAccountBlocked)
}

func TestGetCurrentUser(t *testing.T) {
	store, uc := newAuthFixture(t)
	user := seedUser(t, store, "pat@example.com", "secret123", entity.UserStatusActive)

	got, err := uc.GetCurrentUser(context.Background(), user.ID)
	require.NoError(t, err)
	assert.Equal(t, user.Email, got.Email)
	assert.Equal(t, entity.RoleUser, got.Role)
}

func TestGetCurrentUser_NotFound(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.GetCurrentUser(context.Background(), uuid.New())
	assert.ErrorIs(t, err, ErrUserNotFound)
}

func TestRefreshToken_RejectsAccessToken(t *testing.T) {
	_, uc := newAuthFixture(t)

	jwtService := jwt.NewJWTService(config.JWTConfig{
		Secret:        "test-secret",
		AccessExpiry:  15 * time.Minute,
		RefreshExpiry: 7 * 24 * time.Hour,
	})
	accessToken, _, err := jwtService.GenerateAccessToken(uuid.New(), "pat@example.com", entity.RoleIDUser)
	require.NoError(t, err)

	_, err = uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: accessToken})
	assert.ErrorIs(t, err, ErrInvalidToken)
}

func TestRefreshToken_GarbageToken(t *testing.T) {
	_, uc := newAuthFixture(t)

	_, err := uc.RefreshToken(context.Background(), &dto.RefreshTokenRequest{RefreshToken: "not-a-jwt"})
	assert.ErrorIs(t, err, ErrInvalidToken)
}
