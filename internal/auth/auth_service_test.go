package auth

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type fakeUserRepo struct {
	byEmail map[string]*User
	byID    map[string]*User
}

func newFakeUserRepo() *fakeUserRepo {
	return &fakeUserRepo{
		byEmail: make(map[string]*User),
		byID:    make(map[string]*User),
	}
}

func (f *fakeUserRepo) Create(ctx context.Context, user *User) error {
	if user.ID == "" {
		user.ID = uuid.New().String()
	}
	user.CreatedAt = time.Now()
	f.byEmail[user.Email] = user
	f.byID[user.ID] = user
	return nil
}

func (f *fakeUserRepo) FindByEmail(ctx context.Context, email string) (*User, error) {
	u, ok := f.byEmail[email]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

func (f *fakeUserRepo) FindByID(ctx context.Context, id string) (*User, error) {
	u, ok := f.byID[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return u, nil
}

type fakeRedeemer struct {
	calls [][2]string
	err   error
}

func (f *fakeRedeemer) RedeemInvite(ctx context.Context, code, newUserID string) error {
	f.calls = append(f.calls, [2]string{code, newUserID})
	return f.err
}

func TestRegister(t *testing.T) {
	ctx := context.Background()

	t.Run("CreatesUserWithHashedPassword", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, nil, "secret", time.Hour)

		resp, err := svc.Register(ctx, &RegisterRequest{Email: "alice@circleup.dev", Password: "123456"})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
		assert.Equal(t, "alice@circleup.dev", resp.Email)

		stored := repo.byEmail["alice@circleup.dev"]
		require.NotNil(t, stored)
		assert.NotEqual(t, "123456", stored.Password)
		assert.NoError(t, bcrypt.CompareHashAndPassword([]byte(stored.Password), []byte("123456")))
	})

	t.Run("RejectsDuplicateEmail", func(t *testing.T) {
		repo := newFakeUserRepo()
		svc := NewAuthService(repo, nil, "secret", time.Hour)

		_, err := svc.Register(ctx, &RegisterRequest{Email: "alice@circleup.dev", Password: "123456"})
		require.NoError(t, err)

		_, err = svc.Register(ctx, &RegisterRequest{Email: "alice@circleup.dev", Password: "654321"})
		assert.ErrorIs(t, err, ErrUserAlreadyExists)
	})

	t.Run("RedeemsInviteCode", func(t *testing.T) {
		repo := newFakeUserRepo()
		redeemer := &fakeRedeemer{}
		svc := NewAuthService(repo, redeemer, "secret", time.Hour)

		resp, err := svc.Register(ctx, &RegisterRequest{
			Email:      "bob@circleup.dev",
			Password:   "123456",
			InviteCode: "abc123def456",
		})
		require.NoError(t, err)
		require.Len(t, redeemer.calls, 1)
		assert.Equal(t, [2]string{"abc123def456", resp.ID}, redeemer.calls[0])
	})

	t.Run("BadInviteDoesNotFailRegistration", func(t *testing.T) {
		repo := newFakeUserRepo()
		redeemer := &fakeRedeemer{err: errors.New("invalid code")}
		svc := NewAuthService(repo, redeemer, "secret", time.Hour)

		resp, err := svc.Register(ctx, &RegisterRequest{
			Email:      "carol@circleup.dev",
			Password:   "123456",
			InviteCode: "expired",
		})
		require.NoError(t, err)
		assert.NotEmpty(t, resp.ID)
	})
}

func TestLogin(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour)

	_, err := svc.Register(ctx, &RegisterRequest{Email: "alice@circleup.dev", Password: "123456"})
	require.NoError(t, err)

	t.Run("IssuesValidToken", func(t *testing.T) {
		tokenStr, err := svc.Login(ctx, &LoginRequest{Email: "alice@circleup.dev", Password: "123456"})
		require.NoError(t, err)

		token, err := jwt.Parse(tokenStr, func(t *jwt.Token) (interface{}, error) {
			return []byte("secret"), nil
		})
		require.NoError(t, err)
		require.True(t, token.Valid)

		claims := token.Claims.(jwt.MapClaims)
		assert.Equal(t, "alice@circleup.dev", claims["email"])
		assert.NotEmpty(t, claims["user_id"])
	})

	t.Run("WrongPassword", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "alice@circleup.dev", Password: "wrong"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})

	t.Run("UnknownEmail", func(t *testing.T) {
		_, err := svc.Login(ctx, &LoginRequest{Email: "nobody@circleup.dev", Password: "123456"})
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	})
}

func TestMe(t *testing.T) {
	ctx := context.Background()
	repo := newFakeUserRepo()
	svc := NewAuthService(repo, nil, "secret", time.Hour)

	created, err := svc.Register(ctx, &RegisterRequest{Email: "alice@circleup.dev", Password: "123456"})
	require.NoError(t, err)

	resp, err := svc.Me(ctx, created.ID)
	require.NoError(t, err)
	assert.Equal(t, created.Email, resp.Email)

	_, err = svc.Me(ctx, "missing")
	assert.ErrorIs(t, err, ErrUserNotFound)
}
