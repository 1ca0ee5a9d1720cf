package auth

import (
	"context"
	"errors"
	"log/slog"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"golang.org/x/crypto/bcrypt"
)

// Custom errors
var (
	ErrUserNotFound       = errors.New("user not found")
	ErrUserAlreadyExists  = errors.New("user already exists")
	ErrInvalidCredentials = errors.New("invalid credentials")
)

// InviteRedeemer consumes a sign-up invite code for a freshly registered
// user. Implemented by the friendship service.
type InviteRedeemer interface {
	RedeemInvite(ctx context.Context, code, newUserID string) error
}

type AuthService interface {
	Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error)
	Login(ctx context.Context, req *LoginRequest) (string, error)
	Me(ctx context.Context, userID string) (*UserResponse, error)
}

type authService struct {
	repo      UserRepository
	invites   InviteRedeemer
	jwtSecret string
	jwtExpire time.Duration
}

func NewAuthService(repo UserRepository, invites InviteRedeemer, jwtSecret string, jwtExpire time.Duration) AuthService {
	return &authService{
		repo:      repo,
		invites:   invites,
		jwtSecret: jwtSecret,
		jwtExpire: jwtExpire,
	}
}

// generateJWT creates a new JWT token for the user
func (s *authService) generateJWT(user *User) (string, error) {
	claims := jwt.MapClaims{
		"user_id": user.ID,
		"email":   user.Email,
		"exp":     time.Now().Add(s.jwtExpire).Unix(),
		"iat":     time.Now().Unix(),
	}

	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	return token.SignedString([]byte(s.jwtSecret))
}

func (s *authService) Register(ctx context.Context, req *RegisterRequest) (*UserResponse, error) {
	existing, _ := s.repo.FindByEmail(ctx, req.Email)
	if existing != nil {
		return nil, ErrUserAlreadyExists
	}

	hashedPassword, err := bcrypt.GenerateFromPassword([]byte(req.Password), bcrypt.DefaultCost)
	if err != nil {
		return nil, err
	}

	user := &User{
		Email:    req.Email,
		Password: string(hashedPassword),
	}
	if err := s.repo.Create(ctx, user); err != nil {
		return nil, err
	}

	// Invite redemption is best-effort: a bad code must not lose the
	// account that was just created.
	if req.InviteCode != "" && s.invites != nil {
		if err := s.invites.RedeemInvite(ctx, req.InviteCode, user.ID); err != nil {
			slog.Warn("invite redemption failed", "userID", user.ID, "error", err)
		}
	}

	return &UserResponse{ID: user.ID, Email: user.Email, Created: user.CreatedAt}, nil
}

func (s *authService) Login(ctx context.Context, req *LoginRequest) (string, error) {
	user, err := s.repo.FindByEmail(ctx, req.Email)
	if err != nil {
		return "", ErrInvalidCredentials
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Password), []byte(req.Password)); err != nil {
		return "", ErrInvalidCredentials
	}

	return s.generateJWT(user)
}

func (s *authService) Me(ctx context.Context, userID string) (*UserResponse, error) {
	user, err := s.repo.FindByID(ctx, userID)
	if err != nil {
		return nil, ErrUserNotFound
	}
	return &UserResponse{ID: user.ID, Email: user.Email, Created: user.CreatedAt}, nil
}
