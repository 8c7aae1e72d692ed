package services

import (
	"context"
	"errors"
	"strings"
	"time"

	"golang.org/x/crypto/bcrypt"

	"github.com/reposekdz/eastgate-sub004/repository"
	"github.com/reposekdz/eastgate-sub004/utils"
)

// ErrInvalidCredentials hides whether the username or the password was
// wrong.
var ErrInvalidCredentials = errors.New("invalid credentials")

// AuthService authenticates staff accounts and issues the JWTs the
// protected routes require.
type AuthService struct {
	store     repository.StaffStore
	jwtSecret string
	tokenTTL  time.Duration
}

func NewAuthService(store repository.StaffStore, jwtSecret string, tokenTTL time.Duration) *AuthService {
	return &AuthService{store: store, jwtSecret: jwtSecret, tokenTTL: tokenTTL}
}

type LoginResult struct {
	Token     string    `json:"token"`
	ExpiresAt time.Time `json:"expiresAt"`
	FullName  string    `json:"fullName"`
	Role      string    `json:"role"`
}

func (s *AuthService) Login(ctx context.Context, username, password string) (*LoginResult, error) {
	username = strings.TrimSpace(username)
	if username == "" || password == "" {
		return nil, ErrInvalidCredentials
	}

	staff, err := s.store.GetStaffByUsername(ctx, username)
	if err != nil {
		if errors.Is(err, repository.ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, err
	}
	if bcrypt.CompareHashAndPassword([]byte(staff.Password), []byte(password)) != nil {
		return nil, ErrInvalidCredentials
	}

	token, expiresAt, err := utils.NewAccessToken(s.jwtSecret, staff.ID, staff.Role, s.tokenTTL)
	if err != nil {
		return nil, err
	}
	return &LoginResult{
		Token:     token,
		ExpiresAt: expiresAt,
		FullName:  staff.FullName,
		Role:      staff.Role,
	}, nil
}
