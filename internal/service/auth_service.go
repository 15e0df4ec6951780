package service

import (
	"context"
	"time"

	"swipenotes/internal/dto"

	"github.com/golang-jwt/jwt/v5"
)

// IAuthService wraps passphrase registration for the HTTP surface: it runs
// the sync engine's registration and mints a session token carrying the
// derived user id.
type IAuthService interface {
	Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error)
	GeneratePassphrase() (*dto.GeneratePassphraseResponse, error)
}

type authService struct {
	syncService ISyncService
	identity    IIdentityService
	jwtSecret   string
}

func NewAuthService(syncService ISyncService, identity IIdentityService, jwtSecret string) IAuthService {
	return &authService{
		syncService: syncService,
		identity:    identity,
		jwtSecret:   jwtSecret,
	}
}

func (s *authService) Register(ctx context.Context, req *dto.RegisterRequest) (*dto.RegisterResponse, error) {
	user, err := s.syncService.RegisterUser(ctx, req.Passphrase)
	if err != nil {
		return nil, err
	}

	claims := jwt.MapClaims{
		"user_id": user.Id,
		"exp":     time.Now().Add(30 * 24 * time.Hour).Unix(),
		"iat":     time.Now().Unix(),
	}
	token := jwt.NewWithClaims(jwt.SigningMethodHS256, claims)
	signed, err := token.SignedString([]byte(s.jwtSecret))
	if err != nil {
		return nil, err
	}

	return &dto.RegisterResponse{
		UserId: user.Id,
		Token:  signed,
	}, nil
}

func (s *authService) GeneratePassphrase() (*dto.GeneratePassphraseResponse, error) {
	phrase, err := s.identity.GeneratePassphrase()
	if err != nil {
		return nil, err
	}
	return &dto.GeneratePassphraseResponse{Passphrase: phrase}, nil
}
