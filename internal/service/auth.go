package service

import (
	"context"
	"errors"
	"fmt"

	"order-system-api/internal/model"
	"order-system-api/internal/repository"

	"golang.org/x/crypto/bcrypt"
	"gorm.io/gorm"
)

type TokenPair struct {
	AccessToken  string
	RefreshToken string
}

type AuthService interface {
	Register(ctx context.Context, nome, email, senha string, ativo, admin bool) (*model.Usuario, error)
	Authenticate(ctx context.Context, email, senha string) (*model.Usuario, error)
	Login(ctx context.Context, email, senha string) (*TokenPair, error)
	Refresh(ctx context.Context, refreshToken string) (string, error)
}

type authServiceImpl struct {
	userRepo     repository.UserRepository
	tokenService TokenService
}

func NewAuthService(
	userRepo repository.UserRepository,
	tokenService TokenService,
) AuthService {
	return &authServiceImpl{
		userRepo:     userRepo,
		tokenService: tokenService,
	}
}

func (s *authServiceImpl) Register(ctx context.Context, nome, email, senha string, ativo, admin bool) (*model.Usuario, error) {
	_, err := s.userRepo.FindByEmail(ctx, email)
	if err == nil {
		return nil, ErrEmailTaken
	}
	if !errors.Is(err, gorm.ErrRecordNotFound) {
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	hash, err := bcrypt.GenerateFromPassword([]byte(senha), bcrypt.DefaultCost)
	if err != nil {
		return nil, fmt.Errorf("hash password: %w", err)
	}

	user := &model.Usuario{
		Nome:  nome,
		Email: email,
		Senha: string(hash),
		Ativo: ativo,
		Admin: admin,
	}
	if err := s.userRepo.Create(ctx, user); err != nil {
		return nil, fmt.Errorf("create user: %w", err)
	}

	return user, nil
}

// Authenticate deliberately collapses unknown-email and wrong-password
// into the same error so callers cannot probe which accounts exist.
func (s *authServiceImpl) Authenticate(ctx context.Context, email, senha string) (*model.Usuario, error) {
	user, err := s.userRepo.FindByEmail(ctx, email)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("lookup email: %w", err)
	}

	if err := bcrypt.CompareHashAndPassword([]byte(user.Senha), []byte(senha)); err != nil {
		return nil, ErrInvalidCredentials
	}

	return user, nil
}

func (s *authServiceImpl) Login(ctx context.Context, email, senha string) (*TokenPair, error) {
	user, err := s.Authenticate(ctx, email, senha)
	if err != nil {
		return nil, err
	}

	accessToken, err := s.tokenService.Issue(user.ID, s.tokenService.AccessTokenTTL())
	if err != nil {
		return nil, err
	}

	refreshToken, err := s.tokenService.Issue(user.ID, RefreshTokenTTL)
	if err != nil {
		return nil, err
	}

	return &TokenPair{
		AccessToken:  accessToken,
		RefreshToken: refreshToken,
	}, nil
}

// Refresh verifies the refresh token, re-confirms the user still exists
// and is active, then issues a fresh access token.
func (s *authServiceImpl) Refresh(ctx context.Context, refreshToken string) (string, error) {
	userID, err := s.tokenService.Verify(refreshToken)
	if err != nil {
		return "", err
	}

	user, err := s.userRepo.FindByID(ctx, userID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return "", ErrUserNotFound
		}
		return "", fmt.Errorf("lookup user: %w", err)
	}
	if !user.Ativo {
		return "", ErrUserInactive
	}

	return s.tokenService.Issue(user.ID, s.tokenService.AccessTokenTTL())
}
