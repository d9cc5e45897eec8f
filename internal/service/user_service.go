package service

import (
	"context"
	"errors"
	"fmt"

	"github.com/fsdevblog/cenjin-cards/internal/domain"
	"github.com/fsdevblog/cenjin-cards/internal/repository/repoargs"
	"github.com/fsdevblog/cenjin-cards/pkg/uow"
)

type UserService struct {
	uow      uow.UOW
	userRepo UserRepository
	hasher   PasswordHasher
	tokens   TokenManager
}

func NewUserService(u uow.UOW, hasher PasswordHasher, tokens TokenManager) (*UserService, error) {
	userRepo, err := uow.GetRepositoryAs[UserRepository](u, uow.RepositoryName(repoargs.UserRepoName))
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return &UserService{
		uow:      u,
		userRepo: userRepo,
		hasher:   hasher,
		tokens:   tokens,
	}, nil
}

type LoginUserArgs struct {
	Account  string
	Password string
}

// Login checks credentials and issues a token. An unknown account and a wrong password both yield
// domain.ErrPasswordMissMatch.
func (s *UserService) Login(ctx context.Context, args LoginUserArgs) (*domain.User, string, error) {
	user, err := s.userRepo.FindUserByAccount(ctx, args.Account)
	if err != nil {
		if errors.Is(err, domain.ErrRecordNotFound) {
			return nil, "", fmt.Errorf("login `%s`: %w", args.Account, domain.ErrPasswordMissMatch)
		}
		return nil, "", fmt.Errorf("login `%s`: %w", args.Account, err)
	}

	if !s.hasher.ComparePassword(args.Password, user.EncryptedPassword) {
		return nil, "", fmt.Errorf("login `%s`: %w", args.Account, domain.ErrPasswordMissMatch)
	}

	token, err := s.tokens.Generate(claimsOf(user))
	if err != nil {
		return nil, "", fmt.Errorf("login `%s`: %w", args.Account, err)
	}
	return user, token, nil
}

type RegisterUserArgs struct {
	Username string
	Account  string
	Password string
}

// Register stores a user with a hashed password and issues a token for it. A taken account or username
// yields domain.ErrDuplicateKey.
func (s *UserService) Register(ctx context.Context, args RegisterUserArgs) (*domain.User, string, error) {
	password, hashErr := s.hasher.HashPassword(args.Password)
	if hashErr != nil {
		return nil, "", fmt.Errorf("registering user: %s", hashErr.Error())
	}

	var user *domain.User
	var token string
	txErr := s.uow.Do(ctx, func(c context.Context, tx uow.TX) error {
		userRepo, userRepoErr := uow.GetAs[UserRepository](tx, uow.RepositoryName(repoargs.UserRepoName))
		if userRepoErr != nil {
			return userRepoErr //nolint:wrapcheck
		}

		var err error
		user, err = userRepo.CreateUser(c, repoargs.CreateUser{
			Username: args.Username,
			Account:  args.Account,
			Password: password,
		})
		if err != nil {
			return err //nolint:wrapcheck
		}

		token, err = s.tokens.Generate(claimsOf(user))
		return err //nolint:wrapcheck
	})
	if txErr != nil {
		return nil, "", fmt.Errorf("registering user: %w", txErr)
	}
	return user, token, nil
}

// EnsureUser creates the account when it does not exist yet. It reports whether a user was created.
func (s *UserService) EnsureUser(ctx context.Context, args RegisterUserArgs) (bool, error) {
	_, err := s.userRepo.FindUserByAccount(ctx, args.Account)
	if err == nil {
		return false, nil
	}
	if !errors.Is(err, domain.ErrRecordNotFound) {
		return false, fmt.Errorf("ensuring user `%s`: %w", args.Account, err)
	}

	password, err := s.hasher.HashPassword(args.Password)
	if err != nil {
		return false, fmt.Errorf("ensuring user `%s`: %s", args.Account, err.Error())
	}
	if _, err = s.userRepo.CreateUser(ctx, repoargs.CreateUser{
		Username: args.Username,
		Account:  args.Account,
		Password: password,
	}); err != nil {
		return false, fmt.Errorf("ensuring user `%s`: %w", args.Account, err)
	}
	return true, nil
}

// ValidateToken returns the identity carried by a valid token.
func (s *UserService) ValidateToken(token string) (*domain.UserClaims, error) {
	claims, err := s.tokens.Validate(token)
	if err != nil {
		return nil, err //nolint:wrapcheck
	}
	return claims, nil
}

// RefreshToken re-issues a correctly signed, possibly expired, token.
func (s *UserService) RefreshToken(token string) (string, error) {
	fresh, err := s.tokens.Refresh(token)
	if err != nil {
		return "", err //nolint:wrapcheck
	}
	return fresh, nil
}

func claimsOf(user *domain.User) domain.UserClaims {
	return domain.UserClaims{
		ID:       user.ID,
		Account:  user.Account,
		Username: user.Username,
	}
}
