package app

import (
	"context"
	"errors"
	"net/mail"
	"strings"
	"time"

	"github.com/dwikikusuma/phone-shop/internal/user/domain"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
)

const minPasswordLen = 8

var ErrBadCredentials = errors.New("invalid email or password")

type Service struct {
	repo   UserRepo
	hasher PasswordHasher
	now    func() time.Time
}

func NewService(repo UserRepo, hasher PasswordHasher) *Service {
	if hasher == nil {
		hasher = BcryptHasher{}
	}
	return &Service{repo: repo, hasher: hasher, now: time.Now}
}

func (s *Service) CreateUser(ctx context.Context, req domain.CreateUserRequest) (domain.User, error) {
	username := strings.TrimSpace(req.Username)
	email, err := normalizeEmail(req.Email)
	if err != nil {
		return domain.User{}, err
	}
	if username == "" {
		return domain.User{}, apperr.Invalid("username is required")
	}
	if len(req.Password) < minPasswordLen {
		return domain.User{}, apperr.Invalid("password must be at least %d characters", minPasswordLen)
	}

	if _, err := s.repo.GetByEmail(ctx, email); err == nil {
		return domain.User{}, apperr.Invalid("Email already registered")
	} else if !errors.Is(err, apperr.ErrNotFound) {
		return domain.User{}, err
	}

	hash, err := s.hasher.Hash(req.Password)
	if err != nil {
		return domain.User{}, apperr.Internal(err, "hashing password")
	}

	return s.repo.Create(ctx, domain.User{
		Username:     username,
		Email:        email,
		PasswordHash: hash,
		IsActive:     true,
		CreatedAt:    s.now().UTC(),
	})
}

func (s *Service) GetUser(ctx context.Context, id int64) (domain.User, error) {
	if id <= 0 {
		return domain.User{}, apperr.NotFound("User with ID %d not found", id)
	}
	return s.repo.Get(ctx, id)
}

func (s *Service) ListUsers(ctx context.Context) ([]domain.User, error) {
	return s.repo.List(ctx)
}

func (s *Service) UpdateUser(ctx context.Context, id int64, patch domain.UserPatch) (domain.User, error) {
	if patch.Username != nil {
		v := strings.TrimSpace(*patch.Username)
		if v == "" {
			return domain.User{}, apperr.Invalid("username cannot be empty")
		}
		patch.Username = &v
	}
	if patch.Email != nil {
		v, err := normalizeEmail(*patch.Email)
		if err != nil {
			return domain.User{}, err
		}
		patch.Email = &v
	}
	patch.PasswordHash = nil
	if patch.Password != nil {
		if len(*patch.Password) < minPasswordLen {
			return domain.User{}, apperr.Invalid("password must be at least %d characters", minPasswordLen)
		}
		hash, err := s.hasher.Hash(*patch.Password)
		if err != nil {
			return domain.User{}, apperr.Internal(err, "hashing password")
		}
		patch.PasswordHash = &hash
		patch.Password = nil
	}
	if id <= 0 {
		return domain.User{}, apperr.NotFound("User with ID %d not found", id)
	}
	return s.repo.Update(ctx, id, patch)
}

func (s *Service) DeleteUser(ctx context.Context, id int64) (bool, error) {
	if id <= 0 {
		return false, nil
	}
	return s.repo.Delete(ctx, id)
}

func (s *Service) CountUsers(ctx context.Context) (int, error) {
	return s.repo.Count(ctx)
}

// Authenticate checks an email/password pair against the stored hash.
func (s *Service) Authenticate(ctx context.Context, email, password string) (domain.User, error) {
	email, err := normalizeEmail(email)
	if err != nil {
		return domain.User{}, ErrBadCredentials
	}
	u, err := s.repo.GetByEmail(ctx, email)
	if errors.Is(err, apperr.ErrNotFound) {
		return domain.User{}, ErrBadCredentials
	}
	if err != nil {
		return domain.User{}, err
	}
	if !u.IsActive || s.hasher.Compare(u.PasswordHash, password) != nil {
		return domain.User{}, ErrBadCredentials
	}
	return u, nil
}

func normalizeEmail(raw string) (string, error) {
	email := strings.ToLower(strings.TrimSpace(raw))
	if email == "" {
		return "", apperr.Invalid("email is required")
	}
	addr, err := mail.ParseAddress(email)
	if err != nil || addr.Address != email {
		return "", apperr.Invalid("email %q is not a valid address", raw)
	}
	return email, nil
}
