package adapter

import (
	"context"
	"errors"

	userapp "github.com/dwikikusuma/phone-shop/internal/user/app"
	"github.com/dwikikusuma/phone-shop/pkg/apperr"
)

type UserServiceReader struct {
	svc *userapp.Service
}

func NewUserServiceReader(svc *userapp.Service) *UserServiceReader {
	return &UserServiceReader{svc: svc}
}

func (r *UserServiceReader) UserExists(ctx context.Context, userID int64) (bool, error) {
	_, err := r.svc.GetUser(ctx, userID)
	if errors.Is(err, apperr.ErrNotFound) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	return true, nil
}
