package domain

import "time"

type User struct {
	ID           int64
	Username     string
	Email        string
	PasswordHash string
	IsActive     bool
	CreatedAt    time.Time
}

type CreateUserRequest struct {
	Username string
	Email    string
	Password string
}

// UserPatch carries the fields of a partial update. A new password is hashed
// by the service before it reaches PasswordHash.
type UserPatch struct {
	Username     *string
	Email        *string
	Password     *string
	PasswordHash *string
	IsActive     *bool
}

func (p UserPatch) Apply(dst User) User {
	if p.Username != nil {
		dst.Username = *p.Username
	}
	if p.Email != nil {
		dst.Email = *p.Email
	}
	if p.PasswordHash != nil {
		dst.PasswordHash = *p.PasswordHash
	}
	if p.IsActive != nil {
		dst.IsActive = *p.IsActive
	}
	return dst
}
