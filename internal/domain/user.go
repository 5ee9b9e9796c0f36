package domain

import (
	"context"
	"fmt"
	"regexp"
	"time"

	"github.com/asaskevich/govalidator"
)

//go:generate mockgen -destination mocks/mock_user_repository.go -package mocks github.com/tracknest/tracknest/internal/domain UserRepository
//go:generate mockgen -destination mocks/mock_user_service.go -package mocks github.com/tracknest/tracknest/internal/domain UserService

var usernameRegexp = regexp.MustCompile(`^[a-z_][a-z0-9_-]*$`)

// User is a local account. Accounts are provisioned on first OAuth
// exchange with the identity service, keyed by RemoteID.
type User struct {
	ID         int64     `json:"id" db:"id"`
	RemoteID   string    `json:"-" db:"remote_id"`
	Username   string    `json:"username" db:"username"`
	Email      string    `json:"email" db:"email"`
	NotifySelf bool      `json:"notify_self" db:"notify_self"`
	CreatedAt  time.Time `json:"created_at" db:"created_at"`
	UpdatedAt  time.Time `json:"updated_at" db:"updated_at"`
}

// CanonicalName returns the ~username form used in URLs and mail.
func (u *User) CanonicalName() string {
	return "~" + u.Username
}

// Validate performs validation on the user fields
func (u *User) Validate() error {
	if u.Username == "" {
		return fmt.Errorf("invalid user: username is required")
	}
	if len(u.Username) < 2 || len(u.Username) > 30 {
		return fmt.Errorf("invalid user: username length must be between 2 and 30")
	}
	if !usernameRegexp.MatchString(u.Username) {
		return fmt.Errorf("invalid user: username must match %s", usernameRegexp.String())
	}
	if u.Email != "" && !govalidator.IsEmail(u.Email) {
		return fmt.Errorf("invalid user: email is invalid")
	}
	return nil
}

// ScanUser scans a user from the database
func ScanUser(scanner interface {
	Scan(dest ...interface{}) error
}) (*User, error) {
	var u User
	if err := scanner.Scan(
		&u.ID,
		&u.RemoteID,
		&u.Username,
		&u.Email,
		&u.NotifySelf,
		&u.CreatedAt,
		&u.UpdatedAt,
	); err != nil {
		return nil, err
	}
	return &u, nil
}

// RemoteUser is the profile payload returned by the identity service
// during an OAuth exchange.
type RemoteUser struct {
	ID       string `json:"id"`
	Username string `json:"username"`
	Email    string `json:"email"`
}

func (r *RemoteUser) Validate() error {
	if r.ID == "" {
		return NewFieldValidationError("id", "is required")
	}
	u := &User{Username: r.Username, Email: r.Email}
	return u.Validate()
}

type UpdateUserSettingsRequest struct {
	NotifySelf bool `json:"notify_self"`
}

type UserRepository interface {
	GetByID(ctx context.Context, id int64) (*User, error)
	GetByRemoteID(ctx context.Context, remoteID string) (*User, error)
	GetByUsername(ctx context.Context, username string) (*User, error)
	GetByEmail(ctx context.Context, email string) (*User, error)

	// Upsert inserts a user keyed on remote id, updating username and
	// email on conflict. Returns the stored row.
	Upsert(ctx context.Context, user *User) (*User, error)

	Update(ctx context.Context, user *User) error

	// Delete removes a user. Trackers owned by the user and the user's
	// participant identity go with it.
	Delete(ctx context.Context, id int64) error
}

// UserService provides operations for managing local accounts
type UserService interface {
	// GetOrCreateFromRemote upserts the local account for an identity
	// service profile. Called on every successful token validation.
	GetOrCreateFromRemote(ctx context.Context, remote *RemoteUser) (*User, error)

	GetByUsername(ctx context.Context, username string) (*User, error)

	// UpdateSettings changes the user's own preferences.
	UpdateSettings(ctx context.Context, user *User, notifySelf bool) (*User, error)

	// Delete removes the account and everything it owns.
	Delete(ctx context.Context, user *User) error
}

// ErrUserNotFound is returned when a user is not found
type ErrUserNotFound struct {
	Message string
}

func (e *ErrUserNotFound) Error() string {
	return e.Message
}
