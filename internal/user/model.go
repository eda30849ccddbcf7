package user

import (
	"net/http"
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/apperror"
)

var (
	ErrNotFound           = apperror.New(http.StatusNotFound, "user not found")
	ErrEmailAlreadyUsed   = apperror.New(http.StatusConflict, "email already used")
	ErrInvalidCredentials = apperror.New(http.StatusUnauthorized, "invalid email or password")
	ErrInactiveUser       = apperror.New(http.StatusForbidden, "user is inactive")
	ErrInvalidTimezone    = apperror.New(http.StatusBadRequest, "unknown IANA timezone")
)

// User is anyone with an account: clients book meetings, hosts additionally
// publish meeting types and availability rules. Timezone is the IANA zone
// the host's local rule times are interpreted in; nil falls back to the
// configured default (UTC unless overridden).
type User struct {
	ID           string // UUID
	Email        string
	PasswordHash string
	DisplayName  *string
	Timezone     *string
	IsHost       bool
	IsActive     bool
	CreatedAt    time.Time
	LastLoginAt  *time.Time
}

// Filter defines filter options for listing users.
type Filter struct {
	Email    string
	IsHost   *bool
	IsActive *bool

	Page     int
	PageSize int
}
