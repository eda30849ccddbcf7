package user

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/auth"
)

// Service defines business logic related to users.
type Service interface {
	Register(ctx context.Context, email, password, displayName, timezone string) (*User, error)
	Login(ctx context.Context, email, password string) (*User, error)
	GetByID(ctx context.Context, id string) (*User, error)
	UpdateProfile(ctx context.Context, id string, displayName, timezone *string) (*User, error)
	BecomeHost(ctx context.Context, id string) (*User, error)
	Deactivate(ctx context.Context, id string) error
	ListHosts(ctx context.Context, filter Filter) ([]*User, int, error)

	// HostTimezone returns the host's IANA timezone, or "" when the host
	// has not set one. The caller decides the fallback zone.
	HostTimezone(ctx context.Context, hostID string) (string, error)
}

type service struct {
	repo   Repository
	hasher auth.PasswordHasher

	minPasswordLength int
}

// NewService creates a new user Service.
func NewService(repo Repository, hasher auth.PasswordHasher) Service {
	return &service{
		repo:              repo,
		hasher:            hasher,
		minPasswordLength: 8,
	}
}

func (s *service) Register(ctx context.Context, email, password, displayName, timezone string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" {
		return nil, fmt.Errorf("email is required")
	}

	if len(password) < s.minPasswordLength {
		return nil, fmt.Errorf("password must be at least %d characters", s.minPasswordLength)
	}

	tzPtr, err := normalizeTimezone(timezone)
	if err != nil {
		return nil, err
	}

	// Check if email is already used.
	_, err = s.repo.GetByEmail(ctx, cleanEmail)
	if err == nil {
		// Found an existing user.
		return nil, ErrEmailAlreadyUsed
	}
	// If the error is something other than "not found", propagate it.
	if !errors.Is(err, ErrNotFound) {
		return nil, fmt.Errorf("failed to check existing email: %w", err)
	}

	// Hash the password.
	hash, err := s.hasher.Hash(password)
	if err != nil {
		return nil, fmt.Errorf("failed to hash password: %w", err)
	}

	var displayNamePtr *string
	if strings.TrimSpace(displayName) != "" {
		d := strings.TrimSpace(displayName)
		displayNamePtr = &d
	}

	u := &User{
		Email:        cleanEmail,
		PasswordHash: hash,
		DisplayName:  displayNamePtr,
		Timezone:     tzPtr,
		IsActive:     true,
	}

	if err := s.repo.Create(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to create user: %w", err)
	}

	return u, nil
}

func (s *service) Login(ctx context.Context, email, password string) (*User, error) {
	cleanEmail := normalizeEmail(email)
	if cleanEmail == "" || strings.TrimSpace(password) == "" {
		return nil, ErrInvalidCredentials
	}

	u, err := s.repo.GetByEmail(ctx, cleanEmail)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			return nil, ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to fetch user by email: %w", err)
	}

	if !u.IsActive {
		return nil, ErrInactiveUser
	}

	// Compare password hash.
	if err := s.hasher.Compare(u.PasswordHash, password); err != nil {
		return nil, ErrInvalidCredentials
	}

	// Update last_login_at (best effort; do not fail login if update fails).
	now := time.Now().UTC()
	_ = s.repo.UpdateLastLogin(ctx, u.ID, now)

	return u, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*User, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) UpdateProfile(ctx context.Context, id string, displayName, timezone *string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if displayName != nil {
		d := strings.TrimSpace(*displayName)
		if d == "" {
			u.DisplayName = nil
		} else {
			u.DisplayName = &d
		}
	}

	if timezone != nil {
		tzPtr, err := normalizeTimezone(*timezone)
		if err != nil {
			return nil, err
		}
		u.Timezone = tzPtr
	}

	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

func (s *service) BecomeHost(ctx context.Context, id string) (*User, error) {
	u, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if u.IsHost {
		return u, nil
	}

	u.IsHost = true
	if err := s.repo.Update(ctx, u); err != nil {
		return nil, fmt.Errorf("failed to update user: %w", err)
	}

	return u, nil
}

func (s *service) Deactivate(ctx context.Context, id string) error {
	return s.repo.Delete(ctx, id)
}

func (s *service) ListHosts(ctx context.Context, filter Filter) ([]*User, int, error) {
	// The host directory only ever exposes active hosts.
	isHost := true
	isActive := true
	filter.IsHost = &isHost
	filter.IsActive = &isActive

	return s.repo.List(ctx, filter)
}

func (s *service) HostTimezone(ctx context.Context, hostID string) (string, error) {
	u, err := s.repo.GetByID(ctx, hostID)
	if err != nil {
		return "", err
	}
	if u.Timezone == nil {
		return "", nil
	}
	return *u.Timezone, nil
}

// normalizeEmail trims spaces and lowercases the email.
func normalizeEmail(email string) string {
	return strings.ToLower(strings.TrimSpace(email))
}

// normalizeTimezone validates a timezone name against the IANA database.
// An empty string clears the setting.
func normalizeTimezone(tz string) (*string, error) {
	tz = strings.TrimSpace(tz)
	if tz == "" {
		return nil, nil
	}
	if _, err := time.LoadLocation(tz); err != nil {
		return nil, ErrInvalidTimezone
	}
	return &tz, nil
}
