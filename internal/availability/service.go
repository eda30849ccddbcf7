package availability

import (
	"context"
	"time"
)

type CreateRequest struct {
	Kind        Kind
	DayOfWeek   *int
	Date        *time.Time
	StartTime   string
	EndTime     string
	IsBlocked   bool
	BlockReason *string
}

type UpdateRequest struct {
	DayOfWeek   *int
	Date        *time.Time
	StartTime   *string
	EndTime     *string
	IsBlocked   *bool
	BlockReason *string
}

type Service interface {
	Create(ctx context.Context, hostID string, req CreateRequest) (*Rule, error)
	GetByID(ctx context.Context, id string) (*Rule, error)
	List(ctx context.Context, filter Filter) ([]*Rule, int, error)
	Update(ctx context.Context, hostID, id string, req UpdateRequest) (*Rule, error)
	Delete(ctx context.Context, hostID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, hostID string, req CreateRequest) (*Rule, error) {
	rule := &Rule{
		HostID:      hostID,
		Kind:        req.Kind,
		DayOfWeek:   req.DayOfWeek,
		Date:        req.Date,
		StartTime:   req.StartTime,
		EndTime:     req.EndTime,
		IsBlocked:   req.IsBlocked,
		BlockReason: req.BlockReason,
	}

	if err := validateRule(rule); err != nil {
		return nil, err
	}

	if err := s.repo.Create(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*Rule, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Rule, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, hostID, id string, req UpdateRequest) (*Rule, error) {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if rule.HostID != hostID {
		return nil, ErrPermissionDenied
	}

	if req.DayOfWeek != nil {
		rule.DayOfWeek = req.DayOfWeek
	}
	if req.Date != nil {
		rule.Date = req.Date
	}
	if req.StartTime != nil {
		rule.StartTime = *req.StartTime
	}
	if req.EndTime != nil {
		rule.EndTime = *req.EndTime
	}
	if req.IsBlocked != nil {
		rule.IsBlocked = *req.IsBlocked
	}
	if req.BlockReason != nil {
		rule.BlockReason = req.BlockReason
	}

	if err := validateRule(rule); err != nil {
		return nil, err
	}

	if err := s.repo.Update(ctx, rule); err != nil {
		return nil, err
	}
	return rule, nil
}

func (s *service) Delete(ctx context.Context, hostID, id string) error {
	rule, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if rule.HostID != hostID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}

// validateRule enforces the structural invariants: a valid kind with its
// matching day field, well-formed clocks and start strictly before end.
// Overnight windows are rejected, a host models them as two rules.
func validateRule(rule *Rule) error {
	switch rule.Kind {
	case KindRecurring:
		if rule.DayOfWeek == nil {
			return ErrMissingDay
		}
		if *rule.DayOfWeek < 0 || *rule.DayOfWeek > 6 {
			return ErrInvalidDayOfWeek
		}
	case KindDateSpecific:
		if rule.Date == nil {
			return ErrMissingDay
		}
	default:
		return ErrInvalidKind
	}

	sh, sm, err := ParseClock(rule.StartTime)
	if err != nil {
		return err
	}
	eh, em, err := ParseClock(rule.EndTime)
	if err != nil {
		return err
	}
	if sh*60+sm >= eh*60+em {
		return ErrInvalidTimeRange
	}

	return nil
}
