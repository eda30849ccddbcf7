package meetingtype

import (
	"context"
	"strings"
)

type CreateRequest struct {
	Name                  string
	Description           *string
	DurationMinutes       int
	BufferBeforeMinutes   int
	BufferAfterMinutes    int
	MaxBookingsPerDay     int
	RequiredNoticeMinutes int
	MaxAttendees          int
}

type UpdateRequest struct {
	Name                  *string
	Description           *string
	DurationMinutes       *int
	BufferBeforeMinutes   *int
	BufferAfterMinutes    *int
	MaxBookingsPerDay     *int
	RequiredNoticeMinutes *int
	MaxAttendees          *int
	IsActive              *bool
}

type Service interface {
	Create(ctx context.Context, hostID string, req CreateRequest) (*MeetingType, error)
	GetByID(ctx context.Context, id string) (*MeetingType, error)
	List(ctx context.Context, filter Filter) ([]*MeetingType, int, error)
	Update(ctx context.Context, hostID, id string, req UpdateRequest) (*MeetingType, error)
	Delete(ctx context.Context, hostID, id string) error
}

type service struct {
	repo Repository
}

func NewService(repo Repository) Service {
	return &service{repo: repo}
}

func (s *service) Create(ctx context.Context, hostID string, req CreateRequest) (*MeetingType, error) {
	if strings.TrimSpace(req.Name) == "" {
		return nil, ErrEmptyName
	}
	if req.DurationMinutes <= 0 {
		return nil, ErrInvalidDuration
	}
	if req.BufferBeforeMinutes < 0 || req.BufferAfterMinutes < 0 {
		return nil, ErrInvalidBuffer
	}
	if req.MaxBookingsPerDay < 0 || req.RequiredNoticeMinutes < 0 || req.MaxAttendees < 0 {
		return nil, ErrInvalidLimit
	}

	mt := &MeetingType{
		HostID:                hostID,
		Name:                  strings.TrimSpace(req.Name),
		Description:           req.Description,
		DurationMinutes:       req.DurationMinutes,
		BufferBeforeMinutes:   req.BufferBeforeMinutes,
		BufferAfterMinutes:    req.BufferAfterMinutes,
		MaxBookingsPerDay:     req.MaxBookingsPerDay,
		RequiredNoticeMinutes: req.RequiredNoticeMinutes,
		MaxAttendees:          req.MaxAttendees,
		IsActive:              true,
	}

	if err := s.repo.Create(ctx, mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (s *service) GetByID(ctx context.Context, id string) (*MeetingType, error) {
	return s.repo.GetByID(ctx, id)
}

func (s *service) List(ctx context.Context, filter Filter) ([]*MeetingType, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Update(ctx context.Context, hostID, id string, req UpdateRequest) (*MeetingType, error) {
	mt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if mt.HostID != hostID {
		return nil, ErrPermissionDenied
	}

	if req.Name != nil {
		if strings.TrimSpace(*req.Name) == "" {
			return nil, ErrEmptyName
		}
		mt.Name = strings.TrimSpace(*req.Name)
	}
	if req.Description != nil {
		mt.Description = req.Description
	}
	if req.DurationMinutes != nil {
		if *req.DurationMinutes <= 0 {
			return nil, ErrInvalidDuration
		}
		mt.DurationMinutes = *req.DurationMinutes
	}
	if req.BufferBeforeMinutes != nil {
		if *req.BufferBeforeMinutes < 0 {
			return nil, ErrInvalidBuffer
		}
		mt.BufferBeforeMinutes = *req.BufferBeforeMinutes
	}
	if req.BufferAfterMinutes != nil {
		if *req.BufferAfterMinutes < 0 {
			return nil, ErrInvalidBuffer
		}
		mt.BufferAfterMinutes = *req.BufferAfterMinutes
	}
	if req.MaxBookingsPerDay != nil {
		if *req.MaxBookingsPerDay < 0 {
			return nil, ErrInvalidLimit
		}
		mt.MaxBookingsPerDay = *req.MaxBookingsPerDay
	}
	if req.RequiredNoticeMinutes != nil {
		if *req.RequiredNoticeMinutes < 0 {
			return nil, ErrInvalidLimit
		}
		mt.RequiredNoticeMinutes = *req.RequiredNoticeMinutes
	}
	if req.MaxAttendees != nil {
		if *req.MaxAttendees < 0 {
			return nil, ErrInvalidLimit
		}
		mt.MaxAttendees = *req.MaxAttendees
	}
	if req.IsActive != nil {
		mt.IsActive = *req.IsActive
	}

	if err := s.repo.Update(ctx, mt); err != nil {
		return nil, err
	}
	return mt, nil
}

func (s *service) Delete(ctx context.Context, hostID, id string) error {
	mt, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if mt.HostID != hostID {
		return ErrPermissionDenied
	}
	return s.repo.Delete(ctx, id)
}
