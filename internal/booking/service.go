package booking

import (
	"context"

	"github.com/lunamochi/meeting-scheduler-backend/internal/meetingtype"
	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
)

type CreateRequest struct {
	MeetingTypeID string
	Title         *string
	Notes         *string
	Start         string // RFC 3339 or zone-less local time
	End           string
	Attendees     []scheduling.Attendee
}

type Service interface {
	// Create validates the request against the host's schedule and the
	// meeting type's rules, then books the slot. A non-nil ValidationResult
	// with IsValid false means the request was rejected by business rules;
	// the booking is nil in that case and err is nil too.
	Create(ctx context.Context, clientID string, req CreateRequest) (*Booking, *scheduling.ValidationResult, error)

	// Validate is the dry-run counterpart of Create. Nothing is written.
	Validate(ctx context.Context, req CreateRequest) (*scheduling.ValidationResult, error)

	GetByID(ctx context.Context, requesterID, id string) (*Booking, error)
	List(ctx context.Context, filter Filter) ([]*Booking, int, error)
	Cancel(ctx context.Context, requesterID, id string) (*Booking, error)
	UpdateStatus(ctx context.Context, requesterID, id string, status Status) (*Booking, error)
	Reschedule(ctx context.Context, requesterID, id, start, end string) (*Booking, *scheduling.ValidationResult, error)
}

type service struct {
	repo      Repository
	mtService meetingtype.Service
	engine    *scheduling.Engine
}

func NewService(repo Repository, mtService meetingtype.Service, engine *scheduling.Engine) Service {
	return &service{
		repo:      repo,
		mtService: mtService,
		engine:    engine,
	}
}

func (s *service) Create(ctx context.Context, clientID string, req CreateRequest) (*Booking, *scheduling.ValidationResult, error) {
	mt, err := s.mtService.GetByID(ctx, req.MeetingTypeID)
	if err != nil {
		return nil, nil, err
	}
	if !mt.IsActive {
		return nil, nil, ErrInactiveType
	}

	result, err := s.engine.ValidateBookingRequest(ctx, scheduling.ValidationRequest{
		HostID:    mt.HostID,
		Rules:     mt.Rules(),
		Start:     req.Start,
		End:       req.End,
		Attendees: req.Attendees,
	})
	if err != nil {
		return nil, nil, err
	}
	if !result.IsValid {
		return nil, result, nil
	}

	b := &Booking{
		MeetingTypeID: mt.ID,
		HostID:        mt.HostID,
		ClientID:      clientID,
		Title:         req.Title,
		Notes:         req.Notes,
		Attendees:     req.Attendees,
		StartTime:     result.Start,
		EndTime:       result.End,
		Status:        StatusPending,
	}

	// The conflict check above is advisory; the table's exclusion constraint
	// settles races, surfacing here as ErrTimeConflict.
	if err := s.repo.Create(ctx, b); err != nil {
		return nil, nil, err
	}

	b.MeetingTypeName = mt.Name
	return b, result, nil
}

func (s *service) Validate(ctx context.Context, req CreateRequest) (*scheduling.ValidationResult, error) {
	mt, err := s.mtService.GetByID(ctx, req.MeetingTypeID)
	if err != nil {
		return nil, err
	}
	if !mt.IsActive {
		return nil, ErrInactiveType
	}

	return s.engine.ValidateBookingRequest(ctx, scheduling.ValidationRequest{
		HostID:    mt.HostID,
		Rules:     mt.Rules(),
		Start:     req.Start,
		End:       req.End,
		Attendees: req.Attendees,
	})
}

func (s *service) GetByID(ctx context.Context, requesterID, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParticipant(b, requesterID) {
		return nil, ErrPermissionDenied
	}
	return b, nil
}

func (s *service) List(ctx context.Context, filter Filter) ([]*Booking, int, error) {
	return s.repo.List(ctx, filter)
}

func (s *service) Cancel(ctx context.Context, requesterID, id string) (*Booking, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if !isParticipant(b, requesterID) {
		return nil, ErrPermissionDenied
	}
	if b.Status.IsFinal() {
		return nil, ErrBookingFinalized
	}

	b.Status = StatusCancelled
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) UpdateStatus(ctx context.Context, requesterID, id string, status Status) (*Booking, error) {
	if !IsValidStatus(status) {
		return nil, ErrInvalidStatus
	}

	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	// Clients may only cancel; every other transition belongs to the host.
	if b.HostID != requesterID {
		if b.ClientID == requesterID && status == StatusCancelled {
			return s.Cancel(ctx, requesterID, id)
		}
		return nil, ErrPermissionDenied
	}
	if b.Status.IsFinal() {
		return nil, ErrBookingFinalized
	}

	b.Status = status
	if err := s.repo.Update(ctx, b); err != nil {
		return nil, err
	}
	return b, nil
}

func (s *service) Reschedule(ctx context.Context, requesterID, id, start, end string) (*Booking, *scheduling.ValidationResult, error) {
	b, err := s.repo.GetByID(ctx, id)
	if err != nil {
		return nil, nil, err
	}
	if !isParticipant(b, requesterID) {
		return nil, nil, ErrPermissionDenied
	}
	if b.Status.IsFinal() {
		return nil, nil, ErrBookingFinalized
	}

	mt, err := s.mtService.GetByID(ctx, b.MeetingTypeID)
	if err != nil {
		return nil, nil, err
	}

	// Re-run the full validation with the booking itself excluded so its
	// current slot does not count as a conflict.
	result, err := s.engine.ValidateBookingRequest(ctx, scheduling.ValidationRequest{
		HostID:           b.HostID,
		Rules:            mt.Rules(),
		Start:            start,
		End:              end,
		Attendees:        b.Attendees,
		ExcludeBookingID: b.ID,
	})
	if err != nil {
		return nil, nil, err
	}
	if !result.IsValid {
		return nil, result, nil
	}

	b.StartTime = result.Start
	b.EndTime = result.End
	b.Status = StatusRescheduled

	if err := s.repo.Update(ctx, b); err != nil {
		return nil, nil, err
	}
	return b, result, nil
}

func isParticipant(b *Booking, userID string) bool {
	return b.HostID == userID || b.ClientID == userID
}
