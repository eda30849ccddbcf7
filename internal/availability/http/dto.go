package http

import (
	"time"

	"github.com/lunamochi/meeting-scheduler-backend/internal/availability"
	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/request"
)

type RuleResponse struct {
	ID          string     `json:"id"`
	HostID      string     `json:"host_id"`
	Kind        string     `json:"kind"`
	DayOfWeek   *int       `json:"day_of_week,omitempty"`
	Date        *string    `json:"date,omitempty"`
	StartTime   string     `json:"start_time"`
	EndTime     string     `json:"end_time"`
	IsBlocked   bool       `json:"is_blocked"`
	BlockReason *string    `json:"block_reason,omitempty"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   time.Time  `json:"updated_at"`
}

func NewResponse(r *availability.Rule) RuleResponse {
	var date *string
	if r.Date != nil {
		d := r.Date.Format("2006-01-02")
		date = &d
	}

	return RuleResponse{
		ID:          r.ID,
		HostID:      r.HostID,
		Kind:        string(r.Kind),
		DayOfWeek:   r.DayOfWeek,
		Date:        date,
		StartTime:   r.StartTime,
		EndTime:     r.EndTime,
		IsBlocked:   r.IsBlocked,
		BlockReason: r.BlockReason,
		CreatedAt:   r.CreatedAt,
		UpdatedAt:   r.UpdatedAt,
	}
}

type ListRulesRequest struct {
	request.ListParams
	HostID    string `form:"host_id" binding:"omitempty,uuid"`
	Kind      string `form:"kind" binding:"omitempty,oneof=recurring date_specific"`
	IsBlocked *bool  `form:"is_blocked"`
}

func (r *ListRulesRequest) Validate() error {
	return nil
}

type CreateRequest struct {
	Kind        string  `json:"kind" binding:"required,oneof=recurring date_specific"`
	DayOfWeek   *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime   string  `json:"start_time" binding:"required"`
	EndTime     string  `json:"end_time" binding:"required"`
	IsBlocked   bool    `json:"is_blocked"`
	BlockReason *string `json:"block_reason"`
}

func (r *CreateRequest) Validate() error {
	return nil
}

type UpdateRequest struct {
	DayOfWeek   *int    `json:"day_of_week" binding:"omitempty,min=0,max=6"`
	Date        *string `json:"date" binding:"omitempty,datetime=2006-01-02"`
	StartTime   *string `json:"start_time"`
	EndTime     *string `json:"end_time"`
	IsBlocked   *bool   `json:"is_blocked"`
	BlockReason *string `json:"block_reason"`
}

func (r *UpdateRequest) Validate() error {
	return nil
}
