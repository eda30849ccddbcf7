package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/lunamochi/meeting-scheduler-backend/internal/meetingtype"
	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/request"
	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/response"
	"github.com/lunamochi/meeting-scheduler-backend/internal/scheduling"
)

type Handler struct {
	engine    *scheduling.Engine
	mtService meetingtype.Service
}

func NewHandler(engine *scheduling.Engine, mtService meetingtype.Service) *Handler {
	return &Handler{
		engine:    engine,
		mtService: mtService,
	}
}

// Slots lists a host's day as bookable and non-bookable slots. The duration
// comes from the meeting type when one is given, otherwise from the
// duration_minutes parameter.
func (h *Handler) Slots(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var req SlotsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	duration := req.DurationMinutes
	if req.MeetingTypeID != "" {
		mt, err := h.mtService.GetByID(c.Request.Context(), req.MeetingTypeID)
		if err != nil {
			response.Error(c, err)
			return
		}
		duration = mt.DurationMinutes
	}
	if duration <= 0 {
		c.JSON(http.StatusBadRequest, gin.H{"error": "either meeting_type_id or duration_minutes is required"})
		return
	}

	date, err := time.Parse("2006-01-02", req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	listing, err := h.engine.GetAvailableSlots(c.Request.Context(), uri.ID, date, duration, req.Timezone)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, listing)
}
