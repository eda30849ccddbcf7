package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/lunamochi/meeting-scheduler-backend/internal/auth"
	"github.com/lunamochi/meeting-scheduler-backend/internal/meetingtype"
	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/request"
	"github.com/lunamochi/meeting-scheduler-backend/internal/pkg/response"
)

type Handler struct {
	service meetingtype.Service
}

func NewHandler(service meetingtype.Service) *Handler {
	return &Handler{service: service}
}

func (h *Handler) List(c *gin.Context) {
	var req ListMeetingTypesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	if err := req.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	filter := meetingtype.Filter{
		HostID:   req.HostID,
		IsActive: req.IsActive,
		Page:     req.Page,
		PageSize: req.PageSize,
	}

	types, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]MeetingTypeResponse, len(types))
	for i, mt := range types {
		items[i] = NewResponse(mt)
	}

	resp := response.NewPageResponse(items, req.Page, req.PageSize, total)
	c.JSON(http.StatusOK, resp)
}

func (h *Handler) Create(c *gin.Context) {
	hostID := auth.GetUserID(c)
	if hostID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var body CreateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := meetingtype.CreateRequest{
		Name:                  body.Name,
		Description:           body.Description,
		DurationMinutes:       body.DurationMinutes,
		BufferBeforeMinutes:   body.BufferBeforeMinutes,
		BufferAfterMinutes:    body.BufferAfterMinutes,
		MaxBookingsPerDay:     body.MaxBookingsPerDay,
		RequiredNoticeMinutes: body.RequiredNoticeMinutes,
		MaxAttendees:          body.MaxAttendees,
	}

	mt, err := h.service.Create(c.Request.Context(), hostID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewResponse(mt))
}

func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	mt, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(mt))
}

func (h *Handler) Update(c *gin.Context) {
	hostID := auth.GetUserID(c)
	if hostID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	var body UpdateRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	if err := body.Validate(); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	req := meetingtype.UpdateRequest{
		Name:                  body.Name,
		Description:           body.Description,
		DurationMinutes:       body.DurationMinutes,
		BufferBeforeMinutes:   body.BufferBeforeMinutes,
		BufferAfterMinutes:    body.BufferAfterMinutes,
		MaxBookingsPerDay:     body.MaxBookingsPerDay,
		RequiredNoticeMinutes: body.RequiredNoticeMinutes,
		MaxAttendees:          body.MaxAttendees,
		IsActive:              body.IsActive,
	}

	mt, err := h.service.Update(c.Request.Context(), hostID, uri.ID, req)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewResponse(mt))
}

func (h *Handler) Delete(c *gin.Context) {
	hostID := auth.GetUserID(c)
	if hostID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request", "details": err.Error()})
		return
	}

	if err := h.service.Delete(c.Request.Context(), hostID, req.ID); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}
