package http

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/booking"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/request"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/response"
)

type Handler struct {
	service booking.Service
}

func NewHandler(service booking.Service) *Handler {
	return &Handler{service: service}
}

// Create books a guide for a time window on a future date.
func (h *Handler) Create(c *gin.Context) {
	var body CreateBookingRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, body.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	window, err := booking.ParseTimeWindow(body.StartTime, body.EndTime)
	if err != nil {
		response.Error(c, err)
		return
	}

	actor := auth.CurrentActor(c)
	if actor.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	b, err := h.service.Create(c.Request.Context(), booking.CreateRequest{
		GuideID: body.GuideID,
		Date:    date,
		Window:  window,
		Notes:   body.Notes,
	}, actor)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewBookingResponse(b))
}

// List returns bookings visible to the actor. Regular users see their own
// bookings, guides see bookings against their profile, admins see all.
func (h *Handler) List(c *gin.Context) {
	var req ListBookingsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := booking.Filter{
		UserID:   req.UserID,
		GuideID:  req.GuideID,
		Status:   req.Status,
		Page:     req.Page,
		PageSize: req.PageSize,
	}
	if req.DateFrom != "" {
		from, err := time.Parse(dateLayout, req.DateFrom)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_from must be in YYYY-MM-DD format"})
			return
		}
		filter.DateFrom = &from
	}
	if req.DateTo != "" {
		to, err := time.Parse(dateLayout, req.DateTo)
		if err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "date_to must be in YYYY-MM-DD format"})
			return
		}
		filter.DateTo = &to
	}

	bookings, total, err := h.service.List(c.Request.Context(), filter, auth.CurrentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]BookingResponse, len(bookings))
	for i, b := range bookings {
		items[i] = NewBookingResponse(b)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns a single booking. Owner, owning guide or admin only.
func (h *Handler) Get(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	b, err := h.service.GetByID(c.Request.Context(), uri.ID, auth.CurrentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// UpdateStatus moves a booking along its status lifecycle, optionally
// replacing its notes in the same write.
func (h *Handler) UpdateStatus(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateBookingStatusRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	target, err := booking.ParseStatus(body.Status)
	if err != nil {
		response.Error(c, err)
		return
	}

	b, err := h.service.UpdateStatus(c.Request.Context(), uri.ID, target, body.Notes, auth.CurrentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewBookingResponse(b))
}

// Delete removes a pending or cancelled booking. Owner or admin only.
func (h *Handler) Delete(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	if err := h.service.Delete(c.Request.Context(), uri.ID, auth.CurrentActor(c)); err != nil {
		response.Error(c, err)
		return
	}

	c.Status(http.StatusNoContent)
}

// Availability returns the guide's free slots on a date.
func (h *Handler) Availability(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var req AvailabilityRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}

	date, err := time.Parse(dateLayout, req.Date)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "date must be in YYYY-MM-DD format"})
		return
	}

	slots, err := h.service.AvailableSlots(c.Request.Context(), uri.ID, date)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"date":  req.Date,
		"slots": NewSlotResponses(slots),
	})
}
