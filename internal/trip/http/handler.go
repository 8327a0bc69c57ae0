package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/request"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/response"
	"github.com/wandertrails/guide-booking-backend/internal/trip"
)

type Handler struct {
	service trip.Service
}

func NewHandler(service trip.Service) *Handler {
	return &Handler{service: service}
}

// Create publishes a new trip listing for the actor's guide profile.
func (h *Handler) Create(c *gin.Context) {
	var body CreateTripRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor := auth.CurrentActor(c)
	if actor.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	t, err := h.service.Create(c.Request.Context(), actor, trip.CreateRequest{
		Title:         body.Title,
		Description:   body.Description,
		City:          body.City,
		DurationHours: body.DurationHours,
		PriceCents:    priceToCents(body.Price),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewTripResponse(t))
}

// List returns trips matching the filters.
func (h *Handler) List(c *gin.Context) {
	var req ListTripsRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	trips, total, err := h.service.List(c.Request.Context(), trip.Filter{
		GuideID:  req.GuideID,
		City:     req.City,
		Page:     req.Page,
		PageSize: req.PageSize,
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]TripResponse, len(trips))
	for i, t := range trips {
		items[i] = NewTripResponse(t)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns a single trip by ID.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	t, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTripResponse(t))
}

// Update modifies a trip listing. Owning guide or admin only.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateTripRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := trip.UpdateRequest{
		Title:         body.Title,
		Description:   body.Description,
		City:          body.City,
		DurationHours: body.DurationHours,
	}
	if body.Price != nil {
		cents := priceToCents(*body.Price)
		req.PriceCents = &cents
	}

	t, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.CurrentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewTripResponse(t))
}

// Delete removes a trip listing. Owning guide or admin only.
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
