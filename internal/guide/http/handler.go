package http

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/wandertrails/guide-booking-backend/internal/auth"
	"github.com/wandertrails/guide-booking-backend/internal/guide"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/request"
	"github.com/wandertrails/guide-booking-backend/internal/pkg/response"
	"github.com/wandertrails/guide-booking-backend/internal/user"
)

type Handler struct {
	service guide.Service
}

func NewHandler(service guide.Service) *Handler {
	return &Handler{service: service}
}

// Register creates a guide profile for the authenticated user.
func (h *Handler) Register(c *gin.Context) {
	var body RegisterGuideRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	actor := auth.CurrentActor(c)
	if actor.UserID == "" {
		c.JSON(http.StatusUnauthorized, gin.H{"error": "unauthorized"})
		return
	}

	g, err := h.service.Register(c.Request.Context(), actor.UserID, guide.RegisterRequest{
		Bio:             body.Bio,
		City:            body.City,
		HourlyRateCents: RateToCents(body.HourlyRate),
	})
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusCreated, NewGuideResponse(g))
}

// List returns guides matching the filters.
// Unauthenticated and non-admin callers only ever see approved guides.
func (h *Handler) List(c *gin.Context) {
	var req ListGuidesRequest
	if err := c.ShouldBindQuery(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid query parameters", "details": err.Error()})
		return
	}
	req.Normalize()

	filter := guide.Filter{
		City:       req.City,
		IsApproved: req.IsApproved,
		Page:       req.Page,
		PageSize:   req.PageSize,
	}

	if auth.GetRole(c) != user.RoleAdmin {
		approved := true
		filter.IsApproved = &approved
	}

	guides, total, err := h.service.List(c.Request.Context(), filter)
	if err != nil {
		response.Error(c, err)
		return
	}

	items := make([]GuideResponse, len(guides))
	for i, g := range guides {
		items[i] = NewGuideResponse(g)
	}

	c.JSON(http.StatusOK, response.NewPageResponse(items, req.Page, req.PageSize, total))
}

// Get returns a single guide by ID.
func (h *Handler) Get(c *gin.Context) {
	var req request.ByIDRequest
	if err := c.ShouldBindUri(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	g, err := h.service.GetByID(c.Request.Context(), req.ID)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewGuideResponse(g))
}

// Update modifies a guide profile. Owner or admin only.
func (h *Handler) Update(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body UpdateGuideRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	req := guide.UpdateRequest{
		Bio:  body.Bio,
		City: body.City,
	}
	if body.HourlyRate != nil {
		cents := RateToCents(*body.HourlyRate)
		req.HourlyRateCents = &cents
	}

	g, err := h.service.Update(c.Request.Context(), uri.ID, req, auth.CurrentActor(c))
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewGuideResponse(g))
}

// SetApproval flips the admin approval flag for a guide.
func (h *Handler) SetApproval(c *gin.Context) {
	var uri request.ByIDRequest
	if err := c.ShouldBindUri(&uri); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid UUID"})
		return
	}

	var body SetApprovalRequest
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request body", "details": err.Error()})
		return
	}

	g, err := h.service.SetApproval(c.Request.Context(), uri.ID, *body.IsApproved)
	if err != nil {
		response.Error(c, err)
		return
	}

	c.JSON(http.StatusOK, NewGuideResponse(g))
}

// Delete removes a guide profile. Owner or admin only.
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
