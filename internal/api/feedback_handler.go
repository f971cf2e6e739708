package api

import (
	"errors"
	"net/http"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// FeedbackHandler exposes feedback submission for everyone and moderation for
// the admin. The admin check is enforced at both the route (RoleMiddleware)
// and the service, so neither layer alone is load-bearing.
type FeedbackHandler struct {
	feedbackService service.FeedbackService
}

// NewFeedbackHandler creates a new FeedbackHandler.
func NewFeedbackHandler(feedbackService service.FeedbackService) *FeedbackHandler {
	return &FeedbackHandler{feedbackService: feedbackService}
}

// --- Request/Response Structs ---

type SubmitFeedbackRequest struct {
	Message string `json:"message" binding:"required"`
}

type SetAddressedRequest struct {
	Addressed *bool `json:"addressed" binding:"required"`
}

// Submit appends one feedback row. If the caller is signed in, their email is
// attached from the token; anonymous submissions are allowed.
func (h *FeedbackHandler) Submit(c *gin.Context) {
	var req SubmitFeedbackRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	// Email attribution from the token if present; feedback is open to guests.
	email := ""
	if raw, exists := c.Get(ContextUserEmailKey); exists {
		if s, ok := raw.(string); ok {
			email = s
		}
	}

	item, err := h.feedbackService.Submit(c.Request.Context(), req.Message, email)
	if err != nil {
		if errors.Is(err, service.ErrFeedbackEmpty) {
			abortWithError(c, http.StatusBadRequest, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to submit feedback.")
		}
		return
	}

	c.JSON(http.StatusCreated, item)
}

// List returns all feedback, newest first. Admin only.
func (h *FeedbackHandler) List(c *gin.Context) {
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}

	items, err := h.feedbackService.List(c.Request.Context(), role)
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to list feedback.")
		}
		return
	}

	if items == nil {
		items = []domain.FeedbackItem{}
	}
	c.JSON(http.StatusOK, items)
}

// SetAddressed flips the addressed flag on one feedback row. Admin only.
func (h *FeedbackHandler) SetAddressed(c *gin.Context) {
	role, err := getUserRoleFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user role from token.")
		return
	}

	id, err := primitive.ObjectIDFromHex(c.Param("id"))
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid feedback ID format.")
		return
	}

	var req SetAddressedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	err = h.feedbackService.SetAddressed(c.Request.Context(), role, id, *req.Addressed)
	if err != nil {
		if errors.Is(err, service.ErrNotAdmin) {
			abortWithError(c, http.StatusForbidden, err.Error())
		} else if errors.Is(err, service.ErrFeedbackNotFound) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to update feedback.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}
