package api

import (
	"errors"
	"io"
	"net/http"

	"bertmill/hyrox-app/internal/service"

	"github.com/gin-gonic/gin"
	"go.mongodb.org/mongo-driver/bson/primitive"
)

// SessionHandler exposes per-user completion state and notes, plus the SSE
// push channel that keeps a second tab or device converged.
type SessionHandler struct {
	sessionService service.SessionService
}

// NewSessionHandler creates a new SessionHandler.
func NewSessionHandler(sessionService service.SessionService) *SessionHandler {
	return &SessionHandler{sessionService: sessionService}
}

// --- Request/Response Structs ---

type CompletedResponse struct {
	Completed []string `json:"completed"`
}

type ToggleResponse struct {
	SessionID string `json:"sessionId"`
	Completed bool   `json:"completed"`
}

type SaveNoteRequest struct {
	// Whitespace-only text deletes the note, so no binding restriction here.
	Note string `json:"note"`
}

type NotesResponse struct {
	Notes map[string]string `json:"notes"`
}

// userIDFromToken resolves the authenticated user's ObjectID.
func userIDFromToken(c *gin.Context) (primitive.ObjectID, bool) {
	idStr, err := getUserIDFromContext(c)
	if err != nil {
		abortWithError(c, http.StatusUnauthorized, "Unable to identify user from token.")
		return primitive.NilObjectID, false
	}
	id, err := primitive.ObjectIDFromHex(idStr)
	if err != nil {
		abortWithError(c, http.StatusBadRequest, "Invalid user ID format in token.")
		return primitive.NilObjectID, false
	}
	return id, true
}

// GetCompleted returns the session IDs the user has marked done.
func (h *SessionHandler) GetCompleted(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}

	ids, err := h.sessionService.LoadCompleted(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load completed sessions.")
		return
	}
	if ids == nil {
		ids = []string{}
	}
	c.JSON(http.StatusOK, CompletedResponse{Completed: ids})
}

// ToggleCompletion flips the done mark for one session. The response reports
// the new state; on failure neither store nor cache moved, and the client
// gets a real error status rather than a silent no-op.
func (h *SessionHandler) ToggleCompletion(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}
	sessionID := c.Param("id")

	completed, err := h.sessionService.ToggleCompletion(c.Request.Context(), userID, sessionID)
	if err != nil {
		if errors.Is(err, service.ErrUnknownSession) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to toggle session completion.")
		}
		return
	}

	c.JSON(http.StatusOK, ToggleResponse{SessionID: sessionID, Completed: completed})
}

// GetNotes returns the user's notes keyed by session id.
func (h *SessionHandler) GetNotes(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}

	notes, err := h.sessionService.LoadNotes(c.Request.Context(), userID)
	if err != nil {
		abortWithError(c, http.StatusInternalServerError, "Failed to load notes.")
		return
	}
	if notes == nil {
		notes = map[string]string{}
	}
	c.JSON(http.StatusOK, NotesResponse{Notes: notes})
}

// SaveNote upserts (or, for whitespace-only text, deletes) the note for one
// session.
func (h *SessionHandler) SaveNote(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}
	sessionID := c.Param("id")

	var req SaveNoteRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	if err := h.sessionService.SaveNote(c.Request.Context(), userID, sessionID, req.Note); err != nil {
		if errors.Is(err, service.ErrUnknownSession) {
			abortWithError(c, http.StatusNotFound, err.Error())
		} else {
			abortWithError(c, http.StatusInternalServerError, "Failed to save note.")
		}
		return
	}

	c.Status(http.StatusNoContent)
}

// StreamEvents is the push channel: an SSE stream of the user's completion
// changes. The subscription is torn down as soon as the client disconnects.
func (h *SessionHandler) StreamEvents(c *gin.Context) {
	userID, ok := userIDFromToken(c)
	if !ok {
		return
	}

	subID, events := h.sessionService.Subscribe(userID)
	defer h.sessionService.Unsubscribe(userID, subID)

	c.Header("Content-Type", "text/event-stream")
	c.Header("Cache-Control", "no-cache")
	c.Header("Connection", "keep-alive")

	c.Stream(func(w io.Writer) bool {
		select {
		case event, open := <-events:
			if !open {
				return false
			}
			c.SSEvent("completion", event)
			return true
		case <-c.Request.Context().Done():
			return false
		}
	})
}
