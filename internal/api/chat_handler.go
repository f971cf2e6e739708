package api

import (
	"context"
	"errors"
	"log"
	"net/http"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/llm"
	"bertmill/hyrox-app/internal/service"

	"github.com/gin-gonic/gin"
)

// ChatHandler is the HTTP face of the chat relay. It holds no per-request
// state: the caller resends its whole conversation each time and the
// response is either one JSON message or an unframed token stream.
type ChatHandler struct {
	coachService service.CoachService
}

// NewChatHandler creates a new ChatHandler.
func NewChatHandler(coachService service.CoachService) *ChatHandler {
	return &ChatHandler{coachService: coachService}
}

// --- Request/Response Structs ---

type ChatRequest struct {
	Messages       []domain.ChatMessage `json:"messages" binding:"required,min=1"`
	WorkoutContext string               `json:"workoutContext"`
}

type KnowledgeChatRequest struct {
	Messages []domain.ChatMessage `json:"messages" binding:"required,min=1"`
}

type ChatResponse struct {
	Message string `json:"message"`
}

// Chat is the single-shot variant: wait for the full completion, respond once.
func (h *ChatHandler) Chat(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	message, err := h.coachService.Ask(c.Request.Context(), req.Messages, req.WorkoutContext)
	if err != nil {
		if errors.Is(err, llm.ErrNotConfigured) {
			abortWithError(c, http.StatusInternalServerError, "OpenAI API key not configured")
			return
		}
		log.Printf("ERROR: Chat completion failed: %v", err)
		abortWithError(c, http.StatusInternalServerError, "Failed to get response")
		return
	}

	c.JSON(http.StatusOK, ChatResponse{Message: message})
}

// ChatStream is the streaming variant: tokens are relayed to the caller as
// raw text the moment the upstream produces them.
func (h *ChatHandler) ChatStream(c *gin.Context) {
	var req ChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.relayStream(c, func(ctx context.Context, fn func(string) error) error {
		return h.coachService.AskStream(ctx, req.Messages, req.WorkoutContext, fn)
	})
}

// KnowledgeChat streams against the fixed Hyrox knowledge prompt; the caller
// supplies only the conversation.
func (h *ChatHandler) KnowledgeChat(c *gin.Context) {
	var req KnowledgeChatRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		abortWithError(c, http.StatusBadRequest, "Validation error: "+err.Error())
		return
	}

	h.relayStream(c, func(ctx context.Context, fn func(string) error) error {
		return h.coachService.KnowledgeStream(ctx, req.Messages, fn)
	})
}

// relayStream forwards upstream tokens to the caller's connection as an
// unframed text/plain body, flushing after every token. Failures before the
// first byte still get a structured JSON error; once streaming has begun the
// only signal left is an early end of body, and the caller's disconnect
// cancels the upstream read through the request context.
func (h *ChatHandler) relayStream(c *gin.Context, stream func(ctx context.Context, fn func(string) error) error) {
	wroteAny := false

	err := stream(c.Request.Context(), func(token string) error {
		if !wroteAny {
			c.Header("Content-Type", "text/plain; charset=utf-8")
			c.Status(http.StatusOK)
			wroteAny = true
		}
		if _, err := c.Writer.WriteString(token); err != nil {
			return err
		}
		c.Writer.Flush()
		return nil
	})

	if err != nil {
		if !wroteAny {
			if errors.Is(err, llm.ErrNotConfigured) {
				abortWithError(c, http.StatusInternalServerError, "OpenAI API key not configured")
				return
			}
			log.Printf("ERROR: Chat stream failed before first token: %v", err)
			abortWithError(c, http.StatusInternalServerError, "Failed to get response")
			return
		}
		// Mid-stream failure: the body simply ends early. The transport has
		// no way to signal an error once raw text has been written.
		if !errors.Is(err, context.Canceled) {
			log.Printf("ERROR: Chat stream ended early: %v", err)
		}
	}
}
