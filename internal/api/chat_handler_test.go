package api

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"bertmill/hyrox-app/internal/llm"
	"bertmill/hyrox-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// stubLLMClient scripts the upstream: Complete returns reply, Stream emits
// tokens one at a time. The last request is captured for prompt assertions.
type stubLLMClient struct {
	reply   string
	tokens  []string
	err     error
	lastReq llm.Request
}

func (s *stubLLMClient) Complete(ctx context.Context, req llm.Request) (string, error) {
	s.lastReq = req
	if s.err != nil {
		return "", s.err
	}
	return s.reply, nil
}

func (s *stubLLMClient) Stream(ctx context.Context, req llm.Request, fn func(token string) error) error {
	s.lastReq = req
	if s.err != nil {
		return s.err
	}
	for _, token := range s.tokens {
		if err := fn(token); err != nil {
			return err
		}
	}
	return nil
}

func chatRouter(client llm.Client) *gin.Engine {
	gin.SetMode(gin.TestMode)
	handler := NewChatHandler(service.NewCoachService(client))

	router := gin.New()
	router.POST("/chat", handler.Chat)
	router.POST("/chat/stream", handler.ChatStream)
	router.POST("/knowledge/chat", handler.KnowledgeChat)
	return router
}

func postJSON(router *gin.Engine, path, body string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	router.ServeHTTP(w, req)
	return w
}

func TestChat(t *testing.T) {
	client := &stubLLMClient{reply: "Pace the first run conservatively."}
	router := chatRouter(client)

	w := postJSON(router, "/chat", `{
		"messages": [{"role": "user", "content": "How fast should I go out?"}],
		"workoutContext": "Week 3, tempo run day"
	}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"message": "Pace the first run conservatively."}`, w.Body.String())

	// The workout context reaches the upstream inside the system prompt.
	assert.Contains(t, client.lastReq.System, "Week 3, tempo run day")
	require.Len(t, client.lastReq.Messages, 1)
	assert.Equal(t, "How fast should I go out?", client.lastReq.Messages[0].Content)
}

func TestChatMissingMessages(t *testing.T) {
	client := &stubLLMClient{reply: "unused"}
	router := chatRouter(client)

	w := postJSON(router, "/chat", `{"workoutContext": "Week 3"}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "error")
}

func TestChatNotConfigured(t *testing.T) {
	client := &stubLLMClient{err: llm.ErrNotConfigured}
	router := chatRouter(client)

	w := postJSON(router, "/chat", `{"messages": [{"role": "user", "content": "hi"}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "OpenAI API key not configured"}`, w.Body.String())
}

func TestChatUpstreamFailure(t *testing.T) {
	client := &stubLLMClient{err: assert.AnError}
	router := chatRouter(client)

	w := postJSON(router, "/chat", `{"messages": [{"role": "user", "content": "hi"}]}`)

	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "Failed to get response"}`, w.Body.String())
}

func TestChatStream(t *testing.T) {
	client := &stubLLMClient{tokens: []string{"Go ", "slow."}}
	router := chatRouter(client)

	w := postJSON(router, "/chat/stream", `{"messages": [{"role": "user", "content": "Pacing advice?"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/plain; charset=utf-8", w.Header().Get("Content-Type"))
	// Tokens concatenate in upstream order with no framing between them.
	assert.Equal(t, "Go slow.", w.Body.String())
}

func TestChatStreamNotConfigured(t *testing.T) {
	client := &stubLLMClient{err: llm.ErrNotConfigured}
	router := chatRouter(client)

	w := postJSON(router, "/chat/stream", `{"messages": [{"role": "user", "content": "hi"}]}`)

	// Failure before the first token still gets a structured error.
	assert.Equal(t, http.StatusInternalServerError, w.Code)
	assert.JSONEq(t, `{"error": "OpenAI API key not configured"}`, w.Body.String())
}

func TestKnowledgeChatStream(t *testing.T) {
	client := &stubLLMClient{tokens: []string{"### Sled Push\n", "Drive low."}}
	router := chatRouter(client)

	w := postJSON(router, "/knowledge/chat", `{"messages": [{"role": "user", "content": "Sled push form?"}]}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "### Sled Push\nDrive low.", w.Body.String())

	// The knowledge route carries the fixed reference prompt, not the
	// caller-supplied workout context.
	assert.Contains(t, client.lastReq.System, "Hyrox Knowledge Base")
}

func TestKnowledgeChatMissingMessages(t *testing.T) {
	client := &stubLLMClient{}
	router := chatRouter(client)

	w := postJSON(router, "/knowledge/chat", `{}`)

	assert.Equal(t, http.StatusBadRequest, w.Code)
}
