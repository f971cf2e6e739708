package api

import (
	"net/http"

	"bertmill/hyrox-app/internal/domain"
	"bertmill/hyrox-app/internal/service"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(
	router *gin.Engine,
	jwtSecret string,
	authService service.AuthService,
	sessionService service.SessionService,
	feedbackService service.FeedbackService,
	coachService service.CoachService,
	planHandler *PlanHandler,
) {

	authHandler := NewAuthHandler(authService)
	sessionHandler := NewSessionHandler(sessionService)
	feedbackHandler := NewFeedbackHandler(feedbackService)
	chatHandler := NewChatHandler(coachService)

	authMiddleware := AuthMiddleware(jwtSecret)
	optionalAuth := OptionalAuthMiddleware(jwtSecret)

	router.GET("/ping", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"message": "pong"})
	})

	apiV1 := router.Group("/api/v1")
	{
		authGroup := apiV1.Group("/auth")
		{
			authGroup.POST("/register", authHandler.Register)
			authGroup.POST("/login", authHandler.Login)
		}

		// The plan is derived data, identical for everyone; no auth needed.
		apiV1.GET("/plan", planHandler.GetPlan)
		apiV1.GET("/plan/weeks/:n", planHandler.GetWeek)

		// Guests may submit feedback; a token only adds email attribution.
		apiV1.POST("/feedback", optionalAuth, feedbackHandler.Submit)

		// Chat is open like the original app's routes; the relay holds no
		// per-user state and the upstream credential is the server's own.
		chatGroup := apiV1.Group("/chat")
		{
			chatGroup.POST("", chatHandler.Chat)
			chatGroup.POST("/stream", chatHandler.ChatStream)
		}
		apiV1.POST("/knowledge/chat", chatHandler.KnowledgeChat)
	}

	protected := router.Group("/api/v1")
	protected.Use(authMiddleware)
	{
		protected.GET("/me", func(c *gin.Context) {
			userIDStr, err := getUserIDFromContext(c)
			if err != nil {
				abortWithError(c, http.StatusInternalServerError, "Failed to get user ID from token")
				return
			}
			role, _ := getUserRoleFromContext(c)
			c.JSON(http.StatusOK, gin.H{"userId": userIDStr, "role": role})
		})

		// --- Session state: completions, notes, push channel ---
		sessionGroup := protected.Group("/sessions")
		{
			sessionGroup.GET("/completed", sessionHandler.GetCompleted)
			sessionGroup.POST("/:id/toggle", sessionHandler.ToggleCompletion)
			sessionGroup.GET("/notes", sessionHandler.GetNotes)
			sessionGroup.PUT("/:id/note", sessionHandler.SaveNote)
			sessionGroup.GET("/events", sessionHandler.StreamEvents)
		}

		// --- Feedback moderation (admin only) ---
		feedbackGroup := protected.Group("/feedback")
		feedbackGroup.Use(RoleMiddleware(domain.RoleAdmin))
		{
			feedbackGroup.GET("", feedbackHandler.List)
			feedbackGroup.PATCH("/:id/addressed", feedbackHandler.SetAddressed)
		}
	}
}
