package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/quizforge/quiz-service/internal/services"
	"github.com/quizforge/quiz-service/internal/utils"
)

type HandlerManager struct {
	quizHandler      *QuizHandler
	sessionHandler   *SessionHandler
	analyticsHandler *AnalyticsHandler
}

func NewHandlerManager(
	quizService services.QuizService,
	sessionService services.SessionService,
	analyticsService services.AnalyticsService,
	exportService services.ExportService,
	logger utils.Logger,
) *HandlerManager {
	return &HandlerManager{
		quizHandler:      NewQuizHandler(quizService, logger),
		sessionHandler:   NewSessionHandler(sessionService, logger),
		analyticsHandler: NewAnalyticsHandler(analyticsService, exportService, logger),
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", HealthCheck)

	v1 := router.Group("/api/v1")
	{
		quizzes := v1.Group("/quizzes")
		{
			quizzes.GET("", hm.quizHandler.List)
			quizzes.POST("", hm.quizHandler.Create)
			quizzes.GET("/:id", hm.quizHandler.Get)
			quizzes.PUT("/:id", hm.quizHandler.Update)
			quizzes.DELETE("/:id", hm.quizHandler.Delete)

			quizzes.POST("/:id/start", hm.sessionHandler.Start)
			quizzes.POST("/:id/submit", hm.sessionHandler.Submit)
			quizzes.GET("/:id/results/:session_id", hm.sessionHandler.Results)

			quizzes.GET("/:id/analytics", hm.analyticsHandler.Analytics)
			quizzes.GET("/:id/export", hm.analyticsHandler.Export)
		}
	}
}

func HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{
		"status":  "ok",
		"service": "quiz-service",
	})
}
