package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/upsc-prep/question-bank-service/internal/services"
	"github.com/upsc-prep/question-bank-service/internal/utils"
)

type HandlerManager struct {
	questionHandler *QuestionHandler
	exportHandler   *ExportHandler
	health          gin.HandlerFunc
}

func NewHandlerManager(serviceManager services.ServiceManager, logger utils.Logger, health gin.HandlerFunc) *HandlerManager {
	if health == nil {
		health = func(c *gin.Context) {
			c.JSON(http.StatusOK, gin.H{"status": "ok"})
		}
	}
	return &HandlerManager{
		questionHandler: NewQuestionHandler(serviceManager.Question(), logger),
		exportHandler:   NewExportHandler(serviceManager.Export(), logger),
		health:          health,
	}
}

// SetupRoutes sets up all API routes
func (hm *HandlerManager) SetupRoutes(router *gin.Engine) {
	router.GET("/health", hm.health)

	v1 := router.Group("/api/v1")
	{
		tenant := v1.Group("/tenants/:tenant_id")
		{
			questions := tenant.Group("/questions")
			{
				questions.GET("", hm.questionHandler.ListQuestions)
				questions.PUT("", hm.questionHandler.SaveQuestions)
				questions.GET("/search", hm.questionHandler.ListQuestions)
				questions.POST("/search", hm.questionHandler.SearchQuestions)
				questions.GET("/random", hm.questionHandler.GetRandomQuestions)
				questions.GET("/stats", hm.questionHandler.GetStats)
				questions.GET("/export", hm.exportHandler.ExportQuestions)
				questions.GET("/year/:year", hm.questionHandler.GetQuestionsByYear)
				questions.GET("/subject/:subject", hm.questionHandler.GetQuestionsBySubject)
				questions.GET("/paper-type/:paper_type", hm.questionHandler.GetQuestionsByPaperType)
			}

			papers := tenant.Group("/question-papers")
			{
				papers.GET("", hm.questionHandler.GetQuestionPapers)
				papers.PUT("", hm.questionHandler.SaveQuestionPapers)
			}

			tenant.GET("/data-info", hm.questionHandler.GetDataInfo)
			tenant.DELETE("/data", hm.questionHandler.ClearAllData)
		}
	}
}
