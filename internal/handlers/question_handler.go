package handlers

import (
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/upsc-prep/question-bank-service/internal/models"
	"github.com/upsc-prep/question-bank-service/internal/query"
	"github.com/upsc-prep/question-bank-service/internal/services"
	"github.com/upsc-prep/question-bank-service/internal/utils"
)

type QuestionHandler struct {
	BaseHandler
	service services.QuestionService
}

func NewQuestionHandler(service services.QuestionService, logger utils.Logger) *QuestionHandler {
	return &QuestionHandler{
		BaseHandler: NewBaseHandler(logger),
		service:     service,
	}
}

// ===== QUERY ENDPOINTS =====

// SearchQuestions runs the composite filter/search/sort/paginate pipeline.
// The request body is a full SearchRequest; missing fields fall back to
// service defaults.
func (h *QuestionHandler) SearchQuestions(c *gin.Context) {
	var req services.SearchRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Search(c.Request.Context(), tenantID(c), &req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

// ListQuestions is the GET flavor of search: filters, sort and paging all
// arrive as (repeatable) query parameters.
func (h *QuestionHandler) ListQuestions(c *gin.Context) {
	req, err := searchRequestFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	response, err := h.service.Search(c.Request.Context(), tenantID(c), req)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, response)
}

func (h *QuestionHandler) GetQuestionsByYear(c *gin.Context) {
	year, err := strconv.Atoi(c.Param("year"))
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid year",
		})
		return
	}

	questions, err := h.service.GetQuestionsByYear(c.Request.Context(), tenantID(c), year)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "totalCount": len(questions)})
}

func (h *QuestionHandler) GetQuestionsBySubject(c *gin.Context) {
	questions, err := h.service.GetQuestionsBySubject(c.Request.Context(), tenantID(c), c.Param("subject"))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "totalCount": len(questions)})
}

func (h *QuestionHandler) GetQuestionsByPaperType(c *gin.Context) {
	paperType := models.PaperType(c.Param("paper_type"))

	questions, err := h.service.GetQuestionsByPaperType(c.Request.Context(), tenantID(c), paperType)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "totalCount": len(questions)})
}

// GetRandomQuestions samples up to ?count= questions, optionally narrowed by
// the same filter query parameters as ListQuestions.
func (h *QuestionHandler) GetRandomQuestions(c *gin.Context) {
	count, err := strconv.Atoi(c.DefaultQuery("count", "10"))
	if err != nil || count < 0 {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid count",
		})
		return
	}

	filter, err := filterFromQuery(c)
	if err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid query parameters",
			Details: err.Error(),
		})
		return
	}

	questions, err := h.service.GetRandomQuestions(c.Request.Context(), tenantID(c), count, filter)
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"questions": questions, "totalCount": len(questions)})
}

func (h *QuestionHandler) GetStats(c *gin.Context) {
	stats, err := h.service.GetStats(c.Request.Context(), tenantID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}
	if stats == nil {
		c.JSON(http.StatusNotFound, ErrorResponse{
			Message: "No statistics available",
		})
		return
	}

	c.JSON(http.StatusOK, stats)
}

func (h *QuestionHandler) GetDataInfo(c *gin.Context) {
	info, err := h.service.GetDataInfo(c.Request.Context(), tenantID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, info)
}

func (h *QuestionHandler) GetQuestionPapers(c *gin.Context) {
	papers, err := h.service.GetAllQuestionPapers(c.Request.Context(), tenantID(c))
	if err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, gin.H{"papers": papers, "totalCount": len(papers)})
}

// ===== WRITE ENDPOINTS =====

// SaveQuestions replaces the tenant's entire question collection.
func (h *QuestionHandler) SaveQuestions(c *gin.Context) {
	var req services.SaveQuestionsRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.service.SaveQuestions(c.Request.Context(), tenantID(c), req.Questions); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Questions saved"})
}

// SaveQuestionPapers replaces the tenant's entire paper collection.
func (h *QuestionHandler) SaveQuestionPapers(c *gin.Context) {
	var req services.SaveQuestionPapersRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, ErrorResponse{
			Message: "Invalid request payload",
			Details: err.Error(),
		})
		return
	}

	if err := h.service.SaveQuestionPapers(c.Request.Context(), tenantID(c), req.Papers); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "Question papers saved"})
}

func (h *QuestionHandler) ClearAllData(c *gin.Context) {
	if err := h.service.ClearAllData(c.Request.Context(), tenantID(c)); err != nil {
		h.handleServiceError(c, err)
		return
	}

	c.JSON(http.StatusOK, SuccessResponse{Message: "All data cleared"})
}

// ===== QUERY PARAMETER PARSING =====

// filterFromQuery builds a QuestionFilter from repeatable query parameters,
// e.g. ?year=2023&year=2024&subject=History.
func filterFromQuery(c *gin.Context) (*models.QuestionFilter, error) {
	filter := &models.QuestionFilter{
		Subjects: c.QueryArray("subject"),
		Topics:   c.QueryArray("topic"),
		Keywords: c.QueryArray("keyword"),
		Tags:     c.QueryArray("tag"),
	}

	for _, raw := range c.QueryArray("year") {
		year, err := strconv.Atoi(raw)
		if err != nil {
			return nil, err
		}
		filter.Years = append(filter.Years, year)
	}
	for _, raw := range c.QueryArray("exam_type") {
		filter.ExamTypes = append(filter.ExamTypes, models.ExamType(raw))
	}
	for _, raw := range c.QueryArray("paper_type") {
		filter.PaperTypes = append(filter.PaperTypes, models.PaperType(raw))
	}
	for _, raw := range c.QueryArray("difficulty") {
		filter.Difficulties = append(filter.Difficulties, models.DifficultyLevel(raw))
	}
	for _, raw := range c.QueryArray("question_type") {
		filter.QuestionTypes = append(filter.QuestionTypes, models.QuestionType(raw))
	}

	return filter, nil
}

func searchRequestFromQuery(c *gin.Context) (*services.SearchRequest, error) {
	filter, err := filterFromQuery(c)
	if err != nil {
		return nil, err
	}

	req := &services.SearchRequest{
		Filter:    *filter,
		Query:     c.Query("q"),
		SortBy:    query.SortKey(c.Query("sort_by")),
		SortOrder: query.SortOrder(c.Query("sort_order")),
	}
	if raw := c.Query("limit"); raw != "" {
		if req.Limit, err = strconv.Atoi(raw); err != nil {
			return nil, err
		}
	}
	if raw := c.Query("offset"); raw != "" {
		if req.Offset, err = strconv.Atoi(raw); err != nil {
			return nil, err
		}
	}
	return req, nil
}
