package server

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/RipScriptos/Oversight/pkg/oversight"
	"github.com/RipScriptos/Oversight/pkg/session"
)

type Handler struct {
	System *oversight.System
}

func NewHandler(s *oversight.System) *Handler {
	return &Handler{System: s}
}

func (h *Handler) RegisterRoutes(r *gin.Engine) {
	r.POST("/mcp", h.MCPHandler)

	api := r.Group("/api")
	{
		api.POST("/analyze", h.analyze)
		api.GET("/status/:id", h.getStatus)
		api.GET("/results/:id", h.getResults)
		api.GET("/download/:id", h.downloadReport)
		api.GET("/history", h.getHistory)
		api.GET("/statistics", h.getStatistics)
		api.GET("/report-types", h.getReportTypes)
		api.POST("/clear-history", h.clearHistory)
	}

	r.NoRoute(func(c *gin.Context) {
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Endpoint not found"})
	})
}

type analyzeRequest struct {
	Topic      string `json:"topic"`
	ReportType string `json:"report_type"`
}

func (h *Handler) analyze(c *gin.Context) {
	var req analyzeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "No data provided"})
		return
	}

	topic := strings.TrimSpace(req.Topic)
	if topic == "" {
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": "Topic is required"})
		return
	}

	reportType := req.ReportType
	if reportType == "" {
		reportType = "detailed"
	}
	if !h.System.ValidReportType(reportType) {
		c.JSON(http.StatusBadRequest, gin.H{
			"success": false,
			"error":   fmt.Sprintf("Invalid report type. Available types: %s", strings.Join(h.System.ReportTypes(), ", ")),
		})
		return
	}

	outcome, err := h.System.ProcessTopic(c.Request.Context(), topic, reportType)
	if err != nil {
		h.sendError(c, err)
		return
	}

	c.JSON(http.StatusOK, outcome)
}

func (h *Handler) getStatus(c *gin.Context) {
	status, err := h.System.Status(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "status": status})
}

func (h *Handler) getResults(c *gin.Context) {
	results, err := h.System.Results(c.Request.Context(), c.Param("id"))
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "results": results})
}

func (h *Handler) downloadReport(c *gin.Context) {
	id := c.Param("id")

	text, err := h.System.Export(c.Request.Context(), id, "text")
	if err != nil {
		if errors.Is(err, session.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Session not found or no report available"})
			return
		}
		h.sendError(c, err)
		return
	}

	status, err := h.System.Status(c.Request.Context(), id)
	if err != nil {
		h.sendError(c, err)
		return
	}

	filename := fmt.Sprintf("oversight_ai_report_%s_%s.txt", strings.ReplaceAll(status.Topic, " ", "_"), id)
	c.Header("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filename))
	c.Data(http.StatusOK, "text/plain; charset=utf-8", []byte(text))
}

func (h *Handler) getHistory(c *gin.Context) {
	history, err := h.System.History(c.Request.Context())
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "history": history})
}

func (h *Handler) getStatistics(c *gin.Context) {
	stats, err := h.System.Statistics(c.Request.Context())
	if err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "statistics": stats})
}

func (h *Handler) getReportTypes(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"success": true, "report_types": h.System.ReportTypes()})
}

func (h *Handler) clearHistory(c *gin.Context) {
	if err := h.System.ClearHistory(c.Request.Context()); err != nil {
		h.sendError(c, err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"success": true, "message": "History cleared successfully"})
}

// sendError maps pipeline errors to the JSON error shape: validation problems
// are the caller's fault, missing sessions are 404s, the rest are 500s.
func (h *Handler) sendError(c *gin.Context, err error) {
	switch {
	case oversight.IsValidation(err):
		c.JSON(http.StatusBadRequest, gin.H{"success": false, "error": err.Error()})
	case errors.Is(err, session.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"success": false, "error": "Session not found"})
	default:
		c.JSON(http.StatusInternalServerError, gin.H{"success": false, "error": err.Error()})
	}
}
