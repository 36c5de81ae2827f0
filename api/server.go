// Package api exposes the planning pipeline over HTTP: submit a job for full
// processing, or ask for a dry-run composition plan.
package api

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"clipsmith/processor"
	"clipsmith/types"
)

// Server handles HTTP API requests for video planning and processing.
type Server struct {
	processor *processor.VideoProcessor
}

// NewServer creates a new API server instance.
func NewServer(proc *processor.VideoProcessor) *Server {
	return &Server{processor: proc}
}

// SubmitResponse is the response for asynchronous job submission.
type SubmitResponse struct {
	Success bool   `json:"success"`
	Message string `json:"message"`
	VideoID string `json:"video_id,omitempty"`
	Error   string `json:"error,omitempty"`
}

// Router constructs a Gin engine with registered routes.
func (s *Server) Router() *gin.Engine {
	r := gin.New()
	// Minimal middleware: recovery; logger optional to reduce verbosity
	r.Use(gin.Recovery())

	r.GET("/health", s.handleHealth)
	r.POST("/api/videos", s.handleSubmit)
	r.POST("/api/plan", s.handlePlan)
	return r
}

// handleSubmit accepts a video job and processes it in the background.
// POST /api/videos
func (s *Server) handleSubmit(c *gin.Context) {
	job, ok := bindJob(c)
	if !ok {
		return
	}

	log.Printf("📥 Received video job: UUID=%s", job.UUID)

	// Process asynchronously so the API responds immediately. The request
	// context dies with the response, so the job gets its own.
	go func() {
		if err := s.processor.ProcessJob(context.Background(), job); err != nil {
			log.Printf("❌ Video processing failed for UUID %s: %v", job.UUID, err)
		}
	}()

	c.JSON(http.StatusAccepted, SubmitResponse{
		Success: true,
		Message: "Video processing started",
		VideoID: job.UUID,
	})
}

// handlePlan runs the planner without rendering and returns the plan.
// POST /api/plan
func (s *Server) handlePlan(c *gin.Context) {
	job, ok := bindJob(c)
	if !ok {
		return
	}

	plan, err := s.processor.Plan(c.Request.Context(), job)
	if err != nil {
		c.JSON(http.StatusUnprocessableEntity, SubmitResponse{
			Success: false,
			Message: "Planning failed",
			Error:   err.Error(),
		})
		return
	}

	c.JSON(http.StatusOK, plan)
}

// handleHealth provides a health check endpoint.
// GET /health
func (s *Server) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "healthy"})
}

func bindJob(c *gin.Context) (types.VideoJob, bool) {
	var job types.VideoJob
	if err := c.ShouldBindJSON(&job); err != nil {
		c.JSON(http.StatusBadRequest, SubmitResponse{
			Success: false,
			Message: "Invalid JSON payload",
			Error:   err.Error(),
		})
		return job, false
	}
	if job.Status != "" && job.Status != "success" {
		c.JSON(http.StatusBadRequest, SubmitResponse{
			Success: false,
			Message: "Job status must be 'success'",
		})
		return job, false
	}
	if len(job.Segments) == 0 {
		c.JSON(http.StatusBadRequest, SubmitResponse{
			Success: false,
			Message: "Segments are required",
		})
		return job, false
	}
	return job, true
}
