package http

import (
	"context"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	domain "github.com/kellerh/ai-procurement/internal/domain/workflow"
	"github.com/kellerh/ai-procurement/internal/models"
	"github.com/kellerh/ai-procurement/internal/repository"
	"github.com/kellerh/ai-procurement/internal/workflow"
	"github.com/kellerh/ai-procurement/pkg/utils"
)

// WorkflowRunner executes the procurement workflow for one request
type WorkflowRunner interface {
	Execute(ctx context.Context, request models.ProcurementRequest, suppliers []models.Supplier) workflow.State
}

// Handlers contains all HTTP request handlers
type Handlers struct {
	engine   WorkflowRunner
	archiver *repository.Archiver
	requests *repository.RequestRepository
	rfps     *repository.RFPRepository
	runs     *repository.RunRepository
	logger   *zap.Logger
}

// NewHandlers creates a new Handlers instance
func NewHandlers(
	engine WorkflowRunner,
	archiver *repository.Archiver,
	requests *repository.RequestRepository,
	rfps *repository.RFPRepository,
	runs *repository.RunRepository,
	logger *zap.Logger,
) *Handlers {
	return &Handlers{
		engine:   engine,
		archiver: archiver,
		requests: requests,
		rfps:     rfps,
		runs:     runs,
		logger:   logger,
	}
}

// Response represents a standard JSON response
type Response struct {
	Success bool        `json:"success"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

// SubmitRequestBody is the payload for starting a procurement workflow
type SubmitRequestBody struct {
	Title           string            `json:"title" binding:"required"`
	Description     string            `json:"description" binding:"required"`
	EstimatedBudget *float64          `json:"estimated_budget"`
	Timeline        string            `json:"timeline"`
	Department      string            `json:"department"`
	Requester       string            `json:"requester"`
	RequiredByDate  *time.Time        `json:"required_by_date"`
	AdditionalNotes string            `json:"additional_notes"`
	Suppliers       []models.Supplier `json:"suppliers"`
}

// WorkflowResponse summarizes the outcome of a workflow run
type WorkflowResponse struct {
	RequestID      string                 `json:"request_id"`
	Phase          string                 `json:"phase"`
	Status         string                 `json:"status"`
	EmailSent      bool                   `json:"email_sent"`
	Error          string                 `json:"error,omitempty"`
	Classification *models.Classification `json:"classification,omitempty"`
	RFP            *models.RFP            `json:"rfp,omitempty"`
	Approval       *models.ApprovalResult `json:"approval,omitempty"`
}

// RequestDetail bundles a request with its archived artifacts
type RequestDetail struct {
	Request *models.ProcurementRequest `json:"request"`
	RFPs    []*models.RFP              `json:"rfps,omitempty"`
	Runs    []*models.WorkflowRun      `json:"runs,omitempty"`
}

// SubmitRequest handles POST /api/v1/requests
func (h *Handlers) SubmitRequest(c *gin.Context) {
	var body SubmitRequestBody
	if err := c.ShouldBindJSON(&body); err != nil {
		c.JSON(http.StatusBadRequest, Response{
			Success: false,
			Error:   "title and description are required",
		})
		return
	}

	for _, supplier := range body.Suppliers {
		if err := utils.ValidateEmail(supplier.Email); err != nil {
			c.JSON(http.StatusBadRequest, Response{
				Success: false,
				Error:   err.Error(),
			})
			return
		}
	}

	request := models.NewProcurementRequest(
		utils.SanitizeString(body.Title),
		utils.SanitizeString(body.Description),
	)
	request.EstimatedBudget = body.EstimatedBudget
	request.Timeline = body.Timeline
	request.Department = body.Department
	request.Requester = body.Requester
	request.RequiredByDate = body.RequiredByDate
	request.AdditionalNotes = utils.SanitizeString(body.AdditionalNotes)

	h.logger.Info("Starting procurement workflow",
		zap.String("request_id", request.ID),
		zap.String("title", request.Title),
		zap.Int("suppliers", len(body.Suppliers)))

	state := h.engine.Execute(c.Request.Context(), request, body.Suppliers)

	// The run record is an audit artifact; failing to store it must not
	// mask the workflow outcome.
	if err := h.archiver.ArchiveRun(c.Request.Context(), state); err != nil {
		h.logger.Error("Failed to archive workflow run",
			zap.String("request_id", request.ID),
			zap.Error(err))
	}

	result := WorkflowResponse{
		RequestID:      state.Request.ID,
		Phase:          state.Phase.String(),
		Status:         state.Status,
		EmailSent:      state.EmailSent,
		Error:          state.Error,
		Classification: state.Classification,
		RFP:            state.RFP,
		Approval:       state.Approval,
	}

	if state.Phase == domain.StateFailed {
		c.JSON(http.StatusBadGateway, Response{
			Success: false,
			Data:    result,
			Error:   state.Status,
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    result,
	})
}

// ListRequests handles GET /api/v1/requests
func (h *Handlers) ListRequests(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))

	requests, err := h.requests.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list requests", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve requests",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    requests,
	})
}

// GetRequest handles GET /api/v1/requests/:id
func (h *Handlers) GetRequest(c *gin.Context) {
	id := c.Param("id")

	request, err := h.requests.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get request", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve request",
		})
		return
	}
	if request == nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "request not found",
		})
		return
	}

	rfps, err := h.rfps.GetByRequestID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get RFPs for request", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve rfps",
		})
		return
	}

	runs, err := h.runs.GetByRequestID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get runs for request", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve workflow runs",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: RequestDetail{
			Request: request,
			RFPs:    rfps,
			Runs:    runs,
		},
	})
}

// ListRFPs handles GET /api/v1/rfps
func (h *Handlers) ListRFPs(c *gin.Context) {
	limit := parseLimit(c.Query("limit"))
	status := models.RFPStatus(c.Query("status"))

	rfps, err := h.rfps.List(c.Request.Context(), status, limit)
	if err != nil {
		h.logger.Error("Failed to list RFPs", zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve rfps",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    rfps,
	})
}

// GetRFP handles GET /api/v1/rfps/:id
func (h *Handlers) GetRFP(c *gin.Context) {
	id := c.Param("id")

	rfp, err := h.rfps.GetByID(c.Request.Context(), id)
	if err != nil {
		h.logger.Error("Failed to get RFP", zap.String("id", id), zap.Error(err))
		c.JSON(http.StatusInternalServerError, Response{
			Success: false,
			Error:   "failed to retrieve rfp",
		})
		return
	}
	if rfp == nil {
		c.JSON(http.StatusNotFound, Response{
			Success: false,
			Error:   "rfp not found",
		})
		return
	}

	c.JSON(http.StatusOK, Response{
		Success: true,
		Data:    rfp,
	})
}

// HealthCheck handles GET /health
func (h *Handlers) HealthCheck(c *gin.Context) {
	c.JSON(http.StatusOK, Response{
		Success: true,
		Data: gin.H{
			"status":  "healthy",
			"service": "ai-procurement",
			"time":    time.Now().UTC().Format(time.RFC3339),
		},
	})
}

func parseLimit(raw string) int {
	limit, err := strconv.Atoi(raw)
	if err != nil || limit <= 0 || limit > 100 {
		return 20
	}
	return limit
}
