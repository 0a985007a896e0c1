// Package server exposes the calculators over an HTTP JSON API.
package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/takhmino/takhmino/internal/config"
	"github.com/takhmino/takhmino/internal/metrics"
	"github.com/takhmino/takhmino/internal/runlog"
	"github.com/takhmino/takhmino/internal/tools"
	"github.com/takhmino/takhmino/pkg/constants"
	"github.com/takhmino/takhmino/pkg/format"
	"github.com/takhmino/takhmino/pkg/validation"
	"go.opentelemetry.io/contrib/instrumentation/github.com/gin-gonic/gin/otelgin"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
	"go.opentelemetry.io/otel/trace"
	"go.uber.org/zap"
)

const tracerName = "github.com/takhmino/takhmino/internal/server"

// Options configures the HTTP handler. Runs and Limiter are optional.
type Options struct {
	Logger      *zap.Logger
	MaxBodySize int64
	Version     string
	Runs        runlog.Store
	Limiter     *RateLimiter
	Gold        config.GoldConfig
}

type handler struct {
	logger      *zap.Logger
	maxBodySize int64
	version     string
	runs        runlog.Store
	runner      *tools.Runner
}

// NewHandler constructs the gin engine serving the calculator API.
func NewHandler(opts Options) http.Handler {
	if opts.Logger == nil {
		opts.Logger = zap.NewNop()
	}
	if opts.MaxBodySize <= 0 {
		opts.MaxBodySize = constants.DefaultMaxBodySizeBytes
	}
	version := strings.TrimSpace(opts.Version)
	if version == "" {
		version = "dev"
	}

	h := &handler{
		logger:      opts.Logger,
		maxBodySize: opts.MaxBodySize,
		version:     version,
		runs:        opts.Runs,
		runner:      tools.NewRunner(opts.Logger, opts.Gold),
	}

	r := gin.New()
	r.Use(gin.Recovery())
	r.Use(otelgin.Middleware(constants.ServiceName))
	r.Use(requestLogger(h.logger))

	r.GET("/health", h.handleHealth)
	r.GET("/metrics", gin.WrapH(promhttp.Handler()))

	api := r.Group("/api")
	if opts.Limiter != nil {
		api.Use(opts.Limiter.Middleware())
	}
	api.Use(h.limitBody)

	api.GET("/version", h.handleVersion)
	api.POST("/tools/loan", h.handleLoan)
	api.POST("/tools/gold", h.handleGold)
	api.POST("/tools/gold/required-saving", h.handleRequiredSaving)
	api.POST("/tools/expense", h.handleExpense)
	api.POST("/tools/purchasing-power", h.handlePurchasingPower)
	api.POST("/format/parse", h.handleParse)
	api.GET("/runs", h.handleListRuns)
	api.GET("/runs/:id", h.handleGetRun)

	return r
}

func requestLogger(logger *zap.Logger) gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()
		logger.Info("request served",
			zap.String("op", "server.request"),
			zap.String("method", c.Request.Method),
			zap.String("path", c.FullPath()),
			zap.Int("status", c.Writer.Status()),
			zap.Duration("duration", time.Since(start)),
		)
	}
}

func (h *handler) limitBody(c *gin.Context) {
	if c.Request.Body != nil {
		c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, h.maxBodySize)
	}
	c.Next()
}

func (h *handler) handleHealth(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

func (h *handler) handleVersion(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"version": h.version})
}

func (h *handler) handleLoan(c *gin.Context) {
	var req tools.LoanRequest
	if !h.bind(c, &req, constants.ToolLoan) {
		return
	}
	h.run(c, constants.ToolLoan, req.Save, func() (tools.Outcome, error) {
		return h.runner.Loan(req)
	})
}

func (h *handler) handleGold(c *gin.Context) {
	var req tools.GoldRequest
	if !h.bind(c, &req, constants.ToolGold) {
		return
	}
	h.run(c, constants.ToolGold, req.Save, func() (tools.Outcome, error) {
		return h.runner.Gold(req), nil
	})
}

func (h *handler) handleRequiredSaving(c *gin.Context) {
	var req tools.RequiredSavingRequest
	if !h.bind(c, &req, constants.ToolGold) {
		return
	}
	h.run(c, constants.ToolGold, req.Save, func() (tools.Outcome, error) {
		return h.runner.RequiredSaving(req)
	})
}

func (h *handler) handleExpense(c *gin.Context) {
	var req tools.ExpenseRequest
	if !h.bind(c, &req, constants.ToolExpense) {
		return
	}
	h.run(c, constants.ToolExpense, req.Save, func() (tools.Outcome, error) {
		return h.runner.Expense(req), nil
	})
}

func (h *handler) handlePurchasingPower(c *gin.Context) {
	var req tools.PurchasingPowerRequest
	if !h.bind(c, &req, constants.ToolPurchasingPower) {
		return
	}
	h.run(c, constants.ToolPurchasingPower, req.Save, func() (tools.Outcome, error) {
		return h.runner.PurchasingPower(req)
	})
}

func (h *handler) handleParse(c *gin.Context) {
	var req parseRequest
	if !h.bind(c, &req, "format") {
		return
	}

	value := format.ParseLocalizedNumber(req.Text)
	if req.Min != nil && req.Max != nil {
		value = format.Clamp(req.Text, *req.Min, *req.Max)
	}

	digits := req.Digits
	if digits < 0 {
		digits = 0
	}
	if digits > 6 {
		digits = 6
	}

	c.JSON(http.StatusOK, parseResponse{
		Value:     value,
		Formatted: format.FormatGroupedNumberIn(value, digits, format.ParseScript(req.Locale)),
	})
}

type runResponse struct {
	ID        uuid.UUID       `json:"id"`
	ToolSlug  string          `json:"toolSlug"`
	ToolName  string          `json:"toolName"`
	Version   string          `json:"version"`
	Data      json.RawMessage `json:"data"`
	Summary   string          `json:"summary"`
	CreatedAt time.Time       `json:"createdAt"`
}

func newRunResponse(run runlog.ToolRun) runResponse {
	return runResponse{
		ID:        run.ID,
		ToolSlug:  run.ToolSlug,
		ToolName:  run.ToolName,
		Version:   run.Version,
		Data:      json.RawMessage(run.RawData),
		Summary:   run.Summary,
		CreatedAt: run.CreatedAt,
	}
}

func (h *handler) handleListRuns(c *gin.Context) {
	if h.runs == nil {
		h.respondErrorWithOp(c, http.StatusServiceUnavailable, "run history is not configured", "server.handleListRuns")
		return
	}

	tool := c.Query("tool")
	if tool != "" {
		if err := validation.ValidateTool(tool); err != nil {
			h.respondErrorWithOp(c, http.StatusBadRequest, err.Error(), "server.handleListRuns")
			return
		}
	}
	limit, err := strconv.Atoi(c.DefaultQuery("limit", "0"))
	if err != nil {
		h.respondErrorWithOp(c, http.StatusBadRequest, "limit must be an integer", "server.handleListRuns")
		return
	}

	runs, err := h.runs.List(c.Request.Context(), tool, limit)
	if err != nil {
		metrics.RunLogErrors.WithLabelValues("list").Inc()
		h.respondErrorWithOp(c, http.StatusInternalServerError, fmt.Sprintf("failed to list runs: %v", err), "server.handleListRuns")
		return
	}

	response := make([]runResponse, 0, len(runs))
	for _, run := range runs {
		response = append(response, newRunResponse(run))
	}
	c.JSON(http.StatusOK, gin.H{"runs": response})
}

func (h *handler) handleGetRun(c *gin.Context) {
	if h.runs == nil {
		h.respondErrorWithOp(c, http.StatusServiceUnavailable, "run history is not configured", "server.handleGetRun")
		return
	}

	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		h.respondErrorWithOp(c, http.StatusBadRequest, "invalid run id", "server.handleGetRun")
		return
	}

	run, err := h.runs.FindByID(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, runlog.ErrRunNotFound) {
			h.respondErrorWithOp(c, http.StatusNotFound, err.Error(), "server.handleGetRun")
			return
		}
		metrics.RunLogErrors.WithLabelValues("find").Inc()
		h.respondErrorWithOp(c, http.StatusInternalServerError, fmt.Sprintf("failed to load run: %v", err), "server.handleGetRun")
		return
	}
	c.JSON(http.StatusOK, newRunResponse(*run))
}

// bind decodes the JSON body into req and answers 400 or 413 on failure.
func (h *handler) bind(c *gin.Context, req any, tool string) bool {
	if err := c.ShouldBindJSON(req); err != nil {
		var maxBytesErr *http.MaxBytesError
		if errors.As(err, &maxBytesErr) {
			h.reject(c, tool, http.StatusRequestEntityTooLarge,
				fmt.Sprintf("request body exceeds limit of %d bytes", h.maxBodySize))
			return false
		}
		h.reject(c, tool, http.StatusBadRequest, fmt.Sprintf("failed to decode request: %v", err))
		return false
	}
	return true
}

func (h *handler) reject(c *gin.Context, tool string, status int, msg string) {
	metrics.ToolRuns.WithLabelValues(tool, metrics.StatusInvalid).Inc()
	h.respondErrorWithOp(c, status, msg, "server.tool."+tool)
}

// run executes a calculator inside a span, records metrics and optionally
// saves the outcome to the run log. Calculator errors are client errors.
func (h *handler) run(c *gin.Context, tool string, save bool, compute func() (tools.Outcome, error)) {
	ctx, span := otel.Tracer(tracerName).Start(c.Request.Context(), "tool."+tool)
	defer span.End()
	span.SetAttributes(attribute.String("tool", tool), attribute.Bool("save", save))

	outcome, err := compute()
	if err != nil {
		span.SetStatus(codes.Error, err.Error())
		h.reject(c, tool, http.StatusBadRequest, err.Error())
		return
	}

	response := toolResponse{Result: outcome.Result, Summary: outcome.Summary, Warnings: outcome.Warnings}

	if save {
		if h.runs == nil {
			response.Warnings = append(response.Warnings, "run history is not configured, the run was not saved")
		} else {
			raw, err := json.Marshal(outcome.Result)
			if err != nil {
				h.fail(c, tool, span, fmt.Errorf("failed to encode result: %w", err))
				return
			}
			run := &runlog.ToolRun{
				ToolSlug: outcome.Tool,
				ToolName: tools.Name(outcome.Tool),
				Version:  h.version,
				RawData:  string(raw),
				Summary:  truncate(outcome.Summary, validation.MaxSummaryLength),
			}
			if err := h.runs.Create(ctx, run); err != nil {
				metrics.RunLogErrors.WithLabelValues("create").Inc()
				h.fail(c, tool, span, fmt.Errorf("failed to save run: %w", err))
				return
			}
			response.RunID = run.ID.String()
			span.SetAttributes(attribute.String("run.id", response.RunID))
		}
	}

	metrics.ToolRuns.WithLabelValues(tool, metrics.StatusOK).Inc()
	c.JSON(http.StatusOK, response)
}

func (h *handler) fail(c *gin.Context, tool string, span trace.Span, err error) {
	span.RecordError(err)
	span.SetStatus(codes.Error, err.Error())
	metrics.ToolRuns.WithLabelValues(tool, metrics.StatusError).Inc()
	h.respondErrorWithOp(c, http.StatusInternalServerError, err.Error(), "server.tool."+tool)
}

func (h *handler) respondErrorWithOp(c *gin.Context, status int, msg string, op string) {
	h.logger.Error("request failed",
		zap.String("op", op),
		zap.Int("status", status),
		zap.String("error", msg),
	)
	c.AbortWithStatusJSON(status, gin.H{"error": msg})
}

func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	return s[:max]
}
