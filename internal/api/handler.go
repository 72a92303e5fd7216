// Package api exposes the wire batch pipeline over HTTP for the surrounding
// dashboard: preview, execute, retry, and reconciliation export.
package api

import (
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/logger"
	recoverer "github.com/gofiber/fiber/v2/middleware/recover"

	"github.com/titleflow/wire-batch-pipeline/internal/executor"
	"github.com/titleflow/wire-batch-pipeline/internal/extractor"
	"github.com/titleflow/wire-batch-pipeline/internal/models"
	"github.com/titleflow/wire-batch-pipeline/internal/parser"
	"github.com/titleflow/wire-batch-pipeline/internal/provider"
	"github.com/titleflow/wire-batch-pipeline/internal/rails"
	"github.com/titleflow/wire-batch-pipeline/internal/validate"
	"github.com/titleflow/wire-batch-pipeline/internal/writer"
)

// Version is reported by the health endpoint.
const Version = "1.0.0"

// Server wires the pipeline components behind HTTP handlers. The provider
// client is injected at construction so tests can substitute it.
type Server struct {
	Policy       rails.Policy
	Provider     provider.Client
	OutputPrefix string
	BodyLimitMB  int
}

// PreviewResponse is the JSON body for /api/batch/preview.
type PreviewResponse struct {
	Success bool                      `json:"success"`
	Error   string                    `json:"error,omitempty"`
	Parse   *models.ParseResult       `json:"parse,omitempty"`
	Summary *models.ValidationSummary `json:"summary,omitempty"`
}

// ExecuteResponse is the JSON body for /api/batch/execute and retry.
type ExecuteResponse struct {
	Success bool                      `json:"success"`
	Error   string                    `json:"error,omitempty"`
	Parse   *models.ParseResult       `json:"parse,omitempty"`
	Batch   *models.BatchPayoutResult `json:"batch,omitempty"`
}

// ReconciliationRequest is the JSON body for /api/batch/reconciliation.
type ReconciliationRequest struct {
	Kind           string                `json:"kind"` // positive-pay, bank-recon, audit
	BatchID        string                `json:"batchId"`
	Results        []models.PayoutResult `json:"results"`
	Metadata       writer.BatchMetadata  `json:"metadata"`
	IncludeFailed  bool                  `json:"includeFailed"`
	IncludePending bool                  `json:"includePending"`
}

// App builds the fiber application with all routes registered.
func (s *Server) App() *fiber.App {
	limit := s.BodyLimitMB
	if limit <= 0 {
		limit = 32
	}
	app := fiber.New(fiber.Config{
		BodyLimit: limit << 20,
	})
	app.Use(recoverer.New())
	app.Use(logger.New())

	app.Get("/api/health", s.handleHealth)
	app.Post("/api/batch/preview", s.handlePreview)
	app.Post("/api/batch/execute", s.handleExecute)
	app.Post("/api/batch/retry", s.handleRetry)
	app.Post("/api/batch/reconciliation", s.handleReconciliation)
	return app
}

func (s *Server) handleHealth(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":  "ok",
		"version": Version,
	})
}

func (s *Server) handlePreview(c *fiber.Ctx) error {
	result, err := s.parseUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(PreviewResponse{Error: err.Error()})
	}
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(PreviewResponse{Parse: &result})
	}

	summary := validate.Summarize(result.Items, s.Policy)
	return c.JSON(PreviewResponse{
		Success: true,
		Parse:   &result,
		Summary: &summary,
	})
}

func (s *Server) handleExecute(c *fiber.Ctx) error {
	result, err := s.parseUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExecuteResponse{Error: err.Error()})
	}
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ExecuteResponse{Parse: &result})
	}

	opts, err := executeOptions(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExecuteResponse{Error: err.Error()})
	}

	exec := &executor.Executor{Provider: s.Provider, Policy: s.Policy}
	batch := exec.Execute(c.UserContext(), opts, result.Items)
	return c.JSON(ExecuteResponse{
		Success: batch.Success,
		Parse:   &result,
		Batch:   &batch,
	})
}

func (s *Server) handleRetry(c *fiber.Ctx) error {
	result, err := s.parseUpload(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExecuteResponse{Error: err.Error()})
	}
	if !result.Success {
		return c.Status(fiber.StatusUnprocessableEntity).JSON(ExecuteResponse{Parse: &result})
	}

	priorJSON := c.FormValue("result")
	if priorJSON == "" {
		return c.Status(fiber.StatusBadRequest).JSON(ExecuteResponse{Error: "missing prior result; send it in form field 'result'"})
	}
	var prior models.BatchPayoutResult
	if err := json.Unmarshal([]byte(priorJSON), &prior); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExecuteResponse{Error: fmt.Sprintf("invalid prior result: %v", err)})
	}

	opts, err := executeOptions(c)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(ExecuteResponse{Error: err.Error()})
	}

	exec := &executor.Executor{Provider: s.Provider, Policy: s.Policy}
	batch := exec.Retry(c.UserContext(), opts, prior, result.Items)
	return c.JSON(ExecuteResponse{
		Success: batch.Success,
		Parse:   &result,
		Batch:   &batch,
	})
}

func (s *Server) handleReconciliation(c *fiber.Ctx) error {
	var req ReconciliationRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": fmt.Sprintf("invalid request body: %v", err)})
	}

	var body string
	switch req.Kind {
	case "positive-pay":
		body = writer.PositivePay(req.Results, req.BatchID)
	case "bank-recon":
		body = writer.BankReconciliation(req.Results, req.BatchID, writer.ReconOptions{
			IncludeFailed:  req.IncludeFailed,
			IncludePending: req.IncludePending,
		})
	case "audit":
		meta := req.Metadata
		if meta.BatchID == "" {
			meta.BatchID = req.BatchID
		}
		body = writer.Audit(req.Results, meta)
	default:
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": fmt.Sprintf("unknown export kind %q: use positive-pay, bank-recon, or audit", req.Kind),
		})
	}

	filename := writer.Filename(s.OutputPrefix, req.Kind, req.BatchID, time.Now().UTC())
	c.Set(fiber.HeaderContentType, writer.ContentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", filename))
	return c.SendString(body)
}

// parseUpload reads the multipart upload, normalizes PDF/XLSX wrappers, and
// runs format detection and parsing.
func (s *Server) parseUpload(c *fiber.Ctx) (models.ParseResult, error) {
	fileHeader, err := c.FormFile("file")
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("no file uploaded; use form field 'file'")
	}

	f, err := fileHeader.Open()
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("opening upload: %w", err)
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return models.ParseResult{}, fmt.Errorf("reading upload: %w", err)
	}

	normalized, err := extractor.Normalize(fileHeader.Filename, data)
	if err != nil {
		return models.ParseResult{}, err
	}

	return parser.Parse(normalized, fileHeader.Filename), nil
}

func executeOptions(c *fiber.Ctx) (executor.Options, error) {
	opts := executor.Options{
		BatchID:         c.FormValue("batch_id"),
		FundingSourceID: c.FormValue("funding_source"),
		Currency:        c.FormValue("currency"),
		DryRun:          c.FormValue("dry_run") == "true",
	}
	if opts.FundingSourceID == "" && !opts.DryRun {
		return executor.Options{}, fmt.Errorf("missing funding_source")
	}
	return opts, nil
}
