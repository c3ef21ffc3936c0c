package server

import (
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/ppiankov/mirror/internal/insight"
	"github.com/ppiankov/mirror/internal/model"
	"github.com/ppiankov/mirror/internal/worker"
)

// AnalyzeRequest is the body of POST /api/analyze.
// EntryText is a pointer so a missing field differs from an empty entry.
type AnalyzeRequest struct {
	EntryText *string `json:"entryText" validate:"required"`
	UserID    string  `json:"userId" validate:"required"`
}

// AnalyzeResponse is returned for a created analysis
type AnalyzeResponse struct {
	UserID   string              `json:"user_id"`
	Analysis model.EntryAnalysis `json:"analysis"`
}

// SummaryEntry is one entry in a summary request
type SummaryEntry struct {
	ID        string    `json:"id"`
	EntryText *string   `json:"entryText" validate:"required"`
	Timestamp time.Time `json:"timestamp"`
}

// SummaryRequest is the body of POST /api/summary
type SummaryRequest struct {
	Entries []SummaryEntry `json:"entries" validate:"required,min=1,dive"`
}

// SummaryResponse carries the weekly digest and mood timeline
type SummaryResponse struct {
	Summary  model.WeeklySummary   `json:"summary"`
	Timeline []model.TimelinePoint `json:"timeline"`
}

func newValidator() *validator.Validate {
	v := validator.New()
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
	return v
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		s.logger.Error("failed to write health check response", "error", err)
	}
}

func (s *Server) handleAnalyze(w http.ResponseWriter, r *http.Request) {
	var req AnalyzeRequest
	if !s.decode(w, r, &req) {
		return
	}

	analysis, err := s.analyzer.Analyze(*req.EntryText)
	if err != nil {
		s.respondAnalysisError(w, r, err)
		return
	}

	s.respondJSON(w, http.StatusCreated, AnalyzeResponse{
		UserID:   req.UserID,
		Analysis: analysis,
	})
}

func (s *Server) handleSummary(w http.ResponseWriter, r *http.Request) {
	var req SummaryRequest
	if !s.decode(w, r, &req) {
		return
	}

	entries := make([]model.JournalEntry, len(req.Entries))
	for i, e := range req.Entries {
		entries[i] = model.JournalEntry{ID: e.ID, Text: *e.EntryText, Timestamp: e.Timestamp}
	}

	processor := worker.NewBatchProcessor(s.analyzer, s.cfg.Concurrency.Workers)
	results := processor.ProcessEntries(r.Context(), entries)
	for _, res := range results {
		if res.Error != nil {
			s.respondAnalysisError(w, r, res.Error)
			return
		}
	}

	analyzed := worker.Succeeded(results)
	s.respondJSON(w, http.StatusOK, SummaryResponse{
		Summary:  insight.WeeklySummary(analyzed),
		Timeline: insight.Timeline(analyzed, s.cfg.Insight),
	})
}

// decode reads and validates a JSON body, writing the error response on failure
func (s *Server) decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if s.cfg.Server.MaxBodyBytes > 0 {
		r.Body = http.MaxBytesReader(w, r.Body, s.cfg.Server.MaxBodyBytes)
	}

	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.respondError(w, r, http.StatusRequestEntityTooLarge, "request body too large", err)
			return false
		}
		s.respondError(w, r, http.StatusBadRequest, "invalid request body", model.NewInvalidInputError(err.Error()))
		return false
	}

	if err := s.validate.Struct(v); err != nil {
		s.respondError(w, r, http.StatusBadRequest, validationMessage(err), model.NewInvalidInputError(err.Error()))
		return false
	}
	return true
}

func (s *Server) respondAnalysisError(w http.ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, model.ErrInvalidInput):
		s.respondError(w, r, http.StatusBadRequest, "entryText must be valid text", err)
	default:
		s.respondError(w, r, http.StatusInternalServerError, "analysis failed", err)
	}
}

func validationMessage(err error) string {
	var verrs validator.ValidationErrors
	if !errors.As(err, &verrs) || len(verrs) == 0 {
		return "invalid request"
	}

	fe := verrs[0]
	// Namespace is "Request.field[0].sub"; drop the struct name
	field := fe.Namespace()
	if _, rest, ok := strings.Cut(field, "."); ok {
		field = rest
	}
	switch fe.Tag() {
	case "required":
		return fmt.Sprintf("%s is required", field)
	case "min":
		return fmt.Sprintf("%s must have at least %s item(s)", field, fe.Param())
	default:
		return fmt.Sprintf("%s is invalid", field)
	}
}
