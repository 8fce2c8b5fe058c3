// Package httpapi exposes the diagnosis engine over HTTP. The error
// surface follows the front end's expectations: JSON on success, plain
// text with the provider or validation message on failure.
package httpapi

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"strconv"
	"strings"

	"go.uber.org/zap"

	"github.com/mauromattos-lab/NexusLab/internal/diagnosis"
	"github.com/mauromattos-lab/NexusLab/internal/leadstore"
	"github.com/mauromattos-lab/NexusLab/internal/report"
)

// genericFailure is the Portuguese fallback body for downstream
// failures that carry no message of their own.
const genericFailure = "Erro ao gerar diagnóstico"

// LeadStore is the optional persistence hook; a nil store disables lead
// capture and the listing endpoint entirely.
type LeadStore interface {
	Save(ctx context.Context, profile diagnosis.BusinessProfile, result diagnosis.DiagnosisResult) error
	List(ctx context.Context, limit int) ([]leadstore.Lead, error)
	Count(ctx context.Context) (int, error)
}

// PDFRenderer turns report markdown into PDF bytes. Nil disables the
// report endpoint.
type PDFRenderer interface {
	Render(ctx context.Context, markdown string) ([]byte, error)
}

type Server struct {
	engine  *diagnosis.Engine
	credErr string // set when no provider credential was configured at startup
	leads   LeadStore
	pdf     PDFRenderer
	logger  *zap.Logger
}

// NewServer wires the handler tree. engine may be nil when the provider
// credential is missing; credErr then carries the exact message returned
// as the HTTP 500 body, so a misconfigured deployment fails loudly per
// request instead of refusing to boot.
func NewServer(engine *diagnosis.Engine, credErr string, leads LeadStore, pdf PDFRenderer, logger *zap.Logger) http.Handler {
	if logger == nil {
		logger = zap.NewNop()
	}
	s := &Server{engine: engine, credErr: credErr, leads: leads, pdf: pdf, logger: logger}
	mux := http.NewServeMux()
	mux.HandleFunc("/api/diagnosis", s.handleDiagnosis)
	mux.HandleFunc("/api/report.pdf", s.handleReportPDF)
	mux.HandleFunc("/api/leads", s.handleLeads)
	mux.HandleFunc("/api/health", s.handleHealth)
	return mux
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

func writeText(w http.ResponseWriter, status int, msg string) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.WriteHeader(status)
	_, _ = io.WriteString(w, msg)
}

func methodOnly(w http.ResponseWriter, r *http.Request, method string) bool {
	if r.Method != method {
		writeText(w, http.StatusMethodNotAllowed, "Method Not Allowed")
		return false
	}
	return true
}

func (s *Server) handleDiagnosis(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	if s.engine == nil {
		writeText(w, http.StatusInternalServerError, s.credErr)
		return
	}

	var req struct {
		Data *diagnosis.BusinessProfile `json:"data"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == nil {
		writeText(w, http.StatusBadRequest, "Corpo inválido: esperado { data }")
		return
	}

	result, err := s.engine.Diagnose(r.Context(), *req.Data)
	if err != nil {
		s.logger.Error("diagnosis failed",
			zap.String("businessType", string(req.Data.BusinessType)),
			zap.Error(err))
		msg := strings.TrimSpace(err.Error())
		if msg == "" {
			msg = genericFailure
		}
		writeText(w, http.StatusInternalServerError, msg)
		return
	}

	if s.leads != nil {
		if err := s.leads.Save(r.Context(), *req.Data, result); err != nil {
			// Lead capture is best-effort; the visitor still gets their result.
			s.logger.Warn("lead save failed", zap.Error(err))
		}
	}

	s.logger.Info("diagnosis completed",
		zap.String("businessType", string(req.Data.BusinessType)),
		zap.Int("score", result.PotentialTransformationScore),
		zap.Int("solutions", len(result.Solutions)))
	writeJSON(w, http.StatusOK, result)
}

func (s *Server) handleReportPDF(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodPost) {
		return
	}
	if s.pdf == nil {
		writeText(w, http.StatusServiceUnavailable, "pdf renderer unavailable")
		return
	}

	var req struct {
		Data   *diagnosis.BusinessProfile `json:"data"`
		Result *diagnosis.DiagnosisResult `json:"result"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil || req.Data == nil || req.Result == nil {
		writeText(w, http.StatusBadRequest, "Corpo inválido: esperado { data, result }")
		return
	}

	markdown := report.BuildMarkdown(*req.Data, *req.Result)
	pdf, err := s.pdf.Render(r.Context(), markdown)
	if err != nil {
		s.logger.Error("pdf render failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, genericFailure)
		return
	}

	w.Header().Set("Content-Type", "application/pdf")
	w.Header().Set("Content-Disposition", `attachment; filename="diagnostico-nexus.pdf"`)
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(pdf)
}

// handleLeads returns the most recently captured leads, newest first.
// This is an operator surface, not part of the visitor flow.
func (s *Server) handleLeads(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	if s.leads == nil {
		writeText(w, http.StatusServiceUnavailable, "lead store unavailable")
		return
	}

	limit := 0
	if raw := r.URL.Query().Get("limit"); raw != "" {
		n, err := strconv.Atoi(raw)
		if err != nil || n <= 0 {
			writeText(w, http.StatusBadRequest, "Parâmetro inválido: limit")
			return
		}
		limit = n
	}

	leads, err := s.leads.List(r.Context(), limit)
	if err != nil {
		s.logger.Error("lead list failed", zap.Error(err))
		writeText(w, http.StatusInternalServerError, genericFailure)
		return
	}
	if leads == nil {
		leads = []leadstore.Lead{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"leads": leads})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !methodOnly(w, r, http.MethodGet) {
		return
	}
	payload := map[string]any{
		"ok":         true,
		"configured": s.engine != nil,
	}
	if s.leads != nil {
		if n, err := s.leads.Count(r.Context()); err == nil {
			payload["leads"] = n
		}
	}
	writeJSON(w, http.StatusOK, payload)
}
