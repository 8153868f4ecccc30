package server

import (
	"errors"
	"fmt"
	"math"
	"net/http"
	"strings"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/models"
	"github.com/finsight/finsight/internal/services/analytics"
)

// weightTolerance is how far the weight sum may drift from 1.0.
const weightTolerance = 1e-6

// portfolioRequest is the shared request body for the analytics endpoints.
type portfolioRequest struct {
	Portfolio map[string]float64 `json:"portfolio"`
	Period    string             `json:"period,omitempty"`
	Audience  string             `json:"audience,omitempty"`
}

// validate enforces the API-layer weight contract: every weight strictly
// positive and the sum within tolerance of 1.0. Violations are rejected here,
// before the engine is ever invoked.
func (req *portfolioRequest) validate() error {
	if len(req.Portfolio) == 0 {
		return errors.New("Portfolio weights must be positive")
	}

	total := 0.0
	for ticker, weight := range req.Portfolio {
		if weight <= 0 {
			return fmt.Errorf("Portfolio weight for %s must be positive", strings.ToUpper(strings.TrimSpace(ticker)))
		}
		total += weight
	}

	if math.Abs(total-1.0) > weightTolerance {
		return errors.New("Portfolio weights must sum to 1.0")
	}

	return nil
}

// buildPortfolio constructs a fresh per-request portfolio from the validated
// weight map.
func (req *portfolioRequest) buildPortfolio() *models.Portfolio {
	p := models.NewPortfolio()
	for ticker, weight := range req.Portfolio {
		p.AddStock(ticker, weight)
	}
	return p
}

// decodePortfolioRequest decodes and validates the request body; on failure
// it writes the error response and returns false.
func decodePortfolioRequest(w http.ResponseWriter, r *http.Request) (*portfolioRequest, bool) {
	var req portfolioRequest
	if !DecodeJSON(w, r, &req) {
		return nil, false
	}
	if err := req.validate(); err != nil {
		WriteError(w, http.StatusBadRequest, err.Error())
		return nil, false
	}
	return &req, true
}

// --- System handlers ---

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleVersion(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet, http.MethodHead) {
		return
	}
	WriteJSON(w, http.StatusOK, map[string]string{
		"version": common.GetVersion(),
		"build":   common.GetBuild(),
		"commit":  common.GetGitCommit(),
	})
}

// handleConfig exposes a sanitized view of the running configuration.
// API keys never leave the process.
func (s *Server) handleConfig(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	cfg := s.app.Config
	WriteJSON(w, http.StatusOK, map[string]interface{}{
		"environment":      cfg.Environment,
		"production":       cfg.IsProduction(),
		"default_period":   cfg.Analytics.DefaultPeriod,
		"default_audience": cfg.Analytics.DefaultAudience,
		"gemini_model":     cfg.Clients.Gemini.Model,
		"gemini_enabled":   s.app.GeminiClient != nil,
		"newsapi_enabled":  s.app.NewsClient != nil,
	})
}

// --- Analytics handlers ---

func (s *Server) handlePortfolioInsight(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := decodePortfolioRequest(w, r)
	if !ok {
		return
	}

	audience := req.Audience
	if audience == "" {
		audience = s.app.Config.Analytics.DefaultAudience
	}

	s.logger.Info().Int("holdings", len(req.Portfolio)).Str("audience", audience).Msg("Generating portfolio insight")

	insights := s.app.Analytics.PortfolioInsight(r.Context(), req.buildPortfolio(), audience)

	WriteJSON(w, http.StatusOK, map[string]string{"insights": insights})
}

func (s *Server) handleRiskAnalysis(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := decodePortfolioRequest(w, r)
	if !ok {
		return
	}

	period := req.Period
	if period == "" {
		period = s.app.Config.Analytics.DefaultPeriod
	}

	s.logger.Info().Int("holdings", len(req.Portfolio)).Str("period", period).Msg("Running risk analysis")

	risk, err := s.app.Analytics.AnalyzeRisk(r.Context(), req.buildPortfolio(), period)
	if err != nil {
		if errors.Is(err, analytics.ErrEmptyPortfolio) {
			WriteError(w, http.StatusUnprocessableEntity, "Portfolio is empty.")
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Risk analysis failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"risk": risk})
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodPost) {
		return
	}

	req, ok := decodePortfolioRequest(w, r)
	if !ok {
		return
	}

	audience := req.Audience
	if audience == "" {
		audience = s.app.Config.Analytics.DefaultAudience
	}

	s.logger.Info().Int("holdings", len(req.Portfolio)).Msg("Generating report")

	report, err := s.app.Analytics.GenerateReport(r.Context(), req.buildPortfolio(), audience)
	if err != nil {
		if errors.Is(err, analytics.ErrEmptyPortfolio) {
			WriteError(w, http.StatusUnprocessableEntity, "Portfolio is empty.")
			return
		}
		WriteError(w, http.StatusInternalServerError, fmt.Sprintf("Report generation failed: %v", err))
		return
	}

	WriteJSON(w, http.StatusOK, map[string]interface{}{"report": report})
}

// --- Stock handlers ---

// routeStocks dispatches /api/stocks/{ticker}/summary.
func (s *Server) routeStocks(w http.ResponseWriter, r *http.Request) {
	if strings.HasSuffix(r.URL.Path, "/summary") {
		s.handleStockSummary(w, r)
		return
	}
	WriteError(w, http.StatusNotFound, "Not found")
}

func (s *Server) handleStockSummary(w http.ResponseWriter, r *http.Request) {
	if !RequireMethod(w, r, http.MethodGet) {
		return
	}

	ticker := PathParam(r, "/api/stocks/", "/summary")
	if ticker == "" {
		WriteError(w, http.StatusBadRequest, "Ticker is required")
		return
	}

	period := r.URL.Query().Get("period")
	if period == "" {
		period = s.app.Config.Analytics.DefaultPeriod
	}
	audience := r.URL.Query().Get("audience")
	if audience == "" {
		audience = s.app.Config.Analytics.DefaultAudience
	}

	summary := s.app.Analytics.TickerSummary(r.Context(), ticker, period, audience)

	WriteJSON(w, http.StatusOK, map[string]string{
		"ticker":  models.NormalizeTicker(ticker),
		"summary": summary,
	})
}
