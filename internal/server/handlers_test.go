package server

import (
	"context"
	"encoding/json"
	"math"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/finsight/finsight/internal/app"
	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/models"
	"github.com/finsight/finsight/internal/services/analytics"
)

// mockAnalytics is a canned AnalyticsService recording the arguments the
// handlers pass through.
type mockAnalytics struct {
	insight    string
	snapshot   *models.RiskSnapshot
	report     *models.Report
	summary    string
	err        error

	lastAudience string
	lastPeriod   string
	lastTicker   string
	lastTickers  []string
}

func (m *mockAnalytics) SectorBreakdown(ctx context.Context, p *models.Portfolio) models.SectorBreakdown {
	return models.SectorBreakdown{}
}

func (m *mockAnalytics) TickerVolatilities(ctx context.Context, p *models.Portfolio, period string) models.VolatilityMap {
	return models.VolatilityMap{}
}

func (m *mockAnalytics) Volatility(ctx context.Context, p *models.Portfolio, ticker string, period string) float64 {
	return math.NaN()
}

func (m *mockAnalytics) PortfolioVolatility(ctx context.Context, p *models.Portfolio, period string) float64 {
	return math.NaN()
}

func (m *mockAnalytics) AnalyzeRisk(ctx context.Context, p *models.Portfolio, period string) (*models.RiskSnapshot, error) {
	m.lastPeriod = period
	m.lastTickers = p.Tickers()
	return m.snapshot, m.err
}

func (m *mockAnalytics) PortfolioInsight(ctx context.Context, p *models.Portfolio, audience string) string {
	m.lastAudience = audience
	m.lastTickers = p.Tickers()
	return m.insight
}

func (m *mockAnalytics) GenerateReport(ctx context.Context, p *models.Portfolio, audience string) (*models.Report, error) {
	m.lastAudience = audience
	return m.report, m.err
}

func (m *mockAnalytics) TickerSummary(ctx context.Context, ticker string, period string, audience string) string {
	m.lastTicker = ticker
	m.lastPeriod = period
	m.lastAudience = audience
	return m.summary
}

func newTestServer(mock *mockAnalytics) *Server {
	a := &app.App{
		Config:    common.NewDefaultConfig(),
		Logger:    common.NewSilentLogger(),
		Analytics: mock,
	}
	return NewServer(a)
}

func doRequest(t *testing.T, srv *Server, method, path, body string) *httptest.ResponseRecorder {
	t.Helper()
	var req *http.Request
	if body == "" {
		req = httptest.NewRequest(method, path, nil)
	} else {
		req = httptest.NewRequest(method, path, strings.NewReader(body))
		req.Header.Set("Content-Type", "application/json")
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &out))
	return out
}

func TestHandleHealth(t *testing.T) {
	srv := newTestServer(&mockAnalytics{})

	rec := doRequest(t, srv, http.MethodGet, "/api/health", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "ok", decodeBody(t, rec)["status"])
}

func TestHandleVersion(t *testing.T) {
	srv := newTestServer(&mockAnalytics{})

	rec := doRequest(t, srv, http.MethodGet, "/api/version", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Contains(t, body, "version")
	assert.Contains(t, body, "build")
}

func TestHandleConfig_NoSecrets(t *testing.T) {
	srv := newTestServer(&mockAnalytics{})

	rec := doRequest(t, srv, http.MethodGet, "/api/config", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "3mo", body["default_period"])
	assert.Equal(t, false, body["gemini_enabled"])
	assert.Equal(t, false, body["production"], "default environment is development")
	assert.NotContains(t, rec.Body.String(), "api_key")
}

func TestHandlePortfolioInsight(t *testing.T) {
	mock := &mockAnalytics{insight: "Tech-heavy portfolio."}
	srv := newTestServer(mock)

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio-insight",
		`{"portfolio": {"AAPL": 0.6, "MSFT": 0.4}, "audience": "Analyst"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Tech-heavy portfolio.", decodeBody(t, rec)["insights"])
	assert.Equal(t, "Analyst", mock.lastAudience)
	assert.ElementsMatch(t, []string{"AAPL", "MSFT"}, mock.lastTickers)
}

func TestHandlePortfolioInsight_DefaultAudience(t *testing.T) {
	mock := &mockAnalytics{insight: "ok"}
	srv := newTestServer(mock)

	rec := doRequest(t, srv, http.MethodPost, "/api/portfolio-insight",
		`{"portfolio": {"AAPL": 1.0}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "Beginner", mock.lastAudience)
}

func TestHandlePortfolioInsight_MethodNotAllowed(t *testing.T) {
	srv := newTestServer(&mockAnalytics{})

	rec := doRequest(t, srv, http.MethodGet, "/api/portfolio-insight", "")

	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
}

func TestPortfolioValidation(t *testing.T) {
	srv := newTestServer(&mockAnalytics{})

	cases := []struct {
		name string
		body string
		want string
	}{
		{"empty portfolio", `{"portfolio": {}}`, "Portfolio weights must be positive"},
		{"missing portfolio", `{}`, "Portfolio weights must be positive"},
		{"zero weight", `{"portfolio": {"AAPL": 0, "MSFT": 1.0}}`, "Portfolio weight for AAPL must be positive"},
		{"negative weight", `{"portfolio": {"aapl": -0.2, "MSFT": 1.2}}`, "Portfolio weight for AAPL must be positive"},
		{"sum below one", `{"portfolio": {"AAPL": 0.5, "MSFT": 0.4}}`, "Portfolio weights must sum to 1.0"},
		{"sum above one", `{"portfolio": {"AAPL": 0.7, "MSFT": 0.7}}`, "Portfolio weights must sum to 1.0"},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			rec := doRequest(t, srv, http.MethodPost, "/api/risk-analysis", tc.body)
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, tc.want, decodeBody(t, rec)["error"])
		})
	}
}

func TestPortfolioValidation_ToleratesFloatDrift(t *testing.T) {
	pv := 0.2
	mock := &mockAnalytics{snapshot: &models.RiskSnapshot{PortfolioVolatility: &pv}}
	srv := newTestServer(mock)

	// 0.1+0.2+0.7 accumulates binary float error well inside the tolerance.
	rec := doRequest(t, srv, http.MethodPost, "/api/risk-analysis",
		`{"portfolio": {"AAPL": 0.1, "MSFT": 0.2, "JNJ": 0.7}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestHandleRiskAnalysis(t *testing.T) {
	pv := 0.223
	mock := &mockAnalytics{snapshot: &models.RiskSnapshot{
		PortfolioVolatility: &pv,
		SectorConcentration: models.SectorConcentration{
			Flagged:   true,
			TopSector: models.SectorWeight{Sector: "Technology", Pct: 100},
		},
		HighVolStocks:      []string{},
		TickerVolatilities: models.VolatilityMap{"AAPL": 0.3},
	}}
	srv := newTestServer(mock)

	rec := doRequest(t, srv, http.MethodPost, "/api/risk-analysis",
		`{"portfolio": {"AAPL": 1.0}, "period": "6mo"}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "6mo", mock.lastPeriod)
	body := decodeBody(t, rec)
	risk, ok := body["risk"].(map[string]interface{})
	require.True(t, ok)
	assert.Equal(t, 0.223, risk["portfolio_volatility"])
}

func TestHandleRiskAnalysis_DefaultPeriod(t *testing.T) {
	mock := &mockAnalytics{snapshot: &models.RiskSnapshot{}}
	srv := newTestServer(mock)

	doRequest(t, srv, http.MethodPost, "/api/risk-analysis", `{"portfolio": {"AAPL": 1.0}}`)

	assert.Equal(t, "3mo", mock.lastPeriod)
}

func TestHandleRiskAnalysis_EmptyPortfolioFromEngine(t *testing.T) {
	mock := &mockAnalytics{err: analytics.ErrEmptyPortfolio}
	srv := newTestServer(mock)

	rec := doRequest(t, srv, http.MethodPost, "/api/risk-analysis", `{"portfolio": {"AAPL": 1.0}}`)

	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
	assert.Equal(t, "Portfolio is empty.", decodeBody(t, rec)["error"])
}

func TestHandleReport(t *testing.T) {
	mock := &mockAnalytics{report: &models.Report{
		Holdings:            map[string]models.HoldingDetail{"AAPL": {Name: "Apple Inc."}},
		Sectors:             models.SectorBreakdown{{Sector: "Technology", Pct: 100}},
		PortfolioVolatility: models.NullableFloat(math.NaN()),
		AISummary:           "steady",
	}}
	srv := newTestServer(mock)

	rec := doRequest(t, srv, http.MethodPost, "/api/report", `{"portfolio": {"AAPL": 1.0}}`)

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	report, ok := body["report"].(map[string]interface{})
	require.True(t, ok)
	assert.Nil(t, report["portfolio_volatility"], "NaN must serialize as null")
	assert.Equal(t, "steady", report["ai_summary"])
}

func TestHandleStockSummary(t *testing.T) {
	mock := &mockAnalytics{summary: "Shares trended up."}
	srv := newTestServer(mock)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/aapl/summary?period=6mo&audience=Analyst", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	body := decodeBody(t, rec)
	assert.Equal(t, "AAPL", body["ticker"])
	assert.Equal(t, "Shares trended up.", body["summary"])
	assert.Equal(t, "aapl", mock.lastTicker)
	assert.Equal(t, "6mo", mock.lastPeriod)
	assert.Equal(t, "Analyst", mock.lastAudience)
}

func TestHandleStockSummary_Defaults(t *testing.T) {
	mock := &mockAnalytics{summary: "ok"}
	srv := newTestServer(mock)

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/summary", "")

	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "3mo", mock.lastPeriod)
	assert.Equal(t, "Beginner", mock.lastAudience)
}

func TestRouteStocks_NotFound(t *testing.T) {
	srv := newTestServer(&mockAnalytics{})

	rec := doRequest(t, srv, http.MethodGet, "/api/stocks/AAPL/history", "")

	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestInvalidJSONBody(t *testing.T) {
	srv := newTestServer(&mockAnalytics{})

	rec := doRequest(t, srv, http.MethodPost, "/api/report", `{"portfolio": `)

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, decodeBody(t, rec)["error"], "Invalid JSON")
}

func TestCORSHeaders(t *testing.T) {
	srv := newTestServer(&mockAnalytics{})

	rec := doRequest(t, srv, http.MethodOptions, "/api/health", "")

	assert.Equal(t, http.StatusNoContent, rec.Code)
	assert.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
}
