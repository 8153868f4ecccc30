// Package analytics implements the portfolio analytics engine: sector
// composition, per-asset and portfolio annualized volatility, composite risk
// classification, and assembly of the AI narrative context.
//
// The engine computes with holes rather than aborting: upstream data
// failures arrive as neutral empty results from the gateway and degrade to
// NaN sentinels or default labels, never to errors. The only error any
// operation returns is ErrEmptyPortfolio.
package analytics

import (
	"context"
	"errors"
	"math"
	"sort"
	"time"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/interfaces"
	"github.com/finsight/finsight/internal/models"
)

// ErrEmptyPortfolio marks an operation invoked on a portfolio with no
// holdings. This is a precondition failure distinct from the NaN results of
// degenerate computations.
var ErrEmptyPortfolio = errors.New("portfolio is empty")

// EmptyPortfolioMessage is the fixed narrative-path response for an empty
// portfolio. It is produced locally, never delegated to the generator.
const EmptyPortfolioMessage = "Portfolio is empty. Add some tickers first."

// DefaultPeriod is the price history lookback used when none is given.
const DefaultPeriod = "3mo"

// DefaultNewsLimit is the headline count fetched for ticker summaries when
// no page size is configured.
const DefaultNewsLimit = 5

// Service implements AnalyticsService
type Service struct {
	gateway   interfaces.MarketDataGateway
	narrative interfaces.NarrativeGenerator
	logger    *common.Logger
	newsLimit int
}

// ServiceOption configures the engine
type ServiceOption func(*Service)

// WithNewsLimit sets how many headlines ticker summaries fetch
func WithNewsLimit(limit int) ServiceOption {
	return func(s *Service) {
		if limit > 0 {
			s.newsLimit = limit
		}
	}
}

// NewService creates a new analytics engine
func NewService(gateway interfaces.MarketDataGateway, narrative interfaces.NarrativeGenerator, logger *common.Logger, opts ...ServiceOption) *Service {
	s := &Service{
		gateway:   gateway,
		narrative: narrative,
		logger:    logger,
		newsLimit: DefaultNewsLimit,
	}

	for _, opt := range opts {
		opt(s)
	}

	return s
}

// SectorBreakdown aggregates each holding's raw weight (as a percentage)
// under its sector label, "Unknown" when the profile has none. Results are
// sorted descending by percentage; ties keep first-appearance order. Each
// call fetches every ticker's profile fresh.
func (s *Service) SectorBreakdown(ctx context.Context, p *models.Portfolio) models.SectorBreakdown {
	tickers := p.Tickers()
	if len(tickers) == 0 {
		return models.SectorBreakdown{}
	}

	weights := p.Weights()
	totals := make(map[string]float64)
	var order []string // sector labels by first appearance

	for _, ticker := range tickers {
		profile := s.gateway.Profile(ctx, ticker)
		sector := profile.Sector
		if sector == "" {
			sector = "Unknown"
		}
		if _, seen := totals[sector]; !seen {
			order = append(order, sector)
		}
		totals[sector] += weights[ticker]
	}

	breakdown := make(models.SectorBreakdown, 0, len(order))
	for _, sector := range order {
		breakdown = append(breakdown, models.SectorWeight{
			Sector: sector,
			Pct:    totals[sector] * 100.0,
		})
	}

	sort.SliceStable(breakdown, func(i, j int) bool {
		return breakdown[i].Pct > breakdown[j].Pct
	})

	return breakdown
}

// TickerVolatilities computes annualized volatility per holding from daily
// close-to-close returns over the lookback period. Tickers with an empty
// series or fewer than two valid returns get NaN.
func (s *Service) TickerVolatilities(ctx context.Context, p *models.Portfolio, period string) models.VolatilityMap {
	if period == "" {
		period = DefaultPeriod
	}

	vols := make(models.VolatilityMap)
	for _, ticker := range p.Tickers() {
		series := s.gateway.History(ctx, ticker, period)
		if len(series) == 0 {
			vols[ticker] = math.NaN()
			continue
		}
		vols[ticker] = annualizedVol(returnValues(series))
	}
	return vols
}

// Volatility computes annualized volatility for a single held ticker;
// NaN for a ticker not in the portfolio.
func (s *Service) Volatility(ctx context.Context, p *models.Portfolio, ticker string, period string) float64 {
	vols := s.TickerVolatilities(ctx, p, period)
	if v, ok := vols[models.NormalizeTicker(ticker)]; ok {
		return v
	}
	return math.NaN()
}

// PortfolioVolatility computes the annualized volatility of the weighted
// portfolio return series. Per-ticker return series are inner-joined on
// common dates; holdings whose price history is missing are dropped and the
// remaining weights renormalized to sum to one. NaN when the portfolio is
// empty, no ticker yields returns, or the aligned intersection is empty.
func (s *Service) PortfolioVolatility(ctx context.Context, p *models.Portfolio, period string) float64 {
	if period == "" {
		period = DefaultPeriod
	}

	tickers := p.Tickers()
	if len(tickers) == 0 {
		return math.NaN()
	}

	perTicker := make(map[string]map[time.Time]float64)
	for _, ticker := range tickers {
		series := s.gateway.History(ctx, ticker, period)
		if len(series) == 0 {
			continue // no history: contributes zero weight, not an error
		}
		perTicker[ticker] = dailyReturns(series)
	}
	if len(perTicker) == 0 {
		return math.NaN()
	}

	dates, aligned := alignReturns(perTicker)
	if len(dates) == 0 {
		return math.NaN()
	}

	weights := p.Weights()
	totalWeight := 0.0
	for ticker := range aligned {
		totalWeight += weights[ticker]
	}
	if totalWeight == 0 {
		return math.NaN()
	}

	portReturns := make([]float64, len(dates))
	for ticker, row := range aligned {
		w := weights[ticker] / totalWeight
		for i, r := range row {
			portReturns[i] += w * r
		}
	}

	return annualizedVol(portReturns)
}

// AnalyzeRisk builds the portfolio risk snapshot. The portfolio volatility
// is rounded to 3 decimal places (nil when not computable); per-ticker
// volatilities stay unrounded.
func (s *Service) AnalyzeRisk(ctx context.Context, p *models.Portfolio, period string) (*models.RiskSnapshot, error) {
	if p.IsEmpty() {
		return nil, ErrEmptyPortfolio
	}

	vols := s.TickerVolatilities(ctx, p, period)
	pvol := s.PortfolioVolatility(ctx, p, period)
	sectors := s.SectorBreakdown(ctx, p)

	risk := ClassifyRisk(sectors, pvol, vols)

	var rounded *float64
	if !math.IsNaN(pvol) {
		v := math.Round(pvol*1000) / 1000
		rounded = &v
	}

	return &models.RiskSnapshot{
		PortfolioVolatility: rounded,
		SectorConcentration: models.SectorConcentration{
			Flagged:   risk.ConcentrationFlag,
			TopSector: risk.TopSector,
		},
		HighVolStocks:      risk.HighVolTickers,
		TickerVolatilities: vols,
	}, nil
}

// holdingsDetail gathers per-ticker profile fields with defaults applied,
// plus one narrative blurb per distinct ticker.
func (s *Service) holdingsDetail(ctx context.Context, p *models.Portfolio) map[string]models.HoldingDetail {
	details := make(map[string]models.HoldingDetail)
	for _, ticker := range p.Tickers() {
		profile := s.gateway.Profile(ctx, ticker)

		name := profile.Name
		if name == "" {
			name = "N/A"
		}
		sector := profile.Sector
		if sector == "" {
			sector = "Unknown"
		}

		details[ticker] = models.HoldingDetail{
			Name:      name,
			Sector:    sector,
			MarketCap: profile.MarketCap,
			ForwardPE: profile.ForwardPE,
			Beta:      profile.Beta,
			Summary:   s.narrative.Generate(ctx, buildBlurbPrompt(ticker)),
		}
	}
	return details
}

// PortfolioInsight produces the AI narrative for the portfolio. An empty
// portfolio short-circuits to a fixed local message; otherwise the
// classification is recomputed through ClassifyRisk, folded into a prompt,
// and the generator's response (or its fallback message) returned verbatim.
func (s *Service) PortfolioInsight(ctx context.Context, p *models.Portfolio, audience string) string {
	if p.IsEmpty() {
		return EmptyPortfolioMessage
	}

	holdings := s.holdingsDetail(ctx, p)
	sectors := s.SectorBreakdown(ctx, p)
	vols := s.TickerVolatilities(ctx, p, DefaultPeriod)
	pvol := s.PortfolioVolatility(ctx, p, DefaultPeriod)

	risk := ClassifyRisk(sectors, pvol, vols)

	rounded := pvol
	if !math.IsNaN(pvol) {
		rounded = math.Round(pvol*1000) / 1000
	}

	prompt := buildInsightPrompt(
		p.Tickers(),
		p.Weights(),
		holdings,
		sectors,
		models.NullableFloat(rounded),
		risk,
		audience,
	)

	return s.narrative.Generate(ctx, prompt)
}

// GenerateReport assembles the full portfolio report: holdings detail,
// sector breakdown, raw (unrounded) portfolio volatility, and the AI insight.
func (s *Service) GenerateReport(ctx context.Context, p *models.Portfolio, audience string) (*models.Report, error) {
	if p.IsEmpty() {
		return nil, ErrEmptyPortfolio
	}

	return &models.Report{
		Holdings:            s.holdingsDetail(ctx, p),
		Sectors:             s.SectorBreakdown(ctx, p),
		PortfolioVolatility: models.NullableFloat(s.PortfolioVolatility(ctx, p, DefaultPeriod)),
		AISummary:           s.PortfolioInsight(ctx, p, audience),
	}, nil
}

// TickerSummary produces a single-ticker market summary fusing the company
// profile, the most recent price bars, and headlines. All inputs degrade to
// neutral empties; the prompt tells the model when no headlines were found.
func (s *Service) TickerSummary(ctx context.Context, ticker string, period string, audience string) string {
	ticker = models.NormalizeTicker(ticker)
	if period == "" {
		period = DefaultPeriod
	}

	profile := s.gateway.Profile(ctx, ticker)
	series := s.gateway.History(ctx, ticker, period)
	if len(series) > 10 {
		series = series[len(series)-10:]
	}
	news := s.gateway.News(ctx, ticker, s.newsLimit)

	prompt := buildTickerSummaryPrompt(ticker, profile, series, news, audience)
	return s.narrative.Generate(ctx, prompt)
}

// Ensure Service implements AnalyticsService
var _ interfaces.AnalyticsService = (*Service)(nil)
