package interfaces

import (
	"context"

	"github.com/finsight/finsight/internal/models"
)

// MarketDataGateway is the engine-facing view of the market data and news
// providers. Every method absorbs upstream failures into a neutral empty
// result — zero-value profile, empty series, empty slice — and never returns
// an error. The engine treats those neutral results as legitimate inputs.
type MarketDataGateway interface {
	// Profile fetches company attributes; zero value on failure
	Profile(ctx context.Context, ticker string) models.CompanyProfile

	// History fetches daily bars for a lookback period; empty on failure
	History(ctx context.Context, ticker string, period string) models.PriceSeries

	// News fetches recent headlines; empty when unconfigured or on failure
	News(ctx context.Context, query string, limit int) []models.NewsItem
}

// NarrativeGenerator converts a prompt into prose. On any failure it returns
// a fixed unavailability message rather than an error, so narrative failure
// can never abort a surrounding computation.
type NarrativeGenerator interface {
	Generate(ctx context.Context, prompt string) string
}

// AnalyticsService is the portfolio analytics engine contract. Operations
// never panic or return transport errors: upstream failures degrade to
// sentinel values, and the only error any operation returns is the
// empty-portfolio marker.
type AnalyticsService interface {
	// SectorBreakdown aggregates raw holding weights by sector label,
	// descending by percentage; empty slice for an empty portfolio
	SectorBreakdown(ctx context.Context, p *models.Portfolio) models.SectorBreakdown

	// TickerVolatilities computes annualized volatility per ticker;
	// NaN entries mark insufficient data
	TickerVolatilities(ctx context.Context, p *models.Portfolio, period string) models.VolatilityMap

	// Volatility computes annualized volatility for one held ticker
	Volatility(ctx context.Context, p *models.Portfolio, ticker string, period string) float64

	// PortfolioVolatility computes weighted portfolio annualized volatility
	// over the dates common to every holding with return data; NaN when no
	// overlap exists
	PortfolioVolatility(ctx context.Context, p *models.Portfolio, period string) float64

	// AnalyzeRisk builds a risk snapshot; ErrEmptyPortfolio when empty
	AnalyzeRisk(ctx context.Context, p *models.Portfolio, period string) (*models.RiskSnapshot, error)

	// PortfolioInsight returns the AI narrative for the portfolio, or a
	// fixed message when the portfolio is empty
	PortfolioInsight(ctx context.Context, p *models.Portfolio, audience string) string

	// GenerateReport assembles the full report; ErrEmptyPortfolio when empty
	GenerateReport(ctx context.Context, p *models.Portfolio, audience string) (*models.Report, error)

	// TickerSummary produces a single-ticker market summary fusing profile,
	// recent prices, and headlines
	TickerSummary(ctx context.Context, ticker string, period string, audience string) string
}
