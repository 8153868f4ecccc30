// Package interfaces defines service contracts for FinSight
package interfaces

import (
	"context"

	"github.com/finsight/finsight/internal/models"
)

// MarketDataClient provides access to a market data provider. Implementations
// return errors; the marketdata gateway is responsible for absorbing them.
type MarketDataClient interface {
	// GetProfile retrieves company profile attributes for a ticker
	GetProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error)

	// GetHistory retrieves daily price bars over a lookback period
	// (e.g. "3mo", "6mo", "1y"), oldest first
	GetHistory(ctx context.Context, ticker string, period string) (models.PriceSeries, error)
}

// NewsClient provides access to a headline provider
type NewsClient interface {
	// GetLatestNews retrieves recent headlines for a query string
	GetLatestNews(ctx context.Context, query string, limit int) ([]models.NewsItem, error)
}

// GenerativeClient provides access to a text-generation model
type GenerativeClient interface {
	// GenerateContent generates AI content from a prompt
	GenerateContent(ctx context.Context, prompt string) (string, error)
}
