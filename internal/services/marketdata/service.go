// Package marketdata provides the gateway between the analytics engine and
// the market data and news providers. Every upstream failure is absorbed
// here into a neutral empty result; the engine never sees a transport error.
package marketdata

import (
	"context"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/interfaces"
	"github.com/finsight/finsight/internal/models"
)

// Service implements MarketDataGateway. Either client may be nil, in which
// case its lookups degrade to the neutral empty result.
type Service struct {
	market interfaces.MarketDataClient
	news   interfaces.NewsClient
	logger *common.Logger
}

// NewService creates a new market data gateway
func NewService(market interfaces.MarketDataClient, news interfaces.NewsClient, logger *common.Logger) *Service {
	return &Service{
		market: market,
		news:   news,
		logger: logger,
	}
}

// Profile fetches company attributes for a ticker. Fetched fresh on every
// call; a failed or missing lookup yields the zero-value profile.
func (s *Service) Profile(ctx context.Context, ticker string) models.CompanyProfile {
	if s.market == nil {
		return models.CompanyProfile{Ticker: ticker}
	}

	profile, err := s.market.GetProfile(ctx, ticker)
	if err != nil || profile == nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Msg("Profile fetch failed, using empty profile")
		return models.CompanyProfile{Ticker: ticker}
	}

	return *profile
}

// History fetches daily bars for a lookback period; empty series on failure.
func (s *Service) History(ctx context.Context, ticker string, period string) models.PriceSeries {
	if s.market == nil {
		return models.PriceSeries{}
	}

	series, err := s.market.GetHistory(ctx, ticker, period)
	if err != nil {
		s.logger.Warn().Err(err).Str("ticker", ticker).Str("period", period).Msg("History fetch failed, using empty series")
		return models.PriceSeries{}
	}

	return series
}

// News fetches recent headlines; empty when unconfigured or on failure.
func (s *Service) News(ctx context.Context, query string, limit int) []models.NewsItem {
	if s.news == nil {
		return []models.NewsItem{}
	}

	items, err := s.news.GetLatestNews(ctx, query, limit)
	if err != nil {
		s.logger.Warn().Err(err).Str("query", query).Msg("News fetch failed, returning no headlines")
		return []models.NewsItem{}
	}

	return items
}

// Ensure Service implements MarketDataGateway
var _ interfaces.MarketDataGateway = (*Service)(nil)
