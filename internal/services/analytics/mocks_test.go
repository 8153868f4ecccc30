package analytics

import (
	"context"
	"time"

	"github.com/finsight/finsight/internal/models"
	"github.com/finsight/finsight/internal/services/narrative"
)

// mockGateway is a map-backed MarketDataGateway. Missing tickers yield the
// same neutral empties the real gateway produces.
type mockGateway struct {
	profiles map[string]models.CompanyProfile
	history  map[string]models.PriceSeries
	news     map[string][]models.NewsItem

	profileCalls  int
	historyCalls  int
	lastNewsLimit int
}

func newMockGateway() *mockGateway {
	return &mockGateway{
		profiles: make(map[string]models.CompanyProfile),
		history:  make(map[string]models.PriceSeries),
		news:     make(map[string][]models.NewsItem),
	}
}

func (m *mockGateway) Profile(ctx context.Context, ticker string) models.CompanyProfile {
	m.profileCalls++
	if p, ok := m.profiles[ticker]; ok {
		return p
	}
	return models.CompanyProfile{Ticker: ticker}
}

func (m *mockGateway) History(ctx context.Context, ticker string, period string) models.PriceSeries {
	m.historyCalls++
	if s, ok := m.history[ticker]; ok {
		return s
	}
	return models.PriceSeries{}
}

func (m *mockGateway) News(ctx context.Context, query string, limit int) []models.NewsItem {
	m.lastNewsLimit = limit
	if n, ok := m.news[query]; ok {
		return n
	}
	return []models.NewsItem{}
}

// mockNarrative is a canned NarrativeGenerator. With failing set it behaves
// like the real service does when the model is down: the fixed fallback.
type mockNarrative struct {
	response string
	failing  bool
	prompts  []string
}

func (m *mockNarrative) Generate(ctx context.Context, prompt string) string {
	m.prompts = append(m.prompts, prompt)
	if m.failing {
		return narrative.UnavailableMessage
	}
	if m.response != "" {
		return m.response
	}
	return "Mocked AI response"
}

// bars builds a daily price series from closes, one bar per day.
func bars(closes ...float64) models.PriceSeries {
	start := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)
	series := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return series
}

// barsFrom is bars with an explicit start date, for overlap control.
func barsFrom(start time.Time, closes ...float64) models.PriceSeries {
	series := make(models.PriceSeries, len(closes))
	for i, c := range closes {
		series[i] = models.PriceBar{
			Date:   start.AddDate(0, 0, i),
			Open:   c,
			High:   c,
			Low:    c,
			Close:  c,
			Volume: 1000,
		}
	}
	return series
}
