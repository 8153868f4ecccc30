package marketdata

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/models"
)

type mockMarketClient struct {
	profile *models.CompanyProfile
	series  models.PriceSeries
	err     error
}

func (m *mockMarketClient) GetProfile(ctx context.Context, ticker string) (*models.CompanyProfile, error) {
	return m.profile, m.err
}

func (m *mockMarketClient) GetHistory(ctx context.Context, ticker string, period string) (models.PriceSeries, error) {
	return m.series, m.err
}

type mockNewsClient struct {
	items []models.NewsItem
	err   error
}

func (m *mockNewsClient) GetLatestNews(ctx context.Context, query string, limit int) ([]models.NewsItem, error) {
	return m.items, m.err
}

func TestProfile_Success(t *testing.T) {
	client := &mockMarketClient{profile: &models.CompanyProfile{Ticker: "AAPL", Name: "Apple Inc.", Sector: "Technology"}}
	svc := NewService(client, nil, common.NewSilentLogger())

	profile := svc.Profile(context.Background(), "AAPL")

	assert.Equal(t, "Apple Inc.", profile.Name)
	assert.Equal(t, "Technology", profile.Sector)
}

func TestProfile_ErrorYieldsZeroProfile(t *testing.T) {
	client := &mockMarketClient{err: errors.New("upstream down")}
	svc := NewService(client, nil, common.NewSilentLogger())

	profile := svc.Profile(context.Background(), "AAPL")

	assert.Equal(t, models.CompanyProfile{Ticker: "AAPL"}, profile)
}

func TestProfile_NilClient(t *testing.T) {
	svc := NewService(nil, nil, common.NewSilentLogger())

	profile := svc.Profile(context.Background(), "AAPL")

	assert.Equal(t, models.CompanyProfile{Ticker: "AAPL"}, profile)
}

func TestHistory_Success(t *testing.T) {
	series := models.PriceSeries{{Date: time.Now().UTC(), Close: 101}}
	svc := NewService(&mockMarketClient{series: series}, nil, common.NewSilentLogger())

	got := svc.History(context.Background(), "AAPL", "3mo")

	assert.Len(t, got, 1)
}

func TestHistory_ErrorYieldsEmptySeries(t *testing.T) {
	svc := NewService(&mockMarketClient{err: errors.New("timeout")}, nil, common.NewSilentLogger())

	got := svc.History(context.Background(), "AAPL", "3mo")

	assert.NotNil(t, got)
	assert.Empty(t, got)
}

func TestNews_Success(t *testing.T) {
	items := []models.NewsItem{{Title: "Apple ships new device", Source: "Reuters"}}
	svc := NewService(nil, &mockNewsClient{items: items}, common.NewSilentLogger())

	got := svc.News(context.Background(), "AAPL", 5)

	assert.Len(t, got, 1)
}

func TestNews_ErrorOrUnconfiguredYieldsEmpty(t *testing.T) {
	svc := NewService(nil, &mockNewsClient{err: errors.New("401")}, common.NewSilentLogger())
	assert.Empty(t, svc.News(context.Background(), "AAPL", 5))

	svc = NewService(nil, nil, common.NewSilentLogger())
	assert.Empty(t, svc.News(context.Background(), "AAPL", 5))
}
