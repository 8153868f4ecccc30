// Package app wires FinSight's configuration, clients, and services together
package app

import (
	"context"
	"fmt"
	"os"

	"github.com/joho/godotenv"

	"github.com/finsight/finsight/internal/clients/gemini"
	"github.com/finsight/finsight/internal/clients/newsapi"
	"github.com/finsight/finsight/internal/clients/yahoo"
	"github.com/finsight/finsight/internal/common"
	"github.com/finsight/finsight/internal/interfaces"
	"github.com/finsight/finsight/internal/services/analytics"
	"github.com/finsight/finsight/internal/services/marketdata"
	"github.com/finsight/finsight/internal/services/narrative"
)

// App holds all initialized clients and services. Unconfigured clients stay
// nil and their gateways degrade to neutral results, so the analytics engine
// keeps working with holes instead of failing at startup.
type App struct {
	Config       *common.Config
	Logger       *common.Logger
	MarketClient interfaces.MarketDataClient
	NewsClient   interfaces.NewsClient
	GeminiClient interfaces.GenerativeClient
	Gateway      interfaces.MarketDataGateway
	Narrative    interfaces.NarrativeGenerator
	Analytics    interfaces.AnalyticsService
}

// NewApp initializes configuration, logging, clients, and services.
// configPath may be empty, in which case FINSIGHT_CONFIG and the default
// location are tried.
func NewApp(configPath string) (*App, error) {
	// Load .env if present; real environment wins over file values
	_ = godotenv.Load()

	if configPath == "" {
		configPath = os.Getenv("FINSIGHT_CONFIG")
	}
	if configPath == "" {
		configPath = "config/finsight.toml"
	}

	config, err := common.LoadConfig(configPath)
	if err != nil {
		return nil, fmt.Errorf("failed to load config: %w", err)
	}

	logger := common.NewLoggerFromConfig(config.Logging)

	a := &App{
		Config: config,
		Logger: logger,
	}

	// Market data client needs no credential
	a.MarketClient = yahoo.NewClient(
		yahoo.WithBaseURL(config.Clients.Yahoo.BaseURL),
		yahoo.WithLogger(logger),
		yahoo.WithRateLimit(config.Clients.Yahoo.RateLimit),
		yahoo.WithTimeout(config.Clients.Yahoo.GetTimeout()),
	)

	if newsKey, err := common.ResolveAPIKey("newsapi_api_key", config.Clients.NewsAPI.APIKey); err == nil {
		a.NewsClient = newsapi.NewClient(newsKey,
			newsapi.WithBaseURL(config.Clients.NewsAPI.BaseURL),
			newsapi.WithLogger(logger),
			newsapi.WithTimeout(config.Clients.NewsAPI.GetTimeout()),
		)
	} else {
		logger.Warn().Msg("NewsAPI key not configured - headlines will be empty")
	}

	if geminiKey, err := common.ResolveAPIKey("gemini_api_key", config.Clients.Gemini.APIKey); err == nil {
		client, err := gemini.NewClient(context.Background(), geminiKey,
			gemini.WithModel(config.Clients.Gemini.Model),
			gemini.WithLogger(logger),
		)
		if err != nil {
			logger.Warn().Err(err).Msg("Gemini client initialization failed - AI narratives will be unavailable")
		} else {
			a.GeminiClient = client
		}
	} else {
		logger.Warn().Msg("Gemini API key not configured - AI narratives will be unavailable")
	}

	a.Gateway = marketdata.NewService(a.MarketClient, a.NewsClient, logger)
	a.Narrative = narrative.NewService(a.GeminiClient, logger)
	a.Analytics = analytics.NewService(a.Gateway, a.Narrative, logger,
		analytics.WithNewsLimit(config.Clients.NewsAPI.PageSize),
	)

	return a, nil
}
