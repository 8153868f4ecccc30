package models

import "time"

// CompanyProfile holds per-ticker company attributes. The zero value is the
// neutral empty result returned by the gateway on any fetch failure; defaults
// ("Unknown" sector, "N/A" name, zero market cap) are applied at use sites.
type CompanyProfile struct {
	Ticker    string  `json:"ticker"`
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	Industry  string  `json:"industry,omitempty"`
	MarketCap float64 `json:"market_cap"`
	ForwardPE float64 `json:"forward_pe,omitempty"`
	Beta      float64 `json:"beta,omitempty"`
}

// PriceBar is one daily OHLCV bar.
type PriceBar struct {
	Date   time.Time `json:"date"`
	Open   float64   `json:"open"`
	High   float64   `json:"high"`
	Low    float64   `json:"low"`
	Close  float64   `json:"close"`
	Volume int64     `json:"volume"`
}

// PriceSeries is an ordered sequence of daily bars, oldest first. An empty
// series is the neutral result when the provider fails or has no data.
type PriceSeries []PriceBar

// Closes returns the closing prices in series order.
func (s PriceSeries) Closes() []float64 {
	closes := make([]float64, len(s))
	for i, bar := range s {
		closes[i] = bar.Close
	}
	return closes
}

// NewsItem is one headline returned by the news provider.
type NewsItem struct {
	Title       string    `json:"title"`
	Source      string    `json:"source"`
	PublishedAt time.Time `json:"published_at"`
	URL         string    `json:"url"`
	Description string    `json:"description,omitempty"`
}
