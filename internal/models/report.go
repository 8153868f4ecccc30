package models

import (
	"encoding/json"
	"math"
	"strconv"
)

// SectorWeight is one (sector, percentage) entry of a sector breakdown.
type SectorWeight struct {
	Sector string  `json:"sector"`
	Pct    float64 `json:"pct"`
}

// SectorBreakdown lists sector weights in descending percentage order.
// Percentages sum to ~100 across the sectors present in the portfolio.
type SectorBreakdown []SectorWeight

// NullableFloat is a float64 that marshals NaN as JSON null. The engine uses
// NaN as its insufficient-data sentinel, which encoding/json rejects.
type NullableFloat float64

// MarshalJSON encodes NaN as null.
func (f NullableFloat) MarshalJSON() ([]byte, error) {
	if math.IsNaN(float64(f)) {
		return []byte("null"), nil
	}
	return json.Marshal(float64(f))
}

// IsNaN reports whether the value is the insufficient-data sentinel.
func (f NullableFloat) IsNaN() bool {
	return math.IsNaN(float64(f))
}

// VolatilityMap maps ticker to annualized volatility. NaN marks tickers with
// insufficient price data and marshals as null.
type VolatilityMap map[string]float64

// MarshalJSON encodes NaN entries as null.
func (m VolatilityMap) MarshalJSON() ([]byte, error) {
	out := make(map[string]NullableFloat, len(m))
	for t, v := range m {
		out[t] = NullableFloat(v)
	}
	return json.Marshal(out)
}

// SectorConcentration flags whether the top sector dominates the portfolio.
type SectorConcentration struct {
	Flagged   bool         `json:"flagged"`
	TopSector SectorWeight `json:"top_sector"`
}

// RiskSnapshot is the structured risk bundle for one portfolio at one point
// in time. PortfolioVolatility is rounded to 3 decimal places and nil when
// the statistic could not be computed; TickerVolatilities stays unrounded.
type RiskSnapshot struct {
	PortfolioVolatility *float64            `json:"portfolio_volatility"`
	SectorConcentration SectorConcentration `json:"sector_concentration"`
	HighVolStocks       []string            `json:"high_vol_stocks"`
	TickerVolatilities  VolatilityMap       `json:"ticker_volatilities"`
}

// Diversification labels
const (
	DiversificationPoor     = "Poor"
	DiversificationModerate = "Moderate"
	DiversificationGood     = "Good"
)

// Risk levels
const (
	RiskLevelLow      = "Low"
	RiskLevelModerate = "Moderate"
	RiskLevelHigh     = "High"
	RiskLevelUnknown  = "Unknown"
)

// RiskProfile is the composite risk classification shared by the risk
// snapshot and the narrative insight paths. When HasScore is false the score
// is presented as "N/A" and the level is "Unknown".
type RiskProfile struct {
	TopSector         SectorWeight `json:"top_sector"`
	ConcentrationFlag bool         `json:"concentration_flag"`
	HighVolTickers    []string     `json:"high_vol_tickers"`
	Diversification   string       `json:"diversification"`
	RiskLevel         string       `json:"risk_level"`
	RiskScore         int          `json:"risk_score"`
	HasScore          bool         `json:"-"`
}

// ScoreLabel renders the risk score for display ("80" or "N/A").
func (r RiskProfile) ScoreLabel() string {
	if !r.HasScore {
		return "N/A"
	}
	return strconv.Itoa(r.RiskScore)
}

// HoldingDetail is one per-ticker row of a report: profile fields with
// defaults applied, plus a short narrative blurb.
type HoldingDetail struct {
	Name      string  `json:"name"`
	Sector    string  `json:"sector"`
	MarketCap float64 `json:"market_cap"`
	ForwardPE float64 `json:"forward_pe,omitempty"`
	Beta      float64 `json:"beta,omitempty"`
	Summary   string  `json:"summary"`
}

// Report bundles the full portfolio summary: holdings detail, sector mix,
// raw (unrounded) portfolio volatility, and the AI-generated insight.
type Report struct {
	Holdings            map[string]HoldingDetail `json:"holdings"`
	Sectors             SectorBreakdown          `json:"sectors"`
	PortfolioVolatility NullableFloat            `json:"portfolio_volatility"`
	AISummary           string                   `json:"ai_summary"`
}
