package analytics

import (
	"math"
	"sort"

	"github.com/finsight/finsight/internal/models"
)

// Classification thresholds
const (
	// ConcentrationThreshold flags a portfolio when the top sector's weight
	// share reaches this percentage
	ConcentrationThreshold = 60.0

	// HighVolThreshold marks a ticker high-volatility at this annualized vol
	HighVolThreshold = 0.40

	highVolPortfolio      = 0.40
	moderateVolPortfolio  = 0.20
	minSectorsForGoodDiv  = 3
	maxRiskScore          = 100
	poorDivScorePenalty   = 20
	moderateDivScorePenalty = 10
)

// ClassifyRisk derives the composite risk classification from the sector
// breakdown, portfolio volatility, and per-ticker volatilities. It is the
// single routine behind both the risk snapshot and the narrative insight, so
// the two paths cannot drift apart.
//
// The derivation is two-stage and order-dependent: volatility sets a baseline
// level and score, then poor or moderate diversification worsens it. Better
// diversification never improves the baseline.
func ClassifyRisk(sectors models.SectorBreakdown, pvol float64, vols models.VolatilityMap) models.RiskProfile {
	top := models.SectorWeight{Sector: "Unknown", Pct: 0}
	if len(sectors) > 0 {
		top = sectors[0]
	}

	concentrationFlag := top.Pct >= ConcentrationThreshold

	highVol := make([]string, 0)
	for _, ticker := range sortedTickers(vols) {
		v := vols[ticker]
		if !math.IsNaN(v) && v >= HighVolThreshold {
			highVol = append(highVol, ticker)
		}
	}

	diversification := models.DiversificationGood
	switch {
	case concentrationFlag:
		diversification = models.DiversificationPoor
	case len(sectors) < minSectorsForGoodDiv:
		diversification = models.DiversificationModerate
	}

	profile := models.RiskProfile{
		TopSector:         top,
		ConcentrationFlag: concentrationFlag,
		HighVolTickers:    highVol,
		Diversification:   diversification,
		RiskLevel:         models.RiskLevelUnknown,
	}

	if math.IsNaN(pvol) {
		return profile
	}

	switch {
	case pvol > highVolPortfolio:
		profile.RiskLevel, profile.RiskScore = models.RiskLevelHigh, 80
	case pvol > moderateVolPortfolio:
		profile.RiskLevel, profile.RiskScore = models.RiskLevelModerate, 50
	default:
		profile.RiskLevel, profile.RiskScore = models.RiskLevelLow, 20
	}
	profile.HasScore = true

	switch diversification {
	case models.DiversificationPoor:
		profile.RiskScore = min(maxRiskScore, profile.RiskScore+poorDivScorePenalty)
		profile.RiskLevel = models.RiskLevelHigh
	case models.DiversificationModerate:
		profile.RiskScore = min(maxRiskScore, profile.RiskScore+moderateDivScorePenalty)
	}

	return profile
}

func sortedTickers(vols models.VolatilityMap) []string {
	tickers := make([]string, 0, len(vols))
	for t := range vols {
		tickers = append(tickers, t)
	}
	sort.Strings(tickers)
	return tickers
}
