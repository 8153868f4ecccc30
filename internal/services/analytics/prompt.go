package analytics

import (
	"fmt"
	"strings"

	"github.com/finsight/finsight/internal/models"
)

// audienceTone maps the requested audience to a prompt instruction.
// "Beginner" (any casing/suffix) gets plain language; everything else gets
// analyst tone.
func audienceTone(audience string) string {
	if strings.HasPrefix(strings.ToLower(audience), "begin") {
		return "Explain like I'm new to markets, avoid jargon."
	}
	return "Use concise analyst tone with key metrics and risks."
}

// buildBlurbPrompt is the one-off per-ticker overview prompt.
func buildBlurbPrompt(ticker string) string {
	return fmt.Sprintf("Give a brief non-advisory stock overview for %s.", ticker)
}

// buildInsightPrompt assembles the portfolio-level insight prompt from
// already-computed metrics. Pure function — no network, independently
// testable.
func buildInsightPrompt(
	tickers []string,
	weights map[string]float64,
	holdings map[string]models.HoldingDetail,
	sectors models.SectorBreakdown,
	pvol models.NullableFloat,
	risk models.RiskProfile,
	audience string,
) string {
	var sb strings.Builder

	sb.WriteString("You are a portfolio analyst. Provide a concise, non-advisory overview.\n\n")

	sb.WriteString("Portfolio:\n")
	sb.WriteString("- Tickers: " + strings.Join(tickers, ", ") + "\n")

	sb.WriteString("- Weights: ")
	parts := make([]string, 0, len(tickers))
	for _, t := range tickers {
		parts = append(parts, fmt.Sprintf("%s=%g", t, weights[t]))
	}
	sb.WriteString(strings.Join(parts, ", ") + "\n")

	sb.WriteString("- Holdings:\n")
	for _, t := range tickers {
		h := holdings[t]
		sb.WriteString(fmt.Sprintf("  - %s (%s), sector: %s, market cap: %.0f\n", t, h.Name, h.Sector, h.MarketCap))
	}

	sb.WriteString("- Sector mix (%): ")
	sectorParts := make([]string, 0, len(sectors))
	for _, s := range sectors {
		sectorParts = append(sectorParts, fmt.Sprintf("%s=%.1f", s.Sector, s.Pct))
	}
	sb.WriteString(strings.Join(sectorParts, ", ") + "\n")

	volText := "N/A"
	if !pvol.IsNaN() {
		volText = fmt.Sprintf("%.3f", float64(pvol))
	}
	sb.WriteString("- Annualized volatility: " + volText + "\n")
	sb.WriteString("- Diversification: " + risk.Diversification + "\n")
	sb.WriteString(fmt.Sprintf("- Risk Classification: %s (score %s/100)\n", risk.RiskLevel, risk.ScoreLabel()))

	sb.WriteString("\nFlags:\n")
	sb.WriteString(fmt.Sprintf("- Sector concentration >=%.0f%%? %t (top sector: %s at %.1f%%)\n",
		ConcentrationThreshold, risk.ConcentrationFlag, risk.TopSector.Sector, risk.TopSector.Pct))
	sb.WriteString(fmt.Sprintf("- High-vol stocks (>=%.0f%% ann vol): %s\n",
		HighVolThreshold*100, formatList(risk.HighVolTickers)))

	sb.WriteString("\nAudience: " + audience + "\n")

	sb.WriteString("\nRequirements:\n")
	sb.WriteString("- " + audienceTone(audience) + "\n")
	sb.WriteString("- Start with a one-sentence summary (tilt + risk).\n")
	sb.WriteString("- Then 4-5 bullets with specifics:\n")
	sb.WriteString("  - Sector concentration (if flagged).\n")
	sb.WriteString("  - High-vol stocks and their effect.\n")
	sb.WriteString("  - Portfolio risk classification.\n")
	sb.WriteString("  - Diversification assessment.\n")
	sb.WriteString("  - 1-2 de-risking categories (e.g. add defensive sectors), no stock picks.\n")
	sb.WriteString("- End with a single caveat: this is NOT financial advice.\n")

	return sb.String()
}

// buildTickerSummaryPrompt fuses profile, recent price bars, and headlines
// into a single market-summary prompt for one ticker.
func buildTickerSummaryPrompt(
	ticker string,
	profile models.CompanyProfile,
	bars models.PriceSeries,
	news []models.NewsItem,
	audience string,
) string {
	var sb strings.Builder

	sb.WriteString(fmt.Sprintf("You are a market analyst. Summarize the current situation for %s.\n", ticker))

	name := profile.Name
	if name == "" {
		name = "N/A"
	}
	sector := profile.Sector
	if sector == "" {
		sector = "Unknown"
	}
	sb.WriteString(fmt.Sprintf("Company profile: name=%s, sector=%s, industry=%s, market cap=%.0f\n\n",
		name, sector, profile.Industry, profile.MarketCap))

	sb.WriteString("Recent OHLCV (date, open, high, low, close, volume):\n")
	for _, bar := range bars {
		sb.WriteString(fmt.Sprintf("%s, %.2f, %.2f, %.2f, %.2f, %d\n",
			bar.Date.Format("2006-01-02"), bar.Open, bar.High, bar.Low, bar.Close, bar.Volume))
	}

	sb.WriteString("\nLatest news headlines:\n")
	if len(news) == 0 {
		sb.WriteString("(none)\n")
	}
	for _, item := range news {
		sb.WriteString(fmt.Sprintf("- %s (%s)\n", item.Title, item.Source))
	}

	sb.WriteString("\nRequirements:\n")
	sb.WriteString("- " + audienceTone(audience) + "\n")
	sb.WriteString("- Include 2-3 key takeaways.\n")
	sb.WriteString("- Mention notable price moves (up/down days) if visible.\n")
	sb.WriteString("- If the headline list is empty, say no fresh headlines were found.\n")
	sb.WriteString("- End with a one-sentence risk or watch-out.\n")

	return sb.String()
}

func formatList(items []string) string {
	if len(items) == 0 {
		return "(none)"
	}
	return strings.Join(items, ", ")
}
