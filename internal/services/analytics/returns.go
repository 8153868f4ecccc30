package analytics

import (
	"math"
	"sort"
	"time"

	"gonum.org/v1/gonum/stat"

	"github.com/finsight/finsight/internal/models"
)

const tradingDaysPerYear = 252

// dailyReturns computes simple returns between consecutive closes, keyed by
// the date of the later bar. The leading undefined return is dropped, as are
// returns whose previous close is zero.
func dailyReturns(series models.PriceSeries) map[time.Time]float64 {
	returns := make(map[time.Time]float64)
	for i := 1; i < len(series); i++ {
		prev := series[i-1].Close
		if prev == 0 {
			continue
		}
		returns[series[i].Date] = (series[i].Close - prev) / prev
	}
	return returns
}

// returnValues computes the daily returns of a series in series order.
// Series arrive oldest first, so this matches date order without the keyed
// map that alignment needs.
func returnValues(series models.PriceSeries) []float64 {
	closes := series.Closes()
	if len(closes) < 2 {
		return nil
	}

	values := make([]float64, 0, len(closes)-1)
	for i := 1; i < len(closes); i++ {
		prev := closes[i-1]
		if prev == 0 {
			continue
		}
		values = append(values, (closes[i]-prev)/prev)
	}
	return values
}

// annualizedVol converts a daily return series to annualized volatility using
// the sample standard deviation scaled by √252. Fewer than two observations
// yield NaN, the insufficient-data sentinel.
func annualizedVol(returns []float64) float64 {
	if len(returns) < 2 {
		return math.NaN()
	}
	return stat.StdDev(returns, nil) * math.Sqrt(tradingDaysPerYear)
}

// alignReturns inner-joins per-ticker daily return series on their dates:
// only dates present for every ticker survive. Returned dates are sorted
// ascending; the aligned map holds each ticker's returns in date order.
func alignReturns(perTicker map[string]map[time.Time]float64) ([]time.Time, map[string][]float64) {
	if len(perTicker) == 0 {
		return nil, nil
	}

	var common []time.Time
	first := true
	for _, returns := range perTicker {
		if first {
			for date := range returns {
				common = append(common, date)
			}
			first = false
			continue
		}
		kept := common[:0]
		for _, date := range common {
			if _, ok := returns[date]; ok {
				kept = append(kept, date)
			}
		}
		common = kept
	}

	sort.Slice(common, func(i, j int) bool { return common[i].Before(common[j]) })

	aligned := make(map[string][]float64, len(perTicker))
	for ticker, returns := range perTicker {
		row := make([]float64, len(common))
		for i, date := range common {
			row[i] = returns[date]
		}
		aligned[ticker] = row
	}

	return common, aligned
}
