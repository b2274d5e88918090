package analysis

import (
	"fmt"
	"math"

	"golang-asset-analytics/internal/entity"

	"github.com/cinar/indicator"
	"github.com/shopspring/decimal"
)

const (
	rsiWarmup   = 14
	maShort     = 50
	maLong      = 200
	minClosings = 2
)

// StatsCalculator derives technical indicators from stored price history.
type StatsCalculator interface {
	Calculate(assetID uint, prices []entity.HistoricalPrice) (*entity.AssetStats, error)
}

// NewStatsCalculator creates the indicator-backed stats calculator.
func NewStatsCalculator() StatsCalculator {
	return &statsCalculator{}
}

type statsCalculator struct{}

// Calculate computes volatility (standard deviation of daily returns),
// RSI(14), MA(50) and MA(200) from the given price rows. Prices must be
// ordered oldest first. Indicators whose lookback exceeds the available
// history are left nil.
func (c *statsCalculator) Calculate(assetID uint, prices []entity.HistoricalPrice) (*entity.AssetStats, error) {
	if len(prices) < minClosings {
		return nil, fmt.Errorf("insufficient price history: need at least %d rows, got %d", minClosings, len(prices))
	}

	closes := make([]float64, len(prices))
	for i, p := range prices {
		closes[i] = p.ClosePrice.InexactFloat64()
	}

	stats := &entity.AssetStats{AssetID: assetID}

	if vol, ok := dailyReturnStdDev(closes); ok {
		stats.Volatility = &vol
	}

	if len(closes) > rsiWarmup {
		_, rsi := indicator.Rsi(closes)
		value := rsi[len(rsi)-1]
		stats.RSI = &value
	}

	if len(closes) >= maShort {
		sma := indicator.Sma(maShort, closes)
		value := decimal.NewFromFloat(sma[len(sma)-1]).Round(8)
		stats.MovingAverage50 = &value
	}

	if len(closes) >= maLong {
		sma := indicator.Sma(maLong, closes)
		value := decimal.NewFromFloat(sma[len(sma)-1]).Round(8)
		stats.MovingAverage200 = &value
	}

	return stats, nil
}

// dailyReturnStdDev computes the population standard deviation of day-over-day
// returns.
func dailyReturnStdDev(closes []float64) (float64, bool) {
	var returns []float64
	for i := 1; i < len(closes); i++ {
		if closes[i-1] == 0 {
			continue
		}
		returns = append(returns, (closes[i]-closes[i-1])/closes[i-1])
	}
	if len(returns) == 0 {
		return 0, false
	}

	var mean float64
	for _, r := range returns {
		mean += r
	}
	mean /= float64(len(returns))

	var variance float64
	for _, r := range returns {
		variance += (r - mean) * (r - mean)
	}
	variance /= float64(len(returns))

	return math.Sqrt(variance), true
}
