package analysis

import (
	"testing"
	"time"

	"golang-asset-analytics/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func pricesFromCloses(closes []float64) []entity.HistoricalPrice {
	base := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	prices := make([]entity.HistoricalPrice, len(closes))
	for i, c := range closes {
		d := decimal.NewFromFloat(c)
		prices[i] = entity.HistoricalPrice{
			AssetID:    1,
			Date:       base.AddDate(0, 0, i),
			OpenPrice:  d,
			HighPrice:  d,
			LowPrice:   d,
			ClosePrice: d,
			Volume:     1000,
		}
	}
	return prices
}

func TestStatsCalculator_InsufficientHistory(t *testing.T) {
	calc := NewStatsCalculator()

	_, err := calc.Calculate(1, nil)
	assert.Error(t, err)

	_, err = calc.Calculate(1, pricesFromCloses([]float64{10}))
	assert.Error(t, err)
}

func TestStatsCalculator_ConstantPrices(t *testing.T) {
	calc := NewStatsCalculator()

	closes := make([]float64, 60)
	for i := range closes {
		closes[i] = 100
	}

	stats, err := calc.Calculate(7, pricesFromCloses(closes))
	require.NoError(t, err)

	assert.Equal(t, uint(7), stats.AssetID)
	require.NotNil(t, stats.Volatility)
	assert.InDelta(t, 0.0, *stats.Volatility, 1e-12)

	require.NotNil(t, stats.MovingAverage50)
	assert.True(t, stats.MovingAverage50.Equal(decimal.NewFromInt(100)),
		"MA50 = %s", stats.MovingAverage50)

	// 200-day window does not fit in 60 rows.
	assert.Nil(t, stats.MovingAverage200)
}

func TestStatsCalculator_Volatility(t *testing.T) {
	calc := NewStatsCalculator()

	// Alternating +10% / -10% daily returns have stddev 0.1 around a 0 mean.
	closes := []float64{100, 110, 99, 108.9, 98.01}
	stats, err := calc.Calculate(1, pricesFromCloses(closes))
	require.NoError(t, err)

	require.NotNil(t, stats.Volatility)
	assert.InDelta(t, 0.1, *stats.Volatility, 1e-9)

	// Too short for RSI(14) and both moving averages.
	assert.Nil(t, stats.RSI)
	assert.Nil(t, stats.MovingAverage50)
	assert.Nil(t, stats.MovingAverage200)
}

func TestStatsCalculator_RSIExtremes(t *testing.T) {
	calc := NewStatsCalculator()

	// Strictly rising closes push RSI to 100.
	closes := make([]float64, 30)
	for i := range closes {
		closes[i] = 100 + float64(i)
	}

	stats, err := calc.Calculate(1, pricesFromCloses(closes))
	require.NoError(t, err)

	require.NotNil(t, stats.RSI)
	assert.InDelta(t, 100.0, *stats.RSI, 1e-6)
}
