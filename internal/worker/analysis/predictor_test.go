package analysis

import (
	"testing"
	"time"

	"golang-asset-analytics/internal/entity"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomPredictor_Bounds(t *testing.T) {
	predictor := NewRandomPredictor()
	now := time.Date(2025, 6, 2, 15, 4, 5, 0, time.UTC)
	price := decimal.NewFromFloat(100.0)

	for i := 0; i < 200; i++ {
		for _, horizon := range entity.Horizons {
			p := predictor.Predict(42, price, horizon, now)

			require.NoError(t, p.Validate())
			assert.Equal(t, uint(42), p.AssetID)
			assert.Equal(t, RandomModelVersion, p.ModelVersion)
			assert.GreaterOrEqual(t, p.Confidence, 0.65)
			assert.LessOrEqual(t, p.Confidence, 0.95)

			// Magnitude stays inside the 0.5%-5.0% band in either direction.
			change := p.PredictedPrice.Sub(price).Div(price).Abs().InexactFloat64()
			assert.GreaterOrEqual(t, change, 0.005-1e-9)
			assert.LessOrEqual(t, change, 0.05+1e-9)
		}
	}
}

func TestRandomPredictor_PredictionDate(t *testing.T) {
	predictor := NewRandomPredictor()
	now := time.Date(2025, 6, 2, 15, 4, 5, 0, time.UTC)
	price := decimal.NewFromFloat(50.0)

	tests := []struct {
		horizon entity.Horizon
		want    time.Time
	}{
		{entity.Horizon1D, time.Date(2025, 6, 3, 0, 0, 0, 0, time.UTC)},
		{entity.Horizon7D, time.Date(2025, 6, 9, 0, 0, 0, 0, time.UTC)},
		{entity.Horizon30D, time.Date(2025, 7, 2, 0, 0, 0, 0, time.UTC)},
	}

	for _, tt := range tests {
		t.Run(string(tt.horizon), func(t *testing.T) {
			p := predictor.Predict(1, price, tt.horizon, now)
			assert.Equal(t, tt.want, p.PredictionDate)
		})
	}
}

func TestRandomPredictor_NeverNegative(t *testing.T) {
	predictor := NewRandomPredictor()
	now := time.Now().UTC()
	price := decimal.NewFromFloat(0.00000001)

	for i := 0; i < 50; i++ {
		p := predictor.Predict(1, price, entity.Horizon1D, now)
		assert.False(t, p.PredictedPrice.IsNegative())
	}
}
