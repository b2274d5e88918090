// Package analysis holds the prediction and indicator models the worker
// strategies run over stored price history.
package analysis

import (
	"math/rand"
	"sync"
	"time"

	"golang-asset-analytics/internal/entity"

	"github.com/shopspring/decimal"
)

// RandomModelVersion tags predictions produced by the randomized baseline
// model.
const RandomModelVersion = "v1.0-random"

// Predictor produces a forward-looking price estimate from a current price.
type Predictor interface {
	Predict(assetID uint, currentPrice decimal.Decimal, horizon entity.Horizon, now time.Time) entity.PricePrediction
	ModelVersion() string
}

// NewRandomPredictor creates the baseline randomized predictor: a coin-flip
// direction with a 0.5%-5.0% magnitude and a confidence drawn uniformly from
// [0.65, 0.95].
func NewRandomPredictor() Predictor {
	return &randomPredictor{
		rng: rand.New(rand.NewSource(time.Now().UnixNano())),
	}
}

type randomPredictor struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// ModelVersion returns the tag stored on every generated prediction.
func (p *randomPredictor) ModelVersion() string {
	return RandomModelVersion
}

// Predict generates one prediction for the given horizon. The prediction date
// is now plus the horizon length, truncated to the day.
func (p *randomPredictor) Predict(assetID uint, currentPrice decimal.Decimal, horizon entity.Horizon, now time.Time) entity.PricePrediction {
	p.mu.Lock()
	changePct := 0.005 + p.rng.Float64()*0.045
	if p.rng.Intn(2) == 0 {
		changePct = -changePct
	}
	confidence := 0.65 + p.rng.Float64()*0.30
	p.mu.Unlock()

	factor := decimal.NewFromFloat(1 + changePct)
	predicted := currentPrice.Mul(factor).Round(8)
	if predicted.IsNegative() {
		predicted = decimal.Zero
	}

	return entity.PricePrediction{
		AssetID:        assetID,
		PredictionDate: now.AddDate(0, 0, horizon.Days()).Truncate(24 * time.Hour),
		Horizon:        horizon,
		PredictedPrice: predicted,
		Confidence:     confidence,
		ModelVersion:   RandomModelVersion,
	}
}
