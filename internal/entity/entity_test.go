package entity

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestAssetValidate(t *testing.T) {
	cases := []struct {
		name    string
		asset   Asset
		wantErr bool
	}{
		{name: "stock", asset: Asset{Ticker: "AAPL", Name: "Apple", AssetType: AssetTypeStock}},
		{name: "crypto", asset: Asset{Ticker: "BTC", Name: "Bitcoin", AssetType: AssetTypeCrypto}},
		{name: "unknown type", asset: Asset{Ticker: "X", Name: "X", AssetType: "BOND"}, wantErr: true},
		{name: "empty ticker", asset: Asset{Name: "X", AssetType: AssetTypeStock}, wantErr: true},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.asset.Validate()
			if tc.wantErr {
				assert.Error(t, err)
			} else {
				assert.NoError(t, err)
			}
		})
	}
}

func TestHistoricalPriceValidate(t *testing.T) {
	d := func(v string) decimal.Decimal { return decimal.RequireFromString(v) }

	valid := HistoricalPrice{
		OpenPrice:  d("100"),
		HighPrice:  d("110"),
		LowPrice:   d("95"),
		ClosePrice: d("105"),
		Volume:     1000,
	}
	assert.NoError(t, valid.Validate())

	highBelowClose := valid
	highBelowClose.HighPrice = d("104")
	assert.Error(t, highBelowClose.Validate())

	lowAboveOpen := valid
	lowAboveOpen.LowPrice = d("101")
	assert.Error(t, lowAboveOpen.Validate())

	negativeVolume := valid
	negativeVolume.Volume = -1
	assert.Error(t, negativeVolume.Validate())
}

func TestPricePredictionValidate(t *testing.T) {
	base := PricePrediction{
		Horizon:        Horizon7D,
		PredictedPrice: decimal.RequireFromString("123.45"),
		Confidence:     0.8,
	}
	assert.NoError(t, base.Validate())

	badHorizon := base
	badHorizon.Horizon = "90D"
	assert.Error(t, badHorizon.Validate())

	confidenceTooHigh := base
	confidenceTooHigh.Confidence = 1.2
	assert.Error(t, confidenceTooHigh.Validate())

	confidenceNegative := base
	confidenceNegative.Confidence = -0.1
	assert.Error(t, confidenceNegative.Validate())
}

func TestHorizonDays(t *testing.T) {
	assert.Equal(t, 1, Horizon1D.Days())
	assert.Equal(t, 7, Horizon7D.Days())
	assert.Equal(t, 30, Horizon30D.Days())
	assert.Equal(t, 0, Horizon("2W").Days())
	assert.Len(t, Horizons, 3)
}

func TestSentimentValidate(t *testing.T) {
	s := Sentiment{Score: 0.5, SourceType: SentimentSourceReddit}
	assert.NoError(t, s.Validate())

	s.Score = 1.5
	assert.Error(t, s.Validate())

	s.Score = -0.1
	assert.Error(t, s.Validate())

	s.Score = 0.5
	s.SourceType = ""
	assert.Error(t, s.Validate())
}
