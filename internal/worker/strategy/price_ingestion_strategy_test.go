package strategy

import (
	"testing"
	"time"

	"golang-asset-analytics/internal/provider"

	"github.com/stretchr/testify/assert"
)

func TestBuildPriceRow(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	prev := 95.0
	row := buildPriceRow(9, date, provider.Quote{Price: 100, PrevClose: &prev})

	assert.Equal(t, uint(9), row.AssetID)
	assert.Equal(t, "95", row.OpenPrice.String())
	assert.Equal(t, "100", row.ClosePrice.String())
	assert.Equal(t, "100", row.HighPrice.String())
	assert.Equal(t, "95", row.LowPrice.String())
	assert.NoError(t, row.Validate())

	// Without a previous close the row collapses onto the quote price.
	row = buildPriceRow(9, date, provider.Quote{Price: 42})
	assert.Equal(t, "42", row.OpenPrice.String())
	assert.Equal(t, "42", row.LowPrice.String())
	assert.NoError(t, row.Validate())
}

func TestBuildPriceRow_DownDay(t *testing.T) {
	date := time.Date(2025, 6, 2, 0, 0, 0, 0, time.UTC)

	prev := 110.0
	row := buildPriceRow(1, date, provider.Quote{Price: 100, PrevClose: &prev})

	assert.Equal(t, "110", row.HighPrice.String())
	assert.Equal(t, "100", row.LowPrice.String())
	assert.NoError(t, row.Validate())
}
