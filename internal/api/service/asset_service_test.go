package service

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func TestClassifyDirection(t *testing.T) {
	current := func(v float64) *float64 { return &v }

	testCases := []struct {
		name      string
		predicted decimal.Decimal
		current   *float64
		expected  string
	}{
		{
			name:      "well above the band is up",
			predicted: decimal.NewFromFloat(105),
			current:   current(100),
			expected:  DirectionUp,
		},
		{
			name:      "well below the band is down",
			predicted: decimal.NewFromFloat(95),
			current:   current(100),
			expected:  DirectionDown,
		},
		{
			name:      "inside the band is neutral",
			predicted: decimal.NewFromFloat(100.5),
			current:   current(100),
			expected:  DirectionNeutral,
		},
		{
			name:      "exactly on the upper band edge is neutral",
			predicted: decimal.NewFromFloat(101),
			current:   current(100),
			expected:  DirectionNeutral,
		},
		{
			name:      "just past the upper band edge is up",
			predicted: decimal.NewFromFloat(101.02),
			current:   current(100),
			expected:  DirectionUp,
		},
		{
			name:      "unchanged price is neutral",
			predicted: decimal.NewFromFloat(100),
			current:   current(100),
			expected:  DirectionNeutral,
		},
		{
			name:      "unknown current price defaults to neutral",
			predicted: decimal.NewFromFloat(100),
			current:   nil,
			expected:  DirectionNeutral,
		},
		{
			name:      "zero current price defaults to neutral",
			predicted: decimal.NewFromFloat(100),
			current:   current(0),
			expected:  DirectionNeutral,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, classifyDirection(tc.predicted, tc.current))
		})
	}
}
