package utils

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlexibleTime(t *testing.T) {
	cases := []struct {
		name  string
		input string
		want  time.Time
	}{
		{
			name:  "rfc3339",
			input: "2025-06-01T10:30:00Z",
			want:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "rfc3339 with offset",
			input: "2025-06-01T12:30:00+02:00",
			want:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		},
		{
			name:  "newsdata format",
			input: "2025-06-01 10:30:00",
			want:  time.Date(2025, 6, 1, 10, 30, 0, 0, time.UTC),
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got, err := ParseFlexibleTime(tc.input)
			require.NoError(t, err)
			assert.True(t, tc.want.Equal(got), "want %s got %s", tc.want, got)
		})
	}
}

func TestParseFlexibleTimeInvalid(t *testing.T) {
	_, err := ParseFlexibleTime("yesterday")
	assert.Error(t, err)
}

func TestTruncateToDay(t *testing.T) {
	in := time.Date(2025, 6, 1, 23, 59, 59, 0, time.UTC)
	assert.Equal(t, time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC), TruncateToDay(in))
}
