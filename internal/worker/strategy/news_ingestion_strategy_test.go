package strategy

import (
	"strings"
	"testing"
	"time"
	"unicode/utf8"

	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/provider"

	"github.com/stretchr/testify/assert"
)

func TestArticleHash_Stable(t *testing.T) {
	a := provider.Article{Title: "Bitcoin climbs", Link: "https://example.com/a/b"}
	b := provider.Article{Title: "Bitcoin climbs", Link: "https://example.com/other/path"}
	c := provider.Article{Title: "Bitcoin falls", Link: "https://example.com/a/b"}

	// The hash keys on title and source host, not the full link.
	assert.Equal(t, articleHash(a), articleHash(b))
	assert.NotEqual(t, articleHash(a), articleHash(c))
}

func TestMatchAsset(t *testing.T) {
	assets := []entity.Asset{
		{ID: 1, Ticker: "BTC", Name: "Bitcoin", AssetType: entity.AssetTypeCrypto},
		{ID: 2, Ticker: "ETH", Name: "Ethereum", AssetType: entity.AssetTypeCrypto},
		{ID: 3, Ticker: "AAPL", Name: "Apple Inc", AssetType: entity.AssetTypeStock},
	}

	tests := []struct {
		name    string
		article provider.Article
		want    uint
	}{
		{
			name:    "ticker in keywords",
			article: provider.Article{Title: "Market wrap", Keywords: []string{"eth", "defi"}},
			want:    2,
		},
		{
			name:    "ticker as word in title",
			article: provider.Article{Title: "BTC breaks new high"},
			want:    1,
		},
		{
			name:    "ticker inside another word does not match",
			article: provider.Article{Title: "Whether markets rally remains unclear"},
			want:    0,
		},
		{
			name:    "asset name in title",
			article: provider.Article{Title: "Ethereum upgrade ships"},
			want:    2,
		},
		{
			name:    "no match",
			article: provider.Article{Title: "Bond yields steady", Keywords: []string{"macro"}},
			want:    0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, matchAsset(tt.article, assets))
		})
	}
}

func TestFilterByKeywords(t *testing.T) {
	articles := []provider.Article{
		{Title: "Bitcoin rallies"},
		{Title: "Fed holds rates", Content: "crypto markets shrugged"},
		{Title: "Oil slides"},
	}

	filtered := filterByKeywords(articles, []string{"bitcoin", "crypto"})
	assert.Len(t, filtered, 2)

	// No keywords means no filtering.
	assert.Len(t, filterByKeywords(articles, nil), 3)
}

func TestFilterByAge(t *testing.T) {
	now := time.Now().UTC()
	articles := []provider.Article{
		{Title: "fresh", PublishedAt: now.Add(-2 * time.Hour)},
		{Title: "stale", PublishedAt: now.AddDate(0, 0, -10)},
	}

	filtered := filterByAge(articles, 3)
	assert.Len(t, filtered, 1)
	assert.Equal(t, "fresh", filtered[0].Title)
}

func TestTruncate_RuneBoundary(t *testing.T) {
	// A two-byte rune straddling the limit must be dropped whole, not split.
	title := strings.Repeat("a", 199) + "é"
	got := truncate(title, 200)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, strings.Repeat("a", 199), got)

	// Cyrillic headline: every rune is two bytes, so an even limit lands on
	// a boundary and an odd one does not.
	cyrillic := strings.Repeat("д", 120)
	got = truncate(cyrillic, 201)
	assert.True(t, utf8.ValidString(got))
	assert.Equal(t, 200, len(got))

	// Short and exact-length strings pass through untouched.
	assert.Equal(t, "short", truncate("short", 200))
	exact := strings.Repeat("b", 200)
	assert.Equal(t, exact, truncate(exact, 200))
}
