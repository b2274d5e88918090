package repository

import (
	"context"

	"golang-asset-analytics/internal/worker/dto"
)

// AIRepository generates market commentary for ingested articles.
type AIRepository interface {
	NewsCommentary(ctx context.Context, title, publishedDate, content string) (*dto.NewsCommentaryResult, error)
}
