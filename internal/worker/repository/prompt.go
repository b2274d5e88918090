package repository

import "fmt"

// BuildNewsCommentaryPrompt builds the prompt asking for a short market
// commentary and keyword extraction for one article.
func BuildNewsCommentaryPrompt(title, publishedDate, content string) string {
	return fmt.Sprintf(`You are a financial market analyst. Read the article below and produce a short, neutral market commentary for a retail investor dashboard.

Article title: %s
Published: %s
Article content:
%s

Respond with ONLY a JSON object in this exact shape, no markdown fences:
{
  "commentary": "two to three sentences of market commentary",
  "keywords": ["lowercase", "keywords", "including any mentioned asset tickers"]
}`, title, publishedDate, content)
}
