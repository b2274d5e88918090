package strategy

import (
	"bytes"
	"context"
	"crypto/md5"
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"
	"unicode/utf8"

	"golang-asset-analytics/internal/entity"
	"golang-asset-analytics/internal/provider"
	"golang-asset-analytics/internal/worker/repository"
	"golang-asset-analytics/pkg/logger"
	"golang-asset-analytics/pkg/utils"

	"github.com/PuerkitoBio/goquery"
	"github.com/lib/pq"
	"github.com/mauidude/go-readability"
	"github.com/mmcdole/gofeed"
)

// NewsIngestionStrategy pulls articles from the news provider, falls back to
// RSS feeds, and stores deduplicated rows linked to catalog assets.
type NewsIngestionStrategy struct {
	logger       *logger.Logger
	newsProvider provider.NewsProvider
	newsRepo     repository.NewsRepository
	assetRepo    repository.AssetRepository
	aiRepo       repository.AIRepository
	client       *http.Client
	rssFeeds     []string
}

// NewsIngestionPayload is the job payload for news ingestion.
type NewsIngestionPayload struct {
	Category      string   `json:"category"`
	Language      string   `json:"language"`
	MaxNews       int      `json:"max_news"`
	MaxAgeInDays  int      `json:"max_age_in_days"`
	Keywords      []string `json:"keywords"`
	EnrichContent bool     `json:"enrich_content"`
}

type newsIngestionResult struct {
	Status      string   `json:"status"`
	Stored      int      `json:"stored"`
	Skipped     int      `json:"skipped"`
	FailedLinks []string `json:"failed_links"`
	UsedRSS     bool     `json:"used_rss"`
}

// NewNewsIngestionStrategy creates a new NewsIngestionStrategy. aiRepo may be
// nil when no Gemini key is configured; commentary is then left empty.
func NewNewsIngestionStrategy(
	log *logger.Logger,
	newsProvider provider.NewsProvider,
	newsRepo repository.NewsRepository,
	assetRepo repository.AssetRepository,
	aiRepo repository.AIRepository,
	rssFeeds []string,
) *NewsIngestionStrategy {
	return &NewsIngestionStrategy{
		logger:       log,
		newsProvider: newsProvider,
		newsRepo:     newsRepo,
		assetRepo:    assetRepo,
		aiRepo:       aiRepo,
		client:       &http.Client{Timeout: 20 * time.Second},
		rssFeeds:     rssFeeds,
	}
}

// GetType returns the job type this strategy handles.
func (s *NewsIngestionStrategy) GetType() entity.JobType {
	return entity.JobTypeNewsIngestion
}

// Execute runs one ingestion pass. Individual articles that fail are skipped
// and reported in the output.
func (s *NewsIngestionStrategy) Execute(ctx context.Context, job *entity.Job) (string, error) {
	var payload NewsIngestionPayload
	if len(job.Payload) > 0 {
		if err := json.Unmarshal(job.Payload, &payload); err != nil {
			return "", fmt.Errorf("failed to unmarshal job payload: %w", err)
		}
	}
	if payload.MaxNews <= 0 {
		payload.MaxNews = 20
	}
	if payload.MaxAgeInDays <= 0 {
		payload.MaxAgeInDays = 3
	}

	result := newsIngestionResult{FailedLinks: []string{}}

	articles, err := s.newsProvider.FetchNews(ctx, payload.Category, payload.Language, payload.MaxNews)
	if err != nil {
		s.logger.Warn("News provider failed, falling back to RSS", logger.ErrorField(err))
	}
	if len(articles) == 0 && len(s.rssFeeds) > 0 {
		articles = s.fetchRSS(ctx, payload.MaxNews)
		result.UsedRSS = true
	}
	if len(articles) == 0 {
		return "", fmt.Errorf("no articles available from provider or RSS feeds")
	}

	articles = filterByKeywords(articles, payload.Keywords)
	articles = filterByAge(articles, payload.MaxAgeInDays)

	assets, err := s.assetRepo.FindAll(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to load assets: %w", err)
	}

	hashes := make([]string, 0, len(articles))
	for _, article := range articles {
		hashes = append(hashes, articleHash(article))
	}
	existing, err := s.newsRepo.FindExistingHashes(ctx, hashes)
	if err != nil {
		return "", fmt.Errorf("failed to check existing news: %w", err)
	}

	for _, article := range articles {
		if !utils.ShouldContinue(ctx) {
			break
		}

		hash := articleHash(article)
		if existing[hash] {
			result.Skipped++
			continue
		}

		if err := s.processArticle(ctx, article, hash, payload, assets); err != nil {
			s.logger.Error("Failed to process article",
				logger.StringField("title", article.Title), logger.ErrorField(err))
			result.FailedLinks = append(result.FailedLinks, article.Link)
			continue
		}
		result.Stored++
	}

	if result.Stored == 0 && len(result.FailedLinks) > 0 {
		result.Status = FAILED
	} else if result.Stored == 0 {
		result.Status = SKIPPED
	} else {
		result.Status = SUCCESS
	}

	out, err := json.Marshal(result)
	if err != nil {
		return "", fmt.Errorf("failed to marshal result: %w", err)
	}
	return string(out), nil
}

func (s *NewsIngestionStrategy) processArticle(ctx context.Context, article provider.Article, hash string, payload NewsIngestionPayload, assets []entity.Asset) error {
	content := article.Content
	if content == "" && payload.EnrichContent && article.Link != "" {
		enriched, err := s.fetchReadableContent(ctx, article.Link)
		if err != nil {
			s.logger.Debug("Content enrichment failed",
				logger.StringField("link", article.Link), logger.ErrorField(err))
		} else {
			content = enriched
		}
	}

	news := entity.News{
		Title:          truncate(utils.CleanToValidUTF8(article.Title), 200),
		Content:        utils.CleanToValidUTF8(content),
		Source:         truncate(sourceOf(article), 500),
		Keywords:       pq.StringArray(article.Keywords),
		HashIdentifier: hash,
		PublishedAt:    article.PublishedAt,
	}

	if assetID := matchAsset(article, assets); assetID != 0 {
		news.AssetID = &assetID
	}

	if s.aiRepo != nil && content != "" {
		commentary, err := s.aiRepo.NewsCommentary(ctx, news.Title, article.PublishedAt.Format(time.RFC3339), content)
		if err != nil {
			s.logger.Warn("Commentary generation failed",
				logger.StringField("title", news.Title), logger.ErrorField(err))
		} else {
			news.Commentary = commentary.Commentary
			if len(news.Keywords) == 0 {
				news.Keywords = pq.StringArray(commentary.Keywords)
			}
		}
	}

	return s.newsRepo.CreateIgnoreConflict(ctx, &news)
}

func (s *NewsIngestionStrategy) fetchRSS(ctx context.Context, limit int) []provider.Article {
	fp := gofeed.NewParser()
	var articles []provider.Article

	for _, feedURL := range s.rssFeeds {
		if !utils.ShouldContinue(ctx) {
			break
		}

		feed, err := fp.ParseURLWithContext(feedURL, ctx)
		if err != nil {
			s.logger.Warn("Failed to parse RSS feed",
				logger.StringField("url", feedURL), logger.ErrorField(err))
			continue
		}

		for _, item := range feed.Items {
			published := utils.TimeNowUTC()
			if item.PublishedParsed != nil {
				published = item.PublishedParsed.UTC()
			}
			articles = append(articles, provider.Article{
				Title:       item.Title,
				Content:     item.Description,
				Link:        item.Link,
				Keywords:    item.Categories,
				PublishedAt: published,
			})
			if len(articles) >= limit {
				return articles
			}
		}
	}
	return articles
}

// fetchReadableContent downloads an article page and extracts its main text.
func (s *NewsIngestionStrategy) fetchReadableContent(ctx context.Context, link string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, link, nil)
	if err != nil {
		return "", fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36")
	req.Header.Set("Accept", "text/html,application/xhtml+xml,application/xml;q=0.9,*/*;q=0.8")

	resp, err := s.client.Do(req)
	if err != nil {
		return "", fmt.Errorf("failed to fetch article: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("article fetch returned status %d", resp.StatusCode)
	}

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", fmt.Errorf("failed to read article body: %w", err)
	}

	doc, err := readability.NewDocument(string(body))
	if err != nil {
		return "", fmt.Errorf("failed to extract article content: %w", err)
	}

	docHTML, err := goquery.NewDocumentFromReader(bytes.NewReader([]byte(doc.Content())))
	if err != nil {
		return "", fmt.Errorf("failed to parse extracted content: %w", err)
	}

	content := strings.Join(strings.Fields(docHTML.Text()), " ")
	return utils.CleanToValidUTF8(content), nil
}

// articleHash builds the dedup key from title and source.
func articleHash(article provider.Article) string {
	sum := md5.Sum([]byte(article.Title + "|" + sourceOf(article)))
	return hex.EncodeToString(sum[:])
}

func sourceOf(article provider.Article) string {
	if article.Link == "" {
		return "unknown"
	}
	if parsed, err := url.Parse(article.Link); err == nil && parsed.Hostname() != "" {
		return parsed.Hostname()
	}
	return article.Link
}

// matchAsset links an article to the first asset whose ticker appears in the
// article keywords or title.
func matchAsset(article provider.Article, assets []entity.Asset) uint {
	title := strings.ToUpper(article.Title)
	keywords := make(map[string]bool, len(article.Keywords))
	for _, k := range article.Keywords {
		keywords[strings.ToUpper(strings.TrimSpace(k))] = true
	}

	for _, asset := range assets {
		ticker := strings.ToUpper(asset.Ticker)
		if keywords[ticker] || keywords[strings.ToUpper(asset.Name)] {
			return asset.ID
		}
		if containsWord(title, ticker) || strings.Contains(title, strings.ToUpper(asset.Name)) {
			return asset.ID
		}
	}
	return 0
}

// containsWord reports whether s contains word bounded by non-letter runes,
// so a ticker like "ETH" does not match inside "WHETHER".
func containsWord(s, word string) bool {
	idx := 0
	for {
		i := strings.Index(s[idx:], word)
		if i < 0 {
			return false
		}
		start := idx + i
		end := start + len(word)
		beforeOK := start == 0 || !isLetter(s[start-1])
		afterOK := end == len(s) || !isLetter(s[end])
		if beforeOK && afterOK {
			return true
		}
		idx = start + 1
	}
}

func isLetter(b byte) bool {
	return (b >= 'A' && b <= 'Z') || (b >= 'a' && b <= 'z')
}

func filterByKeywords(articles []provider.Article, keywords []string) []provider.Article {
	if len(keywords) == 0 {
		return articles
	}

	var filtered []provider.Article
	for _, article := range articles {
		haystack := strings.ToLower(article.Title + " " + article.Content + " " + strings.Join(article.Keywords, " "))
		for _, keyword := range keywords {
			if strings.Contains(haystack, strings.ToLower(keyword)) {
				filtered = append(filtered, article)
				break
			}
		}
	}
	return filtered
}

func filterByAge(articles []provider.Article, maxAgeInDays int) []provider.Article {
	cutoff := utils.TimeNowUTC().AddDate(0, 0, -maxAgeInDays)

	var filtered []provider.Article
	for _, article := range articles {
		if article.PublishedAt.Before(cutoff) {
			continue
		}
		filtered = append(filtered, article)
	}
	return filtered
}

// truncate cuts s to at most max bytes without splitting a multibyte rune,
// so the result stays valid UTF-8 for the varchar columns.
func truncate(s string, max int) string {
	if len(s) <= max {
		return s
	}
	cut := max
	for cut > 0 && !utf8.RuneStart(s[cut]) {
		cut--
	}
	return s[:cut]
}
