// Package search scrapes a product search page for result links.
package search

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"financebot/internal/config"
	"financebot/internal/logger"
	"financebot/internal/model"

	"log/slog"
)

const (
	requestTimeout = 15 * time.Second
	maxLinks       = 3

	// Listing sites routinely block clients that do not look like a browser.
	browserUserAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"

	productPathMarker = "/product/"
)

// Client fetches and parses search result pages.
type Client struct {
	http    *http.Client
	baseURL string
}

// New builds a search client from configuration.
func New(cfg config.SearchConfig) *Client {
	return &Client{
		http:    &http.Client{Timeout: requestTimeout},
		baseURL: strings.TrimRight(cfg.BaseURL, "/"),
	}
}

// Search fetches the search page for term and extracts up to three product
// links. A page with no extractable links (common for JavaScript-rendered
// targets) yields a fallback result, not an error; only transport failures
// and non-success statuses are errors.
func (c *Client) Search(ctx context.Context, term string) (model.SearchResult, error) {
	searchURL := c.buildURL(term)
	result := model.SearchResult{Term: term, SearchURL: searchURL}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, searchURL, nil)
	if err != nil {
		return result, fmt.Errorf("build search request: %w", err)
	}
	req.Header.Set("User-Agent", browserUserAgent)

	start := time.Now()
	resp, err := c.http.Do(req)
	if err != nil {
		logger.Error(ctx, "search", "fetch.fail",
			slog.String("term", logger.SanitizeLimit(term, 64)),
			slog.String("err", err.Error()),
		)
		return result, fmt.Errorf("fetch search page: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		logger.Error(ctx, "search", "fetch.fail",
			slog.String("term", logger.SanitizeLimit(term, 64)),
			slog.Int("http_code", resp.StatusCode),
		)
		return result, fmt.Errorf("search page status: %s", resp.Status)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return result, fmt.Errorf("parse search page: %w", err)
	}

	result.Links = c.extractLinks(doc)
	logger.Info(ctx, "search", "fetch.ok",
		slog.String("term", logger.SanitizeLimit(term, 64)),
		slog.Int("count", len(result.Links)),
		slog.Bool("fallback", result.Fallback()),
		slog.Duration("duration", logger.RoundMS(time.Since(start))),
	)
	return result, nil
}

func (c *Client) buildURL(term string) string {
	encoded := strings.ReplaceAll(url.QueryEscape(term), "+", "%20")
	return fmt.Sprintf("%s/search?keyword=%s", c.baseURL, encoded)
}

func (c *Client) extractLinks(doc *goquery.Document) []string {
	var links []string
	doc.Find("a[href]").EachWithBreak(func(_ int, sel *goquery.Selection) bool {
		href, ok := sel.Attr("href")
		if !ok || !strings.Contains(href, productPathMarker) {
			return true
		}
		if strings.HasPrefix(href, "/") {
			href = c.baseURL + href
		}
		links = append(links, href)
		return len(links) < maxLinks
	})
	return links
}
