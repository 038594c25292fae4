// Package scrape fetches news pages and extracts their paragraph text.
package scrape

import (
	"context"
	"fmt"
	"net/http"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

const (
	userAgent      = "Mozilla/5.0 (Windows NT 10.0; Win64; x64)"
	defaultTimeout = 10 * time.Second
)

// Page is the text of a scraped article.
type Page struct {
	Text   string `json:"text"`
	Source string `json:"source"`
}

type Scraper struct {
	client *http.Client
}

func New() *Scraper {
	return &Scraper{client: &http.Client{Timeout: defaultTimeout}}
}

// Scrape fetches a URL and joins the text of its <p> elements. A failed
// fetch surfaces to the caller; nothing partial is retained.
func (s *Scraper) Scrape(ctx context.Context, rawURL string) (Page, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, rawURL, nil)
	if err != nil {
		return Page{}, fmt.Errorf("failed to create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := s.client.Do(req)
	if err != nil {
		return Page{}, fmt.Errorf("failed to fetch url: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return Page{}, fmt.Errorf("unexpected status %d fetching %s", resp.StatusCode, rawURL)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return Page{}, fmt.Errorf("failed to parse html: %w", err)
	}

	var paragraphs []string
	doc.Find("p").Each(func(_ int, sel *goquery.Selection) {
		if text := strings.TrimSpace(sel.Text()); text != "" {
			paragraphs = append(paragraphs, text)
		}
	})

	return Page{
		Text:   strings.Join(paragraphs, "\n\n"),
		Source: rawURL,
	}, nil
}
