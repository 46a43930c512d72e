package scraper

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"resty.dev/v3"

	"github.com/deikotec/socialflow/internal/utils/httpclients"
)

const (
	// MaxChars bounds the text handed to prompts.
	MaxChars  = 5000
	userAgent = "Mozilla/5.0 (Windows NT 10.0; Win64; x64) AppleWebKit/537.36 (KHTML, like Gecko) Chrome/91.0.4472.124 Safari/537.36"
)

// Scraper extracts visible body text from web pages.
type Scraper struct {
	client *resty.Client
}

func New(timeout time.Duration) *Scraper {
	client := httpclients.NewClient("scraper")
	client.SetTimeout(timeout)
	client.SetHeader("User-Agent", userAgent)
	return &Scraper{client: client}
}

// ReadText fetches url and returns its body text with whitespace collapsed,
// truncated to MaxChars.
func (s *Scraper) ReadText(ctx context.Context, url string) (string, error) {
	resp, err := s.client.R().SetContext(ctx).Get(url)
	if err != nil {
		return "", fmt.Errorf("fetch %s: %w", url, err)
	}
	if resp.IsError() {
		return "", fmt.Errorf("fetch %s: %s", url, resp.Status())
	}
	return ExtractText(resp.String())
}

// ExtractText strips non-content elements from html and returns the body text.
func ExtractText(html string) (string, error) {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(html))
	if err != nil {
		return "", fmt.Errorf("parse html: %w", err)
	}
	doc.Find("script, style, noscript, iframe, img, svg").Remove()

	text := strings.Join(strings.Fields(doc.Find("body").Text()), " ")
	if runes := []rune(text); len(runes) > MaxChars {
		text = string(runes[:MaxChars])
	}
	return text, nil
}
