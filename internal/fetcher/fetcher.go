package fetcher

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
)

// Posting is the readable content of a fetched job-posting page.
type Posting struct {
	Title   string
	URL     string
	Content string
}

type Client struct {
	http *http.Client
}

func NewClient() *Client {
	return &Client{http: &http.Client{Timeout: 15 * time.Second}}
}

// FetchPosting downloads a job-posting page and extracts its title and body
// text so the interview form can be prefilled from it.
func (c *Client) FetchPosting(ctx context.Context, rawURL, userAgent string) (*Posting, error) {
	u, err := url.Parse(rawURL)
	if err != nil {
		return nil, fmt.Errorf("invalid url: %w", err)
	}
	if u.Scheme != "http" && u.Scheme != "https" {
		return nil, fmt.Errorf("unsupported url scheme: %s", u.Scheme)
	}

	req, err := http.NewRequestWithContext(ctx, "GET", rawURL, nil)
	if err != nil {
		return nil, err
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("fetch posting: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		return nil, fmt.Errorf("fetch posting: status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("parse posting html: %w", err)
	}

	title := extractTitle(doc)
	content := extractContent(doc)
	if content == "" {
		return nil, fmt.Errorf("no readable content found at %s", rawURL)
	}

	return &Posting{Title: title, URL: rawURL, Content: content}, nil
}

func extractTitle(doc *goquery.Document) string {
	if og, ok := doc.Find(`meta[property="og:title"]`).Attr("content"); ok {
		if t := strings.TrimSpace(og); t != "" {
			return t
		}
	}
	if t := cleanText(doc.Find("h1").First().Text()); t != "" {
		return t
	}
	return cleanText(doc.Find("title").First().Text())
}

func extractContent(doc *goquery.Document) string {
	doc.Find("script, style, nav, header, footer, .ad, .advertisement").Remove()

	root := doc.Find("main, article, div.job-description, div.description").First()
	if root.Length() == 0 {
		root = doc.Find("body").First()
	}

	var parts []string
	root.Find("p, h2, h3, h4, ul, ol, pre").Each(func(i int, s *goquery.Selection) {
		if text := cleanText(s.Text()); text != "" {
			parts = append(parts, text)
		}
	})
	return strings.Join(parts, "\n\n")
}

var whitespaceRe = regexp.MustCompile(`\s+`)

func cleanText(s string) string {
	return strings.TrimSpace(whitespaceRe.ReplaceAllString(s, " "))
}
