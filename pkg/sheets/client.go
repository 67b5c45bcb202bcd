package sheets

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"
	"github.com/phuslu/log"
)

var (
	// ErrUnexpectedStatus is returned for any non-2xx export response.
	ErrUnexpectedStatus = errors.New("unexpected export status")
	// ErrNotPublic is returned when the export answers with an HTML page
	// (sign-in wall, not-found page) instead of CSV.
	ErrNotPublic = errors.New("sheet is not publicly accessible")
	// ErrBodyTooLarge is returned when the export exceeds the configured size.
	ErrBodyTooLarge = errors.New("export body too large")
	// ErrInsufficientData is returned when the CSV has no header plus data row.
	ErrInsufficientData = errors.New("sheet has insufficient data")
)

// MinLines is the smallest number of non-blank lines a usable export has:
// one header row and one data row.
const MinLines = 2

type Config struct {
	BaseURL      string
	Timeout      time.Duration
	MaxBodyBytes int64
}

// Client downloads the first tab of a public spreadsheet as CSV.
type Client struct {
	baseURL      string
	maxBodyBytes int64
	httpClient   *http.Client
}

func NewClient(cfg Config) *Client {
	baseURL := strings.TrimRight(cfg.BaseURL, "/")
	if baseURL == "" {
		baseURL = "https://docs.google.com"
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	maxBody := cfg.MaxBodyBytes
	if maxBody <= 0 {
		maxBody = 10 << 20
	}
	return &Client{
		baseURL:      baseURL,
		maxBodyBytes: maxBody,
		httpClient:   &http.Client{Timeout: timeout},
	}
}

// ExportURL returns the CSV export address for a sheet identifier.
func (c *Client) ExportURL(sheetID string) string {
	return fmt.Sprintf("%s/spreadsheets/d/%s/export?format=csv", c.baseURL, url.PathEscape(sheetID))
}

// FetchCSV makes a single attempt to download the sheet. The returned text is
// the raw body; validation only checks that it looks like CSV with at least
// MinLines non-blank lines.
func (c *Client) FetchCSV(ctx context.Context, sheetID string) (string, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.ExportURL(sheetID), nil)
	if err != nil {
		return "", fmt.Errorf("build export request: %w", err)
	}
	req.Header.Set("Accept", "text/csv")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", fmt.Errorf("export request failed: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, c.maxBodyBytes+1))
	if err != nil {
		return "", fmt.Errorf("read export body: %w", err)
	}
	if int64(len(body)) > c.maxBodyBytes {
		return "", fmt.Errorf("%w: more than %d bytes", ErrBodyTooLarge, c.maxBodyBytes)
	}
	text := string(body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		return "", fmt.Errorf("%w: HTTP %d", ErrUnexpectedStatus, resp.StatusCode)
	}

	if IsHTML(text) {
		log.Warn().
			Str("component", "sheets").
			Str("sheet_id", sheetID).
			Str("page_title", pageTitle(text)).
			Msg("export returned an HTML page")
		return "", ErrNotPublic
	}

	if lines := NonBlankLines(text); len(lines) < MinLines {
		return "", fmt.Errorf("%w: %d non-blank lines", ErrInsufficientData, len(lines))
	}

	return text, nil
}

// IsHTML reports whether the body carries an HTML document marker.
func IsHTML(body string) bool {
	return strings.Contains(body, "<!DOCTYPE html>") || strings.Contains(body, "<html")
}

// NonBlankLines splits on newlines and drops lines that are empty after trimming.
// Lines are returned untrimmed.
func NonBlankLines(text string) []string {
	raw := strings.Split(text, "\n")
	lines := make([]string, 0, len(raw))
	for _, line := range raw {
		if strings.TrimSpace(line) != "" {
			lines = append(lines, line)
		}
	}
	return lines
}

func pageTitle(body string) string {
	doc, err := goquery.NewDocumentFromReader(strings.NewReader(body))
	if err != nil {
		return ""
	}
	return strings.TrimSpace(doc.Find("title").First().Text())
}
