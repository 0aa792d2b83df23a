// Package metadata looks books up by ISBN so intake drafts can be filled in automatically.
package metadata

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strings"
	"sync"
	"time"
)

// DefaultBaseURL is the public OpenLibrary endpoint.
const DefaultBaseURL = "https://openlibrary.org"

const userAgent = "LibraryHub/1.0 (https://github.com/mrlokans/libraryhub)"

// ErrISBNNotFound is returned when OpenLibrary has no edition for the ISBN.
var ErrISBNNotFound = errors.New("isbn not found")

// BookMetadata is what a lookup can tell about an edition.
type BookMetadata struct {
	Title           string `json:"title,omitempty"`
	Author          string `json:"author,omitempty"`
	ISBN            string `json:"isbn,omitempty"`
	CoverURL        string `json:"cover_url,omitempty"`
	Publisher       string `json:"publisher,omitempty"`
	PublicationYear int    `json:"publication_year,omitempty"`
	Description     string `json:"description,omitempty"`
	PageCount       int    `json:"page_count,omitempty"`
}

// OpenLibraryClient fetches edition data from the OpenLibrary API.
type OpenLibraryClient struct {
	httpClient  *http.Client
	baseURL     string
	rateLimiter *rateLimiter
}

type rateLimiter struct {
	mu       sync.Mutex
	lastCall time.Time
	interval time.Duration
}

func newRateLimiter(interval time.Duration) *rateLimiter {
	return &rateLimiter{interval: interval}
}

func (r *rateLimiter) wait(ctx context.Context) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if since := time.Since(r.lastCall); since < r.interval {
		select {
		case <-time.After(r.interval - since):
		case <-ctx.Done():
			return ctx.Err()
		}
	}
	r.lastCall = time.Now()
	return nil
}

// NewOpenLibraryClient creates a client for baseURL making at most one request per interval.
// An empty baseURL uses DefaultBaseURL.
func NewOpenLibraryClient(baseURL string, interval time.Duration) *OpenLibraryClient {
	if baseURL == "" {
		baseURL = DefaultBaseURL
	}
	return &OpenLibraryClient{
		httpClient: &http.Client{
			Timeout: 10 * time.Second,
		},
		baseURL:     strings.TrimRight(baseURL, "/"),
		rateLimiter: newRateLimiter(interval),
	}
}

// SearchByISBN looks up an edition by its ISBN.
func (c *OpenLibraryClient) SearchByISBN(ctx context.Context, isbn string) (*BookMetadata, error) {
	isbn = normalizeISBN(isbn)
	if isbn == "" {
		return nil, fmt.Errorf("invalid ISBN")
	}

	var book openLibraryBook
	if err := c.getJSON(ctx, fmt.Sprintf("%s/isbn/%s.json", c.baseURL, isbn), &book); err != nil {
		if errors.Is(err, ErrISBNNotFound) {
			return nil, fmt.Errorf("%w: %s", ErrISBNNotFound, isbn)
		}
		return nil, fmt.Errorf("fetch ISBN data: %w", err)
	}

	metadata := convertToMetadata(&book, isbn)

	if len(book.Authors) > 0 {
		if name, err := c.fetchAuthorName(ctx, book.Authors[0].Key); err == nil {
			metadata.Author = name
		}
	}

	return metadata, nil
}

func (c *OpenLibraryClient) fetchAuthorName(ctx context.Context, authorKey string) (string, error) {
	if authorKey == "" {
		return "", fmt.Errorf("empty author key")
	}
	var author struct {
		Name string `json:"name"`
	}
	if err := c.getJSON(ctx, fmt.Sprintf("%s%s.json", c.baseURL, authorKey), &author); err != nil {
		return "", err
	}
	return author.Name, nil
}

func (c *OpenLibraryClient) getJSON(ctx context.Context, url string, out any) error {
	if err := c.rateLimiter.wait(ctx); err != nil {
		return err
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, url, nil)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("User-Agent", userAgent)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode == http.StatusNotFound {
		return ErrISBNNotFound
	}
	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("unexpected status: %d", resp.StatusCode)
	}

	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("decode response: %w", err)
	}
	return nil
}

func convertToMetadata(book *openLibraryBook, isbn string) *BookMetadata {
	metadata := &BookMetadata{
		Title:     book.Title,
		ISBN:      isbn,
		PageCount: book.NumberOfPages,
		CoverURL:  fmt.Sprintf("https://covers.openlibrary.org/b/isbn/%s-L.jpg", isbn),
	}

	if book.PublishDate != "" {
		metadata.PublicationYear = extractYear(book.PublishDate)
	}
	if len(book.Publishers) > 0 {
		metadata.Publisher = book.Publishers[0]
	}

	// description is either a plain string or {"type": ..., "value": ...}
	switch v := book.Description.(type) {
	case string:
		metadata.Description = v
	case map[string]any:
		if val, ok := v["value"].(string); ok {
			metadata.Description = val
		}
	}

	return metadata
}

// normalizeISBN strips hyphens and spaces, returning "" unless 10 or 13 characters remain.
func normalizeISBN(isbn string) string {
	isbn = strings.ReplaceAll(isbn, "-", "")
	isbn = strings.ReplaceAll(isbn, " ", "")
	isbn = strings.TrimSpace(isbn)

	if len(isbn) != 10 && len(isbn) != 13 {
		return ""
	}
	return isbn
}

// extractYear tries to extract a 4-digit year from a date string.
func extractYear(dateStr string) int {
	dateStr = strings.TrimSpace(dateStr)
	if len(dateStr) < 4 {
		return 0
	}

	formats := []string{
		"2006",
		"January 2, 2006",
		"Jan 2, 2006",
		"2006-01-02",
		"January 2006",
	}
	for _, format := range formats {
		if t, err := time.Parse(format, dateStr); err == nil {
			return t.Year()
		}
	}

	for i := 0; i <= len(dateStr)-4; i++ {
		if dateStr[i] >= '0' && dateStr[i] <= '9' {
			var year int
			if _, err := fmt.Sscanf(dateStr[i:i+4], "%d", &year); err == nil && year > 1000 && year < 3000 {
				return year
			}
		}
	}

	return 0
}

type openLibraryBook struct {
	Key           string      `json:"key"`
	Title         string      `json:"title"`
	Authors       []authorRef `json:"authors"`
	Publishers    []string    `json:"publishers"`
	PublishDate   string      `json:"publish_date"`
	NumberOfPages int         `json:"number_of_pages"`
	Description   any         `json:"description"`
}

type authorRef struct {
	Key string `json:"key"`
}
