package metadata

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNormalizeISBN(t *testing.T) {
	tests := []struct {
		input    string
		expected string
	}{
		{"978-0-13-468599-1", "9780134685991"},
		{"0-13-468599-7", "0134685997"},
		{"978 0 13 468599 1", "9780134685991"},
		{"12345", ""},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, normalizeISBN(tt.input))
		})
	}
}

func TestExtractYear(t *testing.T) {
	tests := []struct {
		input    string
		expected int
	}{
		{"2019", 2019},
		{"January 2, 2006", 2006},
		{"Jan 2, 2006", 2006},
		{"2006-01-02", 2006},
		{"March 1999", 1999},
		{"c1987", 1987},
		{"unknown", 0},
		{"", 0},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			assert.Equal(t, tt.expected, extractYear(tt.input))
		})
	}
}

func newOpenLibraryServer(t *testing.T) *httptest.Server {
	t.Helper()
	mux := http.NewServeMux()
	mux.HandleFunc("/isbn/9780134685991.json", func(w http.ResponseWriter, r *http.Request) {
		assert.Contains(t, r.Header.Get("User-Agent"), "LibraryHub")
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{
			"title": "Effective Java",
			"authors": [{"key": "/authors/OL1A"}],
			"publishers": ["Addison-Wesley"],
			"publish_date": "Dec 27, 2017",
			"number_of_pages": 412,
			"description": {"type": "/type/text", "value": "Best practices."}
		}`))
	})
	mux.HandleFunc("/authors/OL1A.json", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`{"name": "Joshua Bloch"}`))
	})
	mux.HandleFunc("/isbn/9999999999.json", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	server := httptest.NewServer(mux)
	t.Cleanup(server.Close)
	return server
}

func TestSearchByISBN(t *testing.T) {
	server := newOpenLibraryServer(t)
	client := NewOpenLibraryClient(server.URL, 0)

	t.Run("returns edition metadata with author", func(t *testing.T) {
		md, err := client.SearchByISBN(context.Background(), "978-0-13-468599-1")
		require.NoError(t, err)

		assert.Equal(t, "Effective Java", md.Title)
		assert.Equal(t, "Joshua Bloch", md.Author)
		assert.Equal(t, "Addison-Wesley", md.Publisher)
		assert.Equal(t, 2017, md.PublicationYear)
		assert.Equal(t, 412, md.PageCount)
		assert.Equal(t, "Best practices.", md.Description)
		assert.Equal(t, "9780134685991", md.ISBN)
		assert.Contains(t, md.CoverURL, "9780134685991")
	})

	t.Run("not found", func(t *testing.T) {
		_, err := client.SearchByISBN(context.Background(), "0000000000")
		require.Error(t, err)
		assert.True(t, errors.Is(err, ErrISBNNotFound))
	})

	t.Run("server error", func(t *testing.T) {
		_, err := client.SearchByISBN(context.Background(), "9999999999")
		require.Error(t, err)
		assert.False(t, errors.Is(err, ErrISBNNotFound))
	})

	t.Run("invalid isbn", func(t *testing.T) {
		_, err := client.SearchByISBN(context.Background(), "123")
		assert.Error(t, err)
	})
}

func TestSearchByISBN_ContextCancelled(t *testing.T) {
	server := newOpenLibraryServer(t)
	client := NewOpenLibraryClient(server.URL, 0)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := client.SearchByISBN(ctx, "9780134685991")
	assert.Error(t, err)
}
