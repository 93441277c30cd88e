package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
)

func TestHackerNewsEnhancer_BackfillsPoints(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/items/41234567":
			w.Write([]byte(`{"points":342}`))
		default:
			t.Errorf("Unexpected request path: %s", r.URL.Path)
		}
	}))
	defer server.Close()

	enhancer := NewHackerNewsEnhancer(testClient())
	enhancer.baseURL = server.URL

	items := []Item{
		{Title: "HN Story", SourceName: HackerNewsSourceName, Link: "https://news.ycombinator.com/item?id=41234567"},
		{Title: "Unrelated", SourceName: "Some Blog", Link: "https://blog.example.com/post", Engagement: 7},
	}

	result := enhancer.Run(context.Background(), items)

	if result[0].Engagement != 342 {
		t.Errorf("Expected backfilled points 342, got %d", result[0].Engagement)
	}
	if result[1].Engagement != 7 {
		t.Errorf("Expected non-HN item untouched, got %d", result[1].Engagement)
	}
}

func TestHackerNewsEnhancer_LookupFailureKeepsZero(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusNotFound)
	}))
	defer server.Close()

	enhancer := NewHackerNewsEnhancer(testClient())
	enhancer.baseURL = server.URL

	items := []Item{
		{Title: "HN Story", SourceName: HackerNewsSourceName, Link: "https://news.ycombinator.com/item?id=1"},
	}

	result := enhancer.Run(context.Background(), items)

	if result[0].Engagement != 0 {
		t.Errorf("Expected engagement to stay zero on lookup failure, got %d", result[0].Engagement)
	}
}

func TestExtractHNItemID(t *testing.T) {
	tests := []struct {
		link     string
		expected string
	}{
		{"https://news.ycombinator.com/item?id=12345", "12345"},
		{"https://news.ycombinator.com/item?id=12345&p=2", "12345"},
		{"https://blog.example.com/post", ""},
	}

	for _, tt := range tests {
		if got := extractHNItemID(tt.link); got != tt.expected {
			t.Errorf("extractHNItemID(%q) = %q, expected %q", tt.link, got, tt.expected)
		}
	}
}
