package sources

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"
)

func TestGitHubFetcher_FetchTrending(t *testing.T) {
	fixedNow := time.Date(2025, 6, 15, 12, 0, 0, 0, time.UTC)
	created := fixedNow.Add(-48 * time.Hour).Format(time.RFC3339)

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/search/repositories" {
			t.Errorf("Unexpected request path: %s", r.URL.Path)
		}
		if got := r.URL.Query().Get("q"); got != "created:>2025-06-08" {
			t.Errorf("Unexpected search query: %s", got)
		}
		if got := r.URL.Query().Get("per_page"); got != "10" {
			t.Errorf("Unexpected per_page: %s", got)
		}
		w.Write([]byte(`{"items":[
			{"full_name":"dev/hot-repo","description":"A hot new tool","html_url":"https://github.com/dev/hot-repo","stargazers_count":1200,"created_at":"` + created + `","owner":{"avatar_url":"https://avatars.example.com/1"}},
			{"full_name":"dev/quiet-repo","description":"Barely noticed","html_url":"https://github.com/dev/quiet-repo","stargazers_count":49,"created_at":"` + created + `"}
		]}`))
	}))
	defer server.Close()

	fetcher := NewGitHubFetcher(testClient())
	fetcher.baseURL = server.URL
	fetcher.now = func() time.Time { return fixedNow }

	items := fetcher.Fetch(context.Background(), nil)

	if len(items) != 1 {
		t.Fatalf("Expected repositories below the star floor to be dropped, got %d items", len(items))
	}
	if items[0].Title != "dev/hot-repo" {
		t.Errorf("Unexpected title: %s", items[0].Title)
	}
	if items[0].Kind != KindGitHub {
		t.Errorf("Expected kind github, got '%s'", items[0].Kind)
	}
	if items[0].SourceName != "GitHub Trending" {
		t.Errorf("Unexpected source name: %s", items[0].SourceName)
	}
	if items[0].Engagement != 1200 {
		t.Errorf("Expected star count as engagement, got %d", items[0].Engagement)
	}
}

func TestGitHubFetcher_SearchFailure(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusForbidden)
	}))
	defer server.Close()

	fetcher := NewGitHubFetcher(testClient())
	fetcher.baseURL = server.URL

	items := fetcher.Fetch(context.Background(), nil)

	if items != nil {
		t.Errorf("Expected nil items on search failure, got %d", len(items))
	}
}
