package nytimes

import (
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/bilgisen/newsdeck/internal/config"
	"github.com/bilgisen/newsdeck/internal/feed"
)

const sampleTopStories = `{
  "status": "OK",
  "section": "technology",
  "num_results": 3,
  "results": [
    {
      "section": "technology",
      "title": "Robots Learn to Fold Laundry",
      "abstract": "A lab in Boston reports progress.",
      "url": "https://www.nytimes.com/2024/05/01/technology/robots.html",
      "uri": "nyt://article/aaa-111",
      "byline": "By Ada Lovelace",
      "published_date": "2024-05-01T10:00:00-04:00",
      "multimedia": [
        {"url": "https://static01.nyt.com/robots-super.jpg", "format": "Super Jumbo"},
        {"url": "https://static01.nyt.com/robots-thumb.jpg", "format": "Thumbnail"}
      ]
    },
    {
      "section": "Business",
      "title": "Chip Stocks Slide",
      "abstract": "Investors react to earnings.",
      "url": "https://www.nytimes.com/2024/05/01/business/chips.html",
      "uri": "nyt://article/bbb-222",
      "byline": "",
      "published_date": "2024-05-01T09:00:00-04:00",
      "multimedia": null
    },
    {
      "section": "obituaries",
      "title": "",
      "url": "https://www.nytimes.com/untitled.html",
      "uri": "nyt://article/ccc-333",
      "published_date": "2024-05-01T08:00:00-04:00"
    }
  ]
}`

const sampleMostPopular = `{
  "status": "OK",
  "num_results": 3,
  "results": [
    {
      "uri": "nyt://article/ddd-444",
      "url": "https://www.nytimes.com/2024/04/30/arts/concert.html",
      "id": 100000009,
      "published_date": "2024-04-30",
      "section": "Arts",
      "byline": "By Clara Schumann",
      "title": "A Concert to Remember",
      "abstract": "The orchestra <em>shines</em>.",
      "media": [
        {
          "type": "image",
          "media-metadata": [
            {"url": "https://static01.nyt.com/concert-thumb.jpg", "format": "Standard Thumbnail", "height": 75, "width": 75},
            {"url": "https://static01.nyt.com/concert-large.jpg", "format": "mediumThreeByTwo440", "height": 293, "width": 440}
          ]
        }
      ]
    },
    {
      "uri": "nyt://article/eee-555",
      "url": "https://www.nytimes.com/2024/04/29/technology/ai-laws.html",
      "id": 100000010,
      "published_date": "2024-04-29",
      "section": "Technology",
      "byline": "",
      "title": "New Rules for AI",
      "abstract": "Lawmakers agree on a framework.",
      "media": []
    },
    {
      "uri": "nyt://article/fff-666",
      "url": "https://www.nytimes.com/2024/04/28/sports/final.html",
      "id": 100000011,
      "published_date": "2024-04-28",
      "section": "Sports",
      "byline": "",
      "title": "Final Whistle",
      "abstract": "A dramatic finish.",
      "media": []
    }
  ]
}`

const sampleSearch = `{
  "status": "OK",
  "response": {
    "docs": [
      {
        "_id": "nyt://article/ggg-777",
        "web_url": "https://www.nytimes.com/2024/05/02/technology/quantum.html",
        "abstract": "Quantum computers get closer.",
        "snippet": "snippet text",
        "lead_paragraph": "Researchers said on Thursday...",
        "headline": {"main": "Quantum Leap"},
        "pub_date": "2024-05-02T12:00:00+0000",
        "section_name": "Technology",
        "byline": {"original": "By Alan Turing"},
        "multimedia": [{"url": "images/2024/05/02/quantum.jpg", "subtype": "xlarge"}]
      },
      {
        "_id": "nyt://article/hhh-888",
        "web_url": "https://www.nytimes.com/2024/05/01/style/quantum-fashion.html",
        "abstract": "",
        "snippet": "Fashion meets physics.",
        "lead_paragraph": "",
        "headline": {"main": "Quantum Couture"},
        "pub_date": "2024-05-01T12:00:00+0000",
        "section_name": "Style",
        "byline": {"original": null},
        "multimedia": {"default": {"url": "https://static01.nyt.com/couture.jpg"}}
      },
      {
        "_id": "nyt://article/iii-999",
        "web_url": "https://www.nytimes.com/2024/04/30/technology/quantum-2.html",
        "abstract": "Third result.",
        "headline": {"main": "Quantum Again"},
        "pub_date": "2024-04-30T12:00:00+0000",
        "section_name": "technology",
        "byline": {"original": ""},
        "multimedia": []
      }
    ],
    "meta": {"hits": 42, "offset": 0}
  }
}`

const sampleFault = `{"fault":{"faultstring":"Invalid ApiKey","detail":{"errorcode":"oauth.v2.InvalidApiKey"}}}`

// upstream serves canned bodies per path and records the query strings it saw
type upstream struct {
	mu      sync.Mutex
	bodies  map[string]string
	paged   map[string]map[string]string
	status  map[string]int
	queries map[string][]url.Values
}

func newUpstream(t *testing.T) (*upstream, *httptest.Server) {
	t.Helper()
	u := &upstream{
		bodies:  map[string]string{},
		paged:   map[string]map[string]string{},
		status:  map[string]int{},
		queries: map[string][]url.Values{},
	}
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		u.mu.Lock()
		u.queries[r.URL.Path] = append(u.queries[r.URL.Path], r.URL.Query())
		body, ok := u.bodies[r.URL.Path]
		if pages, paged := u.paged[r.URL.Path]; paged {
			body, ok = pages[r.URL.Query().Get("page")]
		}
		status := u.status[r.URL.Path]
		u.mu.Unlock()

		if !ok {
			w.WriteHeader(http.StatusNotFound)
			_, _ = w.Write([]byte(`{"fault":{"faultstring":"not found"}}`))
			return
		}
		if status == 0 {
			status = http.StatusOK
		}
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(status)
		_, _ = w.Write([]byte(body))
	}))
	t.Cleanup(srv.Close)
	return u, srv
}

func (u *upstream) serve(path string, status int, body string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.bodies[path] = body
	u.status[path] = status
}

// servePages answers path with a different body per "page" query value
func (u *upstream) servePages(path string, pages map[string]string) {
	u.mu.Lock()
	defer u.mu.Unlock()
	u.paged[path] = pages
}

// searchBody renders an article search response holding docs numbered
// from..to-1, so tests can tell which upstream window a result came from.
func searchBody(from, to, hits int) string {
	docs := make([]string, 0, to-from)
	for i := from; i < to; i++ {
		docs = append(docs, fmt.Sprintf(`{
        "_id": "nyt://article/doc-%d",
        "web_url": "https://www.nytimes.com/2024/05/01/world/doc-%d.html",
        "abstract": "Result %d.",
        "headline": {"main": "Result %d"},
        "pub_date": "2024-05-01T12:00:00+0000",
        "section_name": "World",
        "multimedia": []
      }`, i, i, i, i))
	}
	return fmt.Sprintf(`{"status":"OK","response":{"docs":[%s],"meta":{"hits":%d,"offset":%d}}}`,
		strings.Join(docs, ","), hits, from)
}

func (u *upstream) calls(path string) []url.Values {
	u.mu.Lock()
	defer u.mu.Unlock()
	return append([]url.Values(nil), u.queries[path]...)
}

func testConfig(baseURL string) config.NYTimesConfig {
	return config.NYTimesConfig{APIKey: "nyt-key", BaseURL: baseURL}
}

func testFetcher() *feed.Fetcher {
	return feed.NewFetcher(feed.Options{Timeout: time.Second})
}
