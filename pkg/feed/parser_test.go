package feed

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/scidigest/pkg/domain"
)

func TestParser_Parse(t *testing.T) {
	rssContent := `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0">
<channel>
	<title>Test Feed</title>
	<link>http://example.com</link>
	<description>Test Description</description>
	<item>
		<title>Test Article 1</title>
		<link>http://example.com/article1</link>
		<description><![CDATA[<p>Article 1 description</p>]]></description>
		<pubDate>Mon, 02 Jan 2006 15:04:05 -0700</pubDate>
		<guid>http://example.com/article1</guid>
	</item>
	<item>
		<title>Test Article 2</title>
		<link>http://example.com/article2</link>
		<description>Article 2 description</description>
	</item>
</channel>
</rss>`

	var gotUA string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotUA = r.Header.Get("User-Agent")
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = w.Write([]byte(rssContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "test-agent")
	feed, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)
	assert.Equal(t, "test-agent", gotUA)

	assert.Equal(t, "Test Feed", feed.Title)
	require.Len(t, feed.Items, 2)

	item1 := feed.Items[0]
	assert.Equal(t, "Test Article 1", item1.Title)
	assert.Equal(t, "http://example.com/article1", item1.Link)
	assert.Equal(t, "<p>Article 1 description</p>", item1.Summary)
	require.NotNil(t, item1.Published)
	assert.Equal(t, time.Date(2006, 1, 2, 22, 4, 5, 0, time.UTC), item1.Published.UTC())

	item2 := feed.Items[1]
	assert.Equal(t, "Test Article 2", item2.Title)
	assert.Nil(t, item2.Published, "no published or updated time")
}

func TestParser_Parse_AtomFeed(t *testing.T) {
	atomContent := `<?xml version="1.0" encoding="UTF-8"?>
<feed xmlns="http://www.w3.org/2005/Atom">
	<title>Test Atom Feed</title>
	<link href="http://example.com"/>
	<entry>
		<title>Atom Entry 1</title>
		<link href="http://example.com/entry1"/>
		<id>urn:uuid:1225c695-cfb8-4ebb-aaaa-80da344efa6a</id>
		<updated>2006-01-02T15:04:05Z</updated>
		<summary>Entry 1 summary</summary>
	</entry>
	<entry>
		<title>Atom Entry 2</title>
		<link href="http://example.com/entry2"/>
		<id>entry2</id>
		<published>2006-01-03T10:00:00Z</published>
		<updated>2006-01-04T10:00:00Z</updated>
		<content type="html">&lt;p&gt;Content only&lt;/p&gt;</content>
	</entry>
</feed>`

	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/atom+xml")
		_, _ = w.Write([]byte(atomContent))
	}))
	defer server.Close()

	parser := NewParser(5*time.Second, "test-agent")
	feed, err := parser.Parse(context.Background(), server.URL)
	require.NoError(t, err)

	assert.Equal(t, "Test Atom Feed", feed.Title)
	require.Len(t, feed.Items, 2)

	item := feed.Items[0]
	assert.Equal(t, "Atom Entry 1", item.Title)
	assert.Equal(t, "http://example.com/entry1", item.Link)
	assert.Equal(t, "Entry 1 summary", item.Summary)
	require.NotNil(t, item.Published, "updated time used when published is missing")
	assert.Equal(t, time.Date(2006, 1, 2, 15, 4, 5, 0, time.UTC), item.Published.UTC())

	item2 := feed.Items[1]
	require.NotNil(t, item2.Published)
	assert.Equal(t, time.Date(2006, 1, 3, 10, 0, 0, 0, time.UTC), item2.Published.UTC(), "published wins over updated")
	assert.Contains(t, item2.Summary, "Content only")
}

func TestParser_Parse_Errors(t *testing.T) {
	t.Run("HTTP error", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			w.WriteHeader(http.StatusInternalServerError)
		}))
		defer server.Close()

		parser := NewParser(5*time.Second, "test-agent")
		_, err := parser.Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "unexpected status code: 500")
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
	})

	t.Run("Invalid XML", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			_, _ = w.Write([]byte("not xml"))
		}))
		defer server.Close()

		parser := NewParser(5*time.Second, "test-agent")
		_, err := parser.Parse(context.Background(), server.URL)
		require.Error(t, err)
		assert.Contains(t, err.Error(), "parse feed")
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
	})

	t.Run("Timeout", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			time.Sleep(200 * time.Millisecond)
			_, _ = w.Write([]byte("too late"))
		}))
		defer server.Close()

		parser := NewParser(50*time.Millisecond, "test-agent")
		_, err := parser.Parse(context.Background(), server.URL)
		require.Error(t, err)
	})

	t.Run("Invalid URL", func(t *testing.T) {
		parser := NewParser(5*time.Second, "test-agent")
		_, err := parser.Parse(context.Background(), "not-a-url")
		require.Error(t, err)
	})

	t.Run("Connection refused", func(t *testing.T) {
		server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
		url := server.URL
		server.Close()

		parser := NewParser(5*time.Second, "test-agent")
		_, err := parser.Parse(context.Background(), url)
		require.Error(t, err)
		assert.True(t, errors.Is(err, domain.ErrSourceUnavailable))
	})
}
