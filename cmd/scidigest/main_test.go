package main

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/umputun/scidigest/pkg/domain"
)

func TestRun_MissingConfig(t *testing.T) {
	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	opts := Opts{
		Config: "non-existent-config.yml",
	}

	err := run(ctx, opts)
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_InvalidConfig(t *testing.T) {
	tmpFile := filepath.Join(t.TempDir(), "invalid-config.yml")
	require.NoError(t, os.WriteFile(tmpFile, []byte("invalid: yaml: content: ["), 0o600))

	ctx, cancel := context.WithTimeout(context.Background(), 1*time.Second)
	defer cancel()

	err := run(ctx, Opts{Config: tmpFile})
	require.Error(t, err)
	require.Contains(t, err.Error(), "failed to load config")
}

func TestRun_OPML(t *testing.T) {
	out := filepath.Join(t.TempDir(), "feeds.opml")
	err := run(context.Background(), Opts{Config: "../../config.example.yml", Out: out, OPML: true})
	require.NoError(t, err)

	data, err := os.ReadFile(out)
	require.NoError(t, err)
	assert.Contains(t, string(data), `<opml version="2.0">`)
	assert.Contains(t, string(data), `text="Biotech Industry"`)
}

func TestRun_Digest(t *testing.T) {
	now := time.Now()
	today := now.Format(domain.DateLayout)

	mux := http.NewServeMux()
	mux.HandleFunc("/feed", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/rss+xml")
		_, _ = fmt.Fprintf(w, `<?xml version="1.0"?>
<rss version="2.0"><channel><title>Lab News</title>
<item><title>Fresh news</title><link>https://news.example/1</link><description>new &lt;b&gt;stuff&lt;/b&gt;</description><pubDate>%s</pubDate></item>
<item><title>Old news</title><link>https://news.example/2</link><pubDate>%s</pubDate></item>
</channel></rss>`, now.Format(time.RFC1123Z), now.AddDate(0, 0, -30).Format(time.RFC1123Z))
	})
	mux.HandleFunc("/broken-feed", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	})
	mux.HandleFunc("/eutils/esearch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<eSearchResult><IdList><Id>42</Id></IdList></eSearchResult>`))
	})
	mux.HandleFunc("/eutils/efetch.fcgi", func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(`<PubmedArticleSet><PubmedArticle><MedlineCitation><PMID>42</PMID><Article>
<Journal><Title>Nature</Title><JournalIssue><PubDate><Year>2020</Year><Month>Jan</Month></PubDate></JournalIssue></Journal>
<ArticleTitle>Phage therapy trial</ArticleTitle>
<Abstract><AbstractText>Phage works.</AbstractText></Abstract>
</Article></MedlineCitation></PubmedArticle></PubmedArticleSet>`))
	})
	mux.HandleFunc("/biorxiv/microbiology/0", func(w http.ResponseWriter, r *http.Request) {
		_, _ = fmt.Fprintf(w, `{"collection":[{"title":"Preprint on phage","authors":"A; B","abstract":"phage biology","date":%q,"doi":"10.1101/1"}]}`, today)
	})
	ts := httptest.NewServer(mux)
	defer ts.Close()

	dir := t.TempDir()
	cfgFile := filepath.Join(dir, "config.yml")
	cfgData := fmt.Sprintf(`
fetch:
  timeout: 5s
  max_workers: 2
news:
  buckets:
    - name: Lab
      feeds:
        - %[1]s/feed
        - %[1]s/broken-feed
papers:
  pubmed:
    base_url: %[1]s/eutils/
  biorxiv:
    base_url: %[1]s/biorxiv
    collections: [microbiology]
categories:
  - name: Phage
    keywords:
      phage: 10
journals:
  Nature: 10
`, ts.URL)
	require.NoError(t, os.WriteFile(cfgFile, []byte(cfgData), 0o600))

	t.Run("json", func(t *testing.T) {
		out := filepath.Join(dir, "digest.json")
		require.NoError(t, run(context.Background(), Opts{Config: cfgFile, Out: out, Format: "json"}))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		var d domain.Digest
		require.NoError(t, json.Unmarshal(data, &d))

		assert.NotEmpty(t, d.RunID)
		assert.Equal(t, []string{"Lab"}, d.NewsOrder)
		require.Len(t, d.News["Lab"], 1)
		assert.Equal(t, "Fresh news", d.News["Lab"][0].Title)
		assert.Equal(t, "new stuff", d.News["Lab"][0].Summary)
		assert.Equal(t, "Lab News", d.News["Lab"][0].Source)

		require.Len(t, d.Papers["Phage"], 2)
		// pubmed: 10 + 3 title + 10 journal, old date; preprint: 10 + 3 title + 5 fresh
		assert.Equal(t, "Phage therapy trial", d.Papers["Phage"][0].Title)
		assert.Equal(t, 23, d.Papers["Phage"][0].RelevanceScore)
		assert.Equal(t, "Preprint on phage", d.Papers["Phage"][1].Title)
		assert.Equal(t, 18, d.Papers["Phage"][1].RelevanceScore)
		assert.Equal(t, "https://pubmed.ncbi.nlm.nih.gov/42/", d.Papers["Phage"][0].URL)
	})

	t.Run("rss", func(t *testing.T) {
		out := filepath.Join(dir, "digest.xml")
		require.NoError(t, run(context.Background(), Opts{Config: cfgFile, Out: out, Format: "rss", BaseURL: "https://digest.example"}))

		data, err := os.ReadFile(out)
		require.NoError(t, err)
		assert.Contains(t, string(data), "<title>[23] Phage therapy trial</title>")
		assert.Contains(t, string(data), "<title>[18] Preprint on phage</title>")
		assert.Contains(t, string(data), `href="https://digest.example/rss"`)
	})
}

func TestRender_UnknownFormat(t *testing.T) {
	_, err := render(domain.Digest{}, Opts{Format: "csv"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), `unsupported format "csv"`)
}

func TestSetupLog(t *testing.T) {
	setupLog(true, "secret")
	setupLog(false)
}
