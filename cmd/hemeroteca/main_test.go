package main

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/poiesic/hemeroteca/core"
	"github.com/poiesic/hemeroteca/storage/badger"
	"github.com/poiesic/hemeroteca/storage/tabular"
)

const testFeed = `<?xml version="1.0" encoding="UTF-8"?>
<rss version="2.0" xmlns:media="http://search.yahoo.com/mrss/">
<channel>
  <title>Portada</title>
  <link>https://example.com</link>
  <description>Portada</description>
  <item>
    <title>El gobierno aprueba el presupuesto</title>
    <link>%[1]s/articles/1</link>
    <description>El gobierno y el presupuesto</description>
    <category>Política</category>
  </item>
  <item>
    <title>Resultados de la liga</title>
    <link>%[1]s/articles/2</link>
    <description>Fútbol</description>
    <category>Deportes</category>
  </item>
</channel>
</rss>`

func newTestServer(t *testing.T) *httptest.Server {
	t.Helper()
	var srv *httptest.Server
	srv = httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/feed.xml":
			w.Header().Set("Content-Type", "application/rss+xml")
			fmt.Fprintf(w, testFeed, srv.URL)
		case "/articles/1":
			w.Write([]byte(`<html><body><p>El gobierno ha aprobado las cuentas.</p></body></html>`))
		case "/articles/2":
			w.Write([]byte(`<html><body></body></html>`))
		default:
			http.NotFound(w, r)
		}
	}))
	t.Cleanup(srv.Close)
	return srv
}

type harness struct {
	env    *env
	root   string
	feeds  string
	stdout *bytes.Buffer
	stderr *bytes.Buffer
}

func newHarness(t *testing.T) *harness {
	t.Helper()
	srv := newTestServer(t)
	dir := t.TempDir()
	feeds := filepath.Join(dir, "feeds.txt")
	require.NoError(t, os.WriteFile(feeds, []byte("# test\n"+srv.URL+"/feed.xml\n"), 0o644))

	e := newEnv()
	stdout, stderr := &bytes.Buffer{}, &bytes.Buffer{}
	e.stdin = strings.NewReader("")
	e.stdout = stdout
	e.stderr = stderr
	e.now = func() time.Time { return time.Date(2024, 3, 1, 9, 0, 0, 0, time.UTC) }
	return &harness{env: e, root: filepath.Join(dir, "reports"), feeds: feeds, stdout: stdout, stderr: stderr}
}

func (h *harness) run(args ...string) error {
	base := []string{"hemeroteca", "--feeds-file", h.feeds, "--root", h.root, "--threads", "2"}
	return newApp(h.env).Run(append(base, args...))
}

func readOnly(t *testing.T, pattern string) string {
	t.Helper()
	matches, err := filepath.Glob(pattern)
	require.NoError(t, err)
	require.Len(t, matches, 1, pattern)
	data, err := os.ReadFile(matches[0])
	require.NoError(t, err)
	return string(data)
}

func TestApp_Relevance(t *testing.T) {
	h := newHarness(t)
	metrics := filepath.Join(t.TempDir(), "metrics.prom")

	require.NoError(t, h.run("--metrics-file", metrics, "relevance", "--name", "morning"))

	out := readOnly(t, filepath.Join(h.root, "morning_2024-03-01-09-00-00", "relevance-morning_*.md"))
	assert.Contains(t, out, "# Relevance Report")
	assert.Contains(t, out, "- **Portada:** Items: 2")
	assert.Contains(t, out, "] El gobierno aprueba el presupuesto")
	assert.Contains(t, out, "] Resultados de la liga")

	data, err := os.ReadFile(metrics)
	require.NoError(t, err)
	assert.Contains(t, string(data), "hemeroteca_scoring_units_total")
}

func TestApp_Dossier(t *testing.T) {
	h := newHarness(t)
	db := filepath.Join(t.TempDir(), "db")

	require.NoError(t, h.run("--db", db, "--opt-in", "POLÍTICA", "dossier", "--name", "d", "--log", "--store"))

	folder := filepath.Join(h.root, "d_2024-03-01-09-00-00")
	dossier := readOnly(t, filepath.Join(folder, "dossier-d_*.md"))
	assert.Contains(t, dossier, "# Dossier")
	assert.Contains(t, dossier, "1. [El gobierno aprueba el presupuesto](#el-gobierno-aprueba-el-presupuesto)")
	assert.Contains(t, dossier, "- **Number of items:** 1\n")
	assert.Contains(t, dossier, "El gobierno ha aprobado las cuentas.")
	assert.NotContains(t, dossier, "Resultados de la liga")

	log := readOnly(t, filepath.Join(folder, "d_*.md"))
	assert.Contains(t, log, "# Table of Contents")

	backend, err := badger.OpenBackend(db)
	require.NoError(t, err)
	defer backend.Close()
	count, err := badger.NewItemRepository(backend).CountItems(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)
}

func TestApp_Import(t *testing.T) {
	h := newHarness(t)
	db := filepath.Join(t.TempDir(), "db")
	file := filepath.Join(t.TempDir(), "corpus.csv")

	item := core.Item{Channel: "Portada", Title: "Titular", Link: "https://example.com/x", Description: "d"}
	require.NoError(t, tabular.WriteCSVFile(file, []*core.FeedbackRecord{{
		Item:           item.WithRelevance(5),
		TitleEmbedding: []float32{1, 0},
		BowEmbedding:   []float32{0, 1},
		FeedbackDate:   time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC),
	}}))

	require.NoError(t, h.run("--db", db, "import", file))

	backend, err := badger.OpenBackend(db)
	require.NoError(t, err)
	defer backend.Close()
	count, err := badger.NewFeedbackRepository(backend).CountFeedback(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 1, count)

	t.Run("needs a database", func(t *testing.T) {
		assert.Error(t, newHarness(t).run("import", file))
	})
}

func TestApp_InvalidFlags(t *testing.T) {
	tests := []struct {
		name string
		args []string
	}{
		{"log level", []string{"--log-level", "loud", "relevance"}},
		{"operator", []string{"--operator", "xor", "relevance"}},
		{"missing config file", []string{"--config", "/does/not/exist.yaml", "relevance"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Error(t, newHarness(t).run(tt.args...))
		})
	}
}

func TestSetupLogger(t *testing.T) {
	var buf bytes.Buffer
	for _, level := range []string{"debug", "INFO", "warn", "error"} {
		assert.NoError(t, setupLogger(level, &buf), level)
	}
	assert.Error(t, setupLogger("verbose", &buf))
}
