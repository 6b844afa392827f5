package handlers

import (
	"bytes"
	"errors"
	"fmt"
	"html/template"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/yuin/goldmark"
	"github.com/yuin/goldmark/extension"
	ghhtml "github.com/yuin/goldmark/renderer/html"

	"symptom-checker/internal/contextutil"
	"symptom-checker/internal/storage"
)

// ViewHandler serves stored analyses as rendered HTML pages.
type ViewHandler struct {
	history  storage.HistoryStore
	parser   goldmark.Markdown
	template *template.Template
}

// viewPageData holds template data for rendered analysis pages.
type viewPageData struct {
	ID        int64
	Symptoms  string
	Timestamp string
	Content   template.HTML
}

// NewViewHandler creates a new handler for viewing stored analyses.
func NewViewHandler(history storage.HistoryStore) *ViewHandler {
	tmpl := template.Must(template.New("query").Parse(`<!DOCTYPE html>
<html>
<head>
  <meta charset="utf-8">
  <meta name="viewport" content="width=device-width, initial-scale=1">
  <title>Symptom analysis #{{.ID}}</title>
  <style>
    body {
      font-family: -apple-system, BlinkMacSystemFont, 'Segoe UI', sans-serif;
      margin: 0 auto;
      padding: 2rem;
      max-width: 820px;
      line-height: 1.7;
      background: #f8fafc;
      color: #0f172a;
    }
    header {
      margin-bottom: 2rem;
      border-bottom: 1px solid #e2e8f0;
      padding-bottom: 1.25rem;
    }
    h1 {
      margin-top: 0;
      font-size: 1.6rem;
    }
    article {
      background: #fff;
      border: 1px solid #e2e8f0;
      border-radius: 12px;
      padding: 2rem;
    }
    blockquote {
      border-left: 4px solid #f59e0b;
      padding-left: 1rem;
      margin-left: 0;
      background: #fffbeb;
      border-radius: 6px;
    }
    .meta {
      color: #64748b;
      font-size: 0.95rem;
      margin-top: 0.5rem;
    }
  </style>
</head>
<body>
  <header>
    <h1>Symptom analysis #{{.ID}}</h1>
    <p class="meta">Symptoms: {{.Symptoms}}</p>
    <p class="meta">Checked: {{.Timestamp}}</p>
  </header>
  <article>{{.Content}}</article>
</body>
</html>`))

	return &ViewHandler{
		history: history,
		parser: goldmark.New(
			goldmark.WithExtensions(
				extension.GFM,
				extension.Strikethrough,
				extension.Linkify,
			),
			goldmark.WithRendererOptions(
				ghhtml.WithHardWraps(),
			),
		),
		template: tmpl,
	}
}

// ServeHTTP renders the requested stored analysis as HTML.
func (h *ViewHandler) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()
	logger := contextutil.LoggerFromContext(ctx)

	if h.history == nil {
		http.Error(w, "history is not enabled", http.StatusNotFound)
		return
	}

	id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
	if err != nil {
		http.Error(w, "invalid query id", http.StatusBadRequest)
		return
	}

	record, err := h.history.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			http.Error(w, "query not found", http.StatusNotFound)
			return
		}
		logger.ErrorContext(ctx, "failed to load query for view", "id", id, "error", err)
		http.Error(w, "failed to load query", http.StatusInternalServerError)
		return
	}

	htmlContent, err := h.renderMarkdown([]byte(record.Response))
	if err != nil {
		logger.ErrorContext(ctx, "failed to render analysis markdown", "id", id, "error", err)
		http.Error(w, "failed to render analysis", http.StatusInternalServerError)
		return
	}

	pageData := viewPageData{
		ID:        record.ID,
		Symptoms:  record.Symptoms,
		Timestamp: record.CreatedAt.UTC().Format(time.RFC1123),
		Content:   template.HTML(htmlContent),
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := h.template.Execute(w, pageData); err != nil {
		logger.ErrorContext(ctx, "failed to execute view template", "id", id, "error", err)
	}
}

func (h *ViewHandler) renderMarkdown(content []byte) (string, error) {
	var buf bytes.Buffer
	if err := h.parser.Convert(content, &buf); err != nil {
		return "", fmt.Errorf("convert markdown: %w", err)
	}
	return buf.String(), nil
}
