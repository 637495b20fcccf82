package handlers

import (
	"bytes"
	"fmt"
	"html"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/yuin/goldmark"

	"github.com/aiwiki/aiwiki/pkg/metrics"
)

// Index renders the main dashboard page.
func (h *Dashboard) Index(c *gin.Context) {
	content := h.store.Load()
	if content.Available() {
		metrics.ArtifactReads.WithLabelValues("true").Inc()
	} else {
		metrics.ArtifactReads.WithLabelValues("false").Inc()
	}
	c.HTML(http.StatusOK, "dashboard", gin.H{
		"DocsAvailable": content.Available(),
		"HTMLAvailable": content.HTMLAvailable(),
	})
}

// ViewDocs renders the markdown artifact as HTML in its own tab.
func (h *Dashboard) ViewDocs(c *gin.Context) {
	content := h.store.Load()
	if !content.Available() {
		c.String(http.StatusNotFound, "No documentation available")
		return
	}
	var body bytes.Buffer
	if err := goldmark.Convert([]byte(content.Markdown), &body); err != nil {
		// fall back to the raw text when conversion fails
		body.Reset()
		body.WriteString("<pre>" + html.EscapeString(content.Markdown) + "</pre>")
	}
	page := fmt.Sprintf(`<!DOCTYPE html>
<html><head><title>Project Documentation</title>
<style>body{font-family:Arial,sans-serif;margin:40px;line-height:1.6;max-width:960px;}
pre{background:#f5f5f5;padding:15px;border-radius:5px;overflow-x:auto;}
table{border-collapse:collapse;}td,th{border:1px solid #ddd;padding:6px 10px;}</style>
</head><body>%s</body></html>`, body.String())
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(page))
}

// ViewHTML serves the styled HTML artifact verbatim.
func (h *Dashboard) ViewHTML(c *gin.Context) {
	content := h.store.Load()
	if !content.Available() || !content.HTMLAvailable() {
		c.String(http.StatusNotFound, "No HTML documentation available")
		return
	}
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(content.HTML))
}

type fieldSummary struct {
	Name string
	Type string
}

type modelSummary struct {
	Name      string
	Fields    []fieldSummary
	Relations []string
}

// parseModelTables extracts the model names, field rows and relationship
// items from the markdown artifact's Models section.
func parseModelTables(markdown string) []modelSummary {
	var models []modelSummary
	inModels := false
	var current *modelSummary

	for _, line := range strings.Split(markdown, "\n") {
		switch {
		case strings.HasPrefix(line, "## "):
			inModels = strings.TrimSpace(line) == "## Models"
			current = nil
		case !inModels:
			continue
		case strings.HasPrefix(line, "#### "):
			models = append(models, modelSummary{Name: strings.TrimSpace(strings.TrimPrefix(line, "#### "))})
			current = &models[len(models)-1]
		case current != nil && strings.HasPrefix(line, "|") && !strings.Contains(line, "---"):
			cells := splitCells(line)
			if len(cells) >= 3 && cells[0] != "Field" {
				current.Fields = append(current.Fields, fieldSummary{
					Name: cells[0],
					Type: strings.Trim(cells[2], "`"),
				})
			}
		case current != nil && strings.HasPrefix(line, "- `") && strings.Contains(line, "→"):
			current.Relations = append(current.Relations, strings.ReplaceAll(strings.TrimPrefix(line, "- "), "`", ""))
		}
	}
	return models
}

func splitCells(line string) []string {
	parts := strings.Split(line, "|")
	var cells []string
	for _, p := range parts {
		if t := strings.TrimSpace(p); t != "" {
			cells = append(cells, t)
		}
	}
	return cells
}

// ViewDiagram renders the models as a searchable overview table, built from
// the current markdown artifact.
func (h *Dashboard) ViewDiagram(c *gin.Context) {
	content := h.store.Load()
	if !content.Available() {
		c.String(http.StatusNotFound, "No documentation available")
		return
	}
	models := parseModelTables(content.Markdown)

	var b strings.Builder
	fmt.Fprintf(&b, `<!DOCTYPE html>
<html><head><title>Models Overview</title>
<style>
body{font-family:Arial,sans-serif;margin:20px;}
.search{margin-bottom:20px;padding:10px;width:300px;font-size:16px;}
.model{margin-bottom:30px;border:1px solid #ddd;border-radius:8px;}
.model-header{background:#f0f8ff;padding:15px;font-weight:bold;font-size:18px;}
.model-content{padding:15px;}
.fields{display:grid;grid-template-columns:1fr 1fr;gap:10px;margin-bottom:15px;}
.field{background:#f9f9f9;padding:8px;border-radius:4px;}
.relationships{background:#fff3cd;padding:10px;border-radius:4px;}
.rel{margin:5px 0;color:#856404;}
</style>
<script>
function searchModels(){
var filter=document.getElementById('search').value.toLowerCase();
var models=document.getElementsByClassName('model');
for(var i=0;i<models.length;i++){
var name=models[i].getAttribute('data-name').toLowerCase();
models[i].style.display=name.includes(filter)?'':'none';
}
}
</script>
</head><body>
<h1>🎨 Models Overview</h1>
<input type="text" id="search" class="search" placeholder="Search models..." onkeyup="searchModels()">
<p><strong>Total Models:</strong> %d</p>
`, len(models))

	for _, m := range models {
		fmt.Fprintf(&b, `<div class="model" data-name="%s"><div class="model-header">%s</div><div class="model-content">`,
			html.EscapeString(m.Name), html.EscapeString(m.Name))
		if len(m.Fields) > 0 {
			b.WriteString(`<div class="fields">`)
			for _, f := range m.Fields {
				fmt.Fprintf(&b, `<div class="field"><strong>%s</strong><br>%s</div>`,
					html.EscapeString(f.Name), html.EscapeString(f.Type))
			}
			b.WriteString("</div>")
		}
		if len(m.Relations) > 0 {
			b.WriteString(`<div class="relationships"><strong>🔗 Relationships:</strong><br>`)
			for _, rel := range m.Relations {
				fmt.Fprintf(&b, `<div class="rel">• %s</div>`, html.EscapeString(rel))
			}
			b.WriteString("</div>")
		}
		b.WriteString("</div></div>")
	}
	b.WriteString("</body></html>")
	c.Data(http.StatusOK, "text/html; charset=utf-8", []byte(b.String()))
}

// Download serves one of the three artifact files as an attachment.
func (h *Dashboard) Download(c *gin.Context) {
	name := c.Param("filename")
	path, ok := h.store.Path(name)
	if !ok {
		c.String(http.StatusNotFound, "File not found")
		return
	}
	c.FileAttachment(path, name)
}

// Debug reports content stats so the dashboard page can decide what to show.
func (h *Dashboard) Debug(c *gin.Context) {
	content := h.store.Load()
	c.JSON(http.StatusOK, gin.H{
		"docs_available":         content.Available(),
		"html_available":         content.HTMLAvailable(),
		"docs_content_length":    len(content.Markdown),
		"diagram_content_length": len(content.Diagram),
		"html_content_length":    len(content.HTML),
		"docs_preview":           preview(content.Markdown),
		"diagram_preview":        preview(content.Diagram),
	})
}

func preview(s string) string {
	if s == "" {
		return "No content"
	}
	if len(s) > 200 {
		return s[:200] + "..."
	}
	return s
}
