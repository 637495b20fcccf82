package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiwiki/aiwiki/internal/artifacts"
	"github.com/aiwiki/aiwiki/internal/config"
	"github.com/aiwiki/aiwiki/internal/generator"
)

func testConfig(chatURL string) *config.Config {
	return &config.Config{
		Server: config.ServerConfig{Host: "127.0.0.1", Port: "8000"},
		Chat:   config.ChatConfig{URL: chatURL, Timeout: time.Second},
	}
}

func testArtifacts() generator.Artifacts {
	return generator.Artifacts{
		Markdown: "# Docs\n\n## Models\n\n### models Models\n\n#### User\n\n**Fields:**\n\n| Field | Column | Type | Null | Unique | Description |\n|---|---|---|---|---|---|\n| ID | `id` | `uint` | no | no |  |\n\n**Relationships:**\n\n- `Team` ForeignKey → `Team`\n\n---\n\n",
		Diagram:  "# Entity Relationship Diagram\n\n```mermaid\nerDiagram\n```\n",
		HTML:     "<html><body>visual docs</body></html>",
	}
}

func testRouter(t *testing.T, chatURL string) (*gin.Engine, *artifacts.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := artifacts.NewStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, store.Write(testArtifacts()))
	return NewRouter(testConfig(chatURL), store), store
}

func get(r *gin.Engine, path string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	r.ServeHTTP(w, req)
	return w
}

func TestDashboardIndex(t *testing.T) {
	r, _ := testRouter(t, "http://unused")
	w := get(r, "/")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "AI Wiki")
	assert.Contains(t, w.Body.String(), "Download Markdown Docs")
}

func TestDashboardIndexWithoutDocs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := artifacts.NewStore(filepath.Join(t.TempDir(), "docs"))
	r := NewRouter(testConfig("http://unused"), store)

	w := get(r, "/")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "No documentation found!")
}

func TestViewDocsReflectsDiskEdits(t *testing.T) {
	r, store := testRouter(t, "http://unused")

	w := get(r, "/view/docs")
	require.Equal(t, http.StatusOK, w.Code)

	// edit the artifact after startup; the next request must see it
	require.NoError(t, os.WriteFile(filepath.Join(store.Dir, artifacts.MarkdownFile),
		[]byte("# Regenerated Content\n"), 0o644))

	w = get(r, "/view/docs")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Regenerated Content")
}

func TestViewHTML(t *testing.T) {
	r, _ := testRouter(t, "http://unused")
	w := get(r, "/view/html")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "visual docs")
}

func TestViewDiagramParsesModels(t *testing.T) {
	r, _ := testRouter(t, "http://unused")
	w := get(r, "/view/diagram")

	require.Equal(t, http.StatusOK, w.Code)
	body := w.Body.String()
	assert.Contains(t, body, "Models Overview")
	assert.Contains(t, body, `data-name="User"`)
	assert.Contains(t, body, "ForeignKey")
}

func TestDownloadKnownAndUnknown(t *testing.T) {
	r, _ := testRouter(t, "http://unused")

	w := get(r, "/download/project.md")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "project.md")

	w = get(r, "/download/secrets.txt")
	require.Equal(t, http.StatusNotFound, w.Code)
}

func TestDebugStats(t *testing.T) {
	r, _ := testRouter(t, "http://unused")
	w := get(r, "/debug")

	require.Equal(t, http.StatusOK, w.Code)
	var stats map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &stats))
	assert.Equal(t, true, stats["docs_available"])
	assert.Equal(t, true, stats["html_available"])
	assert.NotZero(t, stats["docs_content_length"])
}

func TestHealth(t *testing.T) {
	r, _ := testRouter(t, "http://unused")
	w := get(r, "/health")

	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "healthy", w.Body.String())
}

func TestParseModelTables(t *testing.T) {
	md := "## Models\n\n#### User\n\n| Field | Column | Type | Null | Unique | Description |\n|---|---|---|---|---|---|\n| ID | `id` | `uint` | no | no |  |\n| Name | `name` | `string` | no | yes |  |\n\n- `Team` ForeignKey → `Team`\n\n## Serializers\n\n#### Ignored\n"
	models := parseModelTables(md)

	require.Len(t, models, 1)
	assert.Equal(t, "User", models[0].Name)
	require.Len(t, models[0].Fields, 2)
	assert.Equal(t, "uint", models[0].Fields[0].Type)
	require.Len(t, models[0].Relations, 1)
	assert.Contains(t, models[0].Relations[0], "ForeignKey")
}
