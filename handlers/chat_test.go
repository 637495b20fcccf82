package handlers

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"testing"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiwiki/aiwiki/internal/artifacts"
)

func postAsk(r *gin.Engine, payload string) *httptest.ResponseRecorder {
	w := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/ask", bytes.NewBufferString(payload))
	req.Header.Set("Content-Type", "application/json")
	r.ServeHTTP(w, req)
	return w
}

func TestAskForwardsToChatService(t *testing.T) {
	var received map[string]string
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		require.NoError(t, json.NewDecoder(r.Body).Decode(&received))
		assert.Equal(t, "secret", r.Header.Get("x-api-key"))
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"answer":"The User model has two fields."}`))
	}))
	defer backend.Close()

	gin.SetMode(gin.TestMode)
	store := artifacts.NewStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, store.Write(testArtifacts()))
	cfg := testConfig(backend.URL)
	cfg.Chat.APIKey = "secret"
	r := NewRouter(cfg, store)

	w := postAsk(r, `{"question":"What models exist?"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.JSONEq(t, `{"answer":"The User model has two fields."}`, w.Body.String())
	assert.Equal(t, "What models exist?", received["question"])
	assert.Contains(t, received["docs"], "User")
}

func TestAskFallsBackWhenServiceUnreachable(t *testing.T) {
	// a closed server guarantees a connection error
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {}))
	backend.Close()

	r, _ := testRouterWithBackend(t, backend.URL)
	w := postAsk(r, `{"question":"hello"}`)

	require.Equal(t, http.StatusOK, w.Code)
	var resp map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Contains(t, resp["answer"], "Assistant unavailable")
}

func TestAskFallsBackOnRemoteError(t *testing.T) {
	backend := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer backend.Close()

	r, _ := testRouterWithBackend(t, backend.URL)
	w := postAsk(r, `{"question":"hello"}`)

	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Assistant unavailable")
}

func TestAskRejectsEmptyQuestion(t *testing.T) {
	r, _ := testRouter(t, "http://unused")

	w := postAsk(r, `{"question":"   "}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "Question is required")

	w = postAsk(r, `not json`)
	require.Equal(t, http.StatusBadRequest, w.Code)
}

func TestAskRejectedWithoutDocs(t *testing.T) {
	gin.SetMode(gin.TestMode)
	store := artifacts.NewStore(filepath.Join(t.TempDir(), "docs"))
	r := NewRouter(testConfig("http://unused"), store)

	w := postAsk(r, `{"question":"anything"}`)
	require.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "No documentation available")
}

func testRouterWithBackend(t *testing.T, chatURL string) (*gin.Engine, *artifacts.Store) {
	t.Helper()
	gin.SetMode(gin.TestMode)
	store := artifacts.NewStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, store.Write(testArtifacts()))
	return NewRouter(testConfig(chatURL), store), store
}
