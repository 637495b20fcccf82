package handlers

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/aiwiki/aiwiki/internal/config"
	"github.com/aiwiki/aiwiki/pkg/logger"
	"github.com/aiwiki/aiwiki/pkg/metrics"
)

// fallbackAnswer is returned whenever the remote chat service cannot be
// reached. The failure is absorbed here; the browsing page stays responsive.
const fallbackAnswer = "**Assistant unavailable**\n\n" +
	"The remote documentation assistant could not be reached, so this is a canned response. " +
	"Check the AIWIKI_CHAT_URL configuration to enable real answers."

// chatClient issues the single outbound request to the remote chat service.
// One request in, one response out; no retry, no backoff.
type chatClient struct {
	url    string
	apiKey string
	client *http.Client
}

func newChatClient(cfg config.ChatConfig) *chatClient {
	return &chatClient{
		url:    cfg.URL,
		apiKey: cfg.APIKey,
		client: &http.Client{Timeout: cfg.Timeout},
	}
}

// ask forwards the question plus the combined document text and returns the
// remote JSON body verbatim. Any transport failure or non-200 status is an
// error; the caller decides what the user sees.
func (cc *chatClient) ask(question, docs string) ([]byte, error) {
	payload, err := json.Marshal(map[string]string{
		"question": question,
		"docs":     docs,
	})
	if err != nil {
		return nil, err
	}

	req, err := http.NewRequest(http.MethodPost, cc.url, bytes.NewReader(payload))
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	if cc.apiKey != "" {
		req.Header.Set("x-api-key", cc.apiKey)
	}

	resp, err := cc.client.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("chat service returned status %d", resp.StatusCode)
	}
	return io.ReadAll(resp.Body)
}

// Ask handles the chat endpoint: it attaches the full current document text
// to the question and proxies one request to the remote service.
func (h *Dashboard) Ask(c *gin.Context) {
	var req struct {
		Question string `json:"question"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		metrics.ChatRequests.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	question := strings.TrimSpace(req.Question)
	if question == "" {
		metrics.ChatRequests.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "Question is required"})
		return
	}

	content := h.store.Load()
	if !content.Available() {
		metrics.ChatRequests.WithLabelValues("rejected").Inc()
		c.JSON(http.StatusBadRequest, gin.H{"error": "No documentation available. Please generate docs first."})
		return
	}

	body, err := h.chat.ask(question, content.Combined())
	if err != nil {
		logger.Warnf("chat passthrough failed, returning fallback: %v", err)
		metrics.ChatRequests.WithLabelValues("fallback").Inc()
		c.JSON(http.StatusOK, gin.H{"answer": fallbackAnswer})
		return
	}
	metrics.ChatRequests.WithLabelValues("forwarded").Inc()
	c.Data(http.StatusOK, "application/json", body)
}
