package handlers

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/cdp-assist/support-engine/internal/cache"
	"github.com/cdp-assist/support-engine/internal/knowledge"
	"github.com/cdp-assist/support-engine/internal/observability"
	"github.com/cdp-assist/support-engine/internal/resolver"
)

func newTestChatHandler() (*ChatHandler, *resolver.ResponseCache) {
	logger := observability.NewLogger(observability.LogConfig{
		Level:       "error",
		Format:      "json",
		Output:      io.Discard,
		ServiceName: "test",
	})
	res := resolver.NewResolver(knowledge.NewBase(), logger)
	respCache := resolver.NewResponseCache(cache.NewMemoryClient(100), logger, resolver.DefaultResponseCacheConfig())
	return NewChatHandler(logger, res, respCache), respCache
}

func postChat(t *testing.T, h *ChatHandler, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, "/api/chat", strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	h.Chat(rec, req)
	return rec
}

func TestChatHandler_Match(t *testing.T) {
	h, _ := newTestChatHandler()

	rec := postChat(t, h, `{"message": "how do I add a new source", "platform": "segment"}`)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	var resp ChatResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "To set up a new source in Segment")
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "Segment Documentation", resp.Sources[0].Title)
	assert.Equal(t, "https://segment.com/docs/connections/sources/", resp.Sources[0].URL)
}

func TestChatHandler_NoMatch(t *testing.T) {
	h, _ := newTestChatHandler()

	rec := postChat(t, h, `{"message": "xyzzy plugh", "platform": "segment"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "I don't have specific information about segment for that query.")
	assert.Contains(t, resp.Response, "1. Ask about setting up or configuring sources")
	assert.Nil(t, resp.Sources)

	// Sources must be an explicit null on the wire, not an empty array
	assert.Contains(t, rec.Body.String(), `"sources":null`)
}

func TestChatHandler_NoMatchWithoutPlatform(t *testing.T) {
	h, _ := newTestChatHandler()

	rec := postChat(t, h, `{"message": "xyzzy plugh"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Contains(t, resp.Response, "I don't have specific information  for that query.")
}

func TestChatHandler_MalformedBody(t *testing.T) {
	h, _ := newTestChatHandler()

	rec := postChat(t, h, `{"message": `)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "invalid request body")
}

func TestChatHandler_MissingMessage(t *testing.T) {
	h, _ := newTestChatHandler()

	rec := postChat(t, h, `{"platform": "segment"}`)

	require.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Contains(t, rec.Body.String(), "message is required")
}

func TestChatHandler_ServesCachedAnswer(t *testing.T) {
	h, respCache := newTestChatHandler()

	err := respCache.Set(context.Background(), "segment", "how do I add a new source", &resolver.CachedAnswer{
		Answer:  "cached answer",
		Source:  "Cached Source",
		URL:     "https://example.com/",
		Matched: true,
	})
	require.NoError(t, err)

	rec := postChat(t, h, `{"message": "how do I add a new source", "platform": "segment"}`)

	require.Equal(t, http.StatusOK, rec.Code)

	var resp ChatResponseDTO
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &resp))
	assert.Equal(t, "cached answer", resp.Response)
	require.Len(t, resp.Sources, 1)
	assert.Equal(t, "Cached Source", resp.Sources[0].Title)
}

func TestChatHandler_CachesResolution(t *testing.T) {
	h, respCache := newTestChatHandler()

	rec := postChat(t, h, `{"message": "how do I add a new source", "platform": "segment"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	cached, ok := respCache.Get(context.Background(), "segment", "how do I add a new source")
	require.True(t, ok)
	assert.True(t, cached.Matched)
	assert.Equal(t, "Segment Documentation", cached.Source)
}
