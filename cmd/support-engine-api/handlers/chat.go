// Package handlers provides HTTP handlers for the CDP Support Bot API.
package handlers

import (
	"encoding/json"
	"net/http"

	"github.com/cdp-assist/support-engine/internal/observability"
	"github.com/cdp-assist/support-engine/internal/resolver"
)

// ChatHandler handles support chat requests.
type ChatHandler struct {
	logger   *observability.Logger
	resolver *resolver.Resolver
	cache    *resolver.ResponseCache
}

// NewChatHandler creates a new chat handler.
func NewChatHandler(logger *observability.Logger, res *resolver.Resolver, cache *resolver.ResponseCache) *ChatHandler {
	return &ChatHandler{
		logger:   logger,
		resolver: res,
		cache:    cache,
	}
}

// ChatRequestDTO represents the API request for a chat query.
type ChatRequestDTO struct {
	Message  string `json:"message"`
	Platform string `json:"platform"`
}

// SourceDTO represents a cited documentation source.
type SourceDTO struct {
	Title string `json:"title"`
	URL   string `json:"url"`
}

// ChatResponseDTO represents the API response. Sources is null when no
// knowledge entry matched.
type ChatResponseDTO struct {
	Response string      `json:"response"`
	Sources  []SourceDTO `json:"sources"`
}

// Chat handles POST /api/chat.
func (h *ChatHandler) Chat(w http.ResponseWriter, r *http.Request) {
	ctx := r.Context()

	// Parse request body
	var reqDTO ChatRequestDTO
	if err := json.NewDecoder(r.Body).Decode(&reqDTO); err != nil {
		h.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	// Validate required fields
	if reqDTO.Message == "" {
		h.writeError(w, http.StatusBadRequest, "message is required")
		return
	}

	// Serve from cache when a previous resolution is still fresh
	if cached, ok := h.cache.Get(ctx, reqDTO.Platform, reqDTO.Message); ok {
		h.writeAnswer(w, reqDTO.Platform, cached)
		return
	}

	entry := h.resolver.Resolve(reqDTO.Message, reqDTO.Platform)

	ans := &resolver.CachedAnswer{}
	if entry != nil {
		ans.Answer = entry.Answer
		ans.Source = entry.Source
		ans.URL = entry.URL
		ans.Matched = true
	}

	// Set logs its own warning on failure
	_ = h.cache.Set(ctx, reqDTO.Platform, reqDTO.Message, ans)

	h.writeAnswer(w, reqDTO.Platform, ans)
}

func (h *ChatHandler) writeAnswer(w http.ResponseWriter, platformID string, ans *resolver.CachedAnswer) {
	resp := ChatResponseDTO{}
	if ans.Matched {
		resp.Response = ans.Answer
		resp.Sources = []SourceDTO{{Title: ans.Source, URL: ans.URL}}
	} else {
		resp.Response = resolver.HelpText(platformID)
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		h.logger.Error().Err(err).Msg("Failed to encode response")
	}
}

func (h *ChatHandler) writeError(w http.ResponseWriter, status int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(map[string]string{"error": message})
}
