package agl

import (
	"fmt"
	"log/slog"
	"net/http"
	"net/url"

	"github.com/agl-team/agl-go/internal/metrics"
)

// MemoryHandler is the completion continuation for memory creation.
// Unlike the emotion and dialogue paths, an unparseable 2xx body reports
// ok=false here: a created memory without its server-assigned ID is useless.
type MemoryHandler func(ok bool, memory Memory)

// SearchHandler is the completion continuation for memory search.
// The result slice is never nil; on failure it is empty.
type SearchHandler func(ok bool, results []MemorySearchResult)

// MemoriesHandler is the completion continuation for memory listing and
// context retrieval. The slice is never nil.
type MemoriesHandler func(ok bool, memories []Memory)

// MemoryService is the typed client for the player memory service.
type MemoryService struct {
	serviceURL string
	transport  transport
}

// NewMemoryService creates a memory service client. A nil logger falls back
// to slog.Default().
func NewMemoryService(serviceURL, apiKey string, timeoutSeconds float64, logger *slog.Logger) *MemoryService {
	if logger == nil {
		logger = slog.Default()
	}
	return &MemoryService{
		serviceURL: serviceURL,
		transport: transport{
			doer:   newHTTPClient(timeoutSeconds),
			apiKey: apiKey,
			logger: logger,
		},
	}
}

// CreateMemory stores a memory for the player. The service may answer 200 or
// 201 on success.
func (s *MemoryService) CreateMemory(playerID string, req CreateMemoryRequest, onComplete MemoryHandler) {
	payload := EncodeCreateMemoryRequest(req)
	target := fmt.Sprintf("%s/players/%s/memories", s.serviceURL, url.PathEscape(playerID))
	s.transport.dispatch(metrics.OpCreateMemory, http.MethodPost, target, payload,
		[]int{http.StatusOK, http.StatusCreated},
		func(ok bool, body []byte) {
			if !ok {
				onComplete(false, Memory{})
				return
			}
			memory, decoded := DecodeMemory(body)
			if !decoded {
				onComplete(false, Memory{})
				return
			}
			onComplete(true, memory)
		})
}

// SearchMemories runs a semantic search over the player's memories.
func (s *MemoryService) SearchMemories(playerID string, req SearchMemoriesRequest, onComplete SearchHandler) {
	payload := EncodeSearchMemoriesRequest(req)
	target := fmt.Sprintf("%s/players/%s/memories/search", s.serviceURL, url.PathEscape(playerID))
	s.transport.dispatch(metrics.OpSearchMemories, http.MethodPost, target, payload,
		[]int{http.StatusOK},
		func(ok bool, body []byte) {
			if !ok {
				onComplete(false, []MemorySearchResult{})
				return
			}
			results, _ := DecodeSearchResults(body)
			onComplete(true, results)
		})
}

// GetContext retrieves the memories most relevant to the current event.
func (s *MemoryService) GetContext(playerID string, req GetContextRequest, onComplete MemoriesHandler) {
	payload := EncodeGetContextRequest(req)
	target := fmt.Sprintf("%s/players/%s/memories/context", s.serviceURL, url.PathEscape(playerID))
	s.transport.dispatch(metrics.OpGetContext, http.MethodPost, target, payload,
		[]int{http.StatusOK},
		func(ok bool, body []byte) {
			if !ok {
				onComplete(false, []Memory{})
				return
			}
			memories, _ := DecodeMemories(body)
			onComplete(true, memories)
		})
}

// GetMemories lists the player's memories with limit/offset paging.
func (s *MemoryService) GetMemories(playerID string, limit, offset int, onComplete MemoriesHandler) {
	target := fmt.Sprintf("%s/players/%s/memories?limit=%d&offset=%d",
		s.serviceURL, url.PathEscape(playerID), limit, offset)
	s.transport.dispatch(metrics.OpGetMemories, http.MethodGet, target, nil,
		[]int{http.StatusOK},
		func(ok bool, body []byte) {
			if !ok {
				onComplete(false, []Memory{})
				return
			}
			memories, _ := DecodeMemories(body)
			onComplete(true, memories)
		})
}
