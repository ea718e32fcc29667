package agl

import (
	"log/slog"
	"net/http"

	"github.com/agl-team/agl-go/internal/metrics"
)

// DialogueHandler is the completion continuation for dialogue generation.
// Same contract as EmotionHandler: fired exactly once, ok=false only for
// transport failures and non-200 statuses.
type DialogueHandler func(ok bool, resp DialogueResponse)

// DialogueService is the typed client for the dialogue generation service.
type DialogueService struct {
	serviceURL string
	transport  transport
}

// NewDialogueService creates a dialogue service client. A nil logger falls
// back to slog.Default().
func NewDialogueService(serviceURL, apiKey string, timeoutSeconds float64, logger *slog.Logger) *DialogueService {
	if logger == nil {
		logger = slog.Default()
	}
	return &DialogueService{
		serviceURL: serviceURL,
		transport: transport{
			doer:   newHTTPClient(timeoutSeconds),
			apiKey: apiKey,
			logger: logger,
		},
	}
}

// GenerateDialogue requests an NPC line for the event and returns immediately.
func (s *DialogueService) GenerateDialogue(req DialogueRequest, onComplete DialogueHandler) {
	payload := EncodeDialogueRequest(req)
	s.transport.dispatch(metrics.OpGenerateDialogue, http.MethodPost, s.serviceURL+"/generate", payload,
		[]int{http.StatusOK},
		func(ok bool, body []byte) {
			if !ok {
				onComplete(false, DialogueResponse{})
				return
			}
			resp, _ := DecodeDialogueResponse(body)
			onComplete(true, resp)
		})
}
