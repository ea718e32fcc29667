package agl

import (
	"log/slog"
	"net/http"
	"strconv"

	"github.com/agl-team/agl-go/internal/metrics"
)

// EmotionHandler is the completion continuation for emotion analysis.
// It is invoked exactly once per operation, on the transport goroutine.
// ok is false on transport failure or a non-200 status; the response is then
// zero-valued. A 200 response with an unparseable body still reports ok=true
// with a zero-valued response.
type EmotionHandler func(ok bool, resp EmotionResponse)

// EmotionService is the typed client for the emotion analysis service.
type EmotionService struct {
	serviceURL string
	transport  transport
}

// NewEmotionService creates an emotion service client. A nil logger falls
// back to slog.Default(). The configuration is immutable for the lifetime of
// the client.
func NewEmotionService(serviceURL, apiKey string, timeoutSeconds float64, logger *slog.Logger) *EmotionService {
	if logger == nil {
		logger = slog.Default()
	}
	return &EmotionService{
		serviceURL: serviceURL,
		transport: transport{
			doer:   newHTTPClient(timeoutSeconds),
			apiKey: apiKey,
			logger: logger,
		},
	}
}

// AnalyzeEmotion sends the event for analysis and returns immediately.
func (s *EmotionService) AnalyzeEmotion(req EmotionRequest, onComplete EmotionHandler) {
	payload := EncodeEmotionRequest(req)
	s.transport.dispatch(metrics.OpAnalyzeEmotion, http.MethodPost, s.serviceURL+"/analyze", payload,
		[]int{http.StatusOK},
		func(ok bool, body []byte) {
			if !ok {
				onComplete(false, EmotionResponse{})
				return
			}
			resp, _ := DecodeEmotionResponse(body)
			onComplete(true, resp)
		})
}

// VictoryRequest builds an emotion request for a match victory.
func VictoryRequest(isMVP bool, winStreak int) EmotionRequest {
	return EmotionRequest{
		EventType: EventVictory,
		Data: map[string]string{
			"mvp":       strconv.FormatBool(isMVP),
			"winStreak": strconv.Itoa(winStreak),
		},
	}
}

// DefeatRequest builds an emotion request for a match defeat.
func DefeatRequest(lossStreak int) EmotionRequest {
	return EmotionRequest{
		EventType: EventDefeat,
		Data: map[string]string{
			"lossStreak": strconv.Itoa(lossStreak),
		},
	}
}

// AchievementRequest builds an emotion request for an unlocked achievement.
func AchievementRequest(rarity string) EmotionRequest {
	return EmotionRequest{
		EventType: EventAchievement,
		Data: map[string]string{
			"rarity": rarity,
		},
	}
}

// KillRequest builds an emotion request for a kill event.
func KillRequest(killCount int, isLegendary bool) EmotionRequest {
	return EmotionRequest{
		EventType: EventKill,
		Data: map[string]string{
			"killCount":   strconv.Itoa(killCount),
			"isLegendary": strconv.FormatBool(isLegendary),
		},
	}
}
