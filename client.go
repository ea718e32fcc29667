package agl

import (
	"log/slog"

	"github.com/agl-team/agl-go/internal/metrics"
)

// Client aggregates the three service clients behind one configuration.
// A Client built without an API key stays un-initialized and its service
// accessors return nil; callers are expected to check IsInitialized.
type Client struct {
	cfg    Config
	logger *slog.Logger

	emotion  *EmotionService
	dialogue *DialogueService
	memory   *MemoryService

	collector *metrics.Collector

	playerID string
	gameID   string

	initialized bool
}

// New constructs the client facade from cfg. A missing API key logs an error
// and returns an un-initialized client rather than failing hard, matching
// the SDK's no-error-across-the-boundary contract. A nil logger falls back
// to slog.Default().
func New(cfg Config, logger *slog.Logger) *Client {
	if logger == nil {
		logger = slog.Default()
	}

	c := &Client{cfg: cfg, logger: logger}

	if cfg.APIKey == "" {
		logger.Error("agl: API key is required")
		return c
	}

	cfg = cfg.withDefaults()
	c.cfg = cfg
	c.collector = metrics.NewCollector()

	c.emotion = NewEmotionService(cfg.EmotionServiceURL, cfg.APIKey, cfg.TimeoutSeconds, logger)
	c.dialogue = NewDialogueService(cfg.DialogueServiceURL, cfg.APIKey, cfg.TimeoutSeconds, logger)
	c.memory = NewMemoryService(cfg.MemoryServiceURL, cfg.APIKey, cfg.TimeoutSeconds, logger)

	for _, t := range []*transport{&c.emotion.transport, &c.dialogue.transport, &c.memory.transport} {
		t.collector = c.collector
		if cfg.HTTPClient != nil {
			t.doer = cfg.HTTPClient
		}
	}

	c.initialized = true
	logger.Info("agl client initialized",
		"emotion_url", cfg.EmotionServiceURL,
		"dialogue_url", cfg.DialogueServiceURL,
		"memory_url", cfg.MemoryServiceURL,
		"timeout_s", cfg.TimeoutSeconds,
	)
	return c
}

// IsInitialized reports whether New accepted the configuration.
func (c *Client) IsInitialized() bool {
	return c.initialized
}

// Emotion returns the emotion service client, nil when un-initialized.
func (c *Client) Emotion() *EmotionService {
	return c.emotion
}

// Dialogue returns the dialogue service client, nil when un-initialized.
func (c *Client) Dialogue() *DialogueService {
	return c.dialogue
}

// Memory returns the memory service client, nil when un-initialized.
func (c *Client) Memory() *MemoryService {
	return c.memory
}

// SetPlayerID stores the active player ID. Plain storage, no side effects.
func (c *Client) SetPlayerID(playerID string) {
	c.playerID = playerID
	c.logger.Debug("agl: player id set", "player_id", playerID)
}

// SetGameID stores the active game ID.
func (c *Client) SetGameID(gameID string) {
	c.gameID = gameID
	c.logger.Debug("agl: game id set", "game_id", gameID)
}

// PlayerID returns the stored player ID.
func (c *Client) PlayerID() string {
	return c.playerID
}

// GameID returns the stored game ID.
func (c *Client) GameID() string {
	return c.gameID
}

// Stats returns a snapshot of per-operation latency and outcome counts.
// Zero-valued when the client is un-initialized.
func (c *Client) Stats() metrics.Snapshot {
	if c.collector == nil {
		return metrics.Snapshot{Operations: map[string]metrics.OperationSnapshot{}}
	}
	return c.collector.Snapshot()
}
