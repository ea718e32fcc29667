// Package agl is the Go client SDK for the AGL game companion services:
// emotion analysis, dialogue generation, and player memory storage.
//
// All service operations are asynchronous: they dispatch an HTTP request and
// return immediately, invoking a caller-supplied completion handler exactly
// once when the round trip finishes.
package agl

// EventType identifies a game event reported for emotion analysis or
// dialogue generation.
type EventType int

const (
	EventVictory EventType = iota
	EventDefeat
	EventKill
	EventDeath
	EventAchievement
	EventLevelUp
	EventLoot
	EventSessionStart
	EventSessionEnd
)

var eventTypeWire = map[EventType]string{
	EventVictory:      "player.victory",
	EventDefeat:       "player.defeat",
	EventKill:         "player.kill",
	EventDeath:        "player.death",
	EventAchievement:  "player.achievement",
	EventLevelUp:      "player.levelup",
	EventLoot:         "player.loot",
	EventSessionStart: "player.sessionstart",
	EventSessionEnd:   "player.sessionend",
}

// String returns the wire representation of the event type.
// Unmapped values render as "unknown".
func (e EventType) String() string {
	if s, ok := eventTypeWire[e]; ok {
		return s
	}
	return "unknown"
}

// ParseEventType maps a wire string back to an EventType.
// Unrecognized strings return (0, false).
func ParseEventType(s string) (EventType, bool) {
	for k, v := range eventTypeWire {
		if v == s {
			return k, true
		}
	}
	return EventVictory, false
}

// EmotionType is an emotion detected by the emotion service or fed into
// dialogue generation.
type EmotionType int

const (
	EmotionHappy EmotionType = iota
	EmotionExcited
	EmotionAmazed
	EmotionProud
	EmotionSatisfied
	EmotionCheerful
	EmotionGrateful
	EmotionSad
	EmotionDisappointed
	EmotionFrustrated
	EmotionAngry
	EmotionWorried
	EmotionTired
	EmotionNeutral
)

var emotionTypeWire = map[EmotionType]string{
	EmotionHappy:        "happy",
	EmotionExcited:      "excited",
	EmotionAmazed:       "amazed",
	EmotionProud:        "proud",
	EmotionSatisfied:    "satisfied",
	EmotionCheerful:     "cheerful",
	EmotionGrateful:     "grateful",
	EmotionSad:          "sad",
	EmotionDisappointed: "disappointed",
	EmotionFrustrated:   "frustrated",
	EmotionAngry:        "angry",
	EmotionWorried:      "worried",
	EmotionTired:        "tired",
	EmotionNeutral:      "neutral",
}

// String returns the wire representation of the emotion.
func (e EmotionType) String() string {
	if s, ok := emotionTypeWire[e]; ok {
		return s
	}
	return "neutral"
}

// ParseEmotionType maps a wire string to an EmotionType.
// Unrecognized strings decode to EmotionNeutral, never an error.
func ParseEmotionType(s string) EmotionType {
	for k, v := range emotionTypeWire {
		if v == s {
			return k
		}
	}
	return EmotionNeutral
}

// Persona selects the NPC personality used for dialogue generation.
type Persona int

const (
	PersonaCheerful Persona = iota
	PersonaCool
	PersonaCute
)

var personaWire = map[Persona]string{
	PersonaCheerful: "cheerful",
	PersonaCool:     "cool",
	PersonaCute:     "cute",
}

// String returns the wire representation of the persona.
// Unmapped values render as "cheerful".
func (p Persona) String() string {
	if s, ok := personaWire[p]; ok {
		return s
	}
	return "cheerful"
}

// ParsePersona maps a wire string to a Persona, defaulting to PersonaCheerful.
func ParsePersona(s string) Persona {
	for k, v := range personaWire {
		if v == s {
			return k
		}
	}
	return PersonaCheerful
}

// MemoryType classifies a stored player memory.
type MemoryType int

const (
	MemoryAchievement MemoryType = iota
	MemoryMilestone
	MemoryFirstTime
	MemoryDramatic
	MemoryConversation
	MemoryEvent
	MemoryObservation
)

var memoryTypeWire = map[MemoryType]string{
	MemoryAchievement:  "achievement",
	MemoryMilestone:    "milestone",
	MemoryFirstTime:    "first_time",
	MemoryDramatic:     "dramatic",
	MemoryConversation: "conversation",
	MemoryEvent:        "event",
	MemoryObservation:  "observation",
}

// String returns the wire representation of the memory type.
// Unmapped values render as "event".
func (m MemoryType) String() string {
	if s, ok := memoryTypeWire[m]; ok {
		return s
	}
	return "event"
}

// ParseMemoryType maps a wire string to a MemoryType, defaulting to MemoryEvent.
func ParseMemoryType(s string) MemoryType {
	for k, v := range memoryTypeWire {
		if v == s {
			return k
		}
	}
	return MemoryEvent
}

// EmotionRequest asks the emotion service to analyze a game event.
type EmotionRequest struct {
	EventType EventType
	// Data carries event payload fields, pre-stringified by the caller
	// (e.g. "true", "5").
	Data    map[string]string
	Context map[string]string
	ForceML bool
}

// EmotionResponse is the emotion service's analysis result.
type EmotionResponse struct {
	Emotion    EmotionType
	Intensity  float64
	Action     string
	Confidence float64
	Reasoning  string
	Method     string
	Cost       float64
	CacheHit   bool
	LatencyMs  int
}

// DialogueRequest asks the dialogue service to generate an NPC line.
type DialogueRequest struct {
	EventType EventType
	Emotion   EmotionType
	Persona   Persona
	// PlayerID is optional; when set the service pulls memory context.
	PlayerID string
	Language string
	Context  map[string]string
	ForceLLM bool
}

// NewDialogueRequest returns a DialogueRequest with the default language "zh".
func NewDialogueRequest(event EventType, emotion EmotionType, persona Persona) DialogueRequest {
	return DialogueRequest{
		EventType: event,
		Emotion:   emotion,
		Persona:   persona,
		Language:  "zh",
	}
}

// DialogueResponse is the dialogue service's generation result.
type DialogueResponse struct {
	Dialogue           string
	Method             string
	Cost               float64
	UsedSpecialCase    bool
	SpecialCaseReasons []string
	MemoryCount        int
	CacheHit           bool
	LatencyMs          int
}

// CreateMemoryRequest stores a new memory for a player.
type CreateMemoryRequest struct {
	Type    MemoryType
	Content string
	// Emotion is optional and omitted from the payload when empty.
	Emotion string
	Context map[string]string
	// Importance is an integer in [0,10]; out-of-range values are sent as given.
	Importance int
}

// NewCreateMemoryRequest returns a CreateMemoryRequest with importance 5.
func NewCreateMemoryRequest(typ MemoryType, content string) CreateMemoryRequest {
	return CreateMemoryRequest{
		Type:       typ,
		Content:    content,
		Importance: 5,
	}
}

// Memory is a stored player memory as returned by the memory service.
type Memory struct {
	ID         string
	PlayerID   string
	Type       MemoryType
	Content    string
	Emotion    string
	Importance int
	Context    map[string]string
	CreatedAt  string
}

// MemorySearchResult pairs a memory with its similarity score for a query.
type MemorySearchResult struct {
	Memory          Memory
	SimilarityScore float64
}

// SearchMemoriesRequest searches a player's memories semantically.
type SearchMemoriesRequest struct {
	Query string
	Limit int
}

// NewSearchMemoriesRequest returns a SearchMemoriesRequest with limit 10.
func NewSearchMemoriesRequest(query string) SearchMemoriesRequest {
	return SearchMemoriesRequest{Query: query, Limit: 10}
}

// GetContextRequest retrieves memories relevant to the current event.
type GetContextRequest struct {
	CurrentEvent string
	Limit        int
}

// NewGetContextRequest returns a GetContextRequest with limit 5.
func NewGetContextRequest(currentEvent string) GetContextRequest {
	return GetContextRequest{CurrentEvent: currentEvent, Limit: 5}
}
