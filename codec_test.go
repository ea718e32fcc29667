package agl

import (
	"encoding/json"
	"reflect"
	"testing"
)

func TestEventTypeRoundTrip(t *testing.T) {
	events := []EventType{
		EventVictory, EventDefeat, EventKill, EventDeath, EventAchievement,
		EventLevelUp, EventLoot, EventSessionStart, EventSessionEnd,
	}
	for _, e := range events {
		t.Run(e.String(), func(t *testing.T) {
			got, ok := ParseEventType(e.String())
			if !ok || got != e {
				t.Errorf("ParseEventType(%q) = (%v, %v), want (%v, true)", e.String(), got, ok, e)
			}
		})
	}

	t.Run("unknown wire string", func(t *testing.T) {
		if _, ok := ParseEventType("player.dance"); ok {
			t.Error("expected unknown event string to report false")
		}
	})
	t.Run("unmapped value renders unknown", func(t *testing.T) {
		if got := EventType(99).String(); got != "unknown" {
			t.Errorf("EventType(99).String() = %q, want %q", got, "unknown")
		}
	})
}

func TestEmotionTypeRoundTrip(t *testing.T) {
	emotions := []EmotionType{
		EmotionHappy, EmotionExcited, EmotionAmazed, EmotionProud,
		EmotionSatisfied, EmotionCheerful, EmotionGrateful, EmotionSad,
		EmotionDisappointed, EmotionFrustrated, EmotionAngry, EmotionWorried,
		EmotionTired, EmotionNeutral,
	}
	for _, e := range emotions {
		t.Run(e.String(), func(t *testing.T) {
			if got := ParseEmotionType(e.String()); got != e {
				t.Errorf("ParseEmotionType(%q) = %v, want %v", e.String(), got, e)
			}
		})
	}

	t.Run("unknown decodes to neutral", func(t *testing.T) {
		if got := ParseEmotionType("ecstatic"); got != EmotionNeutral {
			t.Errorf("ParseEmotionType(unknown) = %v, want EmotionNeutral", got)
		}
	})
}

func TestPersonaRoundTrip(t *testing.T) {
	for _, p := range []Persona{PersonaCheerful, PersonaCool, PersonaCute} {
		if got := ParsePersona(p.String()); got != p {
			t.Errorf("ParsePersona(%q) = %v, want %v", p.String(), got, p)
		}
	}
	if got := Persona(42).String(); got != "cheerful" {
		t.Errorf("unmapped persona renders %q, want %q", got, "cheerful")
	}
	if got := ParsePersona("grumpy"); got != PersonaCheerful {
		t.Errorf("ParsePersona(unknown) = %v, want PersonaCheerful", got)
	}
}

func TestMemoryTypeRoundTrip(t *testing.T) {
	types := []MemoryType{
		MemoryAchievement, MemoryMilestone, MemoryFirstTime, MemoryDramatic,
		MemoryConversation, MemoryEvent, MemoryObservation,
	}
	for _, m := range types {
		if got := ParseMemoryType(m.String()); got != m {
			t.Errorf("ParseMemoryType(%q) = %v, want %v", m.String(), got, m)
		}
	}
	if got := MemoryFirstTime.String(); got != "first_time" {
		t.Errorf("MemoryFirstTime.String() = %q, want %q", got, "first_time")
	}
	if got := MemoryType(42).String(); got != "event" {
		t.Errorf("unmapped memory type renders %q, want %q", got, "event")
	}
	if got := ParseMemoryType("dream"); got != MemoryEvent {
		t.Errorf("ParseMemoryType(unknown) = %v, want MemoryEvent", got)
	}
}

// decodePayload unmarshals an encoded request for field inspection.
func decodePayload(t *testing.T, b []byte) map[string]any {
	t.Helper()
	var obj map[string]any
	if err := json.Unmarshal(b, &obj); err != nil {
		t.Fatalf("payload is not valid JSON: %v\n%s", err, b)
	}
	return obj
}

func TestEncodeEmotionRequest(t *testing.T) {
	t.Run("event under type key and data always present", func(t *testing.T) {
		obj := decodePayload(t, EncodeEmotionRequest(EmotionRequest{EventType: EventDeath}))
		if obj["type"] != "player.death" {
			t.Errorf("type = %v, want player.death", obj["type"])
		}
		if obj["force_ml"] != false {
			t.Errorf("force_ml = %v, want false (booleans are always emitted)", obj["force_ml"])
		}
		data, ok := obj["data"].(map[string]any)
		if !ok {
			t.Fatalf("data missing or not an object: %v", obj["data"])
		}
		if len(data) != 0 {
			t.Errorf("empty data should render as {}, got %v", data)
		}
		if _, present := obj["context"]; present {
			t.Error("empty context must be omitted")
		}
	})

	t.Run("context emitted when non-empty", func(t *testing.T) {
		req := EmotionRequest{
			EventType: EventVictory,
			Context:   map[string]string{"map": "summoners_rift"},
			ForceML:   true,
		}
		obj := decodePayload(t, EncodeEmotionRequest(req))
		ctx, ok := obj["context"].(map[string]any)
		if !ok || ctx["map"] != "summoners_rift" {
			t.Errorf("context = %v, want map with summoners_rift", obj["context"])
		}
		if obj["force_ml"] != true {
			t.Errorf("force_ml = %v, want true", obj["force_ml"])
		}
	})
}

func TestEncodeDialogueRequest(t *testing.T) {
	t.Run("all fields", func(t *testing.T) {
		req := DialogueRequest{
			EventType: EventVictory,
			Emotion:   EmotionHappy,
			Persona:   PersonaCheerful,
			Language:  "en",
		}
		obj := decodePayload(t, EncodeDialogueRequest(req))
		want := map[string]any{
			"event_type": "player.victory",
			"emotion":    "happy",
			"persona":    "cheerful",
			"language":   "en",
			"force_llm":  false,
		}
		for k, v := range want {
			if obj[k] != v {
				t.Errorf("%s = %v, want %v", k, obj[k], v)
			}
		}
	})

	t.Run("empty player_id omitted", func(t *testing.T) {
		req := NewDialogueRequest(EventKill, EmotionExcited, PersonaCool)
		obj := decodePayload(t, EncodeDialogueRequest(req))
		if _, present := obj["player_id"]; present {
			t.Error("empty player_id must not appear on the wire")
		}
		if obj["language"] != "zh" {
			t.Errorf("language = %v, want default zh", obj["language"])
		}
	})

	t.Run("player_id present when set", func(t *testing.T) {
		req := NewDialogueRequest(EventKill, EmotionExcited, PersonaCool)
		req.PlayerID = "player-42"
		obj := decodePayload(t, EncodeDialogueRequest(req))
		if obj["player_id"] != "player-42" {
			t.Errorf("player_id = %v, want player-42", obj["player_id"])
		}
	})
}

func TestEncodeCreateMemoryRequest(t *testing.T) {
	t.Run("optional emotion omitted when empty", func(t *testing.T) {
		req := NewCreateMemoryRequest(MemoryFirstTime, "First dragon kill")
		obj := decodePayload(t, EncodeCreateMemoryRequest(req))
		if obj["type"] != "first_time" {
			t.Errorf("type = %v, want first_time", obj["type"])
		}
		if obj["content"] != "First dragon kill" {
			t.Errorf("content = %v", obj["content"])
		}
		if obj["importance"] != float64(5) {
			t.Errorf("importance = %v, want 5", obj["importance"])
		}
		if _, present := obj["emotion"]; present {
			t.Error("empty emotion must be omitted")
		}
	})

	t.Run("out-of-range importance sent as given", func(t *testing.T) {
		req := CreateMemoryRequest{Type: MemoryEvent, Content: "x", Importance: 15}
		obj := decodePayload(t, EncodeCreateMemoryRequest(req))
		if obj["importance"] != float64(15) {
			t.Errorf("importance = %v, want 15 (no client-side validation)", obj["importance"])
		}
	})

	t.Run("zero importance still emitted", func(t *testing.T) {
		req := CreateMemoryRequest{Type: MemoryEvent, Content: "x"}
		obj := decodePayload(t, EncodeCreateMemoryRequest(req))
		if obj["importance"] != float64(0) {
			t.Errorf("importance = %v, want 0 (numbers are always emitted)", obj["importance"])
		}
	})
}

func TestEncodeSearchAndContextRequests(t *testing.T) {
	obj := decodePayload(t, EncodeSearchMemoriesRequest(SearchMemoriesRequest{Query: "dragon", Limit: 3}))
	if obj["query"] != "dragon" || obj["limit"] != float64(3) {
		t.Errorf("search payload = %v", obj)
	}

	obj = decodePayload(t, EncodeGetContextRequest(GetContextRequest{CurrentEvent: "boss fight", Limit: 5}))
	if obj["currentEvent"] != "boss fight" || obj["limit"] != float64(5) {
		t.Errorf("context payload = %v", obj)
	}
}

func TestDecodeEmotionResponse(t *testing.T) {
	t.Run("full body", func(t *testing.T) {
		body := `{"emotion":"excited","intensity":0.9,"action":"cheer","confidence":0.85,
			"reasoning":"big win","method":"rule","cost":0.001,"cache_hit":true,"latency_ms":12}`
		resp, ok := DecodeEmotionResponse([]byte(body))
		if !ok {
			t.Fatal("decode reported failure for valid body")
		}
		if resp.Emotion != EmotionExcited || resp.Intensity != 0.9 || resp.Action != "cheer" ||
			resp.Confidence != 0.85 || resp.Reasoning != "big win" || resp.Method != "rule" ||
			resp.Cost != 0.001 || !resp.CacheHit || resp.LatencyMs != 12 {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("missing fields default", func(t *testing.T) {
		resp, ok := DecodeEmotionResponse([]byte(`{"intensity":0.5}`))
		if !ok {
			t.Fatal("decode reported failure")
		}
		if resp.Emotion != EmotionHappy { // zero value
			t.Errorf("missing emotion should stay zero-valued, got %v", resp.Emotion)
		}
		if resp.Intensity != 0.5 || resp.Method != "" || resp.LatencyMs != 0 {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("wrong-typed field defaults silently", func(t *testing.T) {
		resp, ok := DecodeEmotionResponse([]byte(`{"intensity":"high","method":"ml"}`))
		if !ok {
			t.Fatal("decode must not abort on a single mistyped field")
		}
		if resp.Intensity != 0 || resp.Method != "ml" {
			t.Errorf("unexpected response: %+v", resp)
		}
	})

	t.Run("malformed body", func(t *testing.T) {
		for _, body := range []string{"not json", `["array"]`, `42`, ``} {
			resp, ok := DecodeEmotionResponse([]byte(body))
			if ok {
				t.Errorf("decode(%q) reported ok", body)
			}
			if resp != (EmotionResponse{}) {
				t.Errorf("decode(%q) returned non-zero response: %+v", body, resp)
			}
		}
	})
}

func TestDecodeDialogueResponse(t *testing.T) {
	t.Run("spec example", func(t *testing.T) {
		body := `{"dialogue":"Great job!","method":"template","cost":0.0,"latency_ms":15,
			"used_special_case":false,"cache_hit":false,"memory_count":0,"special_case_reasons":[]}`
		resp, ok := DecodeDialogueResponse([]byte(body))
		if !ok {
			t.Fatal("decode reported failure")
		}
		if resp.Dialogue != "Great job!" || resp.Method != "template" || resp.LatencyMs != 15 ||
			resp.UsedSpecialCase || resp.MemoryCount != 0 {
			t.Errorf("unexpected response: %+v", resp)
		}
		if len(resp.SpecialCaseReasons) != 0 {
			t.Errorf("reasons = %v, want empty", resp.SpecialCaseReasons)
		}
	})

	t.Run("reason order preserved", func(t *testing.T) {
		body := `{"dialogue":"!","special_case_reasons":["win_streak","first_mvp"]}`
		resp, _ := DecodeDialogueResponse([]byte(body))
		want := []string{"win_streak", "first_mvp"}
		if !reflect.DeepEqual(resp.SpecialCaseReasons, want) {
			t.Errorf("reasons = %v, want %v", resp.SpecialCaseReasons, want)
		}
	})

	t.Run("non-string reasons skipped", func(t *testing.T) {
		body := `{"special_case_reasons":["a",7,"b"]}`
		resp, _ := DecodeDialogueResponse([]byte(body))
		want := []string{"a", "b"}
		if !reflect.DeepEqual(resp.SpecialCaseReasons, want) {
			t.Errorf("reasons = %v, want %v", resp.SpecialCaseReasons, want)
		}
	})

	t.Run("reasons default to empty slice", func(t *testing.T) {
		resp, _ := DecodeDialogueResponse([]byte(`{}`))
		if resp.SpecialCaseReasons == nil || len(resp.SpecialCaseReasons) != 0 {
			t.Errorf("reasons = %v, want empty non-nil slice", resp.SpecialCaseReasons)
		}
	})
}

func TestDecodeMemory(t *testing.T) {
	body := `{"id":"mem-1","playerId":"alice","type":"achievement","content":"Beat the boss",
		"emotion":"proud","importance":8,"context":{"zone":"north"},"createdAt":"2025-01-02T03:04:05Z"}`
	m, ok := DecodeMemory([]byte(body))
	if !ok {
		t.Fatal("decode reported failure")
	}
	if m.ID != "mem-1" || m.PlayerID != "alice" || m.Type != MemoryAchievement ||
		m.Content != "Beat the boss" || m.Emotion != "proud" || m.Importance != 8 ||
		m.CreatedAt != "2025-01-02T03:04:05Z" {
		t.Errorf("unexpected memory: %+v", m)
	}
	if m.Context["zone"] != "north" {
		t.Errorf("context = %v", m.Context)
	}

	t.Run("malformed", func(t *testing.T) {
		if _, ok := DecodeMemory([]byte("oops")); ok {
			t.Error("decode of garbage reported ok")
		}
	})

	t.Run("non-string context values skipped", func(t *testing.T) {
		m, _ := DecodeMemory([]byte(`{"id":"x","context":{"a":"1","b":2}}`))
		if _, present := m.Context["b"]; present {
			t.Error("non-string context value should be skipped")
		}
		if m.Context["a"] != "1" {
			t.Errorf("context = %v", m.Context)
		}
	})
}

func TestDecodeSearchResults(t *testing.T) {
	t.Run("ordered results", func(t *testing.T) {
		body := `{"results":[
			{"similarityScore":0.91,"memory":{"id":"m1","content":"first"}},
			{"similarityScore":0.42,"memory":{"id":"m2","content":"second"}}]}`
		results, ok := DecodeSearchResults([]byte(body))
		if !ok || len(results) != 2 {
			t.Fatalf("decode = (%d results, %v)", len(results), ok)
		}
		if results[0].Memory.ID != "m1" || results[0].SimilarityScore != 0.91 {
			t.Errorf("first result: %+v", results[0])
		}
		if results[1].Memory.ID != "m2" || results[1].SimilarityScore != 0.42 {
			t.Errorf("second result: %+v", results[1])
		}
	})

	t.Run("bad elements skipped", func(t *testing.T) {
		body := `{"results":[{"similarityScore":0.5,"memory":{"id":"keep"}},"junk",17]}`
		results, ok := DecodeSearchResults([]byte(body))
		if !ok || len(results) != 1 || results[0].Memory.ID != "keep" {
			t.Errorf("results = %+v, ok = %v", results, ok)
		}
	})

	t.Run("missing key yields empty slice", func(t *testing.T) {
		results, ok := DecodeSearchResults([]byte(`{}`))
		if !ok || results == nil || len(results) != 0 {
			t.Errorf("results = %v, ok = %v", results, ok)
		}
	})

	t.Run("malformed body yields empty slice and false", func(t *testing.T) {
		results, ok := DecodeSearchResults([]byte(`nope`))
		if ok || results == nil || len(results) != 0 {
			t.Errorf("results = %v, ok = %v", results, ok)
		}
	})
}

func TestDecodeMemories(t *testing.T) {
	body := `{"memories":[{"id":"a","type":"milestone"},{"id":"b","type":"dramatic"}]}`
	memories, ok := DecodeMemories([]byte(body))
	if !ok || len(memories) != 2 {
		t.Fatalf("decode = (%d memories, %v)", len(memories), ok)
	}
	if memories[0].ID != "a" || memories[0].Type != MemoryMilestone {
		t.Errorf("first: %+v", memories[0])
	}
	if memories[1].ID != "b" || memories[1].Type != MemoryDramatic {
		t.Errorf("second: %+v", memories[1])
	}
}

func TestUnicodeRoundTrip(t *testing.T) {
	content := "击败了暗影领主 🐉 — 「传奇时刻」"
	req := NewCreateMemoryRequest(MemoryDramatic, content)
	obj := decodePayload(t, EncodeCreateMemoryRequest(req))
	if obj["content"] != content {
		t.Errorf("content = %v, want %q", obj["content"], content)
	}

	encoded, _ := json.Marshal(map[string]any{"id": "m1", "content": content})
	m, ok := DecodeMemory(encoded)
	if !ok || m.Content != content {
		t.Errorf("decoded content = %q, want %q", m.Content, content)
	}
}

func TestEmotionHelperConstructors(t *testing.T) {
	t.Run("victory", func(t *testing.T) {
		req := VictoryRequest(true, 3)
		if req.EventType != EventVictory {
			t.Errorf("event = %v, want EventVictory", req.EventType)
		}
		want := map[string]string{"mvp": "true", "winStreak": "3"}
		if !reflect.DeepEqual(req.Data, want) {
			t.Errorf("data = %v, want %v", req.Data, want)
		}
	})

	t.Run("defeat", func(t *testing.T) {
		req := DefeatRequest(2)
		if req.EventType != EventDefeat || req.Data["lossStreak"] != "2" {
			t.Errorf("unexpected request: %+v", req)
		}
	})

	t.Run("achievement", func(t *testing.T) {
		req := AchievementRequest("legendary")
		if req.EventType != EventAchievement || req.Data["rarity"] != "legendary" {
			t.Errorf("unexpected request: %+v", req)
		}
	})

	t.Run("kill", func(t *testing.T) {
		req := KillRequest(5, false)
		if req.EventType != EventKill || req.Data["killCount"] != "5" || req.Data["isLegendary"] != "false" {
			t.Errorf("unexpected request: %+v", req)
		}
	})
}
