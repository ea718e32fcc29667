package agl

import "encoding/json"

// Wire codec: pure encode/decode between domain values and the JSON payloads
// the AGL services speak. Encoders never perform I/O; decoders never abort on
// individual field misses — a missing or mistyped field simply keeps the
// response field at its zero value.

// EncodeEmotionRequest serializes an emotion analysis request.
// The event is sent under the "type" key and the "data" object is always
// present, even when empty; "context" is omitted when empty.
func EncodeEmotionRequest(req EmotionRequest) []byte {
	payload := map[string]any{
		"type":     req.EventType.String(),
		"force_ml": req.ForceML,
		"data":     stringMap(req.Data),
	}
	if len(req.Context) > 0 {
		payload["context"] = stringMap(req.Context)
	}
	b, _ := json.Marshal(payload)
	return b
}

// EncodeDialogueRequest serializes a dialogue generation request.
// Optional strings (player_id, language) are omitted when empty rather than
// sent as "".
func EncodeDialogueRequest(req DialogueRequest) []byte {
	payload := map[string]any{
		"event_type": req.EventType.String(),
		"emotion":    req.Emotion.String(),
		"persona":    req.Persona.String(),
		"force_llm":  req.ForceLLM,
	}
	if req.PlayerID != "" {
		payload["player_id"] = req.PlayerID
	}
	if req.Language != "" {
		payload["language"] = req.Language
	}
	if len(req.Context) > 0 {
		payload["context"] = stringMap(req.Context)
	}
	b, _ := json.Marshal(payload)
	return b
}

// EncodeCreateMemoryRequest serializes a memory creation request.
func EncodeCreateMemoryRequest(req CreateMemoryRequest) []byte {
	payload := map[string]any{
		"type":       req.Type.String(),
		"content":    req.Content,
		"importance": req.Importance,
	}
	if req.Emotion != "" {
		payload["emotion"] = req.Emotion
	}
	if len(req.Context) > 0 {
		payload["context"] = stringMap(req.Context)
	}
	b, _ := json.Marshal(payload)
	return b
}

// EncodeSearchMemoriesRequest serializes a memory search request.
func EncodeSearchMemoriesRequest(req SearchMemoriesRequest) []byte {
	b, _ := json.Marshal(map[string]any{
		"query": req.Query,
		"limit": req.Limit,
	})
	return b
}

// EncodeGetContextRequest serializes a context retrieval request.
func EncodeGetContextRequest(req GetContextRequest) []byte {
	b, _ := json.Marshal(map[string]any{
		"currentEvent": req.CurrentEvent,
		"limit":        req.Limit,
	})
	return b
}

// DecodeEmotionResponse parses an emotion service response body.
// A malformed top-level body returns a zero response and ok=false; individual
// field misses are defaulted silently.
func DecodeEmotionResponse(body []byte) (EmotionResponse, bool) {
	var resp EmotionResponse
	obj, ok := parseObject(body)
	if !ok {
		return resp, false
	}
	if s, ok := getString(obj, "emotion"); ok {
		resp.Emotion = ParseEmotionType(s)
	}
	resp.Intensity, _ = getFloat(obj, "intensity")
	resp.Confidence, _ = getFloat(obj, "confidence")
	resp.Cost, _ = getFloat(obj, "cost")
	resp.LatencyMs, _ = getInt(obj, "latency_ms")
	resp.Action, _ = getString(obj, "action")
	resp.Reasoning, _ = getString(obj, "reasoning")
	resp.Method, _ = getString(obj, "method")
	resp.CacheHit, _ = getBool(obj, "cache_hit")
	return resp, true
}

// DecodeDialogueResponse parses a dialogue service response body.
func DecodeDialogueResponse(body []byte) (DialogueResponse, bool) {
	resp := DialogueResponse{SpecialCaseReasons: []string{}}
	obj, ok := parseObject(body)
	if !ok {
		return resp, false
	}
	resp.Dialogue, _ = getString(obj, "dialogue")
	resp.Method, _ = getString(obj, "method")
	resp.Cost, _ = getFloat(obj, "cost")
	resp.LatencyMs, _ = getInt(obj, "latency_ms")
	resp.UsedSpecialCase, _ = getBool(obj, "used_special_case")
	resp.CacheHit, _ = getBool(obj, "cache_hit")
	resp.MemoryCount, _ = getInt(obj, "memory_count")
	if arr, ok := obj["special_case_reasons"].([]any); ok {
		for _, v := range arr {
			if s, ok := v.(string); ok {
				resp.SpecialCaseReasons = append(resp.SpecialCaseReasons, s)
			}
		}
	}
	return resp, true
}

// DecodeMemory parses a single memory object body, as returned by memory
// creation.
func DecodeMemory(body []byte) (Memory, bool) {
	obj, ok := parseObject(body)
	if !ok {
		return Memory{}, false
	}
	return memoryFromObject(obj), true
}

// DecodeSearchResults parses a memory search response body. Elements that are
// not objects are skipped; ordering of valid elements is preserved.
func DecodeSearchResults(body []byte) ([]MemorySearchResult, bool) {
	results := []MemorySearchResult{}
	obj, ok := parseObject(body)
	if !ok {
		return results, false
	}
	arr, ok := obj["results"].([]any)
	if !ok {
		return results, true
	}
	for _, v := range arr {
		elem, ok := v.(map[string]any)
		if !ok {
			continue
		}
		var r MemorySearchResult
		r.SimilarityScore, _ = getFloat(elem, "similarityScore")
		if mem, ok := elem["memory"].(map[string]any); ok {
			r.Memory = memoryFromObject(mem)
		}
		results = append(results, r)
	}
	return results, true
}

// DecodeMemories parses a memory listing response body ("memories" array).
func DecodeMemories(body []byte) ([]Memory, bool) {
	memories := []Memory{}
	obj, ok := parseObject(body)
	if !ok {
		return memories, false
	}
	arr, ok := obj["memories"].([]any)
	if !ok {
		return memories, true
	}
	for _, v := range arr {
		elem, ok := v.(map[string]any)
		if !ok {
			continue
		}
		memories = append(memories, memoryFromObject(elem))
	}
	return memories, true
}

func memoryFromObject(obj map[string]any) Memory {
	var m Memory
	m.ID, _ = getString(obj, "id")
	m.PlayerID, _ = getString(obj, "playerId")
	m.Content, _ = getString(obj, "content")
	m.Emotion, _ = getString(obj, "emotion")
	m.CreatedAt, _ = getString(obj, "createdAt")
	m.Importance, _ = getInt(obj, "importance")
	if s, ok := getString(obj, "type"); ok {
		m.Type = ParseMemoryType(s)
	}
	if ctx, ok := obj["context"].(map[string]any); ok {
		m.Context = make(map[string]string, len(ctx))
		for k, v := range ctx {
			if s, ok := v.(string); ok {
				m.Context[k] = s
			}
		}
	}
	return m
}

// parseObject unmarshals a body into a JSON object. Non-object top levels
// (arrays, scalars, garbage) report false.
func parseObject(body []byte) (map[string]any, bool) {
	var obj map[string]any
	if err := json.Unmarshal(body, &obj); err != nil || obj == nil {
		return nil, false
	}
	return obj, true
}

func getString(obj map[string]any, key string) (string, bool) {
	s, ok := obj[key].(string)
	return s, ok
}

func getFloat(obj map[string]any, key string) (float64, bool) {
	f, ok := obj[key].(float64)
	return f, ok
}

func getInt(obj map[string]any, key string) (int, bool) {
	f, ok := obj[key].(float64)
	if !ok {
		return 0, false
	}
	return int(f), true
}

func getBool(obj map[string]any, key string) (bool, bool) {
	b, ok := obj[key].(bool)
	return b, ok
}

// stringMap substitutes an empty map for nil so the payload renders the
// field as {} rather than null.
func stringMap(m map[string]string) map[string]string {
	if m == nil {
		return map[string]string{}
	}
	return m
}
