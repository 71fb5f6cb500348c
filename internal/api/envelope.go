package api

import (
	"bytes"
	"encoding/json"
	"fmt"
)

// The remote API wraps list responses inconsistently: some resources return a
// bare array, others {"<key>": [...]} with a per-resource key. Record ids
// arrive as "_id" with an occasional "id". Everything downstream of this file
// sees one shape: a slice of records with an "id" field.

// DecodeList normalizes a list response body into records, preserving order.
func DecodeList[T any](raw []byte, envelopeKey string) ([]T, error) {
	items, err := rawItems(raw, envelopeKey)
	if err != nil {
		return nil, &Error{Kind: KindServerError, Message: err.Error()}
	}
	out := make([]T, 0, len(items))
	for _, item := range items {
		var rec T
		if err := json.Unmarshal(normalizeRecord(item), &rec); err != nil {
			return nil, &Error{Kind: KindServerError, Message: fmt.Sprintf("malformed record: %v", err)}
		}
		out = append(out, rec)
	}
	return out, nil
}

func rawItems(raw []byte, envelopeKey string) ([]json.RawMessage, error) {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return nil, nil
	}

	if trimmed[0] == '[' {
		var items []json.RawMessage
		if err := json.Unmarshal(trimmed, &items); err != nil {
			return nil, fmt.Errorf("malformed list: %w", err)
		}
		return items, nil
	}

	var envelope map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &envelope); err != nil {
		return nil, fmt.Errorf("malformed envelope: %w", err)
	}
	wrapped, ok := envelope[envelopeKey]
	if !ok {
		// Tolerate an envelope holding exactly one array under a different key.
		var sole json.RawMessage
		count := 0
		for _, v := range envelope {
			if t := bytes.TrimSpace(v); len(t) > 0 && t[0] == '[' {
				sole = v
				count++
			}
		}
		if count != 1 {
			return nil, fmt.Errorf("envelope missing %q", envelopeKey)
		}
		wrapped = sole
	}
	if t := bytes.TrimSpace(wrapped); len(t) == 0 || bytes.Equal(t, []byte("null")) {
		return nil, nil
	}
	var items []json.RawMessage
	if err := json.Unmarshal(wrapped, &items); err != nil {
		return nil, fmt.Errorf("malformed list under %q: %w", envelopeKey, err)
	}
	return items, nil
}

// normalizeRecord rewrites "_id" to "id" so record types carry one id field.
// Non-object payloads pass through untouched.
func normalizeRecord(raw []byte) []byte {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || trimmed[0] != '{' {
		return raw
	}
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(trimmed, &obj); err != nil {
		return raw
	}
	mongoID, hasMongo := obj["_id"]
	if !hasMongo {
		return raw
	}
	if _, hasPlain := obj["id"]; !hasPlain {
		obj["id"] = mongoID
	}
	delete(obj, "_id")
	rewritten, err := json.Marshal(obj)
	if err != nil {
		return raw
	}
	return rewritten
}
