package offer

import (
	"bytes"
	"encoding/json"
	"strings"
)

// Kind is the outcome of classifying a raw booking result.
type Kind int

const (
	// KindUnstructured is free text, possibly holding markdown tables.
	KindUnstructured Kind = iota
	// KindStructured exposes a flight and/or hotel object.
	KindStructured
	// KindMalformed did not decode as JSON. It renders as text.
	KindMalformed
)

func (k Kind) String() string {
	switch k {
	case KindUnstructured:
		return "unstructured"
	case KindStructured:
		return "structured"
	case KindMalformed:
		return "malformed"
	default:
		return "unknown"
	}
}

// Classification is the discriminated result of Classify. Structured is only
// meaningful for KindStructured; Text always holds the payload as text.
type Classification struct {
	Kind       Kind
	Structured Structured
	Text       string
}

// Classify decides whether raw, the "result" member of a booking response, is a
// structured flight/hotel object or text. It never fails: anything that cannot be
// decoded is passed through as text.
func Classify(raw []byte) Classification {
	trimmed := bytes.TrimSpace(raw)
	if len(trimmed) == 0 || bytes.Equal(trimmed, []byte("null")) {
		return Classification{Kind: KindUnstructured}
	}
	if !json.Valid(trimmed) {
		return Classification{Kind: KindMalformed, Text: string(raw)}
	}

	switch trimmed[0] {
	case '"':
		var s string
		if err := json.Unmarshal(trimmed, &s); err != nil {
			return Classification{Kind: KindMalformed, Text: string(raw)}
		}
		return ClassifyText(s)
	case '{':
		if st, ok := decodeStructured(trimmed); ok {
			return Classification{Kind: KindStructured, Structured: st, Text: string(trimmed)}
		}
		return Classification{Kind: KindUnstructured, Text: string(trimmed)}
	default:
		return Classification{Kind: KindUnstructured, Text: string(trimmed)}
	}
}

// ClassifyText classifies a result that arrived as a string. The string may be
// pre-serialized JSON, optionally wrapped in a markdown code fence.
func ClassifyText(text string) Classification {
	candidate := stripCodeFence(strings.TrimSpace(text))
	if candidate == "" {
		return Classification{Kind: KindUnstructured, Text: text}
	}

	switch candidate[0] {
	case '{':
		if !json.Valid([]byte(candidate)) {
			return Classification{Kind: KindMalformed, Text: text}
		}
		if st, ok := decodeStructured([]byte(candidate)); ok {
			return Classification{Kind: KindStructured, Structured: st, Text: text}
		}
	case '[':
		if !json.Valid([]byte(candidate)) {
			return Classification{Kind: KindMalformed, Text: text}
		}
	}
	return Classification{Kind: KindUnstructured, Text: text}
}

// decodeStructured reports whether data is an object exposing flight or hotel
// as objects. Members of any other shape count as absent.
func decodeStructured(data []byte) (Structured, bool) {
	var members map[string]json.RawMessage
	if err := json.Unmarshal(data, &members); err != nil {
		return Structured{}, false
	}

	var st Structured
	if raw, ok := members["flight"]; ok && isObject(raw) {
		var f FlightInfo
		if err := json.Unmarshal(raw, &f); err == nil {
			st.Flight = &f
		}
	}
	if raw, ok := members["hotel"]; ok && isObject(raw) {
		var h HotelInfo
		if err := json.Unmarshal(raw, &h); err == nil {
			st.Hotel = &h
		}
	}
	return st, st.Flight != nil || st.Hotel != nil
}

func isObject(raw json.RawMessage) bool {
	raw = bytes.TrimSpace(raw)
	return len(raw) > 0 && raw[0] == '{'
}

// stripCodeFence removes a surrounding ``` fence (with or without a language tag).
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	nl := strings.Index(s, "\n")
	if nl == -1 {
		return s
	}
	s = s[nl+1:]
	s = strings.TrimSpace(s)
	s = strings.TrimSuffix(s, "```")
	return strings.TrimSpace(s)
}
