package normalize

import (
	"encoding/json"
	"math"
	"sort"
	"strconv"
	"strings"
)

// maxDepth bounds every recursive descent into untrusted payloads.
const maxDepth = 6

func asMap(value any) (map[string]any, bool) {
	obj, ok := value.(map[string]any)
	return obj, ok
}

func asSlice(value any) ([]any, bool) {
	items, ok := value.([]any)
	return items, ok
}

// asNumber accepts the numeric shapes a JSON decoder may produce plus numeric
// strings. NaN and infinities are rejected.
func asNumber(value any) (float64, bool) {
	var out float64
	switch typed := value.(type) {
	case float64:
		out = typed
	case float32:
		out = float64(typed)
	case int:
		out = float64(typed)
	case int32:
		out = float64(typed)
	case int64:
		out = float64(typed)
	case uint64:
		out = float64(typed)
	case json.Number:
		parsed, err := typed.Float64()
		if err != nil {
			return 0, false
		}
		out = parsed
	case string:
		parsed, err := strconv.ParseFloat(strings.TrimSpace(typed), 64)
		if err != nil {
			return 0, false
		}
		out = parsed
	default:
		return 0, false
	}
	if math.IsNaN(out) || math.IsInf(out, 0) {
		return 0, false
	}
	return out, true
}

func getString(src map[string]any, key string) string {
	if src == nil {
		return ""
	}
	value, ok := src[key].(string)
	if !ok {
		return ""
	}
	return strings.TrimSpace(value)
}

func firstString(src map[string]any, keys ...string) string {
	for _, key := range keys {
		if v := getString(src, key); v != "" {
			return v
		}
	}
	return ""
}

func firstNonEmpty(values ...string) string {
	for _, item := range values {
		if v := strings.TrimSpace(item); v != "" {
			return v
		}
	}
	return ""
}

// idString renders an identifier so that 1, 1.0 and "1" compare equal.
func idString(value any) string {
	switch typed := value.(type) {
	case nil:
		return ""
	case string:
		return strings.TrimSpace(typed)
	case int:
		return strconv.Itoa(typed)
	case int64:
		return strconv.FormatInt(typed, 10)
	case bool:
		return ""
	}
	if f, ok := asNumber(value); ok {
		return strconv.FormatFloat(f, 'f', -1, 64)
	}
	return ""
}

// nestedName reads {"name": ...} objects and plain strings alike.
func nestedName(value any) string {
	switch typed := value.(type) {
	case string:
		return strings.TrimSpace(typed)
	case map[string]any:
		return firstString(typed, "name", "title")
	default:
		return ""
	}
}

func sortedKeys(src map[string]any) []string {
	keys := make([]string, 0, len(src))
	for key := range src {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	return keys
}

func objectElements(items []any) []map[string]any {
	out := make([]map[string]any, 0, len(items))
	for _, item := range items {
		if obj, ok := asMap(item); ok {
			out = append(out, obj)
		}
	}
	return out
}

// roundInt gives nil when the rounded value does not fit an int.
func roundInt(v float64) *int {
	r := math.Round(v)
	if math.IsNaN(r) || r < math.MinInt || r >= -math.MinInt {
		return nil
	}
	n := int(r)
	return &n
}
