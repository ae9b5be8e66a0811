package normalize

import "strings"

var nestedListKeys = []string{"matches", "events", "games", "data", "list", "items", "rows"}

// UnwrapPayload turns any match-center response into a search root. A bare list
// is taken as the head-to-head list.
func UnwrapPayload(payload any) map[string]any {
	switch typed := payload.(type) {
	case []any:
		return map[string]any{string(RoleHeadToHead): typed}
	case map[string]any:
		switch data := typed["data"].(type) {
		case []any:
			return map[string]any{string(RoleHeadToHead): data}
		case map[string]any:
			return data
		}
		if typed == nil {
			return map[string]any{}
		}
		return typed
	default:
		return map[string]any{}
	}
}

// PickArray tries terms.Keys in order, then scans the root keys (sorted) for
// any containing one of terms.Hints. Keys double as hints when none are set.
// A hinted key only counts when it holds a list directly or under one of the
// conventional list keys, so a team object with a roster is not taken for
// matches.
func PickArray(root map[string]any, terms RoleTerms) []map[string]any {
	for _, key := range terms.Keys {
		if found := ExtractArray(root[key]); len(found) > 0 {
			return found
		}
	}

	hints := terms.Hints
	if len(hints) == 0 {
		hints = terms.Keys
	}
	for _, key := range sortedKeys(root) {
		lowered := strings.ToLower(key)
		for _, hint := range hints {
			if hint == "" || !strings.Contains(lowered, strings.ToLower(hint)) {
				continue
			}
			if found := conventionalArray(root[key], 0); len(found) > 0 {
				return found
			}
			break
		}
	}
	return nil
}

// ExtractArray finds the list of objects inside value: value itself when it is
// a list, else one of the conventional list keys, else the first non-empty list
// among its fields.
func ExtractArray(value any) []map[string]any {
	return extractArrayAt(value, 0)
}

func extractArrayAt(value any, depth int) []map[string]any {
	if depth > maxDepth {
		return nil
	}

	switch typed := value.(type) {
	case []any:
		return objectElements(typed)
	case map[string]any:
		for _, key := range nestedListKeys {
			nested, ok := typed[key]
			if !ok || nested == nil {
				continue
			}
			if found := extractArrayAt(nested, depth+1); len(found) > 0 {
				return found
			}
		}
		for _, key := range sortedKeys(typed) {
			list, ok := asSlice(typed[key])
			if !ok {
				continue
			}
			if found := objectElements(list); len(found) > 0 {
				return found
			}
		}
	}
	return nil
}

func conventionalArray(value any, depth int) []map[string]any {
	if depth > maxDepth {
		return nil
	}
	switch typed := value.(type) {
	case []any:
		return objectElements(typed)
	case map[string]any:
		for _, key := range nestedListKeys {
			if found := conventionalArray(typed[key], depth+1); len(found) > 0 {
				return found
			}
		}
	}
	return nil
}

// UnwrapFixtures reads the fixtures endpoint: a bare list, or an object holding
// events or matches, optionally inside a data envelope. Anything else is empty.
func UnwrapFixtures(payload any) []map[string]any {
	return unwrapFixturesAt(payload, 0)
}

func unwrapFixturesAt(payload any, depth int) []map[string]any {
	switch typed := payload.(type) {
	case []any:
		return objectElements(typed)
	case map[string]any:
		for _, key := range []string{"events", "matches"} {
			if list, ok := asSlice(typed[key]); ok {
				return objectElements(list)
			}
		}
		if data, ok := typed["data"]; ok && depth == 0 {
			return unwrapFixturesAt(data, depth+1)
		}
	}
	return []map[string]any{}
}

// CenterPayload holds the raw role lists of a match-center response.
type CenterPayload struct {
	HeadToHead []map[string]any
	HomeRecent []map[string]any
	AwayRecent []map[string]any
}

func UnwrapMatchCenter(payload any, vocab Vocabulary) CenterPayload {
	root := UnwrapPayload(payload)
	return CenterPayload{
		HeadToHead: vocab.Pick(root, RoleHeadToHead),
		HomeRecent: vocab.Pick(root, RoleHomeRecent),
		AwayRecent: vocab.Pick(root, RoleAwayRecent),
	}
}
