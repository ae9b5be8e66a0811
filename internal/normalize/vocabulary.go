package normalize

// Role names one of the match lists carried by a match-center payload.
type Role string

const (
	RoleHeadToHead Role = "h2h"
	RoleHomeRecent Role = "homeRecent"
	RoleAwayRecent Role = "awayRecent"
)

// Roles lists every role in rendering order.
var Roles = []Role{RoleHeadToHead, RoleHomeRecent, RoleAwayRecent}

// RoleTerms are the payload keys tried for a role. Keys are matched exactly and
// in order; Hints are case-insensitive fragments used when no key matched.
type RoleTerms struct {
	Keys  []string `yaml:"keys"`
	Hints []string `yaml:"hints"`
}

// Vocabulary maps each role to its lookup terms. It is data, not logic: new
// upstream field names are added here or through the vocabulary file.
type Vocabulary map[Role]RoleTerms

func DefaultVocabulary() Vocabulary {
	return Vocabulary{
		RoleHeadToHead: {
			Keys:  []string{"h2h", "headToHead", "head_to_head", "headtohead", "h2hMatches", "h2h_matches"},
			Hints: []string{"h2h", "headtohead", "head_to_head"},
		},
		RoleHomeRecent: {
			Keys: []string{
				"homeLastMatches", "homeRecent", "home_last_matches", "homeMatches",
				"team1LastMatches", "team1Matches", "homeTeamLastMatches", "homeForm",
			},
			Hints: []string{"home", "team1"},
		},
		RoleAwayRecent: {
			Keys: []string{
				"awayLastMatches", "awayRecent", "away_last_matches", "awayMatches",
				"team2LastMatches", "team2Matches", "awayTeamLastMatches", "awayForm",
			},
			Hints: []string{"away", "team2", "guest", "visitor"},
		},
	}
}

// Terms returns the lookup terms for role, falling back to the defaults.
func (v Vocabulary) Terms(role Role) RoleTerms {
	if terms, ok := v[role]; ok && (len(terms.Keys) > 0 || len(terms.Hints) > 0) {
		return terms
	}
	return DefaultVocabulary()[role]
}

// Merge returns a copy of v with the terms of extra appended after the existing
// ones. Duplicates are dropped.
func (v Vocabulary) Merge(extra Vocabulary) Vocabulary {
	out := make(Vocabulary, len(v)+len(extra))
	for role, terms := range v {
		out[role] = RoleTerms{
			Keys:  appendUnique(nil, terms.Keys...),
			Hints: appendUnique(nil, terms.Hints...),
		}
	}
	for role, terms := range extra {
		current := out[role]
		current.Keys = appendUnique(current.Keys, terms.Keys...)
		current.Hints = appendUnique(current.Hints, terms.Hints...)
		out[role] = current
	}
	return out
}

// Pick locates the match list for role in an unwrapped payload root.
func (v Vocabulary) Pick(root map[string]any, role Role) []map[string]any {
	return PickArray(root, v.Terms(role))
}

func appendUnique(dst []string, values ...string) []string {
	seen := make(map[string]struct{}, len(dst)+len(values))
	for _, item := range dst {
		seen[item] = struct{}{}
	}
	for _, item := range values {
		if item == "" {
			continue
		}
		if _, ok := seen[item]; ok {
			continue
		}
		seen[item] = struct{}{}
		dst = append(dst, item)
	}
	return dst
}
