package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"

	"github.com/riskibarqy/matchboard/internal/normalize"
)

// LoadVocabulary reads extra match-center role terms from a YAML file:
//
//	h2h:
//	  keys: [rivalry]
//	  hints: [versus]
//	homeRecent:
//	  keys: [localForm]
//
// Unknown roles are rejected so that typos do not pass silently.
func LoadVocabulary(path string) (normalize.Vocabulary, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read vocabulary file: %w", err)
	}

	var vocab normalize.Vocabulary
	if err := yaml.Unmarshal(data, &vocab); err != nil {
		return nil, fmt.Errorf("parse vocabulary file: %w", err)
	}

	known := make(map[normalize.Role]struct{}, len(normalize.Roles))
	for _, role := range normalize.Roles {
		known[role] = struct{}{}
	}
	for role := range vocab {
		if _, ok := known[role]; !ok {
			return nil, fmt.Errorf("vocabulary file: unknown role %q", role)
		}
	}
	return vocab, nil
}
