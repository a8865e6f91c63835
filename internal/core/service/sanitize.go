package service

import (
	"html"
	"strings"

	"github.com/microcosm-cc/bluemonday"

	"github.com/laughline/booking-api/internal/core/domain"
)

// The HTML tokenizer folds CR and CRLF into LF.
var newlines = strings.NewReplacer("\r\n", "\n", "\r", "\n")

// textSanitizer keeps free text plain. Entities are decoded first so encoded
// markup is judged the same as literal markup; anything the strict policy
// would remove is rejected rather than dropped.
type textSanitizer struct {
	policy *bluemonday.Policy
}

func newTextSanitizer() *textSanitizer {
	return &textSanitizer{policy: bluemonday.StrictPolicy()}
}

// clean returns s decoded and trimmed, or a validation error naming field
// when s carries markup.
func (t *textSanitizer) clean(field, s string) (string, error) {
	plain := strings.TrimSpace(newlines.Replace(html.UnescapeString(s)))
	if plain == "" {
		return "", nil
	}
	// Sanitize escapes &, <, > and quotes in text; decode again to compare.
	if html.UnescapeString(t.policy.Sanitize(plain)) != plain {
		return "", domain.Validation("%s must not contain markup", field)
	}
	return plain, nil
}

// cleanList cleans each entry and drops the ones left empty.
func (t *textSanitizer) cleanList(field string, in []string) ([]string, error) {
	out := make([]string, 0, len(in))
	for _, s := range in {
		c, err := t.clean(field, s)
		if err != nil {
			return nil, err
		}
		if c != "" {
			out = append(out, c)
		}
	}
	return out, nil
}
