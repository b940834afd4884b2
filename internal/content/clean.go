package content

import (
	"strings"

	"github.com/alkime/teeshot/pkg/collections"
)

// Clean strips generator residue that must never reach a segment: fenced
// JSON blocks, leading format labels and bare request objects.
func Clean(raw string) string {
	s := patterns.fencedJSON.ReplaceAllString(raw, "")
	s = patterns.formatLabel.ReplaceAllString(s, "")
	s = patterns.requestObject.ReplaceAllString(s, "")

	return strings.TrimSpace(strings.ReplaceAll(s, "\r\n", "\n"))
}

// Lines splits cleaned content into raw lines.
func Lines(cleaned string) []string {
	if cleaned == "" {
		return nil
	}

	return strings.Split(cleaned, "\n")
}

// ImagePrompts returns every distinct image prompt in first-seen order.
func ImagePrompts(raw string) []string {
	var prompts []string
	for _, line := range Lines(Clean(raw)) {
		if prompt, ok := PromptFromLine(line); ok {
			prompts = append(prompts, prompt)
		}
	}

	return collections.Unique(prompts)
}

// SplitSuggestions removes the trailing suggestions line from generated text
// and returns its comma separated entries.
func SplitSuggestions(raw string) (string, []string) {
	lines := strings.Split(raw, "\n")
	kept := make([]string, 0, len(lines))
	var suggestions []string
	found := false
	for _, line := range lines {
		trimmed := strings.TrimSpace(line)
		if !found && patterns.suggestions.MatchString(trimmed) {
			found = true
			for _, s := range strings.Split(after(patterns.suggestions, trimmed), ",") {
				if s = strings.TrimSpace(s); s != "" {
					suggestions = append(suggestions, s)
				}
			}

			continue
		}
		kept = append(kept, line)
	}

	if !found {
		return raw, nil
	}

	return strings.TrimSpace(strings.Join(kept, "\n")), suggestions
}

// CoreKeywords returns the comma separated core keywords line, if any.
func CoreKeywords(raw string) []string {
	for _, line := range Lines(Clean(raw)) {
		line = strings.TrimSpace(line)
		if !patterns.keywords.MatchString(line) {
			continue
		}
		var out []string
		for _, k := range strings.FieldsFunc(after(patterns.keywords, line), func(r rune) bool {
			return r == ',' || r == '#'
		}) {
			if k = strings.TrimSpace(k); k != "" {
				out = append(out, k)
			}
		}

		return out
	}

	return nil
}

// SuggestionsOrKeywords falls back to core keywords when the generator gave
// no follow-up suggestions.
func SuggestionsOrKeywords(raw string, suggestions []string) []string {
	if len(suggestions) > 0 {
		return suggestions
	}

	return CoreKeywords(raw)
}
