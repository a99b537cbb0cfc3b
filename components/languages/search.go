package languages

import (
	"sort"
	"strings"
)

// Search filters the catalogue by query. Matches on name or code, with
// name-prefix matches ranked first, then alphabetical.
func Search(langs []Language, query string, limit int, opts Options) []Language {
	limit = clampLimit(limit, opts)
	if limit == 0 {
		return nil
	}

	query = strings.TrimSpace(query)
	if query == "" {
		if opts.EmptySearchMode == EmptySearchTop {
			if len(langs) <= limit {
				return append([]Language{}, langs...)
			}
			return append([]Language{}, langs[:limit]...)
		}
		return nil
	}

	q := strings.ToLower(query)
	matches := make([]matchedLanguage, 0, 16)
	for _, lang := range langs {
		lowerName := strings.ToLower(lang.Name)
		lowerCode := strings.ToLower(lang.Code)
		if !strings.Contains(lowerName, q) && !strings.Contains(lowerCode, q) {
			continue
		}
		matches = append(matches, matchedLanguage{
			lang:     lang,
			isPrefix: strings.HasPrefix(lowerName, q) || lowerCode == q,
		})
	}

	sort.SliceStable(matches, func(i, j int) bool {
		if matches[i].isPrefix != matches[j].isPrefix {
			return matches[i].isPrefix
		}
		return matches[i].lang.Name < matches[j].lang.Name
	})

	if len(matches) > limit {
		matches = matches[:limit]
	}

	out := make([]Language, 0, len(matches))
	for _, match := range matches {
		out = append(out, match.lang)
	}
	return out
}

// SearchOptions runs Search and shapes the result as form options: the code
// is the value, the name the label.
func SearchOptions(langs []Language, query string, limit int, opts Options) []Option {
	results := Search(langs, query, limit, opts)
	if len(results) == 0 {
		return nil
	}

	out := make([]Option, 0, len(results))
	for _, lang := range results {
		out = append(out, Option{Value: lang.Code, Label: lang.Name})
	}
	return out
}

type matchedLanguage struct {
	lang     Language
	isPrefix bool
}
