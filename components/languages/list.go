package languages

import (
	"bufio"
	"embed"
	"fmt"
	"io"
	"sort"
	"strings"
	"sync"
)

// Language is one catalogue entry: an ISO 639-1 code and its English name.
type Language struct {
	Code string
	Name string
}

//go:embed data/languages.txt
var dataFS embed.FS

const defaultListPath = "data/languages.txt"

var (
	defaultOnce      sync.Once
	defaultLanguages []Language
	defaultErr       error
)

// DefaultLanguages returns the embedded catalogue, sorted by name.
func DefaultLanguages() ([]Language, error) {
	defaultOnce.Do(func() {
		f, err := dataFS.Open(defaultListPath)
		if err != nil {
			defaultErr = err
			return
		}
		defer func() { _ = f.Close() }()

		langs, err := LoadLanguages(f)
		if err != nil {
			defaultErr = err
			return
		}
		defaultLanguages = langs
	})

	if defaultErr != nil {
		return nil, defaultErr
	}
	return append([]Language{}, defaultLanguages...), nil
}

// LoadLanguages parses a tab-separated code/name list, skipping blanks,
// comments and duplicate codes.
func LoadLanguages(r io.Reader) ([]Language, error) {
	if r == nil {
		return nil, fmt.Errorf("languages: missing reader")
	}

	scanner := bufio.NewScanner(r)
	langs := make([]Language, 0, 64)
	seen := map[string]struct{}{}

	for scanner.Scan() {
		line := strings.TrimSpace(scanner.Text())
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}
		code, name, ok := strings.Cut(line, "\t")
		if !ok {
			return nil, fmt.Errorf("languages: malformed line %q", line)
		}
		code = strings.TrimSpace(code)
		name = strings.TrimSpace(name)
		if code == "" || name == "" {
			return nil, fmt.Errorf("languages: malformed line %q", line)
		}
		if _, dup := seen[code]; dup {
			continue
		}
		seen[code] = struct{}{}
		langs = append(langs, Language{Code: code, Name: name})
	}

	if err := scanner.Err(); err != nil {
		return nil, err
	}

	sort.Slice(langs, func(i, j int) bool { return langs[i].Name < langs[j].Name })
	return langs, nil
}
