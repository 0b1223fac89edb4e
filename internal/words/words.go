// internal/words/words.go
//
// Word-list provider for the game engine.
//
// Responsibilities:
//   - Resolve a candidate word pool per language code for the match
//     start path.
//   - Load lists from environment-provided files or fall back to the
//     embedded defaults.
//   - Cache loaded lists for the process lifetime.
//
// Initialization behavior (WordsFor):
//   1. If WORDS_DIR is set, load <WORDS_DIR>/<language>.txt.
//   2. Otherwise use the embedded default list for that language.
//   3. An unknown or empty language yields ErrLanguageNotFound.
//
// Constraints:
//   - Lines are trimmed and lowercased; blanks and '#' comments skipped.
//   - A loaded list must be non-empty to count as found.

package words

import (
	"bufio"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"sync"

	"github.com/psousa50/codenames50-sub000/assets"
)

// ErrLanguageNotFound is the not-found tag for the word-list boundary.
var ErrLanguageNotFound = errors.New("languageNotFound")

var (
	mu    sync.Mutex
	cache = map[string][]string{}
)

// WordsFor returns the candidate pool for a language code ("en", "pt",
// or anything a WORDS_DIR file provides).
func WordsFor(language string) ([]string, error) {
	lang := strings.ToLower(strings.TrimSpace(language))
	if lang == "" {
		return nil, ErrLanguageNotFound
	}

	mu.Lock()
	defer mu.Unlock()
	if list, ok := cache[lang]; ok {
		return list, nil
	}

	list, err := load(lang)
	if err != nil {
		return nil, err
	}
	cache[lang] = list
	return list, nil
}

// Languages reports every language code currently resolvable, for the
// setup UI. WORDS_DIR files take precedence over embedded defaults.
func Languages() []string {
	seen := map[string]bool{}
	var out []string
	if dir := os.Getenv("WORDS_DIR"); dir != "" {
		if entries, err := os.ReadDir(dir); err == nil {
			for _, e := range entries {
				name := e.Name()
				if !e.IsDir() && strings.HasSuffix(name, ".txt") {
					lang := strings.TrimSuffix(name, ".txt")
					if !seen[lang] {
						seen[lang] = true
						out = append(out, lang)
					}
				}
			}
		}
	}
	for _, lang := range assets.Languages() {
		if !seen[lang] {
			seen[lang] = true
			out = append(out, lang)
		}
	}
	return out
}

func load(lang string) ([]string, error) {
	if dir := os.Getenv("WORDS_DIR"); dir != "" {
		list, err := readWordFile(filepath.Join(dir, lang+".txt"))
		if err == nil && len(list) > 0 {
			return list, nil
		}
		// fall through to embedded defaults on a missing file
	}
	list, err := assets.WordList(lang)
	if err != nil || len(list) == 0 {
		return nil, ErrLanguageNotFound
	}
	return list, nil
}

// readWordFile loads one word per line, trimmed and lowercased.
func readWordFile(path string) ([]string, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		w := strings.TrimSpace(strings.ToLower(sc.Text()))
		if w == "" || strings.HasPrefix(w, "#") {
			continue
		}
		out = append(out, w)
	}
	return out, sc.Err()
}
