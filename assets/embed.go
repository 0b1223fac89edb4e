package assets

import (
	"bufio"
	"embed"
	"strings"
)

//go:embed words_en.txt words_pt.txt
var FS embed.FS

func readLines(name string) ([]string, error) {
	f, err := FS.Open(name)
	if err != nil {
		return nil, err
	}
	defer f.Close()

	var out []string
	sc := bufio.NewScanner(f)
	for sc.Scan() {
		s := strings.TrimSpace(sc.Text())
		if s == "" || strings.HasPrefix(s, "#") {
			continue
		}
		out = append(out, strings.ToLower(s))
	}
	return out, sc.Err()
}

// WordList returns the embedded default list for a language code, or an
// error if no list ships for that language.
func WordList(language string) ([]string, error) {
	return readLines("words_" + language + ".txt")
}

// Languages lists the language codes with embedded defaults.
func Languages() []string {
	return []string{"en", "pt"}
}
