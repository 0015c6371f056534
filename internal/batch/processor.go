package batch

import (
	"fmt"
	"os"
	"strings"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

// Entry is one line of a batch file
type Entry struct {
	Line     int // 1-based line number in the file
	Text     string
	Language languages.Language
}

// ReadBatchFile reads phrases from a file, one per line.
// Supports formats:
//   - Text only: "Good morning" (translated into defaultLang)
//   - With language: "Good morning = hindi"
//
// Blank lines and lines starting with '#' are skipped. When the part
// after the last '=' is not a language the whole line is the text.
func ReadBatchFile(filename string, defaultLang languages.Language) ([]Entry, error) {
	content, err := os.ReadFile(filename)
	if err != nil {
		return nil, fmt.Errorf("failed to read batch file: %w", err)
	}
	return Parse(string(content), defaultLang), nil
}

// Parse parses batch file content
func Parse(content string, defaultLang languages.Language) []Entry {
	if defaultLang.IsZero() {
		defaultLang = languages.Default()
	}

	var entries []Entry
	for i, line := range strings.Split(content, "\n") {
		line = strings.TrimSpace(line)
		if line == "" || strings.HasPrefix(line, "#") {
			continue
		}

		entry := Entry{Line: i + 1, Text: line, Language: defaultLang}
		if idx := strings.LastIndex(line, "="); idx >= 0 {
			text := strings.TrimSpace(line[:idx])
			if lang, err := languages.Parse(line[idx+1:]); err == nil && text != "" {
				entry.Text = text
				entry.Language = lang
			}
		}
		entries = append(entries, entry)
	}

	return entries
}
