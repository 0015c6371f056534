package internal

import (
	"crypto/md5"
	"encoding/hex"
	"fmt"
	"strings"
	"unicode"
)

// maxFilenameRunes bounds the text-derived part of generated filenames
const maxFilenameRunes = 32

// AudioFilename derives an output filename for synthesized speech
// Format: sanitized(text)[:32]_language_md5(text)[:8].mp3
func AudioFilename(text, language string) string {
	hash := md5.Sum([]byte(text))
	hashStr := hex.EncodeToString(hash[:])[:8]

	base := SanitizeFilename(strings.TrimSpace(text))
	if runes := []rune(base); len(runes) > maxFilenameRunes {
		base = string(runes[:maxFilenameRunes])
	}
	base = strings.Trim(base, "_")
	if base == "" {
		base = "speech"
	}

	return fmt.Sprintf("%s_%s_%s.mp3", base, language, hashStr)
}

// SanitizeFilename creates a safe filename from a string
func SanitizeFilename(s string) string {
	var b strings.Builder
	for _, r := range s {
		if isAlphaNumeric(r) || r == '-' || r == '_' {
			b.WriteRune(r)
		} else {
			b.WriteRune('_')
		}
	}
	return b.String()
}

// isAlphaNumeric checks if a rune is a letter, a combining mark or a digit.
// Marks are kept so Indic scripts do not lose their vowel signs.
func isAlphaNumeric(r rune) bool {
	return unicode.IsLetter(r) || unicode.IsDigit(r) || unicode.IsMark(r)
}
