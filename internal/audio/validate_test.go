package audio

import (
	"strings"
	"testing"
)

func TestValidateText(t *testing.T) {
	tests := []struct {
		name    string
		text    string
		wantErr bool
	}{
		{"tamil text", "வணக்கம்", false},
		{"hindi text", "नमस्ते", false},
		{"latin text", "hello", false},
		{"empty", "", true},
		{"whitespace only", "   \t\n", true},
		{"invalid utf8", string([]byte{0xff, 0xfe}), true},
		{"too long", strings.Repeat("a", MaxTextLength+1), true},
		{"at limit", strings.Repeat("a", MaxTextLength), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := ValidateText(tt.text)
			if (err != nil) != tt.wantErr {
				t.Errorf("ValidateText() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}
