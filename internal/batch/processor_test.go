package batch

import (
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"codeberg.org/snonux/localtranslator/internal/languages"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name        string
		fileContent string
		want        []Entry
	}{
		{
			name:        "empty file",
			fileContent: "",
			want:        nil,
		},
		{
			name:        "only whitespace",
			fileContent: "   \n\t\r\n   ",
			want:        nil,
		},
		{
			name: "phrases with languages",
			fileContent: `Hello = tamil
Thank you = Telugu
Good night = hindi`,
			want: []Entry{
				{Line: 1, Text: "Hello", Language: languages.Tamil},
				{Line: 2, Text: "Thank you", Language: languages.Telugu},
				{Line: 3, Text: "Good night", Language: languages.Hindi},
			},
		},
		{
			name: "mixed format with comments",
			fileContent: `# greetings
Hello

How are you? = hindi
  Good morning  `,
			want: []Entry{
				{Line: 2, Text: "Hello", Language: languages.Telugu},
				{Line: 4, Text: "How are you?", Language: languages.Hindi},
				{Line: 5, Text: "Good morning", Language: languages.Telugu},
			},
		},
		{
			name:        "equals sign inside text",
			fileContent: "1 + 1 = 2\nx = y = tamil\r\n= hindi",
			want: []Entry{
				{Line: 1, Text: "1 + 1 = 2", Language: languages.Telugu},
				{Line: 2, Text: "x = y", Language: languages.Tamil},
				{Line: 3, Text: "= hindi", Language: languages.Telugu},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Parse(tt.fileContent, languages.Telugu)
			if !reflect.DeepEqual(got, tt.want) {
				t.Errorf("Parse() = %+v, want %+v", got, tt.want)
			}
		})
	}
}

func TestParseDefaultLanguage(t *testing.T) {
	got := Parse("Hello", languages.Language{})
	if len(got) != 1 || got[0].Language != languages.Tamil {
		t.Errorf("Parse() = %+v, want tamil default", got)
	}
}

func TestReadBatchFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "phrases.txt")
	if err := os.WriteFile(path, []byte("Hello = hindi\nWelcome\n"), 0644); err != nil {
		t.Fatal(err)
	}

	entries, err := ReadBatchFile(path, languages.Tamil)
	if err != nil {
		t.Fatalf("ReadBatchFile() error = %v", err)
	}
	if len(entries) != 2 || entries[0].Language != languages.Hindi || entries[1].Language != languages.Tamil {
		t.Errorf("entries = %+v", entries)
	}

	if _, err := ReadBatchFile(filepath.Join(dir, "missing.txt"), languages.Tamil); err == nil {
		t.Error("expected error for missing file")
	}
}
