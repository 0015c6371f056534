package audio

import (
	"errors"
	"path/filepath"
	"reflect"
	"testing"
)

func TestPlaybackCommand(t *testing.T) {
	orig := lookPath
	defer func() { lookPath = orig }()

	tests := []struct {
		name      string
		goos      string
		available map[string]bool
		wantBin   string
		wantArgs  []string
		wantErr   bool
	}{
		{
			name:     "darwin",
			goos:     "darwin",
			wantBin:  "afplay",
			wantArgs: []string{"a.mp3"},
		},
		{
			name:      "linux prefers mpg123",
			goos:      "linux",
			available: map[string]bool{"mpg123": true, "ffplay": true},
			wantBin:   "mpg123",
			wantArgs:  []string{"-q", "a.mp3"},
		},
		{
			name:      "linux falls back to paplay",
			goos:      "linux",
			available: map[string]bool{"paplay": true},
			wantBin:   "paplay",
			wantArgs:  []string{"a.mp3"},
		},
		{
			name:    "linux without players",
			goos:    "linux",
			wantErr: true,
		},
		{
			name:     "windows",
			goos:     "windows",
			wantBin:  "cmd",
			wantArgs: []string{"/c", "start", "/min", "a.mp3"},
		},
		{
			name:    "plan9",
			goos:    "plan9",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			lookPath = func(file string) (string, error) {
				if tt.available[file] {
					return "/usr/bin/" + file, nil
				}
				return "", errors.New("not found")
			}

			cmd, err := playbackCommand(tt.goos, "a.mp3")
			if (err != nil) != tt.wantErr {
				t.Fatalf("playbackCommand() error = %v, wantErr %v", err, tt.wantErr)
			}
			if tt.wantErr {
				return
			}
			if filepath.Base(cmd.Args[0]) != tt.wantBin {
				t.Errorf("binary = %s, want %s", cmd.Args[0], tt.wantBin)
			}
			if !reflect.DeepEqual(cmd.Args[1:], tt.wantArgs) {
				t.Errorf("args = %v, want %v", cmd.Args[1:], tt.wantArgs)
			}
		})
	}
}
