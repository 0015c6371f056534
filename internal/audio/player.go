package audio

import (
	"fmt"
	"os/exec"
	"runtime"
)

// lookPath is swapped in tests
var lookPath = exec.LookPath

// linuxPlayers are tried in order; mpg123 handles MP3 files best
var linuxPlayers = [][]string{
	{"mpg123", "-q"},
	{"ffplay", "-nodisp", "-autoexit", "-loglevel", "quiet"},
	{"play", "-q"},
	{"paplay"},
	{"aplay", "-q"},
}

// PlaybackCommand returns a command that plays the audio file at path
// using whatever player the platform provides.
func PlaybackCommand(path string) (*exec.Cmd, error) {
	return playbackCommand(runtime.GOOS, path)
}

func playbackCommand(goos, path string) (*exec.Cmd, error) {
	switch goos {
	case "darwin":
		return exec.Command("afplay", path), nil
	case "linux", "freebsd", "openbsd":
		for _, p := range linuxPlayers {
			if _, err := lookPath(p[0]); err == nil {
				args := append(append([]string{}, p[1:]...), path)
				return exec.Command(p[0], args...), nil
			}
		}
		return nil, fmt.Errorf("no audio player found. Install mpg123, ffplay, sox, paplay, or aplay")
	case "windows":
		return exec.Command("cmd", "/c", "start", "/min", path), nil
	default:
		return nil, fmt.Errorf("unsupported platform: %s", goos)
	}
}
