package gui

import (
	"fmt"
	"os/exec"
	"sync"

	"fyne.io/fyne/v2"
	"fyne.io/fyne/v2/container"
	"fyne.io/fyne/v2/layout"
	"fyne.io/fyne/v2/theme"
	"fyne.io/fyne/v2/widget"
	ttwidget "github.com/dweymouth/fyne-tooltip/widget"
	"go.uber.org/zap"

	"codeberg.org/snonux/localtranslator/internal/audio"
)

// playbackCommand is swapped in tests
var playbackCommand = audio.PlaybackCommand

// AudioPlayer plays the current audio handle with the platform player.
// It retains the handle it shows, and once more for as long as playback
// runs, so replacing the form's audio never deletes a file in use.
type AudioPlayer struct {
	widget.BaseWidget

	container   *fyne.Container
	playButton  *ttwidget.Button
	stopButton  *ttwidget.Button
	statusLabel *widget.Label
	log         *zap.Logger

	mu        sync.Mutex
	handle    *audio.Handle
	playCmd   *exec.Cmd // running player, its handle is retained
	isPlaying bool
}

// NewAudioPlayer creates a new audio player widget
func NewAudioPlayer(log *zap.Logger) *AudioPlayer {
	if log == nil {
		log = zap.NewNop()
	}
	p := &AudioPlayer{log: log.Named("player")}

	p.playButton = ttwidget.NewButton("", p.onPlay)
	p.playButton.Icon = theme.MediaPlayIcon()
	p.playButton.SetToolTip("Play audio (Ctrl+P)")

	p.stopButton = ttwidget.NewButton("", p.onStop)
	p.stopButton.Icon = theme.MediaStopIcon()
	p.stopButton.SetToolTip("Stop audio")

	p.statusLabel = widget.NewLabel("No audio loaded")

	p.playButton.Disable()
	p.stopButton.Disable()

	p.container = container.NewHBox(
		p.playButton,
		p.stopButton,
		layout.NewSpacer(),
		p.statusLabel,
	)

	p.ExtendBaseWidget(p)
	return p
}

// CreateRenderer implements fyne.Widget
func (p *AudioPlayer) CreateRenderer() fyne.WidgetRenderer {
	return widget.NewSimpleRenderer(p.container)
}

// SetHandle sets the audio to play. A nil handle clears the player.
// The player holds its own reference to the handle until it is replaced,
// so the form releasing its reference first cannot invalidate it. A handle
// that is already released is stale and ignored.
// Must be called on the UI goroutine.
func (p *AudioPlayer) SetHandle(h *audio.Handle) {
	p.mu.Lock()
	same := p.handle == h
	p.mu.Unlock()

	if same {
		return
	}
	if h == nil {
		p.Clear()
		return
	}

	if err := h.Retain(); err != nil {
		p.log.Debug("ignoring stale audio", zap.String("id", h.ID()), zap.Error(err))
		return
	}

	p.onStop()
	p.swapHandle(h)
	p.playButton.Enable()
	p.statusLabel.SetText(fmt.Sprintf("Audio ready (%s)", formatSize(h.Size())))
}

// swapHandle installs h and drops the player's reference to the old handle
func (p *AudioPlayer) swapHandle(h *audio.Handle) {
	p.mu.Lock()
	old := p.handle
	p.handle = h
	p.mu.Unlock()

	if old != nil {
		if err := old.Release(); err != nil {
			p.log.Warn("failed to release audio", zap.String("id", old.ID()), zap.Error(err))
		}
	}
}

// Handle returns the handle the player would play
func (p *AudioPlayer) Handle() *audio.Handle {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.handle
}

// IsPlaying reports whether playback is running
func (p *AudioPlayer) IsPlaying() bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	return p.isPlaying
}

// Clear stops playback and releases the handle
func (p *AudioPlayer) Clear() {
	p.onStop()
	p.swapHandle(nil)
	p.playButton.Disable()
	p.stopButton.Disable()
	p.statusLabel.SetText("No audio loaded")
}

// Play triggers audio playback
func (p *AudioPlayer) Play() {
	if !p.playButton.Disabled() {
		p.onPlay()
	}
}

// onPlay handles play button click
func (p *AudioPlayer) onPlay() {
	if p.IsPlaying() {
		p.onStop()
		return
	}

	if err := p.startPlayback(); err != nil {
		p.log.Warn("playback failed", zap.Error(err))
		p.statusLabel.SetText(fmt.Sprintf("Error: %v", err))
		return
	}

	p.playButton.SetIcon(theme.MediaPauseIcon())
	p.stopButton.Enable()
	p.statusLabel.SetText("Playing...")
}

// onStop handles stop button click
func (p *AudioPlayer) onStop() {
	p.mu.Lock()
	cmd := p.playCmd
	wasPlaying := p.isPlaying
	p.playCmd = nil
	p.isPlaying = false
	p.mu.Unlock()

	if cmd != nil && cmd.Process != nil {
		cmd.Process.Kill()
	}

	p.playButton.SetIcon(theme.MediaPlayIcon())
	p.stopButton.Disable()
	if wasPlaying {
		p.statusLabel.SetText("Stopped")
	}
}

// startPlayback retains the current handle and starts the player in the
// background. The handle is released when the player exits.
func (p *AudioPlayer) startPlayback() error {
	p.mu.Lock()
	h := p.handle
	p.mu.Unlock()

	if h == nil {
		return fmt.Errorf("no audio loaded")
	}
	if err := h.Retain(); err != nil {
		return fmt.Errorf("audio no longer available: %w", err)
	}

	cmd, err := playbackCommand(h.Path())
	if err != nil {
		h.Release()
		return err
	}
	if err := cmd.Start(); err != nil {
		h.Release()
		return fmt.Errorf("failed to start player: %w", err)
	}

	p.mu.Lock()
	p.playCmd = cmd
	p.isPlaying = true
	p.mu.Unlock()

	go func() {
		err := cmd.Wait()
		if rerr := h.Release(); rerr != nil {
			p.log.Warn("failed to release audio", zap.String("id", h.ID()), zap.Error(rerr))
		}

		p.mu.Lock()
		current := p.playCmd == cmd
		if current {
			p.playCmd = nil
			p.isPlaying = false
		}
		p.mu.Unlock()

		if current && err == nil {
			fyne.Do(func() {
				p.playButton.SetIcon(theme.MediaPlayIcon())
				p.stopButton.Disable()
				p.statusLabel.SetText("Finished")
			})
		}
	}()

	return nil
}

func formatSize(n int) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f KB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
