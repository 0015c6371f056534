package gui

import (
	"strings"
	"testing"

	"fyne.io/fyne/v2/test"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestLogViewerCore(t *testing.T) {
	test.NewApp()
	v := NewLogViewer()
	log := zap.New(v.Core(zapcore.InfoLevel))

	log.Debug("hidden")
	log.Info("first")
	log.Warn("second", zap.String("op", "translate"))

	msgs := v.Messages()
	if len(msgs) != 2 {
		t.Fatalf("messages = %q", msgs)
	}
	if !strings.Contains(msgs[0], "second") || !strings.Contains(msgs[0], "translate") {
		t.Errorf("newest message = %q", msgs[0])
	}
	if !strings.Contains(v.logEntry.Text, "first") {
		t.Errorf("entry text = %q", v.logEntry.Text)
	}
}

func TestLogViewerLimit(t *testing.T) {
	test.NewApp()
	v := NewLogViewer()
	v.maxMessages = 3

	v.Write([]byte("a\nb\n"))
	v.Write([]byte("c\nd\n"))

	msgs := v.Messages()
	if strings.Join(msgs, ",") != "d,c,b" {
		t.Errorf("messages = %v", msgs)
	}

	v.Clear()
	if len(v.Messages()) != 0 || v.logEntry.Text != "" {
		t.Error("Clear did not empty the viewer")
	}
}
