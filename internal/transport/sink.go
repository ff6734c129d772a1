// Package transport delivers rendered output to stdout, the system
// clipboard or a terminal clipboard escape sequence.
package transport

import (
	"bytes"
	"encoding/base64"
	"errors"
	"fmt"
	"io"
	"os"
	"os/exec"
	"runtime"
	"strings"
)

// ErrNoClipboard is returned when no clipboard utility is available.
var ErrNoClipboard = errors.New("no clipboard utility found")

// Sink receives text. Each Write replaces whatever the sink held before.
type Sink interface {
	Name() string
	Write(text string) error
}

// WriterSink writes text verbatim to an io.Writer.
type WriterSink struct {
	W io.Writer
}

func (s WriterSink) Name() string { return "stdout" }

func (s WriterSink) Write(text string) error {
	_, err := io.WriteString(s.W, text)
	return err
}

type clipboardCommand struct {
	name string
	args []string
}

// ClipboardSink pipes text into the platform clipboard utility.
type ClipboardSink struct {
	goos     string
	lookPath func(string) (string, error)
	run      func(name string, args []string, data string) error
}

// NewClipboardSink returns a ClipboardSink for the running platform.
func NewClipboardSink() *ClipboardSink {
	return &ClipboardSink{
		goos:     runtime.GOOS,
		lookPath: exec.LookPath,
		run:      runClipboardCommand,
	}
}

func (s *ClipboardSink) Name() string { return "clipboard" }

func (s *ClipboardSink) Write(text string) error {
	cmd, err := s.command()
	if err != nil {
		return err
	}
	return s.run(cmd.name, cmd.args, text)
}

func (s *ClipboardSink) command() (clipboardCommand, error) {
	var candidates []clipboardCommand
	switch s.goos {
	case "darwin":
		candidates = []clipboardCommand{{name: "pbcopy"}}
	case "windows":
		candidates = []clipboardCommand{{name: "clip"}}
	default:
		candidates = []clipboardCommand{
			{name: "wl-copy"},
			{name: "xclip", args: []string{"-selection", "clipboard"}},
			{name: "xsel", args: []string{"--clipboard", "--input"}},
			{name: "clip.exe"},
		}
	}

	tried := make([]string, 0, len(candidates))
	for _, c := range candidates {
		if path, err := s.lookPath(c.name); err == nil && path != "" {
			return clipboardCommand{name: path, args: c.args}, nil
		}
		tried = append(tried, c.name)
	}
	return clipboardCommand{}, fmt.Errorf("%w (tried %s)", ErrNoClipboard, strings.Join(tried, ", "))
}

func runClipboardCommand(name string, args []string, data string) error {
	cmd := exec.Command(name, args...)
	cmd.Stdin = strings.NewReader(data)
	cmd.Stdout = io.Discard
	var stderr bytes.Buffer
	cmd.Stderr = &stderr
	if err := cmd.Run(); err != nil {
		msg := strings.TrimSpace(stderr.String())
		if msg != "" {
			return fmt.Errorf("%s failed: %s", name, msg)
		}
		return fmt.Errorf("%s failed: %w", name, err)
	}
	return nil
}

// OSC52Sink sets the clipboard of the controlling terminal with an OSC 52
// escape sequence, which also works over SSH.
type OSC52Sink struct {
	W      io.Writer
	Getenv func(string) string
}

// NewOSC52Sink returns an OSC52Sink writing to stdout.
func NewOSC52Sink() OSC52Sink {
	return OSC52Sink{W: os.Stdout, Getenv: os.Getenv}
}

func (s OSC52Sink) Name() string { return "osc52" }

func (s OSC52Sink) Write(text string) error {
	getenv := s.Getenv
	if getenv == nil {
		getenv = os.Getenv
	}
	if _, err := io.WriteString(s.W, osc52Sequence(text, getenv)); err != nil {
		return fmt.Errorf("failed to write OSC 52 sequence: %w", err)
	}
	return nil
}

func osc52Sequence(data string, getenv func(string) string) string {
	encoded := base64.StdEncoding.EncodeToString([]byte(data))
	seq := fmt.Sprintf("\x1b]52;c;%s\x07", encoded)
	if getenv("TMUX") != "" {
		return "\x1bPtmux;" + seq + "\x1b\\"
	}
	if strings.HasPrefix(getenv("TERM"), "screen") {
		return "\x1bP" + seq + "\x1b\\"
	}
	return seq
}
