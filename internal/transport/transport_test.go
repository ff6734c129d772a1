package transport

import (
	"errors"
	"strings"
	"testing"
	"time"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"

	"github.com/agusx1211/glean/internal/chunk"
)

func TestOSC52Sequence(t *testing.T) {
	data := "hello"
	encoded := "aGVsbG8="

	env := map[string]string{"TERM": "xterm-256color"}
	getenv := func(k string) string { return env[k] }

	seq := osc52Sequence(data, getenv)
	if !strings.HasPrefix(seq, "\x1b]52;c;"+encoded) || !strings.HasSuffix(seq, "\x07") {
		t.Fatalf("unexpected OSC52 sequence for xterm: %q", seq)
	}

	env["TMUX"] = "1"
	seq = osc52Sequence(data, getenv)
	wantTmux := "\x1bPtmux;\x1b]52;c;" + encoded + "\x07\x1b\\"
	if seq != wantTmux {
		t.Fatalf("unexpected OSC52 sequence for tmux: %q", seq)
	}

	env["TMUX"] = ""
	env["TERM"] = "screen"
	seq = osc52Sequence(data, getenv)
	wantScreen := "\x1bP\x1b]52;c;" + encoded + "\x07\x1b\\"
	if seq != wantScreen {
		t.Fatalf("unexpected OSC52 sequence for screen: %q", seq)
	}
}

func TestOSC52SinkWrite(t *testing.T) {
	var out strings.Builder
	sink := OSC52Sink{W: &out, Getenv: func(string) string { return "" }}
	if err := sink.Write("hi"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "\x1b]52;c;aGk=\x07" {
		t.Fatalf("wrote %q", out.String())
	}
}

func TestClipboardCommandSelection(t *testing.T) {
	available := map[string]bool{"xsel": true, "clip.exe": true}
	var gotName string
	var gotArgs []string
	sink := &ClipboardSink{
		goos: "linux",
		lookPath: func(name string) (string, error) {
			if available[name] {
				return "/usr/bin/" + name, nil
			}
			return "", errors.New("not found")
		},
		run: func(name string, args []string, data string) error {
			gotName, gotArgs = name, args
			return nil
		},
	}
	if err := sink.Write("data"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if gotName != "/usr/bin/xsel" || strings.Join(gotArgs, " ") != "--clipboard --input" {
		t.Fatalf("ran %s %v", gotName, gotArgs)
	}

	sink.goos = "darwin"
	if err := sink.Write("data"); !errors.Is(err, ErrNoClipboard) {
		t.Fatalf("expected ErrNoClipboard, got %v", err)
	}
	if err := sink.Write("data"); err == nil || !strings.Contains(err.Error(), "pbcopy") {
		t.Fatalf("error should name the tried utility: %v", err)
	}
}

type recordingSink struct {
	writes []string
	failAt int
}

func (s *recordingSink) Name() string { return "recording" }

func (s *recordingSink) Write(text string) error {
	if s.failAt > 0 && len(s.writes)+1 == s.failAt {
		return errors.New("sink gone")
	}
	s.writes = append(s.writes, text)
	return nil
}

func TestDeliverPacesBetweenChunks(t *testing.T) {
	chunks, err := chunk.Split(strings.Repeat("x", 25), 10)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}

	var slept []time.Duration
	pacer := SleepPacer{Interval: DefaultInterval, sleep: func(d time.Duration) { slept = append(slept, d) }}
	sink := &recordingSink{}

	n, err := Deliver(chunks, sink, pacer, nil)
	if err != nil {
		t.Fatalf("Deliver: %v", err)
	}
	if n != 3 || len(sink.writes) != 3 {
		t.Fatalf("delivered %d, sink saw %d", n, len(sink.writes))
	}
	if len(slept) != 2 || slept[0] != 500*time.Millisecond {
		t.Fatalf("slept %v, want two 500ms pauses", slept)
	}
	if got := chunk.Join(sink.writes); got != strings.Repeat("x", 25) {
		t.Fatalf("rejoined %q", got)
	}
}

func TestDeliverStopsOnFailure(t *testing.T) {
	chunks, err := chunk.Split("abcdefghij", 3)
	if err != nil {
		t.Fatalf("Split: %v", err)
	}
	core, logs := observer.New(zapcore.ErrorLevel)
	sink := &recordingSink{failAt: 2}

	n, err := Deliver(chunks, sink, SleepPacer{sleep: func(time.Duration) {}}, zap.New(core))
	if err == nil {
		t.Fatalf("expected an error")
	}
	if n != 1 || len(sink.writes) != 1 {
		t.Fatalf("delivered %d, sink saw %d", n, len(sink.writes))
	}
	if logs.FilterMessage("Failed to deliver chunk").Len() != 1 {
		t.Fatalf("expected one failure log, got %v", logs.All())
	}
}

func TestPromptPacer(t *testing.T) {
	var out strings.Builder
	p := PromptPacer{In: strings.NewReader("\n"), Out: &out}
	if err := p.Wait(chunk.Chunk{Index: 2, Total: 3}); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if !strings.Contains(out.String(), "section 2 of 3") {
		t.Fatalf("prompt = %q", out.String())
	}

	p = PromptPacer{In: strings.NewReader(""), Out: &out}
	if err := p.Wait(chunk.Chunk{Index: 2, Total: 3}); err == nil {
		t.Fatalf("expected error on closed input")
	}
}

func TestWriterSink(t *testing.T) {
	var out strings.Builder
	if err := (WriterSink{W: &out}).Write("doc"); err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if out.String() != "doc" {
		t.Fatalf("wrote %q", out.String())
	}
}
