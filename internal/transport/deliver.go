package transport

import (
	"bufio"
	"fmt"
	"io"
	"os"
	"time"

	"go.uber.org/zap"
	"golang.org/x/term"

	"github.com/agusx1211/glean/internal/chunk"
	"github.com/agusx1211/glean/internal/logging"
)

// DefaultInterval is the pause between consecutive chunks.
const DefaultInterval = 500 * time.Millisecond

// Pacer runs between two chunks, before next is written.
type Pacer interface {
	Wait(next chunk.Chunk) error
}

// SleepPacer waits a fixed interval.
type SleepPacer struct {
	Interval time.Duration
	sleep    func(time.Duration)
}

func (p SleepPacer) Wait(chunk.Chunk) error {
	sleep := p.sleep
	if sleep == nil {
		sleep = time.Sleep
	}
	sleep(p.Interval)
	return nil
}

// PromptPacer waits for the user to press Enter.
type PromptPacer struct {
	In  io.Reader
	Out io.Writer
}

func (p PromptPacer) Wait(next chunk.Chunk) error {
	fmt.Fprintf(p.Out, "Press Enter to copy section %d of %d...", next.Index, next.Total)
	reader := bufio.NewReader(p.In)
	if _, err := reader.ReadString('\n'); err != nil {
		return fmt.Errorf("waiting for confirmation: %w", err)
	}
	return nil
}

// NewPacer prompts when stdin is a terminal and sleeps otherwise.
func NewPacer(stdin *os.File, prompt io.Writer) Pacer {
	if stdin != nil && term.IsTerminal(int(stdin.Fd())) {
		return PromptPacer{In: stdin, Out: prompt}
	}
	return SleepPacer{Interval: DefaultInterval}
}

// Deliver writes each chunk, with its marker, to sink in order. It stops at
// the first failure and returns how many chunks were delivered.
func Deliver(chunks []chunk.Chunk, sink Sink, pacer Pacer, logger *zap.Logger) (int, error) {
	logger = logging.OrNop(logger)
	if pacer == nil {
		pacer = SleepPacer{Interval: DefaultInterval}
	}

	for i, c := range chunks {
		if i > 0 {
			if err := pacer.Wait(c); err != nil {
				logger.Error("Stopped before chunk", zap.Int("index", c.Index), zap.Error(err))
				return i, err
			}
		}
		if err := sink.Write(c.Text()); err != nil {
			logger.Error("Failed to deliver chunk",
				zap.String("sink", sink.Name()),
				zap.Int("index", c.Index),
				zap.Int("total", c.Total),
				zap.Error(err))
			return i, fmt.Errorf("chunk %d of %d: %w", c.Index, c.Total, err)
		}
		logger.Debug("Delivered chunk", zap.String("sink", sink.Name()), zap.Int("index", c.Index), zap.Int("total", c.Total))
	}

	logger.Info("Copied clipboard sections", zap.String("sink", sink.Name()), zap.Int("count", len(chunks)))
	return len(chunks), nil
}
