package logging

import (
	"testing"

	"go.uber.org/zap/zapcore"
)

func TestLevelFromFlags(t *testing.T) {
	cases := []struct {
		verbose, debug bool
		want           Level
	}{
		{false, false, LevelWarn},
		{true, false, LevelInfo},
		{false, true, LevelDebug},
		{true, true, LevelDebug},
	}
	for _, tc := range cases {
		if got := LevelFromFlags(tc.verbose, tc.debug); got != tc.want {
			t.Fatalf("LevelFromFlags(%v, %v) = %v, want %v", tc.verbose, tc.debug, got, tc.want)
		}
	}
}

func TestNewHonoursLevel(t *testing.T) {
	logger, err := New(LevelInfo, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.DebugLevel) {
		t.Fatalf("debug should be disabled at info level")
	}
	if !logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be enabled at info level")
	}

	logger, err = New(LevelWarn, "test")
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if logger.Core().Enabled(zapcore.InfoLevel) {
		t.Fatalf("info should be disabled by default")
	}
}

func TestOrNop(t *testing.T) {
	if OrNop(nil) == nil {
		t.Fatalf("OrNop(nil) returned nil")
	}
}
