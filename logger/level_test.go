package logger_test

import (
	"os"
	"testing"

	"github.com/sabouaram/linxipc/logger"
)

func TestLevelFromEnv(t *testing.T) {
	tests := []struct {
		nam string
		val string
		set bool
		exp logger.Level
	}{
		{nam: "unset", set: false, exp: logger.InfoLevel},
		{nam: "error", val: "1", set: true, exp: logger.ErrorLevel},
		{nam: "warn", val: "2", set: true, exp: logger.WarnLevel},
		{nam: "info", val: "3", set: true, exp: logger.InfoLevel},
		{nam: "debug", val: "4", set: true, exp: logger.DebugLevel},
		{nam: "zero falls back", val: "0", set: true, exp: logger.InfoLevel},
		{nam: "too large falls back", val: "9", set: true, exp: logger.InfoLevel},
		{nam: "non numeric falls back", val: "debug", set: true, exp: logger.InfoLevel},
	}

	for _, tc := range tests {
		t.Run(tc.nam, func(t *testing.T) {
			os.Unsetenv("LOG_LEVEL")
			if tc.set {
				t.Setenv("LOG_LEVEL", tc.val)
			}

			if got := logger.LevelFromEnv(); got != tc.exp {
				t.Errorf("LevelFromEnv() = %v, want %v", got, tc.exp)
			}
		})
	}
}

func TestLoggerWith(t *testing.T) {
	l := logger.Discard()
	child := l.With(logger.F("req_id", 7))

	// With must not panic and must return a usable Logger.
	child.Info("hello", logger.F("extra", true))
}
