package logger

import (
	"testing"

	"go.uber.org/zap/zapcore"

	"invest-appraisal/config"
)

func TestNew(t *testing.T) {
	cases := []struct {
		name  string
		cfg   config.LogConfig
		level zapcore.Level
	}{
		{"console info", config.LogConfig{Level: "info", Encoding: "console"}, zapcore.InfoLevel},
		{"json debug", config.LogConfig{Level: "DEBUG", Encoding: "json", Sampling: true}, zapcore.DebugLevel},
		{"unknown level falls back", config.LogConfig{Level: "loud"}, zapcore.InfoLevel},
	}
	for _, c := range cases {
		log, err := New(c.cfg)
		if err != nil {
			t.Fatalf("%s: %v", c.name, err)
		}
		if !log.Core().Enabled(c.level) {
			t.Errorf("%s: level %s not enabled", c.name, c.level)
		}
		if c.level > zapcore.DebugLevel && log.Core().Enabled(c.level-1) {
			t.Errorf("%s: level below %s enabled", c.name, c.level)
		}
	}
}
