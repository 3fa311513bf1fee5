package main

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/iwvelando/finance-calculators/internal/config"
	"go.uber.org/zap/zapcore"
)

func TestInitializeLogger(t *testing.T) {
	tests := []struct {
		name      string
		conf      config.LoggingConfig
		override  string
		wantLevel zapcore.Level
		wantError bool
	}{
		{"Defaults", config.LoggingConfig{}, "", zapcore.InfoLevel, false},
		{"Configured level", config.LoggingConfig{Level: "warn", Format: "console"}, "", zapcore.WarnLevel, false},
		{"Override wins", config.LoggingConfig{Level: "warn"}, "debug", zapcore.DebugLevel, false},
		{"Warning alias", config.LoggingConfig{Level: "warning"}, "", zapcore.WarnLevel, false},
		{"Invalid level", config.LoggingConfig{Level: "loud"}, "", zapcore.InfoLevel, true},
		{"Invalid format", config.LoggingConfig{Format: "xml"}, "", zapcore.InfoLevel, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			logger, err := initializeLogger(tt.conf, tt.override)
			if (err != nil) != tt.wantError {
				t.Fatalf("initializeLogger() error = %v, wantError %v", err, tt.wantError)
			}
			if tt.wantError {
				return
			}
			if !logger.Core().Enabled(tt.wantLevel) {
				t.Errorf("expected %s to be enabled", tt.wantLevel)
			}
			if tt.wantLevel > zapcore.DebugLevel && logger.Core().Enabled(tt.wantLevel-1) {
				t.Errorf("expected levels below %s to be disabled", tt.wantLevel)
			}
		})
	}
}

func TestInitializeLoggerOutputFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "logs", "fincalc.log")
	logger, err := initializeLogger(config.LoggingConfig{OutputFile: path}, "")
	if err != nil {
		t.Fatalf("initializeLogger() error = %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("expected log file to exist: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("expected log file to contain the entry")
	}
}

func TestMergeLogging(t *testing.T) {
	base := config.LoggingConfig{Level: "info", Format: "json", OutputFile: "/tmp/a.log"}
	merged := mergeLogging(base, config.LoggingConfig{Level: "debug"})
	if merged.Level != "debug" || merged.Format != "json" || merged.OutputFile != "/tmp/a.log" {
		t.Fatalf("unexpected merge result %+v", merged)
	}
}
