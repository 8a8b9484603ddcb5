package utils

import (
	"os"
	"path/filepath"
	"testing"
)

func TestInitLogger_WritesUnderDirectory(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "logs")

	logger, err := InitLogger(dir, false)
	if err != nil {
		t.Fatalf("InitLogger: %v", err)
	}
	logger.Info("hello")
	_ = logger.Sync()

	data, err := os.ReadFile(filepath.Join(dir, LogFileName))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if len(data) == 0 {
		t.Fatal("log file is empty")
	}
}
