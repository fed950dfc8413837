// Copyright (c) 2025 BVK Chaitanya

package defaults

import (
	"path/filepath"
	"testing"
)

func TestDataDir(t *testing.T) {
	t.Setenv("BACKTEST_DATA_DIR", "/var/lib/backtest")
	if v := DataDir(); v != "/var/lib/backtest" {
		t.Fatalf("want /var/lib/backtest, got %q", v)
	}

	t.Setenv("BACKTEST_DATA_DIR", "relative/dir")
	if v := DataDir(); v == "relative/dir" {
		t.Fatalf("relative data dir must be ignored")
	}
}

func TestLogDir(t *testing.T) {
	t.Setenv("BACKTEST_DATA_DIR", "/var/lib/backtest")

	t.Setenv("BACKTEST_LOG_DIR", "")
	if v := LogDir(); v != "" {
		t.Fatalf("want empty log dir, got %q", v)
	}

	t.Setenv("BACKTEST_LOG_DIR", "logs")
	if v, want := LogDir(), filepath.Join("/var/lib/backtest", "logs"); v != want {
		t.Fatalf("want %q, got %q", want, v)
	}

	t.Setenv("BACKTEST_LOG_DIR", "/tmp/backtest-logs")
	if v := LogDir(); v != "/tmp/backtest-logs" {
		t.Fatalf("want /tmp/backtest-logs, got %q", v)
	}

	t.Setenv("BACKTEST_LOG_DIR", "a/b")
	if v := LogDir(); v != "" {
		t.Fatalf("want empty log dir for relative path, got %q", v)
	}
}
