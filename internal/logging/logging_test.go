package logging

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"
)

func TestDailyFileName(t *testing.T) {
	got := DailyFileName(time.Date(2026, time.March, 7, 10, 0, 0, 0, time.UTC))
	if got != "7-3-2026.txt" {
		t.Fatalf("got %q", got)
	}
}

func TestLoggerWritesConsoleAndFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	now := func() time.Time { return time.Date(2026, time.October, 17, 9, 0, 0, 0, time.UTC) }

	l, err := New(Options{Level: "debug", Dir: dir, Stdout: &console, Now: now})
	if err != nil {
		t.Fatalf("New: %v", err)
	}
	defer l.Close()
	l.WithField("path", "bot.mrr").Infof("imported %d parts", 3)
	l.Debugf("debug line")

	out := console.String()
	if !strings.Contains(out, "[INF] imported 3 parts path=bot.mrr") {
		t.Errorf("console = %q", out)
	}
	if !strings.Contains(out, "[DEB] debug line") {
		t.Errorf("debug line missing: %q", out)
	}

	data, err := os.ReadFile(filepath.Join(dir, "17-10-2026.txt"))
	if err != nil {
		t.Fatalf("read log file: %v", err)
	}
	if string(data) != out {
		t.Errorf("file and console differ:\nfile: %q\nconsole: %q", data, out)
	}
}

func TestLevelFiltering(t *testing.T) {
	var console bytes.Buffer
	l, err := New(Options{Level: "warn", Stdout: &console})
	if err != nil {
		t.Fatal(err)
	}
	l.Infof("hidden")
	l.Warnf("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "[WAR] shown") {
		t.Fatalf("console = %q", console.String())
	}
}

func TestInvalidLevelDefaultsToInfo(t *testing.T) {
	var console bytes.Buffer
	l, _ := New(Options{Level: "loud", Stdout: &console})
	l.Debugf("hidden")
	l.Infof("shown")
	if strings.Contains(console.String(), "hidden") || !strings.Contains(console.String(), "shown") {
		t.Fatalf("console = %q", console.String())
	}
}

func TestAlert(t *testing.T) {
	var console bytes.Buffer
	l, _ := New(Options{Stdout: &console})
	Alert(l, "Import failed", "not a valid assembly file")
	want := "[ERR] not a valid assembly file popup=true title=Import failed"
	if !strings.Contains(console.String(), want) {
		t.Fatalf("console = %q, want %q", console.String(), want)
	}
}

func TestCloseReleasesDailyFile(t *testing.T) {
	dir := t.TempDir()
	var console bytes.Buffer
	l, err := New(Options{Dir: dir, Stdout: &console})
	if err != nil {
		t.Fatal(err)
	}
	l.Infof("before close")
	if err := l.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := l.Close(); err != nil {
		t.Fatalf("second Close: %v", err)
	}

	console.Reset()
	l.Infof("after close")
	if !strings.Contains(console.String(), "after close") {
		t.Errorf("console output lost after Close: %q", console.String())
	}

	noFile, _ := New(Options{Stdout: &console})
	if err := noFile.Close(); err != nil {
		t.Fatalf("Close without file: %v", err)
	}
}
