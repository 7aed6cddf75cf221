package session

import (
	"bytes"
	"errors"
	"math"
	"path/filepath"
	"strings"
	"sync"
	"testing"

	"mrr-renderer/internal/geometry"
	"mrr-renderer/internal/logging"
	"mrr-renderer/internal/mrr"
	"mrr-renderer/internal/mrr/mrrtest"
)

func TestDisplayName(t *testing.T) {
	tests := []struct {
		path string
		want string
	}{
		{"", UnnamedName},
		{"/", UnnamedName},
		{"robots/arm.mrr", "arm"},
		{"robots/arm.v2.mrr", "arm.v2"},
		{"arm", "arm"},
		{"robots/.mrr", ".mrr"},
		{"robots/\xff\xfe.mrr", InvalidUTF8Name},
	}
	for _, tt := range tests {
		if got := (Metadata{FilePath: tt.path}).DisplayName(); got != tt.want {
			t.Errorf("DisplayName(%q) = %q, want %q", tt.path, got, tt.want)
		}
	}
}

func newTestSession(t *testing.T) (*Session, *bytes.Buffer) {
	t.Helper()
	var out bytes.Buffer
	log, err := logging.New(logging.Options{Level: "debug", Stdout: &out})
	if err != nil {
		t.Fatal(err)
	}
	return New(log, geometry.Options{}), &out
}

func TestImportPublishes(t *testing.T) {
	s, out := newTestSession(t)
	if s.Current() != nil {
		t.Fatal("new session has a current assembly")
	}

	path := mrrtest.WriteFile(t, t.TempDir(), "walker.mrr", mrrtest.Robot())
	l, err := s.Import(path)
	if err != nil {
		t.Fatalf("Import: %v", err)
	}
	if s.Current() != l {
		t.Fatal("Current does not return the imported value")
	}
	if l.Metadata.DisplayName() != "walker" {
		t.Errorf("name = %q", l.Metadata.DisplayName())
	}
	if len(l.Assembly.Parts) != 2 || len(l.Meshes) != 2 {
		t.Errorf("parts = %d, meshes = %d", len(l.Assembly.Parts), len(l.Meshes))
	}
	if !strings.Contains(out.String(), "imported walker: 1 joints, 2 parts, 2 bodies") {
		t.Errorf("log = %q", out.String())
	}
}

func TestFailedImportKeepsPrevious(t *testing.T) {
	s, out := newTestSession(t)
	dir := t.TempDir()

	good, err := s.Import(mrrtest.WriteFile(t, dir, "good.mrr", mrrtest.Robot()))
	if err != nil {
		t.Fatal(err)
	}

	bad := mrrtest.WriteFile(t, dir, "bad.mrr", []byte("not an assembly"))
	if _, err := s.Import(bad); !errors.Is(err, mrr.ErrSignatureMismatch) {
		t.Fatalf("err = %v, want ErrSignatureMismatch", err)
	}
	if _, err := s.Import(filepath.Join(dir, "missing.mrr")); !errors.Is(err, mrr.ErrIO) {
		t.Fatalf("err = %v, want ErrIO", err)
	}
	if s.Current() != good {
		t.Fatal("failed import replaced the current assembly")
	}

	log := out.String()
	if !strings.Contains(log, "popup=true") || !strings.Contains(log, "kind=signature") {
		t.Errorf("alert missing from log: %q", log)
	}
	if !strings.Contains(log, mrr.UserMessage(mrr.ErrSignatureMismatch)) {
		t.Errorf("user message missing from log: %q", log)
	}
}

func TestClear(t *testing.T) {
	s, _ := newTestSession(t)
	if s.Clear() {
		t.Fatal("Clear on empty session reported a removal")
	}
	if _, err := s.Import(mrrtest.WriteFile(t, t.TempDir(), "a.mrr", mrrtest.Robot())); err != nil {
		t.Fatal(err)
	}
	if !s.Clear() || s.Current() != nil {
		t.Fatal("Clear did not drop the assembly")
	}
}

func TestConcurrentReaders(t *testing.T) {
	s := New(nil, geometry.Options{})
	path := mrrtest.WriteFile(t, t.TempDir(), "a.mrr", mrrtest.Robot())

	var wg sync.WaitGroup
	for i := 0; i < 4; i++ {
		wg.Add(2)
		go func() {
			defer wg.Done()
			if _, err := s.Import(path); err != nil {
				t.Error(err)
			}
		}()
		go func() {
			defer wg.Done()
			if l := s.Current(); l != nil && len(l.Meshes) != 2 {
				t.Errorf("partial value observed: %d meshes", len(l.Meshes))
			}
		}()
	}
	wg.Wait()
}

func TestImportAppliesPoseOption(t *testing.T) {
	path := mrrtest.WriteFile(t, t.TempDir(), "a.mrr", mrrtest.Robot())

	plain, err := New(nil, geometry.Options{}).Import(path)
	if err != nil {
		t.Fatal(err)
	}
	posed, err := New(nil, geometry.Options{ApplyPose: true}).Import(path)
	if err != nil {
		t.Fatal(err)
	}

	// The arm part sits one unit up the Z axis; scaled by 1/6 when posed.
	if z := plain.Meshes[1].Positions[0][2]; z != 0 {
		t.Errorf("unposed arm z = %v, want 0", z)
	}
	if z := posed.Meshes[1].Positions[0][2]; math.Abs(float64(z)-1.0/6) > 1e-6 {
		t.Errorf("posed arm z = %v, want 1/6", z)
	}
}
