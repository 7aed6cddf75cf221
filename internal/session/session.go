// Package session owns the assembly currently loaded by a host program.
//
// A Session publishes each imported assembly with a single atomic store, so
// readers never observe a partially decoded value and a failed import leaves
// the previous assembly in place.
package session

import (
	"fmt"
	"path/filepath"
	"strings"
	"sync/atomic"
	"unicode/utf8"

	"mrr-renderer/internal/geometry"
	"mrr-renderer/internal/logging"
	"mrr-renderer/internal/mrr"
)

// Names reported by DisplayName when the path has no usable stem.
const (
	UnnamedName     = "Unnamed"
	InvalidUTF8Name = "[INVALID UTF-8]"
)

// Metadata describes where an assembly came from.
type Metadata struct {
	FilePath string
}

// DisplayName returns the file stem of FilePath.
func (m Metadata) DisplayName() string {
	base := filepath.Base(m.FilePath)
	if m.FilePath == "" || base == "." || base == ".." || base == string(filepath.Separator) {
		return UnnamedName
	}
	stem := strings.TrimSuffix(base, filepath.Ext(base))
	if stem == "" {
		// dotfile such as ".mrr"
		stem = base
	}
	if !utf8.ValidString(stem) {
		return InvalidUTF8Name
	}
	return stem
}

// Loaded is one imported assembly with its derived meshes.
type Loaded struct {
	Assembly *mrr.Assembly
	Metadata Metadata
	Meshes   []geometry.Mesh
}

// Session holds the current assembly. The zero value is not usable; call New.
type Session struct {
	log     logging.Logger
	opts    geometry.Options
	current atomic.Pointer[Loaded]
}

// New creates an empty session. Meshes for imported assemblies are built
// with opts.
func New(log logging.Logger, opts geometry.Options) *Session {
	if log == nil {
		log = logging.Discard()
	}
	return &Session{log: log, opts: opts}
}

// Import reads and decodes the file at path and makes it current. On failure
// the previous assembly stays current, the failure is raised as an alert and
// the error is returned.
func (s *Session) Import(path string) (*Loaded, error) {
	a, err := mrr.Parse(path)
	if err != nil {
		logging.Alert(s.log.WithField("path", path).WithField("kind", mrr.Kind(err)),
			"Import failed", mrr.UserMessage(err))
		return nil, fmt.Errorf("import %s: %w", path, err)
	}

	l := &Loaded{
		Assembly: a,
		Metadata: Metadata{FilePath: path},
		Meshes:   geometry.Build(a, s.opts),
	}
	s.current.Store(l)

	s.log.WithField("path", path).Infof("imported %s: %d joints, %d parts, %d bodies",
		l.Metadata.DisplayName(), len(a.Joints), len(a.Parts), a.BodyCount())
	return l, nil
}

// Current returns the current assembly, or nil when nothing is loaded.
func (s *Session) Current() *Loaded {
	return s.current.Load()
}

// Clear drops the current assembly and reports whether one was loaded.
func (s *Session) Clear() bool {
	prev := s.current.Swap(nil)
	if prev != nil {
		s.log.Infof("removed %s", prev.Metadata.DisplayName())
	}
	return prev != nil
}
