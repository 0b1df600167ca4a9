// Package emitter persists generated units.
package emitter

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"golang.org/x/mod/modfile"

	"github.com/origadmin/mapgen/internal/generator"
)

var (
	// ErrDuplicateUnit is returned when a unit path is emitted twice.
	ErrDuplicateUnit = errors.New("unit already emitted")
	// ErrOutsideModule is returned for units whose package is not inside the target module.
	ErrOutsideModule = errors.New("package is outside the module")
	// ErrNoModule is returned when no go.mod is found.
	ErrNoModule = errors.New("go.mod not found")
)

var (
	_ generator.Sink = (*FileSink)(nil)
	_ generator.Sink = (*MemorySink)(nil)
	_ generator.Sink = (*WriterSink)(nil)
)

// once remembers which unit paths were emitted.
type once map[string]struct{}

func (o once) claim(unit *generator.Unit) error {
	if _, exists := o[unit.Path()]; exists {
		return fmt.Errorf("%w: %s", ErrDuplicateUnit, unit.Path())
	}
	o[unit.Path()] = struct{}{}
	return nil
}

// FileSink writes units below the directory of a Go module.
type FileSink struct {
	modulePath string
	moduleDir  string
	emitted    once
}

// NewFileSink creates a sink for the module modulePath rooted at moduleDir.
func NewFileSink(modulePath, moduleDir string) *FileSink {
	return &FileSink{
		modulePath: modulePath,
		moduleDir:  moduleDir,
		emitted:    make(once),
	}
}

// Dir maps an import path inside the module to its directory.
func (s *FileSink) Dir(pkgPath string) (string, error) {
	if pkgPath == s.modulePath {
		return s.moduleDir, nil
	}
	rel, ok := strings.CutPrefix(pkgPath, s.modulePath+"/")
	if !ok {
		return "", fmt.Errorf("%w: %s is not in %s", ErrOutsideModule, pkgPath, s.modulePath)
	}
	return filepath.Join(s.moduleDir, filepath.FromSlash(rel)), nil
}

// Emit writes the unit to <module dir>/<package dir>/<file name>.
func (s *FileSink) Emit(unit *generator.Unit) error {
	dir, err := s.Dir(unit.Package)
	if err != nil {
		return err
	}
	if err := s.emitted.claim(unit); err != nil {
		return err
	}
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	file := filepath.Join(dir, unit.FileName)
	if err := os.WriteFile(file, unit.Source, 0644); err != nil {
		return fmt.Errorf("failed to write %s: %w", file, err)
	}
	slog.Info("Wrote generated file", "file", file)
	return nil
}

// FindModule walks up from dir to the nearest go.mod and returns its module
// path and directory.
func FindModule(dir string) (string, string, error) {
	dir, err := filepath.Abs(dir)
	if err != nil {
		return "", "", err
	}
	for {
		data, err := os.ReadFile(filepath.Join(dir, "go.mod"))
		if err == nil {
			modulePath := modfile.ModulePath(data)
			if modulePath == "" {
				return "", "", fmt.Errorf("no module directive in %s", filepath.Join(dir, "go.mod"))
			}
			return modulePath, dir, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return "", "", err
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", "", ErrNoModule
		}
		dir = parent
	}
}

// MemorySink keeps emitted units in memory, in emission order.
type MemorySink struct {
	units   []*generator.Unit
	emitted once
}

// NewMemorySink creates an empty MemorySink.
func NewMemorySink() *MemorySink {
	return &MemorySink{emitted: make(once)}
}

// Emit records the unit.
func (s *MemorySink) Emit(unit *generator.Unit) error {
	if err := s.emitted.claim(unit); err != nil {
		return err
	}
	s.units = append(s.units, unit)
	return nil
}

// Units returns the recorded units.
func (s *MemorySink) Units() []*generator.Unit {
	return s.units
}

// WriterSink prints every unit, preceded by a banner naming its path.
type WriterSink struct {
	w       io.Writer
	emitted once
}

// NewWriterSink creates a sink printing to w.
func NewWriterSink(w io.Writer) *WriterSink {
	return &WriterSink{w: w, emitted: make(once)}
}

// Emit prints the unit.
func (s *WriterSink) Emit(unit *generator.Unit) error {
	if err := s.emitted.claim(unit); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(s.w, "// ---- %s ----\n%s\n", unit.Path(), unit.Source); err != nil {
		return err
	}
	return nil
}
