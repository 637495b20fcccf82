// Package artifacts persists and re-reads the generated documentation files.
// The docs directory is the sole persistence mechanism: three fixed relative
// paths, overwritten wholesale on every generation run.
package artifacts

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/aiwiki/aiwiki/internal/generator"
)

const (
	MarkdownFile = "project.md"
	DiagramFile  = "diagram.md"
	HTMLFile     = "project.html"
)

// Store reads and writes artifacts under one docs directory. It holds no
// cached content: Load always goes back to disk so externally regenerated
// docs are picked up without restart.
type Store struct {
	Dir string
}

func NewStore(dir string) *Store {
	return &Store{Dir: dir}
}

// Content is one consistent read of all artifacts.
type Content struct {
	Markdown string
	Diagram  string
	HTML     string
}

// Available reports whether the markdown and diagram artifacts exist; these
// two are the minimum for the dashboard to have anything to show.
func (c *Content) Available() bool {
	return c.Markdown != "" && c.Diagram != ""
}

func (c *Content) HTMLAvailable() bool {
	return c.HTML != ""
}

// Combined is the full document text handed to the chat service.
func (c *Content) Combined() string {
	return c.Markdown + "\n\n" + c.Diagram
}

// Write persists all three artifacts. Each file is written to a temp file in
// the docs directory and renamed into place so a reader never sees a
// partially written artifact. Filesystem errors propagate; nothing retries.
func (s *Store) Write(arts generator.Artifacts) error {
	if err := os.MkdirAll(s.Dir, 0o755); err != nil {
		return fmt.Errorf("create docs directory: %w", err)
	}
	for _, f := range []struct {
		name string
		data string
	}{
		{MarkdownFile, arts.Markdown},
		{DiagramFile, arts.Diagram},
		{HTMLFile, arts.HTML},
	} {
		if err := s.writeAtomic(f.name, f.data); err != nil {
			return err
		}
	}
	return nil
}

func (s *Store) writeAtomic(name, data string) error {
	tmp, err := os.CreateTemp(s.Dir, "."+name+"-*")
	if err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	defer os.Remove(tmp.Name())

	if _, err := tmp.WriteString(data); err != nil {
		tmp.Close()
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	if err := os.Rename(tmp.Name(), filepath.Join(s.Dir, name)); err != nil {
		return fmt.Errorf("write %s: %w", name, err)
	}
	return nil
}

// Load re-reads every artifact from disk. A missing file yields empty
// content, not an error; only the caller knows whether that matters.
func (s *Store) Load() *Content {
	return &Content{
		Markdown: s.read(MarkdownFile),
		Diagram:  s.read(DiagramFile),
		HTML:     s.read(HTMLFile),
	}
}

func (s *Store) read(name string) string {
	data, err := os.ReadFile(filepath.Join(s.Dir, name))
	if err != nil {
		return ""
	}
	return string(data)
}

// Path maps a download name onto its path, refusing anything outside the
// fixed artifact set.
func (s *Store) Path(name string) (string, bool) {
	switch name {
	case MarkdownFile, DiagramFile, HTMLFile:
	default:
		return "", false
	}
	path := filepath.Join(s.Dir, name)
	if _, err := os.Stat(path); err != nil {
		return "", false
	}
	return path, true
}
