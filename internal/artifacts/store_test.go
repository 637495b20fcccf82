package artifacts

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/aiwiki/aiwiki/internal/generator"
)

func testArtifacts() generator.Artifacts {
	return generator.Artifacts{
		Markdown: "# Docs\n",
		Diagram:  "# Diagram\n",
		HTML:     "<html></html>",
	}
}

func TestWriteAndLoad(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, s.Write(testArtifacts()))

	c := s.Load()
	assert.True(t, c.Available())
	assert.True(t, c.HTMLAvailable())
	assert.Equal(t, "# Docs\n", c.Markdown)
	assert.Equal(t, "# Diagram\n", c.Diagram)
}

func TestWriteOverwritesWholesale(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, s.Write(testArtifacts()))

	updated := testArtifacts()
	updated.Markdown = "# Updated\n"
	require.NoError(t, s.Write(updated))

	assert.Equal(t, "# Updated\n", s.Load().Markdown)

	// no temp files left behind
	entries, err := os.ReadDir(s.Dir)
	require.NoError(t, err)
	assert.Len(t, entries, 3)
}

func TestLoadReflectsExternalEdits(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, s.Write(testArtifacts()))

	// an external regeneration edits the file directly
	require.NoError(t, os.WriteFile(filepath.Join(s.Dir, MarkdownFile), []byte("# External\n"), 0o644))
	assert.Equal(t, "# External\n", s.Load().Markdown)
}

func TestLoadMissingFilesIsUnavailable(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "docs"))
	c := s.Load()
	assert.False(t, c.Available())
	assert.False(t, c.HTMLAvailable())
}

func TestPathWhitelistsArtifacts(t *testing.T) {
	s := NewStore(filepath.Join(t.TempDir(), "docs"))
	require.NoError(t, s.Write(testArtifacts()))

	for _, name := range []string{MarkdownFile, DiagramFile, HTMLFile} {
		path, ok := s.Path(name)
		assert.True(t, ok)
		assert.Equal(t, filepath.Join(s.Dir, name), path)
	}

	_, ok := s.Path("../../etc/passwd")
	assert.False(t, ok)
	_, ok = s.Path("other.txt")
	assert.False(t, ok)
}

func TestWriteFailurePropagates(t *testing.T) {
	// a file where the directory should be makes MkdirAll fail
	base := t.TempDir()
	blocker := filepath.Join(base, "docs")
	require.NoError(t, os.WriteFile(blocker, []byte("file"), 0o644))

	s := NewStore(blocker)
	require.Error(t, s.Write(testArtifacts()))
}
