package cli

import (
	"bytes"
	"encoding/base64"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/notesnap/notesnap/internal/output"
	"github.com/notesnap/notesnap/pkg/sdk"
)

// Smallest valid PNG header, enough for content type sniffing
var pngBytes = []byte{0x89, 'P', 'N', 'G', '\r', '\n', 0x1a, '\n', 0, 0, 0, 0}

func TestEncodeImage(t *testing.T) {
	t.Run("png", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.png")
		require.NoError(t, os.WriteFile(path, pngBytes, 0o600))

		dataURL, err := encodeImage(path)
		require.NoError(t, err)
		assert.Equal(t, "data:image/png;base64,"+base64.StdEncoding.EncodeToString(pngBytes), dataURL)
	})

	t.Run("not an image", func(t *testing.T) {
		path := filepath.Join(t.TempDir(), "notes.txt")
		require.NoError(t, os.WriteFile(path, []byte("just text"), 0o600))

		_, err := encodeImage(path)
		assert.ErrorContains(t, err, "not an image")
	})

	t.Run("missing file", func(t *testing.T) {
		_, err := encodeImage(filepath.Join(t.TempDir(), "nope.png"))
		assert.Error(t, err)
	})
}

func TestParseDone(t *testing.T) {
	t.Run("empty", func(t *testing.T) {
		done, err := parseDone("  ")
		require.NoError(t, err)
		assert.Nil(t, done)
	})

	t.Run("positions", func(t *testing.T) {
		done, err := parseDone("1, 3,4")
		require.NoError(t, err)
		assert.Equal(t, map[int]bool{1: true, 3: true, 4: true}, done)
	})

	t.Run("invalid", func(t *testing.T) {
		for _, bad := range []string{"a", "1,x", "0", "-2"} {
			_, err := parseDone(bad)
			assert.Error(t, err, bad)
		}
	})
}

func TestResolvePassword(t *testing.T) {
	t.Run("flag wins", func(t *testing.T) {
		pw, err := resolvePassword("fromflag", strings.NewReader("fromstdin\n"))
		require.NoError(t, err)
		assert.Equal(t, "fromflag", pw)
	})

	t.Run("stdin", func(t *testing.T) {
		pw, err := resolvePassword("", strings.NewReader("secret123\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret123", pw)
	})

	t.Run("stdin without newline", func(t *testing.T) {
		pw, err := resolvePassword("", strings.NewReader("secret123"))
		require.NoError(t, err)
		assert.Equal(t, "secret123", pw)
	})

	t.Run("empty", func(t *testing.T) {
		_, err := resolvePassword("", strings.NewReader("\n"))
		assert.Error(t, err)
	})
}

func TestResolveSignupPassword(t *testing.T) {
	t.Run("too short from stdin", func(t *testing.T) {
		_, err := resolveSignupPassword("", strings.NewReader("abc\n"))
		assert.ErrorContains(t, err, "at least 6 characters")
	})

	t.Run("too short from flag", func(t *testing.T) {
		_, err := resolveSignupPassword("abc", strings.NewReader(""))
		assert.ErrorContains(t, err, "at least 6 characters")
	})

	t.Run("long enough", func(t *testing.T) {
		pw, err := resolveSignupPassword("", strings.NewReader("secret123\n"))
		require.NoError(t, err)
		assert.Equal(t, "secret123", pw)
	})

	t.Run("exactly the minimum", func(t *testing.T) {
		pw, err := resolveSignupPassword("abcdef", strings.NewReader(""))
		require.NoError(t, err)
		assert.Equal(t, "abcdef", pw)
	})
}

func TestRenderNote(t *testing.T) {
	n := &sdk.Note{
		Title:   "Weekly Sync",
		Summary: "Planned the release.",
		Notes:   []string{"Reviewed roadmap"},
		Tasks: []sdk.Task{
			{Text: "Fix bug", Assignee: "Sam"},
			{Text: "Write docs"},
		},
	}

	t.Run("full note with done set", func(t *testing.T) {
		var buf bytes.Buffer
		renderNote(output.NewFormatter(&buf), n, map[int]bool{1: true}, false)

		out := buf.String()
		assert.Contains(t, out, "# Weekly Sync\n")
		assert.Contains(t, out, "## Tasks (1 remaining)\n")
		assert.Contains(t, out, "- [x] Fix bug (@Sam)\n")
		assert.Contains(t, out, "- [ ] Write docs")
	})

	t.Run("tasks only ignores done set", func(t *testing.T) {
		var buf bytes.Buffer
		renderNote(output.NewFormatter(&buf), n, map[int]bool{1: true}, true)

		assert.Equal(t, "- [ ] Fix bug (@Sam)\n- [ ] Write docs\n", buf.String())
	})
}
