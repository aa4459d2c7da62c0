package fsutil_test

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/j2kun/chktex-action/pkg/fsutil"
)

func TestReadFile(t *testing.T) {
	t.Parallel()

	t.Run("reads content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "chktex.out")
		require.NoError(t, os.WriteFile(path, []byte("Warning 1 in a.tex line 1: x\n"), 0o644))

		got, err := fsutil.ReadFile(context.Background(), path)
		require.NoError(t, err)
		assert.Equal(t, "Warning 1 in a.tex line 1: x\n", string(got))
	})

	t.Run("missing file", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), filepath.Join(t.TempDir(), "missing"))
		require.ErrorIs(t, err, fsutil.ErrNotFound)
	})

	t.Run("directory", func(t *testing.T) {
		t.Parallel()

		_, err := fsutil.ReadFile(context.Background(), t.TempDir())
		require.ErrorIs(t, err, fsutil.ErrIsDirectory)
	})

	t.Run("cancelled context", func(t *testing.T) {
		t.Parallel()

		ctx, cancel := context.WithCancel(context.Background())
		cancel()

		_, err := fsutil.ReadFile(ctx, "irrelevant")
		require.ErrorIs(t, err, context.Canceled)
	})
}

func TestAppendFile(t *testing.T) {
	t.Parallel()

	t.Run("appends to existing content", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "step_summary")
		require.NoError(t, os.WriteFile(path, []byte("# Earlier step\n"), 0o644))

		require.NoError(t, fsutil.AppendFile(context.Background(), path, []byte("## ChkTeX Action Summary\n")))
		require.NoError(t, fsutil.AppendFile(context.Background(), path, []byte("more\n")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "# Earlier step\n## ChkTeX Action Summary\nmore\n", string(got))
	})

	t.Run("creates missing file", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "new_summary")
		require.NoError(t, fsutil.AppendFile(context.Background(), path, []byte("x")))

		got, err := os.ReadFile(path)
		require.NoError(t, err)
		assert.Equal(t, "x", string(got))
	})

	t.Run("missing directory", func(t *testing.T) {
		t.Parallel()

		path := filepath.Join(t.TempDir(), "nope", "summary")
		require.ErrorIs(t, fsutil.AppendFile(context.Background(), path, []byte("x")), fsutil.ErrNotFound)
	})
}
