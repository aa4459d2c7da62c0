package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"path/filepath"
	"slices"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"
)

// ErrOutsideWorkspace is returned for a changed path that escapes the workspace.
var ErrOutsideWorkspace = errors.New("path is outside the workspace")

// Discover walks the workspace and returns the matching files as sorted,
// slash-separated paths relative to the workspace.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workspace, err := resolveWorkspace(opts.Workspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}

	skipDirs := opts.effectiveSkipDirs()
	var files []string

	err = filepath.WalkDir(workspace, func(walkPath string, entry fs.DirEntry, walkErr error) error {
		if err := ctx.Err(); err != nil {
			return err
		}

		if walkErr != nil {
			if errors.Is(walkErr, fs.ErrPermission) {
				return nil
			}
			return walkErr
		}

		if entry.IsDir() {
			if walkPath != workspace && slices.Contains(skipDirs, entry.Name()) {
				return filepath.SkipDir
			}
			return nil
		}

		// Symlinked directories are not followed; symlinked files are linted.
		if entry.Type()&fs.ModeSymlink != 0 && !isRegularFile(walkPath) {
			return nil
		}

		relPath, relErr := filepath.Rel(workspace, walkPath)
		if relErr != nil {
			return fmt.Errorf("relative path for %s: %w", walkPath, relErr)
		}
		relPath = filepath.ToSlash(relPath)

		if matches(relPath, opts) {
			files = append(files, relPath)
		}

		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk workspace %s: %w", workspace, err)
	}

	sort.Strings(files)

	return files, nil
}

// FilterPaths applies the discovery rules to an explicit list of
// workspace-relative paths, such as the files changed by a pull request.
// Paths in skipped directories, with other extensions, matching an ignore
// glob, or no longer present in the workspace are dropped. The result is
// sorted and deduplicated.
func FilterPaths(ctx context.Context, opts Options, paths []string) ([]string, error) {
	workspace, err := resolveWorkspace(opts.Workspace)
	if err != nil {
		return nil, fmt.Errorf("resolve workspace: %w", err)
	}

	skipDirs := opts.effectiveSkipDirs()
	seen := make(map[string]struct{}, len(paths))
	files := make([]string, 0, len(paths))

	for _, candidate := range paths {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("filter paths: %w", err)
		}

		relPath := path.Clean(filepath.ToSlash(candidate))
		if relPath == ".." || strings.HasPrefix(relPath, "../") || path.IsAbs(relPath) {
			return nil, fmt.Errorf("%w: %s", ErrOutsideWorkspace, candidate)
		}

		if _, ok := seen[relPath]; ok {
			continue
		}
		seen[relPath] = struct{}{}

		if inSkippedDir(relPath, skipDirs) || !matches(relPath, opts) {
			continue
		}
		if !isRegularFile(filepath.Join(workspace, filepath.FromSlash(relPath))) {
			continue
		}

		files = append(files, relPath)
	}

	sort.Strings(files)

	return files, nil
}

// resolveWorkspace resolves the workspace, defaulting to os.Getwd().
func resolveWorkspace(workspace string) (string, error) {
	if workspace == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workspace)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// matches checks the extension and ignore globs of a relative path.
func matches(relPath string, opts Options) bool {
	return hasMatchingExtension(relPath, opts.effectiveExtensions()) && !isIgnored(relPath, opts.Ignore)
}

// hasMatchingExtension checks the extension of relPath. The comparison is
// case-sensitive: main.TEX is not linted with the default ".tex".
func hasMatchingExtension(relPath string, extensions []string) bool {
	return slices.Contains(extensions, path.Ext(relPath))
}

// isIgnored reports whether relPath matches any ignore glob. Invalid
// patterns never match; the config loader rejects them earlier.
func isIgnored(relPath string, patterns []string) bool {
	for _, pattern := range patterns {
		if matched, err := doublestar.Match(pattern, relPath); err == nil && matched {
			return true
		}
	}
	return false
}

// inSkippedDir reports whether any directory of relPath is skipped.
func inSkippedDir(relPath string, skipDirs []string) bool {
	dirs := strings.Split(path.Dir(relPath), "/")
	for _, dir := range dirs {
		if slices.Contains(skipDirs, dir) {
			return true
		}
	}
	return false
}

func isRegularFile(p string) bool {
	info, err := os.Stat(p)
	return err == nil && info.Mode().IsRegular()
}
