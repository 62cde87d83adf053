package runner

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"github.com/gobwas/glob"
)

// Discover finds djot files matching opts. It returns a sorted,
// de-duplicated list of absolute file paths.
func Discover(ctx context.Context, opts Options) ([]string, error) {
	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	excludes, err := compileGlobs(opts.ExcludeGlobs)
	if err != nil {
		return nil, err
	}

	w := &walker{
		ctx:        ctx,
		workDir:    workDir,
		extensions: opts.effectiveExtensions(),
		excludes:   excludes,
		follow:     opts.FollowSymlinks,
	}

	var files []string
	for _, input := range opts.effectivePaths() {
		if err := ctx.Err(); err != nil {
			return nil, fmt.Errorf("discovery cancelled: %w", err)
		}

		path := input
		if !filepath.IsAbs(path) {
			path = filepath.Join(workDir, path)
		}
		path = filepath.Clean(path)

		info, err := os.Stat(path)
		switch {
		case err != nil:
			return nil, fmt.Errorf("stat %s: %w", input, err)
		case info.IsDir():
			found, err := w.walk(path)
			if err != nil {
				return nil, err
			}
			files = append(files, found...)
		case !w.excluded(path):
			// Named files are taken whatever their extension.
			files = append(files, path)
		}
	}

	slices.Sort(files)
	return slices.Compact(files), nil
}

func resolveWorkDir(workDir string) (string, error) {
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return "", fmt.Errorf("get working directory: %w", err)
		}
		return wd, nil
	}
	absPath, err := filepath.Abs(workDir)
	if err != nil {
		return "", fmt.Errorf("resolve absolute path: %w", err)
	}
	return absPath, nil
}

// pathGlob is a compiled exclude pattern.
type pathGlob struct {
	glob     glob.Glob
	baseOnly bool
}

func compileGlobs(patterns []string) ([]pathGlob, error) {
	globs := make([]pathGlob, 0, len(patterns))
	for _, pattern := range patterns {
		pattern = filepath.ToSlash(pattern)
		g, err := glob.Compile(pattern, '/')
		if err != nil {
			return nil, fmt.Errorf("invalid ignore pattern %q: %w", pattern, err)
		}
		globs = append(globs, pathGlob{glob: g, baseOnly: !strings.Contains(pattern, "/")})
	}
	return globs, nil
}

type walker struct {
	ctx        context.Context
	workDir    string
	extensions []string
	excludes   []pathGlob
	follow     bool
}

// excluded reports whether path matches an exclude pattern.
func (w *walker) excluded(path string) bool {
	rel, err := filepath.Rel(w.workDir, path)
	if err != nil {
		rel = path
	}
	rel = filepath.ToSlash(rel)
	base := filepath.Base(path)
	for _, g := range w.excludes {
		if g.glob.Match(rel) || (g.baseOnly && g.glob.Match(base)) {
			return true
		}
	}
	return false
}

func (w *walker) hasExtension(path string) bool {
	ext := filepath.Ext(path)
	return slices.ContainsFunc(w.extensions, func(e string) bool { return strings.EqualFold(e, ext) })
}

// walk returns the matching files below root. Hidden entries are skipped
// and unreadable directories are passed over.
func (w *walker) walk(root string) ([]string, error) {
	var files []string
	err := filepath.WalkDir(root, func(path string, entry fs.DirEntry, walkErr error) error {
		if err := w.ctx.Err(); err != nil {
			return err
		}
		switch {
		case errors.Is(walkErr, fs.ErrPermission):
			return nil
		case walkErr != nil:
			return walkErr
		case path == root:
			return nil
		case strings.HasPrefix(entry.Name(), "."):
			return skip(entry)
		case w.excluded(path):
			return skip(entry)
		case entry.IsDir():
			return nil
		case entry.Type()&fs.ModeSymlink != 0:
			found, err := w.symlink(path)
			files = append(files, found...)
			return err
		case w.hasExtension(path):
			files = append(files, path)
		}
		return nil
	})
	if err != nil {
		return nil, fmt.Errorf("walk directory %s: %w", root, err)
	}
	return files, nil
}

// symlink resolves a link met during a walk. Links to files count like
// files; links to directories are walked only when following is on. Broken
// links are ignored.
func (w *walker) symlink(path string) ([]string, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, nil //nolint:nilerr // Broken links are skipped.
	}
	if !info.IsDir() {
		if w.hasExtension(path) {
			return []string{path}, nil
		}
		return nil, nil
	}
	if !w.follow {
		return nil, nil
	}
	target, err := filepath.EvalSymlinks(path)
	if err != nil {
		return nil, nil //nolint:nilerr // Unresolvable targets are skipped.
	}
	return w.walk(target)
}

// skip keeps a walk out of entry: directories are pruned, files ignored.
func skip(entry fs.DirEntry) error {
	if entry.IsDir() {
		return filepath.SkipDir
	}
	return nil
}
