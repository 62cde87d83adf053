// Package runner converts batches of djot files concurrently.
package runner

import (
	"context"
	"path/filepath"
	"strings"
)

// ConvertFunc turns the content of one source file into rendered output.
// It must be safe for concurrent use.
type ConvertFunc func(ctx context.Context, path string, content []byte) ([]byte, error)

// Options controls discovery and conversion.
type Options struct {
	// Paths are the files or directories to process.
	// If empty, defaults to the working directory.
	Paths []string

	// WorkingDir is the base directory used to resolve relative Paths.
	// If empty, the current process working directory is used.
	WorkingDir string

	// Extensions is the set of source file extensions (with leading dot).
	// Defaults to DefaultExtensions().
	Extensions []string

	// ExcludeGlobs skip matching files or directories. Patterns are matched
	// against the slash-separated path relative to WorkingDir; patterns
	// without a slash also match the base name.
	ExcludeGlobs []string

	// FollowSymlinks controls whether directory symlinks are traversed.
	FollowSymlinks bool

	// Jobs controls the maximum number of concurrent workers.
	// 0 or negative means runtime.NumCPU().
	Jobs int

	// OutDir receives the output files, mirroring the layout below
	// WorkingDir. If empty, output is written next to each source.
	OutDir string

	// OutputExt replaces the source extension on output files.
	// Defaults to ".html".
	OutputExt string

	// DryRun converts files without writing any output.
	DryRun bool
}

// DefaultExtensions returns the default set of djot file extensions.
func DefaultExtensions() []string {
	return []string{".dj", ".djot"}
}

// DefaultOutputExt is the output extension used when none is configured.
const DefaultOutputExt = ".html"

func (o Options) effectiveExtensions() []string {
	if len(o.Extensions) == 0 {
		return DefaultExtensions()
	}
	return o.Extensions
}

func (o Options) effectivePaths() []string {
	if len(o.Paths) == 0 {
		return []string{"."}
	}
	return o.Paths
}

func (o Options) effectiveOutputExt() string {
	if o.OutputExt == "" {
		return DefaultOutputExt
	}
	if !strings.HasPrefix(o.OutputExt, ".") {
		return "." + o.OutputExt
	}
	return o.OutputExt
}

// OutputPath returns where the rendered form of source is written. workDir
// must be absolute.
func (o Options) OutputPath(workDir, source string) string {
	base := strings.TrimSuffix(source, filepath.Ext(source)) + o.effectiveOutputExt()
	if o.OutDir == "" {
		return base
	}

	outDir := o.OutDir
	if !filepath.IsAbs(outDir) {
		outDir = filepath.Join(workDir, outDir)
	}

	rel, err := filepath.Rel(workDir, base)
	if err != nil || rel == ".." || strings.HasPrefix(rel, ".."+string(filepath.Separator)) {
		rel = filepath.Base(base)
	}
	return filepath.Join(outDir, rel)
}
