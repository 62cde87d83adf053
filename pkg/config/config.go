// Package config defines the configuration types for gojot.
// These are plain data structures; loading and merging live in
// internal/configloader.
package config

// OutputFormat selects what the render command produces.
type OutputFormat string

const (
	FormatHTML OutputFormat = "html"
	FormatJSON OutputFormat = "json"
)

// IsValid reports whether f is a known output format.
func (f OutputFormat) IsValid() bool {
	switch f {
	case FormatHTML, FormatJSON:
		return true
	default:
		return false
	}
}

// Extension returns the file extension used for output in this format.
func (f OutputFormat) Extension() string {
	if f == FormatJSON {
		return ".json"
	}
	return ".html"
}

// Config is the root configuration structure for gojot.
type Config struct {
	// Format is the output format for render ("html" or "json").
	Format OutputFormat `yaml:"format,omitempty"`

	// Extensions lists the source file extensions picked up from directories.
	Extensions []string `yaml:"extensions,omitempty"`

	// Ignore contains glob patterns for files and directories to skip.
	Ignore []string `yaml:"ignore,omitempty"`

	// OutDir receives rendered files. Empty means next to each source.
	OutDir string `yaml:"out_dir,omitempty"`

	// Jobs is the number of parallel workers (0 = number of CPUs).
	Jobs int `yaml:"jobs,omitempty"`

	// DetectLanguage guesses a language for unlabelled code blocks.
	DetectLanguage *bool `yaml:"detect_language,omitempty"`

	// DebugMatches logs the annotated match stream of every parsed file.
	DebugMatches *bool `yaml:"debug_matches,omitempty"`

	// Indent pretty-prints JSON output.
	Indent *bool `yaml:"indent,omitempty"`

	// FollowSymlinks traverses directory symlinks during discovery.
	FollowSymlinks *bool `yaml:"follow_symlinks,omitempty"`

	// CLI-level options (not persisted to config files).

	// DryRun converts without writing output files.
	DryRun bool `yaml:"-"`
}

// NewConfig returns a Config with defaults.
func NewConfig() *Config {
	return &Config{
		Format:         FormatHTML,
		Extensions:     []string{".dj", ".djot"},
		Jobs:           0,
		DetectLanguage: Bool(false),
		DebugMatches:   Bool(false),
		Indent:         Bool(true),
		FollowSymlinks: Bool(false),
	}
}

// Bool returns a pointer to b, for optional settings.
func Bool(b bool) *bool {
	return &b
}

// Enabled dereferences an optional setting, treating nil as false.
func Enabled(b *bool) bool {
	return b != nil && *b
}
