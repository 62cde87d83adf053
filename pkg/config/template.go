package config

import "fmt"

// TemplateOptions controls configuration template generation.
type TemplateOptions struct {
	// Full writes every setting with its default value. Otherwise the
	// template is a commented-out starting point.
	Full bool
}

// DefaultTemplateHeader returns the header for generated configs.
func DefaultTemplateHeader() string {
	return `# gojot configuration
# See: https://github.com/yaklabco/gojot`
}

const minimalTemplate = `# Output format for "gojot render": html or json
format: html

# Source extensions picked up when walking directories
# extensions:
#   - .dj
#   - .djot

# Files and directories to skip (glob patterns, ** crosses directories)
# ignore:
#   - "vendor/**"
#   - "drafts/*.dj"

# Write output under this directory instead of next to each source
# out_dir: site

# Number of parallel workers (0 = auto)
# jobs: 0

# Guess a language class for code blocks without one
# detect_language: false

# Pretty-print JSON output
# indent: true

# Log the annotated match stream of every file at debug level
# debug_matches: false

# Traverse directory symlinks
# follow_symlinks: false
`

// GenerateTemplate creates the contents of a new .gojot.yml.
func GenerateTemplate(opts TemplateOptions) ([]byte, error) {
	if !opts.Full {
		return []byte(DefaultTemplateHeader() + "\n\n" + minimalTemplate), nil
	}

	data, err := NewConfig().ToYAMLWithHeader(DefaultTemplateHeader())
	if err != nil {
		return nil, fmt.Errorf("generate template: %w", err)
	}
	return data, nil
}
