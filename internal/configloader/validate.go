package configloader

import (
	"fmt"
	"strings"

	"github.com/gobwas/glob"

	"github.com/yaklabco/gojot/pkg/config"
)

// ValidationError is one problem found in a configuration.
type ValidationError struct {
	Field    string // e.g. "format" or "ignore[2]"
	Value    any
	Message  string
	FilePath string // config file the value came from, if known
}

// Error formats the problem as "file: field: message", omitting empty parts.
func (e *ValidationError) Error() string {
	parts := make([]string, 0, 3)
	for _, p := range []string{e.FilePath, e.Field, e.Message} {
		if p != "" {
			parts = append(parts, p)
		}
	}
	return strings.Join(parts, ": ")
}

// ValidationResult collects the findings of Validate. Errors stop loading;
// warnings are reported and loading continues.
type ValidationResult struct {
	Errors   []ValidationError
	Warnings []ValidationError
}

// Valid reports whether no errors were found.
func (r *ValidationResult) Valid() bool { return len(r.Errors) == 0 }

// HasWarnings reports whether any warnings were found.
func (r *ValidationResult) HasWarnings() bool { return len(r.Warnings) > 0 }

// AllMessages returns every finding prefixed with "error: " or "warning: ".
func (r *ValidationResult) AllMessages() []string {
	msgs := make([]string, 0, len(r.Errors)+len(r.Warnings))
	for _, e := range r.Errors {
		msgs = append(msgs, "error: "+e.Error())
	}
	return append(msgs, r.warningMessages("warning: ")...)
}

func (r *ValidationResult) warningMessages(prefix string) []string {
	msgs := make([]string, 0, len(r.Warnings))
	for _, w := range r.Warnings {
		msgs = append(msgs, prefix+w.Error())
	}
	return msgs
}

func (r *ValidationResult) fail(field string, value any, format string, args ...any) {
	r.Errors = append(r.Errors, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

func (r *ValidationResult) warn(field string, value any, format string, args ...any) {
	r.Warnings = append(r.Warnings, ValidationError{Field: field, Value: value, Message: fmt.Sprintf(format, args...)})
}

// checks run in order; each appends its findings to the result.
//
//nolint:gochecknoglobals // Read-only table.
var checks = []func(*config.Config, *ValidationResult){
	checkFormat,
	checkJobs,
	checkExtensions,
	checkIgnore,
}

// Validate checks cfg. A nil config is valid.
func Validate(cfg *config.Config) *ValidationResult {
	result := &ValidationResult{}
	if cfg == nil {
		return result
	}
	for _, check := range checks {
		check(cfg, result)
	}
	return result
}

// ValidateWithFile is Validate with every finding attributed to filePath.
func ValidateWithFile(cfg *config.Config, filePath string) *ValidationResult {
	result := Validate(cfg)
	for _, list := range [][]ValidationError{result.Errors, result.Warnings} {
		for i := range list {
			list[i].FilePath = filePath
		}
	}
	return result
}

func checkFormat(cfg *config.Config, r *ValidationResult) {
	if cfg.Format != "" && !cfg.Format.IsValid() {
		r.fail("format", cfg.Format, "invalid format %q; must be one of: html, json", cfg.Format)
	}
}

func checkJobs(cfg *config.Config, r *ValidationResult) {
	if cfg.Jobs < 0 {
		r.fail("jobs", cfg.Jobs, "jobs must be >= 0, got %d", cfg.Jobs)
	}
}

func checkExtensions(cfg *config.Config, r *ValidationResult) {
	if cfg.Extensions != nil && len(cfg.Extensions) == 0 {
		r.warn("extensions", cfg.Extensions, "empty extension list; directories will yield no files")
	}
	for i, ext := range cfg.Extensions {
		if len(ext) < 2 || ext[0] != '.' {
			r.fail(fmt.Sprintf("extensions[%d]", i), ext, "extension %q must start with a dot", ext)
		}
	}
}

func checkIgnore(cfg *config.Config, r *ValidationResult) {
	for i, pattern := range cfg.Ignore {
		if _, err := glob.Compile(pattern, '/'); err != nil {
			r.fail(fmt.Sprintf("ignore[%d]", i), pattern, "invalid ignore pattern %q: %v", pattern, err)
		}
	}
}
