// Package langdetect guesses the language of an unlabelled code block so the
// HTML renderer can add a language-* class to it.
//
// Detection tries, in order, a shebang line, a table of pattern heuristics,
// and the go-enry classifier. Anything short of a confident answer yields "".
package langdetect

import (
	"strings"

	"github.com/go-enry/go-enry/v2"

	"github.com/yaklabco/gojot/pkg/luapat"
)

// Language tags returned by Detect.
const (
	LangGo         = "go"
	LangPython     = "python"
	LangJavaScript = "javascript"
	LangJSON       = "json"
	LangYAML       = "yaml"
	LangHTML       = "html"
	LangSQL        = "sql"
	LangRust       = "rust"
	LangDockerfile = "dockerfile"
	LangBash       = "bash"
)

// fold selects the case the heuristic's patterns are written against.
type fold uint8

const (
	foldNone fold = iota
	foldLower
	foldUpper
)

// heuristic fires when any of its patterns matches. Content is prefixed with
// a newline so "\n" in a pattern means "at the start of a line".
type heuristic struct {
	lang     string
	fold     fold
	patterns []*luapat.Pattern
}

func rule(lang string, f fold, patterns ...string) heuristic {
	h := heuristic{lang: lang, fold: f}
	for _, p := range patterns {
		h.patterns = append(h.patterns, luapat.MustCompile(p))
	}
	return h
}

//nolint:gochecknoglobals // Read-only table compiled once.
var heuristics = []heuristic{
	rule(LangGo, foldNone, "^%s*package%s+[%a_][%w_]*"),
	rule(LangPython, foldNone,
		"\n%s*def%s+[%a_][%w_]*%b():",
		"\nfrom%s+[%w_.]+%s+import%s",
		"__name__%s*==%s*['\"]__main__"),
	rule(LangHTML, foldLower, "<!doctype%s+html", "<html[%s>]", "<body[%s>]"),
	rule(LangJSON, foldNone, "^%s*{%s*\"", "^%s*%[%s*[{\"]"),
	rule(LangDockerfile, foldNone, "^%s*FROM%s+%S+", "\nWORKDIR%s+%S"),
	rule(LangSQL, foldUpper,
		"^%s*SELECT%s",
		"^%s*INSERT%s+INTO%s",
		"^%s*UPDATE%s+[%w_]+%s+SET%s",
		"^%s*DELETE%s+FROM%s",
		"^%s*CREATE%s+TABLE%s"),
	rule(LangRust, foldNone, "fn%s+main%s*%(%)", "println!%(", "let%s+mut%s", "\nuse%s+std::"),
	rule(LangJavaScript, foldNone,
		"console%.log%(",
		"%)%s*=>",
		"\n%s*const%s+[%w_$]+%s*=",
		"\n%s*function%s+[%w_$]*%s*%("),
}

//nolint:gochecknoglobals // Read-only patterns compiled once.
var (
	yamlKey  = luapat.MustCompile("^%s*[%w_%-]+:%s")
	yamlItem = luapat.MustCompile("^%s*%-%s+%S")
)

// classifierCandidates bounds the go-enry classifier to languages that
// commonly appear in documentation.
//
//nolint:gochecknoglobals // Read-only list.
var classifierCandidates = []string{
	"Go", "Python", "Shell", "JavaScript", "TypeScript",
	"Ruby", "Rust", "Java", "C", "C++", "SQL", "JSON",
	"YAML", "HTML", "CSS", "Dockerfile",
}

// Detect returns a fence language tag for content, or "" when unsure.
func Detect(content []byte) string {
	if len(strings.TrimSpace(string(content))) == 0 {
		return ""
	}

	if lang, safe := enry.GetLanguageByShebang(content); safe {
		return normalize(lang)
	}

	if lang := byHeuristic(string(content)); lang != "" {
		return lang
	}

	if lang, safe := enry.GetLanguageByClassifier(content, classifierCandidates); safe && lang != "" {
		return normalize(lang)
	}

	return ""
}

func byHeuristic(content string) string {
	subject := "\n" + content
	lower, upper := "", ""
	for _, h := range heuristics {
		s := subject
		switch h.fold {
		case foldLower:
			if lower == "" {
				lower = strings.ToLower(subject)
			}
			s = lower
		case foldUpper:
			if upper == "" {
				upper = strings.ToUpper(subject)
			}
			s = upper
		case foldNone:
		}
		for _, p := range h.patterns {
			if matches(p, s) {
				return h.lang
			}
		}
	}
	if looksLikeYAML(content) {
		return LangYAML
	}
	return ""
}

func matches(p *luapat.Pattern, s string) bool {
	_, ok, err := p.Find(s)
	return err == nil && ok
}

// looksLikeYAML counts key: value lines and list items, ignoring comments
// and lines that look like code.
func looksLikeYAML(content string) bool {
	count := 0
	for _, line := range strings.Split(content, "\n") {
		trimmed := strings.TrimSpace(line)
		if trimmed == "" || strings.HasPrefix(trimmed, "#") {
			continue
		}
		if strings.ContainsAny(trimmed, "({;") {
			continue
		}
		if matches(yamlKey, line) || matches(yamlItem, line) {
			count++
		}
	}
	return count >= 2
}

// normalize converts go-enry language names to fence tags.
func normalize(lang string) string {
	switch lang {
	case "Shell":
		return LangBash
	case "C++":
		return "cpp"
	}
	return strings.ToLower(lang)
}
