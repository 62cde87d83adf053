package configloader

import (
	"fmt"
	"maps"
	"slices"
	"strconv"
	"strings"

	"github.com/yaklabco/gojot/pkg/config"
)

// envVarPrefix is the prefix for all gojot environment variables.
const envVarPrefix = "GOJOT_"

// envVar describes one supported environment variable.
type envVar struct {
	description string
	apply       func(cfg *config.Config, value string) error
}

func boolVar(field func(*config.Config) **bool) func(*config.Config, string) error {
	return func(cfg *config.Config, value string) error {
		b, err := strconv.ParseBool(value)
		if err != nil {
			return fmt.Errorf("invalid boolean %q (expected true/false/1/0)", value)
		}
		*field(cfg) = config.Bool(b)
		return nil
	}
}

// envVars maps environment variable names (without prefix) to config fields.
//
//nolint:gochecknoglobals // Read-only lookup table.
var envVars = map[string]envVar{
	"FORMAT": {
		description: "Output format: html or json",
		apply: func(cfg *config.Config, v string) error {
			cfg.Format = config.OutputFormat(v)
			return nil
		},
	},
	"JOBS": {
		description: "Number of parallel workers (0 = auto)",
		apply: func(cfg *config.Config, v string) error {
			n, err := strconv.Atoi(v)
			if err != nil {
				return fmt.Errorf("invalid integer %q", v)
			}
			cfg.Jobs = n
			return nil
		},
	},
	"OUT_DIR": {
		description: "Directory that receives rendered files",
		apply: func(cfg *config.Config, v string) error {
			cfg.OutDir = v
			return nil
		},
	},
	"EXTENSIONS": {
		description: "Comma-separated list of source extensions",
		apply: func(cfg *config.Config, v string) error {
			cfg.Extensions = parseSliceValue(v)
			return nil
		},
	},
	"IGNORE": {
		description: "Comma-separated list of ignore patterns",
		apply: func(cfg *config.Config, v string) error {
			cfg.Ignore = parseSliceValue(v)
			return nil
		},
	},
	"DETECT_LANGUAGE": {
		description: "Guess languages of unlabelled code blocks: true or false",
		apply:       boolVar(func(c *config.Config) **bool { return &c.DetectLanguage }),
	},
	"DEBUG_MATCHES": {
		description: "Log match streams at debug level: true or false",
		apply:       boolVar(func(c *config.Config) **bool { return &c.DebugMatches }),
	},
	"INDENT": {
		description: "Pretty-print JSON output: true or false",
		apply:       boolVar(func(c *config.Config) **bool { return &c.Indent }),
	},
	"FOLLOW_SYMLINKS": {
		description: "Traverse directory symlinks: true or false",
		apply:       boolVar(func(c *config.Config) **bool { return &c.FollowSymlinks }),
	},
}

// fromEnv collects GOJOT_* settings read through lookup into a config
// layer. Empty values are ignored.
func fromEnv(lookup func(string) (string, bool)) (*config.Config, error) {
	cfg := &config.Config{}
	for _, suffix := range slices.Sorted(maps.Keys(envVars)) {
		name := envVarPrefix + suffix
		value, ok := lookup(name)
		if !ok || value == "" {
			continue
		}
		if err := envVars[suffix].apply(cfg, value); err != nil {
			return nil, fmt.Errorf("%s: %w", name, err)
		}
	}
	return cfg, nil
}

// parseSliceValue parses a comma-separated string into trimmed elements.
func parseSliceValue(value string) []string {
	parts := strings.Split(value, ",")
	result := make([]string, 0, len(parts))
	for _, part := range parts {
		if trimmed := strings.TrimSpace(part); trimmed != "" {
			result = append(result, trimmed)
		}
	}
	return result
}

// ListEnvVars returns every supported environment variable with its
// description.
func ListEnvVars() map[string]string {
	out := make(map[string]string, len(envVars))
	for suffix, v := range envVars {
		out[envVarPrefix+suffix] = v.description
	}
	return out
}
