// Package configloader resolves the effective gojot configuration from
// defaults, config files, GOJOT_* environment variables and flags.
package configloader

import (
	"context"
	"fmt"
	"os"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/config"
)

// LoadOptions controls which layers Load reads.
type LoadOptions struct {
	// WorkingDir anchors the project config search. Empty means os.Getwd.
	WorkingDir string

	// ExplicitPath is the --config file. It must exist.
	ExplicitPath string

	IgnoreSystemConfig  bool
	IgnoreUserConfig    bool
	IgnoreProjectConfig bool
	IgnoreEnv           bool

	// LookupEnv reads environment variables. Nil means os.LookupEnv.
	LookupEnv func(key string) (string, bool)

	// CLIConfig holds values from command-line flags, the top layer.
	CLIConfig *config.Config
}

// LoadResult is the merged configuration and where it came from.
type LoadResult struct {
	Config     *config.Config
	Paths      *ConfigPaths
	LoadedFrom []string // config files read, lowest precedence first
	Warnings   []string
}

// layer is one source of settings. read returns nil when the layer
// contributes nothing.
type layer struct {
	name string
	path string
	read func() (*config.Config, error)
}

// Load merges, from lowest to highest precedence: defaults, the system,
// user, project and explicit config files, GOJOT_* variables, then
// opts.CLIConfig. Each file is validated on its own so errors name it;
// the merged result is validated again.
func Load(ctx context.Context, opts LoadOptions) (*LoadResult, error) {
	workDir := opts.WorkingDir
	if workDir == "" {
		wd, err := os.Getwd()
		if err != nil {
			return nil, fmt.Errorf("get working directory: %w", err)
		}
		workDir = wd
	}

	paths, err := DiscoverPaths(ctx, workDir)
	if err != nil {
		return nil, fmt.Errorf("discover paths: %w", err)
	}
	paths.Explicit = opts.ExplicitPath

	result := &LoadResult{Paths: paths}
	cfg := config.NewConfig()
	logger := logging.FromContext(ctx)

	for _, l := range layers(paths, opts) {
		layerCfg, err := l.read()
		if err != nil {
			return nil, fmt.Errorf("load %s config: %w", l.name, err)
		}
		if layerCfg == nil {
			continue
		}
		if l.path != "" {
			if err := result.check(ValidateWithFile(layerCfg, l.path)); err != nil {
				return nil, err
			}
			result.LoadedFrom = append(result.LoadedFrom, l.path)
			logger.Debug("loaded config", logging.FieldConfig, l.path)
		}
		cfg = merge(cfg, layerCfg)
	}

	if err := result.check(Validate(cfg)); err != nil {
		return nil, err
	}
	result.Config = cfg
	return result, nil
}

func layers(paths *ConfigPaths, opts LoadOptions) []layer {
	file := func(name, path string, skip bool) layer {
		return layer{name: name, path: path, read: func() (*config.Config, error) {
			if skip || path == "" {
				return nil, nil
			}
			return loadConfigFile(path)
		}}
	}

	return []layer{
		file("system", paths.System, opts.IgnoreSystemConfig),
		file("user", paths.User, opts.IgnoreUserConfig),
		file("project", paths.Project, opts.IgnoreProjectConfig),
		file("explicit", paths.Explicit, false),
		{name: "environment", read: func() (*config.Config, error) {
			if opts.IgnoreEnv {
				return nil, nil
			}
			lookup := opts.LookupEnv
			if lookup == nil {
				lookup = os.LookupEnv
			}
			return fromEnv(lookup)
		}},
		{name: "flag", read: func() (*config.Config, error) { return opts.CLIConfig, nil }},
	}
}

// check records warnings and returns the first error, if any.
func (r *LoadResult) check(v *ValidationResult) error {
	if !v.Valid() {
		return &v.Errors[0]
	}
	r.Warnings = append(r.Warnings, v.warningMessages("")...)
	return nil
}

func loadConfigFile(path string) (*config.Config, error) {
	content, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read file: %w", err)
	}
	cfg, err := config.FromYAML(content)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return cfg, nil
}
