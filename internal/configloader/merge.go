package configloader

import (
	"slices"

	"github.com/yaklabco/gojot/pkg/config"
)

// merge combines two configurations, with override taking precedence:
//   - scalars: override wins when non-zero
//   - optional booleans: override wins when set, so a later layer can
//     turn a setting off again
//   - slices: override replaces base entirely when non-nil
func merge(base, override *config.Config) *config.Config {
	if base == nil {
		return override
	}
	if override == nil {
		return base
	}

	result := base.Clone()

	if override.Format != "" {
		result.Format = override.Format
	}
	if override.OutDir != "" {
		result.OutDir = override.OutDir
	}
	if override.Jobs != 0 {
		result.Jobs = override.Jobs
	}
	if override.DryRun {
		result.DryRun = true
	}

	mergeBool(&result.DetectLanguage, override.DetectLanguage)
	mergeBool(&result.DebugMatches, override.DebugMatches)
	mergeBool(&result.Indent, override.Indent)
	mergeBool(&result.FollowSymlinks, override.FollowSymlinks)

	if override.Extensions != nil {
		result.Extensions = slices.Clone(override.Extensions)
	}
	if override.Ignore != nil {
		result.Ignore = slices.Clone(override.Ignore)
	}

	return result
}

func mergeBool(dst **bool, override *bool) {
	if override != nil {
		*dst = config.Bool(*override)
	}
}

// MergeAll merges configurations in order, later ones taking precedence.
func MergeAll(configs ...*config.Config) *config.Config {
	if len(configs) == 0 {
		return nil
	}

	result := configs[0]
	for _, cfg := range configs[1:] {
		result = merge(result, cfg)
	}
	return result
}
