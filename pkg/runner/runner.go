package runner

import (
	"context"
	"errors"
	"fmt"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/yaklabco/gojot/internal/logging"
	"github.com/yaklabco/gojot/pkg/fsutil"
)

// ErrOutputIsInput is returned for a file whose output path would
// overwrite the source itself.
var ErrOutputIsInput = errors.New("output path is the source file")

// Runner converts discovered files with a ConvertFunc.
type Runner struct {
	// Convert renders a single file.
	Convert ConvertFunc
}

// New creates a Runner that renders files with convert.
func New(convert ConvertFunc) *Runner {
	return &Runner{Convert: convert}
}

// Run discovers files under opts.Paths and converts them on up to
// opts.Jobs goroutines. A failing file is recorded in its outcome and does
// not stop the others. Outcomes are in discovery order.
func (r *Runner) Run(ctx context.Context, opts Options) (*Result, error) {
	files, err := Discover(ctx, opts)
	if err != nil {
		return nil, err
	}

	workDir, err := resolveWorkDir(opts.WorkingDir)
	if err != nil {
		return nil, fmt.Errorf("resolve working directory: %w", err)
	}

	result := &Result{Files: make([]FileOutcome, 0, len(files))}
	result.Stats.FilesDiscovered = len(files)

	if len(files) == 0 {
		return result, nil
	}

	jobs := opts.Jobs
	if jobs <= 0 {
		jobs = runtime.NumCPU()
	}
	jobs = min(jobs, len(files))

	logging.FromContext(ctx).Debug("converting files",
		logging.FieldFilesDiscovered, len(files),
		logging.FieldJobs, jobs,
	)

	// Each worker owns one slot, so outcomes keep discovery order.
	slots := make([]*FileOutcome, len(files))
	var group errgroup.Group
	group.SetLimit(jobs)
	for i, path := range files {
		if ctx.Err() != nil {
			break
		}
		group.Go(func() error {
			if ctx.Err() == nil {
				outcome := r.convertFile(ctx, path, workDir, opts)
				slots[i] = &outcome
			}
			return nil
		})
	}
	_ = group.Wait()

	for _, outcome := range slots {
		if outcome != nil {
			result.accumulate(*outcome, opts.DryRun)
		}
	}

	if err := ctx.Err(); err != nil {
		return result, fmt.Errorf("run cancelled: %w", err)
	}
	return result, nil
}

func (r *Runner) convertFile(ctx context.Context, path, workDir string, opts Options) FileOutcome {
	ctx = logging.WithFields(ctx, logging.FieldPath, path)
	logger := logging.FromContext(ctx)
	outcome := FileOutcome{Path: path, OutputPath: opts.OutputPath(workDir, path)}

	if outcome.OutputPath == path {
		outcome.Error = fmt.Errorf("%w: %s", ErrOutputIsInput, path)
		return outcome
	}

	content, info, err := fsutil.ReadFile(ctx, path)
	if err != nil {
		outcome.Error = err
		return outcome
	}
	outcome.BytesIn = len(content)

	out, err := r.Convert(ctx, path, content)
	if err != nil {
		outcome.Error = fmt.Errorf("convert %s: %w", path, err)
		return outcome
	}
	outcome.Bytes = len(out)

	if opts.DryRun {
		logger.Debug("dry run", logging.FieldOutput, outcome.OutputPath)
		return outcome
	}

	written, err := fsutil.WriteAtomicIfChanged(ctx, outcome.OutputPath, out, info.Mode.Perm())
	if err != nil {
		outcome.Error = fmt.Errorf("write %s: %w", outcome.OutputPath, err)
		return outcome
	}
	outcome.Written = written

	logger.Debug("converted",
		logging.FieldOutput, outcome.OutputPath,
		logging.FieldBytes, outcome.Bytes,
	)
	return outcome
}
