package runner

// FileOutcome records what happened to one source file.
type FileOutcome struct {
	// Path is the source file path.
	Path string

	// OutputPath is where the output was (or would have been) written.
	OutputPath string

	// BytesIn is the size of the source.
	BytesIn int

	// Bytes is the size of the rendered output.
	Bytes int

	// Written is true when the output file was created or changed.
	Written bool

	// Error is set if the file could not be converted or written.
	Error error
}

// Stats captures aggregate information about a run.
type Stats struct {
	// FilesDiscovered is the total number of files found during discovery.
	FilesDiscovered int

	// FilesConverted is the number of files rendered without error.
	FilesConverted int

	// FilesWritten is the number of output files created or changed.
	FilesWritten int

	// FilesUnchanged is the number of outputs that already held the
	// rendered content.
	FilesUnchanged int

	// FilesErrored is the number of files that encountered errors.
	FilesErrored int

	// BytesIn is the total size of converted sources.
	BytesIn int64

	// BytesOut is the total size of rendered output.
	BytesOut int64
}

// Result is the overall runner result.
type Result struct {
	// Files contains the outcome for each processed file, ordered by path.
	Files []FileOutcome

	// Stats contains aggregate statistics for the run.
	Stats Stats
}

// HasErrors reports whether any file failed.
func (r *Result) HasErrors() bool {
	if r == nil {
		return false
	}
	return r.Stats.FilesErrored > 0
}

// accumulate updates the result with a file outcome.
func (r *Result) accumulate(outcome FileOutcome, dryRun bool) {
	r.Files = append(r.Files, outcome)

	if outcome.Error != nil {
		r.Stats.FilesErrored++
		return
	}

	r.Stats.FilesConverted++
	r.Stats.BytesIn += int64(outcome.BytesIn)
	r.Stats.BytesOut += int64(outcome.Bytes)

	switch {
	case outcome.Written:
		r.Stats.FilesWritten++
	case !dryRun:
		r.Stats.FilesUnchanged++
	}
}
