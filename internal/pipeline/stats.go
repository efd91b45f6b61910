package pipeline

// RunStats tracks what a run built and found.
type RunStats struct {
	Sources    int // Directories listed.
	Records    int // Image names in the table.
	Variants   int // Paths across all records.
	Overwrites int // Records replaced by a later source.
	Checked    int // Paths verified with --check.
	Missing    int // Verified paths that do not exist.
	Failed     bool
}

// Synthesized returns the number of paths that were derived rather than
// listed (everything except one original per record).
func (s *RunStats) Synthesized() int {
	return s.Variants - s.Records
}

// ExitCode maps the run outcome to a process exit status. With strict set,
// missing variants found by --check also fail the run.
func (s *RunStats) ExitCode(strict bool) int {
	if s.Failed || (strict && s.Missing > 0) {
		return 1
	}
	return 0
}
