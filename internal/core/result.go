package core

// TaskStatus is the terminal outcome of one task.
type TaskStatus string

const (
	TaskOk      TaskStatus = "ok"
	TaskSkipped TaskStatus = "skipped"
	TaskDryRun  TaskStatus = "dry-run"
	TaskFailed  TaskStatus = "failed"
)

// Counts tallies resource outcomes inside a task.
type Counts struct {
	Correct int // already in the desired state
	Changed int // applied successfully
	DryRun  int // would have changed
	Skipped int // invalid precondition
	Failed  int // inspection or apply error
}

func (c *Counts) add(o Counts) {
	c.Correct += o.Correct
	c.Changed += o.Changed
	c.DryRun += o.DryRun
	c.Skipped += o.Skipped
	c.Failed += o.Failed
}

// TaskResult is what a task's Run returns.
type TaskResult struct {
	Task    string
	Status  TaskStatus
	Message string
	Err     error
	Counts  Counts
}

// Ok returns a successful result.
func Ok(msg string, counts Counts) TaskResult {
	return TaskResult{Status: TaskOk, Message: msg, Counts: counts}
}

// Skipped returns a result for a task that had nothing it could act on.
func Skipped(msg string, counts Counts) TaskResult {
	return TaskResult{Status: TaskSkipped, Message: msg, Counts: counts}
}

// DryRunResult returns a result for a task that would have changed something.
func DryRunResult(msg string, counts Counts) TaskResult {
	return TaskResult{Status: TaskDryRun, Message: msg, Counts: counts}
}

// Failure returns a failed result.
func Failure(err error, msg string, counts Counts) TaskResult {
	return TaskResult{Status: TaskFailed, Message: msg, Err: err, Counts: counts}
}
