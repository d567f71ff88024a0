package core

import (
	"errors"
	"fmt"
	"strings"
)

// Task is one step of a run. Tasks run strictly in the order given; later
// tasks may rely on the side effects of earlier ones.
type Task interface {
	Name() string
	// ShouldRun gates the whole task. A task that returns false is not
	// announced and leaves no result.
	ShouldRun(ctx *SystemContext) bool
	Run(ctx *SystemContext) TaskResult
}

// Engine runs tasks sequentially and never stops on a failed task.
type Engine struct {
	Context *SystemContext
}

// NewEngine creates a new engine instance.
func NewEngine(ctx *SystemContext) *Engine {
	return &Engine{Context: ctx}
}

// Run executes every task and returns the aggregated statistics. The run as
// a whole failed iff any TaskResult is Failed; check that on the stats.
func (e *Engine) Run(tasks []Task) *RunStats {
	stats := NewRunStats()
	log := e.Context.Logger.With("run", stats.ID)

	if e.Context.DryRun {
		log.Info("Dry run: no changes will be made")
	}

	for _, task := range tasks {
		if !task.ShouldRun(e.Context) {
			log.Trace("Task not applicable", "task", task.Name())
			continue
		}

		e.Context.UI.Section(task.Name())
		result := e.runTask(task)
		result.Task = task.Name()
		stats.Record(result)

		switch result.Status {
		case TaskFailed:
			log.Error(fmt.Sprintf("[%s] Failed: %v", task.Name(), result.Err))
		case TaskSkipped:
			log.Debug(fmt.Sprintf("[%s] Skipped: %s", task.Name(), result.Message))
		default:
			log.Info(fmt.Sprintf("[%s] %s: %s", task.Name(), result.Status, result.Message))
		}
	}

	stats.Finish()
	return stats
}

// runTask turns a panicking task into a failed result so the run goes on.
func (e *Engine) runTask(task Task) (result TaskResult) {
	defer func() {
		if r := recover(); r != nil {
			result = Failure(fmt.Errorf("task panicked: %v", r), "aborted", Counts{Failed: 1})
		}
	}()
	return task.Run(e.Context)
}

// Filter applies --only and --skip selections by task name. Unknown names are
// rejected so that typos do not silently run everything.
func Filter(tasks []Task, only, skip []string) ([]Task, error) {
	known := make(map[string]bool, len(tasks))
	for _, t := range tasks {
		known[t.Name()] = true
	}
	for _, name := range append(append([]string{}, only...), skip...) {
		if !known[name] {
			return nil, fmt.Errorf("unknown task %q (known: %s)", name, strings.Join(taskNames(tasks), ", "))
		}
	}

	onlySet := toSet(only)
	skipSet := toSet(skip)

	var out []Task
	for _, t := range tasks {
		if len(onlySet) > 0 && !onlySet[t.Name()] {
			continue
		}
		if skipSet[t.Name()] {
			continue
		}
		out = append(out, t)
	}
	return out, nil
}

func taskNames(tasks []Task) []string {
	names := make([]string, len(tasks))
	for i, t := range tasks {
		names[i] = t.Name()
	}
	return names
}

func toSet(values []string) map[string]bool {
	out := make(map[string]bool, len(values))
	for _, v := range values {
		out[v] = true
	}
	return out
}

// TaskMode selects what a ResourceTask does with each resource.
type TaskMode int

const (
	// ModeApply drives every resource towards its desired state.
	ModeApply TaskMode = iota
	// ModeRemove undoes resources that are currently correct.
	ModeRemove
)

// ResourceTask runs the same reconcile loop over all resources of one domain.
type ResourceTask struct {
	TaskName  string
	Resources []Resource
	// LoadErr is set when the domain's document could not be loaded. The task
	// then fails without touching anything.
	LoadErr error
	Mode    TaskMode
}

func (t *ResourceTask) Name() string {
	return t.TaskName
}

func (t *ResourceTask) ShouldRun(ctx *SystemContext) bool {
	return t.LoadErr != nil || len(t.Resources) > 0
}

func (t *ResourceTask) Run(ctx *SystemContext) TaskResult {
	if t.LoadErr != nil {
		return Failure(t.LoadErr, "configuration could not be loaded", Counts{Failed: 1})
	}

	var counts Counts
	var errs []error

	for _, res := range t.Resources {
		log := ctx.Logger.With("task", t.TaskName, "type", res.GetType(), "resource", res.GetName())

		state, err := res.CurrentState(ctx)
		if err != nil {
			counts.Failed++
			errs = append(errs, InspectionError(err, "%s %s", res.GetType(), res.GetName()))
			log.Error(fmt.Sprintf("[%s] Inspection failed: %v", res.GetName(), err))
			continue
		}

		var outcome error
		switch t.Mode {
		case ModeRemove:
			outcome = t.remove(ctx, log, res, state, &counts)
		default:
			outcome = t.reconcile(ctx, log, res, state, &counts)
		}
		if outcome != nil {
			errs = append(errs, outcome)
		}
	}

	msg := counts.String()
	switch {
	case len(errs) > 0:
		return Failure(errors.Join(errs...), msg, counts)
	case counts.DryRun > 0:
		return DryRunResult(msg, counts)
	case counts.Skipped == len(t.Resources):
		return Skipped(msg, counts)
	default:
		return Ok(msg, counts)
	}
}

func (t *ResourceTask) reconcile(ctx *SystemContext, log Logger, res Resource, state State, counts *Counts) error {
	switch {
	case state.Kind == StateCorrect:
		counts.Correct++
		log.Trace(fmt.Sprintf("[%s] OK", res.GetName()))
		return nil
	case !state.NeedsApply():
		counts.Skipped++
		log.Debug(fmt.Sprintf("[%s] Skipped: %s", res.GetName(), state.Reason))
		return nil
	}

	if ctx.DryRun {
		counts.DryRun++
		log.Info(fmt.Sprintf("[DryRun] %s %s is %s", res.GetType(), res.GetName(), state))
		if differ, ok := res.(Differ); ok {
			if d, err := differ.Diff(ctx); err == nil && d != "" {
				ctx.UI.Diff(d)
			}
		}
		return nil
	}

	if err := res.Apply(ctx); err != nil {
		counts.Failed++
		log.Error(fmt.Sprintf("[%s] Failed: %v", res.GetName(), err))
		return ApplyError(err, "%s %s", res.GetType(), res.GetName())
	}
	counts.Changed++
	log.Info(fmt.Sprintf("[%s] %s: was %s", res.GetType(), res.GetName(), state))
	return nil
}

func (t *ResourceTask) remove(ctx *SystemContext, log Logger, res Resource, state State, counts *Counts) error {
	remover, ok := res.(Remover)
	switch {
	case state.Kind == StateInvalid || !ok:
		counts.Skipped++
		return nil
	case state.Kind != StateCorrect:
		// Not ours (or already gone): nothing to undo.
		counts.Correct++
		log.Trace(fmt.Sprintf("[%s] Not managed, leaving as is", res.GetName()))
		return nil
	}

	if ctx.DryRun {
		counts.DryRun++
		log.Info(fmt.Sprintf("[DryRun] Would remove %s %s", res.GetType(), res.GetName()))
		return nil
	}

	if err := remover.Remove(ctx); err != nil {
		counts.Failed++
		log.Error(fmt.Sprintf("[%s] Remove failed: %v", res.GetName(), err))
		return ApplyError(err, "remove %s %s", res.GetType(), res.GetName())
	}
	counts.Changed++
	log.Info(fmt.Sprintf("[%s] Removed %s", res.GetType(), res.GetName()))
	return nil
}

func (c Counts) String() string {
	return fmt.Sprintf("%d correct, %d changed, %d would change, %d skipped, %d failed",
		c.Correct, c.Changed, c.DryRun, c.Skipped, c.Failed)
}
