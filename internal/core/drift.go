package core

import "fmt"

// DriftStatus represents the sync state of a resource
type DriftStatus string

const (
	StatusSynced  DriftStatus = "Synced"
	StatusDrifted DriftStatus = "Drifted"
	StatusSkipped DriftStatus = "Skipped"
	StatusError   DriftStatus = "Error"
)

// DriftResult holds the result of a single resource check
type DriftResult struct {
	Task   string
	Type   string
	Name   string
	Status DriftStatus
	Detail string
}

// Inspectable is implemented by tasks whose resources can be audited without
// running them.
type Inspectable interface {
	Inspect(ctx *SystemContext) []DriftResult
}

// Audit inspects every resource of every applicable task, in order, without
// mutating anything.
func Audit(tasks []Task, ctx *SystemContext) []DriftResult {
	var results []DriftResult
	for _, task := range tasks {
		if !task.ShouldRun(ctx) {
			continue
		}
		if in, ok := task.(Inspectable); ok {
			results = append(results, in.Inspect(ctx)...)
		}
	}
	return results
}

func (t *ResourceTask) Inspect(ctx *SystemContext) []DriftResult {
	if t.LoadErr != nil {
		return []DriftResult{{
			Task:   t.TaskName,
			Type:   "document",
			Name:   t.TaskName,
			Status: StatusError,
			Detail: t.LoadErr.Error(),
		}}
	}

	results := make([]DriftResult, 0, len(t.Resources))
	for _, res := range t.Resources {
		r := DriftResult{Task: t.TaskName, Type: res.GetType(), Name: res.GetName()}

		state, err := res.CurrentState(ctx)
		switch {
		case err != nil:
			r.Status = StatusError
			r.Detail = err.Error()
		case state.Kind == StateCorrect:
			r.Status = StatusSynced
		case state.Kind == StateInvalid:
			r.Status = StatusSkipped
			r.Detail = state.Reason
		default:
			r.Status = StatusDrifted
			r.Detail = state.String()
		}
		results = append(results, r)
	}
	return results
}

// AuditHasErrors reports whether any result is an Error.
func AuditHasErrors(results []DriftResult) bool {
	for _, r := range results {
		if r.Status == StatusError {
			return true
		}
	}
	return false
}

// AuditRows renders drift results for a UI table, header first.
func AuditRows(results []DriftResult) [][]string {
	rows := [][]string{{"Task", "Type", "Name", "Status", "Detail"}}
	for _, r := range results {
		rows = append(rows, []string{r.Task, r.Type, r.Name, string(r.Status), r.Detail})
	}
	return rows
}

func (r DriftResult) String() string {
	return fmt.Sprintf("%s/%s %s: %s", r.Task, r.Type, r.Name, r.Status)
}
