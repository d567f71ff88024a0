package core

import (
	"fmt"
	"strconv"
	"time"

	"github.com/google/uuid"
)

// RunStats accumulates task outcomes for one run. It lives only as long as
// the process.
type RunStats struct {
	ID       string
	Started  time.Time
	Finished time.Time
	Results  []TaskResult
	Counts
}

func NewRunStats() *RunStats {
	return &RunStats{
		ID:      uuid.New().String(),
		Started: time.Now(),
	}
}

// Record appends a task result in execution order.
func (s *RunStats) Record(r TaskResult) {
	s.Results = append(s.Results, r)
	s.Counts.add(r.Counts)
}

func (s *RunStats) Finish() {
	s.Finished = time.Now()
}

// HasFailures is true iff any task ended Failed.
func (s *RunStats) HasFailures() bool {
	return len(s.FailedResults()) > 0
}

func (s *RunStats) FailedResults() []TaskResult {
	var out []TaskResult
	for _, r := range s.Results {
		if r.Status == TaskFailed {
			out = append(out, r)
		}
	}
	return out
}

// ExitCode is 0 iff no task failed.
func (s *RunStats) ExitCode() int {
	if s.HasFailures() {
		return 1
	}
	return 0
}

// Result returns the recorded result for a task name.
func (s *RunStats) Result(task string) (TaskResult, bool) {
	for _, r := range s.Results {
		if r.Task == task {
			return r, true
		}
	}
	return TaskResult{}, false
}

// SummaryRows renders one row per task plus a totals row, header first.
func (s *RunStats) SummaryRows() [][]string {
	rows := [][]string{{"Task", "Status", "Correct", "Changed", "Would change", "Skipped", "Failed"}}
	for _, r := range s.Results {
		rows = append(rows, countsRow(r.Task, string(r.Status), r.Counts))
	}
	rows = append(rows, countsRow("total", fmt.Sprintf("%d tasks", len(s.Results)), s.Counts))
	return rows
}

func countsRow(name, status string, c Counts) []string {
	return []string{
		name,
		status,
		strconv.Itoa(c.Correct),
		strconv.Itoa(c.Changed),
		strconv.Itoa(c.DryRun),
		strconv.Itoa(c.Skipped),
		strconv.Itoa(c.Failed),
	}
}
