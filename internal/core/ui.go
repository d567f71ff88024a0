package core

import "io"

// UI defines the interface for user-facing output, separate from logging.
type UI interface {
	// Section prints a stage header for a task.
	Section(title string)
	// Title prints a main title.
	Title(title string)
	Success(msg string)
	Info(msg string)
	Warning(msg string)
	Error(msg string)
	// Table renders rows, the first one being the header.
	Table(rows [][]string)
	// Diff prints a pre-rendered diff block.
	Diff(diff string)
	Println(args ...interface{})
	// WithWriter returns a new UI instance writing to the specified writer.
	WithWriter(w io.Writer) UI
}
