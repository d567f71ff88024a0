package core

import (
	"errors"
	"os/exec"
	"strings"
)

// Runner runs external commands. Tests swap it for a fake so no adapter ever
// shells out during a test run.
type Runner interface {
	// CombinedOutput runs name with args and returns stdout and stderr together.
	CombinedOutput(name string, args ...string) (string, error)
	// RunWithInput runs the command with stdin fed from input.
	RunWithInput(input string, name string, args ...string) (string, error)
	// LookPath reports whether name is an executable on PATH.
	LookPath(name string) bool
}

// RealRunner implements Runner using os/exec.
type RealRunner struct {
	// Dir is the working directory for every command; empty means the current one.
	Dir string
}

func (r *RealRunner) CombinedOutput(name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = r.Dir
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (r *RealRunner) RunWithInput(input string, name string, args ...string) (string, error) {
	cmd := exec.Command(name, args...)
	cmd.Dir = r.Dir
	cmd.Stdin = strings.NewReader(input)
	out, err := cmd.CombinedOutput()
	return string(out), err
}

func (r *RealRunner) LookPath(name string) bool {
	_, err := exec.LookPath(name)
	return err == nil
}

// ExitCode extracts the process exit code from err, or -1 when the command
// did not run at all.
func ExitCode(err error) int {
	var coded interface{ ExitCode() int }
	if errors.As(err, &coded) {
		return coded.ExitCode()
	}
	return -1
}
