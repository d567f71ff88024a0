package resources

import (
	"errors"
	"fmt"

	"github.com/melih-ucgun/yurt/internal/core"
)

// ErrInvalidPrecondition is returned by Apply when the resource is Invalid,
// e.g. its source is not checked out. The engine never calls Apply then.
var ErrInvalidPrecondition = errors.New("invalid precondition")

// recheck re-inspects a resource right before mutating it. done is true when
// it is already Correct.
func recheck(ctx *core.SystemContext, res core.Resource) (done bool, err error) {
	state, err := res.CurrentState(ctx)
	if err != nil {
		return false, err
	}
	switch state.Kind {
	case core.StateCorrect:
		return true, nil
	case core.StateInvalid:
		return false, fmt.Errorf("%s %s: %w: %s", res.GetType(), res.GetName(), ErrInvalidPrecondition, state.Reason)
	}
	return false, nil
}

// run executes a command and folds its output into the error.
func run(runner core.Runner, name string, args ...string) error {
	out, err := runner.CombinedOutput(name, args...)
	if err != nil {
		return commandError(name, args, out, err)
	}
	return nil
}

func commandError(name string, args []string, out string, err error) error {
	if out == "" {
		return fmt.Errorf("%s %v: %w", name, args, err)
	}
	return fmt.Errorf("%s %v: %w: %s", name, args, err, lastLine(out))
}
