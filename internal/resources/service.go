package resources

import (
	"fmt"
	"strings"

	"github.com/melih-ucgun/yurt/internal/core"
)

const TypeUnit = "unit"

// UnitResource is a systemd unit that must be enabled. User units are
// managed with systemctl --user.
type UnitResource struct {
	core.BaseResource
	User bool
	Sudo bool
}

func NewUnit(name string, user, sudo bool) *UnitResource {
	return &UnitResource{
		BaseResource: core.BaseResource{Name: name, Type: TypeUnit},
		User:         user,
		Sudo:         sudo && !user,
	}
}

func (r *UnitResource) args(verb string) []string {
	if r.User {
		return []string{"--user", verb, r.Name}
	}
	return []string{verb, r.Name}
}

func (r *UnitResource) CurrentState(ctx *core.SystemContext) (core.State, error) {
	if !ctx.Runner.LookPath("systemctl") {
		return core.Invalid("systemctl is not available"), nil
	}

	// is-enabled prints the state and exits non-zero for anything but
	// enabled, so the output matters more than the exit code.
	out, err := ctx.Runner.CombinedOutput("systemctl", r.args("is-enabled")...)
	current := firstLine(out)
	if err != nil && current == "" {
		return core.State{}, commandError("systemctl", r.args("is-enabled"), out, err)
	}

	switch {
	case current == "enabled" || current == "static" || current == "alias" || current == "enabled-runtime":
		return core.Correct(), nil
	case current == "not-found" || strings.Contains(current, "No such file"):
		return core.Invalid(fmt.Sprintf("unit %s is not installed", r.Name)), nil
	default:
		return core.Incorrect(current), nil
	}
}

func (r *UnitResource) Apply(ctx *core.SystemContext) error {
	done, err := recheck(ctx, r)
	if err != nil || done {
		return err
	}
	cmd, args := privileged(r.Sudo, "systemctl", r.args("enable")...)
	return run(ctx.Runner, cmd, args...)
}

func firstLine(out string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(out), "\n")
	return strings.TrimSpace(line)
}
