package resources

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/melih-ucgun/yurt/internal/core"
)

const TypeRegistry = "registry"

// RegistryResource is one Windows registry value, read with reg query and
// written with reg add.
type RegistryResource struct {
	core.BaseResource
	Key       string
	ValueName string
	ValueType string
	Value     string
}

func NewRegistry(key, name, typ, value string) *RegistryResource {
	return &RegistryResource{
		BaseResource: core.BaseResource{Name: key + `\` + name, Type: TypeRegistry},
		Key:          key,
		ValueName:    name,
		ValueType:    typ,
		Value:        value,
	}
}

func (r *RegistryResource) CurrentState(ctx *core.SystemContext) (core.State, error) {
	if ctx.Platform == nil || !ctx.Platform.IsWindows() {
		return core.Invalid("the registry only exists on Windows"), nil
	}

	args := []string{"query", r.Key, "/v", r.ValueName}
	out, err := ctx.Runner.CombinedOutput("reg", args...)
	if err != nil {
		// reg exits 1 when the key or value does not exist
		if core.ExitCode(err) == 1 {
			return core.Missing(), nil
		}
		return core.State{}, commandError("reg", args, out, err)
	}

	typ, value, ok := parseRegQuery(out, r.ValueName)
	if !ok {
		return core.Missing(), nil
	}
	if typ == r.ValueType && r.sameValue(value) {
		return core.Correct(), nil
	}
	return core.Incorrect(fmt.Sprintf("%s %s", typ, value)), nil
}

func (r *RegistryResource) sameValue(current string) bool {
	if r.ValueType != "REG_DWORD" {
		return current == r.Value
	}
	// reg prints DWORDs as 0x-prefixed hex
	have, err1 := strconv.ParseUint(current, 0, 32)
	want, err2 := strconv.ParseUint(r.Value, 0, 32)
	return err1 == nil && err2 == nil && have == want
}

// parseRegQuery finds "<name>    <type>    <value>" in reg query output.
func parseRegQuery(out, name string) (typ, value string, ok bool) {
	for _, line := range strings.Split(out, "\n") {
		fields := strings.Fields(line)
		for i, f := range fields {
			if !strings.HasPrefix(f, "REG_") || i == 0 {
				continue
			}
			if !strings.EqualFold(strings.Join(fields[:i], " "), name) {
				break
			}
			return f, strings.Join(fields[i+1:], " "), true
		}
	}
	return "", "", false
}

func (r *RegistryResource) Apply(ctx *core.SystemContext) error {
	done, err := recheck(ctx, r)
	if err != nil || done {
		return err
	}
	return run(ctx.Runner, "reg", "add", r.Key, "/v", r.ValueName, "/t", r.ValueType, "/d", r.Value, "/f")
}
