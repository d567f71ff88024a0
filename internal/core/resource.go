package core

// Resource is one inspectable, mutable target with a desired state.
//
// CurrentState must not mutate anything; ordinary divergence is reported as
// Incorrect, never as an error. Apply performs the minimal change to reach the
// desired state and re-inspects first instead of trusting an earlier check.
type Resource interface {
	GetName() string
	GetType() string
	CurrentState(ctx *SystemContext) (State, error)
	Apply(ctx *SystemContext) error
}

// Remover is implemented by resources that can undo what Apply created.
// Uninstall runs only against these.
type Remover interface {
	Remove(ctx *SystemContext) error
}

// BaseResource holds common fields.
type BaseResource struct {
	Name string
	Type string
}

func (b *BaseResource) GetName() string {
	return b.Name
}

func (b *BaseResource) GetType() string {
	return b.Type
}

// Differ is implemented by resources that can render what Apply would change.
type Differ interface {
	Diff(ctx *SystemContext) (string, error)
}
