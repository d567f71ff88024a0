package profile

import (
	"errors"
	"fmt"
	"strings"

	"github.com/melih-ucgun/yurt/internal/category"
	"github.com/melih-ucgun/yurt/internal/config"
	"github.com/melih-ucgun/yurt/internal/core"
	"github.com/melih-ucgun/yurt/internal/state"
	"github.com/melih-ucgun/yurt/internal/system"
)

var (
	// ErrUnknownProfile is returned for a name the profile document does not declare.
	ErrUnknownProfile = errors.New("unknown profile")
	// ErrNoSelection is returned when no profile was given and none can be prompted for.
	ErrNoSelection = errors.New("no profile selected")
)

// Prompter asks the user to pick a profile.
type Prompter interface {
	Select(names []string) (string, error)
}

// Platform is the detection collaborator. Its verdicts override the profile.
type Platform interface {
	DetectedCategories() []category.Category
	MustExclude(c category.Category) bool
}

// Resolver turns a profile choice into the run's Profile.
type Resolver struct {
	Profiles *config.Profiles
	Store    state.Store
	Prompter Prompter
	Platform Platform
	// Key is the store key holding the persisted choice.
	Key string
	// Base is always active.
	Base category.Category
	// DryRun resolves without persisting the choice.
	DryRun bool
	// Logger may be nil.
	Logger core.Logger
}

// Resolve picks a name (CLI choice, then persisted choice, then the prompter),
// computes its categories and persists the name unless DryRun is set. Every
// failure is a resolution error; nothing is persisted on failure.
func (r *Resolver) Resolve(cliChoice string) (core.Profile, error) {
	name, source, err := r.choose(strings.TrimSpace(cliChoice))
	if err != nil {
		return core.Profile{}, core.ResolutionError(err, "select profile")
	}

	p, err := r.Compute(name)
	if err != nil {
		return core.Profile{}, core.ResolutionError(err, "resolve profile %q", name)
	}

	if !r.DryRun {
		if err := r.Store.Set(r.Key, name); err != nil {
			return core.Profile{}, core.ResolutionError(err, "persist profile %q", name)
		}
	}
	r.log().Debug("Profile resolved", "profile", name, "source", source, "active", p.Active.String())
	return p, nil
}

func (r *Resolver) choose(cliChoice string) (name, source string, err error) {
	if cliChoice != "" {
		return cliChoice, "flag", nil
	}

	persisted, err := r.Store.Get(r.Key)
	if err != nil {
		return "", "", fmt.Errorf("read persisted profile: %w", err)
	}
	if persisted = strings.TrimSpace(persisted); persisted != "" {
		return persisted, "persisted", nil
	}

	if r.Prompter == nil {
		return "", "", ErrNoSelection
	}
	names := r.Profiles.Names()
	if len(names) == 0 {
		return "", "", fmt.Errorf("%w: %s declares no profiles", ErrNoSelection, r.Profiles.Path)
	}
	picked, err := r.Prompter.Select(names)
	if err != nil {
		return "", "", err
	}
	return picked, "prompt", nil
}

// Compute builds the categories of a declared profile without persisting
// anything: base on, include added, exclude removed, then the platform
// override applied last.
func (r *Resolver) Compute(name string) (core.Profile, error) {
	def, ok := r.Profiles.Get(name)
	if !ok {
		return core.Profile{}, fmt.Errorf("%w %q (declared: %s)", ErrUnknownProfile, name, strings.Join(r.Profiles.Names(), ", "))
	}

	active := category.NewSet(r.Base)
	excluded := category.NewSet()

	for _, c := range def.Include {
		active.Add(c)
	}
	for _, c := range def.Exclude {
		active.Remove(c)
		excluded.Add(c)
	}
	// base cannot be excluded
	active.Add(r.Base)
	excluded.Remove(r.Base)

	// Platform detection wins over anything the profile said.
	for _, c := range r.Platform.DetectedCategories() {
		active.Add(c)
		excluded.Remove(c)
	}
	candidates := append(append(active.Sorted(), excluded.Sorted()...), system.PlatformCategories...)
	for _, c := range candidates {
		if r.Platform.MustExclude(c) {
			active.Remove(c)
			excluded.Add(c)
		}
	}

	return core.Profile{Name: name, Active: active, Excluded: excluded}, nil
}

func (r *Resolver) log() core.Logger {
	if r.Logger == nil {
		return core.NopLogger{}
	}
	return r.Logger
}
