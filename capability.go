// FILE: lixenwraith/petmaster/capability.go
package petmaster

import (
	"fmt"
	"maps"
	"slices"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"
)

// Requirement gates a feature flag on the runtime environment.
type Requirement struct {
	// Flag is the settings key that needs the dependency.
	Flag string

	// Needs is a boolean expression over `plugins` and `services` ([]string),
	// e.g. `"HolographicDisplays" in plugins`.
	Needs string

	// Fallback is forced on when Flag is forced off. Optional.
	Fallback string

	// Warning is reported when the requirement downgrades Flag.
	Warning string

	// Degrades marks the run Degraded when the requirement fires.
	Degrades bool
}

// Environment lists the optional dependencies detected on the host.
type Environment struct {
	Plugins  []string
	Services []string
}

// Resolution is the outcome of Resolve.
type Resolution struct {
	Flags    map[string]bool
	Warnings []string
	Missing  []error // *DependencyError, one per downgraded flag
	Degraded bool
}

// Names of the optional dependencies probed by default.
const (
	PluginHolographicDisplays = "HolographicDisplays"
	ServiceEconomy            = "economy"
)

// DefaultRequirements returns the feature gates applied to Settings.
func DefaultRequirements() []Requirement {
	return []Requirement{
		{
			Flag:     KeyHologramMessage,
			Needs:    fmt.Sprintf("%q in plugins", PluginHolographicDisplays),
			Fallback: KeyActionBarMessage,
			Warning:  "HolographicDisplays was not found; disabling usage of holograms and enabling action bar messages.",
			Degrades: true,
		},
		{
			Flag:    KeyPayments,
			Needs:   fmt.Sprintf("%q in services", ServiceEconomy),
			Warning: "Attempt to hook up with Vault failed. Payment ignored.",
		},
	}
}

// Resolve forces off every enabled flag whose requirement does not hold in env.
// It is a pure function: flags is not modified and the result depends only on its inputs.
// Requirements are applied in order. An error is returned only for an invalid expression.
func Resolve(flags map[string]bool, env Environment, reqs []Requirement) (Resolution, error) {
	res := Resolution{Flags: maps.Clone(flags)}
	if res.Flags == nil {
		res.Flags = make(map[string]bool)
	}
	vars := env.vars()

	for _, req := range reqs {
		if !res.Flags[req.Flag] {
			continue
		}

		program, err := compileRequirement(req)
		if err != nil {
			return Resolution{}, err
		}
		out, err := expr.Run(program, vars)
		if err != nil {
			return Resolution{}, fmt.Errorf("requirement for %q failed to evaluate: %w", req.Flag, err)
		}
		if satisfied, _ := out.(bool); satisfied {
			continue
		}

		res.Flags[req.Flag] = false
		if req.Fallback != "" {
			res.Flags[req.Fallback] = true
		}
		if req.Warning != "" {
			res.Warnings = append(res.Warnings, req.Warning)
		}
		res.Missing = append(res.Missing, &DependencyError{Flag: req.Flag, Needs: req.Needs})
		if req.Degrades {
			res.Degraded = true
		}
	}
	return res, nil
}

// ValidateRequirements compiles every expression without evaluating it.
func ValidateRequirements(reqs []Requirement) error {
	for _, req := range reqs {
		if _, err := compileRequirement(req); err != nil {
			return err
		}
	}
	return nil
}

func compileRequirement(req Requirement) (*vm.Program, error) {
	if req.Flag == "" {
		return nil, fmt.Errorf("requirement has no flag")
	}
	program, err := expr.Compile(req.Needs, expr.Env(Environment{}.vars()), expr.AsBool())
	if err != nil {
		return nil, fmt.Errorf("invalid requirement for %q: %w", req.Flag, err)
	}
	return program, nil
}

func (e Environment) vars() map[string]any {
	plugins := e.Plugins
	if plugins == nil {
		plugins = []string{}
	}
	services := e.Services
	if services == nil {
		services = []string{}
	}
	return map[string]any{
		"plugins":  plugins,
		"services": services,
	}
}

// Registry is the host's view of installed plugins and registered services.
type Registry interface {
	PluginEnabled(name string) bool
	ServiceRegistered(name string) bool
}

// Probes names the dependencies Detect looks up.
type Probes struct {
	Plugins  []string
	Services []string
}

// DefaultProbes returns the dependencies referenced by DefaultRequirements.
func DefaultProbes() Probes {
	return Probes{
		Plugins:  []string{PluginHolographicDisplays},
		Services: []string{ServiceEconomy},
	}
}

// Detect asks reg for every probed name. A nil reg detects nothing.
func Detect(reg Registry, probes Probes) Environment {
	env := Environment{Plugins: []string{}, Services: []string{}}
	if reg == nil {
		return env
	}
	for _, name := range probes.Plugins {
		if reg.PluginEnabled(name) {
			env.Plugins = append(env.Plugins, name)
		}
	}
	for _, name := range probes.Services {
		if reg.ServiceRegistered(name) {
			env.Services = append(env.Services, name)
		}
	}
	return env
}

// StaticRegistry is a Registry backed by fixed lists.
type StaticRegistry struct {
	Plugins  []string
	Services []string
}

func (r StaticRegistry) PluginEnabled(name string) bool {
	return slices.Contains(r.Plugins, name)
}

func (r StaticRegistry) ServiceRegistered(name string) bool {
	return slices.Contains(r.Services, name)
}
