package lint

import (
	"cmp"
	"fmt"
	"slices"
	"sync"
)

// Registry is a caller-constructed catalogue of rules keyed by name.
// There is no process-wide registry; build one per program (see
// rules.NewRegistry) and pass it where it is needed.
type Registry struct {
	mu     sync.RWMutex
	byName map[string]Rule
}

// NewRegistry creates a registry holding rules.
// It panics if two rules share a name.
func NewRegistry(rules ...Rule) *Registry {
	r := &Registry{byName: make(map[string]Rule, len(rules))}
	for _, rule := range rules {
		if err := r.Register(rule); err != nil {
			panic(err)
		}
	}
	return r
}

// Register adds a rule. Registering a second rule with the same name is an
// error.
func (r *Registry) Register(rule Rule) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, dup := r.byName[rule.Name()]; dup {
		return fmt.Errorf("rule %q already registered", rule.Name())
	}
	r.byName[rule.Name()] = rule
	return nil
}

// Get retrieves a rule by name.
func (r *Registry) Get(name string) (Rule, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	rule, ok := r.byName[name]
	return rule, ok
}

// Has reports whether a rule with the given name is registered. It is
// suitable as Engine.Known.
func (r *Registry) Has(name string) bool {
	_, ok := r.Get(name)
	return ok
}

// Rules returns all registered rules sorted by name.
func (r *Registry) Rules() []Rule {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]Rule, 0, len(r.byName))
	for _, rule := range r.byName {
		result = append(result, rule)
	}
	slices.SortFunc(result, func(a, b Rule) int {
		return cmp.Compare(a.Name(), b.Name())
	})
	return result
}

// Names returns all registered rule names in sorted order.
func (r *Registry) Names() []string {
	rules := r.Rules()
	names := make([]string, len(rules))
	for i, rule := range rules {
		names[i] = rule.Name()
	}
	return names
}

// Len returns the number of registered rules.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.byName)
}
