// Package checkregistry maps the string identifiers a pipeline
// configuration references checks by (e.g. "security/secscan") to
// constructor functions, so configuration deserialization never needs
// runtime type reflection.
package checkregistry

import (
	"fmt"

	"github.com/hexvalidate/hex-validate/internal/checkapi"
)

// Constructor builds a Check from a configuration's free-form options map.
type Constructor func(options map[string]any) (checkapi.Check, error)

// Registry is a string-identifier -> Constructor map.
type Registry struct {
	constructors map[string]Constructor
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{constructors: make(map[string]Constructor)}
}

// Register associates identifier with a constructor. Re-registering the
// same identifier overwrites the prior entry; registration order is
// caller-controlled at process init, not a race between goroutines, so
// last-writer-wins is an acceptable and simple policy here.
func (r *Registry) Register(identifier string, ctor Constructor) {
	r.constructors[identifier] = ctor
}

// Build constructs the check registered under identifier, passing through
// options.
func (r *Registry) Build(identifier string, options map[string]any) (checkapi.Check, error) {
	ctor, ok := r.constructors[identifier]
	if !ok {
		return nil, fmt.Errorf("checkregistry: unknown check %q", identifier)
	}
	return ctor(options)
}

// Known reports whether identifier has a registered constructor.
func (r *Registry) Known(identifier string) bool {
	_, ok := r.constructors[identifier]
	return ok
}
