// SPDX-License-Identifier: MPL-2.0

package runner

import (
	"errors"
	"fmt"
	"maps"

	"uvs-cli/pkg/uvsfile"
)

// ErrCyclicReference is the sentinel error wrapped by CyclicReferenceError.
var ErrCyclicReference = errors.New("cyclic script reference")

type (
	// Step is one concrete command line plus the environment overlay it
	// executes with. Steps are ephemeral: produced by Resolve, consumed by
	// Runner.Run, never persisted.
	Step struct {
		Command string
		Env     map[string]string
	}

	// CyclicReferenceError reports the script at which resolution re-entered
	// its own expansion path.
	CyclicReferenceError struct {
		Script string
	}
)

// Error implements the error interface.
func (e *CyclicReferenceError) Error() string {
	return fmt.Sprintf("circular reference detected: %s", e.Script)
}

// Unwrap returns ErrCyclicReference so callers can use errors.Is for
// programmatic detection.
func (e *CyclicReferenceError) Unwrap() error { return ErrCyclicReference }

// Resolve flattens target into the ordered list of steps to execute.
//
// Composite entries that match a registry key are expanded in place,
// carrying the referenced script's own environment; all other entries are
// literal command lines carrying the enclosing script's environment. A
// script that transitively references itself yields a CyclicReferenceError
// and no steps.
func Resolve(target *uvsfile.Script, registry uvsfile.Registry) ([]Step, error) {
	return resolve(target, registry, nil)
}

// resolve walks the reference graph depth-first. path holds the names on the
// active expansion chain only; each descent extends a copy, so two sibling
// branches may reference the same script without tripping cycle detection
// while ancestor chains still do.
func resolve(target *uvsfile.Script, registry uvsfile.Registry, path map[string]struct{}) ([]Step, error) {
	if _, onPath := path[target.Name]; onPath {
		return nil, &CyclicReferenceError{Script: target.Name}
	}

	if !target.Composite {
		return []Step{{Command: target.Commands[0], Env: target.Env}}, nil
	}

	extended := make(map[string]struct{}, len(path)+1)
	maps.Copy(extended, path)
	extended[target.Name] = struct{}{}

	var steps []Step
	for _, entry := range target.Commands {
		if referenced, ok := registry[entry]; ok {
			sub, err := resolve(referenced, registry, extended)
			if err != nil {
				return nil, err
			}
			steps = append(steps, sub...)
		} else {
			steps = append(steps, Step{Command: entry, Env: target.Env})
		}
	}
	return steps, nil
}
