// SPDX-License-Identifier: MPL-2.0

// Package uvsfile loads script definitions from the [tool.uvs] table of a
// project's pyproject.toml.
//
// A script value takes one of three TOML forms:
//
//	test  = "pytest tests/"                       // single command
//	check = ["lint", "test"]                      // composite: commands or script names
//	serve = {cmd = "flask run", env = {PORT = "8080"}, help = "Run dev server"}
//
// The loaded registry is immutable: resolution and execution only ever read
// from it.
package uvsfile

import (
	"sort"
	"strings"
)

type (
	// Script is one named, invocable unit from [tool.uvs.scripts].
	Script struct {
		// Name is the registry key the script was defined under.
		Name string

		// Commands is never empty. For a non-composite script it holds a
		// single literal command line. For a composite script each entry is
		// either another script's name or a literal command line; entries are
		// classified by registry membership at resolution time.
		Commands []string

		// Env is overlaid onto the process environment when a step belonging
		// to this script executes.
		Env map[string]string

		// Help is the optional description shown by `uvs --list`.
		Help string

		// Composite marks scripts defined as an array of sub-entries.
		// A script is never partially composite.
		Composite bool
	}

	// Registry maps script names to their definitions.
	Registry map[string]*Script

	// File is the fully parsed [tool.uvs] configuration.
	File struct {
		// Path is the pyproject.toml the configuration was read from.
		Path string

		Scripts Registry

		// Editable holds editable install paths, resolved to absolute paths
		// relative to the pyproject directory.
		Editable []string

		// Features holds extra (feature) names, passed through verbatim.
		Features []string
	}
)

// Names returns the script names in sorted order.
func (r Registry) Names() []string {
	names := make([]string, 0, len(r))
	for name := range r {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Summary returns the help text for listing, falling back to the command
// text when no help was configured.
func (s *Script) Summary() string {
	if s.Help != "" {
		return s.Help
	}
	if s.Composite {
		return strings.Join(s.Commands, " -> ")
	}
	return s.Commands[0]
}
