// SPDX-License-Identifier: MPL-2.0

// Package runner turns a named script into a flat, ordered sequence of
// concrete commands and executes them through `uv run`.
//
// Resolution is a depth-first walk over the script reference graph with
// path-local cycle detection; execution is strictly sequential and
// fail-fast: the first non-zero child exit code stops the run and becomes
// the overall result.
package runner
