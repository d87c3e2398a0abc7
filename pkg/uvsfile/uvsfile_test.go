// SPDX-License-Identifier: MPL-2.0

package uvsfile

import (
	"slices"
	"testing"
)

func TestRegistryNames(t *testing.T) {
	t.Parallel()

	reg := Registry{
		"test":  {Name: "test", Commands: []string{"pytest"}},
		"check": {Name: "check", Commands: []string{"lint"}, Composite: true},
		"lint":  {Name: "lint", Commands: []string{"ruff check ."}},
	}

	want := []string{"check", "lint", "test"}
	if got := reg.Names(); !slices.Equal(got, want) {
		t.Errorf("Names() = %v, want %v", got, want)
	}
}

func TestScriptSummary(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name   string
		script *Script
		want   string
	}{
		{
			name:   "explicit help wins",
			script: &Script{Name: "serve", Commands: []string{"flask run"}, Help: "Run dev server"},
			want:   "Run dev server",
		},
		{
			name:   "plain script falls back to its command",
			script: &Script{Name: "test", Commands: []string{"pytest tests/"}},
			want:   "pytest tests/",
		},
		{
			name:   "composite falls back to its chain",
			script: &Script{Name: "check", Commands: []string{"lint", "test"}, Composite: true},
			want:   "lint -> test",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			if got := tt.script.Summary(); got != tt.want {
				t.Errorf("Summary() = %q, want %q", got, tt.want)
			}
		})
	}
}
