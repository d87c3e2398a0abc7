// SPDX-License-Identifier: MPL-2.0

package cmd

import (
	"errors"
	"testing"
)

func TestExitErrorMessage(t *testing.T) {
	t.Parallel()

	bare := &ExitError{Code: 2}
	if got := bare.Error(); got != "exit status 2" {
		t.Errorf("Error() = %q, want %q", got, "exit status 2")
	}

	wrapped := &ExitError{Code: 1, Err: errors.New("unknown script \"deploy\"")}
	if got := wrapped.Error(); got != "unknown script \"deploy\"" {
		t.Errorf("Error() = %q, want the wrapped message", got)
	}
}

func TestExitErrorUnwrap(t *testing.T) {
	t.Parallel()

	cause := errors.New("cause")
	err := &ExitError{Code: 1, Err: cause}
	if !errors.Is(err, cause) {
		t.Error("errors.Is does not reach the wrapped cause")
	}

	var exitErr *ExitError
	if !errors.As(error(err), &exitErr) {
		t.Error("errors.As failed to recover the ExitError")
	}
	if exitErr.Code != 1 {
		t.Errorf("Code = %d, want 1", exitErr.Code)
	}
}
