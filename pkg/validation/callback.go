package validation

import (
	"fmt"
	"strings"

	"github.com/expr-lang/expr"
)

// blockedCallbackPatterns are operations a block callback must never use.
// Callbacks run inside the simulation engine against port values only; any
// attempt at environment or I/O access is rejected up front.
var blockedCallbackPatterns = []string{
	"os.",
	"exec.",
	"syscall",
	"ioutil",
	"env(",
}

// ValidateCallback compile-checks a block's callback expression without
// running it. Port names are unknown at validation time, so undefined
// variables are allowed; syntax errors and blocked operations are not.
func ValidateCallback(callback string) error {
	if strings.TrimSpace(callback) == "" {
		// A block without a callback is a pure data source or sink
		return nil
	}

	for _, pattern := range blockedCallbackPatterns {
		if strings.Contains(callback, pattern) {
			return fmt.Errorf("callback contains blocked operation %q", pattern)
		}
	}

	if _, err := expr.Compile(callback, expr.AllowUndefinedVariables()); err != nil {
		return fmt.Errorf("callback does not compile: %w", err)
	}
	return nil
}
