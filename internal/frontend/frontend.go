package frontend

import (
	"context"

	"github.com/ayrat555/solidity/internal/syntaxtest"
)

// CrashKind tags the synthetic record produced when a frontend invocation
// fails internally instead of reporting diagnostics.
const CrashKind = "InternalCompilerError"

// Frontend compiles a single test source and reports diagnostics. Settings
// come from the fixture's settings section; how they map onto the compiler
// is up to the implementation.
type Frontend interface {
	Compile(ctx context.Context, source string, settings map[string]string) Result
}

// Result is the outcome of one frontend invocation: either a diagnostic list
// or a crash message, possibly alongside diagnostics collected before the
// crash. A crash is data, not control flow, so one broken test case cannot
// take down a whole run.
type Result struct {
	diags   []syntaxtest.Diagnostic
	crash   string
	crashed bool
}

// Ok wraps a successful invocation. An empty or nil list is a clean compile.
func Ok(diags []syntaxtest.Diagnostic) Result {
	return Result{diags: diags}
}

// Crashed wraps an internal frontend failure, keeping any diagnostics the
// frontend still managed to produce.
func Crashed(message string, diags []syntaxtest.Diagnostic) Result {
	return Result{diags: diags, crash: message, crashed: true}
}

// CrashMessage returns the failure message and whether the invocation
// crashed at all.
func (r Result) CrashMessage() (string, bool) {
	return r.crash, r.crashed
}

// Diagnostics flattens the result into the actual diagnostic list. A crash
// becomes one synthetic CrashKind record with no location, placed before any
// diagnostics that were still collected. A crash without a message reports
// the placeholder "NONE" so the record is never silently empty.
func (r Result) Diagnostics() []syntaxtest.Diagnostic {
	if !r.crashed {
		return r.diags
	}
	msg := syntaxtest.EscapeMessage(r.crash)
	if msg == "" {
		msg = "NONE"
	}
	out := make([]syntaxtest.Diagnostic, 0, len(r.diags)+1)
	out = append(out, syntaxtest.Diagnostic{
		Kind:          CrashKind,
		Message:       msg,
		LocationStart: -1,
		LocationEnd:   -1,
	})
	return append(out, r.diags...)
}

// AdjustLocations shifts diagnostic locations left by prefixLen, undoing a
// synthetic prefix the frontend prepended before compiling. Each bound is
// checked independently; a bound that lands inside the prefix reports -1
// rather than a negative offset into the original source.
func AdjustLocations(diags []syntaxtest.Diagnostic, prefixLen int) []syntaxtest.Diagnostic {
	if prefixLen == 0 {
		return diags
	}
	out := make([]syntaxtest.Diagnostic, len(diags))
	for i, d := range diags {
		if d.LocationStart >= prefixLen {
			d.LocationStart -= prefixLen
		} else {
			d.LocationStart = -1
		}
		if d.LocationEnd >= prefixLen {
			d.LocationEnd -= prefixLen
		} else {
			d.LocationEnd = -1
		}
		out[i] = d
	}
	return out
}
