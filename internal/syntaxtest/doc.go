// Package syntaxtest implements the core of the fixture-based syntax test
// harness: expectation decoding, diagnostic comparison, and rendering.
//
// # Purpose
//
//   - Decode expected-diagnostic annotations written as comment lines in the
//     `Kind: (start-end): message` mini-language (expectations.go).
//   - Compare expected against obtained diagnostic lists by order-sensitive
//     value equality (diagnostic.go).
//   - Render mismatches as labeled expected/obtained blocks (print.go) and
//     overlay diagnostic ranges onto the test source as per-byte highlights
//     streamed with minimal style transitions (overlay.go, render.go).
//
// # Scope
//
// Package syntaxtest never invokes a compiler, reads fixture files, or
// decides pass/fail policy for a whole run. Fixture splitting lives in
// internal/fixture, frontend invocation in internal/frontend, and
// orchestration in internal/runner.
//
// All operations are synchronous and free of shared state: the highlight
// overlay is rebuilt per render call, so concurrent test cases only need
// their own source string and diagnostic lists.
package syntaxtest
