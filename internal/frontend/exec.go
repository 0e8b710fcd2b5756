package frontend

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"sort"
	"strings"

	"github.com/ayrat555/solidity/internal/syntaxtest"
)

// Exec invokes an external compiler process per test case. The source is
// piped to stdin and the compiler is expected to print its diagnostics to
// stdout in the shared `Kind: (start-end): message` line format. Fixture
// settings become `--key=value` arguments appended after Command.
type Exec struct {
	// Command is the argv of the compiler, e.g. {"solc", "--test-diagnostics"}.
	Command []string

	// SourcePrefix is a synthetic prelude prepended before compiling
	// (e.g. a version pragma). Reported locations are shifted back so they
	// stay relative to the original fixture source.
	SourcePrefix string
}

func (e *Exec) Compile(ctx context.Context, source string, settings map[string]string) Result {
	if len(e.Command) == 0 {
		return Crashed("no compiler command configured", nil)
	}

	args := append([]string(nil), e.Command[1:]...)
	args = append(args, settingArgs(settings)...)

	cmd := exec.CommandContext(ctx, e.Command[0], args...)
	cmd.Stdin = strings.NewReader(e.SourcePrefix + source)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	runErr := cmd.Run()

	diags, parseErr := syntaxtest.ParseExpectations(stdout.String())
	if parseErr != nil {
		return Crashed(fmt.Sprintf("unreadable compiler output: %v", parseErr), nil)
	}
	diags = AdjustLocations(diags, len(e.SourcePrefix))

	if runErr != nil {
		var exitErr *exec.ExitError
		if errors.As(runErr, &exitErr) && len(diags) > 0 {
			// A non-zero exit alongside parseable diagnostics is just a
			// failing compile, not a crash.
			return Ok(diags)
		}
		msg := strings.TrimSpace(stderr.String())
		if msg == "" {
			msg = runErr.Error()
		}
		return Crashed(msg, diags)
	}
	return Ok(diags)
}

// settingArgs maps fixture settings onto compiler flags in deterministic
// order.
func settingArgs(settings map[string]string) []string {
	if len(settings) == 0 {
		return nil
	}
	keys := make([]string, 0, len(settings))
	for k := range settings {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	args := make([]string, 0, len(keys))
	for _, k := range keys {
		if v := settings[k]; v != "" {
			args = append(args, "--"+k+"="+v)
		} else {
			args = append(args, "--"+k)
		}
	}
	return args
}
