package command

import (
	"context"
	"fmt"
	"strings"
	"sync"
)

// Response is a canned result returned by Fake.
type Response struct {
	Stdout   string
	Stderr   string
	ExitCode int
}

// Fake is a Runner returning canned responses keyed by the full command line
// ("git rev-parse --short HEAD"). Unknown command lines fail.
type Fake struct {
	Responses map[string]Response

	mu    sync.Mutex
	calls []string
}

// NewFake creates a Fake with the given responses.
func NewFake(responses map[string]Response) *Fake {
	return &Fake{Responses: responses}
}

// Run implements Runner.
func (f *Fake) Run(ctx context.Context, name string, args ...string) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}
	line := commandLine(name, args)

	f.mu.Lock()
	f.calls = append(f.calls, line)
	f.mu.Unlock()

	resp, ok := f.Responses[line]
	if !ok {
		return "", fmt.Errorf("unexpected command: %s", line)
	}
	if resp.ExitCode != 0 {
		return resp.Stdout, &ExitError{
			Command:  line,
			ExitCode: resp.ExitCode,
			Stdout:   resp.Stdout,
			Stderr:   resp.Stderr,
		}
	}
	return resp.Stdout, nil
}

// Calls returns the command lines run so far, in order.
func (f *Fake) Calls() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.calls...)
}

// Called reports whether a command line starting with prefix was run.
func (f *Fake) Called(prefix string) bool {
	for _, c := range f.Calls() {
		if strings.HasPrefix(c, prefix) {
			return true
		}
	}
	return false
}
