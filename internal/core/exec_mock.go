package core

import (
	"context"
	"sync"
)

// MockCommandRunner records commands and answers them with RunFunc.
type MockCommandRunner struct {
	mu    sync.Mutex
	calls []Command

	// RunFunc produces the result for each call. When nil, every command
	// succeeds with empty output.
	RunFunc func(ctx context.Context, cmd Command) (*CommandResult, error)
}

// Ensure MockCommandRunner implements CommandRunner.
var _ CommandRunner = (*MockCommandRunner)(nil)

func (m *MockCommandRunner) Run(ctx context.Context, cmd Command) (*CommandResult, error) {
	m.mu.Lock()
	m.calls = append(m.calls, cmd)
	fn := m.RunFunc
	m.mu.Unlock()

	if fn == nil {
		return &CommandResult{}, nil
	}
	return fn(ctx, cmd)
}

// Calls returns the recorded commands in invocation order.
func (m *MockCommandRunner) Calls() []Command {
	m.mu.Lock()
	defer m.mu.Unlock()
	return append([]Command(nil), m.calls...)
}

// StdoutRunner returns a MockCommandRunner that prints stdout and exits 0.
func StdoutRunner(stdout string) *MockCommandRunner {
	return &MockCommandRunner{
		RunFunc: func(context.Context, Command) (*CommandResult, error) {
			return &CommandResult{Stdout: stdout}, nil
		},
	}
}
