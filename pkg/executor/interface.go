package executor

import "context"

// Executor defines the interface for executing external commands
type Executor interface {
	Execute(ctx context.Context, name string, args ...string) (string, error)
	ExecuteInDir(ctx context.Context, dir string, name string, args ...string) (string, error)
	ExecuteWithInput(ctx context.Context, input string, name string, args ...string) (string, error)
	LookPath(name string) (string, error)
}
