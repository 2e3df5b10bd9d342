package cli

import (
	"context"

	"wasmcc/internal/scratch"
)

// Run is a high-level entrypoint suitable for black-box tests. It accepts
// the argument slice (excluding argv[0]) and returns the semantic exit code
// plus any error. Scratch files are released before it returns.
func Run(ctx context.Context, args []string) (Result, error) {
	inv, err := ParseInvocation(args)
	if err != nil {
		return Result{ExitCode: ExitCode(err)}, err
	}

	mgr := scratch.NewManager()
	defer mgr.ReleaseAll()

	return Execute(ctx, inv, mgr)
}
