package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"github.com/joho/godotenv"

	"wasmcc/internal/cli"
	"wasmcc/internal/scratch"
)

// main is a deterministic boundary: it canonicalizes all CLI inputs into an
// Invocation before any engine logic is invoked, and owns the teardown that
// must run on every exit path (scratch cleanup, signal handling).
func main() {
	// A project .env may pin toolchain paths; absence is fine.
	_ = godotenv.Load()

	inv, err := cli.ParseInvocation(os.Args[1:])
	if err != nil {
		var invErr *cli.InvocationError
		if errors.As(err, &invErr) {
			fmt.Fprintln(os.Stderr, invErr.Message)
			os.Exit(invErr.ExitCode)
		}
		fmt.Fprintln(os.Stderr, err)
		os.Exit(cli.ExitInternalError)
	}

	// Signals cancel the context, which kills any running tool; the deferred
	// release then runs before exit. There is no way to stop a running plan
	// short of that.
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	mgr := scratch.NewManager()
	defer mgr.ReleaseAll()

	result, execErr := cli.Execute(ctx, inv, mgr)
	if execErr != nil {
		fmt.Fprintln(os.Stderr, execErr)
	}

	mgr.ReleaseAll()
	stop()
	os.Exit(result.ExitCode)
}
