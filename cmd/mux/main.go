package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"
	"os/signal"
	"syscall"

	"muxcli/internal/services"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdin, os.Stdout, os.Stderr))
}

func run(args []string, stdin io.Reader, stdout, stderr io.Writer) int {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	cmd := newRootCommand()
	cmd.SetArgs(args)
	cmd.SetIn(stdin)
	cmd.SetOut(stdout)
	cmd.SetErr(stderr)

	err := cmd.ExecuteContext(ctx)
	if err == nil {
		return services.ExitOK
	}
	if errors.Is(err, context.Canceled) {
		return services.ExitFailure
	}

	asJSON, _ := cmd.PersistentFlags().GetBool("json")
	if asJSON {
		if encodeErr := writeJSONError(stdout, err); encodeErr != nil {
			fmt.Fprintln(stderr, err)
		}
	} else if errors.Is(err, services.ErrCancelled) {
		fmt.Fprintln(stderr, err)
	} else {
		fmt.Fprintln(stderr, "Error:", err)
	}
	return services.ExitCode(err)
}
