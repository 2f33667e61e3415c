package main

import (
	"errors"
	"fmt"
	"os"

	"go.dw1.io/re2/internal/cli"
)

func main() {
	err := cli.NewRootCommand().Execute()

	var exitErr *cli.ExitError
	if err != nil && !errors.As(err, &exitErr) {
		fmt.Fprintln(os.Stderr, "Error:", err)
	}

	os.Exit(cli.GetExitCode(err))
}
