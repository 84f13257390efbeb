package main

import (
	"fmt"
	"os"

	"github.com/alexanderramin/timecard/internal/cli"
	"github.com/alexanderramin/timecard/internal/config"
	"github.com/mattn/go-isatty"
)

func main() {
	if err := run(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func run() error {
	app := &cli.App{
		Config: config.Load(),
		Stdin:  os.Stdin,
	}

	// Piped stdin is read as a transcript when no files are given.
	app.StdinIsTerminal = func() bool {
		return isatty.IsTerminal(os.Stdin.Fd()) || isatty.IsCygwinTerminal(os.Stdin.Fd())
	}

	rootCmd := cli.NewRootCmd(app)
	return rootCmd.Execute()
}
