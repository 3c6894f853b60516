// ABOUTME: Main entry point for the linkoff command line tool
// ABOUTME: Dispatches to the serve, filter and settings subcommands

package main

import (
	"errors"
	"fmt"
	"io"
	"os"
)

var errUsage = errors.New("missing command")

func main() {
	if err := run(os.Args[1:], os.Stdout); err != nil {
		fmt.Fprintf(os.Stderr, "error: %v\n", err)
		os.Exit(1)
	}
}

func run(args []string, out io.Writer) error {
	if len(args) == 0 {
		printUsage(os.Stderr)
		return errUsage
	}

	switch args[0] {
	case "serve":
		return runServe(args[1:], out)
	case "filter":
		return runFilter(args[1:], out)
	case "settings":
		return runSettings(args[1:], out)
	case "help", "-h", "--help":
		printUsage(out)
		return nil
	}
	return fmt.Errorf("unknown command %q", args[0])
}

func printUsage(w io.Writer) {
	fmt.Fprint(w, `linkoff filters LinkedIn feed posts and job cards by keyword and post type.

Usage:
  linkoff <command> [flags]

Commands:
  serve      run the filter loops behind the control API
  filter     filter a saved page or a feed and print what was hidden
  settings   print the default or stored settings

Run "linkoff <command> --help" for the flags of a command.
`)
}
