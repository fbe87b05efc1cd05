// Command tagtool inspects tag namespaces defined in tags.yaml files.
//
// Usage:
//
//	tagtool list  [-f FILE] [--yaml]
//	tagtool check [-f FILE]
//	tagtool gid   PATH...
//	tagtool query [-f FILE] -e EXPR TAG...
//
// Without -f the tags file is searched for from the working directory upward.
package main

import (
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/jessevdk/go-flags"
)

func main() {
	if err := run(os.Args[1:], os.Stdout, os.Stderr); err != nil {
		var ferr *flags.Error
		if errors.As(err, &ferr) && ferr.Type == flags.ErrHelp {
			fmt.Fprintln(os.Stdout, ferr.Message)
			os.Exit(0)
		}
		fmt.Fprintln(os.Stderr, "tagtool:", err)
		os.Exit(1)
	}
}

// Options is the root of the command line.
type Options struct {
	Verbose bool `short:"v" long:"verbose" description:"log registry activity to stderr"`

	List  ListCommand  `command:"list" description:"print every tag with its GID"`
	Check CheckCommand `command:"check" description:"validate a tags file and build its namespace"`
	GID   GIDCommand   `command:"gid" description:"print the GID of each path"`
	Query QueryCommand `command:"query" description:"evaluate a CEL expression against a set of tags"`
}

// env is shared by every command.
type env struct {
	opts   *Options
	stdout io.Writer
	stderr io.Writer
}

func (e *env) logger() *slog.Logger {
	if !e.opts.Verbose {
		return slog.New(slog.DiscardHandler)
	}
	return slog.New(slog.NewTextHandler(e.stderr, &slog.HandlerOptions{Level: slog.LevelDebug}))
}

func run(args []string, stdout, stderr io.Writer) error {
	opts := &Options{}
	e := &env{opts: opts, stdout: stdout, stderr: stderr}
	opts.List.env = e
	opts.Check.env = e
	opts.GID.env = e
	opts.Query.env = e

	parser := flags.NewParser(opts, flags.HelpFlag|flags.PassDoubleDash)
	_, err := parser.ParseArgs(args)
	return err
}
