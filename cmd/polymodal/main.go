package main

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/funvibe/polymodal/internal/backend"
	"github.com/funvibe/polymodal/internal/config"
)

const usage = `Usage: polymodal <command> [arguments]

Commands:
  run <file.poly>                     check and evaluate a program
  check <file.poly>...                check programs without running them
  build <file.poly> [-target name] [-o path]
                                      emit an artifact (targets: %s)
  fmt <file.poly> [-w]                print the canonical source; -w rewrites the file
  tokens <file.poly>                  dump the token stream
  version                             print the version
`

func main() {
	// Catch panics and show user-friendly error
	defer func() {
		if r := recover(); r != nil {
			if os.Getenv("DEBUG") == "1" {
				panic(r) // Re-panic to get stack trace
			}
			fmt.Fprintf(os.Stderr, "Internal error: %v\n", r)
			fmt.Fprintln(os.Stderr, "This is a bug. Please report it.")
			os.Exit(1)
		}
	}()

	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

// run dispatches a command line and returns the exit status.
func run(args []string, stdout, stderr io.Writer) int {
	if len(args) == 0 {
		printUsage(stderr)
		return 1
	}

	cmd := &command{stdout: stdout, stderr: stderr}
	switch args[0] {
	case "run":
		return cmd.withFile(args[1:], cmd.runFile)
	case "check":
		return cmd.checkFiles(args[1:])
	case "build":
		return cmd.build(args[1:])
	case "fmt":
		return cmd.format(args[1:])
	case "tokens":
		return cmd.withFile(args[1:], cmd.tokens)
	case "version", "-version", "--version":
		fmt.Fprintf(stdout, "polymodal %s\n", config.Version)
		return 0
	case "help", "-h", "-help", "--help":
		printUsage(stdout)
		return 0
	}

	if strings.HasSuffix(args[0], config.SourceFileExt) {
		return cmd.withFile(args, cmd.runFile)
	}
	fmt.Fprintf(stderr, "Error: unknown command %q\n", args[0])
	printUsage(stderr)
	return 1
}

func printUsage(w io.Writer) {
	fmt.Fprintf(w, usage, strings.Join(backend.Targets(), ", "))
}

// parseArgs splits args into positional arguments and flags. Flags named in
// valued take the following argument as their value; the rest are booleans.
func parseArgs(args []string, valued ...string) (positional []string, flags map[string]string, err error) {
	flags = make(map[string]string)
	takesValue := make(map[string]bool, len(valued))
	for _, name := range valued {
		takesValue[name] = true
	}

	for i := 0; i < len(args); i++ {
		arg := args[i]
		if !strings.HasPrefix(arg, "-") || arg == "-" {
			positional = append(positional, arg)
			continue
		}
		name := strings.TrimLeft(arg, "-")
		if eq := strings.IndexByte(name, '='); eq >= 0 {
			flags[name[:eq]] = name[eq+1:]
			continue
		}
		if !takesValue[name] {
			flags[name] = "true"
			continue
		}
		if i+1 >= len(args) {
			return nil, nil, fmt.Errorf("flag -%s needs a value", name)
		}
		i++
		flags[name] = args[i]
	}
	return positional, flags, nil
}
