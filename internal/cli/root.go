package cli

import (
	"flag"
	"fmt"
	"io"

	"github.com/nonibytes/searchcrit/internal/cli/commands"
	"github.com/nonibytes/searchcrit/internal/cliopt"
)

// Execute runs the CLI and returns an exit code.
func Execute(argv []string, stdout, stderr io.Writer) int {
	globalFS := flag.NewFlagSet("searchcrit", flag.ContinueOnError)
	globalFS.SetOutput(stderr)
	g := cliopt.DefaultGlobalOptions()
	cliopt.BindGlobalFlags(globalFS, &g)

	if err := globalFS.Parse(argv); err != nil {
		// flag package already printed the error
		return 2
	}

	args := globalFS.Args()
	if len(args) == 0 {
		PrintRootHelp(stdout)
		return 0
	}

	env := commands.Env{Global: g, Stdout: stdout, Stderr: stderr}
	verb := args[0]
	rest := args[1:]

	switch verb {
	case "--help", "-h", "help":
		PrintRootHelp(stdout)
		return 0
	case "init":
		return commands.RunInit(env, rest)
	case "seed":
		return commands.RunSeed(env, rest)
	case "compile":
		return commands.RunCompile(env, rest)
	case "search":
		return commands.RunSearch(env, rest)
	case "count":
		return commands.RunCount(env, rest)
	case "stats":
		return commands.RunStats(env, rest)
	default:
		fmt.Fprintf(stderr, "unknown command: %s\n\n", verb)
		PrintRootHelp(stderr)
		return 2
	}
}
