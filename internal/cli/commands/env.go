package commands

import (
	"context"
	"flag"
	"fmt"
	"io"

	"github.com/nonibytes/searchcrit/internal/cliopt"
)

// Env carries the global options and output streams of one invocation
type Env struct {
	Global cliopt.GlobalOptions
	Stdout io.Writer
	Stderr io.Writer
}

func (e Env) flagSet(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(e.Stderr)
	return fs
}

func (e Env) fail(err error) int {
	fmt.Fprintln(e.Stderr, err)
	return 1
}

// queryFlags binds the entity and query flags shared by the query commands
func queryFlags(fs *flag.FlagSet, entity, query *string) {
	fs.StringVar(entity, "entity", "post", "entity: post|user")
	fs.StringVar(entity, "e", "post", "entity")
	fs.StringVar(query, "query", "", "search query")
	fs.StringVar(query, "q", "", "search query")
}

func background() context.Context {
	return context.Background()
}
