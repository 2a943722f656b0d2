package commands

import (
	"fmt"

	"github.com/nonibytes/searchcrit/internal/booru"
	"github.com/nonibytes/searchcrit/internal/cliutil"
)

func RunStats(env Env, argv []string) int {
	fs := env.flagSet("stats")
	var entity, query, field string
	queryFlags(fs, &entity, &query)
	fs.StringVar(&field, "field", "", "numeric field")
	if err := fs.Parse(argv); err != nil {
		return 2
	}
	col, ok := booru.StatsColumn(entity, field)
	if !ok {
		fmt.Fprintf(env.Stderr, "no numeric field %q on %s\n", field, entity)
		return 2
	}

	ctx := background()
	store, err := cliutil.OpenStore(ctx, env.Global, env.Stderr)
	if err != nil {
		return env.fail(err)
	}
	defer store.Close()

	out, err := store.Stats(ctx, entity, query, col)
	if err != nil {
		return env.fail(err)
	}
	cliutil.PrintJSON(env.Stdout, out)
	return 0
}
