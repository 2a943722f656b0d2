package commands

import (
	"fmt"
	"time"

	"github.com/nonibytes/searchcrit/internal/cliutil"
)

func RunSearch(env Env, argv []string) int {
	fs := env.flagSet("search")
	var entity, query, format string
	var explain bool
	queryFlags(fs, &entity, &query)
	fs.StringVar(&format, "format", "pretty", "format: pretty|ids|json")
	fs.BoolVar(&explain, "explain", false, "print the SQL")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := background()
	store, err := cliutil.OpenStore(ctx, env.Global, env.Stderr)
	if err != nil {
		return env.fail(err)
	}
	defer store.Close()

	start := time.Now()
	ids, err := store.Search(ctx, entity, query)
	if err != nil {
		return env.fail(err)
	}
	elapsed := time.Since(start)

	switch cliutil.ParseOutputFormat(format) {
	case cliutil.FormatJSON:
		out := map[string]any{"entity": entity, "query": query, "ids": ids}
		if explain {
			if ex, err := store.Explain(entity, query); err == nil {
				out["sql"] = ex.SQL
			}
		}
		cliutil.PrintJSON(env.Stdout, out)
	case cliutil.FormatIDs:
		for _, id := range ids {
			fmt.Fprintln(env.Stdout, id)
		}
	default:
		fmt.Fprintf(env.Stdout, "Found %d %s rows in %dms\n", len(ids), entity, elapsed.Milliseconds())
		for _, id := range ids {
			fmt.Fprintf(env.Stdout, "- %d\n", id)
		}
		if explain {
			if ex, err := store.Explain(entity, query); err == nil {
				fmt.Fprintf(env.Stdout, "\nQuery:\n%s\n", ex.SQL)
			}
		}
	}
	return 0
}

func RunCount(env Env, argv []string) int {
	fs := env.flagSet("count")
	var entity, query string
	queryFlags(fs, &entity, &query)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := background()
	store, err := cliutil.OpenStore(ctx, env.Global, env.Stderr)
	if err != nil {
		return env.fail(err)
	}
	defer store.Close()

	n, err := store.Count(ctx, entity, query)
	if err != nil {
		return env.fail(err)
	}
	fmt.Fprintln(env.Stdout, n)
	return 0
}
