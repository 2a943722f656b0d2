package commands

import (
	"fmt"

	"github.com/nonibytes/searchcrit/internal/booru"
	"github.com/nonibytes/searchcrit/internal/cliutil"
)

func RunInit(env Env, argv []string) int {
	return runSetup(env, "init", argv, false)
}

func RunSeed(env Env, argv []string) int {
	return runSetup(env, "seed", argv, true)
}

func runSetup(env Env, name string, argv []string, seed bool) int {
	fs := env.flagSet(name)
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	ctx := background()
	store, err := cliutil.OpenStore(ctx, env.Global, env.Stderr)
	if err != nil {
		return env.fail(err)
	}
	defer store.Close()

	if err := booru.CreateSchema(ctx, store.DB(), store.Dialect()); err != nil {
		return env.fail(err)
	}
	if seed {
		if err := booru.Seed(ctx, store.DB()); err != nil {
			return env.fail(err)
		}
	}
	if err := store.Optimize(ctx); err != nil {
		return env.fail(err)
	}

	if seed {
		ds := booru.Sample()
		fmt.Fprintf(env.Stdout, "Seeded %d posts, %d users, %d tags\n", len(ds.Posts), len(ds.Users), len(ds.Tags))
	} else {
		fmt.Fprintln(env.Stdout, "Schema created")
	}
	return 0
}
