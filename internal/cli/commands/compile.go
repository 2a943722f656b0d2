package commands

import (
	"fmt"
	"strings"
	"time"

	"github.com/nonibytes/searchcrit/internal/booru"
	"github.com/nonibytes/searchcrit/internal/cliutil"
	"github.com/nonibytes/searchcrit/searchcrit/ops"
	"github.com/nonibytes/searchcrit/searchcrit/registry"
	"github.com/nonibytes/searchcrit/searchcrit/storage/sqlbuilder"
)

// RunCompile prints the SQL for a query without touching a database
func RunCompile(env Env, argv []string) int {
	fs := env.flagSet("compile")
	var entity, query, dialect, format string
	queryFlags(fs, &entity, &query)
	fs.StringVar(&dialect, "dialect", "", "dialect: sqlite|postgres (default: configured backend)")
	fs.StringVar(&format, "format", "pretty", "format: pretty|json")
	if err := fs.Parse(argv); err != nil {
		return 2
	}

	cfg, err := cliutil.Resolve(env.Global)
	if err != nil {
		return env.fail(err)
	}
	if dialect == "" {
		dialect = string(cfg.Backend)
	}
	d, err := sqlbuilder.ParseDialect(dialect)
	if err != nil {
		return env.fail(err)
	}
	log, err := cliutil.Logger(cfg, env.Stderr)
	if err != nil {
		return env.fail(err)
	}

	reg := registry.New(log)
	booru.Register(reg, time.Now)
	q, err := reg.Compile(entity, query)
	if err != nil {
		return env.fail(err)
	}
	c, _ := reg.Lookup(entity)
	out := ops.Explain(d, q, c.ID)

	if cliutil.ParseOutputFormat(format) == cliutil.FormatJSON {
		cliutil.PrintJSON(env.Stdout, out)
		return 0
	}
	fmt.Fprintln(env.Stdout, out.SQL)
	if len(out.Args) > 0 {
		args := make([]string, len(out.Args))
		for i, a := range out.Args {
			args[i] = fmt.Sprintf("%v", a)
		}
		fmt.Fprintf(env.Stdout, "args: %s\n", strings.Join(args, ", "))
	}
	return 0
}
