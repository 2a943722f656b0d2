package cliutil

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/nonibytes/searchcrit/internal/booru"
	"github.com/nonibytes/searchcrit/internal/cliopt"
	"github.com/nonibytes/searchcrit/internal/config"
	"github.com/nonibytes/searchcrit/internal/logging"
	"github.com/nonibytes/searchcrit/searchcrit"
)

type OutputFormat string

const (
	FormatPretty OutputFormat = "pretty"
	FormatIDs    OutputFormat = "ids"
	FormatJSON   OutputFormat = "json"
)

func ParseOutputFormat(s string) OutputFormat {
	switch OutputFormat(s) {
	case FormatPretty, FormatIDs, FormatJSON:
		return OutputFormat(s)
	default:
		return FormatPretty
	}
}

func PrintJSON(w io.Writer, v any) {
	b, _ := json.MarshalIndent(v, "", "  ")
	fmt.Fprintln(w, string(b))
}

// Resolve loads the environment configuration and applies command line
// overrides
func Resolve(g cliopt.GlobalOptions) (config.Config, error) {
	cfg, err := config.Load(g.EnvFile)
	if err != nil {
		return config.Config{}, err
	}
	return g.Apply(cfg)
}

// Logger builds the CLI logger; logs go to stderr
func Logger(cfg config.Config, stderr io.Writer) (zerolog.Logger, error) {
	return logging.New(stderr, cfg.LogLevel, cfg.LogFormat)
}

// OpenStore opens the configured database with the catalog search configs
// registered
func OpenStore(ctx context.Context, g cliopt.GlobalOptions, stderr io.Writer) (*searchcrit.Store, error) {
	cfg, err := Resolve(g)
	if err != nil {
		return nil, err
	}
	log, err := Logger(cfg, stderr)
	if err != nil {
		return nil, err
	}
	store, err := searchcrit.Open(ctx, cfg.Adapter(), searchcrit.Options{Logger: log})
	if err != nil {
		return nil, err
	}
	booru.Register(store.Registry(), time.Now)
	return store, nil
}
