package logging

import (
	"io"
	"strings"

	"github.com/rs/zerolog"

	scerrors "github.com/nonibytes/searchcrit/searchcrit/errors"
)

// New returns a logger writing to w. format is "console" for human readable
// output or "json"; level is any zerolog level name.
func New(w io.Writer, level, format string) (zerolog.Logger, error) {
	lvl, err := zerolog.ParseLevel(strings.ToLower(level))
	if err != nil {
		return zerolog.Nop(), scerrors.Wrap(scerrors.ErrConfig, "parse log level", err)
	}

	out := w
	if format != "json" {
		out = zerolog.NewConsoleWriter(func(cw *zerolog.ConsoleWriter) {
			cw.Out = w
		})
	}
	return zerolog.New(out).Level(lvl).With().Timestamp().Logger(), nil
}
