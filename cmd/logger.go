package cmd

import (
	"fmt"
	"io"
	"log/slog"
	"os"

	"github.com/google/uuid"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"golang.org/x/term"
)

const (
	logFormatAuto = "auto"
	logFormatText = "text"
	logFormatJSON = "json"
)

// logFormatValue is a pflag.Value restricted to the known log formats
type logFormatValue string

var _ pflag.Value = (*logFormatValue)(nil)

func newLogFormatValue() *logFormatValue {
	v := logFormatValue(logFormatAuto)
	return &v
}

func (v *logFormatValue) String() string {
	return string(*v)
}

func (v *logFormatValue) Set(s string) error {
	switch s {
	case logFormatAuto, logFormatText, logFormatJSON:
		*v = logFormatValue(s)
		return nil
	default:
		return fmt.Errorf("must be one of %s, %s, %s", logFormatAuto, logFormatText, logFormatJSON)
	}
}

func (v *logFormatValue) Type() string {
	return "format"
}

// newRunLogger builds the logger of one command run. Every record carries
// a run attribute so concurrent CI jobs can be told apart.
func newRunLogger(w io.Writer, format string, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}

	opts := &slog.HandlerOptions{Level: level}

	var handler slog.Handler
	if resolveLogFormat(format, w) == logFormatJSON {
		handler = slog.NewJSONHandler(w, opts)
	} else {
		handler = slog.NewTextHandler(w, opts)
	}

	return slog.New(handler).With(slog.String("run", uuid.NewString()))
}

// resolveLogFormat turns auto into text on a terminal and json elsewhere.
func resolveLogFormat(format string, w io.Writer) string {
	if format != logFormatAuto {
		return format
	}

	if f, ok := w.(*os.File); ok && term.IsTerminal(int(f.Fd())) {
		return logFormatText
	}

	return logFormatJSON
}

// loggerFromFlags builds the run logger on stderr from the persistent flags.
func loggerFromFlags(cmd *cobra.Command) *slog.Logger {
	verbose, _ := cmd.Flags().GetBool("verbose")

	format := logFormatAuto
	if f := cmd.Flags().Lookup("log-format"); f != nil {
		format = f.Value.String()
	}

	return newRunLogger(cmd.ErrOrStderr(), format, verbose)
}
