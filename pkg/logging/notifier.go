package logging

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
	"github.com/rs/zerolog"
)

// ConsoleNotifier prints progress lines for a human watching the run.
// Lines are plain text; color is added only when the output is a terminal.
type ConsoleNotifier struct {
	out    io.Writer
	logger zerolog.Logger

	fetch *color.Color
	sleep *color.Color
	done  *color.Color
}

// NewConsoleNotifier creates a notifier writing to out (os.Stdout if nil).
// Every line is mirrored to logger at debug level.
func NewConsoleNotifier(out io.Writer, logger zerolog.Logger) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}
	return &ConsoleNotifier{
		out:    out,
		logger: logger,
		fetch:  color.New(color.FgCyan),
		sleep:  color.New(color.Faint),
		done:   color.New(color.FgGreen, color.Bold),
	}
}

// Notify prints msg on its own line.
func (n *ConsoleNotifier) Notify(msg string) {
	n.logger.Debug().Str("progress", msg).Msg("Progress")

	c := n.colorFor(msg)
	if c == nil {
		fmt.Fprintln(n.out, msg)
		return
	}
	c.Fprintln(n.out, msg)
}

func (n *ConsoleNotifier) colorFor(msg string) *color.Color {
	switch {
	case strings.HasPrefix(msg, "Fetching"):
		return n.fetch
	case strings.HasPrefix(msg, "Sleeping"):
		return n.sleep
	case strings.HasPrefix(msg, "Projects written"):
		return n.done
	default:
		return nil
	}
}
