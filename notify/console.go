package notify

import (
	"context"
	"fmt"
	"io"
	"os"

	"github.com/charmbracelet/lipgloss"
	"github.com/mattn/go-isatty"
)

var (
	styleOK   = lipgloss.NewStyle().Foreground(lipgloss.Color("2"))
	styleFail = lipgloss.NewStyle().Foreground(lipgloss.Color("1"))
	styleWarn = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))
)

// ConsoleNotifier prints status lines for the operator. Successful steps
// are green, failures red; color is dropped when the writer is not a
// terminal.
type ConsoleNotifier struct {
	Out   io.Writer
	color bool
}

// NewConsoleNotifier creates a console notifier writing to out.
// A nil out defaults to stdout.
func NewConsoleNotifier(out io.Writer) *ConsoleNotifier {
	if out == nil {
		out = os.Stdout
	}

	color := false
	if f, ok := out.(*os.File); ok {
		color = isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
	}

	return &ConsoleNotifier{Out: out, color: color}
}

// Notify implements Notifier.
func (n *ConsoleNotifier) Notify(ctx context.Context, event Event) error {
	line := event.Message

	if n.color {
		switch event.Severity {
		case SeverityError:
			line = styleFail.Render(line)
		case SeverityWarning:
			line = styleWarn.Render(line)
		default:
			if event.Type != EventSummary {
				line = styleOK.Render(line)
			}
		}
	}

	_, err := fmt.Fprintln(n.Out, line)
	return err
}
