package cli

import (
	"errors"
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"

	"braindrive.ai/plugindev/internal/core/domain"
	"braindrive.ai/plugindev/internal/core/ports"
)

// ConsoleReporter prints workflow progress for the operator
type ConsoleReporter struct {
	out    io.Writer
	errOut io.Writer

	stepStyle    lipgloss.Style
	successStyle lipgloss.Style
	failureStyle lipgloss.Style
	labelStyle   lipgloss.Style
}

// NewConsoleReporter creates a reporter writing progress to out and failures to errOut.
// Colors are only emitted when the writer is a terminal.
func NewConsoleReporter(out, errOut io.Writer) *ConsoleReporter {
	outRenderer := lipgloss.NewRenderer(out)
	errRenderer := lipgloss.NewRenderer(errOut)

	return &ConsoleReporter{
		out:          out,
		errOut:       errOut,
		stepStyle:    outRenderer.NewStyle().Foreground(lipgloss.Color("86")),
		successStyle: outRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color("46")),
		failureStyle: errRenderer.NewStyle().Bold(true).Foreground(lipgloss.Color("196")),
		labelStyle:   outRenderer.NewStyle().Foreground(lipgloss.Color("240")),
	}
}

func (r *ConsoleReporter) Step(format string, args ...any) {
	fmt.Fprintln(r.out, r.stepStyle.Render("➤ "+fmt.Sprintf(format, args...)))
}

func (r *ConsoleReporter) Success(message string) {
	fmt.Fprintln(r.out, r.successStyle.Render("✅ "+message))
}

// Failure reports err. Rejected API calls also show the server's answer.
func (r *ConsoleReporter) Failure(message string, err error) {
	fmt.Fprintln(r.errOut, r.failureStyle.Render(fmt.Sprintf("❌ %s: %v", message, err)))

	var rejected interface{ Response() *domain.ServerResponse }
	if errors.As(err, &rejected) {
		r.writeResponse(r.errOut, rejected.Response())
	}
}

func (r *ConsoleReporter) Response(resp *domain.ServerResponse) {
	r.writeResponse(r.out, resp)
}

// writeResponse prints the body as received. Empty bodies print nothing.
func (r *ConsoleReporter) writeResponse(w io.Writer, resp *domain.ServerResponse) {
	if resp == nil || resp.Text() == "" {
		return
	}

	label := "Server response text:"
	if resp.IsJSON() {
		label = "Server response:"
	}
	fmt.Fprintln(w, r.labelStyle.Render(label))
	fmt.Fprintln(w, resp.Text())
}

var _ ports.ProgressReporter = (*ConsoleReporter)(nil)
