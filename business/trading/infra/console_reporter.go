// Package infra contains reporter implementations for the trading context.
package infra

import (
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/charmbracelet/lipgloss"

	"github.com/rosiewang37/RITCxSmith/business/trading/domain"
)

// Colors
var (
	colorPrimary = lipgloss.Color("#7C3AED") // Purple
	colorProfit  = lipgloss.Color("#10B981") // Green
	colorDanger  = lipgloss.Color("#EF4444") // Red
	colorWarning = lipgloss.Color("#F59E0B") // Amber
	colorMuted   = lipgloss.Color("#6B7280") // Gray
)

// Styles
var (
	kindStyles = map[domain.EventKind]lipgloss.Style{
		domain.EventArbExecuted:       lipgloss.NewStyle().Bold(true).Foreground(colorProfit),
		domain.EventTenderAccepted:    lipgloss.NewStyle().Bold(true).Foreground(colorPrimary),
		domain.EventHedgeExhausted:    lipgloss.NewStyle().Bold(true).Foreground(colorDanger).Reverse(true),
		domain.EventUnwindEngaged:     lipgloss.NewStyle().Bold(true).Foreground(colorDanger),
		domain.EventUnwindCleared:     lipgloss.NewStyle().Bold(true).Foreground(colorProfit),
		domain.EventRebalanceExecuted: lipgloss.NewStyle().Foreground(colorMuted),
		domain.EventCreationAdvised:   lipgloss.NewStyle().Foreground(colorWarning),
		domain.EventRedemptionAdvised: lipgloss.NewStyle().Foreground(colorWarning),
	}

	defaultKindStyle = lipgloss.NewStyle().Foreground(colorMuted)
	timeStyle        = lipgloss.NewStyle().Foreground(colorMuted)
	detailStyle      = lipgloss.NewStyle().Foreground(colorMuted)
)

// ConsoleReporter renders engine events as styled single lines on a
// writer. Writes are serialized so concurrent publishers never
// interleave a line.
type ConsoleReporter struct {
	mu  sync.Mutex
	out io.Writer
}

// NewConsoleReporter creates a ConsoleReporter writing to out.
func NewConsoleReporter(out io.Writer) *ConsoleReporter {
	return &ConsoleReporter{out: out}
}

// Publish renders one event line.
func (r *ConsoleReporter) Publish(_ context.Context, event domain.Event) {
	style, ok := kindStyles[event.Kind]
	if !ok {
		style = defaultKindStyle
	}

	var b strings.Builder
	b.WriteString(timeStyle.Render(event.Timestamp.Format("15:04:05.000")))
	b.WriteString(" ")
	b.WriteString(style.Render(fmt.Sprintf("%-19s", string(event.Kind))))

	if event.Instrument != "" {
		b.WriteString(fmt.Sprintf(" %s", event.Instrument.Ticker()))
	}
	if event.Side != "" {
		b.WriteString(fmt.Sprintf(" %s", string(event.Side)))
	}
	if event.Quantity != 0 {
		b.WriteString(fmt.Sprintf(" x%d", event.Quantity))
	}
	if !event.Price.IsZero() {
		b.WriteString(fmt.Sprintf(" @ %s", event.Price.StringFixed(2)))
	}
	if !event.Edge.IsZero() {
		edge := fmt.Sprintf(" edge %s", event.Edge.StringFixed(4))
		if event.Edge.IsPositive() {
			b.WriteString(lipgloss.NewStyle().Foreground(colorProfit).Render(edge))
		} else {
			b.WriteString(lipgloss.NewStyle().Foreground(colorDanger).Render(edge))
		}
	}
	if event.Detail != "" {
		b.WriteString(" ")
		b.WriteString(detailStyle.Render(event.Detail))
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	fmt.Fprintln(r.out, b.String())
}
