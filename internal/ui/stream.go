package ui

import (
	"fmt"
	"io"
	"time"

	"github.com/fatih/color"
)

// ExecutionStats holds statistics about a generation run
type ExecutionStats struct {
	StartTime        time.Time
	EndTime          time.Time
	PromptTokens     int
	CompletionTokens int
	TotalTokens      int
}

// Duration returns the execution duration
func (s *ExecutionStats) Duration() time.Duration {
	return s.EndTime.Sub(s.StartTime)
}

// StreamPrinterOption is a functional option for StreamPrinter
type StreamPrinterOption func(*StreamPrinter)

// WithColor enables or disables color output
func WithColor(enabled bool) StreamPrinterOption {
	return func(p *StreamPrinter) {
		p.colorEnabled = enabled
	}
}

// WithVerbose enables or disables verbose mode
func WithVerbose(verbose bool) StreamPrinterOption {
	return func(p *StreamPrinter) {
		p.verbose = verbose
	}
}

// StreamPrinter handles progress output to the terminal
type StreamPrinter struct {
	writer       io.Writer
	colorEnabled bool
	verbose      bool
}

// NewStreamPrinter creates a new StreamPrinter
func NewStreamPrinter(writer io.Writer, opts ...StreamPrinterOption) *StreamPrinter {
	p := &StreamPrinter{
		writer:       writer,
		colorEnabled: true,
		verbose:      false,
	}

	for _, opt := range opts {
		opt(p)
	}

	return p
}

// PrintStep prints a step in the process
func (p *StreamPrinter) PrintStep(step int, message string) error {
	if p.colorEnabled {
		blue := color.New(color.FgBlue)
		_, err := blue.Fprintf(p.writer, "📋 Step %d: %s\n", step, message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "📋 Step %d: %s\n", step, message)
	return err
}

// PrintProgress prints a progress message
func (p *StreamPrinter) PrintProgress(message string) error {
	if p.colorEnabled {
		yellow := color.New(color.FgYellow)
		_, err := yellow.Fprintf(p.writer, "⏳ %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "⏳ %s\n", message)
	return err
}

// PrintThinking prints thinking/planning information
func (p *StreamPrinter) PrintThinking(message string) error {
	if p.colorEnabled {
		gray := color.New(color.FgHiBlack)
		_, err := gray.Fprintf(p.writer, "💭 %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "💭 %s\n", message)
	return err
}

// PrintInfo prints an info message
func (p *StreamPrinter) PrintInfo(message string) error {
	if p.colorEnabled {
		cyan := color.New(color.FgCyan)
		_, err := cyan.Fprintf(p.writer, "ℹ️  %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "ℹ️  %s\n", message)
	return err
}

// PrintSuccess prints a success message
func (p *StreamPrinter) PrintSuccess(message string) error {
	if p.colorEnabled {
		green := color.New(color.FgGreen)
		_, err := green.Fprintf(p.writer, "✅ %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "✅ %s\n", message)
	return err
}

// PrintWarning prints a warning message
func (p *StreamPrinter) PrintWarning(message string) error {
	if p.colorEnabled {
		yellow := color.New(color.FgYellow)
		_, err := yellow.Fprintf(p.writer, "⚠️  %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "⚠️  %s\n", message)
	return err
}

// PrintError prints an error message
func (p *StreamPrinter) PrintError(message string) error {
	if p.colorEnabled {
		red := color.New(color.FgRed)
		_, err := red.Fprintf(p.writer, "❌ Error: %s\n", message)
		return err
	}
	_, err := fmt.Fprintf(p.writer, "❌ Error: %s\n", message)
	return err
}

// PrintStats prints execution statistics
func (p *StreamPrinter) PrintStats(stats *ExecutionStats) error {
	if stats == nil {
		return nil
	}

	durationStr := formatDuration(stats.Duration())

	if p.colorEnabled {
		dim := color.New(color.FgHiBlack)
		_, err := dim.Fprintf(p.writer, "\n📊 Stats: %d tokens (prompt: %d, completion: %d) | Time: %s\n",
			stats.TotalTokens, stats.PromptTokens, stats.CompletionTokens, durationStr)
		return err
	}

	_, err := fmt.Fprintf(p.writer, "\n📊 Stats: %d tokens (prompt: %d, completion: %d) | Time: %s\n",
		stats.TotalTokens, stats.PromptTokens, stats.CompletionTokens, durationStr)
	return err
}

// Newline prints a newline
func (p *StreamPrinter) Newline() error {
	_, err := fmt.Fprintln(p.writer)
	return err
}

// formatDuration formats a duration for display
func formatDuration(d time.Duration) string {
	if d < time.Second {
		return fmt.Sprintf("%dms", d.Milliseconds())
	}
	if d < time.Minute {
		return fmt.Sprintf("%.1fs", d.Seconds())
	}
	return fmt.Sprintf("%dm%ds", int(d.Minutes()), int(d.Seconds())%60)
}
