package pipeline

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/yuhao-w/commitgen/internal/log"
	"github.com/yuhao-w/commitgen/internal/ui"
)

const (
	// maxAnalyzeDiffLen bounds the diff prefix sent to the analysis step so
	// the prompt stays within model context limits. Content beyond the
	// prefix is silently dropped; a known limitation for very large diffs.
	maxAnalyzeDiffLen = 5000
)

// Completer is the single-prompt model call the pipeline depends on
type Completer interface {
	Complete(ctx context.Context, prompt string) (string, error)
}

// Pipeline runs the four generation steps in a fixed order:
// analyze -> classify -> draft -> refine. There is no branching and no
// step-level retry; a failed model call is absorbed by each step's
// deterministic fallback so the run always produces a message.
type Pipeline struct {
	llm     Completer
	printer *ui.StreamPrinter
}

// New creates a Pipeline. The printer is optional; pass nil to run silently.
func New(llm Completer, printer *ui.StreamPrinter) *Pipeline {
	return &Pipeline{
		llm:     llm,
		printer: printer,
	}
}

// Run executes the pipeline over the initial state and returns the final
// state. The returned State.Message is always a well-formed commit message
// when the input had any changes.
func (p *Pipeline) Run(ctx context.Context, st State) State {
	start := time.Now()

	p.printStep(1, "Analyzing changes...")
	st = p.analyze(ctx, st)

	p.printStep(2, "Determining commit type...")
	st = p.classify(ctx, st)

	p.printStep(3, "Drafting commit message...")
	st = p.draft(ctx, st)

	p.printStep(4, "Refining message...")
	st = p.refine(st)

	log.DebugDuration("pipeline run", time.Since(start))
	return st
}

// analyze asks the model for a free-text analysis of the diff. On model
// failure the analysis field carries an error description and the pipeline
// continues.
func (p *Pipeline) analyze(ctx context.Context, st State) State {
	prompt := fmt.Sprintf(analyzePromptFmt, truncate(st.Diff, maxAnalyzeDiffLen), strings.Join(st.Files, ", "))

	response, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		log.Debug("analyze step failed: %v", err)
		st.Analysis = fmt.Sprintf("Error analyzing changes: %v", err)
		return st
	}

	log.DebugExchange("analyze", prompt, response)
	st.Analysis = response
	return st.withExchange(prompt, response)
}

// draft asks the model for the description and assembles the full message.
// On model failure the message falls back to "type(scope): update files".
func (p *Pipeline) draft(ctx context.Context, st State) State {
	scopePart := ""
	if st.Scope != "" {
		scopePart = "(" + st.Scope + ")"
	}

	prompt := fmt.Sprintf(draftPromptFmt, st.Type, st.Scope, st.Analysis, strings.Join(st.Files, ", "))

	response, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		log.Debug("draft step failed: %v", err)
		st.Message = fmt.Sprintf("%s%s: update files", st.Type, scopePart)
		return st
	}

	log.DebugExchange("draft", prompt, response)
	description := strings.Trim(strings.TrimSpace(response), `"'`)
	st.Message = fmt.Sprintf("%s%s: %s", st.Type, scopePart, description)
	return st.withExchange(prompt, response)
}

// refine normalizes the drafted message. Pure string work, no model call.
func (p *Pipeline) refine(st State) State {
	st.Message = Normalize(st.Message, st.Files, st.Diff)
	return st
}

func (p *Pipeline) printStep(step int, message string) {
	if p.printer != nil {
		_ = p.printer.PrintStep(step, message)
	}
	log.Debug("Step %d: %s", step, message)
}

// truncate limits s to a byte prefix
func truncate(s string, maxLen int) string {
	if len(s) <= maxLen {
		return s
	}
	return s[:maxLen]
}
