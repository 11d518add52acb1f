package generator

import (
	"context"
	"fmt"
	"strings"

	"github.com/yuhao-w/commitgen/internal/git"
	"github.com/yuhao-w/commitgen/internal/log"
	"github.com/yuhao-w/commitgen/internal/pipeline"
	"github.com/yuhao-w/commitgen/internal/ui"
)

// Options contains the collaborators for a Generator
type Options struct {
	GitExecutor git.Executor       // Git executor for reading repository state
	Completer   pipeline.Completer // Model call used by the pipeline steps
	Printer     *ui.StreamPrinter  // Progress output (optional)
}

// Validate validates the options
func (o *Options) Validate() error {
	if o.GitExecutor == nil {
		return fmt.Errorf("git executor is required")
	}
	if o.Completer == nil {
		return fmt.Errorf("completer is required")
	}
	return nil
}

// Generator orchestrates the repository read and the prompt pipeline
type Generator struct {
	opts Options
}

// New creates a new Generator
func New(opts Options) (*Generator, error) {
	if err := opts.Validate(); err != nil {
		return nil, fmt.Errorf("invalid options: %w", err)
	}
	return &Generator{opts: opts}, nil
}

// Generate produces a commit message for the repository. An empty string
// with a nil error means the repository has no changes to describe; callers
// must treat that as "nothing to do" rather than a failure.
//
// Reading changes may stage modified files as a side effect; see
// git.DefaultExecutor.Changes.
func (g *Generator) Generate(ctx context.Context) (string, error) {
	diff, files, err := g.opts.GitExecutor.Changes(ctx)
	if err != nil {
		return "", fmt.Errorf("failed to read repository changes: %w", err)
	}

	if strings.TrimSpace(diff) == "" && len(files) == 0 {
		log.Debug("no changes detected, skipping pipeline")
		return "", nil
	}

	log.Debug("found %d changed file(s), diff length %d", len(files), len(diff))

	p := pipeline.New(g.opts.Completer, g.opts.Printer)
	final := p.Run(ctx, pipeline.NewState(diff, files))

	return final.Message, nil
}
