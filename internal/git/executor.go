package git

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"os/exec"
	"strings"
)

// ErrNotARepository is returned when the working directory is not inside a
// git repository.
var ErrNotARepository = errors.New("not a git repository")

// Executor defines the interface for git command execution
type Executor interface {
	// Changes returns the diff text and the list of staged file paths.
	// See DefaultExecutor.Changes for the auto-staging side effect.
	Changes(ctx context.Context) (string, []string, error)

	// DiffCached returns the diff of staged changes
	DiffCached(ctx context.Context) (string, error)

	// Diff returns the diff of unstaged working-tree changes
	Diff(ctx context.Context) (string, error)

	// StagedFiles returns the paths of staged files
	StagedFiles(ctx context.Context) ([]string, error)

	// ModifiedFiles returns the paths of modified but unstaged files
	ModifiedFiles(ctx context.Context) ([]string, error)

	// AddAll stages all changes in the working tree
	AddAll(ctx context.Context) error

	// Commit executes a git commit with the given message
	Commit(ctx context.Context, message string) error

	// Status returns the current git status
	Status(ctx context.Context) (string, error)

	// CurrentBranch returns the current branch name
	CurrentBranch(ctx context.Context) (string, error)
}

// DefaultExecutor is the default implementation of Executor
type DefaultExecutor struct {
	workDir string
}

// NewExecutor creates a new DefaultExecutor
func NewExecutor(workDir string) *DefaultExecutor {
	return &DefaultExecutor{workDir: workDir}
}

// runGit runs a git command and returns the output
func (e *DefaultExecutor) runGit(ctx context.Context, args ...string) (string, error) {
	cmd := exec.CommandContext(ctx, "git", args...)
	cmd.Dir = e.workDir

	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr

	if err := cmd.Run(); err != nil {
		return "", fmt.Errorf("git %s failed: %w\n%s", strings.Join(args, " "), err, stderr.String())
	}

	return strings.TrimSpace(stdout.String()), nil
}

// checkRepository verifies the working directory is a git repository
func (e *DefaultExecutor) checkRepository(ctx context.Context) error {
	if _, err := e.runGit(ctx, "rev-parse", "--git-dir"); err != nil {
		return fmt.Errorf("%w: %s", ErrNotARepository, e.workDir)
	}
	return nil
}

// Changes returns the diff text and the staged file list for the repository.
//
// If nothing is staged but modified files exist in the working tree, Changes
// stages all of them (git add .) before re-reading the staged list. This
// mutates repository state as a side effect of message generation; callers
// must be aware the index changes even when no commit is made.
func (e *DefaultExecutor) Changes(ctx context.Context) (string, []string, error) {
	if err := e.checkRepository(ctx); err != nil {
		return "", nil, err
	}

	staged, err := e.StagedFiles(ctx)
	if err != nil {
		return "", nil, err
	}

	if len(staged) == 0 {
		modified, err := e.ModifiedFiles(ctx)
		if err != nil {
			return "", nil, err
		}
		if len(modified) > 0 {
			if err := e.AddAll(ctx); err != nil {
				return "", nil, err
			}
			staged, err = e.StagedFiles(ctx)
			if err != nil {
				return "", nil, err
			}
		}
	}

	var diff string
	if len(staged) > 0 {
		diff, err = e.DiffCached(ctx)
	} else {
		diff, err = e.Diff(ctx)
	}
	if err != nil {
		return "", nil, err
	}

	return diff, staged, nil
}

// DiffCached returns the diff of staged changes
func (e *DefaultExecutor) DiffCached(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff", "--cached")
}

// Diff returns the diff of unstaged working-tree changes
func (e *DefaultExecutor) Diff(ctx context.Context) (string, error) {
	return e.runGit(ctx, "diff")
}

// StagedFiles returns the paths of staged files
func (e *DefaultExecutor) StagedFiles(ctx context.Context) ([]string, error) {
	out, err := e.runGit(ctx, "diff", "--cached", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// ModifiedFiles returns the paths of modified but unstaged files
func (e *DefaultExecutor) ModifiedFiles(ctx context.Context) ([]string, error) {
	out, err := e.runGit(ctx, "diff", "--name-only")
	if err != nil {
		return nil, err
	}
	return splitLines(out), nil
}

// AddAll stages all changes in the working tree
func (e *DefaultExecutor) AddAll(ctx context.Context) error {
	_, err := e.runGit(ctx, "add", ".")
	return err
}

// Commit executes a git commit with the given message
func (e *DefaultExecutor) Commit(ctx context.Context, message string) error {
	_, err := e.runGit(ctx, "commit", "-m", message)
	return err
}

// Status returns the current git status
func (e *DefaultExecutor) Status(ctx context.Context) (string, error) {
	return e.runGit(ctx, "status")
}

// CurrentBranch returns the current branch name
func (e *DefaultExecutor) CurrentBranch(ctx context.Context) (string, error) {
	return e.runGit(ctx, "rev-parse", "--abbrev-ref", "HEAD")
}

// splitLines splits command output into non-empty trimmed lines
func splitLines(out string) []string {
	if out == "" {
		return nil
	}
	var lines []string
	for _, line := range strings.Split(out, "\n") {
		line = strings.TrimSpace(line)
		if line != "" {
			lines = append(lines, line)
		}
	}
	return lines
}
