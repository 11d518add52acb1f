package pipeline

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNormalize_StripsQuotesAndWhitespace(t *testing.T) {
	assert.Equal(t, "feat: add parser", Normalize(`  "feat: add parser"  `, nil, ""))
	assert.Equal(t, "fix: handle nil input", Normalize(`'fix: handle nil input'`, nil, ""))
}

func TestNormalize_StripsTrailingPeriods(t *testing.T) {
	assert.Equal(t, "feat: add parser", Normalize("feat: add parser.", nil, ""))
	assert.Equal(t, "feat: add parser", Normalize("feat: add parser...", nil, ""))
}

func TestNormalize_LengthAlwaysBounded(t *testing.T) {
	inputs := []string{
		"feat: " + strings.Repeat("a", 200),
		strings.Repeat("b", 300),
		"fix(subsystem): " + strings.Repeat("c", 150),
		strings.Repeat("x", 96) + ": " + strings.Repeat("y", 50),
		"",
		"ok",
	}

	for _, input := range inputs {
		got := Normalize(input, []string{"main.go"}, "")
		assert.LessOrEqual(t, len(got), 95, "input %q produced %q", input, got)
	}
}

func TestNormalize_TruncatesDescriptionKeepingPrefix(t *testing.T) {
	message := "feat(parser): add incremental tokenizer support for nested expressions in long configuration files exceeding limits"

	got := Normalize(message, nil, "")
	assert.LessOrEqual(t, len(got), 95)
	assert.True(t, strings.HasPrefix(got, "feat(parser): "), "prefix must survive truncation, got %q", got)
	assert.True(t, strings.HasSuffix(got, "..."), "truncated message must end with ellipsis, got %q", got)
}

func TestNormalize_OverlongWithoutSeparatorFallsBack(t *testing.T) {
	// The hard cut leaves no "type: " shape, so the result is discarded
	// for the fallback
	got := Normalize(strings.Repeat("a", 120), nil, "")
	assert.Equal(t, "chore: update project files", got)
}

func TestNormalize_HardTruncateKeepsLeadingSeparator(t *testing.T) {
	// A separator at position zero defeats the prefix-preserving path but
	// survives the hard cut, so the truncated message is kept
	got := Normalize(": "+strings.Repeat("a", 120), nil, "")
	assert.Equal(t, 95, len(got))
	assert.True(t, strings.HasPrefix(got, ": "))
	assert.True(t, strings.HasSuffix(got, "..."))
}

func TestNormalize_IdempotentForWellFormedMessages(t *testing.T) {
	messages := []string{
		"feat: add parser support",
		"fix(api): handle nil response body",
		"docs: update installation guide",
	}

	for _, message := range messages {
		once := Normalize(message, nil, "")
		twice := Normalize(once, nil, "")
		assert.Equal(t, once, twice, "normalize must be idempotent for %q", message)
	}
}

func TestNormalize_NoTrailingPeriodOnWellFormedOutput(t *testing.T) {
	messages := []string{
		"feat: add parser support.",
		"fix(api): handle nil response body",
		"docs: update guide...",
	}

	for _, message := range messages {
		got := Normalize(message, nil, "")
		assert.False(t, strings.HasSuffix(got, "."), "output %q has a trailing period", got)
	}
}

func TestNormalize_FallbackTooShort(t *testing.T) {
	got := Normalize("ok", []string{"test_utils.py"}, "")
	assert.Equal(t, "test: add test cases", got)
}

func TestNormalize_FallbackNoSeparator(t *testing.T) {
	got := Normalize("update the readme file for clarity", []string{"README.md"}, "")
	assert.Equal(t, "docs: update documentation", got)
}

func TestNormalize_FallbackPriorityOrder(t *testing.T) {
	// Context mentions both test and readme tokens; test rules are checked
	// first so the test fallback wins.
	got := Normalize("", []string{"test_readme.py"}, "also touches readme docs")
	assert.Equal(t, "test: add test cases", got)
}

func TestNormalize_FallbackConfiguration(t *testing.T) {
	got := Normalize("", []string{"config.yaml"}, "update environment values")
	assert.Equal(t, "chore: update configuration", got)
}

func TestNormalize_FallbackStyling(t *testing.T) {
	got := Normalize("", []string{"theme.css"}, "tweak css color variables")
	assert.Equal(t, "style: update styling", got)
}

func TestNormalize_FallbackFix(t *testing.T) {
	got := Normalize("", []string{"handler.go"}, "resolve bug in request parsing")
	assert.Equal(t, "fix: resolve issues", got)
}

func TestNormalize_FallbackFeature(t *testing.T) {
	got := Normalize("", []string{"pagination.go"}, "introduce new listing endpoint")
	assert.Equal(t, "feat: add new functionality", got)
}

func TestNormalize_FallbackExtensions(t *testing.T) {
	got := Normalize("", []string{"main.go", "parser.go", "schema.sql"}, "")
	assert.Equal(t, "chore: update .go, .sql files", got)
}

func TestNormalize_FallbackProjectFiles(t *testing.T) {
	got := Normalize("", []string{"Makefile", "LICENSE"}, "")
	assert.Equal(t, "chore: update project files", got)
}

func TestNormalize_FallbackOnlyReadsDiffPrefix(t *testing.T) {
	// Keywords beyond the first 500 bytes of the diff are ignored
	diff := strings.Repeat("x", 600) + " fix bug error"
	got := Normalize("", []string{"data.bin.csv"}, diff)
	assert.Equal(t, "chore: update .csv files", got)
}

func TestDistinctExtensions(t *testing.T) {
	assert.Nil(t, distinctExtensions([]string{"Makefile"}, 2))
	assert.Equal(t, []string{".go"}, distinctExtensions([]string{"a.go", "b.go"}, 2))
	assert.Equal(t, []string{".go", ".md"}, distinctExtensions([]string{"a.go", "b.md", "c.py"}, 2))
}
