package pipeline

import (
	"fmt"
	"path/filepath"
	"strings"
)

const (
	// maxMessageLen is the total length cap for the final commit message
	maxMessageLen = 95
	// minMessageLen is the floor below which a message is considered
	// unusable and replaced by a fallback
	minMessageLen = 10
	// fallbackContextLen is the diff prefix inspected when selecting a
	// fallback message
	fallbackContextLen = 500

	separator = ": "
	ellipsis  = "..."
)

// fallbackRules select a canned message from keywords found in the file
// stems and diff prefix. Evaluated top to bottom, first match wins.
var fallbackRules = []struct {
	words   []string
	message string
}{
	{[]string{"test", "spec", "unittest"}, "test: add test cases"},
	{[]string{"readme", "doc", "documentation"}, "docs: update documentation"},
	{[]string{"config", "setting", "env"}, "chore: update configuration"},
	{[]string{"style", "css", "scss"}, "style: update styling"},
	{[]string{"fix", "bug", "error"}, "fix: resolve issues"},
	{[]string{"feature", "new", "add"}, "feat: add new functionality"},
}

// Normalize shapes a drafted commit message into its final form:
// surrounding quotes and whitespace stripped, trailing periods removed,
// length clamped to 95 characters, and the whole message replaced by a
// deterministic fallback when it is too short or lacks the "type: " shape.
// Pure function; no model calls.
func Normalize(message string, files []string, diff string) string {
	msg := strings.Trim(strings.TrimSpace(message), `"'`)
	msg = strings.TrimRight(msg, ".")

	if len(msg) > maxMessageLen {
		idx := strings.Index(msg, separator)
		if idx > 0 && idx+len(separator) <= maxMessageLen-len(ellipsis) {
			prefix := msg[:idx+len(separator)]
			description := msg[idx+len(separator):]
			maxDescLen := maxMessageLen - len(prefix) - len(ellipsis)
			if len(description) > maxDescLen {
				msg = prefix + description[:maxDescLen] + ellipsis
			}
		} else {
			msg = msg[:maxMessageLen-len(ellipsis)] + ellipsis
		}
	}

	if len(msg) < minMessageLen || !strings.Contains(msg, separator) {
		msg = fallbackMessage(files, diff)
	}

	return msg
}

// fallbackMessage derives a canned message from the changed files and the
// first bytes of the diff
func fallbackMessage(files []string, diff string) string {
	var stems []string
	for i, file := range files {
		if i >= 3 {
			break
		}
		base := filepath.Base(file)
		stems = append(stems, strings.TrimSuffix(base, filepath.Ext(base)))
	}

	if len(diff) > fallbackContextLen {
		diff = diff[:fallbackContextLen]
	}

	context := strings.ToLower(strings.Join(append(stems, diff), " "))

	for _, rule := range fallbackRules {
		for _, word := range rule.words {
			if strings.Contains(context, word) {
				return rule.message
			}
		}
	}

	if exts := distinctExtensions(files, 2); len(exts) > 0 {
		return fmt.Sprintf("chore: update %s files", strings.Join(exts, ", "))
	}

	return "chore: update project files"
}

// distinctExtensions returns up to max distinct file extensions in
// first-seen order, dot included
func distinctExtensions(files []string, max int) []string {
	seen := make(map[string]bool)
	var exts []string
	for _, file := range files {
		ext := filepath.Ext(file)
		if ext == "" || seen[ext] {
			continue
		}
		seen[ext] = true
		exts = append(exts, ext)
		if len(exts) == max {
			break
		}
	}
	return exts
}
