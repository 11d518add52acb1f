package pipeline

import "strings"

// ChangeType is a conventional commit type
type ChangeType string

// The closed set of conventional commit types. Anything the model returns
// outside this set resolves to TypeChore.
const (
	TypeFeat     ChangeType = "feat"
	TypeFix      ChangeType = "fix"
	TypeDocs     ChangeType = "docs"
	TypeStyle    ChangeType = "style"
	TypeRefactor ChangeType = "refactor"
	TypeTest     ChangeType = "test"
	TypeChore    ChangeType = "chore"
	TypePerf     ChangeType = "perf"
	TypeCI       ChangeType = "ci"
	TypeBuild    ChangeType = "build"
	TypeRevert   ChangeType = "revert"
)

var validChangeTypes = map[ChangeType]bool{
	TypeFeat:     true,
	TypeFix:      true,
	TypeDocs:     true,
	TypeStyle:    true,
	TypeRefactor: true,
	TypeTest:     true,
	TypeChore:    true,
	TypePerf:     true,
	TypeCI:       true,
	TypeBuild:    true,
	TypeRevert:   true,
}

// String returns the string representation of the change type
func (t ChangeType) String() string {
	return string(t)
}

// IsValid reports whether t is a member of the conventional commit type set
func (t ChangeType) IsValid() bool {
	return validChangeTypes[t]
}

// ParseChangeType parses a string into a ChangeType. The second return value
// is false when the input is not a recognized type.
func ParseChangeType(s string) (ChangeType, bool) {
	t := ChangeType(strings.ToLower(strings.TrimSpace(s)))
	if t.IsValid() {
		return t, true
	}
	return TypeChore, false
}

// Exchange records a single prompt/response round-trip with the model
type Exchange struct {
	Prompt   string
	Response string
}

// State carries the data threaded through the pipeline steps. Steps receive
// a State by value and return an updated copy; nothing is shared between
// invocations and the value is discarded once the run completes.
type State struct {
	History  []Exchange
	Diff     string
	Files    []string
	Analysis string
	Type     ChangeType
	Scope    string
	Message  string
}

// NewState creates the initial state for a pipeline run
func NewState(diff string, files []string) State {
	return State{
		Diff:  diff,
		Files: files,
	}
}

// withExchange returns a copy of the state with the exchange appended to the
// history. The backing array is copied so earlier state values stay intact.
func (s State) withExchange(prompt, response string) State {
	history := make([]Exchange, len(s.History), len(s.History)+1)
	copy(history, s.History)
	s.History = append(history, Exchange{Prompt: prompt, Response: response})
	return s
}
