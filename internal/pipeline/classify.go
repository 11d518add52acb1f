package pipeline

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/yuhao-w/commitgen/internal/log"
)

// classification is the JSON shape requested from the model
type classification struct {
	Type  string `json:"type"`
	Scope string `json:"scope"`
}

// keywordRules drive the fallback classification when the model response is
// not valid JSON. Evaluated top to bottom, first match wins.
var keywordRules = []struct {
	words  []string
	result ChangeType
}{
	{[]string{"new", "add", "implement", "feature"}, TypeFeat},
	{[]string{"fix", "bug", "error", "issue"}, TypeFix},
	{[]string{"refactor", "restructure", "reorganize"}, TypeRefactor},
	{[]string{"performance", "optimize", "speed"}, TypePerf},
	{[]string{"style", "format", "whitespace"}, TypeStyle},
	{[]string{"doc", "readme", "comment"}, TypeDocs},
	{[]string{"test", "spec"}, TypeTest},
}

// classify asks the model for a {type, scope} JSON object. A malformed
// response degrades to the keyword scan; a failed model call degrades to
// {chore, ""}. The step never aborts the pipeline.
func (p *Pipeline) classify(ctx context.Context, st State) State {
	prompt := fmt.Sprintf(classifyPromptFmt, st.Analysis, strings.Join(st.Files, ", "))

	response, err := p.llm.Complete(ctx, prompt)
	if err != nil {
		log.Debug("classify step failed: %v", err)
		st.Type = TypeChore
		st.Scope = ""
		return st
	}

	log.DebugExchange("classify", prompt, response)
	st.Type, st.Scope = parseClassification(response)
	return st.withExchange(prompt, response)
}

// parseClassification extracts the change type and scope from the model
// response. Strict JSON parse first (code fences tolerated), keyword scan
// second, chore last.
func parseClassification(response string) (ChangeType, string) {
	raw := stripCodeFence(strings.TrimSpace(response))

	var c classification
	if err := json.Unmarshal([]byte(raw), &c); err == nil {
		changeType, ok := ParseChangeType(c.Type)
		if !ok {
			log.Debug("classify returned unknown type %q, using chore", c.Type)
		}
		return changeType, strings.TrimSpace(c.Scope)
	}

	return classifyByKeywords(response), ""
}

// classifyByKeywords scans the lower-cased response against the ordered
// keyword rules
func classifyByKeywords(text string) ChangeType {
	lower := strings.ToLower(text)
	for _, rule := range keywordRules {
		for _, word := range rule.words {
			if strings.Contains(lower, word) {
				return rule.result
			}
		}
	}
	return TypeChore
}

// stripCodeFence removes a surrounding markdown code fence, which models
// frequently wrap JSON in despite instructions
func stripCodeFence(s string) string {
	if !strings.HasPrefix(s, "```") {
		return s
	}
	s = strings.TrimPrefix(s, "```json")
	s = strings.TrimPrefix(s, "```")
	s = strings.TrimSuffix(strings.TrimSpace(s), "```")
	return strings.TrimSpace(s)
}
