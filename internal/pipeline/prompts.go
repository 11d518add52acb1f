package pipeline

// analyzePromptFmt asks the model for a structured analysis of the diff.
// Fills: truncated diff, comma-joined file list.
const analyzePromptFmt = `Analyze the following git diff and provide a structured analysis:

Git Diff:
%s

Changed Files: %s

Analyze the changes and provide:
1. What type of changes were made?
2. Which files/modules are most affected?
3. What is the main purpose of these changes?
4. Are there any breaking changes?
5. What would be an appropriate scope (component/module name)?

Be concise and focus on the most important aspects.`

// classifyPromptFmt asks the model for a strict JSON {type, scope} object.
// Fills: analysis text, comma-joined file list.
const classifyPromptFmt = `Based on this analysis of git changes, determine the conventional commit type and scope:

Analysis:
%s

Files changed: %s

Return ONLY a JSON object with this format:
{
    "type": "one of: feat, fix, docs, style, refactor, test, chore, perf, ci, build, revert",
    "scope": "optional scope like component/module name or empty string"
}

Guidelines for type selection:
- feat: New features or functionality
- fix: Bug fixes
- refactor: Code restructuring without changing behavior
- perf: Performance improvements
- style: Formatting, whitespace, missing semicolons
- docs: Documentation changes
- test: Adding or modifying tests
- chore: Maintenance tasks, dependency updates
- ci: CI/CD pipeline changes
- build: Build system or external dependencies`

// draftPromptFmt asks the model for the bare description text.
// Fills: change type, scope, analysis text, comma-joined file list.
const draftPromptFmt = `Generate a conventional commit message description for these changes:

Type: %s
Scope: %s
Analysis: %s
Files changed: %s

Create a clear, specific description that explains what was changed and why.

Rules:
1. Use imperative mood ("add" not "added" or "adds")
2. Don't capitalize the first letter of description
3. Don't end with a period
4. Be specific about the actual functionality changed
5. Keep it under 95 characters total for the full message
6. Focus on the "what" and "why", not the "how"

Examples:
- adjust image resize dimensions for better accuracy
- fix null pointer exception in user validation
- add OAuth2 authentication support
- refactor database connection logic
- update API documentation for v2 endpoints
- optimize query performance in user search

Return ONLY the description part (what comes after the colon and space).`
