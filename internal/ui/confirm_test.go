package ui

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConfirmWithDefault(t *testing.T) {
	tests := []struct {
		name       string
		input      string
		defaultYes bool
		want       bool
	}{
		{"yes", "y\n", false, true},
		{"yes full word", "yes\n", false, true},
		{"no", "n\n", true, false},
		{"no full word", "no\n", true, false},
		{"empty uses default yes", "\n", true, true},
		{"empty uses default no", "\n", false, false},
		{"uppercase", "Y\n", false, true},
		{"whitespace trimmed", "  y  \n", false, true},
		{"invalid then yes", "maybe\ny\n", false, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			input := strings.NewReader(tt.input)
			var output bytes.Buffer

			got, err := ConfirmWithDefault("Proceed?", tt.defaultYes, input, &output)
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
			assert.Contains(t, output.String(), "Proceed?")
		})
	}
}

func TestConfirmWithDefault_PromptShape(t *testing.T) {
	var output bytes.Buffer
	_, err := ConfirmWithDefault("Commit?", true, strings.NewReader("\n"), &output)
	require.NoError(t, err)
	assert.Contains(t, output.String(), "[Y/n]")

	output.Reset()
	_, err = ConfirmWithDefault("Commit?", false, strings.NewReader("\n"), &output)
	require.NoError(t, err)
	assert.Contains(t, output.String(), "[y/N]")
}

func TestConfirm_DefaultsToNo(t *testing.T) {
	var output bytes.Buffer
	got, err := Confirm("Proceed?", strings.NewReader("\n"), &output)
	require.NoError(t, err)
	assert.False(t, got)
}

func TestConfirmWithDefault_EOF(t *testing.T) {
	var output bytes.Buffer
	_, err := ConfirmWithDefault("Proceed?", false, strings.NewReader(""), &output)
	assert.Error(t, err)
}

func TestShowCommitMessage(t *testing.T) {
	var output bytes.Buffer
	err := ShowCommitMessage("feat(api): add pagination", &output)
	require.NoError(t, err)
	assert.Contains(t, output.String(), "feat(api): add pagination")
	assert.Contains(t, output.String(), "Generated Commit Message")
}
