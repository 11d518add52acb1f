package cli

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
)

const defaultConfigTemplate = `# Commitgen Configuration File
# See: https://github.com/yuhao-w/commitgen

# LLM provider (gemini, openai, deepseek, ollama, grok)
provider: gemini

# Model identifier for the provider
model: gemini-1.5-flash

# API key. Environment variables are expanded; leaving this unset falls
# back to the provider's env variable (GOOGLE_API_KEY for gemini).
api_key: ${GOOGLE_API_KEY}

# Generation parameters
temperature: 0.3
max_tokens: 100

# Override the provider API base URL (mostly useful for ollama)
# base_url: http://localhost:11434/v1

# Retry behaviour for transient provider failures
# retry:
#   enabled: true
#   max_attempts: 3
#   backoff_base: 1s
#   backoff_max: 8s
`

var (
	initForce bool
)

var initCmd = &cobra.Command{
	Use:   "init",
	Short: "Initialize Commitgen configuration",
	Long: `Create a default configuration file (~/.commitgen.yaml).

This command creates a template configuration file with example settings.
Edit the file to pick a provider and customize generation parameters.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		homeDir, err := os.UserHomeDir()
		if err != nil {
			return fmt.Errorf("failed to get home directory: %w", err)
		}

		configPath := filepath.Join(homeDir, ".commitgen.yaml")

		// Check if file exists
		if _, err := os.Stat(configPath); err == nil && !initForce {
			return fmt.Errorf("config file already exists: %s\nUse --force to overwrite", configPath)
		}

		// Write config file
		err = os.WriteFile(configPath, []byte(defaultConfigTemplate), 0600)
		if err != nil {
			return fmt.Errorf("failed to write config file: %w", err)
		}

		fmt.Printf("✅ Configuration file created: %s\n", configPath)
		fmt.Println("\nNext steps:")
		fmt.Println("  1. Edit the config file and pick your provider")
		fmt.Println("  2. Set environment variables for sensitive keys (recommended)")
		fmt.Println("  3. Run 'commitgen' in a repository to generate a commit message")

		return nil
	},
}

func init() {
	initCmd.Flags().BoolVarP(&initForce, "force", "f", false, "Overwrite existing config file")
	rootCmd.AddCommand(initCmd)
}
