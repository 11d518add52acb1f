package cli

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"github.com/yuhao-w/commitgen/internal/config"
	"github.com/yuhao-w/commitgen/internal/generator"
	"github.com/yuhao-w/commitgen/internal/git"
	"github.com/yuhao-w/commitgen/internal/llm"
	"github.com/yuhao-w/commitgen/internal/log"
	"github.com/yuhao-w/commitgen/internal/ui"
)

var (
	// Global flags
	debugMode  bool
	configFile string

	// Generate flags
	apiKey       string
	providerName string
	modelName    string
	baseURL      string
	temperature  float64
	maxTokens    int
	outputJSON   bool
	doCommit     bool
	autoYes      bool

	// Version info
	version   = "dev"
	gitCommit = "unknown"
	buildTime = "unknown"
)

// errSilent marks errors that have already been reported to the user;
// Execute uses it to avoid double-printing while still exiting non-zero.
var errSilent = errors.New("error already reported")

// rootCmd is the single generate command; running commitgen with no
// subcommand produces a commit message for the repository.
var rootCmd = &cobra.Command{
	Use:   "commitgen [repo-path]",
	Short: "Generate conventional commit messages with AI",
	Long: `Commitgen inspects the changes in a git repository and uses an LLM to
generate a commit message following Conventional Commits.

If nothing is staged, modified files are staged automatically before the
diff is read. Note this mutates the git index even when no commit is made.

Examples:
  commitgen
  commitgen path/to/repo
  commitgen --model gemini-1.5-pro --temperature 0.5
  commitgen --provider openai --model gpt-4o
  commitgen --json
  commitgen --commit -y`,
	Args:          cobra.MaximumNArgs(1),
	SilenceUsage:  true,
	SilenceErrors: true,
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		if debugMode {
			log.SetDebugMode(true)
			log.Debug("Debug mode enabled")
		}
	},
	RunE: runGenerate,
}

// Execute runs the root command, reporting any not-yet-reported error
func Execute() error {
	err := rootCmd.Execute()
	if err != nil && !errors.Is(err, errSilent) {
		log.Error("%v", err)
	}
	return err
}

// SetVersionInfo sets version information from build flags
func SetVersionInfo(v, commit, time string) {
	version = v
	gitCommit = commit
	buildTime = time
}

// GetVersionInfo returns version information
func GetVersionInfo() (string, string, string) {
	return version, gitCommit, buildTime
}

func init() {
	rootCmd.PersistentFlags().BoolVar(&debugMode, "debug", false, "Enable debug mode for verbose output")
	rootCmd.PersistentFlags().StringVar(&configFile, "config", "", "Config file path (default: ~/.commitgen.yaml)")

	rootCmd.Flags().StringVar(&apiKey, "api-key", "", "API key for the model provider (falls back to the provider's env variable)")
	rootCmd.Flags().StringVar(&providerName, "provider", config.DefaultProvider, "LLM provider (gemini, openai, deepseek, ollama, grok)")
	rootCmd.Flags().StringVarP(&modelName, "model", "m", config.DefaultModel, "Model identifier")
	rootCmd.Flags().StringVar(&baseURL, "base-url", "", "Override the provider API base URL")
	rootCmd.Flags().Float64Var(&temperature, "temperature", config.DefaultTemperature, "Sampling temperature")
	rootCmd.Flags().IntVar(&maxTokens, "max-tokens", config.DefaultMaxTokens, "Maximum tokens generated per request")
	rootCmd.Flags().BoolVar(&outputJSON, "json", false, "Output result as JSON")
	rootCmd.Flags().BoolVar(&doCommit, "commit", false, "Commit with the generated message after confirmation")
	rootCmd.Flags().BoolVarP(&autoYes, "yes", "y", false, "Skip the confirmation prompt when using --commit")
}

// jsonResult is the --json output shape
type jsonResult struct {
	CommitMessage *string `json:"commit_message"`
	Success       bool    `json:"success"`
	Error         string  `json:"error,omitempty"`
}

func printJSONResult(message *string, errMsg string) {
	result := jsonResult{
		CommitMessage: message,
		Success:       message != nil,
		Error:         errMsg,
	}
	data, _ := json.Marshal(result)
	fmt.Println(string(data))
}

func runGenerate(cmd *cobra.Command, args []string) error {
	ctx := context.Background()
	startTime := time.Now()

	// Load .env so provider keys in it are visible below
	_ = godotenv.Load()

	// fail reports an error in the requested output format and signals a
	// non-zero exit
	fail := func(err error) error {
		if outputJSON {
			printJSONResult(nil, err.Error())
			return errSilent
		}
		return err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return fail(fmt.Errorf("failed to load config: %w", err))
	}

	// CLI flags override config file values
	if cmd.Flags().Changed("provider") {
		cfg.Provider = providerName
	}
	if cmd.Flags().Changed("model") {
		cfg.Model = modelName
	}
	if cmd.Flags().Changed("base-url") {
		cfg.BaseURL = baseURL
	}
	if cmd.Flags().Changed("temperature") {
		cfg.Temperature = temperature
	}
	if cmd.Flags().Changed("max-tokens") {
		cfg.MaxTokens = maxTokens
	}

	if err := cfg.Validate(); err != nil {
		return fail(fmt.Errorf("invalid configuration: %w", err))
	}

	// Credential resolution happens before any repository work
	key, err := cfg.ResolveAPIKey(apiKey)
	if err != nil {
		return fail(err)
	}
	cfg.APIKey = key

	log.DebugConfig("Configuration", cfg)

	repoPath := "."
	if len(args) > 0 {
		repoPath = args[0]
	}

	gitExec := git.NewExecutor(repoPath)

	provider, err := llm.NewProviderFactory().Create(*cfg)
	if err != nil {
		return fail(fmt.Errorf("failed to create LLM provider: %w", err))
	}

	log.Debug("Using model: %s (provider: %s)", cfg.Model, provider.Name())

	chatModel, err := provider.CreateChatModel(ctx)
	if err != nil {
		return fail(fmt.Errorf("failed to create chat model: %w", err))
	}

	retryCfgPtr := cfg.GetRetryConfig()
	retryConfig := llm.RetryConfig{
		Enabled:     retryCfgPtr.Enabled,
		MaxAttempts: retryCfgPtr.MaxAttempts,
		BackoffBase: retryCfgPtr.BackoffBase,
		BackoffMax:  retryCfgPtr.BackoffMax,
	}

	client := llm.NewClient(chatModel, retryConfig)

	// Progress output would pollute the machine-readable stream in JSON mode
	var printer *ui.StreamPrinter
	if !outputJSON {
		printer = ui.NewStreamPrinter(os.Stdout, ui.WithVerbose(debugMode))
		_ = printer.PrintThinking("Generating commit message...")
	}

	gen, err := generator.New(generator.Options{
		GitExecutor: gitExec,
		Completer:   client,
		Printer:     printer,
	})
	if err != nil {
		return fail(err)
	}

	message, err := gen.Generate(ctx)
	if err != nil {
		return fail(err)
	}

	if message == "" {
		if outputJSON {
			printJSONResult(nil, "No changes detected")
		} else {
			_ = printer.PrintWarning("No changes detected to generate commit message")
		}
		return errSilent
	}

	if outputJSON {
		printJSONResult(&message, "")
		return nil
	}

	if err := ui.ShowCommitMessage(message, os.Stdout); err != nil {
		return err
	}

	usage := client.Usage()
	stats := &ui.ExecutionStats{
		StartTime:        startTime,
		EndTime:          time.Now(),
		PromptTokens:     usage.PromptTokens,
		CompletionTokens: usage.CompletionTokens,
		TotalTokens:      usage.TotalTokens,
	}
	_ = printer.PrintStats(stats)

	if doCommit {
		if !autoYes {
			confirmed, err := ui.ConfirmWithDefault("\nDo you want to commit with this message?", true, os.Stdin, os.Stdout)
			if err != nil {
				return err
			}
			if !confirmed {
				fmt.Println("Commit cancelled.")
				return nil
			}
		}

		if err := gitExec.Commit(ctx, message); err != nil {
			return fmt.Errorf("failed to commit: %w", err)
		}
		_ = printer.PrintSuccess("Commit created successfully!")
	}

	return nil
}
