package cmd

import (
	"fmt"
	"io"
	"os"
	"strings"
	"time"

	"github.com/mattn/go-isatty"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/s0up4200/devmate/config"
	"github.com/s0up4200/devmate/devmate"
	"github.com/s0up4200/devmate/filter"
)

var (
	cfgFile   string
	cfg       *config.Config
	logger    zerolog.Logger
	client    devmate.API
	compiler  filter.CachingCompiler
	evaluator filter.Evaluator

	// Command flags
	outputFormat string

	appVersion   = "dev"
	appBuildTime = "unknown"
)

// rootCmd represents the base command
var rootCmd = &cobra.Command{
	Use:   "devmate",
	Short: "Manage DevMate customers and licenses from the command line",
	Long: `devmate is a CLI for the DevMate public API. It lets you look up,
create and update customers, issue licenses and reset license activations.`,
	PersistentPreRunE:  initializeApp,
	PersistentPostRunE: shutdownApp,
	SilenceUsage:       true,
}

// SetVersion records build information shown by --version
func SetVersion(version, buildTime string) {
	appVersion = version
	appBuildTime = buildTime
	rootCmd.Version = fmt.Sprintf("%s (built %s)", appVersion, appBuildTime)
}

// Execute adds all child commands to the root command and sets flags appropriately
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is ./config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&outputFormat, "output", "o", "", "output format: text or json (default from config)")

	// Add subcommands
	rootCmd.AddCommand(customersCmd)
	rootCmd.AddCommand(licensesCmd)
	rootCmd.AddCommand(testCmd)
}

// initializeApp initializes the configuration and the API client
func initializeApp(cmd *cobra.Command, args []string) error {
	// Load configuration
	var err error
	cfg, err = config.Load(cfgFile)
	if err != nil {
		return fmt.Errorf("failed to load config: %w", err)
	}

	// Setup logger
	logger = setupLogger(cfg.Logging, os.Stderr)

	// Override output format from command line if specified
	if cmd.Flags().Changed("output") {
		cfg.Output.Format = outputFormat
	}
	if cfg.Output.Format != "text" && cfg.Output.Format != "json" {
		return fmt.Errorf("invalid output format: %s", cfg.Output.Format)
	}

	opts := []devmate.Option{
		devmate.WithBaseURL(cfg.DevMate.BaseURL),
		devmate.WithTimeout(cfg.DevMate.Timeout),
		devmate.WithUserAgent(fmt.Sprintf("%s/%s", cfg.DevMate.UserAgent, appVersion)),
	}
	if cfg.DevMate.FollowRedirects {
		opts = append(opts, devmate.WithFollowRedirects())
	}

	// Create DevMate client
	client, err = devmate.NewClient(cfg.DevMate.Token, logger, opts...)
	if err != nil {
		return fmt.Errorf("failed to create DevMate client: %w", err)
	}

	compiler = filter.NewExprCompiler()
	evaluator = filter.NewConcurrentEvaluator()

	logger.Debug().Str("base_url", cfg.DevMate.BaseURL).Msg("DevMate client ready")
	return nil
}

// shutdownApp releases the API client
func shutdownApp(cmd *cobra.Command, args []string) error {
	if client == nil {
		return nil
	}
	return client.Close()
}

// setupLogger configures the zerolog logger
func setupLogger(cfg config.LoggingConfig, out io.Writer) zerolog.Logger {
	// Set log level
	level := zerolog.InfoLevel
	switch strings.ToLower(cfg.Level) {
	case "debug":
		level = zerolog.DebugLevel
	case "warn":
		level = zerolog.WarnLevel
	case "error":
		level = zerolog.ErrorLevel
	}

	// Configure output format
	if cfg.Format == "json" {
		return zerolog.New(out).Level(level).With().Timestamp().Logger()
	}

	// Console format
	output := zerolog.ConsoleWriter{
		Out:        out,
		TimeFormat: time.RFC3339,
		NoColor:    !cfg.Color || !isTerminal(out),
	}

	return zerolog.New(output).Level(level).With().Timestamp().Logger()
}

// isTerminal reports whether w is an interactive terminal
func isTerminal(w io.Writer) bool {
	f, ok := w.(*os.File)
	if !ok {
		return false
	}
	return isatty.IsTerminal(f.Fd()) || isatty.IsCygwinTerminal(f.Fd())
}

// testCmd represents the test command
var testCmd = &cobra.Command{
	Use:   "test",
	Short: "Test connection to DevMate",
	Long:  `Test the connection and token against the DevMate API.`,
	RunE:  runTest,
}

func runTest(cmd *cobra.Command, args []string) error {
	out := cmd.OutOrStdout()
	fmt.Fprintf(out, "Testing connection to DevMate at %s...\n", cfg.DevMate.BaseURL)

	_, meta, err := client.ListCustomersWithMeta(cmd.Context(), devmate.CustomerListOptions{Limit: 1})
	if err != nil {
		return fmt.Errorf("connection test failed: %w", err)
	}

	fmt.Fprintln(out, "✓ Connection successful!")
	if total, ok := meta["total"]; ok {
		fmt.Fprintf(out, "- Total customers: %v\n", total)
	}
	return nil
}
