// Package cli provides the command-line interface for gemchat.
package cli

import (
	"fmt"
	"os"

	tea "charm.land/bubbletea/v2"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/raphaelgruber/gemchat/internal/ai"
	"github.com/raphaelgruber/gemchat/internal/api"
	"github.com/raphaelgruber/gemchat/internal/config"
	"github.com/raphaelgruber/gemchat/internal/storage"
	"github.com/raphaelgruber/gemchat/internal/store"
	"github.com/raphaelgruber/gemchat/internal/ui"
)

var (
	// Version is set at build time.
	Version = "0.1.0"

	// Global flags
	fast bool

	cfg config.Config
)

// rootCmd represents the base command when called without any subcommands.
var rootCmd = &cobra.Command{
	Use:   "gemchat",
	Short: "Terminal client for Gemini Chat",
	Long: `Gemchat is a terminal chat client with phone/OTP sign-in, chatrooms,
and a simulated AI conversation partner.

All data lives in local JSON files under the data directory; the backend
(SMS delivery, AI replies, country lookup) is mocked with realistic
latency. Sign in with any phone number and the code shown on screen.`,
	Version: Version,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		cfg = config.Load()
		if fast {
			cfg.SimulateLatency = false
			cfg.AIMinDelay = 0
			cfg.AIMaxDelay = 0
		}
		return nil
	},
	RunE: runChat,
}

// runChat wires the stores and mock services together and hands the
// terminal to the interactive interface.
func runChat(cmd *cobra.Command, args []string) error {
	if !term.IsTerminal(int(os.Stdin.Fd())) {
		return fmt.Errorf("gemchat needs an interactive terminal (stdin is not a TTY)")
	}

	// Stderr belongs to the TUI, so logs go to the file only.
	logger, closeLog := config.SetupFileLogger(cfg.LogFile, cfg.LogLevel)
	defer func() {
		if err := closeLog(); err != nil {
			fmt.Fprintf(os.Stderr, "Warning: failed to close log file: %v\n", err)
		}
	}()

	repo, err := storage.NewFileRepository(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open data directory: %w", err)
	}

	apiOpts := []api.Option{}
	if !cfg.SimulateLatency {
		apiOpts = append(apiOpts, api.WithoutLatency())
	}

	deps := ui.Deps{
		Config:    cfg,
		Logger:    logger,
		Session:   store.NewSession(repo, logger, cfg.DefaultCountryCode),
		Chat:      store.NewChat(repo, logger, cfg.PageSize),
		API:       api.New(repo, logger, apiOpts...),
		Responder: ai.New(ai.WithDelays(cfg.AIMinDelay, cfg.AIMaxDelay)),
	}

	logger.Info("starting gemchat", "version", Version, "data_dir", cfg.DataDir)

	p := tea.NewProgram(ui.NewApp(deps))
	if _, err := p.Run(); err != nil {
		return fmt.Errorf("run interface: %w", err)
	}
	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	// Global flags
	rootCmd.PersistentFlags().BoolVar(&fast, "fast", false, "disable simulated network and AI latency")

	// Add subcommands
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(countriesCmd)
}
