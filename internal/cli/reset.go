package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/gemchat/internal/config"
	"github.com/raphaelgruber/gemchat/internal/storage"
)

var (
	resetAuth bool
	resetChat bool
)

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete locally stored session and chat data",
	Long: `Delete the JSON files gemchat keeps in its data directory.

By default both the sign-in session and all chatrooms are removed.
Use --auth or --chat to wipe only one of them.

Examples:
  gemchat reset
  gemchat reset --auth
  gemchat reset --chat`,
	RunE: runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetAuth, "auth", false, "delete only the sign-in session")
	resetCmd.Flags().BoolVar(&resetChat, "chat", false, "delete only chatrooms and messages")
}

func runReset(cmd *cobra.Command, args []string) error {
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	repo, err := storage.NewFileRepository(cfg.DataDir)
	if err != nil {
		return fmt.Errorf("open data directory: %w", err)
	}

	// No selector means wipe everything.
	all := !resetAuth && !resetChat

	keys := []string{}
	if resetAuth || all {
		keys = append(keys, storage.KeyAuth, storage.KeyOTP)
	}
	if resetChat || all {
		keys = append(keys, storage.KeyChat)
	}

	for _, key := range keys {
		if err := repo.Delete(key); err != nil {
			return fmt.Errorf("delete %s: %w", key, err)
		}
		logger.Info("deleted stored data", "key", key)
	}

	fmt.Printf("Removed %d stored file(s) from %s\n", len(keys), cfg.DataDir)
	return nil
}
