package cli

import (
	"context"
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/raphaelgruber/gemchat/internal/api"
	"github.com/raphaelgruber/gemchat/internal/config"
	"github.com/raphaelgruber/gemchat/internal/storage"
)

var countriesFilter string

var countriesCmd = &cobra.Command{
	Use:   "countries",
	Short: "List the supported country dial codes",
	Long: `List the countries available on the sign-in screen with their
dial codes.

Examples:
  gemchat countries
  gemchat countries --filter united`,
	RunE: runCountries,
}

func init() {
	countriesCmd.Flags().StringVarP(&countriesFilter, "filter", "f", "", "filter by country name")
}

func runCountries(cmd *cobra.Command, args []string) error {
	logger, closeLog := config.SetupLogger(cfg.LogFile, cfg.LogLevel)
	defer closeLog()

	svc := api.New(storage.NewMemoryRepository(), logger, api.WithoutLatency())

	countries, err := svc.Countries(context.Background())
	if err != nil {
		return fmt.Errorf("load countries: %w", err)
	}

	filter := strings.ToLower(countriesFilter)
	shown := 0
	for _, c := range countries {
		if filter != "" && !strings.Contains(strings.ToLower(c.Name), filter) {
			continue
		}
		fmt.Printf("%s  %-6s %s (%s)\n", c.Flag, c.DialCode, c.Name, c.Code)
		shown++
	}

	if shown == 0 {
		fmt.Println("No countries match.")
		return nil
	}
	fmt.Printf("\n%d countries\n", shown)
	return nil
}
