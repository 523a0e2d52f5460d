package cmd

import (
	"fmt"
	"log"
	"strings"

	"raid-status-bot/core/config"
	"raid-status-bot/core/logger"
	"raid-status-bot/feature/raids"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

// checkCmd represents the check command
var checkCmd = &cobra.Command{
	Use:   "check",
	Short: "Validate the configuration",
	Long: `Loads and validates the configuration and lists the configured channels.
With --render the scanner database is queried and each channel's status
message is printed instead of being sent to Telegram.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		render, _ := cmd.Flags().GetBool("render")

		cfg, err := config.Load(configPath)
		if err != nil {
			return err
		}

		logg, err := logger.New(&cfg.Log)
		if err != nil {
			log.Fatalf("Failed to initialize logger: %v", err)
		}
		defer logg.Sync()

		fmt.Println("\n=== Configuration ===")
		fmt.Printf("Raid cycle:      %s\n", cfg.CycleInterval())
		fmt.Printf("Names refresh:   %s\n", cfg.NamesInterval())
		fmt.Printf("Language:        %s\n", cfg.Format.Language)
		fmt.Printf("State store:     %s\n", cfg.Store.Driver)
		fmt.Printf("Status server:   %t\n", cfg.Server.Enabled)
		fmt.Printf("Channels:        %d\n", len(cfg.Channels))
		for _, ch := range cfg.Channels {
			fmt.Printf("  - %-24s levels=%v eggs=%t grouped=%t pin=%t geofence=%t\n",
				ch.Key(), ch.RaidLevels, ch.IncludeUnknown, ch.GroupByLevel, ch.PinOnCreate, ch.Geofence != "")
		}
		fmt.Println("=====================")

		if !render {
			return nil
		}

		ctx := cmd.Context()
		comps, err := buildComponents(ctx, cfg, logg)
		if err != nil {
			return err
		}
		schema, err := raids.CheckSchema(comps.db, cfg.Database.OrderColumn)
		if err != nil {
			return err
		}
		if !schema.Matched {
			return fmt.Errorf("table %s is missing columns: %s", schema.Table, strings.Join(schema.MissingColumns, ", "))
		}
		fmt.Printf("Schema of table %s: ok\n", schema.Table)

		if err := comps.names.Refresh(ctx); err != nil {
			logg.Warn("Name data unavailable, using fallback names", zap.Error(err))
		}

		loop := newLoop(cfg, comps, nil, logg)
		for _, ch := range cfg.Channels {
			text, count, err := loop.Compose(ctx, ch)
			if err != nil {
				logg.Warn("Raid query failed", zap.String("channel", ch.Key().String()), zap.Error(err))
			}
			fmt.Printf("\n--- %s (%d raids) ---\n", ch.Key(), count)
			fmt.Println(strings.TrimRight(text, "\n"))
		}
		return nil
	},
}

func init() {
	RootCmd.AddCommand(checkCmd)
	checkCmd.Flags().Bool("render", false, "query the database and print each channel's message")
}
