package app

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/scoutline/player-catalog-server/internal/config"
	"github.com/scoutline/player-catalog-server/internal/httpclient"
	"github.com/scoutline/player-catalog-server/internal/logger"
	"github.com/scoutline/player-catalog-server/internal/provider"
	"github.com/scoutline/player-catalog-server/internal/store"
	pkgsync "github.com/scoutline/player-catalog-server/internal/sync"
)

var syncCmd = &cobra.Command{
	Use:   "sync",
	Short: "Run a one-off club synchronization",
	Long: `Pull a club roster from the external data provider and merge it into the
catalog, then exit. Useful for seeding a fresh database or for cron-style
scheduling outside the server process.`,
	RunE: runSync,
}

func init() {
	syncCmd.Flags().String("config", "", "Path to configuration file (YAML format, required)")
	syncCmd.Flags().String("club-id", "", "Club to synchronize (required)")
	syncCmd.Flags().Bool("overwrite", false, "Replace documents flagged for manual correction")

	if err := syncCmd.MarkFlagRequired("config"); err != nil {
		logger.Fatalf("Failed to mark config flag as required: %v", err)
	}
	if err := syncCmd.MarkFlagRequired("club-id"); err != nil {
		logger.Fatalf("Failed to mark club-id flag as required: %v", err)
	}
}

func runSync(cmd *cobra.Command, _ []string) error {
	ctx := context.Background()

	configPath, _ := cmd.Flags().GetString("config")
	clubID, _ := cmd.Flags().GetString("club-id")
	overwrite, _ := cmd.Flags().GetBool("overwrite")

	cfg, err := config.NewConfigLoader().LoadConfig(configPath)
	if err != nil {
		return fmt.Errorf("failed to load configuration: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	conn, err := store.NewConnection(ctx, &cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer func() {
		if err := conn.Close(context.Background()); err != nil {
			logger.Errorf("Failed to close database connection: %v", err)
		}
	}()

	providerTimeout, err := cfg.Provider.ProviderTimeout()
	if err != nil {
		return err
	}
	providerClient := provider.NewHTTPProvider(
		httpclient.NewDefaultClient(providerTimeout), cfg.Provider.Endpoint)

	manager := pkgsync.NewManager(providerClient, store.NewPlayerStore(conn), 0)

	result, err := manager.SyncClub(ctx, clubID, overwrite)
	if err != nil {
		return fmt.Errorf("sync failed for club %s: %w", clubID, err)
	}

	output, err := json.MarshalIndent(map[string]int64{
		"insertedPlayers": result.Inserted,
		"modifiedPlayers": result.Modified,
	}, "", "  ")
	if err != nil {
		return err
	}
	fmt.Println(string(output))

	return nil
}
