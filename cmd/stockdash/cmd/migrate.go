package cmd

import (
	"fmt"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/trogers1052/stock-dashboard/internal/config"
	"github.com/trogers1052/stock-dashboard/internal/database"
)

var migrateCmd = &cobra.Command{
	Use:       "migrate [up|down]",
	Short:     "Apply or roll back the PostgreSQL schema",
	Args:      cobra.MatchAll(cobra.MaximumNArgs(1), cobra.OnlyValidArgs),
	ValidArgs: []string{"up", "down"},
	RunE:      runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	if cfg.Store.Driver != config.StorePostgres {
		return fmt.Errorf("migrations only apply to the %s store", config.StorePostgres)
	}

	direction := "up"
	if len(args) == 1 {
		direction = args[0]
	}

	db, err := database.New(cfg.Database.ConnectionString())
	if err != nil {
		return err
	}
	defer db.Close()

	if direction == "down" {
		err = db.MigrateDown()
	} else {
		err = db.MigrateUp()
	}
	if err != nil {
		return err
	}

	log.Info().Str("direction", direction).Msg("migrations applied")
	return nil
}
