package cmd

import (
	"os"

	"github.com/charmbracelet/log"
	"github.com/spf13/cobra"

	"github.com/yuzuhara/betbook/config"
)

var resetCmdFlags struct {
	Force bool
}

var resetCmd = &cobra.Command{
	Use:   "reset",
	Short: "Delete the database file",
	Long:  `This command deletes the sqlite database file, removing all users, bets and invitations. The schema is recreated on the next start.`,
	Run:   reset,
}

func init() {
	resetCmd.Flags().BoolVar(&resetCmdFlags.Force, "force", false, "Don't ask for confirmation")

	rootCmd.AddCommand(resetCmd)
}

func reset(_ *cobra.Command, _ []string) {
	cfg, err := config.Load(rootCmdPersistentFlags.ConfigFile)
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	if !resetCmdFlags.Force {
		log.Warn("this deletes all users, bets and invitations", "database", cfg.Database.Path)
		log.Print("re-run with --force to confirm")
		return
	}

	if err := os.Remove(cfg.Database.Path); err != nil {
		if os.IsNotExist(err) {
			log.Info("database file doesn't exist, nothing to do", "database", cfg.Database.Path)
			return
		}
		log.Fatalf("failed to delete database: %v", err)
	}
	log.Info("database deleted", "database", cfg.Database.Path)
}
