package cli

import (
	"quizdeck/config"
	"quizdeck/models"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func newMigrateCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create or update the database tables",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg := config.Load()

			db, err := config.InitDB(cfg)
			if err != nil {
				return err
			}

			if err := db.AutoMigrate(
				&models.User{},
				&models.Quiz{},
				&models.Question{},
				&models.QuizResult{},
			); err != nil {
				return err
			}

			logrus.Info("database migrated")
			return nil
		},
	}
}
