package main

import (
	"fmt"
	"os"

	"inpatient-registration/cmd/bootstrap"
	"inpatient-registration/internal/infrastructure/database"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
)

func main() {
	if err := newRootCmd().Execute(); err != nil {
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "inpatient",
		Short:         "Inpatient registration service",
		SilenceUsage:  true,
		SilenceErrors: false,
	}

	root.AddCommand(
		newServeCmd(),
		newMigrateCmd(),
		newSeedCmd(),
		newListCmd(),
	)

	return root
}

func newServeCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Start the HTTP API",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			// Initialize application with all dependencies
			app, err := bootstrap.New()
			if err != nil {
				logrus.Fatalf("Failed to initialize application: %v", err)
			}

			// Run the application
			app.Run()
		},
	}
}

func newMigrateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply or roll back database migrations",
	}

	cmd.AddCommand(
		migrateDirectionCmd("up", "Apply all pending migrations", database.Up),
		migrateDirectionCmd("down", "Roll back all migrations", database.Down),
	)

	return cmd
}

func migrateDirectionCmd(use, short string, direction database.Direction) *cobra.Command {
	return &cobra.Command{
		Use:   use,
		Short: short,
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			app, err := bootstrap.NewCLI()
			if err != nil {
				return err
			}
			defer app.Close()

			if app.DB == nil {
				return fmt.Errorf("migrate requires STORE_DRIVER=postgres")
			}

			if err := database.Migrate(app.DB, direction); err != nil {
				return err
			}
			app.Log.Infof("Migrations %s complete", use)
			return nil
		},
	}
}
