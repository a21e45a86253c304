// Command cranepro runs the bridge crane asset manager: an embedded SQLite
// database with schema migrations, plus a loopback HTTP API the desktop
// shell talks to.
package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"

	"github.com/example/crane-asset-manager/internal/application"
	"github.com/example/crane-asset-manager/internal/config"
	apphttp "github.com/example/crane-asset-manager/internal/http"
	"github.com/example/crane-asset-manager/internal/logging"
	"github.com/example/crane-asset-manager/internal/persistence/sqlite"
	"github.com/example/crane-asset-manager/internal/persistence/sqlite/migration"
)

var configPath string

func main() {
	root := &cobra.Command{
		Use:   "cranepro",
		Short: "Bridge crane asset tracking and inspection manager",
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
	}
	root.PersistentFlags().StringVarP(&configPath, "config", "c", "", "path to YAML config file")

	root.AddCommand(
		serveCommand(),
		migrateCommand(),
		rollbackCommand(),
		statusCommand(),
		validateCommand(),
	)

	if err := root.Execute(); err != nil {
		os.Exit(1)
	}
}

// loadStore loads configuration, sets up logging, and opens the database.
func loadStore() (config.Config, *sqlite.Store, error) {
	cfg, err := config.Load(configPath)
	if err != nil {
		return config.Config{}, nil, err
	}
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	dbCfg := sqlite.DefaultConfig(cfg.Database.Path)
	if cfg.Database.BusyTimeout > 0 {
		dbCfg.BusyTimeout = cfg.Database.BusyTimeout.Std()
	}

	store, err := sqlite.Open(dbCfg)
	if err != nil {
		return config.Config{}, nil, err
	}
	return cfg, store, nil
}

func serveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "serve",
		Short: "Migrate the database and serve the local HTTP API",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, store, err := loadStore()
			if err != nil {
				return err
			}
			defer store.Close()

			ctx := cmd.Context()
			if _, err := store.Migrate(ctx); err != nil {
				return err
			}

			auth := application.NewAuthService(store.Users(), store.Sessions(), cfg.Auth.SessionTTL.Std())
			services := apphttp.Services{
				Auth:        auth,
				Assets:      application.NewAssetService(store.Assets(), store.Locations()),
				Inspections: application.NewInspectionService(store.Inspections(), store.Assets(), store.Media()),
				Maintenance: application.NewMaintenanceService(store.Maintenance(), store.Assets()),
				Store:       store,
			}
			server := apphttp.NewServer(cfg.Server.Addr(), services)

			errCh := make(chan error, 1)
			go func() { errCh <- server.Start() }()

			stop := make(chan os.Signal, 1)
			signal.Notify(stop, syscall.SIGINT, syscall.SIGTERM)

			select {
			case err := <-errCh:
				return err
			case sig := <-stop:
				logrus.WithField("signal", sig.String()).Info("Shutting down")
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
			defer cancel()
			return server.Shutdown(shutdownCtx)
		},
	}
}

func migrateCommand() *cobra.Command {
	var target int
	cmd := &cobra.Command{
		Use:   "migrate",
		Short: "Apply pending schema migrations and exit",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadStore()
			if err != nil {
				return err
			}
			defer store.Close()

			var results []migration.Result
			if target > 0 {
				results, err = store.MigrateTo(cmd.Context(), target)
			} else {
				results, err = store.Migrate(cmd.Context())
			}
			printResults(results)
			return err
		},
	}
	cmd.Flags().IntVar(&target, "target", 0, "highest schema version to apply (default: latest)")
	return cmd
}

func rollbackCommand() *cobra.Command {
	var target int
	cmd := &cobra.Command{
		Use:   "rollback",
		Short: "Roll back the schema to a lower version",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadStore()
			if err != nil {
				return err
			}
			defer store.Close()

			results, err := store.Rollback(cmd.Context(), target)
			printResults(results)
			return err
		},
	}
	cmd.Flags().IntVar(&target, "target", 0, "schema version to roll back to")
	return cmd
}

func printResults(results []migration.Result) {
	for _, result := range results {
		marker := "ok"
		if !result.Success {
			marker = "FAILED"
		}
		fmt.Printf("%3d  %-40s %-8s %s\n", result.Version, result.Name, marker, result.ExecutionTime)
	}
}

func statusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show applied and pending schema versions",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadStore()
			if err != nil {
				return err
			}
			defer store.Close()

			status, err := store.Status(cmd.Context())
			if err != nil {
				return err
			}

			fmt.Printf("current version: %d\n", status.CurrentVersion)
			fmt.Printf("latest version:  %d\n", status.LatestVersion)
			fmt.Printf("applied:         %v\n", status.Applied)
			if status.UpToDate() {
				fmt.Println("schema is up to date")
			} else {
				fmt.Printf("pending:         %v\n", status.Pending)
			}
			return nil
		},
	}
}

func validateCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "validate",
		Short: "Audit the registered migration set without executing it",
		RunE: func(cmd *cobra.Command, args []string) error {
			_, store, err := loadStore()
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.Validate(); err != nil {
				return err
			}
			fmt.Println("all migrations validated")
			return nil
		},
	}
}
