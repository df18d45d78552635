package main

import (
	"bytes"
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/fatih/color"
	"github.com/itchyny/json2yaml"
	"github.com/spf13/cobra"

	"dictate/internal/app"
	"dictate/internal/config"
	"dictate/internal/database"
	"dictate/internal/repository"
	"dictate/internal/service"
)

func main() {
	root := &cobra.Command{
		Use:          "backup",
		Short:        "Export or import the saved dictation library",
		SilenceUsage: true,
		Long: `Environment Variables:
  DATABASE_TYPE    Database type: sqlite, postgres, or mysql (default: sqlite)
  DB_PATH          SQLite database path (default: ./dictate.db)
  DATABASE_URL     PostgreSQL or MySQL connection URL`,
	}
	root.AddCommand(newExportCmd(), newImportCmd())

	if err := root.Execute(); err != nil {
		color.New(color.FgHiRed).Printf("error: %v\n", err)
		os.Exit(1)
	}
}

func newExportCmd() *cobra.Command {
	var output string
	var asYAML bool

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Write the library to a JSON file (or YAML for review)",
		RunE: func(cmd *cobra.Command, args []string) error {
			// Generate default filename if not provided
			if output == "" {
				ext := ".json"
				if asYAML {
					ext = ".yaml"
				}
				output = "backup_" + time.Now().Format("20060102_150405") + ext
			}

			return withBackupService(cmd.Context(), func(ctx context.Context, backup *service.BackupService) error {
				var buf bytes.Buffer
				summary, err := backup.ExportToWriter(ctx, &buf)
				if err != nil {
					return err
				}

				var data io.Reader = &buf
				if asYAML {
					var yaml bytes.Buffer
					if err := json2yaml.Convert(&yaml, &buf); err != nil {
						return fmt.Errorf("failed to convert to YAML: %w", err)
					}
					data = &yaml
				}

				if err := writeFile(output, data); err != nil {
					return err
				}

				color.New(color.FgGreen).Printf("Exported %d sentences to %s\n", summary.Sentences, output)
				if summary.Defaults {
					color.New(color.FgYellow).Println("Nothing was saved yet, the built-in library was exported")
				}
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&output, "output", "", "Output file path (default: backup_YYYYMMDD_HHMMSS.json)")
	cmd.Flags().BoolVar(&asYAML, "yaml", false, "write YAML instead of JSON (not importable)")
	return cmd
}

func newImportCmd() *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "import",
		Short: "Replace the library with a JSON file",
		RunE: func(cmd *cobra.Command, args []string) error {
			file, err := os.Open(input)
			if err != nil {
				return fmt.Errorf("failed to open input file: %w", err)
			}
			defer file.Close()

			return withBackupService(cmd.Context(), func(ctx context.Context, backup *service.BackupService) error {
				summary, err := backup.ImportFromReader(ctx, file)
				if err != nil {
					return err
				}
				color.New(color.FgGreen).Printf("Imported %d sentences from %s\n", summary.Sentences, input)
				color.New(color.FgHiCyan).Println("Practice restarts from the first sentence")
				return nil
			})
		},
	}

	cmd.Flags().StringVar(&input, "input", "", "Input file path (required)")
	cmd.MarkFlagRequired("input")
	return cmd
}

func withBackupService(ctx context.Context, fn func(context.Context, *service.BackupService) error) error {
	if ctx == nil {
		ctx = context.Background()
	}

	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	logger := app.NewLogger(cfg.Log)

	db, err := database.InitializeWithConfig(cfg)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	defer db.Close()

	// Run migrations to ensure schema is up to date
	if err := db.RunMigrations(cfg.MigrationsPath); err != nil {
		return fmt.Errorf("failed to run migrations: %w", err)
	}

	logger.Debug("backup database ready", slog.String("type", cfg.DatabaseType))
	return fn(ctx, service.NewBackupService(logger, repository.NewSettingsRepository(db)))
}

func writeFile(path string, data io.Reader) error {
	// Ensure directory exists
	if dir := filepath.Dir(path); dir != "." && dir != "" {
		if err := os.MkdirAll(dir, 0o755); err != nil {
			return fmt.Errorf("failed to create output directory: %w", err)
		}
	}

	file, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	if _, err := io.Copy(file, data); err != nil {
		file.Close()
		return fmt.Errorf("failed to write output file: %w", err)
	}
	return file.Close()
}
