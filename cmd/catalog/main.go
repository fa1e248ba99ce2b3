package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ltplabs/ecatalog/internal/catalog/app"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "catalog",
		Short: "e-catalog public gateway",
		Long:  `Serves /api/... and forwards every call to the database or authentication service.`,
		RunE:  serve,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP gateway (default)",
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "catalog %s\n", app.BuildVersion)
			},
		},
	)

	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func serve(cmd *cobra.Command, args []string) error {
	application, err := app.New(app.LoadConfig())
	if err != nil {
		return fmt.Errorf("failed to initialize application: %w", err)
	}
	return application.Run()
}
