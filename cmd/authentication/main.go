package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ltplabs/ecatalog/internal/authentication/app"
	"github.com/ltplabs/ecatalog/pkg/cryptox"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "authentication",
		Short: "e-catalog authentication service",
		Long:  `Verifies admin and client credentials against the database service and issues HS256 access tokens.`,
		RunE:  serve,
	}

	var pepperPath string
	pepperCmd := &cobra.Command{
		Use:   "pepper",
		Short: "Create the shared password pepper file if it does not exist",
		RunE: func(cmd *cobra.Command, args []string) error {
			if pepperPath == "" {
				pepperPath = os.Getenv("PASSWORD_PEPPER_FILE")
			}
			if pepperPath == "" {
				return fmt.Errorf("--file or PASSWORD_PEPPER_FILE is required")
			}
			if _, err := cryptox.LoadPepper("", pepperPath, true); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "pepper ready at %s\n", pepperPath)
			return nil
		},
	}
	pepperCmd.Flags().StringVar(&pepperPath, "file", "", "pepper file path")

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP server (default)",
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "secret",
			Short: "Print a random value suitable for JWT_SECRET",
			RunE: func(cmd *cobra.Command, args []string) error {
				s, err := cryptox.GenerateSecret(32)
				if err != nil {
					return err
				}
				fmt.Fprintln(cmd.OutOrStdout(), s)
				return nil
			},
		},
		pepperCmd,
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "authentication %s\n", app.BuildVersion)
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
