package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/ltplabs/ecatalog/internal/database/app"
	"github.com/ltplabs/ecatalog/internal/database/service"
	"github.com/ltplabs/ecatalog/pkg/cryptox"
	"github.com/ltplabs/ecatalog/pkg/envx"
)

func main() {
	rootCmd := &cobra.Command{
		Use:   "database",
		Short: "e-catalog database service",
		Long:  `Owns the SQLite database and exposes it over HTTP to the catalog gateway and the authentication service.`,
		RunE:  serve,
	}

	rootCmd.AddCommand(
		&cobra.Command{
			Use:   "serve",
			Short: "Run the HTTP service (default)",
			RunE:  serve,
		},
		&cobra.Command{
			Use:   "migrate",
			Short: "Apply pending schema migrations and exit",
			RunE:  migrate,
		},
		adminCmd(),
		&cobra.Command{
			Use:   "version",
			Short: "Show version information",
			Run: func(cmd *cobra.Command, args []string) {
				fmt.Fprintf(cmd.OutOrStdout(), "database %s\n", app.BuildVersion)
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

func migrate(cmd *cobra.Command, args []string) error {
	cfg := app.LoadConfig()

	st, err := app.OpenStore(cfg)
	if err != nil {
		return err
	}
	defer st.Close()

	if err := st.ApplyMigrations(); err != nil {
		return err
	}

	version, dirty, err := st.MigrationVersion()
	if err != nil {
		return err
	}
	fmt.Fprintf(cmd.OutOrStdout(), "schema at version %d (dirty=%t)\n", version, dirty)
	return nil
}

func adminCmd() *cobra.Command {
	var (
		name     string
		email    string
		password string
		contact  string
	)

	create := &cobra.Command{
		Use:   "create",
		Short: "Create an administrator account",
		Long: `Creates an administrator. Administrators cannot be created over HTTP.
When --password is omitted a random password is generated and printed once.`,
		RunE: func(cmd *cobra.Command, args []string) error {
			pepper, err := cryptox.LoadPepper(
				os.Getenv("PASSWORD_PEPPER"),
				envx.String("PASSWORD_PEPPER_FILE", ""),
				false,
			)
			if err != nil {
				return err
			}

			generated := password == ""
			if generated {
				if password, err = cryptox.GeneratePassword(20); err != nil {
					return err
				}
			}

			hash, err := cryptox.NewHasher(pepper).Hash(password)
			if err != nil {
				return err
			}

			cfg := app.LoadConfig()
			st, err := app.OpenStore(cfg)
			if err != nil {
				return err
			}
			defer st.Close()
			if err := st.ApplyMigrations(); err != nil {
				return err
			}

			var contactPtr *string
			if contact != "" {
				contactPtr = &contact
			}

			admins := &service.AdminService{Store: st}
			a, err := admins.Create(context.Background(), name, email, hash, contactPtr)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "admin created: id=%s email=%s\n", a.ID, a.Email)
			if generated {
				fmt.Fprintf(out, "generated password: %s\n", password)
			}
			return nil
		},
	}

	create.Flags().StringVar(&name, "name", "", "administrator name (required)")
	create.Flags().StringVar(&email, "email", "", "administrator email (required)")
	create.Flags().StringVar(&password, "password", "", "initial password (generated when empty)")
	create.Flags().StringVar(&contact, "contact", "", "optional contact, e.g. phone number")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("email")

	admin := &cobra.Command{
		Use:   "admin",
		Short: "Manage administrator accounts",
	}
	admin.AddCommand(create)
	return admin
}
