package cli

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"
)

func newMigrateCmd(openDB dbOpener) *cobra.Command {
	return &cobra.Command{
		Use:   "migrate",
		Short: "Create missing tables",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			// New migrates on open too; Migrate is idempotent.
			if err := db.Migrate(); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Database is up to date.")
			return nil
		},
	}
}

func newStudentsCmd(openDB dbOpener) *cobra.Command {
	studentsCmd := &cobra.Command{
		Use:   "students",
		Short: "Inspect student records",
	}

	studentsCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all students",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			students, err := db.Students().List(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]any, 0, len(students))
			for _, s := range students {
				rows = append(rows, []any{s.ID, s.Name, s.City, s.Address, s.PostalCode, s.UpdatedAt.Format(time.DateTime)})
			}
			RenderTable(cmd.OutOrStdout(), []string{"ID", "Name", "City", "Address", "Postal code", "Updated"}, rows)
			return nil
		},
	})
	return studentsCmd
}

func newUsersCmd(openDB dbOpener) *cobra.Command {
	usersCmd := &cobra.Command{
		Use:   "users",
		Short: "Inspect registered users",
	}

	usersCmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List all users (passwords are never shown)",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			db, err := openDB()
			if err != nil {
				return err
			}
			defer db.Close()

			users, err := db.Users().List(cmd.Context())
			if err != nil {
				return err
			}

			rows := make([][]any, 0, len(users))
			for _, u := range users {
				rows = append(rows, []any{u.ID, u.Username, u.CreatedAt.Format(time.DateTime)})
			}
			RenderTable(cmd.OutOrStdout(), []string{"ID", "Username", "Created"}, rows)
			return nil
		},
	})
	return usersCmd
}
