// Package cli implements the studentctl admin commands.
//
// The commands talk to the database directly through the sqlite repository,
// so they work while the server is stopped.
package cli

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/sakif/student-records/internal/config"
	"github.com/sakif/student-records/internal/repository/sqlite"
)

// NewRootCmd builds the command tree. Command output goes to out.
func NewRootCmd(out io.Writer) *cobra.Command {
	var configPath string

	root := &cobra.Command{
		Use:           "studentctl",
		Short:         "Student records admin CLI",
		Long:          "Inspect and migrate the student-records database.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}
	root.SetOut(out)
	root.PersistentFlags().StringVar(&configPath, "config", "", "path to the configuration YAML file (default: CONFIG_PATH, then environment only)")

	// openDB is resolved lazily so --config is parsed before it runs.
	openDB := func() (*sqlite.DB, error) {
		cfg, err := config.Load(resolveConfigPath(configPath))
		if err != nil {
			return nil, err
		}
		db, err := sqlite.New(cfg.StoragePath)
		if err != nil {
			return nil, fmt.Errorf("opening %s: %w", cfg.StoragePath, err)
		}
		return db, nil
	}

	root.AddCommand(
		newMigrateCmd(openDB),
		newStudentsCmd(openDB),
		newUsersCmd(openDB),
	)
	return root
}

type dbOpener func() (*sqlite.DB, error)
