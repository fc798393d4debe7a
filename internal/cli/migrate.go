package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	intconfig "logisticshub/internal/config"
	intdb "logisticshub/internal/db"
)

func migrateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:       "migrate [up|down|status]",
		Short:     "Apply or roll back the database schema",
		Args:      cobra.MatchAll(cobra.ExactArgs(1), cobra.OnlyValidArgs),
		ValidArgs: []string{"up", "down", "status"},
		RunE: func(cmd *cobra.Command, args []string) error {
			env := intconfig.LoadEnv()
			intconfig.SetLogLevel(env.LogLevel)
			conn, err := intconfig.ConnectDB(env.DatabaseDSN)
			if err != nil {
				return err
			}
			defer intconfig.CloseDB()

			ctx := cmd.Context()
			switch args[0] {
			case "up":
				err = intdb.MigrateUp(ctx, conn)
			case "down":
				err = intdb.MigrateDown(ctx, conn)
			case "status":
				err = intdb.MigrateStatus(ctx, conn)
			default:
				err = fmt.Errorf("unknown migrate action %q", args[0])
			}
			if err != nil {
				return err
			}
			intconfig.GetLogger().WithField("action", args[0]).Info("migrations done")
			return nil
		},
	}
	return cmd
}
