package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	intconfig "logisticshub/internal/config"
	"logisticshub/internal/domain"
	"logisticshub/internal/services"
)

func userCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "user",
		Short: "Manage back-office accounts",
	}
	cmd.AddCommand(userCreateCommand())
	return cmd
}

func userCreateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account, typically the first admin",
		RunE: func(cmd *cobra.Command, args []string) error {
			username, _ := cmd.Flags().GetString("username")
			password, _ := cmd.Flags().GetString("password")
			role, _ := cmd.Flags().GetString("role")

			env := intconfig.LoadEnv()
			if _, err := intconfig.ConnectDB(env.DatabaseDSN); err != nil {
				return err
			}
			defer intconfig.CloseDB()

			id, err := services.UserService{RequestID: "cli"}.Create(cmd.Context(), "cli", username, password, role)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "created user %s (id=%d)\n", username, id)
			return nil
		},
	}
	cmd.Flags().String("username", "", "login name")
	cmd.Flags().String("password", "", "password, at least 8 characters")
	cmd.Flags().String("role", domain.RoleAdmin, "admin or operator")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("password")
	return cmd
}
