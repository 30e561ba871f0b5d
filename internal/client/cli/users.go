package cli

import (
	"github.com/dmitrijs2005/technotes/internal/client/client"
	"github.com/dmitrijs2005/technotes/internal/common"
	"github.com/spf13/cobra"
)

func (a *App) usersCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "users",
		Short: "Manage accounts",
	}
	cmd.AddCommand(a.usersListCmd(), a.usersGetCmd(), a.usersCreateCmd(), a.usersUpdateCmd(), a.usersDeleteCmd())
	return cmd
}

func (a *App) usersListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all accounts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			users, err := a.client.ListAccounts(ctx)
			if err != nil {
				return err
			}
			return a.printJSON(users)
		},
	}
}

func (a *App) usersGetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "get <id>",
		Short: "Show one account",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			u, err := a.client.GetAccount(ctx, args[0])
			if err != nil {
				return err
			}
			return a.printJSON(u)
		},
	}
}

func (a *App) usersCreateCmd() *cobra.Command {
	var (
		username string
		roles    []string
	)

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create an account",
		Long: `Create an account. The password is read from the terminal without echo.

Example:
  technotes users create --username alice --roles admin,dev`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			pw, err := GetPassword(a.out)
			if err != nil {
				return err
			}
			defer common.WipeByteArray(pw)

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			msg, err := a.client.CreateAccount(ctx, username, pw, roles)
			if err != nil {
				return err
			}
			return a.printMessage(msg)
		},
	}

	cmd.Flags().StringVar(&username, "username", "", "account username (required)")
	cmd.Flags().StringSliceVar(&roles, "roles", nil, "comma-separated roles (required)")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("roles")
	return cmd
}

func (a *App) usersUpdateCmd() *cobra.Command {
	var (
		u              client.AccountUpdate
		changePassword bool
	)

	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Replace an account",
		Long: `Replace username, roles and active flag of an account. The password is
kept unless --change-password is given.

Example:
  technotes users update 0b6c... --username alice --roles admin --active=false`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			u.ID = args[0]
			if changePassword {
				pw, err := GetPassword(a.out)
				if err != nil {
					return err
				}
				defer common.WipeByteArray(pw)
				u.Password = pw
			}

			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			msg, err := a.client.UpdateAccount(ctx, u)
			if err != nil {
				return err
			}
			return a.printMessage(msg)
		},
	}

	cmd.Flags().StringVar(&u.Username, "username", "", "account username (required)")
	cmd.Flags().StringSliceVar(&u.Roles, "roles", nil, "comma-separated roles (required)")
	cmd.Flags().BoolVar(&u.Active, "active", false, "whether the account is active (required)")
	cmd.Flags().BoolVar(&changePassword, "change-password", false, "prompt for a new password")
	_ = cmd.MarkFlagRequired("username")
	_ = cmd.MarkFlagRequired("roles")
	_ = cmd.MarkFlagRequired("active")
	return cmd
}

func (a *App) usersDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete an account without notes",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			msg, err := a.client.DeleteAccount(ctx, args[0])
			if err != nil {
				return err
			}
			return a.printMessage(msg)
		},
	}
}
