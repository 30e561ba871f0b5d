package cli

import (
	"fmt"
	"time"

	"github.com/dmitrijs2005/technotes/internal/client/config"
	"github.com/spf13/cobra"
)

func (a *App) rootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "technotes",
		Short:         "technotes manages accounts and notes on a technotes server",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := config.Load(a.configFile, cmd.Flags())
			if err != nil {
				return err
			}
			a.cfg = cfg

			c, err := a.dial(cfg.ServerEndpointAddr)
			if err != nil {
				return fmt.Errorf("connect %s: %w", cfg.ServerEndpointAddr, err)
			}
			a.client = c
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.configFile, "config", "", "config file (default: $HOME/.technotes/config.yaml)")
	root.PersistentFlags().String(config.KeyServer, "127.0.0.1:50051", "address and port of the technotes gRPC server")
	root.PersistentFlags().Duration(config.KeyTimeout, 5*time.Second, "per-request timeout")

	root.AddCommand(a.pingCmd())
	root.AddCommand(a.usersCmd())
	root.AddCommand(a.notesCmd())

	return root
}

func (a *App) pingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the server is reachable",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx, cancel := a.callContext(cmd.Context())
			defer cancel()

			if err := a.client.Ping(ctx); err != nil {
				return err
			}
			fmt.Fprintln(a.out, "OK")
			return nil
		},
	}
}
