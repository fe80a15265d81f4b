package cli

import (
	"fmt"
	"os/signal"
	"syscall"
	"time"

	"github.com/spf13/cobra"

	"archibridge/interfaces/http/rest"
	"archibridge/pkg/auth"
)

func newServeCmd(a *app) *cobra.Command {
	var address string

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Run the REST API",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if address != "" {
				a.cfg.Server.Address = address
			}
			c := a.container

			handler, err := rest.NewRouter(c.CommandBus, c.QueryBus, a.cfg, c.Metrics, c.Logger).Setup()
			if err != nil {
				return err
			}

			ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
			defer stop()
			return rest.Serve(ctx, a.cfg, handler, c.Logger)
		},
	}

	cmd.Flags().StringVar(&address, "address", "", "Listen address (default from config)")
	return cmd
}

func newTokenCmd(a *app) *cobra.Command {
	var (
		roles []string
		ttl   time.Duration
	)

	cmd := &cobra.Command{
		Use:   "token <user>",
		Short: "Issue a bearer token for the REST API",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			authCfg := a.cfg.Server.Auth
			validator, err := auth.NewJWTValidator(auth.JWTConfig{
				SecretKey: authCfg.JWTSecret,
				Issuer:    authCfg.JWTIssuer,
				Audience:  []string{rest.Audience},
			})
			if err != nil {
				return fmt.Errorf("cannot issue tokens: %w", err)
			}

			token, err := validator.IssueToken(args[0], roles, ttl)
			if err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), token)
			return nil
		},
	}

	cmd.Flags().StringSliceVar(&roles, "role", nil, "Role to grant (repeatable)")
	cmd.Flags().DurationVar(&ttl, "ttl", 24*time.Hour, "Token lifetime")
	return cmd
}
