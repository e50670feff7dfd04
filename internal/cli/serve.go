package cli

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/spf13/cobra"

	"github.com/GriffinCanCode/mathd/internal/infrastructure/config"
	"github.com/GriffinCanCode/mathd/internal/infrastructure/server"
)

// ServeOptions holds flags for the serve command.
type ServeOptions struct {
	*RootOptions
	Transport string
	Host      string
	Port      string
}

// NewServeCommand creates the serve command.
func NewServeCommand(rootOpts *RootOptions) *cobra.Command {
	opts := &ServeOptions{RootOptions: rootOpts}

	cmd := &cobra.Command{
		Use:   "serve",
		Short: "Serve the tool catalog",
		Long: `Serve the tool catalog over MCP stdio (the default) or HTTP.

Flags override the config file and environment.

Example:
  mathd serve --transport http --port 8080`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := loadServeConfig(cmd, opts)
			if err != nil {
				return err
			}

			srv, err := server.NewServer(cfg)
			if err != nil {
				return err
			}
			defer srv.Close()

			ctx, stop := signal.NotifyContext(contextOf(cmd), os.Interrupt, syscall.SIGTERM)
			defer stop()

			return srv.Run(ctx, cmd.InOrStdin(), cmd.OutOrStdout())
		},
	}

	cmd.Flags().StringVarP(&opts.Transport, "transport", "t", config.TransportStdio, "transport to serve (stdio|http)")
	cmd.Flags().StringVar(&opts.Host, "host", "", "HTTP listen host")
	cmd.Flags().StringVarP(&opts.Port, "port", "p", "", "HTTP listen port")

	return cmd
}

// loadServeConfig applies flags the user set on top of the loaded config
func loadServeConfig(cmd *cobra.Command, opts *ServeOptions) (*config.Config, error) {
	cfg, err := config.Load(opts.ConfigPath)
	if err != nil {
		return nil, err
	}

	flags := cmd.Flags()
	if flags.Changed("transport") {
		cfg.Server.Transport = opts.Transport
	}
	if flags.Changed("host") {
		cfg.Server.Host = opts.Host
	}
	if flags.Changed("port") {
		cfg.Server.Port = opts.Port
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func contextOf(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}
