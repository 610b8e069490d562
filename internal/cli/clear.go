package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"maven-deps/internal/app"
)

type clearOptions struct {
	Client   string
	Settings string
}

func newClearCommand() *cobra.Command {
	opts := clearOptions{}
	cmd := &cobra.Command{
		Use:   "clear",
		Short: "Erase a client's declared dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runClear(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Client, "client", "", "Client name")
	cmd.Flags().StringVar(&opts.Settings, "settings", "", "Settings directory")

	_ = viper.BindPFlag("client", cmd.Flags().Lookup("client"))
	_ = viper.BindPFlag("settings", cmd.Flags().Lookup("settings"))

	return cmd
}

func runClear(ctx context.Context, cmd *cobra.Command, opts clearOptions) error {
	service := newAppService()
	handle, err := service.Register(ctx, app.RegisterRequest{
		Client:      resolveString(cmd, opts.Client, "client", "client"),
		SettingsDir: resolveString(cmd, opts.Settings, "settings", "settings"),
	})
	if err != nil {
		return err
	}
	if err := service.ClearDependencies(ctx, handle); err != nil {
		return err
	}
	fmt.Printf("cleared: %s\n", handle.Client)
	return nil
}
