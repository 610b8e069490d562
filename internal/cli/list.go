package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"maven-deps/internal/app"
)

type listOptions struct {
	Client   string
	Settings string
}

func newListCommand() *cobra.Command {
	opts := listOptions{}
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List declared dependencies",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runList(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Client, "client", "", "Client name (all clients when omitted)")
	cmd.Flags().StringVar(&opts.Settings, "settings", "", "Settings directory")

	_ = viper.BindPFlag("settings", cmd.Flags().Lookup("settings"))

	return cmd
}

func runList(ctx context.Context, cmd *cobra.Command, opts listOptions) error {
	service := newAppService()
	result, err := service.List(ctx, app.ListRequest{
		SettingsDir: resolveString(cmd, opts.Settings, "settings", "settings"),
		Client:      opts.Client,
	})
	if err != nil {
		return err
	}
	for _, entry := range result.Entries {
		fmt.Printf("%s\t%s:%s:%s\n", entry.Client, entry.Group, entry.Artifact, entry.Version)
	}
	return nil
}
