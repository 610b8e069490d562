package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"maven-deps/internal/app"
)

type dependOptions struct {
	Client       string
	Settings     string
	SDKRoot      string
	ClientRepos  []string
	Group        string
	Artifact     string
	Version      string
	PackageIDs   []string
	Repositories []string
}

func newDependCommand() *cobra.Command {
	opts := dependOptions{}
	cmd := &cobra.Command{
		Use:   "depend",
		Short: "Declare a dependency for a client",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runDepend(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Client, "client", "", "Client name")
	cmd.Flags().StringVar(&opts.Settings, "settings", "", "Settings directory")
	cmd.Flags().StringVar(&opts.SDKRoot, "sdk-root", "", "SDK root path registered for this client")
	cmd.Flags().StringSliceVar(&opts.ClientRepos, "client-repo", nil, "Repository root(s) registered for this client")
	cmd.Flags().StringVar(&opts.Group, "group", "", "Artifact group id")
	cmd.Flags().StringVar(&opts.Artifact, "artifact", "", "Artifact id")
	cmd.Flags().StringVar(&opts.Version, "version", "", "Version constraint (e.g. 1.2.+, LATEST)")
	cmd.Flags().StringSliceVar(&opts.PackageIDs, "package-id", nil, "Platform package identifier(s)")
	cmd.Flags().StringSliceVar(&opts.Repositories, "repo", nil, "Extra repository root(s)")

	_ = viper.BindPFlag("client", cmd.Flags().Lookup("client"))
	_ = viper.BindPFlag("settings", cmd.Flags().Lookup("settings"))
	_ = viper.BindPFlag("sdk_root", cmd.Flags().Lookup("sdk-root"))

	return cmd
}

func runDepend(ctx context.Context, cmd *cobra.Command, opts dependOptions) error {
	service := newAppService()
	handle, err := service.Register(ctx, app.RegisterRequest{
		Client:       resolveString(cmd, opts.Client, "client", "client"),
		SettingsDir:  resolveString(cmd, opts.Settings, "settings", "settings"),
		SDKPath:      resolveString(cmd, opts.SDKRoot, "sdk_root", "sdk-root"),
		Repositories: opts.ClientRepos,
	})
	if err != nil {
		return err
	}
	if err := service.DependOn(ctx, handle, app.DependOnRequest{
		Group:        opts.Group,
		Artifact:     opts.Artifact,
		Version:      opts.Version,
		PackageIDs:   opts.PackageIDs,
		Repositories: opts.Repositories,
	}); err != nil {
		return err
	}
	fmt.Printf("recorded: %s:%s:%s for %s\n", opts.Group, opts.Artifact, opts.Version, handle.Client)
	return nil
}
