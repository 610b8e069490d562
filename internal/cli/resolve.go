package cli

import (
	"context"
	"fmt"
	"sort"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"maven-deps/internal/app"
)

type resolveOptions struct {
	Settings     string
	SDKRoot      string
	Repositories []string
	UseLatest    bool
	KeepMissing  bool
	OutputDir    string
}

func newResolveCommand() *cobra.Command {
	opts := resolveOptions{}
	cmd := &cobra.Command{
		Use:   "resolve",
		Short: "Resolve all clients' dependencies to a consistent candidate set",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runResolve(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Settings, "settings", "", "Settings directory")
	cmd.Flags().StringVar(&opts.SDKRoot, "sdk-root", "", "SDK root path for ${SDK} repositories")
	cmd.Flags().StringSliceVar(&opts.Repositories, "repo", nil, "Repository root(s)")
	cmd.Flags().BoolVar(&opts.UseLatest, "use-latest", false, "Fall back to the newest requested version on conflicts")
	cmd.Flags().BoolVar(&opts.KeepMissing, "keep-missing", false, "Skip malformed persisted records instead of failing")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory for the resolved lock file")

	_ = viper.BindPFlag("settings", cmd.Flags().Lookup("settings"))
	_ = viper.BindPFlag("sdk_root", cmd.Flags().Lookup("sdk-root"))
	_ = viper.BindPFlag("repositories", cmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("use_latest", cmd.Flags().Lookup("use-latest"))
	_ = viper.BindPFlag("keep_missing", cmd.Flags().Lookup("keep-missing"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))

	return cmd
}

func runResolve(ctx context.Context, cmd *cobra.Command, opts resolveOptions) error {
	service := newAppService()
	result, err := service.Resolve(ctx, resolveRequest(cmd, opts))
	if err != nil {
		return err
	}
	printResolved(result)
	return nil
}

func resolveRequest(cmd *cobra.Command, opts resolveOptions) app.ResolveRequest {
	return app.ResolveRequest{
		SettingsDir:  resolveString(cmd, opts.Settings, "settings", "settings"),
		SDKPath:      resolveString(cmd, opts.SDKRoot, "sdk_root", "sdk-root"),
		Repositories: resolveStrings(cmd, opts.Repositories, "repositories", "repo"),
		UseLatest:    resolveBool(cmd, opts.UseLatest, "use_latest", "use-latest"),
		KeepMissing:  resolveBool(cmd, opts.KeepMissing, "keep_missing", "keep-missing"),
		OutputDir:    resolveString(cmd, opts.OutputDir, "output", "output"),
	}
}

func printResolved(result app.ResolveResult) {
	keys := make([]string, 0, len(result.Artifacts))
	for key := range result.Artifacts {
		keys = append(keys, key)
	}
	sort.Strings(keys)
	for _, key := range keys {
		artifact := result.Artifacts[key]
		fmt.Printf("%s -> %s (%s)\n", key, artifact.Version, artifact.Repository)
	}
}
