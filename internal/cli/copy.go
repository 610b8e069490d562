package cli

import (
	"bufio"
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"maven-deps/internal/app"
	"maven-deps/internal/ports"
)

type copyOptions struct {
	resolveOptions
	DestDir string
	Yes     bool
}

func newCopyCommand() *cobra.Command {
	opts := copyOptions{}
	cmd := &cobra.Command{
		Use:   "copy",
		Short: "Resolve and deploy artifacts into a destination directory",
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runCopy(cmd.Context(), cmd, opts)
		},
	}

	cmd.Flags().StringVar(&opts.Settings, "settings", "", "Settings directory")
	cmd.Flags().StringVar(&opts.SDKRoot, "sdk-root", "", "SDK root path for ${SDK} repositories")
	cmd.Flags().StringSliceVar(&opts.Repositories, "repo", nil, "Repository root(s)")
	cmd.Flags().BoolVar(&opts.UseLatest, "use-latest", false, "Fall back to the newest requested version on conflicts")
	cmd.Flags().BoolVar(&opts.KeepMissing, "keep-missing", false, "Skip malformed persisted records instead of failing")
	cmd.Flags().StringVar(&opts.OutputDir, "output", "", "Directory for the resolved lock file")
	cmd.Flags().StringVar(&opts.DestDir, "dest", "", "Destination directory for deployed artifacts")
	cmd.Flags().BoolVar(&opts.Yes, "yes", false, "Remove stale copies without prompting")

	_ = viper.BindPFlag("settings", cmd.Flags().Lookup("settings"))
	_ = viper.BindPFlag("sdk_root", cmd.Flags().Lookup("sdk-root"))
	_ = viper.BindPFlag("repositories", cmd.Flags().Lookup("repo"))
	_ = viper.BindPFlag("use_latest", cmd.Flags().Lookup("use-latest"))
	_ = viper.BindPFlag("keep_missing", cmd.Flags().Lookup("keep-missing"))
	_ = viper.BindPFlag("output", cmd.Flags().Lookup("output"))
	_ = viper.BindPFlag("dest", cmd.Flags().Lookup("dest"))

	return cmd
}

func runCopy(ctx context.Context, cmd *cobra.Command, opts copyOptions) error {
	service := newAppService()
	var confirm ports.ConfirmFunc
	if !opts.Yes {
		confirm = promptConfirm
	}
	result, err := service.Copy(ctx, app.CopyRequest{
		ResolveRequest: resolveRequest(cmd, opts.resolveOptions),
		DestDir:        resolveString(cmd, opts.DestDir, "dest", "dest"),
	}, confirm)
	if err != nil {
		return err
	}
	fmt.Printf("deployed %d artifact(s) to %s\n", len(result.Resolved.Artifacts), result.DestDir)
	return nil
}

func promptConfirm(message string) bool {
	fmt.Printf("%s [y/N]: ", message)
	reader := bufio.NewReader(os.Stdin)
	answer, err := reader.ReadString('\n')
	if err != nil {
		return false
	}
	answer = strings.ToLower(strings.TrimSpace(answer))
	return answer == "y" || answer == "yes"
}
