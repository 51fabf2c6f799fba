package cli

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"
)

type VersionInfo struct {
	Version string
	Commit  string
}

func (vi VersionInfo) String() string {
	return fmt.Sprintf("%s.%s", vi.Version, vi.Commit)
}

func NewVersionCommand(info VersionInfo) *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "Print the version",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			_, err := fmt.Fprintf(cmd.OutOrStdout(), "pathways %s (%s, %s/%s)\n",
				info, runtime.Version(), runtime.GOOS, runtime.GOARCH)
			return err
		},
	}
}
