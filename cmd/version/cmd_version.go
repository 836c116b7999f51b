package version

import (
	"fmt"
	"runtime"

	"github.com/bayware/bwctl/internal/build_info"
	"github.com/spf13/cobra"
)

var short bool

func NewVersionCmd() *cobra.Command {
	versionCmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		Long:  "Display the bwctl version, commit, build date and the Go toolchain it was built with",
		Run: func(cmd *cobra.Command, args []string) {
			if short {
				fmt.Println(build_info.Version)
				return
			}
			fmt.Printf("Version: %s\n", build_info.Version)
			fmt.Printf("Commit:  %s\n", build_info.Commit)
			fmt.Printf("Date:    %s\n", build_info.Date)
			fmt.Printf("Go:      %s\n", runtime.Version())
		},
	}

	versionCmd.Flags().BoolVar(&short, "short", false, "Print the version number only")

	return versionCmd
}
