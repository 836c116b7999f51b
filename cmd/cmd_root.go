package cmd

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/bayware/bwctl/cmd/render"
	"github.com/bayware/bwctl/cmd/version"
	"github.com/bayware/bwctl/internal/build_info"
	"github.com/fatih/color"
	"github.com/spf13/cobra"
	"gopkg.in/natefinch/lumberjack.v2"
)

// LogFile is written to the working directory of every invocation.
const LogFile = "bwctl.log"

var (
	verbose       bool
	terminalLevel = new(slog.LevelVar)
)

var RootCmd = &cobra.Command{
	Use:   "bwctl",
	Short: "Render service fabrics into terraform",
	Long:  "Render multi-cloud fabric topologies (orchestrators, processors and workloads across AWS, GCP and Azure) into terraform configurations. Docs: " + getDocURL(),
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if verbose {
			terminalLevel.Set(slog.LevelDebug)
		}

		printBanner()

		if err := checkWritePermissions(); err != nil {
			return fmt.Errorf("%s cannot be written: %w", LogFile, err)
		}
		return nil
	},
}

func init() {
	cobra.EnableTraverseRunHooks = true

	fileLog := &lumberjack.Logger{
		Filename: LogFile,
		MaxSize:  25,
		Compress: true,
	}

	terminalLevel.Set(slog.LevelInfo)
	slog.SetDefault(slog.New(teeHandler{
		NewPrettyHandler(fileLog, PrettyHandlerOptions{Level: slog.LevelDebug}),
		NewPrettyHandler(os.Stdout, PrettyHandlerOptions{Level: terminalLevel, Color: true}),
	}))

	RootCmd.PersistentFlags().BoolVarP(&verbose, "verbose", "v", false, "Also print debug logs to the terminal (the log file always has them)")

	RootCmd.AddCommand(
		render.NewRenderCmd(),
		version.NewVersionCmd(),
	)
}

func printBanner() {
	if build_info.Version == build_info.DefaultDevVersion {
		fmt.Println(color.YellowString("bwctl development build; releases: https://github.com/bayware/bwctl/releases"))
	}

	fmt.Printf("%s %s %s %s\n",
		color.CyanString("bwctl"),
		color.GreenString("version=%s", build_info.Version),
		color.YellowString("commit=%s", build_info.Commit),
		color.BlueString("date=%s", build_info.Date))
}

func getDocURL() string {
	if build_info.Version == build_info.DefaultDevVersion {
		return "https://github.com/bayware/bwctl/tree/master/docs"
	}
	return "https://github.com/bayware/bwctl/tree/v" + build_info.Version + "/docs"
}

// checkWritePermissions makes sure the log file can be created in the working directory.
func checkWritePermissions() error {
	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("failed to get current working directory: %w", err)
	}

	testFile, err := os.CreateTemp(cwd, ".bwctl-write-test-*")
	if err != nil {
		return fmt.Errorf("working directory %s is not writable by the current user", cwd)
	}
	testFile.Close()
	return os.Remove(testFile.Name())
}
