package render

import (
	"fmt"

	"github.com/bayware/bwctl/internal/config"
	"github.com/bayware/bwctl/internal/utils"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

var (
	fabricName       string
	stateFile        string
	configFile       string
	credentialsFile  string
	outputDir        string
	sshPublicKeyFile string
	modulesSource    string
	printSummary     bool
)

func NewRenderCmd() *cobra.Command {
	renderCmd := &cobra.Command{
		Use:           "render",
		Short:         "Render a fabric into terraform",
		Long:          "Render the orchestrator, processor and workload nodes of a fabric into terraform module instantiations for AWS, GCP and Azure",
		SilenceErrors: true,
		PreRunE:       preRunRender,
		RunE:          runRender,
	}

	groups := map[*pflag.FlagSet]string{}

	// Required flags.
	requiredFlags := pflag.NewFlagSet("required", pflag.ExitOnError)
	requiredFlags.SortFlags = false
	requiredFlags.StringVar(&fabricName, "fabric", "", "Name of the fabric to render")
	requiredFlags.StringVar(&stateFile, "state-file", "", "Path to the fabric state file (e.g. state.yml)")
	renderCmd.Flags().AddFlagSet(requiredFlags)
	groups[requiredFlags] = "Required Flags"

	// Optional flags.
	optionalFlags := pflag.NewFlagSet("optional", pflag.ExitOnError)
	optionalFlags.SortFlags = false
	optionalFlags.StringVar(&configFile, "config-file", config.DefaultConfigFile, "Path to the bwctl config file")
	optionalFlags.StringVar(&credentialsFile, "credentials-file", "", "Path to the credentials file (defaults to credentials_file from the config)")
	optionalFlags.StringVar(&outputDir, "output-dir", "", "Directory the terraform files are written to (defaults to terraform/<fabric>)")
	optionalFlags.StringVar(&sshPublicKeyFile, "ssh-public-key-file", "", "SSH public key installed on every node (defaults to ssh_keys from the config)")
	optionalFlags.StringVar(&modulesSource, "modules-source", "", "Base path or URL of the terraform node modules (default ./modules)")
	optionalFlags.BoolVar(&printSummary, "print-summary", false, "Print the render summary to the terminal")
	renderCmd.Flags().AddFlagSet(optionalFlags)
	groups[optionalFlags] = "Optional Flags"

	renderCmd.SetUsageFunc(func(c *cobra.Command) error {
		fmt.Printf("%s\n\n", c.Short)

		flagOrder := []*pflag.FlagSet{requiredFlags, optionalFlags}
		groupNames := []string{"Required Flags", "Optional Flags"}

		for i, fs := range flagOrder {
			usage := fs.FlagUsages()
			if usage != "" {
				fmt.Printf("%s:\n", groupNames[i])
				fmt.Printf("%s\n", usage)
			}
		}

		fmt.Println("All flags can be provided via environment variables (uppercase, with underscores).")

		return nil
	})

	renderCmd.MarkFlagRequired("fabric")
	renderCmd.MarkFlagRequired("state-file")

	return renderCmd
}

func preRunRender(cmd *cobra.Command, args []string) error {
	if err := utils.BindEnvToFlags(cmd); err != nil {
		return err
	}

	return nil
}

func runRender(cmd *cobra.Command, args []string) error {
	opts, err := parseRenderOpts()
	if err != nil {
		return fmt.Errorf("failed to parse render opts: %v", err)
	}

	renderer := NewFabricRenderer(*opts)
	if err := renderer.Run(cmd.Context()); err != nil {
		return fmt.Errorf("failed to render fabric %s: %v", opts.FabricName, err)
	}

	return nil
}

func parseRenderOpts() (*RenderOpts, error) {
	if err := utils.ValidateFabricName(fabricName); err != nil {
		return nil, err
	}

	cfg, err := config.Load(configFile)
	if err != nil {
		return nil, err
	}

	credentialsPath := credentialsFile
	if credentialsPath == "" {
		credentialsPath = cfg.CredentialsFile
	}

	publicKey := sshPublicKeyFile
	if publicKey == "" {
		publicKey = cfg.SSHPublicKeyFile()
	}

	dir := outputDir
	if dir == "" {
		dir = fmt.Sprintf("terraform/%s", fabricName)
	}

	opts := RenderOpts{
		FabricName:       fabricName,
		StateFile:        stateFile,
		CredentialsFile:  credentialsPath,
		OutputDir:        dir,
		SSHPublicKeyFile: publicKey,
		ModulesSource:    modulesSource,
		PrintSummary:     printSummary,
		Config:           *cfg,
	}

	for _, path := range []*string{&opts.StateFile, &opts.CredentialsFile, &opts.OutputDir, &opts.SSHPublicKeyFile} {
		resolved, err := config.ResolvePath(*path)
		if err != nil {
			return nil, err
		}
		*path = resolved
	}

	return &opts, nil
}
