package render

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/bayware/bwctl/internal/config"
	"github.com/bayware/bwctl/internal/services/hcl"
	"github.com/bayware/bwctl/internal/services/markdown"
	"github.com/bayware/bwctl/internal/types"
)

type RenderOpts struct {
	FabricName       string
	StateFile        string
	CredentialsFile  string
	OutputDir        string
	SSHPublicKeyFile string
	ModulesSource    string
	PrintSummary     bool
	Config           config.Config
}

type FabricRenderer struct {
	opts RenderOpts
}

func NewFabricRenderer(opts RenderOpts) *FabricRenderer {
	return &FabricRenderer{
		opts: opts,
	}
}

func (fr *FabricRenderer) Run(ctx context.Context) error {
	if ctx == nil {
		ctx = context.Background()
	}

	slog.Info("🏁 rendering fabric", "fabric", fr.opts.FabricName, "state", fr.opts.StateFile)

	state, errs := types.NewStateFromFile(fr.opts.StateFile)
	if len(errs) > 0 {
		return fmt.Errorf("failed to load state: %w", errors.Join(errs...))
	}

	fabric, err := state.GetFabric(fr.opts.FabricName)
	if err != nil {
		return err
	}

	creds := &types.Credentials{}
	if fr.opts.CredentialsFile != "" {
		loaded, errs := types.NewCredentialsFromFile(fr.opts.CredentialsFile)
		if len(errs) > 0 {
			return fmt.Errorf("failed to load credentials: %w", errors.Join(errs...))
		}
		creds = loaded
	}

	renderContext := fr.opts.Config.RenderContext(fabric, creds)
	renderContext.SSHPublicKeyFile = fr.opts.SSHPublicKeyFile
	renderContext.ModulesSource = fr.opts.ModulesSource

	service := hcl.NewFabricHCLService()
	terraformFiles, err := service.RenderFabric(ctx, fabric, renderContext)
	if err != nil {
		return fmt.Errorf("failed to generate Terraform files: %w", err)
	}

	nodes, err := service.Inventory(fabric, renderContext)
	if err != nil {
		return fmt.Errorf("failed to summarize fabric: %w", err)
	}

	slog.Info("📁 creating terraform directory", "directory", fr.opts.OutputDir)
	if err := os.MkdirAll(fr.opts.OutputDir, 0755); err != nil {
		return fmt.Errorf("failed to create terraform directory: %w", err)
	}

	if err := fr.writeTerraformFiles(fr.opts.OutputDir, terraformFiles); err != nil {
		return fmt.Errorf("failed to write Terraform files: %w", err)
	}

	printOpts := markdown.PrintOptions{ToFile: filepath.Join(fr.opts.OutputDir, SummaryFile)}
	if fr.opts.PrintSummary {
		printOpts.Terminal = os.Stdout
	}
	if err := generateSummary(fabric, renderContext, nodes, terraformFiles).Print(printOpts); err != nil {
		return fmt.Errorf("failed to write render summary: %w", err)
	}

	slog.Info("✅ fabric rendered", "fabric", fr.opts.FabricName, "directory", fr.opts.OutputDir, "files", len(terraformFiles))

	return nil
}

func (fr *FabricRenderer) writeTerraformFiles(outputDir string, files types.TerraformFiles) error {
	for _, file := range files {
		if err := os.WriteFile(filepath.Join(outputDir, file.Name), []byte(file.Content), 0644); err != nil {
			return fmt.Errorf("failed to write %s: %w", file.Name, err)
		}
		slog.Info("✅ wrote " + file.Name)
	}

	return nil
}
