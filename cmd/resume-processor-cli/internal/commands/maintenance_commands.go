package commands

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Sai-Prashanth123/resume-processor/internal/app"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/connector"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/persistence"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/prober"
	"github.com/Sai-Prashanth123/resume-processor/internal/infrastructure/rendering"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/bloburl"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/config"
	"github.com/Sai-Prashanth123/resume-processor/internal/pkg/logger"
)

// MaintenanceCommandHandler runs the maintenance operations against the configured stores.
type MaintenanceCommandHandler struct {
	logger logger.Logger
}

// NewMaintenanceCommandHandler initializes a MaintenanceCommandHandler with a console logger.
// Configuration is loaded when a command runs so the document commands work without it.
func NewMaintenanceCommandHandler() (*MaintenanceCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}
	return &MaintenanceCommandHandler{logger: loggerInstance}, nil
}

// FixBlobURLsCmd re-signs stored blob URLs and prints the report as JSON
func (commandHandler *MaintenanceCommandHandler) FixBlobURLsCmd(cmd *cobra.Command, _ []string) {
	adminKey, err := cmd.Flags().GetString("admin-key")
	if err != nil {
		commandHandler.logger.Error("invalid admin-key flag", "error", err)
		return
	}

	cfg, err := config.Load(configPath())
	if err != nil {
		commandHandler.logger.Error("failed to load config", "error", err)
		return
	}

	ctx := cmd.Context()
	stores, err := persistence.OpenStores(ctx, cfg, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to open stores", "error", err)
		return
	}
	defer func() {
		if err := stores.Close(); err != nil {
			commandHandler.logger.Error("failed to close stores", "error", err)
		}
	}()

	urls, err := bloburl.NewBuilder(cfg.Blob.BaseURL, cfg.Blob.ContainerName, cfg.Blob.Token())
	if err != nil {
		commandHandler.logger.Error("failed to create blob url builder", "error", err)
		return
	}

	blobConnector, err := connector.NewAzureBlobConnector(cfg.Blob.ConnectionString, cfg.Blob.ContainerName, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to create blob connector", "error", err)
		return
	}

	blobProber := prober.NewRestyProber(commandHandler.logger)
	renderer := rendering.NewPDFRenderer(commandHandler.logger)

	saver, err := app.NewBlobSaver(blobConnector, blobProber, urls, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to create blob saver", "error", err)
		return
	}

	recoverer, err := app.NewBlobRecoverer(blobConnector, blobProber, saver, renderer, urls, commandHandler.logger)
	if err != nil {
		commandHandler.logger.Error("failed to create blob recoverer", "error", err)
		return
	}

	maintenanceService, err := app.NewMaintenanceService(
		blobConnector, nil, saver, blobProber, renderer,
		stores.ResumeRepo, recoverer, urls, cfg.AdminKey, commandHandler.logger,
	)
	if err != nil {
		commandHandler.logger.Error("failed to create maintenance service", "error", err)
		return
	}

	report, err := maintenanceService.FixBlobURLs(ctx, adminKey)
	if err != nil {
		commandHandler.logger.Error("failed to fix blob urls", "error", err)
		return
	}

	out, err := json.MarshalIndent(report, "", "  ")
	if err != nil {
		commandHandler.logger.Error("failed to encode report", "error", err)
		return
	}
	fmt.Fprintln(cmd.OutOrStdout(), string(out))
}

// InitMaintenanceCommands registers the fix-blob-urls command
func InitMaintenanceCommands(rootCmd *cobra.Command) error {
	handler, err := NewMaintenanceCommandHandler()
	if err != nil {
		return fmt.Errorf("failed to create maintenance command handler: %w", err)
	}

	var fixBlobURLsCmd = &cobra.Command{
		Use:   "fix-blob-urls",
		Short: "Append the SAS token to stored blob URLs that lack it",
		Run:   handler.FixBlobURLsCmd,
	}
	fixBlobURLsCmd.Flags().StringP("admin-key", "", "", "Admin key guarding the maintenance operations")
	_ = fixBlobURLsCmd.MarkFlagRequired("admin-key")
	rootCmd.AddCommand(fixBlobURLsCmd)

	return nil
}
