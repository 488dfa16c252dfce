package commands

import (
	"fmt"

	"github.com/openeduhub/metaqs/internal/app"
	"github.com/openeduhub/metaqs/internal/domain/portals"
	"github.com/openeduhub/metaqs/internal/infrastructure/edusharing"
	"github.com/openeduhub/metaqs/internal/infrastructure/search"
	"github.com/openeduhub/metaqs/internal/pkg/logger"

	"github.com/spf13/cobra"
)

// PortalCommandHandler encapsulates logic for inspecting portals via CLI.
type PortalCommandHandler struct {
	catalogService portals.PortalCatalogService
	treeService    portals.PortalTreeService
	qualityService portals.PortalQualityService
	logger         logger.Logger
}

// NewPortalCommandHandler initializes and returns a PortalCommandHandler instance with
// configured logger and live backend services.
func NewPortalCommandHandler() (*PortalCommandHandler, error) {
	loggerInstance, err := setupLogger()
	if err != nil {
		return nil, fmt.Errorf("failed to setup logger: %w", err)
	}

	cfg, err := loadConfig()
	if err != nil {
		return nil, err
	}

	esClient, err := search.NewClient(&cfg.Elasticsearch, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create search client: %w", err)
	}

	collectionRepo, err := search.NewCollectionSearchRepository(esClient, cfg.Elasticsearch.WorkspaceIndex, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create collection search repository: %w", err)
	}

	editorialClient, err := edusharing.NewClient(&cfg.EduSharing, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create edu-sharing client: %w", err)
	}

	// CLI commands always read from the live backends
	holder := app.NewSnapshotHolder()

	catalogService, err := app.NewPortalCatalogService(editorialClient, collectionRepo, holder, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create portal catalog service: %w", err)
	}

	treeService, err := app.NewPortalTreeService(collectionRepo, holder, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create portal tree service: %w", err)
	}

	qualityService, err := app.NewPortalQualityService(collectionRepo, loggerInstance)
	if err != nil {
		return nil, fmt.Errorf("failed to create portal quality service: %w", err)
	}

	return &PortalCommandHandler{
		catalogService: catalogService,
		treeService:    treeService,
		qualityService: qualityService,
		logger:         loggerInstance,
	}, nil
}

// ListPortalsCmd lists all editorial portals with their resource counts
func (commandHandler *PortalCommandHandler) ListPortalsCmd(cmd *cobra.Command, _ []string) {
	portalList, err := commandHandler.catalogService.List(cmd.Context())
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printJSON(portalList); err != nil {
		commandHandler.logger.Error(err)
	}
}

// ShowPortalCmd fetches a single portal or collection node by ID
func (commandHandler *PortalCommandHandler) ShowPortalCmd(cmd *cobra.Command, _ []string) {
	portalID, err := cmd.Flags().GetString("id")
	if err != nil {
		commandHandler.logger.Error("invalid id flag ", err)
		return
	}

	portal, err := commandHandler.catalogService.GetByID(cmd.Context(), portalID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printJSON(portal); err != nil {
		commandHandler.logger.Error(err)
	}
}

// ListChildrenCmd lists the child collections of a portal
func (commandHandler *PortalCommandHandler) ListChildrenCmd(cmd *cobra.Command, _ []string) {
	portalID, err := cmd.Flags().GetString("id")
	if err != nil {
		commandHandler.logger.Error("invalid id flag ", err)
		return
	}

	maxResources, err := cmd.Flags().GetInt64("max-resources")
	if err != nil {
		commandHandler.logger.Error("invalid max-resources flag ", err)
		return
	}

	query := portals.NewCollectionQuery()
	if cmd.Flags().Changed("max-resources") {
		query.MaxResources = &maxResources
	}

	children, err := commandHandler.treeService.Children(cmd.Context(), portalID, query)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printJSON(children); err != nil {
		commandHandler.logger.Error(err)
	}
}

// LicenseSummaryCmd aggregates the licenses over the resources of a portal
func (commandHandler *PortalCommandHandler) LicenseSummaryCmd(cmd *cobra.Command, _ []string) {
	portalID, err := cmd.Flags().GetString("id")
	if err != nil {
		commandHandler.logger.Error("invalid id flag ", err)
		return
	}

	summary, err := commandHandler.qualityService.LicenseSummary(cmd.Context(), portalID)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printJSON(summary); err != nil {
		commandHandler.logger.Error(err)
	}
}

// MissingAttributeCmd reports the resources of a portal lacking a metadata attribute
func (commandHandler *PortalCommandHandler) MissingAttributeCmd(cmd *cobra.Command, _ []string) {
	portalID, err := cmd.Flags().GetString("id")
	if err != nil {
		commandHandler.logger.Error("invalid id flag ", err)
		return
	}

	attribute, err := cmd.Flags().GetString("attribute")
	if err != nil {
		commandHandler.logger.Error("invalid attribute flag ", err)
		return
	}

	mode, err := cmd.Flags().GetString("mode")
	if err != nil {
		commandHandler.logger.Error("invalid mode flag ", err)
		return
	}

	report, err := commandHandler.qualityService.MissingAttribute(cmd.Context(), portalID, attribute, mode)
	if err != nil {
		commandHandler.logger.Error(err)
		return
	}

	if err := printJSON(report); err != nil {
		commandHandler.logger.Error(err)
	}
}

// InitPortalCommands registers portal-related commands
func InitPortalCommands(rootCmd *cobra.Command) error {
	handler, err := NewPortalCommandHandler()

	if err != nil {
		return fmt.Errorf("failed to create portal command handler %w", err)
	}

	var listPortalsCmd = &cobra.Command{
		Use:   "list-portals",
		Short: "List all editorial portals",
		Run:   handler.ListPortalsCmd,
	}
	rootCmd.AddCommand(listPortalsCmd)

	var showPortalCmd = &cobra.Command{
		Use:   "show-portal",
		Short: "Show a single portal or collection node",
		Run:   handler.ShowPortalCmd,
	}
	showPortalCmd.Flags().StringP("id", "", "", "Portal or collection node ID")
	rootCmd.AddCommand(showPortalCmd)

	var listChildrenCmd = &cobra.Command{
		Use:   "list-children",
		Short: "List the child collections of a portal",
		Run:   handler.ListChildrenCmd,
	}
	listChildrenCmd.Flags().StringP("id", "", "", "Portal ID")
	listChildrenCmd.Flags().Int64P("max-resources", "", 0, "Keep only children with at most this many resources")
	rootCmd.AddCommand(listChildrenCmd)

	var licenseSummaryCmd = &cobra.Command{
		Use:   "license-summary",
		Short: "Aggregate licenses over the resources of a portal",
		Run:   handler.LicenseSummaryCmd,
	}
	licenseSummaryCmd.Flags().StringP("id", "", "", "Portal ID")
	rootCmd.AddCommand(licenseSummaryCmd)

	var missingAttributeCmd = &cobra.Command{
		Use:   "missing-attribute",
		Short: "Report resources of a portal lacking a metadata attribute",
		Run:   handler.MissingAttributeCmd,
	}
	missingAttributeCmd.Flags().StringP("id", "", "", "Portal ID")
	missingAttributeCmd.Flags().StringP("attribute", "", "", "Metadata attribute, e.g. properties.cm:description")
	missingAttributeCmd.Flags().StringP("mode", "", "", "Report mode (collections/materials)")
	rootCmd.AddCommand(missingAttributeCmd)

	return nil
}
