package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quotia-io/procure/pkg/procure"
)

// NewManufacturersCommand creates the manufacturers command group.
func NewManufacturersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "manufacturers",
		Aliases: []string{"mfg"},
		Short:   "Manage the manufacturer directory",
		Long:    "List, inspect, and manage manufacturer directory entries",
	}

	config := resourceConfig[procure.Manufacturer, procure.ManufacturerCreateRequest, procure.ManufacturerUpdateRequest]{
		Singular: "manufacturer",
		Plural:   "manufacturers",
		Service: func() (procure.ResourceService[procure.Manufacturer, procure.ManufacturerCreateRequest, procure.ManufacturerUpdateRequest], error) {
			factory, err := newFactory()
			if err != nil {
				return nil, err
			}

			return factory.Manufacturers()
		},
		Header: []string{"ID", "Name", "Industry", "Status", "Contacts", "Created"},
		Row: func(m procure.Manufacturer) []string {
			return []string{
				m.ID,
				m.Name,
				m.Industry,
				string(m.Status),
				strconv.Itoa(len(m.Contacts)),
				formatDate(m.CreatedAt),
			}
		},
	}

	config.addCommonCommands(cmd)
	cmd.AddCommand(newManufacturersStatsCommand())

	return cmd
}

func newManufacturersStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show directory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := newFactory()
			if err != nil {
				return err
			}

			service, err := factory.Manufacturers()
			if err != nil {
				return err
			}

			stats, err := service.Stats(context.Background())
			if err != nil {
				return fmt.Errorf("fetching directory stats: %w", err)
			}

			return renderDirectoryStats(stats)
		},
	}
}

func renderDirectoryStats(stats *procure.DirectoryStats) error {
	output := viper.GetString("output")
	if output == OutputFormatJSON || output == OutputFormatYAML {
		return renderEncoded(stats, output)
	}

	return renderTable(
		[]string{"Metric", "Value"},
		[][]string{
			{"Total manufacturers", strconv.Itoa(stats.TotalManufacturers)},
			{"Total suppliers", strconv.Itoa(stats.TotalSuppliers)},
			{"Active manufacturers", strconv.Itoa(stats.ActiveManufacturers)},
			{"Active suppliers", strconv.Itoa(stats.ActiveSuppliers)},
			{"Recently added", strconv.Itoa(stats.RecentlyAdded)},
			{"Pending approval", strconv.Itoa(stats.PendingApproval)},
		},
	)
}
