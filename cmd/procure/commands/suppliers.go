package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/quotia-io/procure/pkg/procure"
)

// NewSuppliersCommand creates the suppliers command group.
func NewSuppliersCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "suppliers",
		Aliases: []string{"sup"},
		Short:   "Manage the supplier directory",
		Long:    "List, inspect, and manage supplier directory entries",
	}

	config := resourceConfig[procure.Supplier, procure.SupplierCreateRequest, procure.SupplierUpdateRequest]{
		Singular: "supplier",
		Plural:   "suppliers",
		Service: func() (procure.ResourceService[procure.Supplier, procure.SupplierCreateRequest, procure.SupplierUpdateRequest], error) {
			factory, err := newFactory()
			if err != nil {
				return nil, err
			}

			return factory.Suppliers()
		},
		Header: []string{"ID", "Name", "Type", "Status", "Contacts", "Created"},
		Row: func(s procure.Supplier) []string {
			return []string{
				s.ID,
				s.Name,
				string(s.Type),
				string(s.Status),
				strconv.Itoa(len(s.Contacts)),
				formatDate(s.CreatedAt),
			}
		},
	}

	config.addCommonCommands(cmd)
	cmd.AddCommand(newSuppliersStatsCommand())

	return cmd
}

func newSuppliersStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show directory statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			factory, err := newFactory()
			if err != nil {
				return err
			}

			service, err := factory.Suppliers()
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
