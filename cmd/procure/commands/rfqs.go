package commands

import (
	"context"
	"fmt"
	"strconv"

	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/quotia-io/procure/pkg/procure"
)

// NewRFQsCommand creates the rfqs command group.
func NewRFQsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "rfqs",
		Short: "Manage uploaded RFQs",
		Long:  "List, inspect, and manage RFQs and their line items",
	}

	config := resourceConfig[procure.RFQRecord, procure.RFQCreateRequest, procure.RFQUpdateRequest]{
		Singular: "RFQ",
		Plural:   "RFQs",
		Service: func() (procure.ResourceService[procure.RFQRecord, procure.RFQCreateRequest, procure.RFQUpdateRequest], error) {
			service, err := rfqService()
			if err != nil {
				return nil, err
			}

			return service, nil
		},
		Header: []string{"ID", "RFQ No", "Client", "Status", "Line Items", "Publish Date", "Bid Date"},
		Row: func(r procure.RFQRecord) []string {
			return []string{
				r.ID,
				r.RFQNo,
				r.Client,
				string(r.Status),
				strconv.Itoa(len(r.LineItems)),
				formatDate(r.PublishDate),
				formatDate(r.BidDate),
			}
		},
	}

	config.addCommonCommands(cmd)
	cmd.AddCommand(newRFQsStatsCommand())
	cmd.AddCommand(newLineItemsCommand())

	return cmd
}

func rfqService() (procure.RFQsService, error) {
	factory, err := newFactory()
	if err != nil {
		return nil, err
	}

	return factory.RFQs()
}

func newRFQsStatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "stats",
		Short: "Show RFQ statistics",
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := rfqService()
			if err != nil {
				return err
			}

			stats, err := service.Stats(context.Background())
			if err != nil {
				return fmt.Errorf("fetching RFQ stats: %w", err)
			}

			output := viper.GetString("output")
			if output == OutputFormatJSON || output == OutputFormatYAML {
				return renderEncoded(stats, output)
			}

			return renderTable(
				[]string{"Metric", "Value"},
				[][]string{
					{"Total RFQs", strconv.Itoa(stats.TotalRFQs)},
					{"Open", strconv.Itoa(stats.OpenRFQs)},
					{"Submitted", strconv.Itoa(stats.SubmittedRFQs)},
					{"Closed", strconv.Itoa(stats.ClosedRFQs)},
					{"Pending", strconv.Itoa(stats.PendingRFQs)},
					{"Total line items", strconv.Itoa(stats.TotalLineItems)},
					{"Avg line items per RFQ", fmt.Sprintf("%.1f", stats.AverageLineItemsPerRFQ)},
				},
			)
		},
	}
}

func newLineItemsCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:     "line-items",
		Aliases: []string{"li"},
		Short:   "Manage RFQ line items",
	}

	cmd.AddCommand(newLineItemCreateCommand())
	cmd.AddCommand(newLineItemUpdateCommand())
	cmd.AddCommand(newLineItemStatusCommand())
	cmd.AddCommand(newLineItemDeleteCommand())
	cmd.AddCommand(newLineItemBulkDeleteCommand())

	return cmd
}

func newLineItemCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create RFQ_ID",
		Short: "Add a line item to an RFQ",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := decodePayloadFile[procure.LineItemCreateRequest](file)
			if err != nil {
				return err
			}

			service, err := rfqService()
			if err != nil {
				return err
			}

			record, err := service.CreateLineItem(context.Background(), args[0], payload)
			if err != nil {
				return fmt.Errorf("creating line item: %w", err)
			}

			return renderRecord(record)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newLineItemUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update RFQ_ID ITEM_ID",
		Short: "Update a line item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := decodePayloadFile[procure.LineItemUpdateRequest](file)
			if err != nil {
				return err
			}

			service, err := rfqService()
			if err != nil {
				return err
			}

			record, err := service.UpdateLineItem(context.Background(), args[0], args[1], payload)
			if err != nil {
				return fmt.Errorf("updating line item: %w", err)
			}

			return renderRecord(record)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func newLineItemStatusCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "status RFQ_ID ITEM_ID STATUS",
		Short: "Set a line item's status",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := rfqService()
			if err != nil {
				return err
			}

			record, err := service.UpdateLineItemStatus(
				context.Background(), args[0], args[1], procure.LineItemStatus(args[2]))
			if err != nil {
				return fmt.Errorf("updating line item status: %w", err)
			}

			return renderRecord(record)
		},
	}
}

func newLineItemDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "delete RFQ_ID ITEM_ID",
		Short: "Delete a line item",
		Args:  cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := rfqService()
			if err != nil {
				return err
			}

			record, err := service.DeleteLineItem(context.Background(), args[0], args[1])
			if err != nil {
				return fmt.Errorf("deleting line item: %w", err)
			}

			return renderRecord(record)
		},
	}
}

func newLineItemBulkDeleteCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "bulk-delete RFQ_ID ITEM_ID...",
		Short: "Delete multiple line items",
		Args:  cobra.MinimumNArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := rfqService()
			if err != nil {
				return err
			}

			record, err := service.BulkDeleteLineItems(context.Background(), args[0], args[1:])
			if err != nil {
				return fmt.Errorf("bulk deleting line items: %w", err)
			}

			return renderRecord(record)
		},
	}
}
