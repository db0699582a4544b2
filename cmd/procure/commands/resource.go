package commands

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/spf13/cobra"

	"github.com/quotia-io/procure/pkg/procure"
)

// resourceConfig wires one resource's services into the shared subcommand
// set. Header and row shape the table output for list and search.
type resourceConfig[T any, C any, U any] struct {
	Singular string
	Plural   string
	Service  func() (procure.ResourceService[T, C, U], error)
	Header   []string
	Row      func(T) []string
}

func (rc resourceConfig[T, C, U]) addCommonCommands(cmd *cobra.Command) {
	cmd.AddCommand(rc.newListCommand())
	cmd.AddCommand(rc.newGetCommand())
	cmd.AddCommand(rc.newCreateCommand())
	cmd.AddCommand(rc.newUpdateCommand())
	cmd.AddCommand(rc.newDeleteCommand())
	cmd.AddCommand(rc.newBulkDeleteCommand())
	cmd.AddCommand(rc.newSearchCommand())
	cmd.AddCommand(rc.newExportCommand())
}

// queryFlags registers the list-shaping flags and returns a builder that
// reads them back into query params.
func queryFlags(cmd *cobra.Command) func() *procure.QueryParams {
	var (
		page     int
		limit    int
		sort     string
		status   string
		search   string
		dateFrom string
		dateTo   string
	)

	cmd.Flags().IntVar(&page, "page", 1, "page number")
	cmd.Flags().IntVar(&limit, "limit", procure.DefaultPageLimit, "records per page")
	cmd.Flags().StringVar(&sort, "sort", "", "sort order (field or field:desc)")
	cmd.Flags().StringVar(&status, "status", "", "status filter")
	cmd.Flags().StringVar(&search, "search", "", "free-text search")
	cmd.Flags().StringVar(&dateFrom, "date-from", "", "lower date bound (inclusive)")
	cmd.Flags().StringVar(&dateTo, "date-to", "", "upper date bound (inclusive)")

	return func() *procure.QueryParams {
		query := procure.NewQueryParams().WithPage(page).WithLimit(limit)

		if sort != "" {
			parsed, err := procure.ParseSort(sort)
			if err == nil {
				query.Sort = parsed
			}
		}

		if status != "" {
			query.WithFilter(procure.FilterStatus, status)
		}

		if search != "" {
			query.WithSearch(search)
		}

		if dateFrom != "" || dateTo != "" {
			query.WithDateRange(dateFrom, dateTo)
		}

		return query
	}
}

func (rc resourceConfig[T, C, U]) newListCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List " + rc.Plural,
		Long:  "List " + rc.Plural + " with filtering, sorting, and pagination",
	}

	buildQuery := queryFlags(cmd)

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		service, err := rc.Service()
		if err != nil {
			return err
		}

		page, err := service.List(context.Background(), buildQuery())
		if err != nil {
			return fmt.Errorf("listing %s: %w", rc.Plural, err)
		}

		return renderPage(page, rc.Header, rc.Row)
	}

	return cmd
}

func (rc resourceConfig[T, C, U]) newGetCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "get ID",
		Short: "Get a " + rc.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := rc.Service()
			if err != nil {
				return err
			}

			record, err := service.GetByID(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("getting %s: %w", rc.Singular, err)
			}

			return renderRecord(record)
		},
	}
}

func (rc resourceConfig[T, C, U]) newCreateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "create",
		Short: "Create a " + rc.Singular,
		Long:  "Create a " + rc.Singular + " from a JSON or YAML payload file",
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := decodePayloadFile[C](file)
			if err != nil {
				return err
			}

			service, err := rc.Service()
			if err != nil {
				return err
			}

			record, err := service.Create(context.Background(), payload)
			if err != nil {
				return fmt.Errorf("creating %s: %w", rc.Singular, err)
			}

			return renderRecord(record)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (rc resourceConfig[T, C, U]) newUpdateCommand() *cobra.Command {
	var file string

	cmd := &cobra.Command{
		Use:   "update ID",
		Short: "Update a " + rc.Singular,
		Long:  "Apply a partial update from a JSON or YAML payload file",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			payload, err := decodePayloadFile[U](file)
			if err != nil {
				return err
			}

			service, err := rc.Service()
			if err != nil {
				return err
			}

			record, err := service.Update(context.Background(), args[0], payload)
			if err != nil {
				return fmt.Errorf("updating %s: %w", rc.Singular, err)
			}

			return renderRecord(record)
		},
	}

	cmd.Flags().StringVarP(&file, "file", "f", "", "payload file (required)")
	_ = cmd.MarkFlagRequired("file")

	return cmd
}

func (rc resourceConfig[T, C, U]) newDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a " + rc.Singular,
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete %s '%s'? (y/N): ", rc.Singular, args[0])

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			service, err := rc.Service()
			if err != nil {
				return err
			}

			err = service.Delete(context.Background(), args[0])
			if err != nil {
				return fmt.Errorf("deleting %s: %w", rc.Singular, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Successfully deleted %s '%s'\n", rc.Singular, args[0])

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func (rc resourceConfig[T, C, U]) newBulkDeleteCommand() *cobra.Command {
	var force bool

	cmd := &cobra.Command{
		Use:   "bulk-delete ID...",
		Short: "Delete multiple " + rc.Plural,
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if !force {
				_, _ = fmt.Fprintf(os.Stdout, "Really delete %d %s? (y/N): ", len(args), rc.Plural)

				var response string

				_, _ = fmt.Scanln(&response)
				if response != "y" && response != "Y" {
					_, _ = os.Stdout.WriteString("Cancelled\n")

					return nil
				}
			}

			service, err := rc.Service()
			if err != nil {
				return err
			}

			result, err := service.BulkDelete(context.Background(), args)
			if err != nil {
				return fmt.Errorf("bulk deleting %s: %w", rc.Plural, err)
			}

			_, _ = fmt.Fprintf(os.Stdout, "Deleted %d %s (%d skipped)\n", result.Applied, rc.Plural, result.Skipped)

			return nil
		},
	}

	cmd.Flags().BoolVarP(&force, "force", "f", false, "skip confirmation prompt")

	return cmd
}

func (rc resourceConfig[T, C, U]) newSearchCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "search TERM...",
		Short: "Search " + rc.Plural,
		Long:  "Search " + rc.Plural + " across names, descriptions, and contacts",
		Args:  cobra.MinimumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			service, err := rc.Service()
			if err != nil {
				return err
			}

			results, err := service.Search(context.Background(), strings.Join(args, " "))
			if err != nil {
				return fmt.Errorf("searching %s: %w", rc.Plural, err)
			}

			return renderRecords(results, rc.Header, rc.Row)
		},
	}
}

func (rc resourceConfig[T, C, U]) newExportCommand() *cobra.Command {
	var format string

	cmd := &cobra.Command{
		Use:   "export",
		Short: "Export " + rc.Plural,
		Long:  "Export the filtered " + rc.Singular + " set as a data URI",
	}

	buildQuery := queryFlags(cmd)
	cmd.Flags().StringVar(&format, "format", string(procure.ExportJSON), "export format (json, csv, excel)")

	cmd.RunE = func(cmd *cobra.Command, args []string) error {
		service, err := rc.Service()
		if err != nil {
			return err
		}

		uri, err := service.Export(context.Background(), procure.ExportFormat(format), buildQuery())
		if err != nil {
			return fmt.Errorf("exporting %s: %w", rc.Plural, err)
		}

		_, _ = fmt.Fprintln(os.Stdout, uri)

		return nil
	}

	return cmd
}
