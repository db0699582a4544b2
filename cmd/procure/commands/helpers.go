package commands

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"time"

	"github.com/olekukonko/tablewriter"
	"github.com/sirupsen/logrus"
	"github.com/spf13/viper"
	"gopkg.in/yaml.v3"

	"github.com/quotia-io/procure/pkg/procure"
	"github.com/quotia-io/procure/pkg/services"
)

// Output formats.
const (
	OutputFormatJSON = "json"
	OutputFormatYAML = "yaml"

	NotAvailable = "N/A"

	tableDateFormat = "2006-01-02"
)

// newFactory builds a service factory from the effective CLI configuration.
func newFactory() (*services.Factory, error) {
	config := &procure.Config{
		BaseURL:   viper.GetString("api"),
		AuthToken: viper.GetString("token"),
		Mode:      procure.ServiceMode(viper.GetString("mode")),
	}

	if viper.GetBool("verbose") {
		config.Debug = true
		config.Logger = procure.NewLogrusLogger(logrus.StandardLogger())
	}

	factory, err := services.NewFactory(config)
	if err != nil {
		return nil, fmt.Errorf("building service factory: %w", err)
	}

	return factory, nil
}

// renderEncoded writes data as JSON or YAML to stdout.
func renderEncoded(data interface{}, format string) error {
	switch format {
	case OutputFormatJSON:
		encoder := json.NewEncoder(os.Stdout)
		encoder.SetIndent("", "  ")

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding JSON: %w", err)
		}
	case OutputFormatYAML:
		encoder := yaml.NewEncoder(os.Stdout)

		err := encoder.Encode(data)
		if err != nil {
			return fmt.Errorf("encoding YAML: %w", err)
		}
	}

	return nil
}

// renderTable writes a header and rows to stdout.
func renderTable(header []string, rows [][]string) error {
	table := tablewriter.NewWriter(os.Stdout)
	table.Header(toAnySlice(header)...)

	for _, row := range rows {
		_ = table.Append(toAnySlice(row)...)
	}

	if err := table.Render(); err != nil {
		return fmt.Errorf("rendering table: %w", err)
	}

	return nil
}

func toAnySlice(values []string) []interface{} {
	out := make([]interface{}, len(values))
	for i, v := range values {
		out[i] = v
	}

	return out
}

// renderPage writes a page of records in the selected output format,
// followed by a pagination footer in table mode.
func renderPage[T any](page *procure.Page[T], header []string, row func(T) []string) error {
	output := viper.GetString("output")
	if output == OutputFormatJSON || output == OutputFormatYAML {
		return renderEncoded(page, output)
	}

	rows := make([][]string, 0, len(page.Data))
	for _, record := range page.Data {
		rows = append(rows, row(record))
	}

	err := renderTable(header, rows)
	if err != nil {
		return err
	}

	_, _ = fmt.Fprintf(os.Stdout, "Page %d of %d (%d total)\n",
		page.Pagination.Page, page.Pagination.TotalPages, page.Pagination.Total)

	return nil
}

// renderRecords writes an unpaginated record list.
func renderRecords[T any](records []T, header []string, row func(T) []string) error {
	output := viper.GetString("output")
	if output == OutputFormatJSON || output == OutputFormatYAML {
		return renderEncoded(records, output)
	}

	rows := make([][]string, 0, len(records))
	for _, record := range records {
		rows = append(rows, row(record))
	}

	return renderTable(header, rows)
}

// renderRecord writes a single record. Table mode falls back to JSON since
// nested records do not flatten well.
func renderRecord(record interface{}) error {
	output := viper.GetString("output")
	if output == OutputFormatYAML {
		return renderEncoded(record, OutputFormatYAML)
	}

	return renderEncoded(record, OutputFormatJSON)
}

// decodePayloadFile reads a JSON or YAML request payload from disk.
func decodePayloadFile[T any](path string) (*T, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading payload file: %w", err)
	}

	var payload T

	switch filepath.Ext(path) {
	case ".yml", ".yaml":
		err = yaml.Unmarshal(data, &payload)
	default:
		err = json.Unmarshal(data, &payload)
	}

	if err != nil {
		return nil, fmt.Errorf("parsing payload file: %w", err)
	}

	return &payload, nil
}

func formatDate(t time.Time) string {
	if t.IsZero() {
		return NotAvailable
	}

	return t.Format(tableDateFormat)
}
