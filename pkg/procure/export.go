package procure

import (
	"bytes"
	"encoding/base64"
	"encoding/csv"
	"encoding/json"
	"fmt"
	"strconv"
	"strings"
	"time"
)

// MIME types used by Export.
const (
	mimeJSON  = "application/json"
	mimeCSV   = "text/csv"
	mimeExcel = "application/vnd.ms-excel"
)

// EncodeDataURI wraps serialized bytes in a base64 data URI, the shape the
// dashboard feeds straight into a download link.
func EncodeDataURI(mime string, data []byte) string {
	return "data:" + mime + ";base64," + base64.StdEncoding.EncodeToString(data)
}

func exportURI[T any](format ExportFormat, records []T, toCSV func([]T) ([]byte, error)) (string, error) {
	switch format {
	case ExportJSON:
		data, err := json.MarshalIndent(records, "", "  ")
		if err != nil {
			return "", fmt.Errorf("failed to marshal export: %w", err)
		}

		return EncodeDataURI(mimeJSON, data), nil

	case ExportCSV, ExportExcel:
		data, err := toCSV(records)
		if err != nil {
			return "", err
		}

		// Excel export reuses the CSV serialization under the Excel MIME
		// type; spreadsheet apps open it transparently.
		mime := mimeCSV
		if format == ExportExcel {
			mime = mimeExcel
		}

		return EncodeDataURI(mime, data), nil

	default:
		return "", fmt.Errorf("%w: %q", ErrUnknownExportFormat, format)
	}
}

func writeCSV(header []string, rows [][]string) ([]byte, error) {
	var buf bytes.Buffer

	writer := csv.NewWriter(&buf)

	err := writer.Write(header)
	if err != nil {
		return nil, fmt.Errorf("failed to write csv header: %w", err)
	}

	err = writer.WriteAll(rows)
	if err != nil {
		return nil, fmt.Errorf("failed to write csv rows: %w", err)
	}

	writer.Flush()

	if err := writer.Error(); err != nil {
		return nil, fmt.Errorf("failed to flush csv: %w", err)
	}

	return buf.Bytes(), nil
}

func csvDate(t time.Time) string {
	if t.IsZero() {
		return ""
	}

	return t.Format("2006-01-02")
}

// ExportManufacturers serializes manufacturers into a data URI.
func ExportManufacturers(format ExportFormat, records []Manufacturer) (string, error) {
	return exportURI(format, records, func(records []Manufacturer) ([]byte, error) {
		header := []string{"id", "name", "industry", "status", "city", "country", "capabilities", "linkedSuppliers", "createdAt"}
		rows := make([][]string, 0, len(records))

		for _, m := range records {
			rows = append(rows, []string{
				m.ID,
				m.Name,
				m.Industry,
				string(m.Status),
				m.Address.City,
				m.Address.Country,
				strings.Join(m.Capabilities, "; "),
				strconv.Itoa(len(m.LinkedSupplierIDs)),
				csvDate(m.CreatedAt),
			})
		}

		return writeCSV(header, rows)
	})
}

// ExportSuppliers serializes suppliers into a data URI.
func ExportSuppliers(format ExportFormat, records []Supplier) (string, error) {
	return exportURI(format, records, func(records []Supplier) ([]byte, error) {
		header := []string{"id", "name", "type", "status", "city", "country", "specializations", "linkedManufacturers", "createdAt"}
		rows := make([][]string, 0, len(records))

		for _, s := range records {
			rows = append(rows, []string{
				s.ID,
				s.Name,
				string(s.Type),
				string(s.Status),
				s.Address.City,
				s.Address.Country,
				strings.Join(s.Specializations, "; "),
				strconv.Itoa(len(s.LinkedManufacturerIDs)),
				csvDate(s.CreatedAt),
			})
		}

		return writeCSV(header, rows)
	})
}

// ExportRFQs serializes RFQs into a data URI, one row per line item so the
// export stays flat.
func ExportRFQs(format ExportFormat, records []RFQRecord) (string, error) {
	return exportURI(format, records, func(records []RFQRecord) ([]byte, error) {
		header := []string{"rfqNo", "client", "status", "publishDate", "bidDate", "lineNumber", "itemId", "manufacturer", "supplier", "itemStatus", "qty"}

		var rows [][]string

		for _, r := range records {
			if len(r.LineItems) == 0 {
				rows = append(rows, []string{
					r.RFQNo, r.Client, string(r.Status), csvDate(r.PublishDate), csvDate(r.BidDate),
					"", "", "", "", "", "",
				})

				continue
			}

			for _, item := range r.LineItems {
				rows = append(rows, []string{
					r.RFQNo,
					r.Client,
					string(r.Status),
					csvDate(r.PublishDate),
					csvDate(r.BidDate),
					item.LineNumber,
					item.ItemID,
					item.Manufacturer,
					item.Supplier,
					string(item.Status),
					strconv.Itoa(item.Qty),
				})
			}
		}

		return writeCSV(header, rows)
	})
}
